package assets

import (
	"bufio"
	"bytes"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/dendrascience/assetmin/precompress"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Options configures a Task. It is read, never modified, while the task runs.
type Options struct {
	ToDir              string    // destination root, must already exist
	Charset            string    // IANA name used to read inputs and write outputs
	LineBreak          int       // -1 disables line breaking
	Munge              bool      // shorten local JS identifiers
	Warn               bool      // report suspicious JS constructs
	PreserveSemicolons bool      // forwarded to the JS minifier
	Optimize           bool      // forwarded inverted as DisableOptimizations
	JSSuffix           string    // replaces ".js" in output names
	CSSSuffix          string    // replaces ".css" in output names
	Overwrite          bool      // rebuild outputs even when up to date
	FileSets           []FileSet // at least one is required

	Precompress []precompress.Algorithm // companions written for every fresh output
	Report      string                  // JSON report path, empty for none
}

// DefaultOptions returns the options a task starts from.
func DefaultOptions() Options {
	return Options{
		Charset:            DefaultCharset,
		LineBreak:          -1,
		Munge:              false,
		Warn:               true,
		PreserveSemicolons: true,
		Optimize:           true,
		JSSuffix:           JS.DefaultOutputSuffix(),
		CSSSuffix:          CSS.DefaultOutputSuffix(),
	}
}

// OutputSuffix returns the configured replacement suffix for t.
func (o Options) OutputSuffix(t FileType) string {
	switch t {
	case JS:
		if o.JSSuffix != "" {
			return o.JSSuffix
		}
	case CSS:
		if o.CSSSuffix != "" {
			return o.CSSSuffix
		}
	}
	return t.DefaultOutputSuffix()
}

// Job is the unit of work derived from one resolved file.
type Job struct {
	Dir    string   // base directory of the file set
	Rel    string   // slash-separated path relative to Dir
	Input  string
	Output string
	Type   FileType
	Stale  bool
}

// Task minifies every JS and CSS file selected by its file sets into ToDir.
type Task struct {
	Options

	Scanner Scanner     // defaults to DirScanner
	JS      JSMinifier  // defaults to TdewolffJS
	CSS     CSSMinifier // defaults to TdewolffCSS
	Log     *zap.Logger // defaults to a no-op logger

	stats Statistics
	files []FileRecord
}

// NewTask creates a task with the default collaborators.
func NewTask(opts Options, log *zap.Logger) *Task {
	return &Task{
		Options: opts,
		Scanner: DirScanner{},
		JS:      NewTdewolffJS(),
		CSS:     NewTdewolffCSS(),
		Log:     log,
	}
}

// Stats returns the statistics gathered so far.
func (t *Task) Stats() *Statistics {
	return &t.stats
}

// Execute runs the task: validate, resolve, minify stale files, then log the JS,
// CSS and total summaries. The first failure aborts the run.
func (t *Task) Execute() error {
	enc, err := t.validate()
	if err != nil {
		return err
	}

	// resolved up front: outputs written inside a file set must not be rescanned
	jobs, err := t.collect()
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if !job.Stale {
			t.logger().Debug("up to date", zap.String("file", job.Rel))
			continue
		}
		if err := t.compress(job, enc); err != nil {
			return err
		}
	}

	log := t.logger()
	log.Info(t.stats.JSSummary())
	log.Info(t.stats.CSSSummary())
	log.Info(t.stats.TotalSummary())

	if t.Report != "" {
		if err := NewReport(&t.stats, t.files).Save(t.Report); err != nil {
			return ioError("writing report "+t.Report, err)
		}
		log.Debug("report written", zap.String("path", t.Report))
	}
	return nil
}

// Plan validates the configuration and lists every job without touching any file.
func (t *Task) Plan() ([]Job, error) {
	if _, err := t.validate(); err != nil {
		return nil, err
	}
	return t.collect()
}

func (t *Task) collect() ([]Job, error) {
	var jobs []Job
	for job, err := range t.Jobs() {
		if err != nil {
			return nil, ioError("resolving file set", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Jobs lazily yields one Job per recognized file across all file sets, in scanner
// order. Unrecognized files are skipped. Iteration stops after the first error.
func (t *Task) Jobs() iter.Seq2[Job, error] {
	return func(yield func(Job, error) bool) {
		for _, set := range t.FileSets {
			for rel, err := range t.scanner().Scan(set) {
				if err != nil {
					yield(Job{}, err)
					return
				}
				ft, ok := Classify(rel)
				if !ok {
					continue
				}
				job := Job{
					Dir:    set.Dir,
					Rel:    rel,
					Type:   ft,
					Input:  filepath.Join(set.Dir, filepath.FromSlash(rel)),
					Output: filepath.Join(t.ToDir, filepath.FromSlash(OutputName(rel, ft, t.OutputSuffix(ft)))),
				}
				job.Stale = NeedsRecompression(job.Input, job.Output, t.Overwrite)
				if !yield(job, nil) {
					return
				}
			}
		}
	}
}

func (t *Task) validate() (encoding.Encoding, error) {
	if t.ToDir == "" {
		return nil, configErrorf("no output directory configured")
	}
	info, err := os.Stat(t.ToDir)
	if err != nil || !info.IsDir() {
		return nil, configErrorf("%s is not a valid directory", t.ToDir)
	}
	if len(t.FileSets) == 0 {
		return nil, configErrorf("no file sets configured")
	}
	for _, set := range t.FileSets {
		info, err := os.Stat(set.Dir)
		if err != nil || !info.IsDir() {
			return nil, configErrorf("file set directory %s is not a valid directory", set.Dir)
		}
	}
	enc, err := LookupCharset(t.Charset)
	if err != nil {
		return nil, &BuildError{Kind: ErrConfiguration, Msg: "unsupported charset name: " + t.Charset, Err: err}
	}
	return enc, nil
}

// compress minifies one stale job. The input is decoded fully before the output is
// created, so an output that is the input itself is still read intact.
func (t *Task) compress(job Job, enc encoding.Encoding) error {
	src, err := readDecoded(job.Input, enc)
	if err != nil {
		return ioError("reading input file "+job.Input, err)
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return ioError("creating output directory", err)
	}
	if err := t.writeMinified(job, enc, src); err != nil {
		return err
	}

	before := t.stats.Total
	line, err := t.stats.FileStats(job.Input, job.Output, job.Type)
	if err != nil {
		return ioError("measuring "+job.Output, err)
	}
	t.logger().Info(line)

	record := FileRecord{
		Input:       job.Input,
		Output:      job.Output,
		Type:        job.Type.String(),
		InputBytes:  t.stats.Total.InputBytes - before.InputBytes,
		OutputBytes: t.stats.Total.OutputBytes - before.OutputBytes,
	}

	if len(t.Precompress) > 0 {
		companions, err := precompress.File(job.Output, t.Precompress)
		if err != nil {
			return ioError("precompressing "+job.Output, err)
		}
		for _, c := range companions {
			t.logger().Debug("precompressed",
				zap.String("file", c.Path),
				zap.String("algorithm", string(c.Algorithm)),
				zap.Int64("bytes", c.Size))
			record.Companions = append(record.Companions, c.Path)
		}
	}
	t.files = append(t.files, record)
	return nil
}

// writeMinified writes the minified job to a temporary file next to the output and
// renames it into place, so a failed job never leaves an output that looks fresh.
func (t *Task) writeMinified(job Job, enc encoding.Encoding, src []byte) error {
	var buf bytes.Buffer
	if err := t.minify(job, &buf, bytes.NewReader(src)); err != nil {
		return ioError("compressing "+job.Input, err)
	}
	minified := escapeUnsupported(buf.Bytes(), enc, job.Type)

	tmp, err := os.CreateTemp(filepath.Dir(job.Output), "."+filepath.Base(job.Output)+".*")
	if err != nil {
		return ioError("writing output file "+job.Output, err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	w := newEncodingWriter(tmp, enc)
	if _, err := w.Write(minified); err != nil {
		return ioError("writing output file "+job.Output, err)
	}
	if err := w.Close(); err != nil {
		return ioError("writing output file "+job.Output, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return ioError("writing output file "+job.Output, err)
	}
	if err := tmp.Close(); err != nil {
		return ioError("writing output file "+job.Output, err)
	}
	if err := os.Rename(tmp.Name(), job.Output); err != nil {
		return ioError("writing output file "+job.Output, err)
	}
	return nil
}

func (t *Task) minify(job Job, w io.Writer, r io.Reader) error {
	switch job.Type {
	case JS:
		opts := JSOptions{
			Source:               job.Rel,
			LineBreak:            t.LineBreak,
			Munge:                t.Munge,
			Warn:                 t.Warn,
			PreserveSemicolons:   t.PreserveSemicolons,
			DisableOptimizations: !t.Optimize,
		}
		return t.jsMinifier().MinifyJS(w, r, opts, logReporter{log: t.logger()})
	case CSS:
		return t.cssMinifier().MinifyCSS(w, r, t.LineBreak)
	}
	return nil
}

func readDecoded(path string, enc encoding.Encoding) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeAll(bufio.NewReader(f), enc)
}

func (t *Task) scanner() Scanner {
	if t.Scanner == nil {
		return DirScanner{}
	}
	return t.Scanner
}

func (t *Task) jsMinifier() JSMinifier {
	if t.JS == nil {
		t.JS = NewTdewolffJS()
	}
	return t.JS
}

func (t *Task) cssMinifier() CSSMinifier {
	if t.CSS == nil {
		t.CSS = NewTdewolffCSS()
	}
	return t.CSS
}

func (t *Task) logger() *zap.Logger {
	if t.Log == nil {
		t.Log = zap.NewNop()
	}
	return t.Log
}
