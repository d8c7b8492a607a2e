package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/assetmin/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// taskFlags are shared by every command that resolves a task: minify, check and list.
type taskFlags struct {
	configPath string
	envFile    string
	verbose    bool

	toDir              string
	charset            string
	lineBreak          int
	munge              bool
	warn               bool
	preserveSemicolons bool
	optimize           bool
	jsSuffix           string
	cssSuffix          string
	overwrite          bool
	cssEngine          string
	precompress        []string
	report             string

	includes          []string
	excludes          []string
	noDefaultExcludes bool
}

func (f *taskFlags) register(cmd *cobra.Command) {
	defaults := config.Defaults()
	flags := cmd.Flags()

	flags.StringVarP(&f.configPath, "config", "c", "", "YAML task file")
	flags.StringVar(&f.envFile, "env-file", "", "dotenv file with ASSETMIN_* overrides")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")

	flags.StringVarP(&f.toDir, "to-dir", "o", "", "Destination directory (must exist)")
	flags.StringVar(&f.charset, "charset", defaults.Charset, "Charset used to read inputs and write outputs")
	flags.IntVar(&f.lineBreak, "line-break", defaults.LineBreak, "Insert a line break after this column, -1 to disable")
	flags.BoolVar(&f.munge, "munge", defaults.Munge, "Shorten local JavaScript identifiers")
	flags.BoolVar(&f.warn, "warn", defaults.Warn, "Report suspicious JavaScript constructs")
	flags.BoolVar(&f.preserveSemicolons, "preserve-semicolons", defaults.PreserveSemicolons, "Keep all semicolons")
	flags.BoolVar(&f.optimize, "optimize", defaults.Optimize, "Enable micro optimizations")
	flags.StringVar(&f.jsSuffix, "js-suffix", defaults.JSSuffix, "Replaces .js in output file names")
	flags.StringVar(&f.cssSuffix, "css-suffix", defaults.CSSSuffix, "Replaces .css in output file names")
	flags.BoolVar(&f.overwrite, "overwrite", defaults.Overwrite, "Rebuild outputs even when up to date")
	flags.StringVar(&f.cssEngine, "css-engine", defaults.CSSEngine, "CSS minifier: tdewolff or cssmin")
	flags.StringSliceVar(&f.precompress, "precompress", nil, "Write compressed companions: gzip, brotli, zstd, lz4, snappy")
	flags.StringVar(&f.report, "report", "", "Write a JSON report to this path")

	flags.StringSliceVarP(&f.includes, "include", "i", nil, "Include pattern for directory arguments (default **)")
	flags.StringSliceVarP(&f.excludes, "exclude", "x", nil, "Exclude pattern for directory arguments")
	flags.BoolVar(&f.noDefaultExcludes, "no-default-excludes", false, "Do not skip VCS and editor files")
}

// load resolves the configuration: defaults, then the YAML file, then the env file
// and process environment, then explicitly set flags. Every directory argument
// becomes one more file set.
func (f *taskFlags) load(cmd *cobra.Command, dirs []string) (*config.Config, error) {
	cfg := config.Defaults()
	if f.configPath != "" {
		if err := cfg.LoadFile(f.configPath); err != nil {
			return nil, err
		}
	}

	var vars map[string]string
	if f.envFile != "" {
		var err error
		if vars, err = config.LoadEnvFile(f.envFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(config.EnvLookup(vars)); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("to-dir") {
		cfg.ToDir = f.toDir
	}
	if changed("charset") {
		cfg.Charset = f.charset
	}
	if changed("line-break") {
		cfg.LineBreak = f.lineBreak
	}
	if changed("munge") {
		cfg.Munge = f.munge
	}
	if changed("warn") {
		cfg.Warn = f.warn
	}
	if changed("preserve-semicolons") {
		cfg.PreserveSemicolons = f.preserveSemicolons
	}
	if changed("optimize") {
		cfg.Optimize = f.optimize
	}
	if changed("js-suffix") {
		cfg.JSSuffix = f.jsSuffix
	}
	if changed("css-suffix") {
		cfg.CSSSuffix = f.cssSuffix
	}
	if changed("overwrite") {
		cfg.Overwrite = f.overwrite
	}
	if changed("css-engine") {
		cfg.CSSEngine = f.cssEngine
	}
	if changed("precompress") {
		cfg.Precompress = f.precompress
	}
	if changed("report") {
		cfg.Report = f.report
	}

	for _, dir := range dirs {
		cfg.FileSets = append(cfg.FileSets, config.FileSet{
			Dir:               dir,
			Includes:          f.includes,
			Excludes:          f.excludes,
			NoDefaultExcludes: f.noDefaultExcludes,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes console formatted entries to the command's stderr.
func newLogger(cmd *cobra.Command, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(cmd.ErrOrStderr()),
		level,
	)
	return zap.New(core)
}

// pathsOverlap reports whether one path contains the other.
func pathsOverlap(path1, path2 string) bool {
	abs1, err := filepath.Abs(path1)
	if err != nil {
		return false
	}
	abs2, err := filepath.Abs(path2)
	if err != nil {
		return false
	}
	return isWithin(abs1, abs2) || isWithin(abs2, abs1)
}

func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}

// warnOverlaps logs a warning for every file set that contains the output directory
// or sits inside it, since outputs there are picked up as inputs on the next run.
func warnOverlaps(log *zap.Logger, cfg *config.Config) {
	if cfg.ToDir == "" {
		return
	}
	for _, set := range cfg.FileSets {
		if pathsOverlap(set.Dir, cfg.ToDir) {
			log.Warn(fmt.Sprintf("output directory %s overlaps file set %s", cfg.ToDir, set.Dir))
		}
	}
}
