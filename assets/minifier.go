package assets

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dchest/cssmin"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

// JSOptions is forwarded unchanged from the task configuration to the JS minifier.
type JSOptions struct {
	Source               string // name used in diagnostics
	LineBreak            int    // column after which to break lines, -1 for never
	Munge                bool   // shorten local identifiers
	Warn                 bool   // report suspicious constructs
	PreserveSemicolons   bool
	DisableOptimizations bool
}

// JSMinifier minifies JavaScript read from r into w, reporting diagnostics to rep.
// A fatal diagnostic must make MinifyJS return the error produced by rep.FatalError.
type JSMinifier interface {
	MinifyJS(w io.Writer, r io.Reader, opts JSOptions, rep ErrorReporter) error
}

// CSSMinifier minifies a stylesheet read from r into w.
type CSSMinifier interface {
	MinifyCSS(w io.Writer, r io.Reader, lineBreak int) error
}

// TdewolffJS is the default JSMinifier, backed by github.com/tdewolff/minify.
//
// The library always drops redundant semicolons and has no switch for its
// optimizations, so PreserveSemicolons and DisableOptimizations are accepted but
// have no effect on its output.
type TdewolffJS struct {
	m *minify.M
}

func NewTdewolffJS() *TdewolffJS {
	return &TdewolffJS{m: minify.New()}
}

func (t *TdewolffJS) MinifyJS(w io.Writer, r io.Reader, opts JSOptions, rep ErrorReporter) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if opts.Warn {
		reportJSWarnings(src, opts.Source, rep)
	}

	var buf bytes.Buffer
	minifier := &js.Minifier{KeepVarNames: !opts.Munge}
	if err := minifier.Minify(t.m, &buf, bytes.NewReader(src), nil); err != nil {
		return rep.FatalError(diagnosticFromError(err, opts.Source))
	}
	_, err = w.Write(insertLineBreaks(buf.Bytes(), opts.LineBreak, JS))
	return err
}

// TdewolffCSS is the default CSSMinifier.
type TdewolffCSS struct {
	m *minify.M
}

func NewTdewolffCSS() *TdewolffCSS {
	m := minify.New()
	m.Add(CSS.MediaType(), &css.Minifier{})
	return &TdewolffCSS{m: m}
}

func (t *TdewolffCSS) MinifyCSS(w io.Writer, r io.Reader, lineBreak int) error {
	var buf bytes.Buffer
	if err := t.m.Minify(CSS.MediaType(), &buf, r); err != nil {
		return err
	}
	_, err := w.Write(insertLineBreaks(buf.Bytes(), lineBreak, CSS))
	return err
}

// CSSMin is a CSSMinifier backed by github.com/dchest/cssmin, a port of the YUI
// stylesheet compressor.
type CSSMin struct{}

func (CSSMin) MinifyCSS(w io.Writer, r io.Reader, lineBreak int) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = w.Write(insertLineBreaks(cssmin.Minify(src), lineBreak, CSS))
	return err
}

// CSS engine names accepted by NewCSSMinifier.
const (
	CSSEngineTdewolff = "tdewolff"
	CSSEngineCSSMin   = "cssmin"
)

// NewCSSMinifier returns the CSSMinifier registered under engine; the empty name
// selects the tdewolff engine.
func NewCSSMinifier(engine string) (CSSMinifier, error) {
	switch engine {
	case "", CSSEngineTdewolff:
		return NewTdewolffCSS(), nil
	case CSSEngineCSSMin:
		return CSSMin{}, nil
	}
	return nil, fmt.Errorf("unknown css engine %q", engine)
}
