package assets

import (
	"bytes"
	"errors"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// jsWarner collects constructs that survive minification but are worth flagging.
type jsWarner struct {
	found []string
}

func (w *jsWarner) Enter(n js.INode) js.IVisitor {
	switch n := n.(type) {
	case *js.WithStmt:
		w.found = append(w.found, "Using 'with' is not recommended.")
	case *js.DebuggerStmt:
		w.found = append(w.found, "Found a 'debugger' statement.")
	case *js.CallExpr:
		if v, ok := n.X.(*js.Var); ok && string(v.Data) == "eval" {
			w.found = append(w.found, "Using 'eval' is not recommended.")
		}
	}
	return w
}

func (w *jsWarner) Exit(js.INode) {}

// reportJSWarnings parses src and sends one warning per suspicious construct to rep.
// Parse failures are left for the minifier to report.
func reportJSWarnings(src []byte, source string, rep ErrorReporter) {
	ast, err := js.Parse(parse.NewInputBytes(bytes.Clone(src)), js.Options{})
	if err != nil {
		return
	}
	w := &jsWarner{}
	js.Walk(w, ast)
	for _, msg := range w.found {
		rep.Warning(Diagnostic{Message: msg, Source: source, Line: -1})
	}
}

// diagnosticFromError converts a minifier failure into a Diagnostic, keeping the
// position when the library reports one.
func diagnosticFromError(err error, source string) Diagnostic {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return Diagnostic{
			Message:    perr.Message,
			Source:     source,
			Line:       perr.Line,
			LineSource: perr.Context,
			Column:     perr.Column,
		}
	}
	return Diagnostic{Message: err.Error(), Source: source, Line: -1}
}
