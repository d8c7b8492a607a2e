package assets

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Diagnostic is a message raised by a minifier about its input.
// Line and Column are 1-based; a negative Line means the position is unknown.
type Diagnostic struct {
	Message    string
	Source     string
	Line       int
	LineSource string
	Column     int
}

// String renders the diagnostic as "source:line:column:message", dropping the
// parts that are unknown.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Source != "" {
		b.WriteString(d.Source)
		b.WriteByte(':')
	}
	if d.Line >= 0 {
		b.WriteString(strconv.Itoa(d.Line))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(d.Column))
		b.WriteByte(':')
	}
	b.WriteString(d.Message)
	return b.String()
}

// ErrorReporter receives diagnostics from a JSMinifier while it runs.
type ErrorReporter interface {
	Warning(d Diagnostic)
	Error(d Diagnostic)
	// FatalError returns the error the minifier should abort with.
	FatalError(d Diagnostic) error
}

// EvaluatorError is returned by FatalError. It unwraps to ErrMinifier.
type EvaluatorError struct {
	Diagnostic
}

func (e *EvaluatorError) Error() string { return e.Diagnostic.String() }
func (e *EvaluatorError) Unwrap() error { return ErrMinifier }

// logReporter forwards diagnostics to the task logger, one severity per method.
type logReporter struct {
	log *zap.Logger
}

func (r logReporter) Warning(d Diagnostic) {
	r.log.Warn(d.String())
}

func (r logReporter) Error(d Diagnostic) {
	r.log.Error(d.String())
}

func (r logReporter) FatalError(d Diagnostic) error {
	r.log.Error(d.String())
	return &EvaluatorError{Diagnostic: d}
}
