package assets

import (
	"errors"
	"fmt"
)

// Sentinel errors for package assets.
// A *BuildError always unwraps to exactly one of these kinds.
var (
	// Configuration problems, detected before any file is written
	ErrConfiguration = errors.New("configuration error")

	// Reading inputs, writing outputs, creating directories, scanning file sets
	ErrIO = errors.New("i/o error")

	// The minifier rejected its input
	ErrMinifier = errors.New("minifier error")
)

// BuildError is the fatal failure of a Task. It carries a human readable message,
// the error kind and, where there is one, the underlying cause.
type BuildError struct {
	Kind error
	Msg  string
	Err  error
}

func (e *BuildError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *BuildError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func configErrorf(format string, args ...any) error {
	return &BuildError{Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

func ioError(msg string, err error) error {
	return &BuildError{Kind: ErrIO, Msg: msg, Err: err}
}
