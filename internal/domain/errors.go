package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. errors.Is matches an *OpError
// against the sentinel of its Kind even when Err wraps something else.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrMissingVar      = errors.New("missing variable")
	ErrExecution       = errors.New("execution error")
)

// ErrorKind tells the CLI which user message to show.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindMissingVar    ErrorKind = "missing_variable"
	KindExecution     ErrorKind = "execution"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:      ErrNotFound,
	KindInvalidConfig: ErrInvalidConfig,
	KindMissingVar:    ErrMissingVar,
	KindExecution:     ErrExecution,
}

// OpError carries the failing operation ("mcpconfig.load", "usecase.select")
// and, for file-backed operations, the path involved.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// IsKind reports whether the outermost OpError in err's chain has kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the outermost OpError, or KindExecution for
// errors that carry none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	if err == nil {
		return ""
	}
	return KindExecution
}
