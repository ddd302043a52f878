package filelog

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrClosed is the cause of every write attempted after Close.
var ErrClosed = errors.New("filelog: logger is closed")

// ConfigurationError reports a caller mistake such as an unknown severity.
// It is never caused by I/O and is never retried.
type ConfigurationError struct {
	Value  interface{} // Offending value as given by the caller.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("filelog: %s: %v", e.Reason, e.Value)
}

// IOError reports a failed directory, file or stream operation.
type IOError struct {
	Op   string // mkdir, open, access, write, sync, close, stream
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("filelog: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause so errors.Is(err, os.ErrPermission) works.
func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports that a record could not be rendered. Nothing is written.
type FormatError struct {
	Part string // Which part of the record failed, e.g. "context".
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("filelog: format %s: %v", e.Part, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func newIOError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: errors.WithStack(err)}
}

func newFormatError(part string, err error) error {
	return &FormatError{Part: part, Err: errors.WithStack(err)}
}

// IsConfiguration reports whether err is, or wraps, a *ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsIO reports whether err is, or wraps, an *IOError.
func IsIO(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}

// IsFormat reports whether err is, or wraps, a *FormatError.
func IsFormat(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

// Kind names the taxonomy class of err: "configuration", "io", "format",
// or "unknown" for anything else. It returns "" for a nil error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConfiguration(err):
		return "configuration"
	case IsIO(err):
		return "io"
	case IsFormat(err):
		return "format"
	default:
		return "unknown"
	}
}
