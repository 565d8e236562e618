package derive

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrConfig indicates an invalid configuration file or option.
	ErrConfig = errors.New("configuration error")

	// ErrLoad indicates a failure to load or scan Go source.
	ErrLoad = errors.New("load error")

	// ErrUnsupported indicates a type declaration the generator cannot
	// derive traversals for.
	ErrUnsupported = errors.New("unsupported declaration")
)

// ConfigError reports an invalid configuration file.
type ConfigError struct {
	// Path is the configuration file path.
	Path string
	// Message describes the problem.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Path != "" {
		msg += fmt.Sprintf(" in %s", e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is reports whether target is [ErrConfig].
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// LoadError reports a failure to load Go packages or scan their syntax.
type LoadError struct {
	// Dir is the directory that was being loaded.
	Dir string
	// Message describes the failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := "load error"
	if e.Dir != "" {
		msg += fmt.Sprintf(" in %s", e.Dir)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Cause }

// Is reports whether target is [ErrLoad].
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// UnsupportedTypeError reports a field type shape the generator rejects.
type UnsupportedTypeError struct {
	// Decl is the declaring type name.
	Decl string
	// Field is the offending field, as "Variant.Field".
	Field string
	// TypeSpelling is the Go spelling of the rejected type.
	TypeSpelling string
	// Reason names the unsupported construct.
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported field type %s on %s.%s: %s",
		e.TypeSpelling, e.Decl, e.Field, e.Reason)
}

// Is reports whether target is [ErrUnsupported].
func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupported }
