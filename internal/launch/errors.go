package launch

import (
	"errors"
	"fmt"
)

// ErrNoPath is returned when a tool that needs a path has none.
var ErrNoPath = errors.New("no path provided")

// NotFoundError reports a referenced file or page that does not exist.
type NotFoundError struct {
	What string // "HTML file", "File", "Python script"
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Path)
}

// InterpreterNotFoundError reports a script interpreter that could not be
// started. Path is what was attempted so the config can be corrected.
type InterpreterNotFoundError struct {
	Path string
	Err  error
}

func (e *InterpreterNotFoundError) Error() string {
	return fmt.Sprintf("could not find interpreter %q; set settings.default_python or the tool's interpreter to a full path", e.Path)
}

func (e *InterpreterNotFoundError) Unwrap() error { return e.Err }

// UnsupportedTypeError reports a tool whose type tag names no launch strategy.
type UnsupportedTypeError struct {
	Tag string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported tool type: %q", e.Tag)
}

// LaunchFailedError wraps a failure from the OS while spawning or opening.
type LaunchFailedError struct {
	Target string
	Err    error
}

func (e *LaunchFailedError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Target, e.Err)
}

func (e *LaunchFailedError) Unwrap() error { return e.Err }
