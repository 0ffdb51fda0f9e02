package actions

import (
	"fmt"
	"strings"
)

// ParseError reports raw input that cannot be turned into a command:
// an unknown name, a malformed template or input of the wrong shape.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}

func parseErrorf(input any, format string, args ...any) *ParseError {
	return &ParseError{
		Input:  fmt.Sprint(input),
		Reason: fmt.Sprintf(format, args...),
	}
}

// ValidationError reports a command whose meta failed validation. Err is
// usually a *validate.Error naming the field and the offending value.
type ValidationError struct {
	Command string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("action '%s' meta invalid - %v", e.Command, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CommandError is a command failure while running. Frames lists the names
// of the commands it propagated through, outermost first.
type CommandError struct {
	Frames []string
	Err    error
}

func (e *CommandError) Error() string {
	if len(e.Frames) == 0 {
		return e.Err.Error()
	}
	return strings.Join(e.Frames, " - ") + " - " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// withFrame returns err annotated with one more outer frame. An existing
// *CommandError is copied, never modified.
func withFrame(name string, err error) *CommandError {
	if ce, ok := err.(*CommandError); ok {
		frames := make([]string, 0, len(ce.Frames)+1)
		frames = append(frames, name)
		frames = append(frames, ce.Frames...)
		return &CommandError{Frames: frames, Err: ce.Err}
	}
	return &CommandError{Frames: []string{name}, Err: err}
}
