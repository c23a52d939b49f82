package vim

import (
	"errors"
	"fmt"
)

// ErrIncompleteCommand is returned by Parse when the pending keystrokes
// are a valid prefix of a command. The caller keeps the buffer and waits
// for more input.
var ErrIncompleteCommand = errors.New("incomplete command")

// UnknownCommandError is returned when the pending keystrokes cannot
// begin any command. The caller discards the buffer.
type UnknownCommandError struct {
	Raw string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Raw)
}

// InvalidCommandError is returned when keystrokes form a recognizable but
// malformed command. The caller discards the buffer.
type InvalidCommandError struct {
	Reason string
}

func (e *InvalidCommandError) Error() string {
	return "invalid command: " + e.Reason
}

// EmptyRegisterError is returned by Execute when a put names a register
// with no contents. The buffer is left untouched.
type EmptyRegisterError struct {
	Register rune
}

func (e *EmptyRegisterError) Error() string {
	return fmt.Sprintf("register %q is empty", e.Register)
}
