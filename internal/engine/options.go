package engine

import (
	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/input/vim"
)

// Option configures an Editor during construction.
type Option func(*Editor)

// WithContent sets the initial buffer text. The cursor starts at offset
// zero.
func WithContent(text string) Option {
	return func(e *Editor) {
		e.buf = buffer.WithText(text)
	}
}

// WithIndenter plugs in indentation policy for the indent operators and
// for auto-indent when opening lines. Without one those are no-ops.
func WithIndenter(in vim.Indenter) Option {
	return func(e *Editor) {
		e.exec.Indenter = in
	}
}

// WithRegisters shares a register map across editors, so yanks in one
// buffer can be put in another.
func WithRegisters(regs vim.Registers) Option {
	return func(e *Editor) {
		e.regs = regs
	}
}

// WithUnhandled installs a callback for commands the core does not
// interpret: leader keystrokes and viewport scrolling.
func WithUnhandled(fn func(vim.Command)) Option {
	return func(e *Editor) {
		e.unhandled = fn
	}
}
