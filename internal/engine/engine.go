package engine

import (
	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/engine/piece"
	"github.com/andrew-pa/pk/internal/input/mode"
	"github.com/andrew-pa/pk/internal/input/vim"
)

// Control keys the editor interprets itself.
const (
	// KeyEscape leaves insert mode or cancels pending normal-mode keys.
	KeyEscape = '\x1b'
	// KeyBackspace deletes the last typed rune in insert mode.
	KeyBackspace = '\x7f'
	// KeyEnter inserts a newline in insert mode.
	KeyEnter = '\r'
)

// Editor combines a buffer, the command interpreter and registers behind
// a keystroke interface. Construct one with New and drive it with Feed.
type Editor struct {
	buf  *buffer.Buffer
	exec vim.Executor
	regs vim.Registers

	normal mode.Normal
	insert *mode.Insert
	tag    vim.ModeTag

	unhandled func(vim.Command)
}

// New creates an editor in normal mode over an empty buffer, then applies
// the options.
func New(opts ...Option) *Editor {
	e := &Editor{
		buf:  buffer.WithText(""),
		regs: vim.Registers{},
		tag:  vim.ModeNormal,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Feed processes one keystroke in the current mode. Errors report
// unknown or invalid commands and failed executions; the buffer is left
// consistent either way.
func (e *Editor) Feed(r rune) error {
	switch e.tag {
	case vim.ModeInsert:
		e.feedInsert(r)
		return nil
	case vim.ModeNormal:
		return e.feedNormal(r)
	default:
		// Visual, command-line and search prompts belong to the
		// application; the editor only honors escape back to normal mode.
		if r == KeyEscape {
			e.tag = vim.ModeNormal
		}
		return nil
	}
}

// Type feeds each rune of s in order, stopping at the first error.
func (e *Editor) Type(s string) error {
	for _, r := range s {
		if err := e.Feed(r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) feedInsert(r rune) {
	switch r {
	case KeyEscape:
		e.insert.End()
		e.insert = nil
		e.tag = vim.ModeNormal
	case KeyBackspace, '\b':
		e.insert.Backspace()
	case KeyEnter:
		e.insert.Type('\n')
	default:
		e.insert.Type(r)
	}
}

func (e *Editor) feedNormal(r rune) error {
	if r == KeyEscape {
		e.normal.Reset()
		return nil
	}
	cmd, ok, err := e.normal.Press(r)
	if err != nil || !ok {
		return err
	}
	res, err := e.exec.Execute(cmd, e.buf, e.regs)
	if err != nil {
		return err
	}
	if res.Unhandled {
		if e.unhandled != nil {
			e.unhandled(cmd)
		}
		return nil
	}
	return e.enterMode(res.Mode)
}

// enterMode performs the mode transition a command requested.
func (e *Editor) enterMode(tag vim.ModeTag) error {
	switch tag {
	case vim.ModeNone:
		return nil
	case vim.ModeInsert:
		s, err := mode.BeginInsert(e.buf)
		if err != nil {
			return err
		}
		e.insert = s
	}
	e.tag = tag
	return nil
}

// Text returns the buffer contents.
func (e *Editor) Text() string {
	return e.buf.Text.Text()
}

// Cursor returns the cursor offset in runes.
func (e *Editor) Cursor() piece.Index {
	return e.buf.CursorIndex
}

// Mode returns the current mode.
func (e *Editor) Mode() vim.ModeTag {
	return e.tag
}

// Pending returns the normal-mode keystrokes awaiting completion, for
// display in a status line.
func (e *Editor) Pending() string {
	return e.normal.Pending()
}

// Register returns the contents of a register, or the empty string.
func (e *Editor) Register(name rune) string {
	return e.regs[name]
}

// Buffer exposes the underlying buffer for layers that render or persist
// it. Mutating it directly bypasses the command interpreter.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Undo reverses the most recent action, committing any open insert
// session first, and reports whether anything was undone.
func (e *Editor) Undo() bool {
	e.leaveInsert()
	ok := e.buf.Text.Undo()
	e.buf.CursorIndex = clamp(e.buf.CursorIndex, e.buf.Text.Len())
	return ok
}

// Redo re-applies the most recently undone action and reports whether
// anything was redone.
func (e *Editor) Redo() bool {
	e.leaveInsert()
	ok := e.buf.Text.Redo()
	e.buf.CursorIndex = clamp(e.buf.CursorIndex, e.buf.Text.Len())
	return ok
}

// leaveInsert drops back to normal mode. The table commits the open
// session itself before undoing, so only the mode state needs clearing.
func (e *Editor) leaveInsert() {
	if e.insert != nil {
		e.insert = nil
		e.tag = vim.ModeNormal
	}
}

func clamp(v, hi piece.Index) piece.Index {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
