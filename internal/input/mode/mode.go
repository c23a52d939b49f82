// Package mode drives the keystroke-by-keystroke protocol around the
// command parser: normal mode accumulates pending keys until they form a
// command, and insert mode feeds typed runes through a table mutator so
// a whole typing session is one undoable action.
package mode

import (
	"errors"

	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/engine/piece"
	"github.com/andrew-pa/pk/internal/input/vim"
)

// Normal buffers pending keystrokes between commands.
type Normal struct {
	pending []rune
}

// Pending returns the keystrokes waiting for completion.
func (n *Normal) Pending() string {
	return string(n.pending)
}

// Reset discards the pending keystrokes, as on escape.
func (n *Normal) Reset() {
	n.pending = n.pending[:0]
}

// Press feeds one keystroke. When the accumulated keys form a command it
// is returned with ok true and the buffer cleared. An incomplete prefix
// keeps the buffer and returns ok false. Unknown or invalid input clears
// the buffer and returns the parse error.
func (n *Normal) Press(r rune) (vim.Command, bool, error) {
	n.pending = append(n.pending, r)
	cmd, err := vim.Parse(string(n.pending))
	if errors.Is(err, vim.ErrIncompleteCommand) {
		return vim.Command{}, false, nil
	}
	n.Reset()
	if err != nil {
		return vim.Command{}, false, err
	}
	return cmd, true, nil
}

// Insert is one insert-mode session over a buffer. All runes typed until
// End land in a single piece and undo as a unit.
type Insert struct {
	b *buffer.Buffer
	m *piece.Mutator
}

// BeginInsert opens a typing session at the buffer's cursor.
func BeginInsert(b *buffer.Buffer) (*Insert, error) {
	m, err := b.Text.InsertMutator(b.CursorIndex)
	if err != nil {
		return nil, err
	}
	return &Insert{b: b, m: m}, nil
}

// Type inserts one rune at the cursor and advances it.
func (i *Insert) Type(r rune) {
	i.m.PushChar(r)
	i.b.CursorIndex++
}

// Backspace removes the most recently typed rune. Deleting past the
// start of the session is a no-op, keeping the session self-contained.
func (i *Insert) Backspace() {
	if i.m.Len() == 0 {
		return
	}
	i.m.PopChar()
	i.b.CursorIndex--
}

// End commits the session, as on escape. The cursor stays where typing
// left it.
func (i *Insert) End() {
	i.m.Commit()
}
