// Package buffer ties a piece table to a cursor and provides the
// line-oriented lookups motions are built from. A Buffer is single-owner,
// like the table it wraps.
package buffer

import "github.com/andrew-pa/pk/internal/engine/piece"

// Buffer is one open document: its text and the cursor position within it.
type Buffer struct {
	Text        *piece.Table
	CursorIndex piece.Index
}

// WithText creates a buffer containing text with the cursor at the start.
func WithText(text string) *Buffer {
	return &Buffer{Text: piece.WithText(text)}
}

// NextLineIndex returns the offset of the first rune after the next
// newline at or past at, or the document length when there is none. When
// at sits on a newline, the result is the start of the following line.
func (b *Buffer) NextLineIndex(at piece.Index) piece.Index {
	if i, ok := b.Text.IndexOf('\n', at); ok {
		return i + 1
	}
	return b.Text.Len()
}

// CurrentStartOfLine returns the offset of the first rune of the line
// containing at.
func (b *Buffer) CurrentStartOfLine(at piece.Index) piece.Index {
	if i, ok := b.Text.LastIndexOf('\n', at); ok {
		return i + 1
	}
	return 0
}

// PrevLineIndex returns the offset of the first rune of the line before
// the one containing at, or 0 when already on the first line.
func (b *Buffer) PrevLineIndex(at piece.Index) piece.Index {
	cur, ok := b.Text.LastIndexOf('\n', at)
	if !ok {
		return 0
	}
	if i, ok := b.Text.LastIndexOf('\n', cur); ok {
		return i + 1
	}
	return 0
}

// LineLen returns the length in runes of the line starting at start, not
// counting its newline.
func (b *Buffer) LineLen(start piece.Index) piece.Index {
	if i, ok := b.Text.IndexOf('\n', start); ok {
		return i - start
	}
	return b.Text.Len() - start
}

// ColumnForIndex returns the zero-based column of the given offset within
// its line.
func (b *Buffer) ColumnForIndex(at piece.Index) piece.Index {
	return at - b.CurrentStartOfLine(at)
}

// LineForIndex returns the zero-based line number of the given offset.
func (b *Buffer) LineForIndex(at piece.Index) int {
	line := 0
	cur := b.Text.Chars(0)
	for i := 0; i < at; i++ {
		r, ok := cur.Next()
		if !ok {
			break
		}
		if r == '\n' {
			line++
		}
	}
	return line
}

// CurrentColumn returns the column of the cursor.
func (b *Buffer) CurrentColumn() piece.Index {
	return b.ColumnForIndex(b.CursorIndex)
}
