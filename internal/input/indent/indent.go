// Package indent supplies indentation policies for the command
// interpreter's Indenter hook. Tabs is the fixed hard-tab policy; Script
// delegates level sensing to a Lua rule so indentation can follow
// language conventions without recompiling.
package indent

import (
	"strings"

	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/engine/piece"
)

// Tabs indents with one hard tab per level.
type Tabs struct{}

// SenseIndentLevel counts the leading tabs of the line containing at.
func (Tabs) SenseIndentLevel(b *buffer.Buffer, at piece.Index) int {
	line := lineText(b, at)
	n := 0
	for _, r := range line {
		if r != '\t' {
			break
		}
		n++
	}
	return n
}

// Indent shifts the line starting at `at` by the given number of levels.
func (Tabs) Indent(b *buffer.Buffer, at piece.Index, levels int) (piece.Index, error) {
	return shift(b, at, levels, "\t")
}

// lineText returns the text of the line containing at, without its
// newline.
func lineText(b *buffer.Buffer, at piece.Index) string {
	start := b.CurrentStartOfLine(at)
	end, ok := b.Text.IndexOf('\n', start)
	if !ok {
		end = b.Text.Len()
	}
	text, err := b.Text.CopyRange(start, end)
	if err != nil {
		return ""
	}
	return text
}

// shift inserts or removes whole indent units at a line start and
// returns the signed rune delta.
func shift(b *buffer.Buffer, at piece.Index, levels int, unit string) (piece.Index, error) {
	if levels == 0 || unit == "" {
		return 0, nil
	}
	width := piece.Index(len([]rune(unit)))
	if levels > 0 {
		ins := strings.Repeat(unit, levels)
		if err := b.Text.InsertRange(ins, at); err != nil {
			return 0, err
		}
		return width * piece.Index(levels), nil
	}
	var delta piece.Index
	for i := 0; i < -levels; i++ {
		if at+width > b.Text.Len() {
			break
		}
		got, err := b.Text.CopyRange(at, at+width)
		if err != nil || got != unit {
			break
		}
		if err := b.Text.DeleteRange(at, at+width); err != nil {
			return delta, err
		}
		delta -= width
	}
	return delta, nil
}
