package vim

import "github.com/andrew-pa/pk/internal/engine/piece"

// Direction is re-exported from the engine so callers of this package do
// not need both imports for a motion literal.
type Direction = piece.Direction

const (
	Forward  = piece.Forward
	Backward = piece.Backward
)

// ObjectKind identifies the kind of a text object.
type ObjectKind uint8

const (
	// ObjChar is a single rune step.
	ObjChar ObjectKind = iota
	// ObjLine is a vertical step keeping the column when possible.
	ObjLine
	// ObjWord is the start of the next (or previous) small word.
	ObjWord
	// ObjBigWord is the start of the next (or previous) big word.
	ObjBigWord
	// ObjEndOfWord is the last rune of the current or next small word.
	ObjEndOfWord
	// ObjEndOfBigWord is the last rune of the current or next big word.
	ObjEndOfBigWord
	// ObjNextChar is the next occurrence of a specific rune.
	ObjNextChar
	// ObjRepeatNextChar repeats the last ObjNextChar, optionally flipping
	// its direction.
	ObjRepeatNextChar
	// ObjWholeLine covers whole lines including their newlines.
	ObjWholeLine
	// ObjStartOfLine is the first non-blank rune of the current line.
	ObjStartOfLine
	// ObjEndOfLine is the last position of the current line.
	ObjEndOfLine
	// ObjParagraph is the next (or previous) blank-line boundary.
	ObjParagraph
	// ObjBlock is a delimited block such as (...) or {...}, selected by
	// its opening delimiter and honoring nesting.
	ObjBlock
)

// String returns the string representation of the object kind.
func (k ObjectKind) String() string {
	names := [...]string{
		"char", "line", "word", "big-word", "end-of-word", "end-of-big-word",
		"next-char", "repeat-next-char", "whole-line", "start-of-line",
		"end-of-line", "paragraph", "block",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// TextObject describes what a motion travels over.
type TextObject struct {
	Kind ObjectKind
	Dir  Direction
	// Char is the target rune for NextChar and the opening delimiter for
	// Block.
	Char rune
	// PlaceBefore stops NextChar one rune short of the target.
	PlaceBefore bool
	// Opposite makes RepeatNextChar travel against the remembered
	// direction.
	Opposite bool
}

// Inclusive reports whether the rune the object lands on is part of the
// operated range. Exclusive objects land one past it. A backward find
// already lands on its target, which normalization places at the start of
// the range; widening the far side would push the target back out, so
// only the forward find is inclusive.
func (o TextObject) Inclusive() bool {
	switch o.Kind {
	case ObjEndOfWord, ObjEndOfBigWord:
		return true
	case ObjNextChar:
		return o.Dir == Forward
	default:
		return false
	}
}

// Modifier widens a text object from a landing point to a span.
type Modifier uint8

const (
	// ModNone leaves the object a plain motion.
	ModNone Modifier = iota
	// ModAn covers the object and its surroundings, delimiters or
	// adjacent whitespace included.
	ModAn
	// ModInner covers only the object itself.
	ModInner
)

// String returns the string representation of the modifier.
func (m Modifier) String() string {
	switch m {
	case ModAn:
		return "an"
	case ModInner:
		return "inner"
	default:
		return "none"
	}
}

// Motion is a repeatable movement over a text object.
type Motion struct {
	// Count repeats the motion; zero means one.
	Count  int
	Object TextObject
	Mod    Modifier
}

// reps returns the effective repetition count, folding in an operator
// count: "2d3w" operates over six words.
func (m Motion) reps(multiplier int) int {
	c := m.Count
	if c <= 0 {
		c = 1
	}
	if multiplier > 0 {
		c *= multiplier
	}
	return c
}
