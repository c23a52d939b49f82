package vim

import (
	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/engine/piece"
)

// classScanner walks runes in one direction as classes, with one rune of
// lookahead. It wraps the table's lazy cursor so motions never
// materialize the document.
type classScanner struct {
	cur    *piece.Cursor
	fn     func(rune) CharClass
	back   bool
	peeked bool
	head   CharClass
	headOK bool
}

func newScanner(b *buffer.Buffer, at piece.Index, back bool, fn func(rune) CharClass) *classScanner {
	return &classScanner{cur: b.Text.Chars(at), fn: fn, back: back}
}

// peek returns the class at the scanner position without consuming it.
func (s *classScanner) peek() (CharClass, bool) {
	if !s.peeked {
		var r rune
		var ok bool
		if s.back {
			r, ok = s.cur.Prev()
		} else {
			r, ok = s.cur.Next()
		}
		s.head, s.headOK = s.fn(r), ok
		s.peeked = true
	}
	return s.head, s.headOK
}

// take consumes and returns the class at the scanner position.
func (s *classScanner) take() (CharClass, bool) {
	c, ok := s.peek()
	s.peeked = false
	return c, ok
}

// Range resolves the motion from start into a document range. Start is
// always the given position; End is where the motion lands (for plain
// motions) or the far side of the selected span (for an/inner objects).
// Range is a pure query. RepeatNextChar must be substituted with the
// remembered NextChar before calling; unresolved it goes nowhere.
func (m Motion) Range(b *buffer.Buffer, start piece.Index, multiplier int) piece.Range {
	r := piece.Range{Start: start, End: start}
	if m.Mod != ModNone {
		return m.objectRange(b, start, m.reps(multiplier))
	}
	for i := 0; i < m.reps(multiplier); i++ {
		r = m.step(b, r, start)
	}
	return r
}

// step advances one repetition of the motion.
func (m Motion) step(b *buffer.Buffer, r piece.Range, origin piece.Index) piece.Range {
	t := b.Text
	switch m.Object.Kind {
	case ObjChar:
		if m.Object.Dir == Forward {
			if r.End < t.Len() {
				r.End++
			}
		} else if r.End > 0 {
			r.End--
		}

	case ObjLine:
		var nl piece.Index
		if m.Object.Dir == Forward {
			nl = b.NextLineIndex(r.End)
		} else {
			nl = b.PrevLineIndex(r.End)
		}
		col := b.ColumnForIndex(origin)
		if ll := b.LineLen(nl); col > ll {
			col = ll
		}
		r.End = nl + col

	case ObjStartOfLine:
		r.End = b.CurrentStartOfLine(r.End)
		// Land on the first non-blank rune of the line.
		for {
			c, ok := t.CharAt(r.End)
			if !ok || c == '\n' || !isBlank(c) {
				break
			}
			r.End++
		}

	case ObjEndOfLine:
		r.End = b.NextLineIndex(r.End) - 1
		if r.End < 0 {
			r.End = 0
		}

	case ObjWholeLine:
		r.Start = b.CurrentStartOfLine(r.Start)
		r.End = b.NextLineIndex(r.End)

	case ObjWord:
		if m.Object.Dir == Forward {
			r.End = wordForward(b, r.End)
		} else {
			r.End = wordBackward(b, r.End, Classify)
		}

	case ObjBigWord:
		if m.Object.Dir == Forward {
			r.End = bigWordForward(b, r.End)
		} else {
			r.End = bigWordBackward(b, r.End)
		}

	case ObjEndOfWord:
		r.End = endOfWord(b, r.End, m.Object.Dir, Classify)

	case ObjEndOfBigWord:
		r.End = endOfWord(b, r.End, m.Object.Dir, ClassifyBig)

	case ObjNextChar:
		r.End = nextChar(b, r.End, m.Object)

	case ObjParagraph:
		r.End = paragraph(b, r.End, m.Object.Dir)

	case ObjRepeatNextChar, ObjBlock:
		// RepeatNextChar is resolved by the executor; a bare Block needs
		// a modifier to select anything.
	}
	return r
}

// wordForward finds the start of the next small word: the end of the
// current run, then past any whitespace.
func wordForward(b *buffer.Buffer, at piece.Index) piece.Index {
	t := b.Text
	c, ok := t.CharAt(at)
	if !ok {
		return at
	}
	var boundary piece.Index
	if isWordRune(c) {
		f, ok := t.IndexOfFunc(func(r rune) bool { return !isWordRune(r) }, at)
		if !ok {
			return at
		}
		boundary = f
	} else {
		f, ok := t.IndexOfFunc(func(r rune) bool { return isBlank(r) || isWordRune(r) }, at+1)
		if !ok {
			return at
		}
		boundary = f
	}
	if c, ok := t.CharAt(boundary); ok && isBlank(c) {
		if f, ok := t.IndexOfFunc(func(r rune) bool { return !isBlank(r) }, boundary); ok {
			return f
		}
	}
	return boundary
}

// wordBackward finds the start of the current or previous word: back over
// whitespace, then back over the run whose class starts it.
func wordBackward(b *buffer.Buffer, at piece.Index, fn func(rune) CharClass) piece.Index {
	s := newScanner(b, at, true, fn)
	if _, ok := s.take(); !ok {
		return 0
	}
	end := at - 1
	for {
		c, ok := s.peek()
		if !ok || c != ClassWhitespace {
			break
		}
		s.take()
		end--
	}
	runClass, ok := s.peek()
	if !ok {
		if end < 0 {
			end = 0
		}
		return end
	}
	for end > 0 {
		c, ok := s.take()
		if !ok || c != runClass {
			break
		}
		end--
	}
	if end > 0 {
		end++
	}
	if end < 0 {
		end = 0
	}
	return end
}

// bigWordForward finds the start of the next big word using blank runs as
// the only separators.
func bigWordForward(b *buffer.Buffer, at piece.Index) piece.Index {
	t := b.Text
	blank, ok := t.IndexOfFunc(isBlank, at)
	if !ok {
		return at
	}
	if f, ok := t.IndexOfFunc(func(r rune) bool { return !isBlank(r) }, blank); ok {
		return f
	}
	return blank
}

// bigWordBackward finds the start of the current or previous big word.
func bigWordBackward(b *buffer.Buffer, at piece.Index) piece.Index {
	t := b.Text
	blank, ok := t.LastIndexOfFunc(isBlank, at)
	if !ok {
		return 0
	}
	if f, ok := t.LastIndexOfFunc(isBlank, blank); ok {
		return f + 1
	}
	return 0
}

// endOfWord finds the last rune of the current word going forward, or the
// last rune of the previous word going backward. The classifier selects
// small or big words.
func endOfWord(b *buffer.Buffer, at piece.Index, dir Direction, fn func(rune) CharClass) piece.Index {
	if dir == Backward {
		return endOfWordBackward(b, at, fn)
	}
	s := newScanner(b, at, false, fn)
	startClass, ok := s.take()
	if !ok {
		return at
	}
	end := at + 1

	next, nextOK := s.peek()
	if startClass != ClassWhitespace && nextOK && next == startClass {
		// Mid-run: travel to the run boundary.
		for {
			c, ok := s.peek()
			if !ok || c != startClass {
				break
			}
			s.take()
			end++
		}
	} else {
		// Already at an end: cross whitespace to the next run, then
		// travel to its far side.
		for {
			c, ok := s.peek()
			if !ok || c != ClassWhitespace {
				break
			}
			s.take()
			end++
		}
		runClass, ok := s.peek()
		if !ok {
			return b.Text.Len() - 1
		}
		for {
			c, ok := s.peek()
			if !ok || c != runClass {
				break
			}
			s.take()
			end++
		}
	}
	// Step back onto the last rune of the run.
	return end - 1
}

// endOfWordBackward backs out of the current run, then over whitespace,
// landing on the last rune of the word before it.
func endOfWordBackward(b *buffer.Buffer, at piece.Index, fn func(rune) CharClass) piece.Index {
	s := newScanner(b, at, true, fn)
	startClass, ok := s.take()
	if !ok {
		if at > 0 {
			return at - 1
		}
		return 0
	}
	end := at - 1
	if startClass != ClassWhitespace {
		for {
			c, ok := s.peek()
			if !ok || c != startClass {
				break
			}
			s.take()
			end--
		}
	}
	for {
		c, ok := s.peek()
		if !ok || c != ClassWhitespace {
			break
		}
		s.take()
		end--
	}
	if end < 0 {
		end = 0
	}
	return end
}

// nextChar finds the next occurrence of the object's rune, leaving the
// position unchanged when there is none.
func nextChar(b *buffer.Buffer, at piece.Index, o TextObject) piece.Index {
	t := b.Text
	from := at + 1
	if o.Dir == Backward {
		from = at - 1
	}
	idx, ok := t.DirIndexOf(o.Char, from, o.Dir)
	if !ok {
		return at
	}
	if o.PlaceBefore {
		if o.Dir == Forward {
			idx--
		} else {
			idx++
		}
	}
	return idx
}

// paragraph finds the next (or previous) blank-line boundary, landing on
// the start of the empty line, or the document edge when there is none.
func paragraph(b *buffer.Buffer, at piece.Index, dir Direction) piece.Index {
	if dir == Forward {
		ln := b.NextLineIndex(at)
		for ln < b.Text.Len() {
			if c, ok := b.Text.CharAt(ln); ok && c == '\n' {
				return ln
			}
			ln = b.NextLineIndex(ln)
		}
		return b.Text.Len()
	}
	ln := b.CurrentStartOfLine(at)
	for ln > 0 {
		ln = b.PrevLineIndex(ln)
		if c, ok := b.Text.CharAt(ln); ok && c == '\n' {
			return ln
		}
	}
	return 0
}
