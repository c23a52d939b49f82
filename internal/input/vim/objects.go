package vim

import (
	"github.com/andrew-pa/pk/internal/engine/buffer"
	"github.com/andrew-pa/pk/internal/engine/piece"
)

// objectRange resolves an an/inner selection. The returned range is
// inclusive of its End rune; the executor widens it like other inclusive
// motions.
func (m Motion) objectRange(b *buffer.Buffer, start piece.Index, count int) piece.Range {
	switch m.Object.Kind {
	case ObjBlock:
		return m.blockRange(b, start, count)
	case ObjWord:
		return m.wordRange(b, start, count, Classify)
	case ObjBigWord:
		return m.wordRange(b, start, count, ClassifyBig)
	case ObjParagraph:
		return m.paragraphRange(b, start)
	default:
		// The modifier means nothing for pure movements; resolve the
		// plain motion instead.
		plain := Motion{Count: count, Object: m.Object}
		return plain.Range(b, start, 0)
	}
}

// closingDelim returns the closing delimiter paired with open, or open
// itself for symmetric delimiters like quotes.
func closingDelim(open rune) rune {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	default:
		return open
	}
}

// findBlock locates the innermost block enclosing cursor that is opened
// by the given delimiter, honoring nesting. It returns the offsets of the
// opening and closing delimiters.
func findBlock(t *piece.Table, cursor piece.Index, open rune) (piece.Index, piece.Index, bool) {
	close := closingDelim(open)
	if close == open {
		return findQuote(t, cursor, open)
	}
	opener := piece.Index(-1)
	if c, ok := t.CharAt(cursor); ok && c == open {
		opener = cursor
	} else {
		from := cursor
		if c, ok := t.CharAt(cursor); ok && c == close {
			// On the closing delimiter: the enclosing block is the one
			// it closes.
			from = cursor - 1
		}
		depth := 0
		for i := from; i >= 0; i-- {
			c, ok := t.CharAt(i)
			if !ok {
				break
			}
			switch c {
			case close:
				depth++
			case open:
				if depth == 0 {
					opener = i
				} else {
					depth--
				}
			}
			if opener >= 0 {
				break
			}
		}
		if opener < 0 {
			return 0, 0, false
		}
	}
	depth := 0
	for i := opener + 1; i < t.Len(); i++ {
		c, ok := t.CharAt(i)
		if !ok {
			break
		}
		switch c {
		case open:
			depth++
		case close:
			if depth == 0 {
				return opener, i, true
			}
			depth--
		}
	}
	return 0, 0, false
}

// findQuote locates the quoted span around or after the cursor on the
// cursor's line. Quotes cannot nest, so they pair up in order from the
// line start; the selected pair is the first whose closing quote is at or
// past the cursor.
func findQuote(t *piece.Table, cursor piece.Index, q rune) (piece.Index, piece.Index, bool) {
	lineStart := piece.Index(0)
	if i, ok := t.LastIndexOf('\n', cursor); ok {
		lineStart = i + 1
	}
	lineEnd, ok := t.IndexOf('\n', cursor)
	if !ok {
		lineEnd = t.Len()
	}
	open := piece.Index(-1)
	for i := lineStart; i < lineEnd; i++ {
		c, ok := t.CharAt(i)
		if !ok {
			break
		}
		if c != q {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		if i >= cursor {
			return open, i, true
		}
		open = -1
	}
	return 0, 0, false
}

// blockRange selects a delimited block. An covers the delimiters, inner
// only what is between them. Extra repetitions select enclosing blocks.
// When no block encloses the cursor the result is empty: End lands one
// before Start, so the executor's inclusive widening yields nothing.
func (m Motion) blockRange(b *buffer.Buffer, start piece.Index, count int) piece.Range {
	cursor := start
	opener, closer := piece.Index(0), piece.Index(0)
	for i := 0; i < count; i++ {
		o, c, ok := findBlock(b.Text, cursor, m.Object.Char)
		if !ok {
			if i == 0 {
				return piece.Range{Start: start, End: start - 1}
			}
			break
		}
		opener, closer = o, c
		cursor = opener - 1
	}
	if m.Mod == ModInner {
		return piece.Range{Start: opener + 1, End: closer - 1}
	}
	return piece.Range{Start: opener, End: closer}
}

// runExtent returns the half-open extent of the class run containing at.
func runExtent(b *buffer.Buffer, at piece.Index, fn func(rune) CharClass) (piece.Index, piece.Index) {
	t := b.Text
	c, ok := t.CharAt(at)
	if !ok {
		return at, at
	}
	cls := fn(c)
	runStart := at
	for runStart > 0 {
		r, ok := t.CharAt(runStart - 1)
		if !ok || fn(r) != cls {
			break
		}
		runStart--
	}
	runEnd := at + 1
	for runEnd < t.Len() {
		r, ok := t.CharAt(runEnd)
		if !ok || fn(r) != cls {
			break
		}
		runEnd++
	}
	return runStart, runEnd
}

// wordRange selects the word under the cursor. An also consumes one
// adjacent whitespace run, preferring the trailing one; inner covers the
// word alone. Extra repetitions extend over following runs.
func (m Motion) wordRange(b *buffer.Buffer, start piece.Index, count int, fn func(rune) CharClass) piece.Range {
	t := b.Text
	runStart, runEnd := runExtent(b, start, fn)
	if runStart == runEnd {
		return piece.Range{Start: start, End: start}
	}
	r := piece.Range{Start: runStart, End: runEnd - 1}

	extendRun := func() {
		if r.End+1 >= t.Len() {
			return
		}
		_, e := runExtent(b, r.End+1, fn)
		r.End = e - 1
	}
	if m.Mod == ModAn {
		if c, ok := t.CharAt(r.End + 1); ok && isBlank(c) && c != '\n' {
			extendRun()
		} else if c, ok := t.CharAt(r.Start - 1); ok && isBlank(c) && c != '\n' {
			s, _ := runExtent(b, r.Start-1, fn)
			r.Start = s
		}
	}
	for i := 1; i < count; i++ {
		extendRun()
		if m.Mod == ModAn {
			if c, ok := t.CharAt(r.End + 1); ok && isBlank(c) && c != '\n' {
				extendRun()
			}
		}
	}
	return r
}

// paragraphRange selects the blank-line delimited paragraph around the
// cursor. An also consumes the trailing blank lines.
func (m Motion) paragraphRange(b *buffer.Buffer, start piece.Index) piece.Range {
	t := b.Text
	pStart := piece.Index(0)
	ln := b.CurrentStartOfLine(start)
	for ln > 0 {
		prev := b.PrevLineIndex(ln)
		if c, ok := t.CharAt(prev); ok && c == '\n' {
			pStart = prev + 1
			break
		}
		if prev == ln {
			break
		}
		ln = prev
	}
	pEnd := paragraph(b, start, Forward)
	if m.Mod == ModAn {
		for pEnd < t.Len() {
			c, ok := t.CharAt(pEnd)
			if !ok || c != '\n' {
				break
			}
			pEnd++
		}
	}
	if pEnd > pStart {
		return piece.Range{Start: pStart, End: pEnd - 1}
	}
	return piece.Range{Start: pStart, End: pStart}
}
