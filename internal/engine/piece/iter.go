package piece

// Cursor lazily walks the document one rune at a time without
// materializing it. A cursor iterates in one direction; to change
// direction, restart with Chars at the desired offset.
type Cursor struct {
	t      *Table
	piece  int
	offset Index
	spent  bool // reverse iteration stepped past the first rune
}

// Chars returns a cursor positioned at the given offset. The offset may
// equal Len, in which case forward iteration is exhausted and reverse
// iteration starts at the last rune.
func (t *Table) Chars(at Index) *Cursor {
	c := &Cursor{t: t}
	if at < 0 {
		c.spent = true
		return c
	}
	ix := 0
	for i, p := range t.pieces {
		if at < ix+p.Length {
			c.piece = i
			c.offset = at - ix
			return c
		}
		ix += p.Length
	}
	c.piece = len(t.pieces)
	return c
}

// Next returns the rune at the cursor and advances one position. It
// returns false once the cursor has moved past the end of the document.
func (c *Cursor) Next() (rune, bool) {
	for c.piece < len(c.t.pieces) && c.offset >= c.t.pieces[c.piece].Length {
		c.piece++
		c.offset = 0
	}
	if c.piece >= len(c.t.pieces) {
		return 0, false
	}
	p := c.t.pieces[c.piece]
	r := c.t.sources[p.Source][p.Start+c.offset]
	c.offset++
	return r, true
}

// Prev returns the rune at the cursor and retreats one position. A cursor
// positioned at Len yields the last rune first. It returns false once the
// cursor has moved past the beginning of the document.
func (c *Cursor) Prev() (rune, bool) {
	if c.spent {
		return 0, false
	}
	// Positioned at the end, or on an exhausted piece boundary: back up
	// onto the last rune of the previous non-empty piece.
	for c.piece >= len(c.t.pieces) || c.offset >= c.t.pieces[c.piece].Length || c.t.pieces[c.piece].Length == 0 {
		if !c.stepBackPiece() {
			return 0, false
		}
	}
	p := c.t.pieces[c.piece]
	r := c.t.sources[p.Source][p.Start+c.offset]
	if c.offset > 0 {
		c.offset--
	} else if !c.stepBackPiece() {
		c.spent = true
	}
	return r, true
}

// stepBackPiece moves the cursor to the last rune of the nearest non-empty
// piece before the current one. It returns false at the beginning.
func (c *Cursor) stepBackPiece() bool {
	for i := c.piece - 1; i >= 0; i-- {
		if c.t.pieces[i].Length > 0 {
			c.piece = i
			c.offset = c.t.pieces[i].Length - 1
			return true
		}
	}
	c.spent = true
	return false
}
