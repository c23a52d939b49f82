package piece

// Direction selects which way a search or motion travels.
type Direction uint8

const (
	// Forward travels toward the end of the document.
	Forward Direction = iota
	// Backward travels toward the beginning of the document.
	Backward
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Reversed returns the opposite direction.
func (d Direction) Reversed() Direction {
	if d == Backward {
		return Forward
	}
	return Backward
}

// IndexOfFunc returns the offset of the first rune at or after start for
// which pred returns true. The second result is false when no rune
// matches.
func (t *Table) IndexOfFunc(pred func(rune) bool, start Index) (Index, bool) {
	if start < 0 {
		start = 0
	}
	ix := 0
	for _, p := range t.pieces {
		if start >= ix+p.Length {
			ix += p.Length
			continue
		}
		from := 0
		if start > ix {
			from = start - ix
		}
		for j := from; j < p.Length; j++ {
			if pred(t.sources[p.Source][p.Start+j]) {
				return ix + j, true
			}
		}
		ix += p.Length
	}
	return 0, false
}

// LastIndexOfFunc returns the offset of the last rune strictly before
// start for which pred returns true. The second result is false when no
// rune matches.
func (t *Table) LastIndexOfFunc(pred func(rune) bool, start Index) (Index, bool) {
	if n := t.Len(); start > n {
		start = n
	}
	ixEnd := t.Len()
	for i := len(t.pieces) - 1; i >= 0; i-- {
		p := t.pieces[i]
		pStart := ixEnd - p.Length
		if pStart >= start {
			ixEnd = pStart
			continue
		}
		hi := ixEnd
		if start < hi {
			hi = start
		}
		for j := hi - pStart - 1; j >= 0; j-- {
			if pred(t.sources[p.Source][p.Start+j]) {
				return pStart + j, true
			}
		}
		ixEnd = pStart
	}
	return 0, false
}

// IndexOf returns the offset of the first occurrence of r at or after
// start.
func (t *Table) IndexOf(r rune, start Index) (Index, bool) {
	return t.IndexOfFunc(func(c rune) bool { return c == r }, start)
}

// LastIndexOf returns the offset of the last occurrence of r strictly
// before start.
func (t *Table) LastIndexOf(r rune, start Index) (Index, bool) {
	return t.LastIndexOfFunc(func(c rune) bool { return c == r }, start)
}

// DirIndexOfFunc searches forward from start inclusive, or backward from
// start exclusive, depending on dir.
func (t *Table) DirIndexOfFunc(pred func(rune) bool, start Index, dir Direction) (Index, bool) {
	if dir == Backward {
		return t.LastIndexOfFunc(pred, start)
	}
	return t.IndexOfFunc(pred, start)
}

// DirIndexOf searches for r forward from start inclusive, or backward
// from start exclusive, depending on dir.
func (t *Table) DirIndexOf(r rune, start Index, dir Direction) (Index, bool) {
	return t.DirIndexOfFunc(func(c rune) bool { return c == r }, start, dir)
}
