package piece

import "fmt"

// Mutator batches single-rune typing into one growing piece so that a
// whole insert-mode session costs one piece and one action instead of one
// per keystroke.
//
// A table has at most one open mutator. Opening a second one, or starting
// any other mutation (including Undo), commits the open one first, so a
// typing burst can never be left unrecorded. Commit is idempotent; calls
// on a committed mutator are no-ops.
type Mutator struct {
	t         *Table
	plan      []Change
	source    int
	pieceIdx  int
	changeIdx int
	done      bool
}

// InsertMutator opens a mutator whose first typed rune will land at the
// given offset. Each session gets a fresh source, so committed sources are
// never appended to afterwards.
func (t *Table) InsertMutator(at Index) (*Mutator, error) {
	if at < 0 || at > t.Len() {
		return nil, fmt.Errorf("mutator at %d: %w", at, ErrIndexOutOfRange)
	}
	t.commitOpen()

	srcIdx := len(t.sources)
	t.sources = append(t.sources, nil)
	np := Piece{Source: srcIdx, Start: 0, Length: 0}

	plan := t.planInsert(np, at)
	for _, c := range plan {
		t.enact(c)
	}
	// A mid-piece splice plans [modify left, insert new, insert right];
	// otherwise the single change is the new piece.
	changeIdx := 0
	if len(plan) == 3 {
		changeIdx = 1
	}
	m := &Mutator{
		t:         t,
		plan:      plan,
		source:    srcIdx,
		pieceIdx:  plan[changeIdx].PieceIndex,
		changeIdx: changeIdx,
	}
	t.open = m
	return m, nil
}

// PushChar appends one rune at the mutator's position.
func (m *Mutator) PushChar(r rune) {
	if m.done {
		return
	}
	m.t.sources[m.source] = append(m.t.sources[m.source], r)
	m.t.pieces[m.pieceIdx].Length++
}

// PopChar removes the most recently pushed rune and reports whether the
// growing piece is now (or was already) empty.
func (m *Mutator) PopChar() bool {
	if m.done {
		return true
	}
	if m.t.pieces[m.pieceIdx].Length == 0 {
		return true
	}
	m.t.sources[m.source] = m.t.sources[m.source][:len(m.t.sources[m.source])-1]
	m.t.pieces[m.pieceIdx].Length--
	return m.t.pieces[m.pieceIdx].Length == 0
}

// Len returns the number of runes currently in the session.
func (m *Mutator) Len() Index {
	if m.done {
		return 0
	}
	return m.t.pieces[m.pieceIdx].Length
}

// Index returns the document offset just past the last typed rune, where
// the next PushChar will land.
func (m *Mutator) Index() Index {
	ix := 0
	for i := 0; i < m.pieceIdx; i++ {
		ix += m.t.pieces[i].Length
	}
	return ix + m.t.pieces[m.pieceIdx].Length
}

// Commit finalizes the session. A session that typed at least one rune is
// recorded as a single action carrying the final piece and its source
// text; an empty session is rolled back and records nothing. Commit is
// idempotent.
func (m *Mutator) Commit() {
	if m.done {
		return
	}
	m.done = true
	m.t.open = nil

	final := m.t.pieces[m.pieceIdx]
	if final.Length == 0 {
		// Nothing typed: unwind the structural splice.
		for i := len(m.plan) - 1; i >= 0; i-- {
			m.t.reverse(m.plan[i])
		}
		return
	}
	m.plan[m.changeIdx].New = final
	act := Action{
		ID:      m.t.nextID,
		Changes: m.plan,
		Sources: map[int]string{m.source: string(m.t.sources[m.source])},
	}
	m.t.nextID++
	m.t.pushAction(act)
}
