package piece

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrIndexOutOfRange is returned when an index is outside the document.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrRangeInvalid is returned when a range is reversed or outside the document.
	ErrRangeInvalid = errors.New("invalid range")
	// ErrStaleAction is returned when a replayed action does not advance the
	// table's action clock.
	ErrStaleAction = errors.New("stale action id")
	// ErrSourceMismatch is returned when a replayed action references sources
	// the table cannot reconcile with its own store.
	ErrSourceMismatch = errors.New("action sources do not line up with the store")
)

// Table is a piece-table document with a replayable action log.
//
// The zero value is not usable; construct with WithText or WithTextAt.
type Table struct {
	sources [][]rune
	pieces  []Piece
	history []Action
	redo    []Action
	nextID  ActionID
	open    *Mutator
}

// WithText creates a table containing text, with action ids starting at 1.
func WithText(text string) *Table {
	return WithTextAt(text, 1)
}

// WithTextAt creates a table containing text whose first recorded action
// will carry the id next. Replicas of the same document agree on the
// starting id so their logical clocks line up.
func WithTextAt(text string, next ActionID) *Table {
	src := []rune(text)
	t := &Table{
		sources: [][]rune{src},
		nextID:  next,
	}
	if len(src) > 0 {
		t.pieces = []Piece{{Source: 0, Start: 0, Length: len(src)}}
	}
	return t
}

// Len returns the document length in runes.
func (t *Table) Len() Index {
	n := 0
	for _, p := range t.pieces {
		n += p.Length
	}
	return n
}

// Text materializes the whole document as a string.
func (t *Table) Text() string {
	var b strings.Builder
	for _, p := range t.pieces {
		b.WriteString(string(t.sources[p.Source][p.Start:p.end()]))
	}
	return b.String()
}

// CharAt returns the rune at the given offset, or false when the offset
// is outside the document.
func (t *Table) CharAt(at Index) (rune, bool) {
	if at < 0 {
		return 0, false
	}
	ix := 0
	for _, p := range t.pieces {
		if at < ix+p.Length {
			return t.sources[p.Source][p.Start+(at-ix)], true
		}
		ix += p.Length
	}
	return 0, false
}

// CopyRange returns the text in the half-open range [start, end).
func (t *Table) CopyRange(start, end Index) (string, error) {
	if start < 0 || start > end || end > t.Len() {
		return "", fmt.Errorf("copy [%d:%d): %w", start, end, ErrRangeInvalid)
	}
	var b strings.Builder
	ix := 0
	for _, p := range t.pieces {
		pStart, pEnd := ix, ix+p.Length
		ix = pEnd
		if pEnd <= start || pStart >= end {
			continue
		}
		lo := pStart
		if start > lo {
			lo = start
		}
		hi := pEnd
		if end < hi {
			hi = end
		}
		b.WriteString(string(t.sources[p.Source][p.Start+(lo-pStart) : p.Start+(hi-pStart)]))
	}
	return b.String(), nil
}

// InsertRange inserts text so that its first rune lands at the given
// offset. Inserting at Len appends. The whole insertion is recorded as a
// single action.
func (t *Table) InsertRange(text string, at Index) error {
	if at < 0 || at > t.Len() {
		return fmt.Errorf("insert at %d: %w", at, ErrIndexOutOfRange)
	}
	if text == "" {
		return nil
	}
	t.commitOpen()

	src := []rune(text)
	srcIdx := len(t.sources)
	t.sources = append(t.sources, src)
	np := Piece{Source: srcIdx, Start: 0, Length: len(src)}

	plan := t.planInsert(np, at)
	t.pushAction(t.applyPlan(plan, map[int]string{srcIdx: text}))
	return nil
}

// InsertPiece re-inserts a span that already lives in the source store,
// placing its first rune at the given offset. Used to replay a prior
// insertion (the repeat command) without duplicating the source text.
func (t *Table) InsertPiece(p Piece, at Index) error {
	if at < 0 || at > t.Len() {
		return fmt.Errorf("insert piece at %d: %w", at, ErrIndexOutOfRange)
	}
	if p.Source < 0 || p.Source >= len(t.sources) || p.end() > len(t.sources[p.Source]) {
		return fmt.Errorf("insert piece %s: %w", p, ErrSourceMismatch)
	}
	if p.Length == 0 {
		return nil
	}
	t.commitOpen()
	plan := t.planInsert(p, at)
	t.pushAction(t.applyPlan(plan, nil))
	return nil
}

// planInsert computes, from a read-only scan, the changes that splice np
// into the piece list at document offset at.
func (t *Table) planInsert(np Piece, at Index) []Change {
	ix := 0
	for i, p := range t.pieces {
		if at == ix {
			return []Change{{Kind: ChangeInsert, PieceIndex: i, New: np}}
		}
		if at < ix+p.Length {
			left, right := p.split(at - ix)
			return []Change{
				{Kind: ChangeModify, PieceIndex: i, Old: p, New: left},
				{Kind: ChangeInsert, PieceIndex: i + 1, New: np},
				{Kind: ChangeInsert, PieceIndex: i + 2, New: right},
			}
		}
		ix += p.Length
	}
	return []Change{{Kind: ChangeInsert, PieceIndex: len(t.pieces), New: np}}
}

// DeleteRange removes the half-open range [start, end), recording the
// removal as a single action. The plan is computed from a read-only scan
// and then applied as one batch, so a partially applied delete can never
// be observed.
func (t *Table) DeleteRange(start, end Index) error {
	if start < 0 || start > end || end > t.Len() {
		return fmt.Errorf("delete [%d:%d): %w", start, end, ErrRangeInvalid)
	}
	if start == end {
		return nil
	}
	t.commitOpen()

	var plan []Change
	delta := 0 // piece index shift accumulated by earlier changes in the plan
	ix := 0
	for i, p := range t.pieces {
		pStart, pEnd := ix, ix+p.Length
		ix = pEnd
		if pEnd <= start || pStart >= end || p.Length == 0 {
			continue
		}
		switch {
		case start <= pStart && end >= pEnd:
			plan = append(plan, Change{Kind: ChangeDelete, PieceIndex: i + delta, Old: p})
			delta--
		case start > pStart && end < pEnd:
			left, rest := p.split(start - pStart)
			_, right := rest.split(end - start)
			plan = append(plan,
				Change{Kind: ChangeModify, PieceIndex: i + delta, Old: p, New: left},
				Change{Kind: ChangeInsert, PieceIndex: i + delta + 1, New: right})
			delta++
		case start > pStart:
			left, _ := p.split(start - pStart)
			plan = append(plan, Change{Kind: ChangeModify, PieceIndex: i + delta, Old: p, New: left})
		default:
			_, right := p.split(end - pStart)
			plan = append(plan, Change{Kind: ChangeModify, PieceIndex: i + delta, Old: p, New: right})
		}
	}
	t.pushAction(t.applyPlan(plan, nil))
	return nil
}

// applyPlan enacts each change in order and wraps them in a fresh action.
func (t *Table) applyPlan(plan []Change, sources map[int]string) Action {
	for _, c := range plan {
		t.enact(c)
	}
	act := Action{ID: t.nextID, Changes: plan, Sources: sources}
	t.nextID++
	return act
}

// enact applies a single change to the piece list.
func (t *Table) enact(c Change) {
	switch c.Kind {
	case ChangeInsert:
		t.pieces = append(t.pieces, Piece{})
		copy(t.pieces[c.PieceIndex+1:], t.pieces[c.PieceIndex:])
		t.pieces[c.PieceIndex] = c.New
	case ChangeModify:
		t.pieces[c.PieceIndex] = c.New
	case ChangeDelete:
		t.pieces = append(t.pieces[:c.PieceIndex], t.pieces[c.PieceIndex+1:]...)
	}
}

// reverse undoes a single change.
func (t *Table) reverse(c Change) {
	switch c.Kind {
	case ChangeInsert:
		t.pieces = append(t.pieces[:c.PieceIndex], t.pieces[c.PieceIndex+1:]...)
	case ChangeModify:
		t.pieces[c.PieceIndex] = c.Old
	case ChangeDelete:
		t.pieces = append(t.pieces, Piece{})
		copy(t.pieces[c.PieceIndex+1:], t.pieces[c.PieceIndex:])
		t.pieces[c.PieceIndex] = c.Old
	}
}

// pushAction records a committed forward edit. Any redoable actions are
// invalidated by a new edit.
func (t *Table) pushAction(act Action) {
	t.history = append(t.history, act)
	t.redo = t.redo[:0]
}

// commitOpen finalizes the open mutator, if any, before another mutation
// touches the piece list. This keeps an in-flight typing burst from ever
// becoming unrecorded.
func (t *Table) commitOpen() {
	if t.open != nil {
		t.open.Commit()
	}
}

// Undo reverses the most recent action. It returns false when there is
// nothing to undo. The reversed action becomes redoable until the next
// forward edit.
func (t *Table) Undo() bool {
	t.commitOpen()
	if len(t.history) == 0 {
		return false
	}
	act := t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]
	for i := len(act.Changes) - 1; i >= 0; i-- {
		t.reverse(act.Changes[i])
	}
	t.redo = append(t.redo, act)
	return true
}

// Redo re-applies the most recently undone action. It returns false when
// there is nothing to redo.
func (t *Table) Redo() bool {
	t.commitOpen()
	if len(t.redo) == 0 {
		return false
	}
	act := t.redo[len(t.redo)-1]
	t.redo = t.redo[:len(t.redo)-1]
	for _, c := range act.Changes {
		t.enact(c)
	}
	t.history = append(t.history, act)
	return true
}

// LastActionID returns the id of the newest action ever recorded, or zero
// when the table has recorded none and started at id 1. Undo does not move
// the clock backwards.
func (t *Table) LastActionID() ActionID {
	return t.nextID - 1
}

// LastAction returns the most recent action still in the history.
func (t *Table) LastAction() (Action, bool) {
	if len(t.history) == 0 {
		return Action{}, false
	}
	return t.history[len(t.history)-1], true
}

// ChangesSince returns the recorded actions with an id greater than since,
// in the order they were applied. The slice aliases the history and must
// not be mutated.
func (t *Table) ChangesSince(since ActionID) []Action {
	for i, act := range t.history {
		if act.ID > since {
			return t.history[i:]
		}
	}
	return nil
}

// ApplyAction replays an action produced elsewhere. The action's id must
// advance this table's clock; a stale or duplicate id is an error and
// nothing of the action is applied. Sources the action created are
// appended to the local store so the piece references resolve.
func (t *Table) ApplyAction(act Action) error {
	// Committing an open typing session advances the clock, so it must
	// happen before the staleness check: an action raced by local typing
	// is rejected instead of being recorded under a duplicate id.
	t.commitOpen()
	if act.ID < t.nextID {
		return fmt.Errorf("apply action %d (clock at %d): %w", act.ID, t.nextID, ErrStaleAction)
	}

	if len(act.Sources) > 0 {
		idxs := make([]int, 0, len(act.Sources))
		for i := range act.Sources {
			idxs = append(idxs, i)
		}
		sort.Ints(idxs)
		for _, i := range idxs {
			if i != len(t.sources) {
				return fmt.Errorf("action %d creates source %d, store has %d: %w",
					act.ID, i, len(t.sources), ErrSourceMismatch)
			}
			t.sources = append(t.sources, []rune(act.Sources[i]))
		}
	}
	for _, c := range act.Changes {
		t.enact(c)
	}
	t.history = append(t.history, act)
	t.redo = t.redo[:0]
	t.nextID = act.ID + 1
	return nil
}
