package piece

import "fmt"

// ActionID identifies one Action. IDs are strictly increasing within a
// table and double as the logical clock for replicating edits.
type ActionID uint64

// ChangeKind identifies the kind of a Change.
type ChangeKind uint8

const (
	// ChangeInsert inserts New into the piece list at PieceIndex.
	ChangeInsert ChangeKind = iota
	// ChangeModify replaces the piece at PieceIndex (Old) with New.
	ChangeModify
	// ChangeDelete removes the piece at PieceIndex (Old).
	ChangeDelete
)

// String returns the string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeModify:
		return "modify"
	case ChangeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one atomic edit to the piece list. Every kind carries enough
// state to be applied or reversed without consulting the document, which
// is what makes the action log replayable in both directions.
type Change struct {
	Kind       ChangeKind
	PieceIndex int
	Old        Piece // prior state for Modify and Delete
	New        Piece // new state for Insert and Modify
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Kind {
	case ChangeInsert:
		return fmt.Sprintf("insert@%d %s", c.PieceIndex, c.New)
	case ChangeModify:
		return fmt.Sprintf("modify@%d %s -> %s", c.PieceIndex, c.Old, c.New)
	case ChangeDelete:
		return fmt.Sprintf("delete@%d %s", c.PieceIndex, c.Old)
	default:
		return "unknown change"
	}
}

// Action groups the changes of one logical edit. Applying the changes in
// order performs the edit; reversing them in reverse order undoes it.
// Sources carries the content of any source this action created, keyed by
// source index, so a remote table can apply the action verbatim.
type Action struct {
	ID      ActionID
	Changes []Change
	Sources map[int]string
}
