// Package replica keeps copies of a document in step by shipping the
// piece table's action log. The table's action ids are the logical clock:
// a copy knows how far behind it is from the highest id it has applied.
package replica

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andrew-pa/pk/internal/engine/piece"
)

// DocumentID identifies one logical document across replicas.
type DocumentID = uuid.UUID

// NewDocumentID returns a fresh random document id.
func NewDocumentID() DocumentID {
	return uuid.New()
}

// ConflictError reports that a replica has recorded actions the leader
// never saw, so the logs have diverged and a plain replay cannot
// reconcile them.
type ConflictError struct {
	Document DocumentID
	Leader   piece.ActionID
	Follower piece.ActionID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document %s: follower clock %d is ahead of leader clock %d",
		e.Document, e.Follower, e.Leader)
}

// Follower is a replica of a document that applies the leader's actions
// in order.
type Follower struct {
	ID    DocumentID
	Table *piece.Table
}

// NewFollower creates a replica of a document whose content and action
// clock match the leader's at the moment of the snapshot.
func NewFollower(id DocumentID, text string, next piece.ActionID) *Follower {
	return &Follower{ID: id, Table: piece.WithTextAt(text, next)}
}

// Behind returns the actions the leader has recorded that this replica
// has not applied yet, or a ConflictError when the replica is ahead.
func (f *Follower) Behind(leader *piece.Table) ([]piece.Action, error) {
	if f.Table.LastActionID() > leader.LastActionID() {
		return nil, &ConflictError{
			Document: f.ID,
			Leader:   leader.LastActionID(),
			Follower: f.Table.LastActionID(),
		}
	}
	return leader.ChangesSince(f.Table.LastActionID()), nil
}

// Advance applies a batch of leader actions in order. A stale or gapped
// action stops the batch and surfaces the table's error; actions already
// applied are never silently re-applied.
func (f *Follower) Advance(actions []piece.Action) error {
	for _, act := range actions {
		if err := f.Table.ApplyAction(act); err != nil {
			return fmt.Errorf("advance document %s: %w", f.ID, err)
		}
	}
	return nil
}

// SyncFrom pulls everything the replica is missing from the leader.
func (f *Follower) SyncFrom(leader *piece.Table) error {
	actions, err := f.Behind(leader)
	if err != nil {
		return err
	}
	return f.Advance(actions)
}
