package replica

import (
	"errors"
	"testing"

	"github.com/andrew-pa/pk/internal/engine/piece"
)

func TestFollowerSync(t *testing.T) {
	leader := piece.WithText("hello")
	f := NewFollower(NewDocumentID(), "hello", 1)

	if err := leader.InsertRange(" world", 5); err != nil {
		t.Fatalf("InsertRange error = %v", err)
	}
	if err := leader.DeleteRange(0, 1); err != nil {
		t.Fatalf("DeleteRange error = %v", err)
	}
	if err := f.SyncFrom(leader); err != nil {
		t.Fatalf("SyncFrom error = %v", err)
	}
	if got, want := f.Table.Text(), leader.Text(); got != want {
		t.Errorf("follower = %q, leader = %q", got, want)
	}

	// A second sync has nothing to apply and changes nothing.
	if err := f.SyncFrom(leader); err != nil {
		t.Fatalf("second SyncFrom error = %v", err)
	}
	if got, want := f.Table.Text(), leader.Text(); got != want {
		t.Errorf("idempotent sync: follower = %q, leader = %q", got, want)
	}
}

func TestFollowerIncrementalSync(t *testing.T) {
	leader := piece.WithText("")
	f := NewFollower(NewDocumentID(), "", 1)

	words := []string{"alpha ", "beta ", "gamma "}
	for _, w := range words {
		if err := leader.InsertRange(w, leader.Len()); err != nil {
			t.Fatalf("InsertRange error = %v", err)
		}
		if err := f.SyncFrom(leader); err != nil {
			t.Fatalf("SyncFrom error = %v", err)
		}
	}
	if got := f.Table.Text(); got != "alpha beta gamma " {
		t.Errorf("follower = %q, want %q", got, "alpha beta gamma ")
	}
}

func TestFollowerConflict(t *testing.T) {
	leader := piece.WithText("hello")
	f := NewFollower(NewDocumentID(), "hello", 1)

	// The replica edits on its own, racing ahead of the leader.
	if err := f.Table.InsertRange("!", 5); err != nil {
		t.Fatalf("InsertRange error = %v", err)
	}
	var conflict *ConflictError
	if _, err := f.Behind(leader); !errors.As(err, &conflict) {
		t.Fatalf("Behind error = %v, want ConflictError", err)
	}
	if conflict.Follower <= conflict.Leader {
		t.Errorf("conflict clocks %d/%d not diverged", conflict.Follower, conflict.Leader)
	}
}

func TestAdvanceRejectsGaps(t *testing.T) {
	leader := piece.WithText("hello")
	f := NewFollower(NewDocumentID(), "hello", 1)

	if err := leader.InsertRange("A", 0); err != nil {
		t.Fatalf("InsertRange error = %v", err)
	}
	if err := leader.InsertRange("B", 0); err != nil {
		t.Fatalf("InsertRange error = %v", err)
	}
	actions := leader.ChangesSince(0)
	// Apply out of order: the second action references a source slot the
	// replica does not have yet.
	if err := f.Advance(actions[1:]); err == nil {
		t.Error("Advance(gapped) error = nil, want source mismatch")
	} else if !errors.Is(err, piece.ErrSourceMismatch) {
		t.Errorf("Advance(gapped) error = %v, want ErrSourceMismatch", err)
	}
}

func TestAdvanceRejectsStale(t *testing.T) {
	leader := piece.WithText("hello")
	f := NewFollower(NewDocumentID(), "hello", 1)

	if err := leader.InsertRange("A", 0); err != nil {
		t.Fatalf("InsertRange error = %v", err)
	}
	actions := leader.ChangesSince(0)
	if err := f.Advance(actions); err != nil {
		t.Fatalf("Advance error = %v", err)
	}
	if err := f.Advance(actions); !errors.Is(err, piece.ErrStaleAction) {
		t.Errorf("Advance(stale) error = %v, want ErrStaleAction", err)
	}
}
