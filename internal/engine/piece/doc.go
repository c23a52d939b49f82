// Package piece implements the piece-table document representation.
//
// A Table holds an append-only store of rune sources and an ordered list
// of pieces, each referencing a half-open range of one source. The
// concatenation of the pieces is the document. Every mutation is recorded
// as an Action, a group of reversible piece-list changes tagged with a
// strictly increasing id, which gives the table replayable undo/redo and
// lets a remote copy stay in sync by applying the same actions in order.
//
// All indices are rune offsets. A Table is single-owner: it performs no
// internal locking, and callers that share one across goroutines must
// serialize access themselves.
package piece
