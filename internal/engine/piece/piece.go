package piece

import "fmt"

// Index is a rune offset into the document or into a source.
type Index = int

// Piece references the half-open rune range [Start, Start+Length) of one
// source. Pieces are values; mutations replace them rather than edit them
// in place, so a Change can hold before and after snapshots.
type Piece struct {
	Source int   // index into the table's source store
	Start  Index // first rune of the span within the source
	Length Index // number of runes in the span
}

// String returns a human-readable representation of the piece.
func (p Piece) String() string {
	return fmt.Sprintf("piece{src=%d [%d:%d)}", p.Source, p.Start, p.Start+p.Length)
}

// end returns the source offset one past the last rune of the span.
func (p Piece) end() Index {
	return p.Start + p.Length
}

// split cuts the piece at the given offset relative to the piece start,
// returning the left and right halves. Either half may be empty when at
// is 0 or Length.
func (p Piece) split(at Index) (Piece, Piece) {
	left := Piece{Source: p.Source, Start: p.Start, Length: at}
	right := Piece{Source: p.Source, Start: p.Start + at, Length: p.Length - at}
	return left, right
}

// Range is a half-open span [Start, End) of document rune offsets.
type Range struct {
	Start Index // inclusive
	End   Index // exclusive
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the number of runes the range covers.
func (r Range) Len() Index {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Normalized returns the range with Start <= End, swapping the bounds if
// a backward motion produced them reversed.
func (r Range) Normalized() Range {
	if r.End < r.Start {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(i Index) bool {
	return i >= r.Start && i < r.End
}
