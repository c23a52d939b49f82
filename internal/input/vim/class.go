package vim

import "unicode"

// CharClass partitions runes for word-wise motions. A word is a maximal
// run of runes of one class, whitespace excluded.
type CharClass uint8

const (
	// ClassWhitespace covers spaces, tabs and newlines.
	ClassWhitespace CharClass = iota
	// ClassPunctuation covers everything that is neither whitespace nor
	// a word rune.
	ClassPunctuation
	// ClassRegular covers letters, digits and underscore.
	ClassRegular
)

// String returns the string representation of the class.
func (c CharClass) String() string {
	switch c {
	case ClassWhitespace:
		return "whitespace"
	case ClassPunctuation:
		return "punctuation"
	case ClassRegular:
		return "regular"
	default:
		return "unknown"
	}
}

// Classify returns the class of r for small-word motions.
func Classify(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassWhitespace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return ClassRegular
	default:
		return ClassPunctuation
	}
}

// ClassifyBig returns the class of r for big-word motions. Big words fold
// punctuation into the regular class, so any non-whitespace run is one
// word. Same algorithm as the small-word motions, different classifier.
func ClassifyBig(r rune) CharClass {
	if c := Classify(r); c == ClassPunctuation {
		return ClassRegular
	}
	return Classify(r)
}

// isWordRune reports whether r belongs to a small word.
func isWordRune(r rune) bool {
	return Classify(r) == ClassRegular
}

// isBlank reports whether r is whitespace.
func isBlank(r rune) bool {
	return Classify(r) == ClassWhitespace
}
