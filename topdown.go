package topdown

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Predictive parsing compares tokens by
// lexeme only; the category is kept for scanners which need to signal the end
// of input or distinguish skipped material.
type TokType int

// Tokens represent input tokens. They are produced by a scanner and are matched
// against terminals of a grammar by equality of their lexemes.
//
// An example would be a token for an identifier:
//
//    TokType = Atom        // identifier for this kind of tokens
//    Lexeme  = "id"        // lexeme as it appeared in the input stream
//    Span    = 4…5         // it is the 5th token of the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input tokens. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
