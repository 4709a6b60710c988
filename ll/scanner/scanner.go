/*
Package scanner defines an interface for scanners to be used with the predictive
parser of package predict.

Three default scanner implementations are provided: (1) a tokenizer over a list
of pre-split lexemes, (2) a thin wrapper over the Go std lib 'text/scanner', and
(3) an adapter for lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/topdown"
)

// tracer traces with key 'topdown.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("topdown.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF    = scanner.EOF
	Ident  = scanner.Ident
	Int    = scanner.Int
	String = scanner.String
)

// Atom is the token type for lexemes which are not categorized any further,
// i.e. everything produced by slice tokenizers and by the atom lexer.
const Atom topdown.TokType = 1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() topdown.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Lexemes drains a tokenizer and returns the lexemes of all tokens up to
// end of input.
func Lexemes(t Tokenizer) []string {
	var lexemes []string
	for token := t.NextToken(); token.TokType() != EOF; token = t.NextToken() {
		lexemes = append(lexemes, token.Lexeme())
	}
	return lexemes
}

// --- Slice tokenizer -------------------------------------------------------

// SliceTokenizer hands out a list of lexemes which have been split up already.
// Spans count tokens, not bytes.
type SliceTokenizer struct {
	lexemes []string
	pos     int
	Error   func(error)
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// FromSlice creates a tokenizer for a list of lexemes.
func FromSlice(lexemes []string) *SliceTokenizer {
	return &SliceTokenizer{
		lexemes: lexemes,
		Error:   logError,
	}
}

// SetErrorHandler is part of the Tokenizer interface. Slice tokenizers never
// report errors.
func (t *SliceTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *SliceTokenizer) NextToken() topdown.Token {
	at := uint64(t.pos)
	if t.pos >= len(t.lexemes) {
		return DefaultToken{kind: EOF, span: topdown.Span{at, at}}
	}
	t.pos++
	return DefaultToken{
		kind:   Atom,
		lexeme: t.lexemes[t.pos-1],
		span:   topdown.Span{at, at + 1},
	}
}

// --- Go tokenizer ----------------------------------------------------------

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken rune        // last token this scanner has produced
	Error     func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
// This way input like "id+id*id" may be tokenized without separating whitespace.
// Comments are skipped.
func GoTokenizer(sourceID string, input io.Reader) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Init(input)
	t.Filename = sourceID
	t.Mode |= scanner.SkipComments
	t.SetErrorHandler(nil)
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	t.Error = h
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(&ScanError{Pos: s.Position.String(), Msg: msg})
	}
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() topdown.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	return DefaultToken{
		kind:   topdown.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   topdown.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// ScanError is reported to error handlers of Go tokenizers.
type ScanError struct {
	Pos string
	Msg string
}

func (e *ScanError) Error() string {
	return e.Pos + ": " + e.Msg
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for all
// tokenizers of this package as well as the LexMachine scanner.
type DefaultToken struct {
	kind   topdown.TokType
	lexeme string
	span   topdown.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ topdown.TokType, lexeme string, span topdown.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() topdown.TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() topdown.Span {
	return t.span
}
