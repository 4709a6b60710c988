/*
Package notation reads and writes grammars in a line-oriented text notation.

Every line holds the productions for one left-hand side, with alternatives
separated by '|':

    // expressions
    E  -> E + T | T
    T  -> T * F | F
    F  -> ( E ) | id

Arrows may be spelled '->', '→' or '::='. The empty alternative is spelled 'ε'
or '#'. Symbols are separated by whitespace; terminals and non-terminals are
not marked but classified by package ll. Blank lines and lines starting with
'//' are ignored.

Grammars may be exported to EBNF, as understood by golang.org/x/exp/ebnf.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package notation

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/topdown/ll"
	"github.com/npillmayer/topdown/ll/scanner"
	"github.com/npillmayer/topdown/ll/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'topdown.ll'.
func tracer() tracing.Trace {
	return tracing.Select("topdown.ll")
}

// Arrows separating left-hand side and right-hand side.
var arrows = []string{"->", "→", "::="}

// EpsilonMarker is an alternative spelling of ll.Epsilon.
const EpsilonMarker = "#"

const commentMarker = "//"

// Token types of the right-hand-side lexer
const (
	tokBar int = iota + 1
	tokAtom
)

func rhsLexer() (*lexmach.LMAdapter, error) {
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[^ \t\r\n\|]+`), lexmach.MakeToken(tokAtom))
		lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	return lexmach.NewLMAdapter(init, lexmach.Literals{"|": tokBar})
}

// ReadRules reads productions in line notation. Productions are returned in
// order of appearance, alternatives of a line from left to right.
// Lines which cannot be split into a left-hand side and at least one
// non-empty alternative result in an ll.MalformedGrammarError.
func ReadRules(r io.Reader) ([]*ll.Production, error) {
	lm, err := rhsLexer()
	if err != nil {
		return nil, err
	}
	var rules []*ll.Production
	lines := bufio.NewScanner(r)
	lineno := 0
	for lines.Scan() {
		lineno++
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		lrules, err := readLine(lm, line, lineno)
		if err != nil {
			return nil, err
		}
		rules = append(rules, lrules...)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("reading grammar: %w", err)
	}
	tracer().Debugf("read %d productions from %d lines", len(rules), lineno)
	return rules, nil
}

func readLine(lm *lexmach.LMAdapter, line string, lineno int) ([]*ll.Production, error) {
	malformed := func(reason string) error {
		return &ll.MalformedGrammarError{Line: lineno, Text: line, Reason: reason}
	}
	lhs, rhs, ok := splitArrow(line)
	if !ok {
		return nil, malformed("missing arrow")
	}
	if lhs == "" {
		return nil, malformed("empty left-hand side")
	}
	if strings.ContainsAny(lhs, " \t") {
		return nil, malformed("left-hand side is not a single symbol")
	}
	sc, err := lm.Scanner(rhs)
	if err != nil {
		return nil, malformed(err.Error())
	}
	var lexErr error
	sc.SetErrorHandler(func(e error) {
		lexErr = e
	})
	var rules []*ll.Production
	var alt []string
	closeAlt := func() error {
		switch {
		case len(alt) == 0:
			return malformed("empty right-hand side")
		case len(alt) == 1 && isEpsilon(alt[0]):
			alt[0] = ll.Epsilon
		default:
			for _, s := range alt {
				if isEpsilon(s) {
					return malformed("epsilon must be the only symbol of an alternative")
				}
			}
		}
		rules = append(rules, ll.Rule(lhs, alt...))
		alt = nil
		return nil
	}
	for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
		if lexErr != nil {
			return nil, malformed(lexErr.Error())
		}
		if int(token.TokType()) == tokBar {
			if err := closeAlt(); err != nil {
				return nil, err
			}
			continue
		}
		alt = append(alt, token.Lexeme())
	}
	if lexErr != nil {
		return nil, malformed(lexErr.Error())
	}
	if err := closeAlt(); err != nil {
		return nil, err
	}
	return rules, nil
}

// splitArrow splits a line at the leftmost arrow.
func splitArrow(line string) (string, string, bool) {
	at, width := -1, 0
	for _, arrow := range arrows {
		if i := strings.Index(line, arrow); i >= 0 && (at < 0 || i < at) {
			at, width = i, len(arrow)
		}
	}
	if at < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:at]), line[at+width:], true
}

func isEpsilon(s string) bool {
	return s == ll.Epsilon || s == EpsilonMarker
}

// Read reads a grammar in line notation. The first left-hand side is the
// start symbol.
func Read(name string, r io.Reader, opts ...ll.Option) (*ll.Grammar, error) {
	rules, err := ReadRules(r)
	if err != nil {
		return nil, err
	}
	return ll.NewGrammar(name, rules, opts...)
}

// ParseString reads a grammar from a string.
func ParseString(name string, text string, opts ...ll.Option) (*ll.Grammar, error) {
	return Read(name, strings.NewReader(text), opts...)
}

// Write outputs a grammar in line notation, one line per left-hand side.
// Lines are ordered by the first appearance of their left-hand side.
func Write(w io.Writer, g *ll.Grammar) error {
	var lhs []string
	alts := make(map[string][]string)
	for _, r := range g.Rules() {
		if _, ok := alts[r.LHS]; !ok {
			lhs = append(lhs, r.LHS)
		}
		alts[r.LHS] = append(alts[r.LHS], strings.Join(r.RHS, " "))
	}
	width := 0
	for _, A := range lhs {
		if len(A) > width {
			width = len(A)
		}
	}
	for _, A := range lhs {
		if _, err := fmt.Fprintf(w, "%-*s -> %s\n", width, A, strings.Join(alts[A], " | ")); err != nil {
			return err
		}
	}
	return nil
}
