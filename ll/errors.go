package ll

import (
	"fmt"
	"strings"
)

// MalformedGrammarError is returned if a production cannot be split into a
// left-hand side and a right-hand side, or if its right-hand side is empty.
// Line is the 1-based source line of the production, or 0 if the production
// did not originate from a text source.
type MalformedGrammarError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedGrammarError) Error() string {
	var b strings.Builder
	b.WriteString("malformed grammar")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Text != "" {
		fmt.Fprintf(&b, " in %q", e.Text)
	}
	return b.String()
}

// NameCollisionError is returned by the grammar normalizer if the name of a
// freshly introduced non-terminal is already a symbol of the input grammar.
type NameCollisionError struct {
	Name string // the colliding name
	For  string // the non-terminal the new symbol was derived from
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("cannot introduce non-terminal %q for %q: name already in use", e.Name, e.For)
}

// UndeclaredSymbolError is returned if a right-hand-side symbol cannot be
// classified as a terminal or a non-terminal.
type UndeclaredSymbolError struct {
	Symbol     string
	Production string
	Reason     string
}

func (e *UndeclaredSymbolError) Error() string {
	return fmt.Sprintf("undeclared symbol %q in %s: %s", e.Symbol, e.Production, e.Reason)
}

// NotLL1Error is returned by ParseTable.Check for tables with conflicts.
type NotLL1Error struct {
	Conflicts []Conflict
}

func (e *NotLL1Error) Error() string {
	if len(e.Conflicts) == 1 {
		return fmt.Sprintf("grammar is not LL(1): conflict at %s", e.Conflicts[0])
	}
	return fmt.Sprintf("grammar is not LL(1): %d conflicts, first at %s", len(e.Conflicts),
		e.Conflicts[0])
}
