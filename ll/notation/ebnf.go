package notation

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/topdown/ll"
	"golang.org/x/exp/ebnf"
)

// EBNF production names have to be identifiers. Non-terminals are mapped to
// identifiers starting with an upper case letter, as lower case names denote
// lexical productions.
type nameMangler struct {
	names map[string]string
	taken map[string]bool
}

func newNameMangler() *nameMangler {
	return &nameMangler{
		names: make(map[string]string),
		taken: make(map[string]bool),
	}
}

func (m *nameMangler) mangle(A string) string {
	if name, ok := m.names[A]; ok {
		return name
	}
	var b strings.Builder
	for _, r := range A {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case r == '\'':
			b.WriteString("_")
		default:
			b.WriteString("X")
		}
	}
	base := b.String()
	if first := []rune(base); len(first) == 0 || !unicode.IsUpper(first[0]) {
		base = "N_" + base
	}
	name := base
	for i := 1; m.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	m.taken[name] = true
	m.names[A] = name
	return name
}

// WriteEBNF exports a grammar as EBNF. Every non-terminal becomes a single
// EBNF production, terminals become quoted tokens. The name of the start
// production is returned.
//
//    E  -> T E'           E = T E_ .
//    E' -> + T E' | ε     E_ = [ "+" T E_ ] .
//
func WriteEBNF(w io.Writer, g *ll.Grammar) (string, error) {
	m := newNameMangler()
	var err error
	g.EachNonTerminal(func(A *ll.Symbol) {
		m.mangle(A.Name)
	})
	g.EachNonTerminal(func(A *ll.Symbol) {
		if err != nil {
			return
		}
		var alts []string
		optional := false
		for _, r := range g.RulesFor(A.Name) {
			if r.IsEpsilon() {
				optional = true
				continue
			}
			terms := make([]string, len(r.RHS))
			for i, s := range r.RHS {
				if X := g.Symbol(s); X != nil && X.IsNonTerminal() {
					terms[i] = m.mangle(s)
				} else {
					terms[i] = strconv.Quote(s)
				}
			}
			alts = append(alts, strings.Join(terms, " "))
		}
		expr := strings.Join(alts, " | ")
		if optional && len(alts) > 0 {
			expr = "[ " + expr + " ]"
		}
		if expr == "" {
			_, err = fmt.Fprintf(w, "%s = .\n", m.mangle(A.Name))
		} else {
			_, err = fmt.Fprintf(w, "%s = %s .\n", m.mangle(A.Name), expr)
		}
	})
	return m.mangle(g.Start().Name), err
}

// VerifyEBNF exports a grammar as EBNF, then parses and verifies the result
// with package golang.org/x/exp/ebnf. Verification fails for grammars with
// non-terminals not reachable from the start symbol.
func VerifyEBNF(g *ll.Grammar) error {
	var buf bytes.Buffer
	start, err := WriteEBNF(&buf, g)
	if err != nil {
		return err
	}
	grammar, err := ebnf.Parse(g.Name, &buf)
	if err != nil {
		return fmt.Errorf("EBNF export of %s: %w", g.Name, err)
	}
	if err = ebnf.Verify(grammar, start); err != nil {
		return fmt.Errorf("EBNF export of %s: %w", g.Name, err)
	}
	tracer().Debugf("EBNF export of %s verified, %d productions", g.Name, len(grammar))
	return nil
}
