package ll

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/gconf"
)

// --- Productions -----------------------------------------------------------

// Production is a grammar rule LHS → RHS. The right-hand side is either a
// non-empty sequence of symbol names or the single marker Epsilon.
// Serial is the position of the production within its grammar; it is used
// for deterministic tie-breaking in table cells.
type Production struct {
	Serial int
	LHS    string
	RHS    []string
}

// Rule creates a production, not yet part of a grammar.
func Rule(lhs string, rhs ...string) *Production {
	return &Production{LHS: lhs, RHS: rhs}
}

// IsEpsilon is true for ε-productions.
func (r *Production) IsEpsilon() bool {
	return len(r.RHS) == 1 && r.RHS[0] == Epsilon
}

func (r *Production) String() string {
	return fmt.Sprintf("%s → %s", r.LHS, strings.Join(r.RHS, " "))
}

// Equals compares left-hand side and right-hand side, ignoring serials.
func (r *Production) Equals(other *Production) bool {
	if r.LHS != other.LHS || len(r.RHS) != len(other.RHS) {
		return false
	}
	for i, s := range r.RHS {
		if other.RHS[i] != s {
			return false
		}
	}
	return true
}

// --- Configuration ---------------------------------------------------------

// DefaultMaxRewrites is the default limit for normalization passes.
const DefaultMaxRewrites = 8

type config struct {
	strict      bool
	maxRewrites int
}

// Option configures grammar loading and normalization.
type Option func(*config)

// StrictNonterminals sets or clears strict classification: a capitalized
// right-hand-side symbol without productions is reported as undeclared instead
// of being classified as a terminal.
func StrictNonterminals(b bool) Option {
	return func(c *config) {
		c.strict = b
	}
}

// MaxRewrites limits the number of normalization passes. Values < 1 select
// the default.
func MaxRewrites(n int) Option {
	return func(c *config) {
		c.maxRewrites = n
	}
}

// Global configuration provides the defaults, options override them.
func makeConfig(opts []Option) config {
	c := config{
		strict:      gconf.GetBool("ll1-strict-nonterminals"),
		maxRewrites: gconf.GetInt("ll1-max-rewrites"),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxRewrites < 1 {
		c.maxRewrites = DefaultMaxRewrites
	}
	return c
}

// --- Grammars --------------------------------------------------------------

// Grammar is an ordered list of productions together with its symbol table.
// The left-hand side of the first production is the start symbol.
type Grammar struct {
	Name    string
	rules   []*Production
	symbols *SymbolTable
	start   *Symbol
	conf    config
}

// NewGrammar creates a grammar from a list of productions. Productions are
// copied and re-numbered in list order. Symbols are classified as described
// for Classify.
func NewGrammar(name string, rules []*Production, opts ...Option) (*Grammar, error) {
	g := &Grammar{
		Name:  name,
		rules: make([]*Production, len(rules)),
		conf:  makeConfig(opts),
	}
	for i, r := range rules {
		g.rules[i] = &Production{
			Serial: i,
			LHS:    r.LHS,
			RHS:    append([]string(nil), r.RHS...),
		}
	}
	symbols, err := classify(g.rules, g.conf.strict)
	if err != nil {
		return nil, err
	}
	g.symbols = symbols
	g.start = symbols.Resolve(g.rules[0].LHS)
	tracer().Debugf("grammar %s: %d productions, %d symbols", name, len(g.rules), symbols.Size())
	return g, nil
}

// Classify creates a symbol table for a list of productions. Every left-hand
// side is registered as a non-terminal, the first one as the start symbol.
// Every other right-hand-side symbol, except the epsilon marker, is registered
// as a terminal.
func Classify(rules []*Production, opts ...Option) (*SymbolTable, error) {
	return classify(rules, makeConfig(opts).strict)
}

func classify(rules []*Production, strict bool) (*SymbolTable, error) {
	if len(rules) == 0 {
		return nil, &MalformedGrammarError{Reason: "grammar has no productions"}
	}
	symbols := NewSymbolTable()
	for i, r := range rules {
		if err := checkShape(r); err != nil {
			return nil, err
		}
		kind := Nonterminal
		if i == 0 {
			kind = Start
		}
		symbols.ResolveOrDefine(r.LHS, kind)
	}
	for _, r := range rules {
		if r.IsEpsilon() {
			continue
		}
		for _, name := range r.RHS {
			if A := symbols.Resolve(name); A != nil && !A.IsEOF() {
				continue
			}
			if err := checkTerminal(name, r, strict); err != nil {
				return nil, err
			}
			symbols.ResolveOrDefine(name, Terminal)
		}
	}
	return symbols, nil
}

// checkShape validates the split of a production into left and right parts.
func checkShape(r *Production) error {
	if strings.TrimSpace(r.LHS) == "" {
		return &MalformedGrammarError{Text: r.String(), Reason: "empty left-hand side"}
	}
	if strings.ContainsAny(r.LHS, " \t\r\n") {
		return &MalformedGrammarError{Text: r.String(), Reason: "left-hand side is not a single symbol"}
	}
	if r.LHS == EOF || r.LHS == Epsilon {
		return &MalformedGrammarError{Text: r.String(), Reason: "reserved symbol as left-hand side"}
	}
	if len(r.RHS) == 0 {
		return &MalformedGrammarError{Text: r.LHS + " →", Reason: "empty right-hand side"}
	}
	if len(r.RHS) > 1 {
		for _, name := range r.RHS {
			if name == Epsilon {
				return &MalformedGrammarError{Text: r.String(),
					Reason: "epsilon must be the only symbol of a right-hand side"}
			}
		}
	}
	return nil
}

func checkTerminal(name string, r *Production, strict bool) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return &UndeclaredSymbolError{Symbol: name, Production: r.String(),
			Reason: "not a symbol"}
	}
	if name == EOF {
		return &UndeclaredSymbolError{Symbol: name, Production: r.String(),
			Reason: "end-of-input marker used as grammar symbol"}
	}
	if strict {
		if first, _ := utf8.DecodeRuneInString(name); unicode.IsUpper(first) {
			return &UndeclaredSymbolError{Symbol: name, Production: r.String(),
				Reason: "non-terminal without productions"}
		}
	}
	return nil
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns production #no.
func (g *Grammar) Rule(no int) *Production {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Rules returns the productions of g in order. Clients must not modify them.
func (g *Grammar) Rules() []*Production {
	return append([]*Production(nil), g.rules...)
}

// RulesFor returns all productions with left-hand side A, in order.
func (g *Grammar) RulesFor(A string) []*Production {
	var rules []*Production
	for _, r := range g.rules {
		if r.LHS == A {
			rules = append(rules, r)
		}
	}
	return rules
}

// Start returns the start symbol.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// Symbols returns the symbol table of g.
func (g *Grammar) Symbols() *SymbolTable {
	return g.symbols
}

// Symbol resolves a symbol by name. The end-of-input marker is resolvable.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.symbols.Resolve(name)
}

// EachNonTerminal iterates over all non-terminals, in order of definition.
func (g *Grammar) EachNonTerminal(mapper func(*Symbol)) {
	g.symbols.Each(func(A *Symbol) {
		if A.IsNonTerminal() {
			mapper(A)
		}
	})
}

// EachTerminal iterates over all terminals, in order of definition.
// The end-of-input marker is not included.
func (g *Grammar) EachTerminal(mapper func(*Symbol)) {
	g.symbols.Each(func(A *Symbol) {
		if A.IsTerminal() {
			mapper(A)
		}
	})
}

// rhsSymbols resolves the right-hand side of a production. ε-productions
// resolve to an empty slice.
func (g *Grammar) rhsSymbols(r *Production) []*Symbol {
	if r.IsEpsilon() {
		return nil
	}
	syms := make([]*Symbol, len(r.RHS))
	for i, name := range r.RHS {
		syms[i] = g.symbols.Resolve(name)
	}
	return syms
}

// Dump is a debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s ----------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: [%s] ::= %v", r.Serial, r.LHS, r.RHS)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Fingerprints ----------------------------------------------------------

type hashedRule struct {
	LHS string   `hash:"name:lhs"`
	RHS []string `hash:"name:rhs"`
}

type hashedGrammar struct {
	Rules []hashedRule `hash:"name:rules"`
}

// Fingerprint returns a hash over the productions of g, in order. Grammars with
// identical production lists have identical fingerprints, regardless of name.
func (g *Grammar) Fingerprint() string {
	return fingerprint(g.rules)
}

func fingerprint(rules []*Production) string {
	h := hashedGrammar{Rules: make([]hashedRule, len(rules))}
	for i, r := range rules {
		h.Rules[i] = hashedRule{LHS: r.LHS, RHS: r.RHS}
	}
	fp, err := structhash.Hash(h, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash grammar: %v", err))
	}
	return fp
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Use as
//
//    b := ll.NewGrammarBuilder("G")
//    b.LHS("E").N("T").N("E'").End()      // E  → T E'
//    b.LHS("E'").T("+").N("E").End()      // E' → + E
//    b.LHS("E'").Epsilon()                // E' → ε
//    b.LHS("T").T("id").End()             // T  → id
//    g, err := b.Grammar()
//
// N and T document the intended kind of a symbol. Classification follows the
// productions, but Grammar() reports symbols whose classification contradicts
// the intended kind.
type GrammarBuilder struct {
	name  string
	rules []*Production
	nonts map[string]bool
	terms map[string]bool
}

// RuleBuilder collects the right-hand side of a single production.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []string
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:  name,
		nonts: make(map[string]bool),
		terms: make(map[string]bool),
	}
}

// LHS starts a new production.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: s}
}

// N appends a non-terminal to the right-hand side.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, s)
	rb.gb.nonts[s] = true
	return rb
}

// T appends a terminal to the right-hand side.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, s)
	rb.gb.terms[s] = true
	return rb
}

// End completes a production.
func (rb *RuleBuilder) End() *Production {
	r := &Production{Serial: len(rb.gb.rules), LHS: rb.lhs, RHS: rb.rhs}
	rb.gb.rules = append(rb.gb.rules, r)
	return r
}

// Epsilon completes an ε-production.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.rhs = []string{Epsilon}
	return rb.End()
}

// Grammar returns the grammar built so far.
func (gb *GrammarBuilder) Grammar(opts ...Option) (*Grammar, error) {
	g, err := NewGrammar(gb.name, gb.rules, opts...)
	if err != nil {
		return nil, err
	}
	for _, r := range g.rules {
		for _, s := range r.RHS {
			A := g.Symbol(s)
			if A == nil {
				continue
			}
			if gb.terms[s] && A.IsNonTerminal() {
				return nil, &MalformedGrammarError{Text: r.String(),
					Reason: fmt.Sprintf("terminal %s has productions", s)}
			}
			if gb.nonts[s] && A.IsTerminal() {
				return nil, &UndeclaredSymbolError{Symbol: s, Production: r.String(),
					Reason: "non-terminal without productions"}
			}
		}
	}
	return g, nil
}
