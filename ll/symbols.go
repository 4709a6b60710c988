package ll

import (
	"fmt"

	"golang.org/x/tools/container/intsets"
)

// Reserved markers. Epsilon denotes the empty right-hand side of a
// production, EOF denotes the end of input.
const (
	Epsilon = "ε"
	EOF     = "$"
)

// Symbol values of the reserved markers. Grammar symbols are numbered from 1.
const (
	epsilonValue = -1
	eofValue     = 0
)

// --- Symbols ---------------------------------------------------------------

// SymbolKind classifies grammar symbols. The kind of a symbol is fixed when a
// grammar is loaded.
type SymbolKind int8

// Symbols are either terminals or non-terminals. Exactly one non-terminal of a
// grammar is the start symbol.
const (
	Terminal SymbolKind = iota
	Nonterminal
	Start
)

func (k SymbolKind) String() string {
	switch k {
	case Terminal:
		return "T"
	case Nonterminal:
		return "N"
	case Start:
		return "S"
	}
	return fmt.Sprintf("<kind %d>", int8(k))
}

// Symbol is a grammar symbol, carrying its FIRST and FOLLOW sets. Sets are
// kept as sets of symbol values; they are populated by grammar analysis.
type Symbol struct {
	Name   string
	Value  int // serial number, unique within a grammar
	kind   SymbolKind
	first  *intsets.Sparse
	follow *intsets.Sparse
}

func newSymbol(name string, value int, kind SymbolKind) *Symbol {
	A := &Symbol{
		Name:   name,
		Value:  value,
		kind:   kind,
		first:  &intsets.Sparse{},
		follow: &intsets.Sparse{},
	}
	A.reset()
	return A
}

// reset re-initializes FIRST and FOLLOW. Terminals have FIRST = {itself},
// the start symbol has FOLLOW = {$}.
func (A *Symbol) reset() {
	A.first.Clear()
	A.follow.Clear()
	switch A.kind {
	case Terminal:
		A.first.Insert(A.Value)
	case Start:
		A.follow.Insert(eofValue)
	}
}

// Kind returns the classification of a symbol.
func (A *Symbol) Kind() SymbolKind {
	return A.kind
}

// IsTerminal is true for terminals, including the end-of-input marker.
func (A *Symbol) IsTerminal() bool {
	return A.kind == Terminal
}

// IsNonTerminal is true for non-terminals, including the start symbol.
func (A *Symbol) IsNonTerminal() bool {
	return A.kind == Nonterminal || A.kind == Start
}

// IsEOF is true for the end-of-input marker.
func (A *Symbol) IsEOF() bool {
	return A.Value == eofValue
}

func (A *Symbol) String() string {
	return A.Name
}

// === Symbol Tables =========================================================

// SymbolTable stores the symbols of a grammar, in order of definition.
// The end-of-input marker is always present, but is not part of iterations.
type SymbolTable struct {
	table   map[string]*Symbol
	symbols []*Symbol // symbols[i].Value == i+1
	eof     *Symbol
}

// NewSymbolTable creates a symbol table containing the end-of-input marker only.
func NewSymbolTable() *SymbolTable {
	eof := newSymbol(EOF, eofValue, Terminal)
	return &SymbolTable{
		table: map[string]*Symbol{EOF: eof},
		eof:   eof,
	}
}

// Resolve checks for a symbol in the table. Returns a symbol or nil.
func (t *SymbolTable) Resolve(name string) *Symbol {
	return t.table[name]
}

// ResolveOrDefine finds a symbol in the table, inserts a new one of the given
// kind if not found. Returns the symbol and a flag, signalling wether the symbol
// has already been present.
func (t *SymbolTable) ResolveOrDefine(name string, kind SymbolKind) (*Symbol, bool) {
	if A := t.Resolve(name); A != nil {
		return A, true
	}
	A := newSymbol(name, len(t.symbols)+1, kind)
	t.table[name] = A
	t.symbols = append(t.symbols, A)
	return A, false
}

// BySerial returns the symbol with a given value, or nil.
func (t *SymbolTable) BySerial(value int) *Symbol {
	if value == eofValue {
		return t.eof
	}
	if value < 1 || value > len(t.symbols) {
		return nil
	}
	return t.symbols[value-1]
}

// EOF returns the end-of-input marker.
func (t *SymbolTable) EOF() *Symbol {
	return t.eof
}

// Size counts the symbols in a symbol table, not including the end-of-input marker.
func (t *SymbolTable) Size() int {
	return len(t.symbols)
}

// Each iterates over the symbols in order of definition.
func (t *SymbolTable) Each(mapper func(*Symbol)) {
	for _, A := range t.symbols {
		mapper(A)
	}
}

// names converts a set of symbol values to symbol names, ordered by value.
// An epsilon contained in the set is appended last.
func (t *SymbolTable) names(set *intsets.Sparse) []string {
	values := set.AppendTo(nil) // ascending
	names := make([]string, 0, len(values))
	hasEpsilon := false
	for _, v := range values {
		if v == epsilonValue {
			hasEpsilon = true
			continue
		}
		if A := t.BySerial(v); A != nil {
			names = append(names, A.Name)
		}
	}
	if hasEpsilon {
		names = append(names, Epsilon)
	}
	return names
}
