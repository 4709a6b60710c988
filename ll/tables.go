package ll

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/topdown/ll/sparse"
)

// Labels for empty table cells, used for panic-mode error recovery.
const (
	// RecoverEXT marks an empty cell whose column is in FOLLOW of the row's
	// non-terminal (or is end-of-input): the non-terminal is assumed absent.
	RecoverEXT = "EXT"
	// RecoverEXP marks an empty cell whose column is neither in FIRST nor in
	// FOLLOW of the row's non-terminal: the input token is skipped.
	RecoverEXP = "EXP"
)

// === Table Construction ====================================================

// TableGenerator is a generator object to construct LL(1) prediction tables.
// Clients usually create a Grammar G, then a GrammarAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTable() constructs
// the table for a predictive parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *GrammarAnalysis
	table        *ParseTable
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *GrammarAnalysis) *TableGenerator {
	return &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// Table returns the prediction table. The table has to be built by calling
// CreateTable() previously.
func (gen *TableGenerator) Table() *ParseTable {
	if gen.table == nil {
		tracer().Errorf("table not yet initialized")
	}
	return gen.table
}

// CreateTable builds the LL(1) prediction table. For every production A → α
// the production is entered at (A,t) for each terminal t in FIRST(α); if α ⇒* ε,
// it is entered at (A,f) for each f in FOLLOW(A). Cells receiving more than one
// production are recorded as conflicts.
func (gen *TableGenerator) CreateTable() *ParseTable {
	tracer().Debugf("=== build LL(1) table ============================================")
	t := newParseTable(gen.ga)
	for _, r := range gen.g.rules {
		A := gen.g.symbols.Resolve(r.LHS)
		first, nullable := gen.ga.firstOf(gen.g.rhsSymbols(r))
		for _, v := range first.AppendTo(nil) {
			t.add(A, gen.g.symbols.BySerial(v), r)
		}
		if nullable {
			for _, v := range A.follow.AppendTo(nil) {
				t.add(A, gen.g.symbols.BySerial(v), r)
			}
		}
	}
	gen.table = t
	gen.HasConflicts = t.HasConflicts()
	if gen.HasConflicts {
		for _, c := range t.Conflicts() {
			tracer().Errorf("LL(1) conflict at %s", c)
		}
	}
	tracer().Infof("LL(1) table of size %d x %d with %d entries", len(t.rows), len(t.cols),
		t.matrix.ValueCount())
	return t
}

// === Prediction Tables =====================================================

// ParseTable is an LL(1) prediction table, mapping pairs of
// (non-terminal, terminal-or-$) to the productions applicable at that cell.
// Productions in a cell are ordered by their position in the grammar.
type ParseTable struct {
	g         *Grammar
	ga        *GrammarAnalysis
	matrix    *sparse.IntMatrix // values are production serials
	rows      []*Symbol         // non-terminals
	cols      []*Symbol         // terminals, then $
	rowOf     map[*Symbol]int
	colOf     map[*Symbol]int
	conflicts *treeset.Set // of cells
}

type cell struct {
	row, col int
}

// We need this for the set of conflicts. It sorts cells in row-major order.
func cellComparator(c1, c2 interface{}) int {
	a, b := c1.(cell), c2.(cell)
	if a.row != b.row {
		return utils.IntComparator(a.row, b.row)
	}
	return utils.IntComparator(a.col, b.col)
}

func newParseTable(ga *GrammarAnalysis) *ParseTable {
	t := &ParseTable{
		g:         ga.Grammar(),
		ga:        ga,
		rowOf:     make(map[*Symbol]int),
		colOf:     make(map[*Symbol]int),
		conflicts: treeset.NewWith(cellComparator),
	}
	t.g.EachNonTerminal(func(A *Symbol) {
		t.rowOf[A] = len(t.rows)
		t.rows = append(t.rows, A)
	})
	t.g.EachTerminal(func(a *Symbol) {
		t.colOf[a] = len(t.cols)
		t.cols = append(t.cols, a)
	})
	eof := t.g.symbols.EOF()
	t.colOf[eof] = len(t.cols)
	t.cols = append(t.cols, eof)
	t.matrix = sparse.NewIntMatrix(len(t.rows), len(t.cols), sparse.DefaultNullValue)
	return t
}

func (t *ParseTable) add(A *Symbol, a *Symbol, r *Production) {
	i, ok1 := t.rowOf[A]
	j, ok2 := t.colOf[a]
	if !ok1 || !ok2 {
		panic(fmt.Sprintf("ll.ParseTable.add() with invalid cell (%v,%v)", A, a))
	}
	if t.matrix.Add(i, j, int32(r.Serial)) {
		tracer().Debugf("M[%s,%s] += %s", A, a, r)
	}
	if t.matrix.Count(i, j) > 1 {
		t.conflicts.Add(cell{i, j})
	}
}

// Grammar returns the grammar this table has been built for.
func (t *ParseTable) Grammar() *Grammar {
	return t.g
}

// Analysis returns the grammar analysis this table has been built from.
func (t *ParseTable) Analysis() *GrammarAnalysis {
	return t.ga
}

// NonTerminals returns the row symbols of the table, in order of definition.
func (t *ParseTable) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), t.rows...)
}

// Terminals returns the column symbols of the table, in order of definition,
// with the end-of-input marker last.
func (t *ParseTable) Terminals() []*Symbol {
	return append([]*Symbol(nil), t.cols...)
}

// Productions returns the productions at cell (A,a), in grammar order.
// The result is empty for cells without entries and for symbols which are not
// part of the table.
func (t *ParseTable) Productions(A *Symbol, a *Symbol) []*Production {
	i, ok1 := t.rowOf[A]
	j, ok2 := t.colOf[a]
	if !ok1 || !ok2 {
		return nil
	}
	serials := t.matrix.Values(i, j)
	rules := make([]*Production, len(serials))
	for k, s := range serials {
		rules[k] = t.g.rules[s]
	}
	return rules
}

// Lookup returns the productions at the cell for non-terminal A and an input
// lexeme. Lexemes which are not terminals of the grammar have no entries.
func (t *ParseTable) Lookup(A *Symbol, lexeme string) []*Production {
	a := t.g.symbols.Resolve(lexeme)
	if a == nil || !a.IsTerminal() {
		return nil
	}
	return t.Productions(A, a)
}

// Select returns the production to apply at cell (A,a), together with the
// number of productions in this cell. For conflicting cells the production
// occurring earliest in the grammar is selected.
func (t *ParseTable) Select(A *Symbol, a *Symbol) (*Production, int) {
	rules := t.Productions(A, a)
	if len(rules) == 0 {
		return nil, 0
	}
	return rules[0], len(rules)
}

// Label renders cell (A,a). Cells with entries are rendered as their
// productions, separated by " / ". Empty cells are labeled for error
// recovery: RecoverEXT if a is in FOLLOW(A) or a is end-of-input,
// RecoverEXP if a is neither in FIRST(A) nor in FOLLOW(A), and "-" otherwise.
func (t *ParseTable) Label(A *Symbol, a *Symbol) string {
	if rules := t.Productions(A, a); len(rules) > 0 {
		labels := make([]string, len(rules))
		for k, r := range rules {
			labels[k] = r.String()
		}
		return strings.Join(labels, " / ")
	}
	if a.IsEOF() || A.follow.Has(a.Value) {
		return RecoverEXT
	}
	if !A.first.Has(a.Value) {
		return RecoverEXP
	}
	return "-"
}

// Conflict is a table cell holding more than one production.
type Conflict struct {
	N, T        *Symbol
	Productions []*Production
}

func (c Conflict) String() string {
	labels := make([]string, len(c.Productions))
	for k, r := range c.Productions {
		labels[k] = r.String()
	}
	return fmt.Sprintf("(%s,%s): %s", c.N, c.T, strings.Join(labels, " / "))
}

// HasConflicts is true if any cell holds more than one production.
func (t *ParseTable) HasConflicts() bool {
	return !t.conflicts.Empty()
}

// Conflicts returns all conflicting cells, in row-major order.
func (t *ParseTable) Conflicts() []Conflict {
	conflicts := make([]Conflict, 0, t.conflicts.Size())
	for _, x := range t.conflicts.Values() {
		c := x.(cell)
		A, a := t.rows[c.row], t.cols[c.col]
		conflicts = append(conflicts, Conflict{N: A, T: a, Productions: t.Productions(A, a)})
	}
	return conflicts
}

// Check returns a NotLL1Error if the table has conflicts. Clients call it if
// they want to reject grammars which are not representable as a true LL(1) table.
func (t *ParseTable) Check() error {
	if !t.HasConflicts() {
		return nil
	}
	return &NotLL1Error{Conflicts: t.Conflicts()}
}

// TableAsHTML exports a prediction table in HTML-format. Empty cells show
// their error recovery label.
func TableAsHTML(t *ParseTable, w io.Writer) {
	if t == nil {
		tracer().Errorf("LL(1) table not yet created, cannot export to HTML")
		return
	}
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table for %s, %d entries<p>", html.EscapeString(t.g.Name),
		t.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, a := range t.cols {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(a.Name)))
	}
	io.WriteString(w, "</tr>\n")
	for _, A := range t.rows {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", html.EscapeString(A.Name)))
		for _, a := range t.cols {
			td := html.EscapeString(t.Label(A, a))
			if len(t.Productions(A, a)) > 1 {
				io.WriteString(w, "<td bgcolor=#ffcccc>")
			} else {
				io.WriteString(w, "<td>")
			}
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
