package ll

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTable(t *testing.T, g *Grammar) (*TableGenerator, *ParseTable) {
	ga := Analysis(g)
	gen := NewTableGenerator(ga)
	table := gen.CreateTable()
	require.NotNil(t, table)
	return gen, table
}

func TestExprTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, _, err := Normalize(makeExprGrammar(t))
	require.NoError(t, err)
	gen, table := makeTable(t, g)
	assert.False(t, gen.HasConflicts)
	assert.NoError(t, table.Check())
	assert.Same(t, table, gen.Table())
	E, E1 := g.Symbol("E"), g.Symbol("E'")
	assert.Equal(t, "E → T E'", table.Label(E, g.Symbol("id")))
	assert.Equal(t, "E → T E'", table.Label(E, g.Symbol("(")))
	assert.Equal(t, "E' → ε", table.Label(E1, g.Symbol(")")))
	assert.Equal(t, "E' → ε", table.Label(E1, g.Symbol(EOF)))
	assert.Equal(t, RecoverEXT, table.Label(E, g.Symbol(")")))
	assert.Equal(t, RecoverEXT, table.Label(E, g.Symbol(EOF)))
	assert.Equal(t, RecoverEXP, table.Label(E, g.Symbol("+")))
	r, n := table.Select(E, g.Symbol("id"))
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, r.Serial)
	assert.Empty(t, table.Lookup(E, "+"))
	assert.Empty(t, table.Lookup(E, "unknown"))
	assert.Empty(t, table.Lookup(E, "E'"))
	assert.Len(t, table.Lookup(E, "id"), 1)
	cols := table.Terminals()
	assert.Equal(t, EOF, cols[len(cols)-1].Name)
	assert.Len(t, table.NonTerminals(), 5)
}

// A nullable non-terminal with FIRST and FOLLOW overlapping, but LL(1)-shaped.
//
//     S  →  A a
//     A  →  a | ε
//
func TestFirstFollowConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, err := NewGrammar("G", []*Production{Rule("S", "A", "a"), Rule("A", "a"), Rule("A", Epsilon)})
	require.NoError(t, err)
	assert.True(t, IsLL1Shaped(g.Rules()))
	gen, table := makeTable(t, g)
	assert.True(t, gen.HasConflicts)
	conflicts := table.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "A", conflicts[0].N.Name)
	assert.Equal(t, "a", conflicts[0].T.Name)
	assert.Len(t, conflicts[0].Productions, 2)
	assert.Equal(t, "(A,a): A → a / A → ε", conflicts[0].String())
	err = table.Check()
	var notLL1 *NotLL1Error
	require.True(t, errors.As(err, &notLL1))
	assert.Len(t, notLL1.Conflicts, 1)
}

func TestConflictTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	rules := []*Production{Rule("S", "A", "a"), Rule("A", Epsilon), Rule("A", "a")}
	for i := 0; i < 10; i++ {
		g, err := NewGrammar("G", rules)
		require.NoError(t, err)
		_, table := makeTable(t, g)
		r, n := table.Select(g.Symbol("A"), g.Symbol("a"))
		assert.Equal(t, 2, n)
		assert.Equal(t, 1, r.Serial)
		assert.True(t, r.IsEpsilon())
	}
}

func TestDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, err := NewGrammar("IfThenElse", []*Production{
		Rule("S", "if", "E", "then", "S"),
		Rule("S", "if", "E", "then", "S", "else", "S"),
		Rule("S", "other"),
		Rule("E", "b"),
	})
	require.NoError(t, err)
	ng, _, err := Normalize(g)
	require.NoError(t, err)
	gen, table := makeTable(t, ng)
	assert.True(t, gen.HasConflicts)
	r, n := table.Select(ng.Symbol("S'"), ng.Symbol("else"))
	assert.Equal(t, 2, n)
	assert.Equal(t, "S' → else S", r.String())
}

func TestTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, _, err := Normalize(makeExprGrammar(t))
	require.NoError(t, err)
	_, table := makeTable(t, g)
	var buf bytes.Buffer
	TableAsHTML(table, &buf)
	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<html>"))
	assert.Contains(t, html, "E → T E&#39;")
	assert.Contains(t, html, RecoverEXP)
}
