package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/container/intsets"
)

func makeNullableGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d").End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g := makeNullableGrammar(t)
	ga := Analysis(g)
	assert.Equal(t, []string{"a", "b", "d"}, ga.First(g.Symbol("S")))
	assert.Equal(t, []string{"b", "d", Epsilon}, ga.First(g.Symbol("A")))
	assert.Equal(t, []string{"b", Epsilon}, ga.First(g.Symbol("B")))
	assert.Equal(t, []string{"d"}, ga.First(g.Symbol("d")))
	assert.True(t, ga.DerivesEpsilon(g.Symbol("A")))
	assert.False(t, ga.DerivesEpsilon(g.Symbol("S")))
	first, follow := ga.Passes()
	assert.Greater(t, first, 1)
	assert.LessOrEqual(t, first, 4)
	assert.LessOrEqual(t, follow, 4)
}

func TestFollowSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g := makeNullableGrammar(t)
	ga := Analysis(g)
	assert.Equal(t, []string{EOF}, ga.Follow(g.Symbol("S")))
	assert.Equal(t, []string{"a"}, ga.Follow(g.Symbol("A")))
	assert.Equal(t, []string{"a", "d"}, ga.Follow(g.Symbol("B")))
	assert.Equal(t, []string{"a"}, ga.Follow(g.Symbol("D")))
	assert.Empty(t, ga.Follow(g.Symbol("a")))
}

func TestNoEpsilonInFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, _, err := Normalize(makeExprGrammar(t))
	require.NoError(t, err)
	ga := Analysis(g)
	g.EachNonTerminal(func(A *Symbol) {
		assert.NotContains(t, ga.Follow(A), Epsilon, "FOLLOW(%s)", A)
		assert.False(t, ga.FollowSet(A).Has(epsilonValue))
	})
	g.EachTerminal(func(a *Symbol) {
		assert.Equal(t, []string{a.Name}, ga.First(a))
	})
	assert.Contains(t, ga.Follow(g.Start()), EOF)
}

func TestFirstOfSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g := makeNullableGrammar(t)
	ga := Analysis(g)
	first, nullable := ga.FirstOfSequence("B", "D")
	assert.Equal(t, []string{"b", "d"}, first)
	assert.True(t, nullable)
	first, nullable = ga.FirstOfSequence("B", "D", "a")
	assert.Equal(t, []string{"a", "b", "d"}, first)
	assert.False(t, nullable)
	_, nullable = ga.FirstOfSequence(Epsilon)
	assert.True(t, nullable)
	first, nullable = ga.FirstOfSequence("B", "x")
	assert.Nil(t, first)
	assert.False(t, nullable)
}

func TestAnalysisIsRepeatable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g := makeNullableGrammar(t)
	ga1 := Analysis(g)
	S := g.Symbol("S")
	before := ga1.FirstSet(S)
	ga2 := Analysis(g)
	assert.True(t, before.Equals(ga2.FirstSet(S)))
}

func TestFixpointPassesAreBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, _, err := Normalize(makeExprGrammar(t))
	require.NoError(t, err)
	ga := Analysis(g)
	first, follow := ga.Passes()
	assert.LessOrEqual(t, first, 6)
	assert.LessOrEqual(t, follow, 6)
	assert.Equal(t, []string{"(", "id"}, ga.First(g.Symbol("F")))
	assert.ElementsMatch(t, []string{"+", "*", ")", EOF}, ga.Follow(g.Symbol("F")))
}

func TestGrowReportsOnlyNewElements(t *testing.T) {
	dst := &intsets.Sparse{}
	dst.Insert(8)
	dst.Insert(10)
	src := &intsets.Sparse{}
	src.Insert(8)
	assert.False(t, grow(dst, src), "superset must not grow")
	src.Insert(9)
	assert.True(t, grow(dst, src))
	assert.Equal(t, 3, dst.Len())
	assert.False(t, grow(dst, src))
}
