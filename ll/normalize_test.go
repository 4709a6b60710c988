package ll

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleStrings(g *Grammar) []string {
	var s []string
	for _, r := range g.Rules() {
		s = append(s, r.String())
	}
	return s
}

func TestDetectionPredicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	assert.True(t, HasLeftRecursion(g.Rules()))
	assert.False(t, HasLeftFactoring(g.Rules()))
	assert.False(t, IsLL1Shaped(g.Rules()))
	rules := []*Production{Rule("S", "a", "b"), Rule("S", "a", "c")}
	assert.False(t, HasLeftRecursion(rules))
	assert.True(t, HasLeftFactoring(rules))
	assert.False(t, IsLL1Shaped(rules))
}

func TestEliminateLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	ng, report, err := Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"E → T E'",
		"E' → + T E'",
		"E' → ε",
		"T → F T'",
		"T' → * F T'",
		"T' → ε",
		"F → ( E )",
		"F → id",
	}, ruleStrings(ng))
	assert.Equal(t, 1, report.Passes)
	assert.True(t, report.LL1Shaped)
	assert.Empty(t, report.IndirectLeftRecursion)
	assert.Equal(t, "E", ng.Start().Name)
	assert.False(t, HasLeftRecursion(ng.Rules()))
}

func TestLeftFactoring(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("IfThenElse")
	b.LHS("S").T("if").N("E").T("then").N("S").End()
	b.LHS("S").T("if").N("E").T("then").N("S").T("else").N("S").End()
	b.LHS("S").T("other").End()
	b.LHS("E").T("b").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	ng, report, err := Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"S → if E then S S'",
		"S' → else S",
		"S' → ε",
		"S → other",
		"E → b",
	}, ruleStrings(ng))
	assert.True(t, report.LL1Shaped)
	ga := Analysis(ng)
	followS := ga.Follow(ng.Symbol("S"))
	followS1 := ga.Follow(ng.Symbol("S'"))
	for _, f := range followS {
		assert.Contains(t, followS1, f)
	}
	assert.Contains(t, followS1, "else")
}

func TestNormalizeIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	ng, _, err := Normalize(makeExprGrammar(t))
	require.NoError(t, err)
	nng, report, err := Normalize(ng)
	require.NoError(t, err)
	assert.Same(t, ng, nng)
	assert.Equal(t, 0, report.Passes)
	assert.Equal(t, ng.Fingerprint(), nng.Fingerprint())
}

func TestNameCollision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, err := NewGrammar("G", []*Production{
		Rule("A", "A", "x"),
		Rule("A", "A'"),
		Rule("A'", "y"),
	})
	require.NoError(t, err)
	_, _, err = Normalize(g)
	var collision *NameCollisionError
	require.True(t, errors.As(err, &collision), "got %v", err)
	assert.Equal(t, "A'", collision.Name)
	assert.Equal(t, "A", collision.For)
}

func TestOnlyLeftRecursive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, err := NewGrammar("G", []*Production{Rule("A", "A", "x")})
	require.NoError(t, err)
	_, _, err = Normalize(g)
	var malformed *MalformedGrammarError
	assert.True(t, errors.As(err, &malformed), "got %v", err)
}

func TestCyclicProductionDropped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, err := NewGrammar("G", []*Production{Rule("A", "A"), Rule("A", "x")})
	require.NoError(t, err)
	ng, _, err := Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"A → x"}, ruleStrings(ng))
}

func TestMaxRewrites(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	// every pass of left factoring uncovers another common prefix
	g, err := NewGrammar("G", []*Production{
		Rule("S", "a", "b", "c"),
		Rule("S", "a", "b", "d"),
		Rule("S", "a", "x"),
	})
	require.NoError(t, err)
	_, report, err := Normalize(g, MaxRewrites(1))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passes)
	assert.False(t, report.LL1Shaped)
	ng, report, err := Normalize(g)
	require.NoError(t, err)
	assert.True(t, report.LL1Shaped)
	assert.True(t, IsLL1Shaped(ng.Rules()))
}

func TestIndirectLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g, err := NewGrammar("G", []*Production{
		Rule("S", "A", "a"),
		Rule("S", "b"),
		Rule("A", "S", "c"),
		Rule("A", "d"),
	})
	require.NoError(t, err)
	assert.False(t, HasLeftRecursion(g.Rules()))
	_, report, err := Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "A"}, report.IndirectLeftRecursion)
	assert.Empty(t, IndirectLeftRecursion(Analysis(makeNullableGrammar(t))))
}
