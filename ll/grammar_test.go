package ll

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Expression grammar with immediate left recursion:
//
//     E  →  E + T | T
//     T  →  T * F | F
//     F  →  ( E ) | id
//
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g := makeExprGrammar(t)
	g.Dump()
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, "E", g.Start().Name)
	assert.Equal(t, Start, g.Start().Kind())
	var nonterms, terms []string
	g.EachNonTerminal(func(A *Symbol) { nonterms = append(nonterms, A.Name) })
	g.EachTerminal(func(a *Symbol) { terms = append(terms, a.Name) })
	assert.Equal(t, []string{"E", "T", "F"}, nonterms)
	assert.Equal(t, []string{"+", "*", "(", ")", "id"}, terms)
	assert.True(t, g.Symbol(EOF).IsEOF())
	assert.Nil(t, g.Symbol("x"))
}

func TestSymbolValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	symbols := NewSymbolTable()
	assert.Equal(t, 0, symbols.Size())
	A, found := symbols.ResolveOrDefine("A", Start)
	assert.False(t, found)
	assert.Equal(t, 1, A.Value)
	B, found := symbols.ResolveOrDefine("A", Terminal)
	assert.True(t, found)
	assert.Same(t, A, B)
	assert.Same(t, symbols.EOF(), symbols.BySerial(0))
	assert.Same(t, A, symbols.BySerial(1))
	assert.Nil(t, symbols.BySerial(2))
}

func TestProductionsAreCopied(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	rules := []*Production{Rule("S", "a", "S"), Rule("S", Epsilon)}
	g, err := NewGrammar("G", rules)
	require.NoError(t, err)
	rules[0].RHS[0] = "b"
	assert.Equal(t, "S → a S", g.Rule(0).String())
	assert.True(t, g.Rule(0).Equals(Rule("S", "a", "S")))
	assert.False(t, g.Rule(0).Equals(rules[0]))
	assert.Equal(t, 1, g.Rule(1).Serial)
	assert.True(t, g.Rule(1).IsEpsilon())
	assert.Nil(t, g.Rule(2))
	assert.Len(t, g.RulesFor("S"), 2)
}

func TestEmptyRightHandSide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	_, err := NewGrammar("G", []*Production{Rule("S", "a"), Rule("A")})
	var malformed *MalformedGrammarError
	require.True(t, errors.As(err, &malformed), "expected malformed grammar error, got %v", err)
	t.Logf("error = %v", err)
}

func TestMalformedProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	for i, rules := range [][]*Production{
		nil,
		{Rule("", "a")},
		{Rule("A B", "a")},
		{Rule(EOF, "a")},
		{Rule("S", "a", Epsilon)},
	} {
		_, err := NewGrammar("G", rules)
		var malformed *MalformedGrammarError
		assert.True(t, errors.As(err, &malformed), "case #%d: got %v", i, err)
	}
}

func TestUndeclaredSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	_, err := NewGrammar("G", []*Production{Rule("S", "a", EOF)})
	var undeclared *UndeclaredSymbolError
	assert.True(t, errors.As(err, &undeclared), "got %v", err)
	//
	rules := []*Production{Rule("S", "A", "b")}
	_, err = NewGrammar("G", rules)
	assert.NoError(t, err, "lenient classification makes A a terminal")
	_, err = NewGrammar("G", rules, StrictNonterminals(true))
	assert.True(t, errors.As(err, &undeclared), "got %v", err)
	assert.Equal(t, "A", undeclared.Symbol)
}

func TestBuilderIntents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	_, err := b.Grammar()
	var undeclared *UndeclaredSymbolError
	assert.True(t, errors.As(err, &undeclared), "got %v", err)
	//
	b = NewGrammarBuilder("G")
	b.LHS("S").T("A").End()
	b.LHS("A").T("a").End()
	_, err = b.Grammar()
	var malformed *MalformedGrammarError
	assert.True(t, errors.As(err, &malformed), "got %v", err)
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.ll")
	defer teardown()
	//
	g1 := makeExprGrammar(t)
	g2, err := NewGrammar("other", g1.Rules())
	require.NoError(t, err)
	assert.Equal(t, g1.Fingerprint(), g2.Fingerprint())
	g3, err := NewGrammar("Expr", g1.Rules()[1:])
	require.NoError(t, err)
	assert.NotEqual(t, g1.Fingerprint(), g3.Fingerprint())
}
