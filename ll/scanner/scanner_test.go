package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var inputStrings = []string{
	"id",
	"id+id*id",
	"( id ) // commented",
	"if b then other else other",
}

var tokenCounts = []int{1, 5, 3, 6}

func TestGoTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestSliceTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "topdown.scanner")
	defer teardown()
	//
	tokens := FromSlice([]string{"id", "+", "id"})
	token := tokens.NextToken()
	assert.Equal(t, Atom, token.TokType())
	assert.Equal(t, "id", token.Lexeme())
	assert.Equal(t, uint64(0), token.Span().From())
	assert.Equal(t, []string{"+", "id"}, Lexemes(tokens))
	token = tokens.NextToken()
	assert.EqualValues(t, EOF, token.TokType())
	assert.Equal(t, uint64(3), token.Span().From())
	assert.Empty(t, Lexemes(FromSlice(nil)))
}
