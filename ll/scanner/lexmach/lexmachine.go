package lexmach

import (
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/topdown"
	"github.com/npillmayer/topdown/ll/scanner"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'topdown.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("topdown.scanner")
}

// Literals maps fixed token strings, e.g. "|" or "(", to token types.
type Literals map[string]int

// LMAdapter wraps a compiled lexmachine lexer.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter compiles a lexer. init adds the patterns of the lexer. Literals
// are added after init, in lexical order, and therefore lose against patterns
// of init matching the same input with equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals Literals) (*LMAdapter, error) {
	lexer := lexmachine.NewLexer()
	if init != nil {
		init(lexer)
	}
	lits := make([]string, 0, len(literals))
	for lit := range literals {
		lits = append(lits, lit)
	}
	sort.Strings(lits)
	for _, lit := range lits {
		lexer.Add([]byte(quoteLiteral(lit)), MakeToken(literals[lit]))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile lexer DFA: %v", err)
		return nil, err
	}
	return &LMAdapter{Lexer: lexer}, nil
}

// quoteLiteral escapes the regular expression operators of lexmachine.
func quoteLiteral(lit string) string {
	var b strings.Builder
	for _, c := range lit {
		if strings.ContainsRune(`\.+*?()|[]^$`, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Atoms creates an adapter which splits input into atoms separated by
// whitespace. Every atom is a token of type scanner.Atom.
func Atoms() (*LMAdapter, error) {
	return NewLMAdapter(func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[^ \t\r\n]+`), MakeToken(int(scanner.Atom)))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}, nil)
}

// Scanner creates a tokenizer for a given input.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, onError: reportError}, nil
}

// LMScanner tokenizes a single input with a lexmachine lexer.
type LMScanner struct {
	scanner *lexmachine.Scanner
	onError func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler is part of the Tokenizer interface. A nil handler restores
// tracing of errors.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = reportError
	}
	lms.onError = h
}

func reportError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface. Unconsumed input is reported
// to the error handler and skipped. Spans are byte offsets into the input.
func (lms *LMScanner) NextToken() topdown.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.onError(err)
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		at := uint64(lms.scanner.TC)
		return scanner.MakeDefaultToken(scanner.EOF, "", topdown.Span{at, at})
	}
	t := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", t.Type, t.Lexeme)
	from := uint64(t.TC)
	return scanner.MakeDefaultToken(topdown.TokType(t.Type), string(t.Lexeme),
		topdown.Span{from, from + uint64(len(t.Lexeme))})
}

// ---------------------------------------------------------------------------

// Skip is a lexer action which drops the match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a lexer action which turns a match into a token of type id.
func MakeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
