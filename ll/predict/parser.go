package predict

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/topdown/ll"
	"github.com/npillmayer/topdown/ll/scanner"
)

// Verdict is the state of a parser run.
type Verdict int8

// A parse always ends with a verdict of either Accepted or Rejected.
const (
	Running Verdict = iota
	Accepted
	Rejected
)

func (v Verdict) String() string {
	switch v {
	case Running:
		return "running"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("<verdict %d>", int8(v))
}

// ActionKind is the kind of a parser step.
type ActionKind int8

// Parser steps
const (
	Apply      ActionKind = iota // expand a non-terminal by a production
	Match                        // match a terminal against the input
	RecoverEXT                   // pop a non-terminal assumed absent
	RecoverEXP                   // skip an unexpected input token
	Accept
	Reject
)

func (k ActionKind) String() string {
	switch k {
	case Apply:
		return "apply"
	case Match:
		return "match"
	case RecoverEXT:
		return ll.RecoverEXT
	case RecoverEXP:
		return ll.RecoverEXP
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("<action %d>", int8(k))
}

// Step is a trace record of the parser. Stack and Input are snapshots taken
// after the action, the stack listed from bottom to top.
type Step struct {
	Stack  []string
	Input  []string
	Action ActionKind
	Rule   *ll.Production // production applied, for Apply steps
	Token  string         // token matched or skipped
	Reason string         // for Reject steps
}

// Label returns a human readable description of the action of a step.
func (s Step) Label() string {
	switch s.Action {
	case Apply:
		return s.Rule.String()
	case Match:
		return "match " + s.Token
	case RecoverEXT:
		return fmt.Sprintf("%s: pop %s", ll.RecoverEXT, s.Token)
	case RecoverEXP:
		return fmt.Sprintf("%s: skip %s", ll.RecoverEXP, s.Token)
	case Reject:
		return "reject: " + s.Reason
	}
	return s.Action.String()
}

func (s Step) String() string {
	return fmt.Sprintf("%-24s %24s   %s", strings.Join(s.Stack, " "),
		strings.Join(s.Input, " "), s.Label())
}

// Result is the outcome of a parser run.
type Result struct {
	Verdict    Verdict
	Reason     string           // reason for rejection
	Steps      []Step           // trace of all steps, the last one being Accept or Reject
	Derivation []*ll.Production // productions applied, in order of application
	Consumed   int              // number of input tokens matched
	EXT, EXP   int              // number of recoveries
}

// Accepted is a convenience predicate.
func (r *Result) Accepted() bool {
	return r.Verdict == Accepted
}

// Recoveries returns the total number of panic-mode recoveries.
func (r *Result) Recoveries() int {
	return r.EXT + r.EXP
}

// Parser is a predictive parser. It may be used for more than one parse, but
// not concurrently.
type Parser struct {
	table *ll.ParseTable
	g     *ll.Grammar
	stack *arraystack.Stack // of *ll.Symbol, nil for unknown symbols
	input []string
	pos   int // current position in input
	guard expansionGuard
}

// NewParser creates a parser for a prediction table.
func NewParser(table *ll.ParseTable) *Parser {
	return &Parser{
		table: table,
		g:     table.Grammar(),
	}
}

// ParseTokens parses a list of input tokens. Tokens are matched against
// terminals of the grammar by equality.
func (p *Parser) ParseTokens(tokens []string) *Result {
	p.input = append(append(make([]string, 0, len(tokens)+1), tokens...), ll.EOF)
	return p.run()
}

// Parse reads all tokens from a tokenizer, then parses them.
func (p *Parser) Parse(tokens scanner.Tokenizer) *Result {
	return p.ParseTokens(scanner.Lexemes(tokens))
}

func (p *Parser) run() *Result {
	result := &Result{Verdict: Running}
	p.pos = 0
	p.stack = arraystack.New()
	p.stack.Push(p.g.Symbol(ll.EOF))
	p.stack.Push(p.g.Start())
	p.guard.reset(p.g)
	for i, tok := range p.input[:len(p.input)-1] {
		if tok == ll.EOF {
			p.reject(result, fmt.Sprintf("end-of-input marker as input token #%d", i+1))
			return result
		}
	}
	tracer().Debugf("=== parse [%s] ==========================", strings.Join(p.input, " "))
	for result.Verdict == Running {
		p.step(result)
	}
	tracer().Infof("parse of %d tokens %s after %d steps, %d recoveries", len(p.input)-1,
		result.Verdict, len(result.Steps), result.Recoveries())
	return result
}

// step performs a single transition of the parser.
func (p *Parser) step(result *Result) {
	x, _ := p.stack.Peek()
	T, _ := x.(*ll.Symbol)
	a := p.input[p.pos]
	atEnd := p.pos == len(p.input)-1
	switch {
	case T == nil:
		p.reject(result, "unknown stack symbol")
	case T.IsEOF():
		if atEnd {
			p.record(result, Step{Action: Accept})
			result.Verdict = Accepted
			return
		}
		p.reject(result, "stack/input length mismatch")
	case T.IsNonTerminal():
		r, n := p.table.Select(T, p.lookahead(a))
		if n == 0 {
			p.recover(result, T, a, atEnd)
			return
		}
		if n > 1 {
			tracer().Debugf("conflict at (%s,%s), selecting %s", T, a, r)
		}
		p.stack.Pop()
		for i := len(r.RHS) - 1; i >= 0 && !r.IsEpsilon(); i-- {
			p.stack.Push(p.g.Symbol(r.RHS[i]))
		}
		result.Derivation = append(result.Derivation, r)
		p.record(result, Step{Action: Apply, Rule: r})
		if reason := p.guard.check(p.stack); reason != "" {
			p.reject(result, reason)
		}
	case T.IsTerminal():
		if T.Name != a {
			p.reject(result, fmt.Sprintf("expected %s, found %s", T, a))
			return
		}
		p.stack.Pop()
		p.advance()
		result.Consumed++
		p.record(result, Step{Action: Match, Token: a})
	default:
		p.reject(result, "unknown stack symbol")
	}
}

// lookahead resolves the current token to a column of the prediction table.
// Tokens which are not terminals of the grammar resolve to nil.
func (p *Parser) lookahead(a string) *ll.Symbol {
	if A := p.g.Symbol(a); A != nil && A.IsTerminal() {
		return A
	}
	return nil
}

// recover handles an empty table cell (T,a).
func (p *Parser) recover(result *Result, T *ll.Symbol, a string, atEnd bool) {
	la := p.lookahead(a)
	if atEnd || (la != nil && p.table.Analysis().FollowSet(T).Has(la.Value)) {
		tracer().Infof("%s: no entry at (%s,%s), assuming %s absent", ll.RecoverEXT, T, a, T)
		p.stack.Pop()
		result.EXT++
		p.record(result, Step{Action: RecoverEXT, Token: T.Name})
		return
	}
	tracer().Infof("%s: no entry at (%s,%s), skipping %s", ll.RecoverEXP, T, a, a)
	p.advance()
	result.EXP++
	p.record(result, Step{Action: RecoverEXP, Token: a})
}

func (p *Parser) advance() {
	p.pos++
	p.guard.reset(p.g)
}

func (p *Parser) reject(result *Result, reason string) {
	tracer().Errorf("input rejected: %s", reason)
	result.Verdict = Rejected
	result.Reason = reason
	p.record(result, Step{Action: Reject, Reason: reason})
}

// record appends a step to the trace, taking snapshots of stack and input.
func (p *Parser) record(result *Result, step Step) {
	step.Stack = p.snapshot()
	step.Input = append([]string(nil), p.input[p.pos:]...)
	tracer().Debugf("%s", step)
	result.Steps = append(result.Steps, step)
}

// snapshot lists the stack from bottom to top.
func (p *Parser) snapshot() []string {
	values := p.stack.Values() // top first
	names := make([]string, len(values))
	for i, x := range values {
		name := "?"
		if A, ok := x.(*ll.Symbol); ok && A != nil {
			name = A.Name
		}
		names[len(values)-1-i] = name
	}
	return names
}

// --- Termination -----------------------------------------------------------

// expansionGuard detects expansions which never consume input. This may only
// happen for tables with conflicts, e.g. for grammars with left recursion:
// either a stack configuration repeats, or the stack grows beyond what a
// sequence of expansions without left recursion could produce.
type expansionGuard struct {
	seen  map[string]bool
	depth int // stack depth at last consumption, -1 if unset
	limit int
}

func (guard *expansionGuard) reset(g *ll.Grammar) {
	guard.seen = make(map[string]bool)
	guard.depth = -1
	if guard.limit == 0 {
		maxRHS := 1
		for _, r := range g.Rules() {
			if len(r.RHS) > maxRHS {
				maxRHS = len(r.RHS)
			}
		}
		guard.limit = g.Size() * maxRHS
	}
}

func (guard *expansionGuard) check(stack *arraystack.Stack) string {
	if guard.depth < 0 {
		guard.depth = stack.Size()
	}
	if stack.Size() > guard.depth+guard.limit {
		return "expansion does not consume input"
	}
	var key strings.Builder
	for _, x := range stack.Values() {
		if A, ok := x.(*ll.Symbol); ok && A != nil {
			fmt.Fprintf(&key, "%d.", A.Value)
		} else {
			key.WriteString("?.")
		}
	}
	if guard.seen[key.String()] {
		return "expansion does not consume input"
	}
	guard.seen[key.String()] = true
	return ""
}
