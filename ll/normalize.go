package ll

import (
	"fmt"
)

// Marker appended to a non-terminal's name to form a new non-terminal.
const primeMarker = "'"

// --- Detection predicates --------------------------------------------------

// HasLeftRecursion is true if the right-hand side of any production starts
// with its own left-hand side.
func HasLeftRecursion(rules []*Production) bool {
	for _, r := range rules {
		if len(r.RHS) > 0 && r.RHS[0] == r.LHS {
			return true
		}
	}
	return false
}

// HasLeftFactoring is true if, for some left-hand side, two or more productions
// share the same first right-hand-side symbol.
func HasLeftFactoring(rules []*Production) bool {
	seen := make(map[[2]string]bool)
	for _, r := range rules {
		if len(r.RHS) == 0 {
			continue
		}
		key := [2]string{r.LHS, r.RHS[0]}
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

// IsLL1Shaped is true if a list of productions has neither immediate left
// recursion nor left-factoring ambiguity. This is necessary for a grammar to
// be LL(1), but not sufficient.
func IsLL1Shaped(rules []*Production) bool {
	return !HasLeftRecursion(rules) && !HasLeftFactoring(rules)
}

// --- Grouping --------------------------------------------------------------

type ruleGroup struct {
	key   string
	rules []*Production
}

// groupBy partitions productions by a key, keeping groups in order of first
// appearance and productions in order within groups.
func groupBy(rules []*Production, key func(*Production) string) []*ruleGroup {
	var groups []*ruleGroup
	index := make(map[string]*ruleGroup)
	for _, r := range rules {
		k := key(r)
		grp, ok := index[k]
		if !ok {
			grp = &ruleGroup{key: k}
			index[k] = grp
			groups = append(groups, grp)
		}
		grp.rules = append(grp.rules, r)
	}
	return groups
}

func byLHS(r *Production) string {
	return r.LHS
}

func byFirstSymbol(r *Production) string {
	return r.RHS[0]
}

// --- Normalizer ------------------------------------------------------------

// normalizer mints fresh non-terminals. Names of the caller's grammar are
// reserved: minting one of them is a NameCollisionError. Names minted by
// earlier passes are skipped by appending another marker.
type normalizer struct {
	reserved map[string]bool
	taken    map[string]bool
}

func newNormalizer(g *Grammar) *normalizer {
	n := &normalizer{
		reserved: make(map[string]bool),
		taken:    make(map[string]bool),
	}
	g.symbols.Each(func(A *Symbol) {
		n.reserved[A.Name] = true
	})
	return n
}

// use records all symbols of a rule list as taken.
func (n *normalizer) use(rules []*Production) {
	for _, r := range rules {
		n.taken[r.LHS] = true
		for _, s := range r.RHS {
			n.taken[s] = true
		}
	}
}

func (n *normalizer) freshName(A string) (string, error) {
	name := A + primeMarker
	for {
		if n.reserved[name] {
			return "", &NameCollisionError{Name: name, For: A}
		}
		if !n.taken[name] {
			n.taken[name] = true
			return name, nil
		}
		name += primeMarker
	}
}

// eliminateLeftRecursion rewrites A → Aα1|…|Aαn|β1|…|βm into
// A → β1A'|…|βmA' and A' → α1A'|…|αnA'|ε.
func (n *normalizer) eliminateLeftRecursion(rules []*Production) ([]*Production, error) {
	n.use(rules)
	var result []*Production
	for _, grp := range groupBy(rules, byLHS) {
		A := grp.key
		var alphas, betas [][]string
		for _, r := range grp.rules {
			if r.RHS[0] != A {
				betas = append(betas, r.RHS)
			} else if len(r.RHS) > 1 {
				alphas = append(alphas, r.RHS[1:])
			} else {
				tracer().Debugf("dropping cyclic production %s", r)
			}
		}
		if len(alphas) == 0 && len(betas) == len(grp.rules) {
			result = append(result, grp.rules...)
			continue
		}
		if len(betas) == 0 {
			return nil, &MalformedGrammarError{Text: grp.rules[0].String(),
				Reason: fmt.Sprintf("non-terminal %s has only left-recursive productions", A)}
		}
		if len(alphas) == 0 { // only cyclic productions A → A have been dropped
			for _, r := range grp.rules {
				if len(r.RHS) > 1 || r.RHS[0] != A {
					result = append(result, r)
				}
			}
			continue
		}
		A1, err := n.freshName(A)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("eliminating left recursion of %s with %s", A, A1)
		for _, beta := range betas {
			result = append(result, Rule(A, appendSymbol(beta, A1)...))
		}
		for _, alpha := range alphas {
			result = append(result, Rule(A1, appendSymbol(alpha, A1)...))
		}
		result = append(result, Rule(A1, Epsilon))
	}
	return result, nil
}

// leftFactor replaces each group of A-productions sharing a first symbol by
// A → α A', where α is the longest prefix common to the group, with the
// remaining suffixes (or ε) as productions of A'.
func (n *normalizer) leftFactor(rules []*Production) ([]*Production, error) {
	n.use(rules)
	var result []*Production
	for _, grp := range groupBy(rules, byLHS) {
		A := grp.key
		for _, sub := range groupBy(grp.rules, byFirstSymbol) {
			if len(sub.rules) == 1 {
				result = append(result, sub.rules[0])
				continue
			}
			if sub.key == Epsilon { // duplicate ε-productions
				result = append(result, sub.rules[0])
				continue
			}
			A1, err := n.freshName(A)
			if err != nil {
				return nil, err
			}
			prefix := commonPrefix(sub.rules)
			tracer().Debugf("left factoring %s → %v … with %s", A, prefix, A1)
			result = append(result, Rule(A, appendSymbol(prefix, A1)...))
			empty := false
			for _, r := range sub.rules {
				if len(r.RHS) > len(prefix) {
					result = append(result, Rule(A1, r.RHS[len(prefix):]...))
				} else {
					empty = true
				}
			}
			if empty { // ε-alternative goes last, as with left recursion
				result = append(result, Rule(A1, Epsilon))
			}
		}
	}
	return result, nil
}

// commonPrefix returns the longest prefix shared by the right-hand sides of
// a list of productions.
func commonPrefix(rules []*Production) []string {
	prefix := rules[0].RHS
	for _, r := range rules[1:] {
		i := 0
		for i < len(prefix) && i < len(r.RHS) && prefix[i] == r.RHS[i] {
			i++
		}
		prefix = prefix[:i]
	}
	return append([]string(nil), prefix...)
}

// appendSymbol appends a symbol to a right-hand side, treating ε as empty.
func appendSymbol(rhs []string, s string) []string {
	if len(rhs) == 1 && rhs[0] == Epsilon {
		return []string{s}
	}
	r := make([]string, len(rhs), len(rhs)+1)
	copy(r, rhs)
	return append(r, s)
}

// EliminateLeftRecursion removes immediate left recursion from a grammar and
// returns the rewritten list of productions. Non-terminals without immediate
// left recursion pass through unchanged.
func EliminateLeftRecursion(g *Grammar) ([]*Production, error) {
	return newNormalizer(g).eliminateLeftRecursion(g.rules)
}

// LeftFactor left-factors a grammar and returns the rewritten list of
// productions. Alternatives are grouped by their first symbol; each group is
// factored on the longest prefix common to all of its members.
func LeftFactor(g *Grammar) ([]*Production, error) {
	return newNormalizer(g).leftFactor(g.rules)
}

// Report summarizes a normalization.
type Report struct {
	Passes                int      // number of rewriting passes
	Rewrites              []string // description of each rewrite applied
	LL1Shaped             bool     // true if the result is LL(1)-shaped
	IndirectLeftRecursion []string // non-terminals on indirect left-recursive cycles
}

// Normalize rewrites a grammar until it is LL(1)-shaped. Every pass
// eliminates immediate left recursion (if present) and then left-factors
// (if necessary). Normalization stops when the grammar is LL(1)-shaped, when a
// pass does not change the grammar, or after a maximum number of passes
// (see MaxRewrites).
//
// The start symbol of the result is the start symbol of g. If g is already
// LL(1)-shaped, it is returned unchanged.
func Normalize(g *Grammar, opts ...Option) (*Grammar, *Report, error) {
	conf := g.conf
	for _, opt := range opts {
		opt(&conf)
	}
	if conf.maxRewrites < 1 {
		conf.maxRewrites = DefaultMaxRewrites
	}
	report := &Report{}
	n := newNormalizer(g)
	rules := g.rules
	fp := fingerprint(rules)
	for !IsLL1Shaped(rules) && report.Passes < conf.maxRewrites {
		report.Passes++
		var err error
		if HasLeftRecursion(rules) {
			if rules, err = n.eliminateLeftRecursion(rules); err != nil {
				return nil, nil, err
			}
			report.Rewrites = append(report.Rewrites,
				fmt.Sprintf("pass %d: eliminated left recursion", report.Passes))
		}
		if HasLeftFactoring(rules) {
			if rules, err = n.leftFactor(rules); err != nil {
				return nil, nil, err
			}
			report.Rewrites = append(report.Rewrites,
				fmt.Sprintf("pass %d: left factored", report.Passes))
		}
		next := fingerprint(rules)
		if next == fp {
			tracer().Infof("normalization of %s makes no progress, stopping", g.Name)
			break
		}
		fp = next
	}
	report.LL1Shaped = IsLL1Shaped(rules)
	if !report.LL1Shaped {
		tracer().Errorf("grammar %s not LL(1)-shaped after %d passes", g.Name, report.Passes)
	}
	ng := g
	if report.Passes > 0 {
		var err error
		if ng, err = NewGrammar(g.Name, rules, func(c *config) { *c = conf }); err != nil {
			return nil, nil, err
		}
	}
	report.IndirectLeftRecursion = IndirectLeftRecursion(Analysis(ng))
	if len(report.IndirectLeftRecursion) > 0 {
		tracer().Infof("grammar %s has indirect left recursion through %v", g.Name,
			report.IndirectLeftRecursion)
	}
	return ng, report, nil
}

// IndirectLeftRecursion returns the non-terminals A with A ⇒+ A α by a
// derivation which is not a single immediately left-recursive step, i.e.
// through other non-terminals or through nullable prefixes. Normalization does
// not remove this kind of left recursion. Result is in order of definition.
func IndirectLeftRecursion(ga *GrammarAnalysis) []string {
	g := ga.g
	leads := make(map[*Symbol][]*Symbol) // A → B if A → X1…Xi-1 B … with X1…Xi-1 ⇒* ε
	for _, r := range g.rules {
		A := g.symbols.Resolve(r.LHS)
		for i, X := range g.rhsSymbols(r) {
			if X.IsNonTerminal() && !(i == 0 && X == A) {
				leads[A] = append(leads[A], X)
			}
			if !ga.DerivesEpsilon(X) {
				break
			}
		}
	}
	var cyclic []string
	g.EachNonTerminal(func(A *Symbol) {
		if reaches(leads, A) {
			cyclic = append(cyclic, A.Name)
		}
	})
	return cyclic
}

// reaches is true if A is reachable from one of its successors.
func reaches(leads map[*Symbol][]*Symbol, A *Symbol) bool {
	visited := make(map[*Symbol]bool)
	stack := append([]*Symbol(nil), leads[A]...)
	for len(stack) > 0 {
		B := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if B == A {
			return true
		}
		if visited[B] {
			continue
		}
		visited[B] = true
		stack = append(stack, leads[B]...)
	}
	return false
}
