package ll

import (
	"golang.org/x/tools/container/intsets"
)

// GrammarAnalysis is an object for FIRST- and FOLLOW-set computation.
// Sets are stored with the symbols of the analysed grammar; running an
// analysis again re-computes them from scratch.
type GrammarAnalysis struct {
	g            *Grammar
	firstPasses  int
	followPasses int
}

// Analysis computes FIRST and FOLLOW sets for a grammar.
func Analysis(g *Grammar) *GrammarAnalysis {
	ga := &GrammarAnalysis{g: g}
	g.symbols.Each(func(A *Symbol) {
		A.reset()
	})
	ga.computeFirst()
	ga.computeFollow()
	tracer().Infof("analysis of %s: FIRST stable after %d passes, FOLLOW after %d",
		g.Name, ga.firstPasses, ga.followPasses)
	return ga
}

// Grammar returns the analysed grammar.
func (ga *GrammarAnalysis) Grammar() *Grammar {
	return ga.g
}

// Passes returns the number of full passes the FIRST and FOLLOW fixpoint
// computations needed, including the final pass which did not add anything.
func (ga *GrammarAnalysis) Passes() (first int, follow int) {
	return ga.firstPasses, ga.followPasses
}

// First returns FIRST(A) as a list of symbol names. Epsilon is listed last.
func (ga *GrammarAnalysis) First(A *Symbol) []string {
	return ga.g.symbols.names(A.first)
}

// Follow returns FOLLOW(A) as a list of symbol names. For terminals the
// result is empty.
func (ga *GrammarAnalysis) Follow(A *Symbol) []string {
	return ga.g.symbols.names(A.follow)
}

// FirstSet returns a copy of FIRST(A) as a set of symbol values.
func (ga *GrammarAnalysis) FirstSet(A *Symbol) *intsets.Sparse {
	s := &intsets.Sparse{}
	s.Copy(A.first)
	return s
}

// FollowSet returns a copy of FOLLOW(A) as a set of symbol values.
func (ga *GrammarAnalysis) FollowSet(A *Symbol) *intsets.Sparse {
	s := &intsets.Sparse{}
	s.Copy(A.follow)
	return s
}

// DerivesEpsilon is true if A ⇒* ε.
func (ga *GrammarAnalysis) DerivesEpsilon(A *Symbol) bool {
	return A.first.Has(epsilonValue)
}

// FirstOfSequence returns the names of terminals which may start a string
// derived from a sequence of symbols, and a flag signalling wether the
// sequence may derive ε. Unknown symbols yield (nil, false).
func (ga *GrammarAnalysis) FirstOfSequence(names ...string) ([]string, bool) {
	syms := make([]*Symbol, 0, len(names))
	for _, name := range names {
		if name == Epsilon {
			continue
		}
		A := ga.g.Symbol(name)
		if A == nil {
			return nil, false
		}
		syms = append(syms, A)
	}
	set, nullable := ga.firstOf(syms)
	return ga.g.symbols.names(set), nullable
}

// firstOf walks a sequence X1…Xk from left to right, accumulating
// FIRST(Xi) minus ε, and stops at the first Xi which cannot derive ε.
// An empty sequence derives ε.
func (ga *GrammarAnalysis) firstOf(syms []*Symbol) (*intsets.Sparse, bool) {
	set := &intsets.Sparse{}
	for _, X := range syms {
		set.UnionWith(X.first)
		set.Remove(epsilonValue)
		if !X.first.Has(epsilonValue) {
			return set, false
		}
	}
	return set, true
}

// computeFirst iterates over all productions until no FIRST set grows during
// a full pass.
func (ga *GrammarAnalysis) computeFirst() {
	ga.firstPasses = 0
	for changed := true; changed; {
		changed = false
		ga.firstPasses++
		for _, r := range ga.g.rules {
			A := ga.g.symbols.Resolve(r.LHS)
			set, nullable := ga.firstOf(ga.g.rhsSymbols(r))
			if grow(A.first, set) {
				changed = true
			}
			if nullable && A.first.Insert(epsilonValue) {
				changed = true
			}
		}
		tracer().Debugf("FIRST pass %d, changed = %v", ga.firstPasses, changed)
	}
}

// computeFollow iterates over all productions until no FOLLOW set grows during
// a full pass. For A → …Xi tail, FOLLOW(Xi) receives FIRST(tail) minus ε and,
// if tail ⇒* ε, FOLLOW(A).
func (ga *GrammarAnalysis) computeFollow() {
	ga.followPasses = 0
	for changed := true; changed; {
		changed = false
		ga.followPasses++
		for _, r := range ga.g.rules {
			A := ga.g.symbols.Resolve(r.LHS)
			rhs := ga.g.rhsSymbols(r)
			for i, X := range rhs {
				if !X.IsNonTerminal() {
					continue
				}
				set, nullable := ga.firstOf(rhs[i+1:])
				if grow(X.follow, set) {
					changed = true
				}
				if nullable && grow(X.follow, A.follow) {
					changed = true
				}
			}
		}
		tracer().Debugf("FOLLOW pass %d, changed = %v", ga.followPasses, changed)
	}
}

// grow adds all elements of src to dst and reports whether dst got larger.
// The result of intsets.Sparse.UnionWith is not usable for this, as it
// signals any difference between blocks, even if dst is a superset of src.
func grow(dst, src *intsets.Sparse) bool {
	n := dst.Len()
	dst.UnionWith(src)
	return dst.Len() > n
}
