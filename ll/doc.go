/*
Package ll implements prerequisites for LL(1) parsing.

Building a Grammar

Grammars are specified as an ordered list of productions, either by using
a grammar builder object or by handing a list of rules to NewGrammar.
Symbols are classified from the productions: every left-hand side is a
non-terminal (the first one being the start symbol), every other symbol
is a terminal. Grammars may contain epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a").End()     // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b").End()            // B  ->  b
    b.LHS("B").Epsilon()               // B  ->  ε
    b.LHS("D").T("d").End()            // D  ->  d
    b.LHS("D").Epsilon()               // D  ->  ε
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S] ::= [A a]
   1: [A] ::= [B D]
   2: [B] ::= [b]
   3: [B] ::= [ε]
   4: [D] ::= [d]
   5: [D] ::= [ε]

Grammar Normalization

A grammar which has immediate left recursion or alternatives sharing a
common first symbol cannot be parsed top-down with one token of lookahead.
Normalize rewrites such grammars by eliminating immediate left recursion
and by left factoring, until the grammar is LL(1)-shaped:

    ng, report, err := ll.Normalize(g)

Indirect left recursion is not removed. IndirectLeftRecursion reports
non-terminals taking part in such cycles.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an Analysis object, which computes FIRST and
FOLLOW sets for the grammar.

    ga := ll.Analysis(g)
    g.EachNonTerminal(func(A *ll.Symbol) {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    })

    // Output:
    FIRST(S) = [a b d]
    FIRST(A) = [b d ε]
    FIRST(B) = [b ε]
    FIRST(D) = [d ε]

Table Construction

Using grammar analysis as input, the LL(1) prediction table is built.
Multiply defined cells are conflicts. They are recorded, not rejected:

    gen := ll.NewTableGenerator(ga)
    table := gen.CreateTable()
    if gen.HasConflicts { ... }   // not a true LL(1) grammar

Tables may be exported to HTML, with empty cells annotated for
panic-mode error recovery (EXT and EXP).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'topdown.ll'.
func tracer() tracing.Trace {
	return tracing.Select("topdown.ll")
}
