/*
Package topdown is an LL(1) parsing toolbox.

TopDown analyses context-free grammars for single-token-lookahead top-down
parsing. Grammars which are not LL(1)-shaped are normalized by eliminating
immediate left recursion and by left factoring. From the normalized grammar
an LL(1) prediction table is built, which drives a stack-based predictive
parser with panic-mode error recovery. Package structure is as follows:

■ ll: Package ll implements grammars, FIRST/FOLLOW analysis, grammar
normalization and the construction of LL(1) prediction tables.

■ ll/predict: Package predict implements the table-driven predictive parser.

■ ll/scanner: Package scanner defines the tokenizer interface the parser relies on.
Sub-package lexmach adapts the lexmachine scanner generator.

■ ll/notation: Package notation reads grammars from a line-oriented text notation.

■ cmd/topdown: A command line tool for grammar analysis and interactive parsing.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package topdown
