/*
Command topdown analyses grammars for LL(1) parsing and parses input with the
resulting prediction tables.

Grammars are read from files in line notation (see package ll/notation):

    E -> E + T | T
    T -> T * F | F
    F -> ( E ) | id

Grammars which are not LL(1)-shaped are normalized before analysis.
Sub-commands are:

    topdown analyze <grammar>            print productions, FIRST/FOLLOW and the LL(1) table
    topdown parse <grammar> [tokens…]    parse a token sequence and print the parser trace
    topdown ebnf <grammar>               export the normalized grammar as EBNF
    topdown repl <grammar>               parse input lines interactively

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'topdown.cli'
func tracer() tracing.Trace {
	return tracing.Select("topdown.cli")
}
