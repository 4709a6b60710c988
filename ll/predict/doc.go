/*
Package predict implements a table-driven predictive parser for LL(1) grammars.

The parser is driven by a prediction table as created by package ll. It keeps
a stack of grammar symbols, initialized to [ $ S ] for start symbol S, and
an input of token lexemes terminated by $. In every step the top of the stack
is compared against the current input token: non-terminals are expanded by
the production found in the prediction table, terminals are matched against
the input.

Error Recovery

Missing table entries do not stop the parser. It recovers in panic-mode:

■ EXT: if the current token may follow the non-terminal on top of the stack,
or if input is exhausted, the non-terminal is assumed absent and popped.

■ EXP: otherwise the current token is unexpected and skipped. The end of input
is never skipped.

Every step is recorded in a trace, which is available regardless of the verdict.

    parser := predict.NewParser(table)
    result := parser.ParseTokens(strings.Fields("id + id * id"))
    for _, step := range result.Steps {
        fmt.Println(step)
    }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package predict

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'topdown.ll'.
func tracer() tracing.Trace {
	return tracing.Select("topdown.ll")
}
