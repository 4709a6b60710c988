/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the predictive parser of TopDown.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing regular expressions and fixed
literals. Please refer to the lexmachine documentation on how to instruct lexmachine.

	literals := lexmach.Literals{"|": BAR, "(": LPAREN} // literal strings and their token types

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   topdown.Token
	}

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
Literals are added after the patterns of init. NewLMAdapter will return an error
if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")

Predictive parsing matches tokens against terminals by lexeme. For this,
Atoms() returns a ready-made adapter splitting input into whitespace-separated
atoms, which is what the command line tools use.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
