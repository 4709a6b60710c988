package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/topdown/ll/predict"
	"github.com/npillmayer/topdown/ll/scanner"
	"github.com/npillmayer/topdown/ll/scanner/lexmach"
	"github.com/spf13/cobra"
)

var (
	errRejected  = errors.New("input rejected")
	errRecovered = errors.New("input accepted after error recovery")
)

func newParseCmd(opts *options) *cobra.Command {
	var goTokens, noRecovery bool

	cmd := &cobra.Command{
		Use:   "parse <grammar> [tokens…]",
		Short: "Parse a sequence of tokens and print the parser trace",
		Long: `Parse input with the LL(1) table of a grammar.

Tokens are taken from the command line or, if none are given, from the first
line of stdin. Tokens are separated by whitespace and are matched against
terminals of the grammar by equality. With --go-tokens input is split into
Go-like tokens instead, which allows e.g. "id+id*id".

Input accepted only by error recovery is reported with a warning. With
--no-recovery it makes the command fail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], opts)
			if err != nil {
				return err
			}
			input := strings.Join(args[1:], " ")
			if len(args) == 1 {
				if input, err = readLine(); err != nil {
					return err
				}
			}
			tokens, err := tokenizer(input, goTokens)
			if err != nil {
				return err
			}
			result := s.parser.Parse(tokens)
			renderTrace(result)
			return verdict(result, noRecovery)
		},
	}

	cmd.Flags().BoolVar(&goTokens, "go-tokens", false, "split input into Go-like tokens")
	cmd.Flags().BoolVar(&noRecovery, "no-recovery", false, "fail on input accepted by error recovery")

	return cmd
}

// verdict maps a parse result to the exit status of the parse command.
func verdict(result *predict.Result, noRecovery bool) error {
	switch {
	case result.Verdict != predict.Accepted:
		return fmt.Errorf("%w: %s", errRejected, result.Reason)
	case noRecovery && result.Recoveries() > 0:
		return fmt.Errorf("%w (%d recoveries)", errRecovered, result.Recoveries())
	}
	return nil
}

func readLine() (string, error) {
	in := bufio.NewScanner(os.Stdin)
	if in.Scan() {
		return in.Text(), nil
	}
	if err := in.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return "", nil
}

// tokenizer creates a tokenizer for an input line.
func tokenizer(input string, goTokens bool) (scanner.Tokenizer, error) {
	if goTokens {
		return scanner.GoTokenizer("input", strings.NewReader(input)), nil
	}
	lm, err := lexmach.Atoms()
	if err != nil {
		return nil, err
	}
	return lm.Scanner(input)
}
