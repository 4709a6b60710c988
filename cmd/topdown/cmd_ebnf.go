package main

import (
	"os"

	"github.com/npillmayer/topdown/ll/notation"
	"github.com/spf13/cobra"
)

func newEBNFCmd(opts *options) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "ebnf <grammar>",
		Short: "Export the normalized grammar as EBNF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], opts)
			if err != nil {
				return err
			}
			if _, err = notation.WriteEBNF(os.Stdout, s.grammar); err != nil {
				return err
			}
			if verify {
				return notation.VerifyEBNF(s.grammar)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", true, "verify the exported grammar")

	return cmd
}
