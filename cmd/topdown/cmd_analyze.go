package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/topdown/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var htmlFile string

	cmd := &cobra.Command{
		Use:   "analyze <grammar>",
		Short: "Print productions, FIRST/FOLLOW sets and the LL(1) table of a grammar",
		Long: `Read a grammar, normalize it if it is not LL(1)-shaped, and print
FIRST and FOLLOW sets together with the LL(1) prediction table.

Empty table cells are annotated for panic-mode error recovery:
EXT if the terminal may follow the non-terminal, EXP if it is unexpected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], opts)
			if err != nil {
				return err
			}
			renderRules("Productions of "+s.input.Name, s.input)
			renderReport(s.report)
			if s.normalized() {
				renderRules("Normalized productions", s.grammar)
			} else {
				pterm.Info.Println("grammar is LL(1)-shaped, no normalization necessary")
			}
			renderSets(s.analysis)
			renderTable(s.table)
			if htmlFile != "" {
				f, err := os.Create(htmlFile)
				if err != nil {
					return fmt.Errorf("create HTML file: %w", err)
				}
				defer f.Close()
				ll.TableAsHTML(s.table, f)
				pterm.Info.Println("LL(1) table written to " + htmlFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlFile, "html", "", "write the LL(1) table as HTML to a file")

	return cmd
}
