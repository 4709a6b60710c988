package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/topdown/ll/notation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newREPLCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl <grammar>",
		Short: "Parse input lines interactively",
		Long: `Start an interactive session for a grammar. Every input line is parsed
and the parser trace is printed. Commands are

    :rules    print the (normalized) productions
    :table    print the LL(1) table
    :reload   re-read the grammar file
    :quit     leave the session (or <ctrl>D)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], opts)
			if err != nil {
				return err
			}
			repl, err := readline.New("topdown> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			pterm.Info.Println("Welcome to TopDown, grammar is " + s.input.Name)
			tracer().Infof("Quit with <ctrl>D")
			intp := &Intp{session: s, repl: repl}
			intp.REPL()
			return nil
		},
	}
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	session *session
	repl    *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a line of input. It returns true if the
// session should end.
func (intp *Intp) Eval(line string) bool {
	s := intp.session
	switch line {
	case ":quit", ":q":
		return true
	case ":rules":
		var b strings.Builder
		notation.Write(&b, s.grammar)
		pterm.Println(b.String())
	case ":table":
		renderTable(s.table)
	case ":reload":
		changed, err := s.reload()
		if err != nil {
			pterm.Error.Println(err.Error())
		} else if changed {
			pterm.Info.Println("grammar reloaded")
			renderReport(s.report)
		} else {
			pterm.Info.Println("grammar unchanged")
		}
	default:
		if strings.HasPrefix(line, ":") {
			pterm.Error.Println("unknown command " + line)
			return false
		}
		tokens, err := tokenizer(line, false)
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		renderTrace(s.parser.Parse(tokens))
	}
	return false
}
