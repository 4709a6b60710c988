package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// options are shared by all sub-commands.
type options struct {
	traceLevel      string
	maxRewrites     int
	strict          bool
	rejectConflicts bool
}

func main() {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "topdown",
		Short:         "LL(1) grammar analysis and predictive parsing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initDisplay()
			initTracing(opts.traceLevel)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")
	flags.IntVar(&opts.maxRewrites, "max-rewrites", 0, "maximum number of normalization passes (0 = default)")
	flags.BoolVar(&opts.strict, "strict", false, "capitalized symbols without productions are errors")
	flags.BoolVar(&opts.rejectConflicts, "reject-conflicts", false, "reject grammars whose table has conflicts")

	rootCmd.AddCommand(newAnalyzeCmd(opts))
	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newEBNFCmd(opts))
	rootCmd.AddCommand(newREPLCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// initTracing routes all tracing to the Go standard logger.
func initTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	l := tracing.TraceLevelFromString(level)
	for _, key := range []string{"topdown.ll", "topdown.scanner", "topdown.cli"} {
		tracing.Select(key).SetTraceLevel(l)
	}
	tracer().Infof("Trace level is %s", level)
}
