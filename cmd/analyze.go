package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"tradepnl"
	"tradepnl/i18n"
	"tradepnl/renderer"

	"github.com/google/subcommands"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	threshold int
	lang      string
	asJSON    bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "realized PnL analysis of exchange export files" }
func (*analyzeCmd) Usage() string {
	return `tpa analyze [-t <hours>] [-lang <code>] [-json] <file.csv>...

  Computes realized PnL from one or more exchange export files and
  prints a report. All files must belong to the same instrument family
  (spot or contract).
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.threshold, "t", 24, "Holding period threshold in hours separating day trades from swing trades")
	f.StringVar(&c.lang, "lang", i18n.DefaultLanguage, "Locale for trade classification labels (en, ko)")
	f.BoolVar(&c.asJSON, "json", false, "Print the raw analysis as JSON instead of a report")
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one export file is required")
		return subcommands.ExitUsageError
	}

	tables, err := readTables(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading export files: %v\n", err)
		return subcommands.ExitFailure
	}

	analysis, err := tradepnl.Analyze(tables, tradepnl.Options{
		ThresholdHours: c.threshold,
		Language:       c.lang,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing trades: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding analysis: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.Markdown(analysis))
	return subcommands.ExitSuccess
}
