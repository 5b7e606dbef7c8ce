package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"tradepnl"
	"tradepnl/agent"
	"tradepnl/i18n"
	"tradepnl/renderer"

	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct {
	threshold int
	lang      string
}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string {
	return "Start an interactive session with the AI analyst over a report."
}

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `tpa assist [-t <hours>] [-lang <code>] <file.csv>... [-- <question>]

  Analyzes the export files, then starts an interactive session with
  the AI analyst seeded with the resulting report.
`
}

// SetFlags sets the flags for the command.
func (c *AssistCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.threshold, "t", 24, "Holding period threshold in hours separating day trades from swing trades")
	f.StringVar(&c.lang, "lang", i18n.DefaultLanguage, "Locale for trade classification labels (en, ko)")
}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var paths, prompts []string
	rest := f.Args()
	for i, arg := range rest {
		if arg == "--" {
			prompts = append(prompts, strings.Join(rest[i+1:], " "))
			break
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "at least one export file is required")
		return subcommands.ExitUsageError
	}

	tables, err := readTables(paths)
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

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.New(os.Stdout, os.Stdin, renderer.Markdown(analysis))
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
