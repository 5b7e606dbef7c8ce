// Package cmd implements the CLI application to analyze realized PnL.
package cmd

import (
	"fmt"
	"os"

	"tradepnl"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&analyzeCmd{},
	&serveCmd{},
	&AssistCmd{},
}

// readTables loads the exchange export files given on the command line.
func readTables(paths []string) ([]*tradepnl.Table, error) {
	var tables []*tradepnl.Table
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("cannot open %q: %w", p, err)
		}
		t, err := tradepnl.ReadTable(p, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", p, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
