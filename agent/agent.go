package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the interactive chat session around a single Analyst.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	Analyst *Analyst
	report  string
}

// New creates a new Agent over the rendered report.
//
// It takes an io.Writer for the agent's output (e.g., os.Stdout),
// an io.Reader for user input (e.g., os.Stdin), and the markdown
// report that seeds the conversation.
func New(w io.Writer, r io.Reader, report string) *Agent {
	return &Agent{
		w:      w,
		r:      bufio.NewReader(r),
		report: report,
	}
}

func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	analyst, err := NewAnalyst(ctx, client)
	if err != nil {
		return err
	}
	a.Analyst = analyst
	return nil
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Analyst == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to tpa trading assist. Type 'bye' to exit.")

	overview, err := a.Analyst.Ask(ctx, "Here is the realized PnL report:\n\n"+a.report+"\n\nGive a two-sentence overview.")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.w, overview)

	// REPL loop
	for {
		// Print the prompt
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		answer, err := a.Analyst.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, answer)
	}
}
