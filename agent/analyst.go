package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const analystModel = "gemini-2.5-flash"

const analystInstruction = `You are a trading performance analyst.
You are given a realized-PnL report computed with FIFO cost-basis matching
from a user's exchange export. Answer questions about the report: which
trades drove the result, the split between day trades and swings, the
weight of fees and funding. Be factual and concise; never invent numbers
that are not in the report, and do not give investment advice.`

// Analyst is a chat with the model, primed with the analysis report.
type Analyst struct {
	chat *genai.Chat
}

// NewAnalyst opens the chat session.
func NewAnalyst(ctx context.Context, client *genai.Client) (*Analyst, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: analystInstruction}},
		},
	}
	chat, err := client.Chats.Create(ctx, analystModel, config, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create analyst chat: %w", err)
	}
	return &Analyst{chat: chat}, nil
}

// Ask sends one question and returns the analyst's answer.
func (a *Analyst) Ask(ctx context.Context, question string) (string, error) {
	resp, err := a.chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the analyst")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
