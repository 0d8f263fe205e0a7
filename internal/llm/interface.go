package llm

import "context"

// Request is a single system/user prompt pair sent to a model.
type Request struct {
	System      string
	User        string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Generator produces text for a prompt pair.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
