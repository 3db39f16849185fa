package service

import (
	"context"
	"fmt"
	"math"
)

// Completion is one model response plus the token counters the caller needs
// for usage accounting.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
	Model        string
}

// CompletionClientInterface wraps a single text-generation call. Retry and
// skip-and-continue policy belongs to the caller.
type CompletionClientInterface interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (*Completion, error)
}

// CompletionError is any failure of the underlying completion call.
type CompletionError struct {
	Cause error
}

func (e *CompletionError) Error() string { return fmt.Sprintf("completion failed: %v", e.Cause) }

func (e *CompletionError) Unwrap() error { return e.Cause }

// Per-token USD rates. Claude Sonnet 4.6: $3/1M input, $15/1M output.
type pricing struct {
	input  float64
	output float64
}

var modelPricing = map[string]pricing{
	"claude-sonnet-4-6": {input: 0.000003, output: 0.000015},
	"gemini-2.5-flash":  {input: 0.000003, output: 0.000015},
}

var defaultPricing = pricing{input: 0.000003, output: 0.000015}

// Cost computes the USD cost of a completion. Unknown models price at the
// default rate so usage logging never drops rows.
func Cost(model string, inputTokens, outputTokens int) float64 {
	p, ok := modelPricing[model]
	if !ok {
		p = defaultPricing
	}
	return float64(inputTokens)*p.input + float64(outputTokens)*p.output
}

// RoundCost trims a summed cost to 4 decimal places for API responses.
func RoundCost(cost float64) float64 {
	return math.Round(cost*10000) / 10000
}
