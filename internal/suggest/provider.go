package suggest

import "context"

// RawResult is one raw model response with its token accounting.
type RawResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Provider issues one naming request per call. Implementations map transport
// failures onto the coded error set so the retry loop can classify them.
type Provider interface {
	// Model returns the model identifier used for price lookup.
	Model() string
	// Generate sends the prompts and returns the raw payload.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (*RawResult, error)
}
