package llm

import (
	"context"
)

// LLMClient is the minimal surface the LLM-backed extraction provider
// needs: one prompt in, one completion out.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
