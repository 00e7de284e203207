package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/graphene/internal/config"
	"github.com/agenthands/graphene/internal/core/model"
	"github.com/agenthands/graphene/internal/llm"
)

// ErrService marks an extraction backend failure after the bounded retry
// budget is exhausted. The orchestrator marks the document failed and
// moves on; one unreachable extraction must not block the corpus.
var ErrService = errors.New("extraction service failure")

// Client turns raw text into canonical triples. Implementations are
// stateless across calls; the only side effect is the outbound request.
type Client interface {
	Extract(ctx context.Context, text string) ([]model.Triple, error)
}

// NewClient selects the extraction backend. The default is the OpenIE HTTP
// service; the LLM providers produce the same triple schema from a
// structured-output prompt.
func NewClient(ctx context.Context, cfg config.ExtractionConfig, llmCfg config.LLMConfig) (Client, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "openie":
		backoff := time.Duration(cfg.RetryBackoffMS) * time.Millisecond
		return NewOpenIEClient(cfg.OpenIEURL, cfg.Retries, backoff), nil

	case "openai", "claude", "gemini", "ollama":
		lcfg := llmCfg
		lcfg.Provider = provider
		llmClient, err := llm.NewClient(ctx, lcfg)
		if err != nil {
			return nil, err
		}
		return NewLLMExtractor(llmClient), nil

	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", cfg.Provider)
	}
}
