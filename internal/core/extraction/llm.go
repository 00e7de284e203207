package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agenthands/graphene/internal/core/model"
	"github.com/agenthands/graphene/internal/llm"
)

const triplePrompt = `Extract subject-relation-object triples from the text below.
Return ONLY a JSON object of the form:
{"triples": [{"subject": "...", "relation": "...", "object": "...", "confidence": 0.0}]}

confidence is your certainty in [0,1] that the triple is stated by the text.
Use short noun phrases for subject and object and the verb phrase as relation.

Text:
%s`

type wireTriples struct {
	Triples []model.Triple `json:"triples"`
}

// LLMExtractor produces the canonical triple schema from a
// provider-selected LLM instead of the OpenIE service.
type LLMExtractor struct {
	LLM llm.LLMClient
}

func NewLLMExtractor(client llm.LLMClient) *LLMExtractor {
	return &LLMExtractor{LLM: client}
}

func (e *LLMExtractor) Extract(ctx context.Context, text string) ([]model.Triple, error) {
	response, err := e.LLM.Generate(ctx, fmt.Sprintf(triplePrompt, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}

	parsed, err := parseTripleJSON(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrService, err)
	}

	var triples []model.Triple
	for _, raw := range parsed.Triples {
		t := model.Triple{
			Subject:    model.Normalize(raw.Subject),
			Relation:   model.Normalize(raw.Relation),
			Object:     model.Normalize(raw.Object),
			Confidence: model.ClampConfidence(raw.Confidence),
		}
		if !t.Complete() {
			continue
		}
		triples = append(triples, t)
	}

	return triples, nil
}

// parseTripleJSON tolerates the usual LLM quirks: surrounding prose or a
// markdown fence around the JSON object.
func parseTripleJSON(response string) (wireTriples, error) {
	var zero wireTriples

	start := -1
	end := -1
	for i, c := range response {
		if c == '{' {
			start = i
			break
		}
	}
	for i := len(response) - 1; i >= 0; i-- {
		if response[i] == '}' {
			end = i + 1
			break
		}
	}
	if start == -1 || end <= start {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result wireTriples
	if err := json.Unmarshal([]byte(response[start:end]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal triples: %v", err)
	}
	return result, nil
}
