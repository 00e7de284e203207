package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMExtract(t *testing.T) {
	mockJSON := `Here you go:
	{
		"triples": [
			{"subject": "The Agency", "relation": "Announced", "object": " the policy ", "confidence": 0.8},
			{"subject": "press", "relation": "reported", "object": "policy", "confidence": 1.4}
		]
	}`
	mockLLM := &MockLLMClient{Response: mockJSON}

	extractor := NewLLMExtractor(mockLLM)
	triples, err := extractor.Extract(context.Background(), "The agency announced the policy.")

	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.Equal(t, "the agency", triples[0].Subject)
	assert.Equal(t, "announced", triples[0].Relation)
	assert.Equal(t, "the policy", triples[0].Object)
	assert.Equal(t, 0.8, triples[0].Confidence)
	assert.Equal(t, 1.0, triples[1].Confidence)
	require.Len(t, mockLLM.Prompts, 1)
	assert.Contains(t, mockLLM.Prompts[0], "The agency announced the policy.")
}

func TestLLMExtractDiscardsIncompleteTriples(t *testing.T) {
	mockJSON := `{
		"triples": [
			{"subject": "agency", "relation": "", "object": "policy", "confidence": 0.9},
			{"subject": "agency", "relation": "announced", "object": "policy", "confidence": 0.9}
		]
	}`
	mockLLM := &MockLLMClient{Response: mockJSON}

	extractor := NewLLMExtractor(mockLLM)
	triples, err := extractor.Extract(context.Background(), "text")

	require.NoError(t, err)
	require.Len(t, triples, 1)
}

func TestLLMExtractUnparsableResponse(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "I could not find any triples, sorry."}

	extractor := NewLLMExtractor(mockLLM)
	_, err := extractor.Extract(context.Background(), "text")

	assert.ErrorIs(t, err, ErrService)
}

func TestLLMExtractGenerateFailure(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("rate limited")}

	extractor := NewLLMExtractor(mockLLM)
	_, err := extractor.Extract(context.Background(), "text")

	assert.ErrorIs(t, err, ErrService)
}
