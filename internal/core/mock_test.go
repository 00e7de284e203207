package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/agenthands/graphene/internal/core/model"
	"github.com/agenthands/graphene/internal/driver"
)

// fakeGraph mimics the store-side MERGE semantics in memory.
type fakeRelation struct {
	confidence float64
	mentions   int
}

type fakeGraph struct {
	mu        sync.Mutex
	entities  map[string]int
	relations map[string]*fakeRelation
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		entities:  make(map[string]int),
		relations: make(map[string]*fakeRelation),
	}
}

func singleRecord(keys []string, values []any) neo4j.EagerResult {
	return neo4j.EagerResult{
		Keys:    keys,
		Records: []*db.Record{{Keys: keys, Values: values}},
	}
}

func (g *fakeGraph) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch query {
	case driver.MergeEntityQuery:
		name := params["name"].(string)
		g.entities[name]++
		return singleRecord([]string{"created"}, []any{g.entities[name] == 1}), nil

	case driver.MergeRelationQuery:
		subject := params["subject"].(string)
		object := params["object"].(string)
		relation := params["relation"].(string)
		confidence := params["confidence"].(float64)

		if g.entities[subject] == 0 || g.entities[object] == 0 {
			return neo4j.EagerResult{}, nil
		}

		key := subject + "|" + relation + "|" + object
		rel, ok := g.relations[key]
		if !ok {
			g.relations[key] = &fakeRelation{confidence: confidence, mentions: 1}
			return singleRecord([]string{"created", "confidence"}, []any{true, confidence}), nil
		}
		rel.mentions++
		if confidence > rel.confidence {
			rel.confidence = confidence
		}
		return singleRecord([]string{"created", "confidence"}, []any{false, rel.confidence}), nil
	}

	return neo4j.EagerResult{}, fmt.Errorf("unexpected query: %s", query)
}

func (g *fakeGraph) BuildIndices(ctx context.Context) error { return nil }
func (g *fakeGraph) Close(ctx context.Context) error        { return nil }

// mockExtractor serves scripted triples per document text and counts calls.
type mockExtractor struct {
	mu      sync.Mutex
	calls   int
	byText  map[string][]model.Triple
	failFor map[string]bool
}

func newMockExtractor() *mockExtractor {
	return &mockExtractor{
		byText:  make(map[string][]model.Triple),
		failFor: make(map[string]bool),
	}
}

func (m *mockExtractor) Extract(ctx context.Context, text string) ([]model.Triple, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failFor[text] {
		return nil, fmt.Errorf("service unreachable")
	}
	return m.byText[text], nil
}

func (m *mockExtractor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
