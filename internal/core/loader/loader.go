// Package loader writes the aggregate triple set into the graph store as
// Entity nodes and RELATION edges. Every write is a MERGE, so loading is
// additive-only and replaying the same input changes nothing.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/graphene/internal/core/model"
	"github.com/agenthands/graphene/internal/driver"
)

type Loader struct {
	Driver driver.GraphDriver
}

func NewLoader(d driver.GraphDriver) *Loader {
	return &Loader{Driver: d}
}

// Load upserts every triple. A failed triple is recorded in the summary
// and the load continues; a single bad record must not abort the batch.
func (l *Loader) Load(ctx context.Context, triples []model.Triple) model.LoadSummary {
	var summary model.LoadSummary
	now := time.Now().UTC().Format(time.RFC3339)

	for _, t := range triples {
		if err := l.loadTriple(ctx, t, now, &summary); err != nil {
			summary.Failed = append(summary.Failed, model.LoadError{Triple: t, Err: err.Error()})
		}
	}

	return summary
}

func (l *Loader) loadTriple(ctx context.Context, t model.Triple, now string, summary *model.LoadSummary) error {
	for _, name := range []string{t.Subject, t.Object} {
		created, err := l.mergeEntity(ctx, name, now)
		if err != nil {
			return fmt.Errorf("merge entity %q: %w", name, err)
		}
		if created {
			summary.EntitiesCreated++
		} else {
			summary.EntitiesReused++
		}
	}

	created, err := l.mergeRelation(ctx, t, now)
	if err != nil {
		return fmt.Errorf("merge relation %q: %w", t.Relation, err)
	}
	if created {
		summary.RelationshipsCreated++
	} else {
		summary.RelationshipsMerged++
	}

	return nil
}

func (l *Loader) mergeEntity(ctx context.Context, name, now string) (bool, error) {
	result, err := l.Driver.ExecuteQuery(ctx, driver.MergeEntityQuery, map[string]interface{}{
		"name":       name,
		"created_at": now,
	})
	if err != nil {
		return false, err
	}
	return createdFlag(result)
}

func (l *Loader) mergeRelation(ctx context.Context, t model.Triple, now string) (bool, error) {
	result, err := l.Driver.ExecuteQuery(ctx, driver.MergeRelationQuery, map[string]interface{}{
		"subject":    t.Subject,
		"object":     t.Object,
		"relation":   t.Relation,
		"confidence": t.Confidence,
		"created_at": now,
	})
	if err != nil {
		return false, err
	}
	return createdFlag(result)
}

// createdFlag reads the boolean `created` column the merge queries return.
// An empty result means a MATCH clause found nothing, which for the
// relation query is a missing entity endpoint.
func createdFlag(result neo4j.EagerResult) (bool, error) {
	if len(result.Records) == 0 {
		return false, fmt.Errorf("merge returned no rows")
	}
	value, ok := result.Records[0].Get("created")
	if !ok {
		return false, fmt.Errorf("merge result missing created flag")
	}
	created, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected created flag type %T", value)
	}
	return created, nil
}
