// Package core wires the extraction-cache-load pipeline: fingerprint each
// document, serve repeats from the cache, extract the rest, filter the
// aggregate triple set, and load it into the graph store.
package core

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/graphene/internal/core/cache"
	"github.com/agenthands/graphene/internal/core/extraction"
	"github.com/agenthands/graphene/internal/core/filter"
	"github.com/agenthands/graphene/internal/core/loader"
	"github.com/agenthands/graphene/internal/core/model"
)

type Pipeline struct {
	Cache     *cache.Cache
	Extractor extraction.Client
	Loader    *loader.Loader
	Workers   int
	Log       *log.Logger
}

func NewPipeline(c *cache.Cache, e extraction.Client, l *loader.Loader, workers int, logger *log.Logger) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		Cache:     c,
		Extractor: e,
		Loader:    l,
		Workers:   workers,
		Log:       logger,
	}
}

// Run processes the corpus. Extraction failures mark individual documents
// failed and the run continues; cache failures abort the run, since silent
// re-extraction would hide them while burning service calls.
func (p *Pipeline) Run(ctx context.Context, docs []model.Document) (*model.RunSummary, error) {
	summary := &model.RunSummary{
		RunID:     uuid.New().String(),
		Documents: len(docs),
	}
	logger := p.Log.With("run_id", summary.RunID)
	logger.Info("run started", "documents", len(docs), "workers", p.Workers)

	var mu sync.Mutex
	var triples []model.Triple

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			fingerprint := model.Fingerprint(doc.Text)

			entry, err := p.Cache.Get(gctx, fingerprint)
			if err != nil {
				return err
			}
			if entry != nil {
				logger.Debug("cache hit", "doc", doc.ID, "triples", len(entry.Triples))
				mu.Lock()
				summary.CacheHits++
				triples = append(triples, entry.Triples...)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			summary.CacheMisses++
			mu.Unlock()

			extracted, err := p.Extractor.Extract(gctx, doc.Text)
			if err != nil {
				logger.Error("extraction failed", "doc", doc.ID, "error", err)
				mu.Lock()
				summary.Failures = append(summary.Failures, model.DocumentFailure{DocID: doc.ID, Err: err.Error()})
				mu.Unlock()
				return nil
			}

			if err := p.Cache.Put(gctx, model.CacheEntry{
				Fingerprint: fingerprint,
				DocID:       doc.ID,
				Triples:     extracted,
			}); err != nil {
				return err
			}

			logger.Debug("extracted", "doc", doc.ID, "triples", len(extracted))
			mu.Lock()
			triples = append(triples, extracted...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.TriplesExtracted = len(triples)

	triples, summary.DuplicatesRemoved = filter.Duplicates(triples)
	triples, summary.StopWordsRemoved = filter.StopWords(triples)

	summary.Load = p.Loader.Load(ctx, triples)

	logger.Info("run complete",
		"cache_hits", summary.CacheHits,
		"cache_misses", summary.CacheMisses,
		"failed_documents", len(summary.Failures),
		"entities_created", summary.Load.EntitiesCreated,
		"relationships_created", summary.Load.RelationshipsCreated,
		"load_failures", len(summary.Load.Failed),
	)

	return summary, nil
}
