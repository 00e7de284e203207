// Package server exposes the pipeline over HTTP: trigger runs, extract
// ad-hoc text, and manage the extraction cache.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/agenthands/graphene/internal/config"
	"github.com/agenthands/graphene/internal/core"
	"github.com/agenthands/graphene/internal/core/cache"
	"github.com/agenthands/graphene/internal/core/extraction"
	"github.com/agenthands/graphene/internal/core/loader"
	"github.com/agenthands/graphene/internal/driver"
	"github.com/agenthands/graphene/internal/source"
)

type Server struct {
	Pipeline *core.Pipeline
	Source   *source.Dir
	Cache    *cache.Cache
	Log      *log.Logger

	graph driver.GraphDriver
}

// NewServer wires the full pipeline from config: graph driver, extraction
// cache, extraction client, loader.
func NewServer(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	d, err := driver.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
	if err != nil {
		return nil, fmt.Errorf("connect to graph store: %w", err)
	}
	if err := d.BuildIndices(ctx); err != nil {
		logger.Warn("index creation failed", "error", err)
	}

	c, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		d.Close(ctx)
		return nil, fmt.Errorf("open extraction cache: %w", err)
	}

	extractor, err := extraction.NewClient(ctx, cfg.Extraction, cfg.LLM)
	if err != nil {
		c.Close()
		d.Close(ctx)
		return nil, fmt.Errorf("init extraction client: %w", err)
	}

	return &Server{
		Pipeline: core.NewPipeline(c, extractor, loader.NewLoader(d), cfg.Extraction.Workers, logger),
		Source:   source.NewDir(cfg.Source.Dir),
		Cache:    c,
		Log:      logger,
		graph:    d,
	}, nil
}

func (s *Server) Close(ctx context.Context) error {
	var errs []error
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.graph != nil {
		if err := s.graph.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close: %v", errs)
	}
	return nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Healthz)
	r.POST("/runs", s.RunExtraction)
	r.POST("/extract", s.Extract)
	r.GET("/cache", s.CacheStats)
	r.DELETE("/cache", s.ClearCache)

	return r
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunExtraction processes the configured corpus directory and returns the
// run summary. Per-document failures are reported in the summary, not as
// an HTTP error.
func (s *Server) RunExtraction(c *gin.Context) {
	docs, err := s.Source.List(c.Request.Context())
	if err != nil {
		s.Log.Error("listing documents failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	summary, err := s.Pipeline.Run(c.Request.Context(), docs)
	if err != nil {
		s.Log.Error("run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "run failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

type ExtractRequest struct {
	Text string `json:"text"`
}

// Extract runs the extraction client over a single text without touching
// the cache or the graph store.
func (s *Server) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	triples, err := s.Pipeline.Extractor.Extract(c.Request.Context(), req.Text)
	if err != nil {
		s.Log.Error("extraction failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "extraction failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"triples": triples})
}

func (s *Server) CacheStats(c *gin.Context) {
	n, err := s.Cache.Len(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": n})
}

func (s *Server) ClearCache(c *gin.Context) {
	if err := s.Cache.Clear(c.Request.Context()); err != nil {
		s.Log.Error("cache clear failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache clear failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
