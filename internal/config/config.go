package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type SourceConfig struct {
	Dir string `toml:"dir"`
}

type CacheConfig struct {
	Path string `toml:"path"`
}

type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ExtractionConfig struct {
	Provider       string `toml:"provider"` // openie | openai | claude | gemini | ollama
	OpenIEURL      string `toml:"openie_url"`
	Retries        int    `toml:"retries"`
	RetryBackoffMS int    `toml:"retry_backoff_ms"`
	Workers        int    `toml:"workers"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type Config struct {
	Source     SourceConfig     `toml:"source"`
	Cache      CacheConfig      `toml:"cache"`
	Graph      GraphConfig      `toml:"graph"`
	Extraction ExtractionConfig `toml:"extraction"`
	LLM        LLMConfig        `toml:"llm"`
	Log        LogConfig        `toml:"log"`
}

// Default mirrors the historical deployment: a local OpenIE service, a
// local bolt endpoint, and the ./data corpus directory.
func Default() *Config {
	return &Config{
		Source: SourceConfig{Dir: "data"},
		Cache:  CacheConfig{Path: "data/cache/extractions.db"},
		Graph:  GraphConfig{URI: "bolt://localhost:7687"},
		Extraction: ExtractionConfig{
			Provider:       "openie",
			OpenIEURL:      "http://localhost:8000",
			Retries:        5,
			RetryBackoffMS: 3000,
			Workers:        5,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv layers environment variables over the loaded config so
// deployments can override secrets and endpoints without editing files.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GRAPH_URI"); v != "" {
		c.Graph.URI = v
	}
	if v := os.Getenv("GRAPH_USER"); v != "" {
		c.Graph.User = v
	}
	if v := os.Getenv("GRAPH_PASSWORD"); v != "" {
		c.Graph.Password = v
	}
	if v := os.Getenv("OPENIE_URL"); v != "" {
		c.Extraction.OpenIEURL = v
	}
	if v := os.Getenv("EXTRACTION_PROVIDER"); v != "" {
		c.Extraction.Provider = v
	}
	if v := os.Getenv("EXTRACTION_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Extraction.Workers = n
		}
	}
	if v := os.Getenv("SOURCE_DIR"); v != "" {
		c.Source.Dir = v
	}
	if v := os.Getenv("CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
