package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/graphene/internal/config"
	"github.com/agenthands/graphene/internal/core"
	"github.com/agenthands/graphene/internal/core/cache"
	"github.com/agenthands/graphene/internal/core/extraction"
	"github.com/agenthands/graphene/internal/core/loader"
	"github.com/agenthands/graphene/internal/driver"
	"github.com/agenthands/graphene/internal/logging"
	"github.com/agenthands/graphene/internal/server"
	"github.com/agenthands/graphene/internal/source"
)

var configPath string

func main() {
	// A missing .env is fine; config and environment cover it.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "graphene",
		Short: "Extract triples from a text corpus and load them into a graph store",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")

	root.AddCommand(runCmd(), serveCmd(), cacheCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func runCmd() *cobra.Command {
	var sourceDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the corpus directory once and print the run summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if sourceDir != "" {
				cfg.Source.Dir = sourceDir
			}
			logger := logging.New(cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := driver.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
			if err != nil {
				return fmt.Errorf("connect to graph store: %w", err)
			}
			defer d.Close(context.Background())
			if err := d.BuildIndices(ctx); err != nil {
				logger.Warn("index creation failed", "error", err)
			}

			c, err := cache.Open(cfg.Cache.Path)
			if err != nil {
				return fmt.Errorf("open extraction cache: %w", err)
			}
			defer c.Close()

			extractor, err := extraction.NewClient(ctx, cfg.Extraction, cfg.LLM)
			if err != nil {
				return err
			}

			docs, err := source.NewDir(cfg.Source.Dir).List(ctx)
			if err != nil {
				return err
			}

			pipeline := core.NewPipeline(c, extractor, loader.NewLoader(d), cfg.Extraction.Workers, logger)
			summary, err := pipeline.Run(ctx, docs)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceDir, "source", "", "corpus directory (overrides config)")
	return cmd
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Log)

			srv, err := server.NewServer(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer srv.Close(context.Background())

			if port == "" {
				port = os.Getenv("PORT")
			}
			if port == "" {
				port = "8080"
			}

			logger.Info("starting server", "port", port)
			return srv.SetupRouter().Run(":" + port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default 8080)")
	return cmd
}

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the extraction cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print the number of cached extractions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, err := cache.Open(cfg.Cache.Path)
			if err != nil {
				return err
			}
			defer c.Close()

			n, err := c.Len(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d cached extraction(s) in %s\n", n, cfg.Cache.Path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached extractions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, err := cache.Open(cfg.Cache.Path)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("cache cleared")
			return nil
		},
	})

	return cmd
}
