package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/agenthands/graphene/internal/config"
)

// New builds the process logger. Console output always goes to stderr; if a
// log file is configured it is rotated so long corpus runs cannot fill the
// disk with a single growing file.
func New(cfg config.LogConfig) *log.Logger {
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    20, // MB
			MaxBackups: 3,
		})
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
	})

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
