package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agenthands/graphene/internal/core/model"
)

// ErrUnavailable means the configured document location cannot be read at
// all. No partial work is possible, so callers abort the run.
var ErrUnavailable = errors.New("document source unavailable")

// Dir enumerates documents from a flat directory: one text file per
// document, the file name as the stable document id.
type Dir struct {
	Path string
}

func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// List reads every regular file in the directory. Subdirectories (the
// cache lives in one) and dotfiles are skipped.
func (d *Dir) List(ctx context.Context) ([]model.Document, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var docs []model.Document
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(d.Path, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, e.Name(), err)
		}
		docs = append(docs, model.Document{ID: e.Name(), Text: string(data)})
	}
	return docs, nil
}
