// Package syncer orchestrates a full Readwise export into outline files.
package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"readwise2org/internal/logger"
	"readwise2org/internal/models"
	"readwise2org/internal/org"
	"readwise2org/internal/readwise"
	"readwise2org/internal/secrets"
)

// Exporter streams export pages to a handler.
type Exporter interface {
	Export(ctx context.Context, token string, updatedAfter string, handle readwise.PageHandler) error
}

// Reindexer refreshes the editor's knowledge-base index after a sync.
type Reindexer interface {
	Reindex(ctx context.Context) error
}

// Mirror receives each document after its outline file has been written.
type Mirror interface {
	MirrorDocument(ctx context.Context, book *models.Book) error
}

// Syncer drives one full export run: resolve the token, fetch every page,
// route each document into its category file, then trigger a reindex.
type Syncer struct {
	exporter  Exporter
	tokens    secrets.TokenSource
	reindexer Reindexer
	mirror    Mirror
	outputDir string
}

// New creates a Syncer. reindexer and mirror may be nil.
func New(exporter Exporter, tokens secrets.TokenSource, reindexer Reindexer, mirror Mirror, outputDir string) *Syncer {
	return &Syncer{
		exporter:  exporter,
		tokens:    tokens,
		reindexer: reindexer,
		mirror:    mirror,
		outputDir: outputDir,
	}
}

// Sync performs a full export. The reindexer only runs after every page
// has been fetched and written; a failed fetch aborts the run before it.
func (s *Syncer) Sync(ctx context.Context) error {
	if err := s.ensureOutputDir(); err != nil {
		return err
	}

	// Resolved once per sync and reused for every page. A missing
	// credential aborts before any request is issued.
	token, err := s.tokens.Token()
	if err != nil {
		logger.Error("Failed to resolve API token", err)
		return fmt.Errorf("resolve token: %w", err)
	}

	documents := 0
	err = s.exporter.Export(ctx, token, "", func(results []models.Book) error {
		if err := s.processResults(ctx, results); err != nil {
			return err
		}
		documents += len(results)
		return nil
	})
	if err != nil {
		logger.Error("Export failed, skipping reindex", err)
		return fmt.Errorf("export: %w", err)
	}

	if s.reindexer != nil {
		if err := s.reindexer.Reindex(ctx); err != nil {
			logger.Error("Reindex failed", err)
			return fmt.Errorf("reindex: %w", err)
		}
	}

	logger.Info("Sync completed", map[string]interface{}{
		"documents":  documents,
		"output_dir": s.outputDir,
	})

	return nil
}

// processResults routes each document of one page, in input order. There
// is no deduplication across pages; a repeated document id simply
// overwrites the earlier file.
func (s *Syncer) processResults(ctx context.Context, results []models.Book) error {
	for i := range results {
		book := &results[i]

		dir := filepath.Join(s.outputDir, book.Category)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create category directory %s: %w", dir, err)
		}

		path := filepath.Join(dir, org.Filename(book.Title))
		if err := org.WriteDocument(path, book); err != nil {
			return err
		}

		if s.mirror != nil {
			// Mirror failures are logged per document and do not abort
			// the sync.
			if err := s.mirror.MirrorDocument(ctx, book); err != nil {
				logger.Error("Failed to mirror document", err, map[string]interface{}{
					"title": book.Title,
				})
			}
		}
	}
	return nil
}

func (s *Syncer) ensureOutputDir() error {
	if _, err := os.Stat(s.outputDir); err == nil {
		logger.Debug("Output directory already exists", map[string]interface{}{
			"path": s.outputDir,
		})
		return nil
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	logger.Info("Created output directory", map[string]interface{}{
		"path": s.outputDir,
	})
	return nil
}
