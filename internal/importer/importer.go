// Package importer loads analyzer output files into storage and the
// keyword index.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hyperjump/shirushi/internal/keyword"
	"github.com/hyperjump/shirushi/internal/models"
	"github.com/hyperjump/shirushi/internal/storage"
)

// Importer reads analyzer JSON files and upserts the documents they contain.
type Importer struct {
	storage storage.Storage
	index   *keyword.Index
	logger  *zap.Logger
}

// NewImporter creates an importer. index may be nil to skip keyword indexing.
func NewImporter(store storage.Storage, index *keyword.Index, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		storage: store,
		index:   index,
		logger:  logger,
	}
}

// ImportFile loads one analyzer output file. The file must contain a single
// JSON document with at least an id and an abstract. Notes already attached
// to a previously imported copy of the document are preserved.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid document in %s: %w", path, err)
	}

	if err := imp.storage.UpsertDocument(ctx, &doc); err != nil {
		return nil, fmt.Errorf("failed to store document %s: %w", doc.ID, err)
	}
	if imp.index != nil {
		if err := imp.index.Index(&doc); err != nil {
			// The document is stored; a stale index entry is recoverable
			// on the next import.
			imp.logger.Warn("failed to index document",
				zap.String("id", doc.ID),
				zap.Error(err))
		}
	}

	imp.logger.Info("imported document",
		zap.String("id", doc.ID),
		zap.String("title", doc.Title),
		zap.String("path", path))
	return &doc, nil
}

// ImportFiles imports each path in turn, logging and skipping failures.
// Returns the number of documents imported.
func (imp *Importer) ImportFiles(ctx context.Context, paths []string) int {
	imported := 0
	for _, path := range paths {
		if _, err := imp.ImportFile(ctx, path); err != nil {
			imp.logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		imported++
	}
	return imported
}

// HandleFile adapts ImportFile to the watcher callback signature.
func (imp *Importer) HandleFile(path string) {
	if _, err := imp.ImportFile(context.Background(), path); err != nil {
		imp.logger.Warn("import failed", zap.String("path", path), zap.Error(err))
	}
}

func validate(doc *models.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("missing _id")
	}
	if doc.Abstract == "" {
		return fmt.Errorf("missing original_abstract")
	}
	return nil
}
