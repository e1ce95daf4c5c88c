// Package storage defines the persistence interface for documents and notes.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/shirushi/internal/models"
)

// Sentinel errors let callers report not-found outcomes distinctly from
// validation failures.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoteNotFound     = errors.New("note not found")
)

// Storage defines document and note persistence operations. Note mutations
// are single-statement writes keyed by id, so concurrent appends and
// removals on the same document converge without read-modify-write.
type Storage interface {
	// Document operations. Documents arrive from the import pipeline;
	// UpsertDocument refreshes analyzer fields without touching notes.
	UpsertDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context) ([]models.DocumentSummary, error)

	// Note operations. AppendNote assigns the note id and timestamp.
	AppendNote(ctx context.Context, documentID string, input *models.NoteInput) (*models.Note, error)
	RemoveNote(ctx context.Context, documentID, noteID string) error

	// Stats
	CountDocuments(ctx context.Context) (int64, error)
	CountNotes(ctx context.Context) (int64, error)

	Close() error
}
