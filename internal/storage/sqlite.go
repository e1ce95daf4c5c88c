// Package storage provides the SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/shirushi/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if missing.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		title TEXT,
		abstract TEXT NOT NULL,
		analysis TEXT,
		scores TEXT,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL,
		text TEXT NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_notes_document_id ON notes(document_id);
	`
	_, err := db.Exec(schema)
	return err
}

// UpsertDocument inserts a document or refreshes its analyzer fields.
// Existing notes are left untouched so annotations survive re-analysis.
func (s *SQLiteStorage) UpsertDocument(ctx context.Context, doc *models.Document) error {
	analysisJSON, err := json.Marshal(doc.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	scoresJSON, err := json.Marshal(doc.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	var docErr sql.NullString
	if doc.Error != nil {
		docErr = sql.NullString{String: *doc.Error, Valid: true}
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, abstract, analysis, scores, error, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			abstract = excluded.abstract,
			analysis = excluded.analysis,
			scores = excluded.scores,
			error = excluded.error,
			updated_at = excluded.updated_at`,
		doc.ID, doc.Title, doc.Abstract, string(analysisJSON), string(scoresJSON), docErr, now, now,
	)
	return err
}

// GetDocument returns a document with its notes. Notes default to an empty
// slice, never nil. Returns ErrDocumentNotFound for unknown ids.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	var analysisJSON, scoresJSON sql.NullString
	var docErr sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, abstract, analysis, scores, error
		 FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Title, &doc.Abstract, &analysisJSON, &scoresJSON, &docErr)

	if err == sql.ErrNoRows {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	if analysisJSON.Valid && analysisJSON.String != "" {
		if err := json.Unmarshal([]byte(analysisJSON.String), &doc.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
	}
	if scoresJSON.Valid && scoresJSON.String != "" {
		if err := json.Unmarshal([]byte(scoresJSON.String), &doc.Scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}
	}
	if docErr.Valid {
		doc.Error = &docErr.String
	}

	notes, err := s.notesForDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Notes = notes

	return &doc, nil
}

func (s *SQLiteStorage) notesForDocument(ctx context.Context, docID string) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, user_id, user_name, created_at
		 FROM notes WHERE document_id = ? ORDER BY created_at, id`,
		docID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.UserID, &n.UserName, &n.Timestamp); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteDocument removes a document and, via cascade, its notes.
func (s *SQLiteStorage) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// ListDocuments returns id/title summaries ordered by title.
func (s *SQLiteStorage) ListDocuments(ctx context.Context) ([]models.DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title FROM documents ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.DocumentSummary{}
	for rows.Next() {
		var sum models.DocumentSummary
		if err := rows.Scan(&sum.ID, &sum.Title); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// AppendNote creates a note on a document. The note id and timestamp are
// assigned here; input must already be validated.
func (s *SQLiteStorage) AppendNote(ctx context.Context, documentID string, input *models.NoteInput) (*models.Note, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM documents WHERE id = ?`, documentID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		ID:        uuid.NewString(),
		Text:      input.Text,
		UserID:    input.UserID,
		UserName:  input.UserName,
		Timestamp: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO notes (id, document_id, text, user_id, user_name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, documentID, note.Text, note.UserID, note.UserName, note.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// RemoveNote deletes a note by id. Returns ErrDocumentNotFound when the
// document is unknown and ErrNoteNotFound when the note is not on it;
// neither case alters stored state.
func (s *SQLiteStorage) RemoveNote(ctx context.Context, documentID, noteID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM documents WHERE id = ?`, documentID).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND document_id = ?`, noteID, documentID)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// CountDocuments returns the total number of documents.
func (s *SQLiteStorage) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// CountNotes returns the total number of notes.
func (s *SQLiteStorage) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
