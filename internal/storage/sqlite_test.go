package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hyperjump/shirushi/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "db.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testDoc(id string) *models.Document {
	return &models.Document{
		ID:       id,
		Title:    "Q3 earnings call",
		Abstract: "Margins contracted while growth accelerated.",
		Analysis: models.Analysis{
			Sentiment: map[string]map[string]float64{
				"Concern about margin": {"Margins contracted": -3},
			},
			Factual: map[string]map[string]float64{
				"Reported figures": {"growth accelerated": 2},
			},
		},
		Scores: models.Scores{Sentiment: [2]float64{1.5, -2}, Factual: [2]float64{3, 1}},
	}
}

func TestUpsertAndGetDocument(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.UpsertDocument(ctx, testDoc("d1")); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetDocument(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Q3 earnings call" {
		t.Errorf("title: got %q", got.Title)
	}
	if got.Analysis.Sentiment["Concern about margin"]["Margins contracted"] != -3 {
		t.Errorf("analysis round trip failed: %+v", got.Analysis)
	}
	if got.Scores.Factual != [2]float64{3, 1} {
		t.Errorf("scores round trip failed: %+v", got.Scores)
	}
	if got.Notes == nil || len(got.Notes) != 0 {
		t.Errorf("notes should default to empty slice, got %#v", got.Notes)
	}
	if got.Error != nil {
		t.Errorf("error should be nil, got %v", *got.Error)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	store := newTestStorage(t)
	_, err := store.GetDocument(context.Background(), "missing")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("got %v, want ErrDocumentNotFound", err)
	}
}

func TestUpsertDocument_PreservesNotes(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.UpsertDocument(ctx, testDoc("d1")); err != nil {
		t.Fatal(err)
	}
	note, err := store.AppendNote(ctx, "d1", &models.NoteInput{Text: "check this", UserID: "u1", UserName: "Alex"})
	if err != nil {
		t.Fatal(err)
	}

	// Re-import with changed analyzer output.
	doc := testDoc("d1")
	doc.Title = "Q3 earnings call (revised)"
	if err := store.UpsertDocument(ctx, doc); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetDocument(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Q3 earnings call (revised)" {
		t.Errorf("title not refreshed: %q", got.Title)
	}
	if len(got.Notes) != 1 || got.Notes[0].ID != note.ID {
		t.Errorf("notes should survive re-import, got %+v", got.Notes)
	}
}

func TestNoteLifecycle(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.UpsertDocument(ctx, testDoc("d1")); err != nil {
		t.Fatal(err)
	}

	note, err := store.AppendNote(ctx, "d1", &models.NoteInput{Text: "interesting", UserID: "u1", UserName: "Alex"})
	if err != nil {
		t.Fatal(err)
	}
	if note.ID == "" {
		t.Error("note id should be assigned")
	}
	if note.Timestamp.IsZero() {
		t.Error("note timestamp should be assigned")
	}

	got, err := store.GetDocument(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Notes) != 1 || got.Notes[0].Text != "interesting" || got.Notes[0].UserName != "Alex" {
		t.Fatalf("notes after append: %+v", got.Notes)
	}

	if err := store.RemoveNote(ctx, "d1", note.ID); err != nil {
		t.Fatal(err)
	}
	got, err = store.GetDocument(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Notes) != 0 {
		t.Errorf("notes after remove: %+v", got.Notes)
	}
}

func TestAppendNote_DocumentNotFound(t *testing.T) {
	store := newTestStorage(t)
	_, err := store.AppendNote(context.Background(), "missing", &models.NoteInput{Text: "x", UserID: "u1", UserName: "A"})
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("got %v, want ErrDocumentNotFound", err)
	}
}

func TestRemoveNote_NotFound(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.UpsertDocument(ctx, testDoc("d1")); err != nil {
		t.Fatal(err)
	}
	keep, err := store.AppendNote(ctx, "d1", &models.NoteInput{Text: "keep me", UserID: "u1", UserName: "A"})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.RemoveNote(ctx, "d1", "no-such-note"); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("unknown note: got %v, want ErrNoteNotFound", err)
	}
	if err := store.RemoveNote(ctx, "missing", keep.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("unknown document: got %v, want ErrDocumentNotFound", err)
	}

	// Existing notes are untouched by failed removals.
	got, err := store.GetDocument(ctx, "d1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Notes) != 1 || got.Notes[0].ID != keep.ID {
		t.Errorf("notes altered by failed remove: %+v", got.Notes)
	}
}

func TestDeleteDocument_CascadesNotes(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	if err := store.UpsertDocument(ctx, testDoc("d1")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AppendNote(ctx, "d1", &models.NoteInput{Text: "x", UserID: "u1", UserName: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteDocument(ctx, "d1"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteDocument(ctx, "d1"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("second delete: got %v, want ErrDocumentNotFound", err)
	}
	n, err := store.CountNotes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("notes after cascade: got %d, want 0", n)
	}
}

func TestListDocuments(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	b := testDoc("d2")
	b.Title = "B title"
	a := testDoc("d1")
	a.Title = "A title"
	for _, doc := range []*models.Document{b, a} {
		if err := store.UpsertDocument(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ListDocuments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d summaries", len(got))
	}
	if got[0].Title != "A title" || got[1].Title != "B title" {
		t.Errorf("order: %+v", got)
	}

	count, err := store.CountDocuments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count: got %d, want 2", count)
	}
}
