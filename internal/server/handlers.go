package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/shirushi/internal/highlight"
	"github.com/hyperjump/shirushi/internal/models"
	"github.com/hyperjump/shirushi/internal/phrases"
	"github.com/hyperjump/shirushi/internal/plot"
	"github.com/hyperjump/shirushi/internal/storage"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.storage.ListDocuments(r.Context())
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summaries == nil {
		summaries = []models.DocumentSummary{}
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		s.respondError(w, http.StatusNotImplemented, "search not enabled")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := s.config.Search.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > s.config.Search.MaxLimit {
		limit = s.config.Search.MaxLimit
	}
	s.logger.Debug("search request", zap.String("q", q), zap.Int("limit", limit))
	results, err := s.index.Search(q, limit, s.config.Search.TitleBoost)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.storage.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logger.Error("get document failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

// highlightResponse carries the annotated segment sequence for one document
// at the requested slider positions.
type highlightResponse struct {
	DocumentID        string              `json:"documentId"`
	SentimentFocus    float64             `json:"sentimentFocus"`
	MarginGrowthFocus float64             `json:"marginGrowthFocus"`
	Segments          []highlight.Segment `json:"segments"`
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sentimentFocus, ok := s.sliderParam(w, r, "sentiment_focus", s.config.Viewer.SentimentFocus)
	if !ok {
		return
	}
	marginGrowthFocus, ok := s.sliderParam(w, r, "margin_growth_focus", s.config.Viewer.MarginGrowthFocus)
	if !ok {
		return
	}

	doc, err := s.storage.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logger.Error("get document failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	scored := phrases.Extract(doc, sentimentFocus, marginGrowthFocus)
	segments := highlight.Highlight(doc.Abstract, scored)
	s.respondJSON(w, http.StatusOK, highlightResponse{
		DocumentID:        doc.ID,
		SentimentFocus:    sentimentFocus,
		MarginGrowthFocus: marginGrowthFocus,
		Segments:          segments,
	})
}

// sliderParam reads a 0..100 slider value from the query string, falling
// back to the configured default. Writes a 400 and returns ok=false on a
// non-numeric value.
func (s *Server) sliderParam(w http.ResponseWriter, r *http.Request, name string, def float64) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, name+" must be a number")
		return 0, false
	}
	return v, true
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.storage.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logger.Error("get document failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, plot.Project(doc.Scores, s.config.Viewer.AxisLimit))
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentId")
	var input models.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := input.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	note, err := s.storage.AppendNote(r.Context(), documentID, &input)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			s.respondError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logger.Error("add note failed", zap.String("document_id", documentID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("note added",
		zap.String("document_id", documentID),
		zap.String("note_id", note.ID))
	s.respondJSON(w, http.StatusCreated, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentId")
	noteID := chi.URLParam(r, "noteId")
	if _, err := uuid.Parse(noteID); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid note id")
		return
	}
	if err := s.storage.RemoveNote(r.Context(), documentID, noteID); err != nil {
		switch {
		case errors.Is(err, storage.ErrDocumentNotFound):
			s.respondError(w, http.StatusNotFound, "document not found")
		case errors.Is(err, storage.ErrNoteNotFound):
			s.respondError(w, http.StatusNotFound, "note not found")
		default:
			s.logger.Error("delete note failed",
				zap.String("document_id", documentID),
				zap.String("note_id", noteID),
				zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docCount, err := s.storage.CountDocuments(ctx)
	if err != nil {
		s.logger.Error("status: count documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	noteCount, err := s.storage.CountNotes(ctx)
	if err != nil {
		s.logger.Error("status: count notes failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"documents": docCount,
		"notes":     noteCount,
	}
	if s.index != nil {
		if n, err := s.index.DocCount(); err == nil {
			resp["indexed_documents"] = n
		}
	}
	if diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.IndexPath,
	); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = map[string]interface{}{
		"sentiment_focus":     s.config.Viewer.SentimentFocus,
		"margin_growth_focus": s.config.Viewer.MarginGrowthFocus,
		"axis_limit":          s.config.Viewer.AxisLimit,
		"database_path":       s.config.Storage.DatabasePath,
		"index_path":          s.config.Storage.IndexPath,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
