// Package server provides the HTTP API for Shirushi.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/shirushi/internal/config"
	"github.com/hyperjump/shirushi/internal/keyword"
	"github.com/hyperjump/shirushi/internal/storage"
)

// Server is the HTTP server for the Shirushi API.
type Server struct {
	storage storage.Storage
	index   *keyword.Index
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. index may be nil;
// the search endpoint then reports that search is unavailable.
func NewServer(
	store storage.Storage,
	index *keyword.Index,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		storage: store,
		index:   index,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/api/documents", s.handleListDocuments)
	r.Get("/api/documents/search", s.handleSearch)
	r.Get("/api/document/{id}", s.handleGetDocument)
	r.Get("/api/document/{id}/highlight", s.handleHighlight)
	r.Get("/api/document/{id}/plot", s.handlePlot)
	r.Post("/api/document/{documentId}/notes", s.handleAddNote)
	r.Delete("/api/document/{documentId}/notes/{noteId}", s.handleDeleteNote)
	r.Get("/api/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
