package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmihiranga/digizigtool/internal/extractor"
	"github.com/vmihiranga/digizigtool/pkg/types"
)

// Extractor is the orchestration surface the HTTP layer depends on.
type Extractor interface {
	Download(ctx context.Context, url string) (*types.DownloadResult, error)
	Stories(ctx context.Context, username string) (*types.StoryResult, error)
	SearchUsers(ctx context.Context, query string) (*types.UserSearchResult, error)
	SearchHashtags(ctx context.Context, query string) (*types.HashtagSearchResult, error)
	Stalk(ctx context.Context, username string) (*types.Profile, error)
}

// Server exposes the JSON extraction API.
type Server struct {
	extractor Extractor
	metrics   *extractor.Metrics
	logger    *slog.Logger
	mux       *http.ServeMux
}

// NewServer wires handlers onto an HTTP mux. metrics may be nil, in which
// case /metrics is not served.
func NewServer(ex Extractor, metrics *extractor.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		extractor: ex,
		metrics:   metrics,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP satisfies the http.Handler interface. Panics anywhere below are
// converted to a generic 500 so the process never answers with a broken or
// internals-leaking body.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("handler panic", "path", r.URL.Path, "panic", rec)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
	}()
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleLanding)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/download", s.handleDownload)
	s.mux.HandleFunc("/api/stories", s.handleStories)
	s.mux.HandleFunc("/api/search/users", s.handleSearchUsers)
	s.mux.HandleFunc("/api/search/hashtags", s.handleSearchHashtags)
	s.mux.HandleFunc("/api/stalk", s.handleStalk)
	if s.metrics != nil {
		s.mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	result, err := s.extractor.Download(r.Context(), req.URL)
	if err != nil {
		s.writeExtractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: result})
}

func (s *Server) handleStories(w http.ResponseWriter, r *http.Request) {
	var req storiesRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	result, err := s.extractor.Stories(r.Context(), req.Username)
	if err != nil {
		s.writeExtractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: result})
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	result, err := s.extractor.SearchUsers(r.Context(), req.Query)
	if err != nil {
		s.writeExtractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: result})
}

func (s *Server) handleSearchHashtags(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	result, err := s.extractor.SearchHashtags(r.Context(), req.Query)
	if err != nil {
		s.writeExtractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: result})
}

func (s *Server) handleStalk(w http.ResponseWriter, r *http.Request) {
	var req stalkRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	result, err := s.extractor.Stalk(r.Context(), req.Username)
	if err != nil {
		s.writeExtractionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: result})
}

// decodePost gates the method and decodes the JSON body, answering the
// request itself when either fails.
func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	return true
}

// writeExtractionError maps orchestrator errors onto the documented status
// codes. Anything unrecognized becomes a generic 500 without leaking
// internals.
func (s *Server) writeExtractionError(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *extractor.InputError
	if errors.As(err, &inputErr) {
		writeError(w, http.StatusBadRequest, inputErr.Msg)
		return
	}
	var notFoundErr *extractor.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeError(w, http.StatusNotFound, notFoundErr.Msg)
		return
	}
	var exhaustedErr *extractor.ExhaustedError
	if errors.As(err, &exhaustedErr) {
		writeError(w, http.StatusInternalServerError, exhaustedErr.Error())
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// The client is gone; the status is best effort.
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.logger.Error("extraction failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
