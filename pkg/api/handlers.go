package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/ssargent/sus/pkg/catalog"
)

// Server holds the API server state
type Server struct {
	runs    RunStore
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(runs RunStore, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		runs:    runs,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListRuns returns the catalog in creation order. ?limit=n keeps the
// newest n runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	start := time.Now()
	runs, err := s.runs.List()
	s.metrics.RecordCatalogOperation("list", err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("list runs", "error", err)
		sendError(w, fmt.Sprintf("Failed to list runs: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.SetCatalogRuns(len(runs))

	total := len(runs)
	if limit > 0 && limit < total {
		runs = runs[total-limit:]
	}
	if runs == nil {
		runs = []*catalog.Manifest{}
	}
	sendSuccess(w, RunList{Runs: runs, Total: total})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sendSuccess(w, m)
}

// handleGetLSUS streams the LSUS array written by a run. The element width
// is reported in the X-Int-Width header.
func (s *Server) handleGetLSUS(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}

	path, ok := m.Output("lsus")
	if !ok {
		sendError(w, "Run has no LSUS output", http.StatusNotFound)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sendError(w, "LSUS file no longer exists", http.StatusGone)
			return
		}
		s.logger.Error("open lsus", "run", m.ID, "path", path, "error", err)
		sendError(w, "Failed to open LSUS file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		sendError(w, "Failed to stat LSUS file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("X-Int-Width", strconv.Itoa(m.IntWidth))
	http.ServeContent(w, r, filepath.Base(path), info.ModTime(), f)
	s.metrics.RecordLSUSServed(info.Size())
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*catalog.Manifest, bool) {
	id := chi.URLParam(r, "id")

	start := time.Now()
	m, err := s.runs.Get(id)
	s.metrics.RecordCatalogOperation("get", err == nil || errors.Is(err, catalog.ErrRunNotFound), time.Since(start))
	if err != nil {
		if errors.Is(err, catalog.ErrRunNotFound) {
			sendError(w, "Run not found", http.StatusNotFound)
			return nil, false
		}
		s.logger.Error("get run", "run", id, "error", err)
		sendError(w, fmt.Sprintf("Failed to get run: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return m, true
}
