// Package server exposes the analyzer over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/async"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/export"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

// Server bundles the handlers with their dependencies.
type Server struct {
	logger    *slog.Logger
	reg       *registry.Registry
	extractor *extract.Extractor
	reports   repository.LabReportRepository
	results   repository.NutrientResultRepository
	exporter  *export.Service
	queue     async.Queue
}

func NewServer(
	logger *slog.Logger,
	reg *registry.Registry,
	extractor *extract.Extractor,
	reports repository.LabReportRepository,
	results repository.NutrientResultRepository,
	exporter *export.Service,
	queue async.Queue,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:    logger,
		reg:       reg,
		extractor: extractor,
		reports:   reports,
		results:   results,
		exporter:  exporter,
		queue:     queue,
	}
}

// Router builds the complete route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/diagnose", s.handleDiagnose)
		r.Get("/nutrients", s.handleNutrients)
		r.Post("/reports", s.handleCreateReport)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Get("/reports/{id}/export", s.handleExportReport)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
