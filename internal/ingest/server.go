// ABOUTME: HTTP server for live reading ingestion and storage status.
// ABOUTME: POST /health-data accepts Health Auto Export payloads; GET /status reports freshness.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/glucolog/glucolog/internal/analysis"
	"github.com/glucolog/glucolog/internal/models"
	"github.com/glucolog/glucolog/internal/storage"
)

// Server exposes the ingestion HTTP API.
type Server struct {
	repo     storage.Repository
	proc     *Processor
	analyzer *analysis.Analyzer
	addr     string
	log      *slog.Logger
}

// NewServer creates an ingest server listening on addr.
func NewServer(repo storage.Repository, analyzer *analysis.Analyzer, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		repo:     repo,
		proc:     NewProcessor(repo),
		analyzer: analyzer,
		addr:     addr,
		log:      logger,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/health-data", s.handleHealthData)
	r.Get("/status", s.handleStatus)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("ingest server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealthData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	items, err := ParsePayload(body)
	if err != nil {
		s.log.Warn("rejected payload", "error", err)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.proc.Process(items)
	if err != nil {
		s.log.Error("payload processing failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("payload processed",
		"glucose_inserted", result.Glucose.Inserted,
		"sleep_inserted", result.Sleep.Inserted,
		"exercise_inserted", result.Exercise.Inserted,
		"ignored", result.Ignored,
	)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"glucose":  result.Glucose,
		"sleep":    result.Sleep,
		"exercise": result.Exercise,
		"ignored":  result.Ignored,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "storage unreachable: "+err.Error())
		return
	}

	counts := make(map[string]int, len(models.AllDomains))
	for _, domain := range models.AllDomains {
		stats, err := s.repo.Stats(domain)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		counts[string(domain)] = stats.Count
	}

	monitoring, err := s.analyzer.MonitoringStatus(0)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"storage":    "ok",
		"counts":     counts,
		"monitoring": monitoring,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
