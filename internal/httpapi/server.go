package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/healthmon/internal/httpapi/middleware"
	"github.com/hamed0406/healthmon/internal/repo"
	"github.com/hamed0406/healthmon/internal/stats"
)

const maxHistoryLimit = 100

// Server exposes the monitor's state over a read-only HTTP API.
type Server struct {
	Logger  *zap.Logger
	Reports repo.ReportStore
	Stats   *stats.Aggregator
}

func NewServer(l *zap.Logger, reports repo.ReportStore, agg *stats.Aggregator) *Server {
	return &Server{Logger: l, Reports: reports, Stats: agg}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(s.Logger))
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/report", s.handleLatestReport)
	r.Get("/api/reports", s.handleReportHistory)
	r.Get("/api/domains", s.handleDomains)

	return r
}

func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.Reports.Latest(r.Context())
	if err != nil {
		http.Error(w, "report error", http.StatusInternalServerError)
		return
	}
	if rep == nil {
		http.Error(w, "no cycle completed yet", http.StatusNotFound)
		return
	}
	writeJSON(w, rep)
}

func (s *Server) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	reports, err := s.Reports.History(r.Context(), limit)
	if err != nil {
		http.Error(w, "report error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, reports)
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Stats.Snapshot())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
