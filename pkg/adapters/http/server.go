// Package http exposes a debug surface for animation groups: live group
// views, persisted snapshots, and Prometheus metrics.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/driftkit/sway/internal/logging"
	"github.com/driftkit/sway/pkg/domain"
	"github.com/driftkit/sway/pkg/ports"
)

// Server aggregates live groups and an optional snapshot store behind an
// HTTP handler.
type Server struct {
	mu   sync.RWMutex
	live map[string]ports.Snapshotter

	store    ports.SnapshotStore
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore exposes persisted snapshots under /v1/snapshots.
func WithStore(store ports.SnapshotStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithMetrics exposes the gatherer under /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server.
func New(opts ...Option) *Server {
	s := &Server{
		live:   make(map[string]ports.Snapshotter),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register makes a live group inspectable under /v1/groups/{groupID}.
func (s *Server) Register(groupID string, src ports.Snapshotter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[groupID] = src
}

// Deregister removes a live group.
func (s *Server) Deregister(groupID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, groupID)
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/groups", s.handleListGroups)
	r.Get("/v1/groups/{groupID}", s.handleGroup)
	r.Get("/v1/snapshots", s.handleListSnapshots)
	r.Get("/v1/snapshots/{groupID}", s.handleSnapshot)

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.live))
	for id := range s.live {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	s.writeJSON(w, http.StatusOK, map[string]any{"groups": ids})
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	s.mu.RLock()
	src, ok := s.live[groupID]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "unknown group", http.StatusNotFound)
		return
	}

	s.writeJSON(w, http.StatusOK, src.Snapshot())
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no snapshot store configured", http.StatusNotImplemented)
		return
	}

	ids, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("snapshot list failed", "err", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	sort.Strings(ids)
	s.writeJSON(w, http.StatusOK, map[string]any{"groups": ids})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no snapshot store configured", http.StatusNotImplemented)
		return
	}
	groupID := chi.URLParam(r, "groupID")

	snap, err := s.store.Load(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			http.Error(w, "snapshot not found", http.StatusNotFound)
			return
		}
		s.logger.Error("snapshot load failed", "group_id", groupID, "err", err)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
