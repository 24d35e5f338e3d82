package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/logging"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/internal/sanitize"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is the version of the HTTP contract.
const APIVersion = "0.1.0"

// maxBodyBytes caps the size of a simulate request.
const maxBodyBytes = 1 << 20

// Engine is the part of pushdown.Engine the HTTP API depends on.
type Engine interface {
	Table() *domain.TransitionTable
	Run(ctx context.Context, commands []domain.Command) (*domain.RunRecord, error)
	Runs(ctx context.Context) ([]string, error)
	LoadRun(ctx context.Context, id string) (*domain.RunRecord, error)
}

var _ Engine = (*pushdown.Engine)(nil)

// Server serves the pushdown HTTP API.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// SimulateRequest is the body of POST /simulate.
// Exactly one of Commands and Example may be set; neither means an empty input.
type SimulateRequest struct {
	Commands []string `json:"commands,omitempty"`
	Example  string   `json:"example,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/table", s.GetTable)
	r.Get("/graph", s.GetGraph)
	r.Get("/examples", s.GetExamples)
	r.Post("/simulate", s.Simulate)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{id}", s.GetRun)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "pushdown-http",
		"version":     pushdown.Version,
		"api_version": APIVersion,
		"table":       s.Engine.Table().Name(),
	})
}

// GetTable handles the GET /table request with the table in its row form.
func (s *Server) GetTable(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Table().Definition())
}

// GetGraph handles GET /graph?format=mermaid|dot&run={id}.
// When run is given, the states that run went through are highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.Overlay
	if id := r.URL.Query().Get("run"); id != "" {
		rec, err := s.Engine.LoadRun(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = graph.OverlayFromResult(&rec.Result)
	}

	var out string
	switch format := r.URL.Query().Get("format"); format {
	case "", "mermaid":
		out = graph.Mermaid(s.Engine.Table(), overlay)
	case "dot":
		out = graph.DOT(s.Engine.Table(), overlay)
	default:
		http.Error(w, fmt.Sprintf("unknown graph format %q", format), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// GetExamples handles the GET /examples request.
func (s *Server) GetExamples(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, presets.Examples())
}

// Simulate handles the POST /simulate request. Rejected runs are still 200;
// the verdict is part of the body.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("simulate: invalid request body", "error", err)
		return
	}

	commands, err := sanitize.Commands(body.Commands)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Example != "" {
		if len(body.Commands) > 0 {
			http.Error(w, "commands and example are mutually exclusive", http.StatusBadRequest)
			return
		}
		ex, err := presets.LookupExample(body.Example)
		if err != nil {
			s.writeError(w, err)
			return
		}
		commands = ex.Commands
	}

	rec, err := s.Engine.Run(r.Context(), commands)
	if rec == nil {
		s.writeError(w, err)
		return
	}
	if err != nil {
		// The run is valid but could not be recorded.
		s.logger.Warn("simulate: run not recorded", "run_id", rec.ID, "error", err)
	}

	if payload, err := json.Marshal(rec); err == nil {
		s.Streams.Broadcast(string(payload))
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Runs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Engine.LoadRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrRunNotFound), errors.Is(err, domain.ErrExampleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConfiguration):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
