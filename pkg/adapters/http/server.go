package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/crema"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes bounds the size of a source document.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Server serves translations over HTTP.
type Server struct {
	Translator ports.Translator
	Logger     *slog.Logger
	Gatherer   prometheus.Gatherer
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithGatherer sets the metrics source for /metrics (default prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the translator.
func NewHandler(translator ports.Translator, opts ...Option) http.Handler {
	s := &Server{
		Translator: translator,
		Gatherer:   prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/v1/translate", s.Translate)
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// Translate handles the POST /v1/translate request.
// The body is the source document; the optional mode query parameter selects
// the transition mode.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var mode domain.TransitionMode
	if q := r.URL.Query().Get("mode"); q != "" {
		m, err := domain.ParseTransitionMode(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		mode = m
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		s.Logger.Warn("Translate: invalid request body", "request_id", reqID, "error", err)
		return
	}

	res, err := s.Translator.Translate(r.Context(), ports.TranslateRequest{Source: body, Mode: mode})
	if err != nil {
		kind := domain.ErrorKind(err)
		status := http.StatusUnprocessableEntity
		if kind == "internal" {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err.Error(), kind)
		s.Logger.Warn("Translate failed", "request_id", reqID, "kind", kind, "error", err)
		return
	}

	s.Logger.Info("Translate", "request_id", reqID, "mode", modeOrDefault(mode), "phases", len(res.Profile.Phases), "warnings", len(res.Warnings))
	writeJSON(w, http.StatusOK, res)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "crema-http",
		"version": strings.TrimSpace(crema.Version),
		"mode":    string(ports.ConfiguredMode(s.Translator)),
	})
}

func modeOrDefault(m domain.TransitionMode) string {
	if m == "" {
		return "default"
	}
	return string(m)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}
