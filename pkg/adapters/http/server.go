package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/internal/logging"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/observability"
	"github.com/aretw0/unabs/pkg/ports"
	"github.com/aretw0/unabs/pkg/session"
	"github.com/aretw0/unabs/pkg/term"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go openapi.yaml

// DefaultMaxBudget caps the steps a single request may run.
const DefaultMaxBudget = 10_000_000

// Server serves the HTTP API over an engine and a session manager.
type Server struct {
	Engine   ports.Engine
	Sessions *session.Manager
	Library  ports.ProgramLoader
	Streams  *StreamManager

	maxBudget uint64
	metrics   http.Handler
	recorder  *observability.Recorder
	logger    *slog.Logger
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLibrary exposes a program library under /library.
func WithLibrary(loader ports.ProgramLoader) Option {
	return func(s *Server) {
		s.Library = loader
	}
}

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithRecorder serves the events kept by rec on /sessions/{id}/history.
// The engine must feed rec through its hooks.
func WithRecorder(rec *observability.Recorder) Option {
	return func(s *Server) {
		s.recorder = rec
	}
}

// WithMaxBudget caps the steps a single request may run.
func WithMaxBudget(n uint64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBudget = n
		}
	}
}

// WithLogger sets a custom structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server.
func NewServer(engine ports.Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Engine:    engine,
		Sessions:  sessions,
		maxBudget: DefaultMaxBudget,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Engine, sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(engine, sessions, opts...).Routes()
}

// Routes builds the router: the generated API routes plus the spec, the
// Swagger UI and, when configured, /metrics.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", s.GetSpec)
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	return HandlerWithOptions(s, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>unabs API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "unabs-http",
		"version":     strings.TrimSpace(unabs.Version),
		"api_version": apiVersion,
	})
}

// GetSpec handles the GET /openapi.yaml request. The embedded document is
// JSON, which is also valid YAML.
func (s *Server) GetSpec(w http.ResponseWriter, r *http.Request) {
	spec, err := rawSpec()
	if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load spec")
		return
	}
	w.Header().Set("Content-Type", "text/yaml")
	w.Write(spec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; a failed encode only means the client left.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Error{Error: msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var syntaxErr *term.SyntaxError
	switch {
	case errors.As(err, &syntaxErr),
		errors.Is(err, domain.ErrInvalidSessionID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrProgramNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionHalted),
		errors.Is(err, domain.ErrSessionFailed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// budget clamps a requested step budget to the server limit; nil or zero
// means the limit.
func (s *Server) budget(requested *int64) (uint64, error) {
	if requested == nil || *requested == 0 {
		return s.maxBudget, nil
	}
	if *requested < 0 {
		return 0, fmt.Errorf("budget must not be negative, got %d", *requested)
	}
	return min(uint64(*requested), s.maxBudget), nil
}
