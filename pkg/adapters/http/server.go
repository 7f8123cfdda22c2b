// Package http exposes the conversions as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

// DefaultMaxBodySize bounds request bodies unless WithMaxBodySize says otherwise.
const DefaultMaxBodySize = 1 << 20

// Server serves the conversion API on top of a ports.Converter.
type Server struct {
	Engine  ports.Converter
	Catalog ports.Catalog
	Limiter ports.RateLimiter

	logger      *slog.Logger
	metrics     http.Handler
	maxBodySize int64
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog exposes a catalog under /api/catalog.
func WithCatalog(c ports.Catalog) Option {
	return func(s *Server) {
		s.Catalog = c
	}
}

// WithRateLimiter rejects callers over quota with 429.
func WithRateLimiter(l ports.RateLimiter) Option {
	return func(s *Server) {
		s.Limiter = l
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxBodySize bounds request bodies in bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Converter, opts ...Option) http.Handler {
	s := &Server{
		Engine:      engine,
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/convert/{kind}", s.Convert)
		r.Post("/accepts", s.Accepts)
		r.Get("/catalog", s.ListCatalog)
		r.Get("/catalog/{id}", s.GetCatalogEntry)
	})
	return r
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

// rateLimit admits requests per client address. Limiter failures let the
// request through.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		decision, err := s.Limiter.Allow(r.Context(), clientKey(r))
		if err != nil {
			s.logger.Error("Rate limiter failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			seconds := int(decision.ResetAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			http.Error(w, ports.ErrRateLimited.Error(), http.StatusTooManyRequests)
			s.logger.Warn("Request rate limited", "client", clientKey(r), "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Regula API Documentation</title>
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

// conversionRoutes maps the {kind} path segment to a conversion and the schema of its body.
var conversionRoutes = map[string]struct {
	kind   domain.ConversionKind
	schema string
}{
	"regex-to-dfa": {domain.ConversionRegexToDFA, "RegexRequest"},
	"nfa-to-dfa":   {domain.ConversionNFAToDFA, "AutomatonRequest"},
	"dfa-to-regex": {domain.ConversionDFAToRegex, "AutomatonRequest"},
	"nfa-to-regex": {domain.ConversionNFAToRegex, "AutomatonRequest"},
}

// Convert handles POST /api/convert/{kind}.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	route, ok := conversionRoutes[chi.URLParam(r, "kind")]
	if !ok {
		http.Error(w, "Unknown conversion", http.StatusNotFound)
		return
	}

	withSteps := true
	if err := runtime.BindQueryParameter("form", true, false, "steps", r.URL.Query(), &withSteps); err != nil {
		http.Error(w, fmt.Sprintf("Invalid format for parameter steps: %v", err), http.StatusBadRequest)
		return
	}

	var req domain.ConversionRequest
	if err := s.decode(w, r, route.schema, &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.logger.Warn("Convert: Invalid request body", "kind", route.kind, "error", err)
		return
	}
	req.Kind = route.kind

	result, err := s.Engine.Convert(r.Context(), req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Convert error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Convert failed", "kind", route.kind, "error", err)
		return
	}
	if !withSteps {
		result.Steps = []domain.Step{}
	}
	s.writeJSON(w, http.StatusOK, result)
}

// AcceptsRequest is the body of POST /api/accepts.
type AcceptsRequest struct {
	Automaton     domain.Spec `json:"automaton" mapstructure:"automaton"`
	Deterministic bool        `json:"deterministic,omitempty" mapstructure:"deterministic"`
	Input         string      `json:"input,omitempty" mapstructure:"input"`
	Symbols       []string    `json:"symbols,omitempty" mapstructure:"symbols"`
}

// AcceptsResponse is the reply of POST /api/accepts.
type AcceptsResponse struct {
	Success  bool                    `json:"success"`
	Accepted bool                    `json:"accepted"`
	Error    *domain.ConversionError `json:"error,omitempty"`
}

// Accepts handles POST /api/accepts.
func (s *Server) Accepts(w http.ResponseWriter, r *http.Request) {
	var req AcceptsRequest
	if err := s.decode(w, r, "AcceptsRequest", &req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.logger.Warn("Accepts: Invalid request body", "error", err)
		return
	}

	symbols := req.Symbols
	if symbols == nil {
		symbols = domain.Symbols(req.Input)
	}

	accepted, err := s.Engine.Accepts(r.Context(), req.Automaton, req.Deterministic, symbols)
	if err != nil {
		var convErr *domain.ConversionError
		if !errors.As(err, &convErr) {
			http.Error(w, fmt.Sprintf("Accepts error: %v", err), http.StatusInternalServerError)
			s.logger.Error("Accepts failed", "error", err)
			return
		}
		s.writeJSON(w, http.StatusOK, AcceptsResponse{Error: convErr})
		return
	}
	s.writeJSON(w, http.StatusOK, AcceptsResponse{Success: true, Accepted: accepted})
}

// ListCatalog handles GET /api/catalog.
func (s *Server) ListCatalog(w http.ResponseWriter, r *http.Request) {
	if s.Catalog == nil {
		s.writeJSON(w, http.StatusOK, []ports.Entry{})
		return
	}
	entries, err := s.Catalog.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Catalog error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Catalog list failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// GetCatalogEntry handles GET /api/catalog/{id}.
func (s *Server) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.Catalog == nil {
		http.Error(w, ports.ErrEntryNotFound.Error(), http.StatusNotFound)
		return
	}
	entry, err := s.Catalog.Get(r.Context(), id)
	if errors.Is(err, ports.ErrEntryNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Catalog error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Catalog get failed", "id", id, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "regula-http",
		"version":     strings.TrimSpace(regula.Version),
		"api_version": apiVersion,
	})
}

// decode reads a JSON body, validates it against schema and decodes it into dst.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema string, dst any) error {
	var body any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodySize)).Decode(&body); err != nil {
		return err
	}
	if err := validateBody(schema, body); err != nil {
		return err
	}
	return domain.Decode(body, dst)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "error", err)
	}
}
