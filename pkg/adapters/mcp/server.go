// Package mcp exposes the conversions as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource listing the catalog entries.
const CatalogURI = "regula://catalog"

// ConversionResponse aligns with the HTTP ConversionResult schema.
type ConversionResponse struct {
	Success bool                    `json:"success" jsonschema_description:"Whether the conversion succeeded"`
	Value   any                     `json:"value,omitempty" jsonschema_description:"The DFA or the regex produced"`
	Steps   []domain.Step           `json:"steps" jsonschema_description:"Ordered derivation steps"`
	Error   *domain.ConversionError `json:"error,omitempty" jsonschema_description:"Failure kind and message"`
}

// AcceptsResponse reports a membership verdict.
type AcceptsResponse struct {
	Success  bool                    `json:"success" jsonschema_description:"False when the automaton is invalid"`
	Accepted bool                    `json:"accepted" jsonschema_description:"Whether the input is in the language"`
	Error    *domain.ConversionError `json:"error,omitempty"`
}

// ConvertArgs are the arguments of the conversion tools.
type ConvertArgs struct {
	Regex     string `json:"regex,omitempty"`
	Automaton string `json:"automaton,omitempty"`
	Steps     *bool  `json:"steps,omitempty"`
}

// AcceptsArgs are the arguments of the accepts tool.
type AcceptsArgs struct {
	Automaton     string `json:"automaton"`
	Input         string `json:"input"`
	Deterministic bool   `json:"deterministic,omitempty"`
}

// Server wraps a converter and exposes it as an MCP Server.
type Server struct {
	engine    ports.Converter
	catalog   ports.Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog exposes catalog entries as the regula://catalog resource.
func WithCatalog(c ports.Catalog) Option {
	return func(s *Server) {
		s.catalog = c
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Converter, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("regula-mcp", strings.TrimSpace(regula.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	if s.catalog != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const automatonHelp = `JSON object with "states", "transitions", "alphabet", "startState" or "startStates", and "finalStates"`

func (s *Server) registerTools() {
	stepsOpt := mcp.WithBoolean("steps", mcp.Description("Include the derivation steps (default true)"))

	s.mcpServer.AddTool(mcp.NewTool("regex_to_dfa",
		mcp.WithDescription("Build a DFA directly from a regular expression (followpos construction)."),
		mcp.WithString("regex", mcp.Required(), mcp.Description("Regular expression over letters and digits with |, * and parentheses")),
		stepsOpt,
		mcp.WithOutputSchema[ConversionResponse](),
	), mcp.NewStructuredToolHandler(s.converter(domain.ConversionRegexToDFA)))

	for _, tool := range []struct {
		name string
		kind domain.ConversionKind
		desc string
	}{
		{"nfa_to_dfa", domain.ConversionNFAToDFA, "Determinize an NFA by subset construction with ε-closures."},
		{"dfa_to_regex", domain.ConversionDFAToRegex, "Derive a regular expression from a DFA by state elimination."},
		{"nfa_to_regex", domain.ConversionNFAToRegex, "Derive a regular expression from an NFA by state elimination."},
	} {
		s.mcpServer.AddTool(mcp.NewTool(tool.name,
			mcp.WithDescription(tool.desc),
			mcp.WithString("automaton", mcp.Required(), mcp.Description(automatonHelp)),
			stepsOpt,
			mcp.WithOutputSchema[ConversionResponse](),
		), mcp.NewStructuredToolHandler(s.converter(tool.kind)))
	}

	s.mcpServer.AddTool(mcp.NewTool("accepts",
		mcp.WithDescription("Check whether an automaton accepts an input string, one symbol per character."),
		mcp.WithString("automaton", mcp.Required(), mcp.Description(automatonHelp)),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string")),
		mcp.WithBoolean("deterministic", mcp.Description("Read the automaton as a DFA")),
		mcp.WithOutputSchema[AcceptsResponse](),
	), mcp.NewStructuredToolHandler(s.handleAccepts))
}

func (s *Server) converter(kind domain.ConversionKind) func(context.Context, mcp.CallToolRequest, ConvertArgs) (ConversionResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ConvertArgs) (ConversionResponse, error) {
		req := domain.ConversionRequest{Kind: kind, Regex: args.Regex}
		if kind != domain.ConversionRegexToDFA {
			spec, err := parseAutomaton(args.Automaton)
			if err != nil {
				return ConversionResponse{}, err
			}
			req.Automaton = spec
		}

		result, err := s.engine.Convert(ctx, req)
		if err != nil {
			s.logger.Error("MCP Convert failed", "kind", kind, "error", err)
			return ConversionResponse{}, fmt.Errorf("convert failed: %w", err)
		}

		resp := ConversionResponse{
			Success: result.Success,
			Value:   result.Value,
			Steps:   result.Steps,
			Error:   result.Error,
		}
		if args.Steps != nil && !*args.Steps {
			resp.Steps = []domain.Step{}
		}
		return resp, nil
	}
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest, args AcceptsArgs) (AcceptsResponse, error) {
	spec, err := parseAutomaton(args.Automaton)
	if err != nil {
		return AcceptsResponse{}, err
	}

	accepted, err := s.engine.Accepts(ctx, spec, args.Deterministic, domain.Symbols(args.Input))
	if err != nil {
		return AcceptsResponse{Error: domain.AsConversionError(err)}, nil
	}
	return AcceptsResponse{Success: true, Accepted: accepted}, nil
}

func parseAutomaton(raw string) (domain.Spec, error) {
	if raw == "" {
		return domain.Spec{}, fmt.Errorf("automaton is required")
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return domain.Spec{}, fmt.Errorf("automaton is not a JSON object: %w", err)
	}
	return domain.DecodeSpec(data)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Catalog of named regexes and automata",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := s.catalog.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list catalog: %w", err)
		}
		jsonBytes, _ := json.Marshal(entries)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CatalogURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
