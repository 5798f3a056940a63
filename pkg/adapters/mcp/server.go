package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/unabs"
	"github.com/aretw0/unabs/internal/logging"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/generator"
	"github.com/aretw0/unabs/pkg/ports"
	"github.com/aretw0/unabs/pkg/runner"
	"github.com/aretw0/unabs/pkg/term"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// DefaultMaxSteps bounds run_program when the caller gives no limit.
	DefaultMaxSteps = 1_000_000

	libraryURI         = "unabs://library"
	libraryTemplateURI = "unabs://library/{id}"
)

// RunResponse aligns with the HTTP API and provides a unified structure across adapters.
type RunResponse struct {
	Status string `json:"status" jsonschema_description:"halted, or suspended when the step limit was reached"`
	Output string `json:"output" jsonschema_description:"Everything the program printed"`
	Result string `json:"result,omitempty" jsonschema_description:"The final value, when the program halted"`
	Steps  uint64 `json:"steps" jsonschema_description:"Number of machine steps taken"`
}

// ParseResponse is the canonical form of a parsed program.
type ParseResponse struct {
	Term string `json:"term" jsonschema_description:"The program in canonical form, without whitespace or comments"`
	Size int    `json:"size" jsonschema_description:"Number of nodes in the term tree"`
}

// GenerateResponse carries a random program.
type GenerateResponse struct {
	Program string `json:"program" jsonschema_description:"A random, syntactically valid program"`
	Seed    uint64 `json:"seed" jsonschema_description:"The seed that reproduces this program"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Engine
	library   ports.ProgramLoader
	maxSteps  uint64
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLibrary exposes a program library as the unabs://library resource.
func WithLibrary(loader ports.ProgramLoader) Option {
	return func(s *Server) {
		s.library = loader
	}
}

// WithMaxSteps caps run_program.
func WithMaxSteps(n uint64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		maxSteps:  DefaultMaxSteps,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("unabs-mcp", strings.TrimSpace(unabs.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	if s.library != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
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

	// Channel to listen for errors coming from the listener.
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_program",
		mcp.WithDescription("Run an Unlambda program and return its output and final value."),
		mcp.WithString("program", mcp.Required(), mcp.Description("Unlambda source code")),
		mcp.WithNumber("max_steps", mcp.Description("Maximum number of machine steps (optional)")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunProgram))

	parseTool := mcp.NewTool("parse_program",
		mcp.WithDescription("Check an Unlambda program for syntax errors and return its canonical form."),
		mcp.WithString("program", mcp.Required(), mcp.Description("Unlambda source code")),
		mcp.WithOutputSchema[ParseResponse](),
	)
	s.mcpServer.AddTool(parseTool, mcp.NewStructuredToolHandler(s.handleParseProgram))

	generateTool := mcp.NewTool("generate_program",
		mcp.WithDescription("Generate a random, syntactically valid Unlambda program."),
		mcp.WithNumber("seed", mcp.Description("Seed for reproducible output (optional)")),
		mcp.WithNumber("max_length", mcp.Description("Soft limit on program length (optional)")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerateProgram))
}

func (s *Server) handleRunProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	src, err := programArg(args)
	if err != nil {
		return RunResponse{}, err
	}

	budget := s.maxSteps
	if n, ok := uintArg(args, "max_steps"); ok && n > 0 && n < budget {
		budget = n
	}

	sess, err := s.engine.Start(ctx, "mcp", src)
	if err != nil {
		return RunResponse{}, fmt.Errorf("parse failed: %w", err)
	}
	sess, _, err = s.engine.Advance(ctx, sess, budget)
	if err != nil {
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}
	s.logger.Debug("MCP run_program finished", "steps", sess.Steps, "status", sess.Status)

	return RunResponse{
		Status: string(sess.Status),
		Output: sess.Output,
		Result: sess.Result,
		Steps:  sess.Steps,
	}, nil
}

func (s *Server) handleParseProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ParseResponse, error) {
	src, err := programArg(args)
	if err != nil {
		return ParseResponse{}, err
	}
	t, err := term.Parse(src)
	if err != nil {
		return ParseResponse{}, err
	}
	return ParseResponse{Term: t.String(), Size: term.Size(t)}, nil
}

func (s *Server) handleGenerateProgram(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	seed, ok := uintArg(args, "seed")
	if !ok {
		seed = uint64(time.Now().UnixNano())
	}
	var opts []generator.Option
	if n, ok := uintArg(args, "max_length"); ok && n > 0 {
		opts = append(opts, generator.WithMaxLength(int(n)))
	}
	return GenerateResponse{
		Program: generator.Random(generator.NewRand(seed), opts...),
		Seed:    seed,
	}, nil
}

func programArg(args map[string]interface{}) (string, error) {
	src, ok := args["program"].(string)
	if !ok {
		return "", errors.New("missing required argument: program")
	}
	clean, err := runner.SanitizeProgram(src)
	if err != nil {
		return "", fmt.Errorf("program rejected: %w", err)
	}
	return clean, nil
}

// uintArg reads a non-negative integer argument. JSON numbers arrive as float64.
func uintArg(args map[string]interface{}, name string) (uint64, bool) {
	switch v := args[name].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil || n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(libraryURI, "Program Library",
		mcp.WithResourceDescription("IDs of the programs in the library"),
		mcp.WithMIMEType("application/json"),
	), s.readLibrary)

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(libraryTemplateURI, "Library Program",
		mcp.WithTemplateDescription("A program from the library with its metadata"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readLibraryProgram)
}

func (s *Server) readLibrary(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ids, err := s.library.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	jsonBytes, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      libraryURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readLibraryProgram(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id, ok := strings.CutPrefix(uri, libraryURI+"/")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, uri)
	}
	p, err := s.library.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	jsonBytes, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
