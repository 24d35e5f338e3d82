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

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/logging"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/internal/sanitize"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/presets"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TableURI is the resource under which the bound table is published.
const TableURI = "pushdown://table"

// SimulateResponse is the structured result of the simulate tool.
type SimulateResponse struct {
	RunID   string               `json:"run_id" jsonschema_description:"Identifier of the recorded run"`
	Verdict domain.Verdict       `json:"verdict" jsonschema_description:"Accepted or rejected, with the reason"`
	Message string               `json:"message" jsonschema_description:"Human-readable verdict"`
	Trace   domain.Trace         `json:"trace" jsonschema_description:"One entry per processed command"`
	Final   domain.Configuration `json:"final" jsonschema_description:"State and stack when the run ended"`
}

// Engine is the part of pushdown.Engine the MCP server depends on.
type Engine interface {
	Table() *domain.TransitionTable
	Run(ctx context.Context, commands []domain.Command) (*domain.RunRecord, error)
}

var _ Engine = (*pushdown.Engine)(nil)

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("pushdown-mcp", pushdown.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
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

		s.logger.Info("Shutting down MCP server")
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
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run a sequence of commands through the pushdown automaton and return the trace and verdict."),
		mcp.WithString("commands", mcp.Description("Commands separated by spaces or commas, e.g. \"order pizza done pay\"")),
		mcp.WithString("example", mcp.Description("Name of a built-in example to run instead of commands")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: get_table
	s.mcpServer.AddTool(mcp.NewTool("get_table",
		mcp.WithDescription("Get the transition table: states, alphabets and rules."),
	), s.handleGetTable)

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the state diagram of the table."),
		mcp.WithString("format", mcp.Description("mermaid (default) or dot")),
	), s.handleGetGraph)

	// TOOL: list_examples
	s.mcpServer.AddTool(mcp.NewTool("list_examples",
		mcp.WithDescription("List the built-in example command sequences and their expected outcome."),
	), s.handleListExamples)
}

// ParseCommands splits a free-form command string on spaces and commas and
// sanitizes each command.
func ParseCommands(s string) ([]domain.Command, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return sanitize.Commands(fields)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	raw, _ := args["commands"].(string)
	example, _ := args["example"].(string)

	commands, err := ParseCommands(raw)
	if err != nil {
		return SimulateResponse{}, err
	}
	if example != "" {
		if len(commands) > 0 {
			return SimulateResponse{}, errors.New("commands and example are mutually exclusive")
		}
		ex, err := presets.LookupExample(example)
		if err != nil {
			return SimulateResponse{}, err
		}
		commands = ex.Commands
	}

	rec, err := s.engine.Run(ctx, commands)
	if rec == nil {
		return SimulateResponse{}, fmt.Errorf("simulation failed: %w", err)
	}
	if err != nil {
		s.logger.Warn("MCP simulate: run not recorded", "run_id", rec.ID, "error", err)
	}

	return SimulateResponse{
		RunID:   rec.ID,
		Verdict: rec.Result.Verdict,
		Message: rec.Result.Verdict.String(),
		Trace:   rec.Result.Trace,
		Final:   rec.Result.Final,
	}, nil
}

func (s *Server) handleGetTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.engine.Table().Definition())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode table: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch format := request.GetString("format", "mermaid"); format {
	case "", "mermaid":
		return mcp.NewToolResultText(graph.Mermaid(s.engine.Table(), nil)), nil
	case "dot":
		return mcp.NewToolResultText(graph.DOT(s.engine.Table(), nil)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown graph format %q", format)), nil
	}
}

func (s *Server) handleListExamples(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(presets.Examples())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode examples: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TableURI, "Transition Table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Table().Definition())
		if err != nil {
			return nil, fmt.Errorf("failed to encode table: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      TableURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
