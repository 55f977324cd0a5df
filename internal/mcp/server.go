package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/logging"
	"portfolio/internal/portfolio"
	"portfolio/internal/schema"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	engine    *portfolio.Engine
	validator *schema.Validator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance answering from engine.
func NewServer(cfg *config.Config, logger *logging.AppLogger, engine *portfolio.Engine) *Server {
	return &Server{
		config:    cfg,
		logger:    logger,
		engine:    engine,
		validator: schema.NewValidator(),
	}
}

// Start initializes the server and serves MCP over the process's stdin and
// stdout until the input closes or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve runs the stdio transport over the given streams.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := s.initializeComponents(); err != nil {
		return err
	}

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog())

	s.logger.Info("Portfolio MCP server running on stdio",
		"name", s.config.Server.Name,
		"version", s.config.Server.Version,
		"items", s.engine.Dataset().Len(),
	)

	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the MCP server
func (s *Server) Stop() error {
	s.logger.Info("Stopping MCP server")
	// The mcp-go server will handle cleanup when context is cancelled
	return nil
}

// initializeComponents builds the mcp-go server and registers the catalog.
// It is safe to call more than once.
func (s *Server) initializeComponents() error {
	if s.mcpServer != nil {
		return nil
	}
	if s.engine == nil {
		return fmt.Errorf("query engine not initialized")
	}

	hooks := &server.Hooks{}
	hooks.AddBeforeCallTool(func(ctx context.Context, id any, req *mcp.CallToolRequest) {
		s.logger.Debug("Tool call received", "id", id, "tool", req.Params.Name, "arguments", req.Params.Arguments)
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		s.logger.Error("MCP request failed", "id", id, "method", method, "error", err)
	})

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(hooks),
		server.WithToolHandlerMiddleware(s.validateArguments),
	}
	if s.config.Server.Instructions != "" {
		opts = append(opts, server.WithInstructions(s.config.Server.Instructions))
	}

	s.mcpServer = server.NewMCPServer(s.config.Server.Name, s.config.Server.Version, opts...)

	for _, tool := range Tools() {
		s.mcpServer.AddTool(tool, s.toolHandler(tool.Name))
	}

	s.logger.Debug("MCP server created", "tools", len(catalog))
	return nil
}

// toolHandler answers one catalog tool from the engine. Failures are returned
// as Go errors so they reach the client as JSON-RPC errors rather than as a
// successful result.
func (s *Server) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := s.engine.Call(name, req.GetArguments())
		if err != nil {
			return nil, toolError(name, err)
		}
		return TextResult(out)
	}
}

// validateArguments rejects calls whose arguments do not match the types
// declared in the tool's input schema.
func (s *Server) validateArguments(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tool, ok := LookupTool(req.Params.Name)
		if !ok {
			return next(ctx, req)
		}
		if err := s.validator.Validate(tool.RawInputSchema, req.GetArguments()); err != nil {
			s.logger.Warn("Rejected tool arguments", "tool", req.Params.Name, "error", err)
			return nil, toolError(req.Params.Name, err)
		}
		return next(ctx, req)
	}
}

// Call runs one tool outside the stdio transport, through the same argument
// validation and dispatch as a protocol request, and returns the result text.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	if err := s.initializeComponents(); err != nil {
		return "", err
	}
	if _, ok := LookupTool(name); !ok {
		return "", toolError(name, &portfolio.UnknownToolError{Name: name})
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := s.validateArguments(s.toolHandler(name))(ctx, req)
	if err != nil {
		return "", err
	}
	if len(result.Content) != 1 {
		return "", fmt.Errorf("tool %s returned %d content blocks", name, len(result.Content))
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		return "", fmt.Errorf("tool %s returned non-text content", name)
	}
	return text.Text, nil
}

// TextResult renders v as the single text content of a tool result,
// indented with two spaces. HTML characters are written as-is.
func TextResult(v any) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(strings.TrimSuffix(buf.String(), "\n")), nil
}

func toolError(name string, err error) error {
	return fmt.Errorf("Error executing tool %s: %w", name, err)
}
