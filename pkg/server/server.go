// Package server provides the MCP server exposing the Google Maps tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dendik/mcp-google-map/pkg/config"
	"github.com/dendik/mcp-google-map/pkg/tools"
	"github.com/dendik/mcp-google-map/pkg/tools/prompts"
	"github.com/dendik/mcp-google-map/pkg/version"
)

// ServerName is the name of the MCP server
const ServerName = version.Product

const shutdownTimeout = 5 * time.Second

// Server encapsulates the MCP server with the Google Maps tools.
type Server struct {
	srv    *server.MCPServer
	logger *slog.Logger
}

// NewServer creates an MCP server with all tools and prompts registered.
func NewServer(registry *tools.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing Google Maps MCP server",
		"name", ServerName,
		"version", version.BuildVersion)

	srv := server.NewMCPServer(
		ServerName,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	registry.RegisterTools(srv)
	prompts.RegisterMapsPrompts(srv)

	return &Server{srv: srv, logger: logger}
}

// Run serves the configured transport until ctx is cancelled.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	switch cfg.Transport {
	case config.TransportStdio, "":
		return s.Serve(ctx, os.Stdin, os.Stdout)
	case config.TransportSSE:
		return s.ServeSSE(ctx, cfg.Addr, cfg.BaseURL)
	default:
		return fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// Serve speaks newline-delimited JSON-RPC over in and out. It returns nil
// when ctx is cancelled or in is exhausted.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.srv)
	stdio.SetErrorLogger(log.New(logWriter{s.logger}, "", 0))

	s.logger.Info("serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	if baseURL == "" {
		baseURL = "http://localhost" + addr
	}
	sse := server.NewSSEServer(s.srv, server.WithBaseURL(baseURL))

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving MCP over SSE", "addr", addr, "base_url", baseURL)
		errCh <- sse.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown sse server: %w", err)
	}
	return nil
}

// logWriter routes mcp-go's error logger into slog.
type logWriter struct {
	logger *slog.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.logger.Error("mcp transport error", "message", string(p))
	return len(p), nil
}
