// Package server assembles the MCP server over the configured transport.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ocictl/internal/config"
	"ocictl/internal/tools"
	"ocictl/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

const logSubsystem = "Server"

// Server hosts the OCI tools over stdio or SSE.
type Server struct {
	config config.ServerConfig
	mcp    *server.MCPServer
}

// New creates the MCP server and registers every tool on it.
func New(version string, cfg config.ServerConfig, ociTools *tools.OCITools) *Server {
	mcpServer := server.NewMCPServer(
		"ocictl",
		version,
		server.WithToolCapabilities(true),
	)
	ociTools.Register(mcpServer)

	return &Server{
		config: cfg,
		mcp:    mcpServer,
	}
}

// Serve runs the server on the configured transport until the context is
// cancelled (SSE) or the client closes the stream (stdio).
func (s *Server) Serve(ctx context.Context) error {
	switch s.config.Transport {
	case config.TransportSSE:
		return s.serveSSE(ctx)
	case config.TransportStdio, "":
		logging.Info(logSubsystem, "Serving MCP over stdio")
		return server.ServeStdio(s.mcp)
	default:
		return fmt.Errorf("unknown transport %q", s.config.Transport)
	}
}

func (s *Server) serveSSE(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	sseServer := server.NewSSEServer(
		s.mcp,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	errCh := make(chan error, 1)
	go func() {
		logging.Info(logSubsystem, "Serving MCP over SSE on %s", addr)
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error(logSubsystem, err, "Error shutting down SSE server")
		}
		return nil
	}
}
