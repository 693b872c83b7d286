// Package server exposes the dock engine as Model Context Protocol tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/dock-cli/internal/dock"
	"github.com/mj1618/dock-cli/internal/logging"
)

// Transports supported by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

// DefaultCallTimeout bounds a single tool call.
const DefaultCallTimeout = 10 * time.Second

// Config holds MCP server configuration.
type Config struct {
	Name      string
	Version   string
	Transport string
	Port      int
	Domain    string
	// CallTimeout bounds each tool call; 0 selects DefaultCallTimeout.
	CallTimeout time.Duration
}

// Server wraps the MCP server around a started dock engine.
type Server struct {
	engine   *dock.Engine
	snapshot *dock.SnapshotDelegate
	cfg      Config
	logger   *logrus.Entry
	mcp      *mcpserver.MCPServer
}

// New creates a server with every dock tool registered. snapshot must be
// the delegate the engine publishes to.
func New(engine *dock.Engine, snapshot *dock.SnapshotDelegate, cfg Config) *Server {
	if cfg.Name == "" {
		cfg.Name = "dock-cli"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	s := &Server{
		engine:   engine,
		snapshot: snapshot,
		cfg:      cfg,
		logger:   logging.NewLogger("mcp"),
		mcp:      mcpserver.NewMCPServer(cfg.Name, cfg.Version),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve runs the configured transport until it fails or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	switch s.cfg.Transport {
	case TransportStdio, "":
		s.logger.Info("Serving MCP over stdio")
		return mcpserver.ServeStdio(s.mcp)
	case TransportHTTP:
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()
		s.logger.WithField("addr", addr).Info("Serving MCP over streamable HTTP")
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}
