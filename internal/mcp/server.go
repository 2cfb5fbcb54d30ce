// Package mcp wires the Stack Overflow client, thread assembler, and
// formatter into an MCP server speaking stdio.
package mcp

import (
	"context"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/overflowhq/stackoverflow-mcp/internal/cache"
	"github.com/overflowhq/stackoverflow-mcp/internal/config"
	"github.com/overflowhq/stackoverflow-mcp/internal/mcp/prompts"
	"github.com/overflowhq/stackoverflow-mcp/internal/mcp/tools"
	"github.com/overflowhq/stackoverflow-mcp/internal/query"
	"github.com/overflowhq/stackoverflow-mcp/internal/threads"
	"github.com/overflowhq/stackoverflow-mcp/pkg/stackexchange"
)

// Server wraps the MCP server with Stack Overflow components.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps
}

// NewServer builds the dependency graph from configuration and registers
// all tools, prompts, and resources.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	opts := []stackexchange.Option{
		stackexchange.WithHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout}),
		stackexchange.WithSite(cfg.Site),
		stackexchange.WithDefaultPageSize(cfg.DefaultPageSize),
		stackexchange.WithRateLimit(cfg.RequestsPerSecond, cfg.RequestBurst),
		stackexchange.WithRetryPolicy(stackexchange.RetryPolicy{
			MaxRetries: cfg.RetryMaxAttempts,
			BaseDelay:  cfg.RetryBaseDelay,
			MaxDelay:   cfg.RetryMaxDelay,
		}),
	}
	if cfg.APIKey != "" {
		opts = append(opts, stackexchange.WithAPIKey(cfg.APIKey))
	}
	if cfg.AccessToken != "" {
		opts = append(opts, stackexchange.WithAccessToken(cfg.AccessToken))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, stackexchange.WithBaseURL(cfg.BaseURL))
	}
	client := stackexchange.New(opts...)

	tc, err := cache.NewThreadCache(cfg.ThreadCacheItems)
	if err != nil {
		return nil, fmt.Errorf("creating thread cache: %w", err)
	}

	deps := &tools.Deps{
		Client:  client,
		Threads: threads.New(client, tc, cfg.FetchWorkers),
		Config:  cfg,
		Query:   query.NewEngine(),
	}
	return NewServerWithDeps(deps)
}

// NewServerWithDeps creates a server around pre-built dependencies.
// Used by tests that point the client at a fake upstream.
func NewServerWithDeps(deps *tools.Deps) (*Server, error) {
	if deps == nil {
		return nil, fmt.Errorf("deps is required")
	}

	s := &Server{deps: deps}

	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{
			Name:    "stackoverflow-mcp",
			Version: "1.0.0",
		},
		nil,
	)

	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	tools.Register(s.mcpServer, deps)
	s.registerResources()
	prompts.Register(s.mcpServer, &prompts.Config{
		Site:               deps.Config.Site,
		DefaultSearchLimit: deps.Config.DefaultSearchLimit,
	})

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
