// ABOUTME: MCP server setup for the nutrition tracker.
// ABOUTME: Wraps the MCP server with a Repository and an insight Generator.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/nutri/internal/insight"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer      *mcp.Server
	repo           storage.Repository
	gen            *insight.Generator
	log            *zap.Logger
	defaultProfile string
	now            func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaultProfile sets the profile used when a tool call omits profile_id.
func WithDefaultProfile(ref string) Option {
	return func(s *Server) { s.defaultProfile = ref }
}

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutri",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		log:       zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("mcp")
	s.gen = insight.NewGenerator(insight.NewEngine(insight.WithClock(s.now)), repo, repo, s.log)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
