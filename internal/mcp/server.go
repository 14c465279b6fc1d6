package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/worklog"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MemberService defines member operations needed by MCP.
type MemberService interface {
	Create(ctx context.Context, req member.CreateRequest) (*member.Member, error)
	Get(ctx context.Context, id string) (*member.Member, error)
	List(ctx context.Context) ([]member.Member, error)
	Rename(ctx context.Context, id, name string) (*member.Member, error)
	UpdateInput(ctx context.Context, id, rawInput string) (*member.Member, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, opts member.SearchOptions) ([]member.SearchResult, error)
}

// SummaryService defines the team summary needed by MCP.
type SummaryService interface {
	Get(ctx context.Context) (summary.Summary, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Members  MemberService
	Summary  SummaryService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	// ParseOptions are the grammar defaults for parse_work_log.
	ParseOptions []worklog.Option
	Version      string
	Logger       *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "typeset-board",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &toolset{
		services:  cfg.Services,
		parseOpts: cfg.ParseOptions,
	})

	return server
}
