package mcp

import (
	"context"
	"log/slog"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/domain/session"
	"github.com/empetur/consolidacao/internal/sheet"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SessionService defines editing session operations needed by MCP.
type SessionService interface {
	Status(ctx context.Context) (session.Info, error)
	Municipalities(ctx context.Context) ([]string, error)
	OfficeView(ctx context.Context, req session.ViewRequest) (*session.OfficeView, error)
	FieldView(ctx context.Context, req session.ViewRequest) (*session.FieldView, error)
	ApplyEdits(ctx context.Context, req session.EditRequest) (*session.EditResult, error)
	Save(ctx context.Context, force bool) (session.Info, error)
	Reload(ctx context.Context, discard bool) (session.Info, error)
	RouteExport(ctx context.Context, municipality string) (inventory.RouteExport, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Sessions SessionService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services     Services
	ExportDir    string
	ExportFormat sheet.Format
	Logger       *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "consolidacao",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services, cfg.ExportDir, cfg.ExportFormat))

	return server
}
