package mcp

import (
	"context"
	"log/slog"

	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/table"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// TableService serves the dashboard tables.
type TableService interface {
	Tables() []dashboard.TableInfo
	Query(ctx context.Context, tenantID, name string, state table.State) (*dashboard.Result, error)
}

// ConstituencyService defines constituency operations needed by MCP.
type ConstituencyService interface {
	Create(ctx context.Context, tenantID string, req constituency.CreateRequest) (*constituency.Constituency, error)
	Get(ctx context.Context, tenantID, id string) (*constituency.Constituency, error)
	Stats(ctx context.Context, tenantID string) (*constituency.Stats, error)
}

// GrievanceService defines grievance operations needed by MCP.
type GrievanceService interface {
	Submit(ctx context.Context, tenantID string, req grievance.SubmitRequest) (*grievance.Grievance, error)
	Get(ctx context.Context, tenantID, id string) (*grievance.Grievance, error)
	Transition(ctx context.Context, tenantID string, req grievance.TransitionRequest) (*grievance.Grievance, error)
	Search(ctx context.Context, tenantID, query string, opts grievance.SearchOptions) ([]grievance.SearchResult, error)
	Stats(ctx context.Context, tenantID, constituencyID string) (*grievance.Stats, error)
}

// ProjectService defines development project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, tenantID string, req devproject.CreateRequest) (*devproject.Project, error)
	Get(ctx context.Context, tenantID, id string) (*devproject.Project, error)
	RecordExpense(ctx context.Context, tenantID, id string, amount int64, note string) (*devproject.Project, error)
	UpdateStatus(ctx context.Context, tenantID, id string, to devproject.Status) (*devproject.Project, error)
	BudgetSummary(ctx context.Context, tenantID, constituencyID string) (*devproject.BudgetSummary, error)
}

// PollService defines poll operations needed by MCP.
type PollService interface {
	Create(ctx context.Context, tenantID string, req poll.CreateRequest) (*poll.Poll, error)
	Vote(ctx context.Context, tenantID, pollID string, index int) (*poll.Poll, error)
	Results(ctx context.Context, tenantID, pollID string) (*poll.Results, error)
}

// UserService defines user operations needed by MCP.
type UserService interface {
	Register(ctx context.Context, tenantID string, req user.RegisterRequest) (*user.User, error)
	Authenticate(ctx context.Context, tenantID, phone, password string) (*user.User, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tables         TableService
	Constituencies ConstituencyService
	Grievances     GrievanceService
	Projects       ProjectService
	Polls          PollService
	Users          UserService
	Activity       ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      TenantResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultTenant string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "mlaconnect",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	tenant := cfg.DefaultTenant
	if tenant == "" {
		tenant = "default"
	}

	// Stdio is local-only and never authenticates.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(tenant))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLogger(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLogger(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services), cfg.Logger)

	return server
}
