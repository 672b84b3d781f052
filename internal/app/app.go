// Package app wires repositories, domain services and the table catalog over
// one database. The server, the CLI and the test server share it.
package app

import (
	"log/slog"

	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/mcp"
	"github.com/rpggio/mlaconnect/internal/seed"
	"github.com/rpggio/mlaconnect/internal/sqlite"
)

// App holds the wired services.
type App struct {
	DB      *sqlite.DB
	APIKeys *sqlite.APIKeyRepository

	Constituencies *constituency.Service
	Grievances     *grievance.Service
	Projects       *devproject.Service
	Polls          *poll.Service
	Users          *user.Service
	Activity       *activity.Service

	Catalog *dashboard.Catalog
}

// New builds every service over db. Catalog options set the table defaults.
func New(db *sqlite.DB, logger *slog.Logger, opts ...dashboard.Option) *App {
	activityRepo := sqlite.NewActivityRepository(db)
	recorder := activity.NewRecorder(activityRepo, logger)

	a := &App{
		DB:             db,
		APIKeys:        sqlite.NewAPIKeyRepository(db),
		Constituencies: constituency.NewService(sqlite.NewConstituencyRepository(db), recorder, logger),
		Grievances:     grievance.NewService(sqlite.NewGrievanceRepository(db), sqlite.NewSearchRepository(db), recorder, logger),
		Projects:       devproject.NewService(sqlite.NewDevProjectRepository(db), recorder, logger),
		Polls:          poll.NewService(sqlite.NewPollRepository(db), recorder, logger),
		Users:          user.NewService(sqlite.NewUserRepository(db), recorder, logger),
		Activity:       activity.NewService(activityRepo, logger),
	}
	a.Catalog = dashboard.NewCatalog(dashboard.Services{
		Constituencies: a.Constituencies,
		Grievances:     a.Grievances,
		Projects:       a.Projects,
		Polls:          a.Polls,
		Users:          a.Users,
		Activity:       a.Activity,
	}, append([]dashboard.Option{dashboard.WithLogger(logger)}, opts...)...)
	return a
}

// MCPServices returns the services the MCP handler dispatches to.
func (a *App) MCPServices() mcp.Services {
	return mcp.Services{
		Tables:         a.Catalog,
		Constituencies: a.Constituencies,
		Grievances:     a.Grievances,
		Projects:       a.Projects,
		Polls:          a.Polls,
		Users:          a.Users,
		Activity:       a.Activity,
	}
}

// SeedServices returns the services a fixture load writes through.
func (a *App) SeedServices() seed.Services {
	return seed.Services{
		Constituencies: a.Constituencies,
		Grievances:     a.Grievances,
		Projects:       a.Projects,
		Polls:          a.Polls,
		Users:          a.Users,
	}
}
