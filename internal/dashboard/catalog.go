// Package dashboard binds each domain list to the table view engine. A
// query loads the tenant's records, applies the requested view state and
// returns one rendered page.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/table"
	"golang.org/x/text/language"
)

// Table names served by the catalog.
const (
	TableConstituencies = "constituencies"
	TableGrievances     = "grievances"
	TableProjects       = "projects"
	TablePolls          = "polls"
	TableUsers          = "users"
	TableActivity       = "activity"
)

// ErrUnknownTable indicates a table name the catalog doesn't serve.
var ErrUnknownTable = errors.New("unknown table")

// TableInfo describes one table and its columns.
type TableInfo struct {
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Columns []table.ColumnInfo `json:"columns"`
}

// Result is one page of a table.
type Result struct {
	Table string `json:"table"`
	table.Page
}

// Services are the domain services the catalog loads records from.
type Services struct {
	Constituencies *constituency.Service
	Grievances     *grievance.Service
	Projects       *devproject.Service
	Polls          *poll.Service
	Users          *user.Service
	Activity       *activity.Service
}

type source interface {
	info() TableInfo
	query(ctx context.Context, tenantID string, state table.State, opts []table.Option) (table.Page, error)
}

type binding[R any] struct {
	name    string
	title   string
	columns func() []table.Column[R]
	load    func(ctx context.Context, tenantID string) ([]R, error)
}

func (b binding[R]) info() TableInfo {
	return TableInfo{
		Name:    b.name,
		Title:   b.title,
		Columns: table.New[R](b.columns(), nil).Columns(),
	}
}

func (b binding[R]) query(ctx context.Context, tenantID string, state table.State, opts []table.Option) (table.Page, error) {
	records, err := b.load(ctx, tenantID)
	if err != nil {
		return table.Page{}, fmt.Errorf("loading %s: %w", b.name, err)
	}
	view := table.New(b.columns(), records, opts...)
	view.Apply(state)
	return view.Page(), nil
}

// Catalog serves the dashboard tables.
type Catalog struct {
	sources  map[string]source
	order    []string
	pageSize int
	locale   language.Tag
	logger   *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithPageSize sets the page size used when a query leaves it at zero.
func WithPageSize(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLocale sets the collation locale for text columns.
func WithLocale(tag language.Tag) Option {
	return func(c *Catalog) { c.locale = tag }
}

// WithLogger sets the catalog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// NewCatalog creates a catalog over the given services. Tables whose service
// is nil are not served.
func NewCatalog(svc Services, opts ...Option) *Catalog {
	c := &Catalog{
		sources:  make(map[string]source),
		pageSize: table.DefaultPageSize,
		locale:   language.English,
	}
	for _, opt := range opts {
		opt(c)
	}

	if svc.Constituencies != nil {
		c.register(binding[constituency.Constituency]{
			name:    TableConstituencies,
			title:   "Constituencies",
			columns: constituency.Columns,
			load: func(ctx context.Context, tenantID string) ([]constituency.Constituency, error) {
				return svc.Constituencies.List(ctx, tenantID, constituency.ListOptions{})
			},
		})
	}
	if svc.Grievances != nil {
		c.register(binding[grievance.Grievance]{
			name:    TableGrievances,
			title:   "Grievances",
			columns: grievance.Columns,
			load: func(ctx context.Context, tenantID string) ([]grievance.Grievance, error) {
				return svc.Grievances.List(ctx, tenantID, grievance.ListOptions{})
			},
		})
	}
	if svc.Projects != nil {
		c.register(binding[devproject.Project]{
			name:    TableProjects,
			title:   "Development Projects",
			columns: devproject.Columns,
			load: func(ctx context.Context, tenantID string) ([]devproject.Project, error) {
				return svc.Projects.List(ctx, tenantID, devproject.ListOptions{})
			},
		})
	}
	if svc.Polls != nil {
		c.register(binding[poll.Poll]{
			name:    TablePolls,
			title:   "Polls",
			columns: poll.Columns,
			load: func(ctx context.Context, tenantID string) ([]poll.Poll, error) {
				return svc.Polls.List(ctx, tenantID, poll.ListOptions{})
			},
		})
	}
	if svc.Users != nil {
		c.register(binding[user.User]{
			name:    TableUsers,
			title:   "Users",
			columns: user.Columns,
			load: func(ctx context.Context, tenantID string) ([]user.User, error) {
				return svc.Users.List(ctx, tenantID, user.ListOptions{})
			},
		})
	}
	if svc.Activity != nil {
		c.register(binding[activity.ActivityEntry]{
			name:    TableActivity,
			title:   "Recent Activity",
			columns: activity.Columns,
			load: func(ctx context.Context, tenantID string) ([]activity.ActivityEntry, error) {
				return svc.Activity.GetRecentActivity(ctx, tenantID, activity.ListOptions{Limit: activity.MaxListLimit})
			},
		})
	}

	return c
}

func (c *Catalog) register(s source) {
	name := s.info().Name
	c.sources[name] = s
	c.order = append(c.order, name)
}

// Tables describes every served table in registration order.
func (c *Catalog) Tables() []TableInfo {
	out := make([]TableInfo, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.sources[name].info())
	}
	return out
}

// Has reports whether name is a served table.
func (c *Catalog) Has(name string) bool {
	return slices.Contains(c.order, name)
}

// Query loads a table for tenantID and returns the page described by state.
func (c *Catalog) Query(ctx context.Context, tenantID, name string, state table.State) (*Result, error) {
	src, ok := c.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}

	page, err := src.query(ctx, tenantID, state, []table.Option{
		table.WithPageSize(c.pageSize),
		table.WithLocale(c.locale),
	})
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug("table query",
			"table", name,
			"tenant_id", tenantID,
			"page", page.PageIndex,
			"filtered", page.Filtered,
			"total", page.Total,
		)
	}
	return &Result{Table: name, Page: page}, nil
}
