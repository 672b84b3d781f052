// Package seed loads demo data from a YAML fixture through the domain
// services, so every seeded row passes the same validation and writes the
// same activity entries as live input.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document layout. Rows refer to constituencies by name.
type Fixture struct {
	Tenant         string                       `yaml:"tenant"`
	Constituencies []constituency.CreateRequest `yaml:"constituencies"`
	Grievances     []Grievance                  `yaml:"grievances"`
	Projects       []Project                    `yaml:"projects"`
	Polls          []Poll                       `yaml:"polls"`
	Users          []User                       `yaml:"users"`
}

type Grievance struct {
	Constituency string `yaml:"constituency"`
	CitizenName  string `yaml:"citizen_name"`
	Phone        string `yaml:"phone"`
	Category     string `yaml:"category"`
	Description  string `yaml:"description"`
	Priority     string `yaml:"priority"`
	Status       string `yaml:"status"`
	Resolution   string `yaml:"resolution"`
}

type Project struct {
	Constituency string    `yaml:"constituency"`
	Name         string    `yaml:"name"`
	Category     string    `yaml:"category"`
	Budget       int64     `yaml:"budget"`
	Spent        int64     `yaml:"spent"`
	Status       string    `yaml:"status"`
	StartDate    time.Time `yaml:"start_date"`
	EndDate      time.Time `yaml:"end_date"`
}

// Poll votes are cast through the service, so a poll with votes must be open
// when the fixture is loaded.
type Poll struct {
	Constituency string    `yaml:"constituency"`
	Question     string    `yaml:"question"`
	Options      []string  `yaml:"options"`
	StartsAt     time.Time `yaml:"starts_at"`
	EndsAt       time.Time `yaml:"ends_at"`
	Votes        []int     `yaml:"votes"`
}

type User struct {
	Constituency string `yaml:"constituency"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	Aadhaar      string `yaml:"aadhaar"`
	Role         string `yaml:"role"`
	Password     string `yaml:"password"`
}

// Summary counts what a load created.
type Summary struct {
	Constituencies int
	Grievances     int
	Projects       int
	Polls          int
	Users          int
}

// Services are the domain services a load writes through.
type Services struct {
	Constituencies *constituency.Service
	Grievances     *grievance.Service
	Projects       *devproject.Service
	Polls          *poll.Service
	Users          *user.Service
}

// Parse decodes a fixture. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if f.Tenant == "" {
		return nil, errors.New("parse fixture: tenant is required")
	}
	return &f, nil
}

// Loader writes fixtures through the domain services.
type Loader struct {
	svc    Services
	logger *slog.Logger
	ids    map[string]string
}

// NewLoader creates a loader.
func NewLoader(svc Services, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{svc: svc, logger: logger}
}

// Load writes f. Existing constituencies with the same name are reused, so a
// fixture can extend data already present. Any other failure stops the load.
func (l *Loader) Load(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary
	l.ids = make(map[string]string)
	tenant := f.Tenant

	for _, req := range f.Constituencies {
		c, err := l.svc.Constituencies.Create(ctx, tenant, req)
		if errors.Is(err, constituency.ErrDuplicate) {
			c, err = l.svc.Constituencies.GetByName(ctx, tenant, req.Name)
		} else if err == nil {
			sum.Constituencies++
		}
		if err != nil {
			return sum, fmt.Errorf("constituency %q: %w", req.Name, err)
		}
		l.ids[c.Name] = c.ID
	}

	for i, g := range f.Grievances {
		if err := l.grievance(ctx, tenant, g); err != nil {
			return sum, fmt.Errorf("grievance %d: %w", i+1, err)
		}
		sum.Grievances++
	}
	for _, p := range f.Projects {
		if err := l.project(ctx, tenant, p); err != nil {
			return sum, fmt.Errorf("project %q: %w", p.Name, err)
		}
		sum.Projects++
	}
	for _, p := range f.Polls {
		if err := l.poll(ctx, tenant, p); err != nil {
			return sum, fmt.Errorf("poll %q: %w", p.Question, err)
		}
		sum.Polls++
	}
	for _, u := range f.Users {
		if err := l.user(ctx, tenant, u); err != nil {
			return sum, fmt.Errorf("user %q: %w", u.Name, err)
		}
		sum.Users++
	}

	l.logger.Info("seed loaded",
		"tenant_id", tenant,
		"constituencies", sum.Constituencies,
		"grievances", sum.Grievances,
		"projects", sum.Projects,
		"polls", sum.Polls,
		"users", sum.Users,
	)
	return sum, nil
}

func (l *Loader) constituencyID(ctx context.Context, tenant, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if id, ok := l.ids[name]; ok {
		return id, nil
	}
	c, err := l.svc.Constituencies.GetByName(ctx, tenant, name)
	if err != nil {
		return "", fmt.Errorf("constituency %q: %w", name, err)
	}
	l.ids[name] = c.ID
	return c.ID, nil
}

func (l *Loader) grievance(ctx context.Context, tenant string, g Grievance) error {
	cid, err := l.constituencyID(ctx, tenant, g.Constituency)
	if err != nil {
		return err
	}
	created, err := l.svc.Grievances.Submit(ctx, tenant, grievance.SubmitRequest{
		ConstituencyID: cid,
		CitizenName:    g.CitizenName,
		Phone:          g.Phone,
		Category:       g.Category,
		Description:    g.Description,
		Priority:       grievance.Priority(g.Priority),
	})
	if err != nil {
		return err
	}

	// Walk the lifecycle to the requested status.
	for _, step := range grievancePath(grievance.Status(g.Status)) {
		resolution := ""
		if step == grievance.StatusResolved || step == grievance.StatusRejected {
			resolution = g.Resolution
		}
		if _, err := l.svc.Grievances.Transition(ctx, tenant, grievance.TransitionRequest{
			ID:         created.ID,
			ToStatus:   step,
			Resolution: resolution,
		}); err != nil {
			return err
		}
	}
	return nil
}

func grievancePath(target grievance.Status) []grievance.Status {
	switch target {
	case grievance.StatusInProgress:
		return []grievance.Status{grievance.StatusInProgress}
	case grievance.StatusResolved:
		return []grievance.Status{grievance.StatusInProgress, grievance.StatusResolved}
	case grievance.StatusRejected:
		return []grievance.Status{grievance.StatusRejected}
	}
	return nil
}

func (l *Loader) project(ctx context.Context, tenant string, p Project) error {
	cid, err := l.constituencyID(ctx, tenant, p.Constituency)
	if err != nil {
		return err
	}
	status := devproject.Status(p.Status)
	initial := devproject.StatusPlanned
	if status == devproject.StatusOngoing || status == devproject.StatusStalled {
		initial = status
	}
	created, err := l.svc.Projects.Create(ctx, tenant, devproject.CreateRequest{
		ConstituencyID: cid,
		Name:           p.Name,
		Category:       p.Category,
		Budget:         p.Budget,
		Status:         initial,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
	})
	if err != nil {
		return err
	}
	if p.Spent > 0 {
		if _, err := l.svc.Projects.RecordExpense(ctx, tenant, created.ID, p.Spent, "opening balance"); err != nil {
			return err
		}
	}
	if status == devproject.StatusCompleted {
		if initial == devproject.StatusPlanned {
			if _, err := l.svc.Projects.UpdateStatus(ctx, tenant, created.ID, devproject.StatusOngoing); err != nil {
				return err
			}
		}
		if _, err := l.svc.Projects.UpdateStatus(ctx, tenant, created.ID, devproject.StatusCompleted); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) poll(ctx context.Context, tenant string, p Poll) error {
	cid, err := l.constituencyID(ctx, tenant, p.Constituency)
	if err != nil {
		return err
	}
	created, err := l.svc.Polls.Create(ctx, tenant, poll.CreateRequest{
		ConstituencyID: cid,
		Question:       p.Question,
		Options:        p.Options,
		StartsAt:       p.StartsAt,
		EndsAt:         p.EndsAt,
	})
	if err != nil {
		return err
	}
	for option, count := range p.Votes {
		for range count {
			if _, err := l.svc.Polls.Vote(ctx, tenant, created.ID, option); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loader) user(ctx context.Context, tenant string, u User) error {
	cid, err := l.constituencyID(ctx, tenant, u.Constituency)
	if err != nil {
		return err
	}
	_, err = l.svc.Users.Register(ctx, tenant, user.RegisterRequest{
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Aadhaar:         u.Aadhaar,
		Role:            user.Role(u.Role),
		ConstituencyID:  cid,
		Password:        u.Password,
		ConfirmPassword: u.Password,
	})
	return err
}
