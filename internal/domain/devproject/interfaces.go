package devproject

import "context"

// Repository provides persistence for development projects.
type Repository interface {
	Create(ctx context.Context, tenantID string, p *Project) error
	Get(ctx context.Context, tenantID, id string) (*Project, error)
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Project, error)
	// AddExpense adds amount to spent atomically and returns the new total.
	// It returns repository.ErrConflict when the budget would be exceeded or
	// the project is completed.
	AddExpense(ctx context.Context, tenantID, id string, amount int64) (int64, error)
	// UpdateStatus moves the project to status only while it is still in
	// from; otherwise it returns repository.ErrConflict.
	UpdateStatus(ctx context.Context, tenantID, id string, from, to Status) error
}
