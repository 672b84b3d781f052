package user

import "context"

// Repository provides persistence for users.
type Repository interface {
	Create(ctx context.Context, tenantID string, u *User) error
	Get(ctx context.Context, tenantID, id string) (*User, error)
	GetByPhone(ctx context.Context, tenantID, phone string) (*User, error)
	List(ctx context.Context, tenantID string, opts ListOptions) ([]User, error)
}
