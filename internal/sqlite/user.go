package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/repository"
)

// UserRepository implements user.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, tenant_id, name, email, phone, aadhaar, role, constituency_id, password_hash, created_at`

// Create creates a new user. A repeated phone within a tenant is a duplicate.
func (r *UserRepository) Create(ctx context.Context, tenantID string, u *user.User) error {
	if u.ConstituencyID != "" {
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM constituencies WHERE id = ? AND tenant_id = ?`, u.ConstituencyID, tenantID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check constituency: %w", err)
		}
		if exists == 0 {
			return repository.ErrForeignKeyViolation
		}
	}

	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		tenantID,
		u.Name,
		u.Email,
		u.Phone,
		u.Aadhaar,
		u.Role,
		nullString(u.ConstituencyID),
		u.PasswordHash,
		u.CreatedAt,
	)
	if err != nil {
		return mapWriteError("create user", err)
	}

	u.TenantID = tenantID
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, tenantID, id string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? AND tenant_id = ?`, id, tenantID)
}

// GetByPhone retrieves a user by normalized phone number
func (r *UserRepository) GetByPhone(ctx context.Context, tenantID, phone string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE phone = ? AND tenant_id = ?`, phone, tenantID)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// List returns users matching opts ordered by name
func (r *UserRepository) List(ctx context.Context, tenantID string, opts user.ListOptions) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = ?`
	args := []any{tenantID}
	if opts.Role != "" {
		query += " AND role = ?"
		args = append(args, opts.Role)
	}
	if opts.ConstituencyID != "" {
		query += " AND constituency_id = ?"
		args = append(args, opts.ConstituencyID)
	}
	query += " ORDER BY name, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var list []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return list, nil
}

func scanUser(row scanner) (*user.User, error) {
	var u user.User
	var constituencyID sql.NullString
	err := row.Scan(
		&u.ID,
		&u.TenantID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Aadhaar,
		&u.Role,
		&constituencyID,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.ConstituencyID = constituencyID.String
	return &u, nil
}
