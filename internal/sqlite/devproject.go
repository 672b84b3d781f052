package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/repository"
)

// DevProjectRepository implements devproject.Repository for SQLite
type DevProjectRepository struct {
	db *DB
}

// NewDevProjectRepository creates a new DevProjectRepository
func NewDevProjectRepository(db *DB) *DevProjectRepository {
	return &DevProjectRepository{db: db}
}

const devProjectColumns = `id, tenant_id, constituency_id, name, category, budget, spent, status,
	start_date, end_date, created_at`

// Create creates a new project
func (r *DevProjectRepository) Create(ctx context.Context, tenantID string, p *devproject.Project) error {
	if err := r.checkConstituency(ctx, tenantID, p.ConstituencyID); err != nil {
		return err
	}

	query := `
		INSERT INTO dev_projects (` + devProjectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		tenantID,
		p.ConstituencyID,
		p.Name,
		p.Category,
		p.Budget,
		p.Spent,
		p.Status,
		p.StartDate,
		p.EndDate,
		p.CreatedAt,
	)
	if err != nil {
		return mapWriteError("create project", err)
	}

	p.TenantID = tenantID
	return nil
}

func (r *DevProjectRepository) checkConstituency(ctx context.Context, tenantID, id string) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM constituencies WHERE id = ? AND tenant_id = ?`, id, tenantID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check constituency: %w", err)
	}
	if exists == 0 {
		return repository.ErrForeignKeyViolation
	}
	return nil
}

// Get retrieves a project by ID
func (r *DevProjectRepository) Get(ctx context.Context, tenantID, id string) (*devproject.Project, error) {
	query := `SELECT ` + devProjectColumns + ` FROM dev_projects WHERE id = ? AND tenant_id = ?`
	p, err := scanDevProject(r.db.QueryRowContext(ctx, query, id, tenantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// List returns projects matching opts, newest first
func (r *DevProjectRepository) List(ctx context.Context, tenantID string, opts devproject.ListOptions) ([]devproject.Project, error) {
	query := `SELECT ` + devProjectColumns + ` FROM dev_projects WHERE tenant_id = ?`
	args := []any{tenantID}

	if opts.ConstituencyID != "" {
		query += " AND constituency_id = ?"
		args = append(args, opts.ConstituencyID)
	}
	if opts.Status != "" {
		query += " AND status = ?"
		args = append(args, opts.Status)
	}
	if opts.Category != "" {
		query += " AND category = ? COLLATE NOCASE"
		args = append(args, opts.Category)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var list []devproject.Project
	for rows.Next() {
		p, err := scanDevProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return list, nil
}

// AddExpense atomically adds amount to spent and returns the new value
func (r *DevProjectRepository) AddExpense(ctx context.Context, tenantID, id string, amount int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE dev_projects
		SET spent = spent + ?
		WHERE id = ? AND tenant_id = ? AND spent + ? <= budget AND status != ?
	`
	result, err := tx.ExecContext(ctx, updateQuery, amount, id, tenantID, amount, devproject.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("failed to add expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	var spent int64
	err = tx.QueryRowContext(ctx, `SELECT spent FROM dev_projects WHERE id = ? AND tenant_id = ?`, id, tenantID).Scan(&spent)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get spent: %w", err)
	}
	if rowsAffected == 0 {
		return 0, repository.ErrConflict
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return spent, nil
}

// UpdateStatus changes status if the stored status still equals from
func (r *DevProjectRepository) UpdateStatus(ctx context.Context, tenantID, id string, from, to devproject.Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE dev_projects SET status = ? WHERE id = ? AND tenant_id = ? AND status = ?`, to, id, tenantID, from)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.Get(ctx, tenantID, id); err != nil {
		return err
	}
	return repository.ErrConflict
}

func scanDevProject(row scanner) (*devproject.Project, error) {
	var p devproject.Project
	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.ConstituencyID,
		&p.Name,
		&p.Category,
		&p.Budget,
		&p.Spent,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
