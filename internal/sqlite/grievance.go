package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/repository"
)

// GrievanceRepository implements grievance.Repository for SQLite
type GrievanceRepository struct {
	db *DB
}

// NewGrievanceRepository creates a new GrievanceRepository
func NewGrievanceRepository(db *DB) *GrievanceRepository {
	return &GrievanceRepository{db: db}
}

const grievanceColumns = `id, tenant_id, constituency_id, citizen_name, phone, category, description,
	priority, status, resolution, created_at, updated_at`

// Create creates a new grievance
func (r *GrievanceRepository) Create(ctx context.Context, tenantID string, g *grievance.Grievance) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM constituencies WHERE id = ? AND tenant_id = ?`,
		g.ConstituencyID, tenantID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check constituency: %w", err)
	}
	if exists == 0 {
		return repository.ErrForeignKeyViolation
	}

	query := `
		INSERT INTO grievances (` + grievanceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		g.ID,
		tenantID,
		g.ConstituencyID,
		g.CitizenName,
		g.Phone,
		g.Category,
		g.Description,
		g.Priority,
		g.Status,
		g.Resolution,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("create grievance", err)
	}

	g.TenantID = tenantID
	return nil
}

// Get retrieves a grievance by ID
func (r *GrievanceRepository) Get(ctx context.Context, tenantID, id string) (*grievance.Grievance, error) {
	query := `SELECT ` + grievanceColumns + ` FROM grievances WHERE id = ? AND tenant_id = ?`
	g, err := scanGrievance(r.db.QueryRowContext(ctx, query, id, tenantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grievance: %w", err)
	}
	return g, nil
}

// UpdateStatus changes status if the stored status still equals from
func (r *GrievanceRepository) UpdateStatus(ctx context.Context, tenantID, id string, from, to grievance.Status, resolution string, at time.Time) error {
	query := `
		UPDATE grievances
		SET status = ?, resolution = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND status = ?
	`
	result, err := r.db.ExecContext(ctx, query, to, resolution, at, id, tenantID, from)
	if err != nil {
		return fmt.Errorf("failed to update grievance: %w", err)
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

// List returns grievances matching opts, newest first
func (r *GrievanceRepository) List(ctx context.Context, tenantID string, opts grievance.ListOptions) ([]grievance.Grievance, error) {
	query := `SELECT ` + grievanceColumns + ` FROM grievances WHERE tenant_id = ?`
	args := []any{tenantID}
	conditions := []string{}

	if opts.ConstituencyID != "" {
		conditions = append(conditions, "constituency_id = ?")
		args = append(args, opts.ConstituencyID)
	}
	if len(opts.Statuses) > 0 {
		var cond string
		cond, args = inClause("status", opts.Statuses, args)
		conditions = append(conditions, cond)
	}
	if opts.Category != "" {
		conditions = append(conditions, "category = ? COLLATE NOCASE")
		args = append(args, opts.Category)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grievances: %w", err)
	}
	defer rows.Close()

	var list []grievance.Grievance
	for rows.Next() {
		g, err := scanGrievance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grievance: %w", err)
		}
		list = append(list, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grievance rows: %w", err)
	}

	return list, nil
}

func scanGrievance(row scanner) (*grievance.Grievance, error) {
	var g grievance.Grievance
	err := row.Scan(
		&g.ID,
		&g.TenantID,
		&g.ConstituencyID,
		&g.CitizenName,
		&g.Phone,
		&g.Category,
		&g.Description,
		&g.Priority,
		&g.Status,
		&g.Resolution,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
