package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/repository"
)

// ConstituencyRepository implements constituency.Repository for SQLite
type ConstituencyRepository struct {
	db *DB
}

// NewConstituencyRepository creates a new ConstituencyRepository
func NewConstituencyRepository(db *DB) *ConstituencyRepository {
	return &ConstituencyRepository{db: db}
}

const constituencyColumns = `id, tenant_id, name, district, state, mla_name, population, voters, status, created_at`

// Create creates a new constituency
func (r *ConstituencyRepository) Create(ctx context.Context, tenantID string, c *constituency.Constituency) error {
	query := `
		INSERT INTO constituencies (` + constituencyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		tenantID,
		c.Name,
		c.District,
		c.State,
		c.MLAName,
		c.Population,
		c.Voters,
		c.Status,
		c.CreatedAt,
	)
	if err != nil {
		return mapWriteError("create constituency", err)
	}

	c.TenantID = tenantID
	return nil
}

// Get retrieves a constituency by ID
func (r *ConstituencyRepository) Get(ctx context.Context, tenantID, id string) (*constituency.Constituency, error) {
	query := `SELECT ` + constituencyColumns + ` FROM constituencies WHERE id = ? AND tenant_id = ?`
	return r.getOne(ctx, query, id, tenantID)
}

// GetByName retrieves a constituency by name, ignoring case
func (r *ConstituencyRepository) GetByName(ctx context.Context, tenantID, name string) (*constituency.Constituency, error) {
	query := `SELECT ` + constituencyColumns + ` FROM constituencies WHERE name = ? COLLATE NOCASE AND tenant_id = ?`
	return r.getOne(ctx, query, name, tenantID)
}

func (r *ConstituencyRepository) getOne(ctx context.Context, query string, args ...any) (*constituency.Constituency, error) {
	c, err := scanConstituency(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get constituency: %w", err)
	}
	return c, nil
}

// List returns constituencies ordered by name
func (r *ConstituencyRepository) List(ctx context.Context, tenantID string, opts constituency.ListOptions) ([]constituency.Constituency, error) {
	query := `SELECT ` + constituencyColumns + ` FROM constituencies WHERE tenant_id = ?`
	args := []any{tenantID}

	if opts.District != "" {
		query += " AND district = ? COLLATE NOCASE"
		args = append(args, opts.District)
	}
	if opts.Status != "" {
		query += " AND status = ?"
		args = append(args, opts.Status)
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list constituencies: %w", err)
	}
	defer rows.Close()

	var list []constituency.Constituency
	for rows.Next() {
		c, err := scanConstituency(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan constituency: %w", err)
		}
		list = append(list, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating constituency rows: %w", err)
	}

	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConstituency(row scanner) (*constituency.Constituency, error) {
	var c constituency.Constituency
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.District,
		&c.State,
		&c.MLAName,
		&c.Population,
		&c.Voters,
		&c.Status,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
