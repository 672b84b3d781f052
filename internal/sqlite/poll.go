package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/repository"
)

// PollRepository implements poll.Repository for SQLite
type PollRepository struct {
	db *DB
}

// NewPollRepository creates a new PollRepository
func NewPollRepository(db *DB) *PollRepository {
	return &PollRepository{db: db}
}

// Create inserts a poll and its options in one transaction
func (r *PollRepository) Create(ctx context.Context, tenantID string, p *poll.Poll) error {
	if p.ConstituencyID != "" {
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM constituencies WHERE id = ? AND tenant_id = ?`, p.ConstituencyID, tenantID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check constituency: %w", err)
		}
		if exists == 0 {
			return repository.ErrForeignKeyViolation
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, tenant_id, constituency_id, question, starts_at, ends_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, tenantID, nullString(p.ConstituencyID), p.Question, p.StartsAt, p.EndsAt, p.CreatedAt)
	if err != nil {
		return mapWriteError("create poll", err)
	}

	for i, opt := range p.Options {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO poll_options (poll_id, position, text, votes) VALUES (?, ?, ?, ?)`,
			p.ID, i, opt.Text, opt.Votes)
		if err != nil {
			return mapWriteError("create poll option", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	p.TenantID = tenantID
	return nil
}

// Get retrieves a poll with its options
func (r *PollRepository) Get(ctx context.Context, tenantID, id string) (*poll.Poll, error) {
	var p poll.Poll
	var constituencyID sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, constituency_id, question, starts_at, ends_at, created_at
		FROM polls WHERE id = ? AND tenant_id = ?`, id, tenantID).Scan(
		&p.ID,
		&p.TenantID,
		&constituencyID,
		&p.Question,
		&p.StartsAt,
		&p.EndsAt,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	p.ConstituencyID = constituencyID.String

	options, err := r.options(ctx, `WHERE poll_id = ?`, id)
	if err != nil {
		return nil, err
	}
	p.Options = options[id]
	return &p, nil
}

// List returns polls, newest first
func (r *PollRepository) List(ctx context.Context, tenantID string, opts poll.ListOptions) ([]poll.Poll, error) {
	query := `
		SELECT id, tenant_id, constituency_id, question, starts_at, ends_at, created_at
		FROM polls WHERE tenant_id = ?`
	args := []any{tenantID}
	if opts.ConstituencyID != "" {
		query += " AND constituency_id = ?"
		args = append(args, opts.ConstituencyID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	var list []poll.Poll
	for rows.Next() {
		var p poll.Poll
		var constituencyID sql.NullString
		if err := rows.Scan(&p.ID, &p.TenantID, &constituencyID, &p.Question, &p.StartsAt, &p.EndsAt, &p.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		p.ConstituencyID = constituencyID.String
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating poll rows: %w", err)
	}
	rows.Close()

	options, err := r.options(ctx, `WHERE poll_id IN (SELECT id FROM polls WHERE tenant_id = ?)`, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Options = options[list[i].ID]
	}
	return list, nil
}

func (r *PollRepository) options(ctx context.Context, where string, args ...any) (map[string][]poll.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT poll_id, text, votes FROM poll_options `+where+` ORDER BY poll_id, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list poll options: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]poll.Option)
	for rows.Next() {
		var pollID string
		var opt poll.Option
		if err := rows.Scan(&pollID, &opt.Text, &opt.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan poll option: %w", err)
		}
		out[pollID] = append(out[pollID], opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating poll options: %w", err)
	}
	return out, nil
}

// Vote increments the vote count of one option
func (r *PollRepository) Vote(ctx context.Context, tenantID, pollID string, option int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE poll_options SET votes = votes + 1
		WHERE poll_id = ? AND position = ?
		AND EXISTS (SELECT 1 FROM polls WHERE id = ? AND tenant_id = ?)`,
		pollID, option, pollID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
