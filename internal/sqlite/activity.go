package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/mlaconnect/internal/domain/activity"
)

const activityColumns = `id, tenant_id, entity_type, entity_id, activity_type, summary, details, created_at`

// ActivityRepository stores the append-only activity_log table.
type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends entry and fills in its ID, tenant and timestamp.
func (r *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO activity_log (tenant_id, entity_type, entity_id, activity_type, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		tenantID, entry.EntityType, entry.EntityID, entry.ActivityType, entry.Summary, entry.Details, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return mapWriteError("log activity", err)
	}
	entry.TenantID = tenantID
	return nil
}

// List returns matching entries, newest first. Entries logged in the same
// instant keep insertion order reversed.
func (r *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.ActivityEntry, error) {
	query, args := activityListQuery(tenantID, opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var e activity.ActivityEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.EntityType, &e.EntityID, &e.ActivityType, &e.Summary, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func activityListQuery(tenantID string, opts activity.ListOptions) (string, []any) {
	where := []string{"tenant_id = ?"}
	args := []any{tenantID}

	if opts.EntityType != "" {
		where = append(where, "entity_type = ?")
		args = append(args, opts.EntityType)
	}
	if opts.EntityID != "" {
		where = append(where, "entity_id = ?")
		args = append(args, opts.EntityID)
	}
	if len(opts.Types) > 0 {
		var cond string
		cond, args = inClause("activity_type", opts.Types, args)
		where = append(where, cond)
	}
	if !opts.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.Since)
	}

	// SQLite needs a LIMIT before OFFSET; -1 means unbounded.
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT ` + activityColumns + ` FROM activity_log WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	return query, append(args, limit, max(opts.Offset, 0))
}
