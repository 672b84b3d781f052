package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/mlaconnect/internal/domain/grievance"
)

// SearchRepository implements grievance.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search performs a full-text search over grievances, best match first
func (r *SearchRepository) Search(ctx context.Context, tenantID, query string, opts grievance.SearchOptions) ([]grievance.SearchResult, error) {
	baseQuery := `
		SELECT
			g.id, g.tenant_id, g.constituency_id, g.citizen_name, g.phone, g.category,
			g.description, g.priority, g.status, g.resolution, g.created_at, g.updated_at,
			bm25(grievances_fts) as rank,
			snippet(grievances_fts, 2, '[', ']', '...', 12) as snippet
		FROM grievances_fts
		JOIN grievances g ON g.rowid = grievances_fts.rowid
		WHERE g.tenant_id = ? AND grievances_fts MATCH ?
	`

	args := []any{tenantID, ftsQuery(query)}

	if len(opts.Statuses) > 0 {
		var cond string
		cond, args = inClause("g.status", opts.Statuses, args)
		baseQuery += " AND " + cond
	}

	baseQuery += " ORDER BY rank"

	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		baseQuery += " LIMIT -1"
	}
	if opts.Offset > 0 {
		baseQuery += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search grievances: %w", err)
	}
	defer rows.Close()

	var results []grievance.SearchResult
	for rows.Next() {
		var result grievance.SearchResult
		g := &result.Grievance
		err := rows.Scan(
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
			&result.Rank,
			&result.Snippet,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// ftsQuery quotes each term so user input can't use FTS5 operators. Terms
// are matched as prefixes.
func ftsQuery(q string) string {
	fields := strings.Fields(q)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, `""`)
		terms = append(terms, `"`+f+`"*`)
	}
	return strings.Join(terms, " ")
}
