package activity

import "context"

// Writer appends entries to the log. Services only ever write.
type Writer interface {
	Log(ctx context.Context, tenantID string, entry *ActivityEntry) error
}

// Repository is the full activity store.
type Repository interface {
	Writer
	List(ctx context.Context, tenantID string, opts ListOptions) ([]ActivityEntry, error)
}
