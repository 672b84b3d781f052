package activity

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Recorder appends entries on behalf of the other domain services. The
// operation being recorded has already committed, so write failures are
// logged rather than returned.
type Recorder struct {
	log    Writer
	logger *slog.Logger
}

// NewRecorder creates a Recorder. A nil writer records nothing.
func NewRecorder(log Writer, logger *slog.Logger) *Recorder {
	return &Recorder{log: log, logger: logger}
}

// Record appends one entry. details, when non-nil, is stored as JSON.
func (r *Recorder) Record(ctx context.Context, tenantID, entityType, entityID string, typ ActivityType, summary string, details any) {
	if r == nil || r.log == nil {
		return
	}
	entry := &ActivityEntry{
		EntityType:   entityType,
		EntityID:     entityID,
		ActivityType: typ,
		Summary:      summary,
		CreatedAt:    time.Now(),
	}
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			r.warn("activity details not encodable", typ, entityID, err)
		} else {
			entry.Details = string(data)
		}
	}
	if err := r.log.Log(ctx, tenantID, entry); err != nil {
		r.warn("failed to record activity", typ, entityID, err)
	}
}

func (r *Recorder) warn(msg string, typ ActivityType, entityID string, err error) {
	if r.logger != nil {
		r.logger.Warn(msg, "type", typ, "entity_id", entityID, "error", err)
	}
}
