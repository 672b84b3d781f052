package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeConstituencyCreated  ActivityType = "constituency_created"
	TypeGrievanceSubmitted   ActivityType = "grievance_submitted"
	TypeGrievanceTransition  ActivityType = "grievance_transition"
	TypeProjectCreated       ActivityType = "project_created"
	TypeExpenseRecorded      ActivityType = "expense_recorded"
	TypeProjectStatusChanged ActivityType = "project_status_changed"
	TypePollCreated          ActivityType = "poll_created"
	TypeVoteCast             ActivityType = "vote_cast"
	TypeUserRegistered       ActivityType = "user_registered"
)

// Entity types referenced by activity entries.
const (
	EntityConstituency = "constituency"
	EntityGrievance    = "grievance"
	EntityProject      = "project"
	EntityPoll         = "poll"
	EntityUser         = "user"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	EntityType   string       `json:"entity_type"`
	EntityID     string       `json:"entity_id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
