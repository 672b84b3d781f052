package activity

import "time"

const (
	// DefaultListLimit applies when ListOptions.Limit is unset.
	DefaultListLimit = 50
	// MaxListLimit caps a single List call.
	MaxListLimit = 500
)

// ListOptions narrows an activity listing. Zero values match everything.
type ListOptions struct {
	EntityType string
	EntityID   string
	// Types matches any of the listed activity types.
	Types  []ActivityType
	Since  time.Time
	Limit  int
	Offset int
}

func (o ListOptions) withDefaults() ListOptions {
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultListLimit
	case o.Limit > MaxListLimit:
		o.Limit = MaxListLimit
	}
	o.Offset = max(o.Offset, 0)
	return o
}
