package constituency

import "time"

// Status marks whether a constituency is currently served by the office.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Constituency is an assembly constituency managed by an MLA office.
type Constituency struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Name       string    `json:"name"`
	District   string    `json:"district"`
	State      string    `json:"state"`
	MLAName    string    `json:"mla_name,omitempty"`
	Population int64     `json:"population"`
	Voters     int64     `json:"voters"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats summarizes the constituencies of a tenant.
type Stats struct {
	Count      int            `json:"count"`
	Active     int            `json:"active"`
	Districts  int            `json:"districts"`
	Population int64          `json:"population"`
	Voters     int64          `json:"voters"`
	ByDistrict map[string]int `json:"by_district"`
}
