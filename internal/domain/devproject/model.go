package devproject

import "time"

// Status is the execution state of a development project.
type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusStalled   Status = "STALLED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusOngoing, StatusCompleted, StatusStalled:
		return true
	}
	return false
}

// Project is a development work funded from the constituency budget.
// Amounts are whole rupees.
type Project struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	ConstituencyID string    `json:"constituency_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Budget         int64     `json:"budget"`
	Spent          int64     `json:"spent"`
	Status         Status    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// Remaining returns the unspent budget.
func (p Project) Remaining() int64 {
	return p.Budget - p.Spent
}

// Utilization returns the spent share of the budget as a percentage.
func (p Project) Utilization() float64 {
	if p.Budget <= 0 {
		return 0
	}
	return float64(p.Spent) * 100 / float64(p.Budget)
}

// BudgetSummary aggregates budgets across projects.
type BudgetSummary struct {
	ConstituencyID string         `json:"constituency_id,omitempty"`
	Projects       int            `json:"projects"`
	Allocated      int64          `json:"allocated"`
	Spent          int64          `json:"spent"`
	Remaining      int64          `json:"remaining"`
	Utilization    float64        `json:"utilization_percent"`
	ByStatus       map[Status]int `json:"by_status"`
}
