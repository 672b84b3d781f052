package mcp

import (
	"time"

	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/table"
)

type QueryTableParams struct {
	Table string `json:"table"`
	table.State
}

type IDParams struct {
	ID string `json:"id"`
}

type CreateConstituencyParams = constituency.CreateRequest

type SubmitGrievanceParams = grievance.SubmitRequest

type TransitionGrievanceParams = grievance.TransitionRequest

type SearchGrievancesParams struct {
	Query    string             `json:"query"`
	Statuses []grievance.Status `json:"statuses,omitempty"`
	Limit    int                `json:"limit,omitempty"`
	Offset   int                `json:"offset,omitempty"`
}

type StatsParams struct {
	ConstituencyID string `json:"constituency_id,omitempty"`
}

type CreateProjectParams struct {
	ConstituencyID string            `json:"constituency_id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Budget         int64             `json:"budget"`
	Status         devproject.Status `json:"status,omitempty"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
}

type RecordExpenseParams struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type UpdateProjectStatusParams struct {
	ID     string            `json:"id"`
	Status devproject.Status `json:"status"`
}

type CreatePollParams struct {
	ConstituencyID string   `json:"constituency_id,omitempty"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	StartsAt       string   `json:"starts_at"`
	EndsAt         string   `json:"ends_at"`
}

type VotePollParams struct {
	ID     string `json:"id"`
	Option int    `json:"option"`
}

type RegisterUserParams = user.RegisterRequest

type AuthenticateUserParams struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type GetRecentActivityParams struct {
	EntityType string `json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	Type       string `json:"type,omitempty"`
	Since      string `json:"since,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

type ActivityEntryResponse struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       string    `json:"type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details,omitempty"`
}

type ListTablesResponse struct {
	Tables []dashboard.TableInfo `json:"tables"`
}
