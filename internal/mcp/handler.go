package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/validate"
)

// ErrUnknownMethod indicates a method no tool serves.
var ErrUnknownMethod = errors.New("unknown method")

// Handler dispatches MCP commands.
type Handler struct {
	tables         TableService
	constituencies ConstituencyService
	grievances     GrievanceService
	projects       ProjectService
	polls          PollService
	users          UserService
	activity       ActivityService
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services) *Handler {
	return &Handler{
		tables:         svc.Tables,
		constituencies: svc.Constituencies,
		grievances:     svc.Grievances,
		projects:       svc.Projects,
		polls:          svc.Polls,
		users:          svc.Users,
		activity:       svc.Activity,
	}
}

// Handle dispatches MCP requests to domain services. Domain failures are
// returned as *APIError.
func (h *Handler) Handle(ctx context.Context, tenantID, _ string, method string, params json.RawMessage) (any, error) {
	result, err := h.dispatch(ctx, tenantID, method, params)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_tables":
		return ListTablesResponse{Tables: h.tables.Tables()}, nil
	case "query_table":
		var req QueryTableParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.tables.Query(ctx, tenantID, req.Table, req.State)

	case "create_constituency":
		var req CreateConstituencyParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.constituencies.Create(ctx, tenantID, req)
	case "get_constituency":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.constituencies.Get(ctx, tenantID, req.ID)
	case "constituency_stats":
		return h.constituencies.Stats(ctx, tenantID)

	case "submit_grievance":
		var req SubmitGrievanceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.grievances.Submit(ctx, tenantID, req)
	case "get_grievance":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.grievances.Get(ctx, tenantID, req.ID)
	case "transition_grievance":
		var req TransitionGrievanceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.grievances.Transition(ctx, tenantID, req)
	case "search_grievances":
		var req SearchGrievancesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.grievances.Search(ctx, tenantID, req.Query, grievance.SearchOptions{
			Statuses: req.Statuses,
			Limit:    req.Limit,
			Offset:   req.Offset,
		})
	case "grievance_stats":
		var req StatsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.grievances.Stats(ctx, tenantID, req.ConstituencyID)

	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		var errs validate.Errors
		start := parseDate(req.StartDate, "start_date", &errs)
		end := parseDate(req.EndDate, "end_date", &errs)
		if err := errs.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", devproject.ErrInvalidInput, err)
		}
		return h.projects.Create(ctx, tenantID, devproject.CreateRequest{
			ConstituencyID: req.ConstituencyID,
			Name:           req.Name,
			Category:       req.Category,
			Budget:         req.Budget,
			Status:         req.Status,
			StartDate:      start,
			EndDate:        end,
		})
	case "get_project":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.projects.Get(ctx, tenantID, req.ID)
	case "record_expense":
		var req RecordExpenseParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.projects.RecordExpense(ctx, tenantID, req.ID, req.Amount, req.Note)
	case "update_project_status":
		var req UpdateProjectStatusParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.projects.UpdateStatus(ctx, tenantID, req.ID, req.Status)
	case "budget_summary":
		var req StatsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.projects.BudgetSummary(ctx, tenantID, req.ConstituencyID)

	case "create_poll":
		var req CreatePollParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		var errs validate.Errors
		starts := parseDate(req.StartsAt, "starts_at", &errs)
		ends := parseDate(req.EndsAt, "ends_at", &errs)
		if err := errs.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", poll.ErrInvalidInput, err)
		}
		return h.polls.Create(ctx, tenantID, poll.CreateRequest{
			ConstituencyID: req.ConstituencyID,
			Question:       req.Question,
			Options:        req.Options,
			StartsAt:       starts,
			EndsAt:         ends,
		})
	case "vote_poll":
		var req VotePollParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.polls.Vote(ctx, tenantID, req.ID, req.Option)
	case "poll_results":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.polls.Results(ctx, tenantID, req.ID)

	case "register_user":
		var req RegisterUserParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.users.Register(ctx, tenantID, req)
	case "authenticate_user":
		var req AuthenticateUserParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.users.Authenticate(ctx, tenantID, req.Phone, req.Password)

	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListOptions{
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			Limit:      req.Limit,
			Offset:     req.Offset,
		}
		for _, typ := range strings.Split(req.Type, ",") {
			if typ = strings.TrimSpace(typ); typ != "" {
				opts.Types = append(opts.Types, activity.ActivityType(typ))
			}
		}
		if req.Since != "" {
			var errs validate.Errors
			opts.Since = parseDate(req.Since, "since", &errs)
			if err := errs.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", activity.ErrInvalidInput, err)
			}
		}
		entries, err := h.activity.GetRecentActivity(ctx, tenantID, opts)
		if err != nil {
			return nil, err
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp:  entry.CreatedAt,
				Type:       string(entry.ActivityType),
				EntityType: entry.EntityType,
				EntityID:   entry.EntityID,
				Summary:    entry.Summary,
				Details:    entry.Details,
			})
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %w", errInvalidParams, err)
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps or plain dates. Empty input yields the
// zero time and is left to the domain validation.
func parseDate(s, field string, errs *validate.Errors) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		errs.Add(field, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
		return time.Time{}
	}
	return t
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
