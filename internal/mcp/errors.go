package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/validate"
)

var errInvalidParams = errors.New("invalid params")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the machine-readable code.
func (e *APIError) ErrorCode() string {
	return e.Code
}

func anyIs(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case anyIs(err, grievance.ErrConstituencyNotFound, devproject.ErrConstituencyNotFound,
		poll.ErrConstituencyNotFound, user.ErrConstituencyNotFound):
		return &APIError{Code: "CONSTITUENCY_NOT_FOUND", Message: "constituency not found", RecoveryHint: "Check constituency_id or query the constituencies table"}
	case anyIs(err, constituency.ErrNotFound, grievance.ErrNotFound, devproject.ErrNotFound,
		poll.ErrNotFound, user.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling"}
	case anyIs(err, constituency.ErrInvalidInput, grievance.ErrInvalidInput, devproject.ErrInvalidInput,
		poll.ErrInvalidInput, user.ErrInvalidInput, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input", Details: validate.Fields(err), RecoveryHint: "Fix the listed fields"}
	case errors.Is(err, errInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check argument types against the tool schema"}
	case anyIs(err, grievance.ErrInvalidTransition, devproject.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Check valid transitions"}
	case errors.Is(err, grievance.ErrMissingResolution):
		return &APIError{Code: "RESOLUTION_REQUIRED", Message: err.Error(), RecoveryHint: "Provide a resolution when resolving or rejecting"}
	case errors.Is(err, grievance.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: err.Error(), RecoveryHint: "Fetch the grievance and retry"}
	case errors.Is(err, devproject.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: err.Error(), RecoveryHint: "Fetch the project and retry"}
	case errors.Is(err, devproject.ErrBudgetExceeded):
		return &APIError{Code: "BUDGET_EXCEEDED", Message: err.Error(), RecoveryHint: "Check budget_summary for the remaining amount"}
	case errors.Is(err, devproject.ErrProjectClosed):
		return &APIError{Code: "PROJECT_CLOSED", Message: err.Error()}
	case errors.Is(err, poll.ErrClosed):
		return &APIError{Code: "POLL_CLOSED", Message: err.Error()}
	case errors.Is(err, poll.ErrInvalidOption):
		return &APIError{Code: "INVALID_OPTION", Message: err.Error(), RecoveryHint: "Options are numbered from 0"}
	case errors.Is(err, user.ErrInvalidCredentials):
		return &APIError{Code: "INVALID_CREDENTIALS", Message: err.Error()}
	case anyIs(err, constituency.ErrDuplicate, user.ErrDuplicate):
		return &APIError{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, dashboard.ErrUnknownTable):
		return &APIError{Code: "UNKNOWN_TABLE", Message: err.Error(), RecoveryHint: "Call list_tables"}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "UNKNOWN_METHOD", Message: err.Error()}
	default:
		return nil
	}
}
