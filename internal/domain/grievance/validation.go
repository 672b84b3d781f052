package grievance

import (
	"strings"

	"github.com/rpggio/mlaconnect/internal/validate"
)

// ValidateSubmitInput validates fields required to submit a grievance.
func ValidateSubmitInput(req SubmitRequest) validate.Errors {
	var errs validate.Errors
	errs.Check(validate.Required(req.ConstituencyID), "constituency_id", "is required")
	errs.Check(validate.Required(req.CitizenName), "citizen_name", "is required")
	if !validate.Required(req.Phone) {
		errs.Add("phone", "is required")
	} else {
		errs.Check(validate.Phone(req.Phone), "phone", "must be a valid 10-digit mobile number")
	}
	errs.Check(validate.Required(req.Category), "category", "is required")
	errs.Check(validate.Required(req.Description), "description", "is required")
	errs.Check(req.Priority == "" || req.Priority.Valid(), "priority", "must be LOW, MEDIUM or HIGH")
	return errs
}

// ValidateTransition validates a requested status transition.
func ValidateTransition(from, to Status, resolution string) error {
	valid := false
	switch from {
	case StatusPending:
		valid = to == StatusInProgress || to == StatusRejected
	case StatusInProgress:
		switch to {
		case StatusResolved, StatusRejected, StatusPending:
			valid = true
		}
	case StatusResolved:
		valid = to == StatusInProgress
	case StatusRejected:
		valid = to == StatusPending
	}

	if !valid {
		return ErrInvalidTransition
	}

	if (to == StatusResolved || to == StatusRejected) && strings.TrimSpace(resolution) == "" {
		return ErrMissingResolution
	}
	return nil
}
