package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/repository"
	"github.com/rpggio/mlaconnect/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest input bcrypt hashes.
const MaxPasswordBytes = 72

// Service handles user registration and login.
type Service struct {
	repo     Repository
	activity *activity.Recorder
	logger   *slog.Logger
	cost     int
}

// NewService creates a new user service.
func NewService(repo Repository, recorder *activity.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: recorder, logger: logger, cost: bcrypt.DefaultCost}
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone"`
	Aadhaar         string `json:"aadhaar"`
	Role            Role   `json:"role"`
	ConstituencyID  string `json:"constituency_id,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate checks the form and returns field errors.
func (r RegisterRequest) Validate() validate.Errors {
	var errs validate.Errors
	errs.Check(validate.Required(r.Name), "name", "is required")
	if validate.Required(r.Email) {
		errs.Check(validate.Email(strings.TrimSpace(r.Email)), "email", "must be a valid email address")
	}
	errs.Check(validate.Phone(r.Phone), "phone", "must be a valid 10-digit mobile number")
	errs.Check(validate.Aadhaar(r.Aadhaar), "aadhaar", "must be a 12-digit Aadhaar number")
	errs.Check(r.Role.Valid(), "role", "must be ADMIN, MLA_STAFF or CITIZEN")
	switch {
	case !validate.MinLength(r.Password, MinPasswordLength):
		errs.Add("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case len(r.Password) > MaxPasswordBytes:
		errs.Add("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}
	errs.Check(validate.PasswordsMatch(r.Password, r.ConfirmPassword), "confirm_password", "passwords do not match")
	return errs
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, tenantID string, req RegisterRequest) (*User, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          validate.NormalizePhone(req.Phone),
		Aadhaar:        validate.NormalizeAadhaar(req.Aadhaar),
		Role:           req.Role,
		ConstituencyID: strings.TrimSpace(req.ConstituencyID),
		PasswordHash:   string(hash),
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicate
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, ErrConstituencyNotFound
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.activity.Record(ctx, tenantID, activity.EntityUser, u.ID, activity.TypeUserRegistered,
		fmt.Sprintf("%s registered as %s", u.Name, u.Role), nil)
	return masked(u), nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*User, error) {
	u, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return masked(u), nil
}

// List returns users matching opts.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]User, error) {
	list, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = *masked(&list[i])
	}
	return list, nil
}

// Authenticate checks a phone and password pair.
func (s *Service) Authenticate(ctx context.Context, tenantID, phone, password string) (*User, error) {
	u, err := s.repo.GetByPhone(ctx, tenantID, validate.NormalizePhone(phone))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return masked(u), nil
}

func masked(u *User) *User {
	out := *u
	out.Aadhaar = validate.MaskAadhaar(u.Aadhaar)
	out.PasswordHash = ""
	return &out
}
