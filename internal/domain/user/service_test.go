package user_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/repository"
	"github.com/rpggio/mlaconnect/internal/repository/mocks"
	"github.com/rpggio/mlaconnect/internal/validate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRegister() user.RegisterRequest {
	return user.RegisterRequest{
		Name:            "Anil Deshmukh",
		Email:           "anil@example.in",
		Phone:           "98220 12345",
		Aadhaar:         "2345 6789 0123",
		Role:            user.RoleMLAStaff,
		Password:        "ward-office-7",
		ConfirmPassword: "ward-office-7",
	}
}

func newService(repo *mocks.UserRepository) *user.Service {
	svc := user.NewService(repo, nil, nil)
	svc.UseMinCost()
	return svc
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}

	var stored *user.User
	repo.On("Create", ctx, "tenant1", mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(2).(*user.User)
	}).Return(nil)

	u, err := newService(repo).Register(ctx, "tenant1", validRegister())
	require.NoError(t, err)
	require.Equal(t, "XXXX XXXX 0123", u.Aadhaar)
	require.Empty(t, u.PasswordHash)
	require.Equal(t, "9822012345", u.Phone)

	require.Equal(t, "234567890123", stored.Aadhaar)
	require.NotEqual(t, "ward-office-7", stored.PasswordHash)
	require.NotEmpty(t, stored.PasswordHash)
}

func TestUserService_RegisterValidation(t *testing.T) {
	req := validRegister()
	req.Phone = "12345"
	req.Aadhaar = "1234 5678 9012"
	req.Role = "GUEST"
	req.Password = "short"
	req.ConfirmPassword = "other"
	req.Email = "nope"

	_, err := newService(&mocks.UserRepository{}).Register(context.Background(), "tenant1", req)
	require.ErrorIs(t, err, user.ErrInvalidInput)

	var fields []string
	for _, f := range validate.Fields(err) {
		fields = append(fields, f.Field)
	}
	require.Equal(t, []string{"email", "phone", "aadhaar", "role", "password", "confirm_password"}, fields)
}

func TestUserService_RegisterRejectsOverlongPassword(t *testing.T) {
	req := validRegister()
	req.Password = strings.Repeat("ward-7-", 12)
	req.ConfirmPassword = req.Password

	_, err := newService(&mocks.UserRepository{}).Register(context.Background(), "tenant1", req)
	require.ErrorIs(t, err, user.ErrInvalidInput)
	require.Equal(t, validate.Errors{{Field: "password", Message: "must be at most 72 bytes"}}, validate.Fields(err))

	req.Password = strings.Repeat("x", user.MaxPasswordBytes)
	req.ConfirmPassword = req.Password
	require.Empty(t, req.Validate())
}

func TestUserService_RegisterDuplicatePhone(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, "tenant1", mock.Anything).Return(repository.ErrDuplicate)

	_, err := newService(repo).Register(ctx, "tenant1", validRegister())
	require.ErrorIs(t, err, user.ErrDuplicate)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}

	var stored *user.User
	repo.On("Create", ctx, "tenant1", mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(2).(*user.User)
	}).Return(nil)

	svc := newService(repo)
	_, err := svc.Register(ctx, "tenant1", validRegister())
	require.NoError(t, err)

	repo.On("GetByPhone", ctx, "tenant1", "9822012345").Return(stored, nil)
	repo.On("GetByPhone", ctx, "tenant1", "9000000000").Return(nil, repository.ErrNotFound)

	u, err := svc.Authenticate(ctx, "tenant1", "+91 98220 12345", "ward-office-7")
	require.NoError(t, err)
	require.Equal(t, "XXXX XXXX 0123", u.Aadhaar)

	_, err = svc.Authenticate(ctx, "tenant1", "9822012345", "wrong-password")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "tenant1", "9000000000", "ward-office-7")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_ListMasks(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("List", ctx, "tenant1", user.ListOptions{}).Return([]user.User{{ID: "u1", Aadhaar: "234567890123", PasswordHash: "x"}}, nil)

	list, err := newService(repo).List(ctx, "tenant1", user.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, "XXXX XXXX 0123", list[0].Aadhaar)
	require.Empty(t, list[0].PasswordHash)
}
