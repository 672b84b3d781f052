package validate

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	for _, ok := range []string{"9876543210", "+919876543210", "09876543210", "98765 43210", "6000000000"} {
		require.True(t, Phone(ok), ok)
	}
	for _, bad := range []string{"", "5876543210", "987654321", "98765432101", "abcdefghij", "+11 9876543210"} {
		require.False(t, Phone(bad), bad)
	}
}

func TestNormalizePhone(t *testing.T) {
	require.Equal(t, "9876543210", NormalizePhone("+91 98765-43210"))
	require.Equal(t, "9876543210", NormalizePhone("919876543210"))
	require.Equal(t, "9876543210", NormalizePhone("09876543210"))
	require.Equal(t, "9876543210", NormalizePhone("9876543210"))
}

func TestAadhaar(t *testing.T) {
	require.True(t, Aadhaar("2345 6789 0123"))
	require.True(t, Aadhaar("987654321098"))
	require.False(t, Aadhaar("1234 5678 9012"), "cannot start with 1")
	require.False(t, Aadhaar("0234 5678 9012"))
	require.False(t, Aadhaar("2345 6789 012"))
	require.False(t, Aadhaar("2345-6789-0123"))
}

func TestMaskAadhaar(t *testing.T) {
	require.Equal(t, "XXXX XXXX 0123", MaskAadhaar("2345 6789 0123"))
	require.Equal(t, "XXX", MaskAadhaar("123"))
}

func TestEmail(t *testing.T) {
	require.True(t, Email("office@mla.example.in"))
	require.False(t, Email("Office <office@mla.example.in>"))
	require.False(t, Email("not-an-email"))
}

func TestDateRange(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, DateRange(start, start.AddDate(0, 1, 0)))
	require.False(t, DateRange(start, start))
	require.False(t, DateRange(start, start.AddDate(0, 0, -1)))
	require.False(t, DateRange(time.Time{}, start))
}

func TestUniqueOptions(t *testing.T) {
	require.Empty(t, UniqueOptions([]string{"Roads", "Water", "Power"}))
	require.Equal(t, "option 3 duplicates option 1", UniqueOptions([]string{"Roads", "Water", " roads "}))
	require.Equal(t, "option 2 is empty", UniqueOptions([]string{"Roads", "  "}))
}

func TestPasswords(t *testing.T) {
	require.True(t, PasswordsMatch("s3cret-pass", "s3cret-pass"))
	require.False(t, PasswordsMatch("s3cret-pass", "s3cret-Pass"))
	require.True(t, MinLength("पासवर्ड१२", 8))
	require.False(t, MinLength("short", 8))
}

func TestErrors(t *testing.T) {
	var errs Errors
	require.NoError(t, errs.Err())

	errs.Check(Required(""), "name", "is required")
	errs.Check(Required("x"), "district", "is required")
	errs.Add("phone", "must be a valid mobile number")
	require.Len(t, errs, 2)

	sentinel := errors.New("invalid input")
	wrapped := fmt.Errorf("%w: %w", sentinel, errs.Err())
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, errs, Fields(wrapped))
	require.Equal(t, "name: is required; phone: must be a valid mobile number", errs.Error())

	require.Nil(t, Fields(sentinel))
	require.Equal(t, Errors{{Field: "x", Message: "y"}}, Fields(FieldError{Field: "x", Message: "y"}))
}
