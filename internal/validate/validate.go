// Package validate holds the input rules shared by the create and register
// forms: required fields, Indian phone and Aadhaar numbers, passwords, date
// ranges and poll options.
package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var (
	phonePattern   = regexp.MustCompile(`^(?:\+91|91|0)?[6-9]\d{9}$`)
	aadhaarPattern = regexp.MustCompile(`^[2-9]\d{11}$`)
)

// FieldError is a validation failure for one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects field errors in the order they were found.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Add records a failure for field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Check records message for field when ok is false.
func (e *Errors) Check(ok bool, field, message string) {
	if !ok {
		e.Add(field, message)
	}
}

// Err returns nil when nothing was recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Fields returns the field errors carried by err, if any.
func Fields(err error) Errors {
	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}
	var fe FieldError
	if errors.As(err, &fe) {
		return Errors{fe}
	}
	return nil
}

// Required reports whether s has non-space content.
func Required(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NormalizePhone strips spaces, dashes and the country prefix, returning the
// 10-digit number.
func NormalizePhone(s string) string {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(digits, "+91"):
		digits = digits[3:]
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}
	return digits
}

// Phone reports whether s is an Indian mobile number.
func Phone(s string) bool {
	return phonePattern.MatchString(strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s)))
}

// NormalizeAadhaar removes the spaces Aadhaar numbers are usually printed with.
func NormalizeAadhaar(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// Aadhaar reports whether s is a 12-digit Aadhaar number. Numbers never start
// with 0 or 1.
func Aadhaar(s string) bool {
	return aadhaarPattern.MatchString(NormalizeAadhaar(s))
}

// MaskAadhaar hides all but the last four digits.
func MaskAadhaar(s string) string {
	n := NormalizeAadhaar(s)
	if len(n) < 4 {
		return strings.Repeat("X", len(n))
	}
	return "XXXX XXXX " + n[len(n)-4:]
}

// Email reports whether s is a single bare address.
func Email(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == strings.TrimSpace(s)
}

// MinLength reports whether s has at least n runes.
func MinLength(s string, n int) bool {
	return len([]rune(s)) >= n
}

// PasswordsMatch reports whether the confirmation equals the password.
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// DateRange reports whether end is strictly after start. Both must be set.
func DateRange(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && end.After(start)
}

// UniqueOptions checks poll options. It returns a message for the first
// empty or repeated option, compared trimmed and case-insensitively, or "".
func UniqueOptions(options []string) string {
	seen := make(map[string]int, len(options))
	for i, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return fmt.Sprintf("option %d is empty", i+1)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Sprintf("option %d duplicates option %d", i+1, prev+1)
		}
		seen[key] = i
	}
	return ""
}
