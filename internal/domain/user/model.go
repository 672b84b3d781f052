package user

import "time"

// Role grants access within an MLA office.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleMLAStaff Role = "MLA_STAFF"
	RoleCitizen  Role = "CITIZEN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMLAStaff || r == RoleCitizen
}

// User is a registered account. Aadhaar is always masked outside the
// repository and PasswordHash never leaves the process.
type User struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone"`
	Aadhaar        string    `json:"aadhaar"`
	Role           Role      `json:"role"`
	ConstituencyID string    `json:"constituency_id,omitempty"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
