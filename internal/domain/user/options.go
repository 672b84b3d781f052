package user

// ListOptions provides filtering options for listing users.
type ListOptions struct {
	Role           Role
	ConstituencyID string
}
