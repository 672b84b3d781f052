package poll

// ListOptions provides filtering options for listing polls.
type ListOptions struct {
	ConstituencyID string
}
