package devproject

// ListOptions provides filtering options for listing projects.
type ListOptions struct {
	ConstituencyID string
	Status         Status
	Category       string
}
