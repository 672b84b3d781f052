package grievance

// ListOptions provides filtering options for listing grievances.
type ListOptions struct {
	ConstituencyID string
	Statuses       []Status
	Category       string
	Limit          int
	Offset         int
}

// SearchOptions provides filtering options for search.
type SearchOptions struct {
	Statuses []Status
	Limit    int
	Offset   int
}

// SearchResult is a grievance matched by full-text search.
type SearchResult struct {
	Grievance
	Snippet string  `json:"snippet"`
	Rank    float64 `json:"rank"`
}
