package constituency

// ListOptions narrows a constituency listing. Empty fields match everything.
type ListOptions struct {
	District string
	Status   Status
}
