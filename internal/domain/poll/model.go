package poll

import "time"

// Option is one answer of a poll with its running vote count.
type Option struct {
	Text  string `json:"text"`
	Votes int64  `json:"votes"`
}

// Poll is a public opinion poll, optionally scoped to a constituency.
type Poll struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	ConstituencyID string    `json:"constituency_id,omitempty"`
	Question       string    `json:"question"`
	Options        []Option  `json:"options"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Open reports whether votes are accepted at t. The window is [StartsAt, EndsAt).
func (p Poll) Open(t time.Time) bool {
	return !t.Before(p.StartsAt) && t.Before(p.EndsAt)
}

// TotalVotes sums votes across options.
func (p Poll) TotalVotes() int64 {
	var total int64
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// OptionResult is the tally of one option.
type OptionResult struct {
	Index   int     `json:"index"`
	Text    string  `json:"text"`
	Votes   int64   `json:"votes"`
	Percent float64 `json:"percent"`
}

// Results is the tally of a poll.
type Results struct {
	PollID   string         `json:"poll_id"`
	Question string         `json:"question"`
	Total    int64          `json:"total"`
	Open     bool           `json:"open"`
	Options  []OptionResult `json:"options"`
}
