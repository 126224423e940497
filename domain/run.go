package domain

import "time"

// RunSummary records one completed search in the history archive.
type RunSummary struct {
	ID        string
	Term      string
	Requested int
	Fetched   int
	Dropped   int
	Positive  int
	Negative  int
	CreatedAt time.Time
}

// Scored is the number of posts that reached the classifier.
func (r RunSummary) Scored() int {
	return r.Positive + r.Negative
}
