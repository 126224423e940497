package domain

// View selects a subset of a Corpus by label.
type View int

const (
	ViewAll View = iota
	ViewPositive
	ViewNegative
)

// Views lists the dashboard tabs in display order.
var Views = []View{ViewAll, ViewPositive, ViewNegative}

func (v View) String() string {
	switch v {
	case ViewPositive:
		return "Positive"
	case ViewNegative:
		return "Negative"
	default:
		return "All"
	}
}

// Corpus is the scored posts of one search. It is rebuilt on every search
// and never mutated by the views derived from it.
type Corpus struct {
	Posts []ScoredPost
}

// View returns a new Corpus holding only the posts visible in v.
func (c Corpus) View(v View) Corpus {
	if v == ViewAll {
		out := make([]ScoredPost, len(c.Posts))
		copy(out, c.Posts)
		return Corpus{Posts: out}
	}
	want := Positive
	if v == ViewNegative {
		want = Negative
	}
	out := make([]ScoredPost, 0, len(c.Posts))
	for _, p := range c.Posts {
		if p.Label == want {
			out = append(out, p)
		}
	}
	return Corpus{Posts: out}
}

// Counts returns the number of Positive and Negative posts.
func (c Corpus) Counts() (positive, negative int) {
	for _, p := range c.Posts {
		if p.Label == Positive {
			positive++
		} else {
			negative++
		}
	}
	return positive, negative
}

// Texts returns the cleaned text of every post in order.
func (c Corpus) Texts() []string {
	out := make([]string, len(c.Posts))
	for i, p := range c.Posts {
		out[i] = p.Cleaned
	}
	return out
}

// Len returns the number of posts.
func (c Corpus) Len() int {
	return len(c.Posts)
}
