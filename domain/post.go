package domain

import "time"

// Post is one harvested social-media message. Immutable once fetched.
type Post struct {
	CreatedAt  time.Time
	AuthorID   string
	Username   string
	Text       string
	ReplyCount int
}

// CleanedPost is a Post with its normalized, lemmatized text. Posts whose
// cleaning failed never become a CleanedPost.
type CleanedPost struct {
	Post
	Cleaned string
}

// ScoredPost is a CleanedPost run through the classifier.
type ScoredPost struct {
	CleanedPost
	Score float64
	Label Label
}
