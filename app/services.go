package app

import (
	"context"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// PostFetcher retrieves posts for a search term from a backend.
type PostFetcher interface {
	// Fetch returns up to req.Count posts matching req.Term.
	Fetch(ctx context.Context, req domain.SearchRequest) ([]domain.Post, error)

	// RequiresCredential reports whether each request must carry a token.
	RequiresCredential() bool
}

// TextCleaner normalizes raw post text. Errors are per post and never fatal.
type TextCleaner interface {
	Clean(raw string) (string, error)
}

// SequenceEncoder maps cleaned texts to fixed-length id sequences.
type SequenceEncoder interface {
	Encode(texts []string) ([][]int, error)
}

// Classifier scores sequences in [0,1]; higher is more positive.
type Classifier interface {
	Predict(ctx context.Context, seqs [][]int) ([]float64, error)
}

// Archiver records completed searches.
type Archiver interface {
	SaveRun(ctx context.Context, run *domain.RunSummary, corpus domain.Corpus) error
}
