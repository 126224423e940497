package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// SearchResult is the outcome of one search.
type SearchResult struct {
	RunID   string
	Term    string
	Count   int
	Fetched []domain.Post
	Corpus  domain.Corpus
	// Dropped counts posts whose text could not be cleaned or cleaned to nothing.
	Dropped int
	// ArchiveErr is set when the run could not be archived. It does not
	// invalidate the result.
	ArchiveErr error
	Elapsed    time.Duration
}

// SearchService runs the fetch, clean, encode and classify pipeline.
type SearchService struct {
	fetcher  PostFetcher
	cleaner  TextCleaner
	encoder  SequenceEncoder
	model    Classifier
	archiver Archiver
	now      func() time.Time
}

// NewSearchService wires the pipeline. archiver may be nil.
func NewSearchService(f PostFetcher, c TextCleaner, e SequenceEncoder, m Classifier, a Archiver) *SearchService {
	return &SearchService{fetcher: f, cleaner: c, encoder: e, model: m, archiver: a, now: time.Now}
}

// RequiresCredential reports whether searches must carry an access token.
func (s *SearchService) RequiresCredential() bool {
	return s.fetcher.RequiresCredential()
}

// RunSearch fetches req.Count posts for req.Term and scores them. Every
// call builds a fresh corpus; nothing is shared between calls.
func (s *SearchService) RunSearch(ctx context.Context, req domain.SearchRequest) (SearchResult, error) {
	req.Term = strings.TrimSpace(req.Term)
	if err := req.Validate(s.fetcher.RequiresCredential()); err != nil {
		return SearchResult{}, err
	}
	start := s.now()
	slog.Info("search started", "term", req.Term, "count", req.Count)

	posts, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("fetching posts: %w", err)
	}

	kept := make([]domain.CleanedPost, 0, len(posts))
	for i, p := range posts {
		cleaned, err := s.cleaner.Clean(p.Text)
		if err != nil {
			slog.Debug("dropping post", "index", i, "err", err)
			continue
		}
		if cleaned == "" {
			continue
		}
		kept = append(kept, domain.CleanedPost{Post: p, Cleaned: cleaned})
	}

	res := SearchResult{
		Term:    req.Term,
		Count:   req.Count,
		Fetched: posts,
		Dropped: len(posts) - len(kept),
	}

	if len(kept) > 0 {
		texts := make([]string, len(kept))
		for i, p := range kept {
			texts[i] = p.Cleaned
		}
		seqs, err := s.encoder.Encode(texts)
		if err != nil {
			return SearchResult{}, fmt.Errorf("encoding posts: %w", err)
		}
		scores, err := s.model.Predict(ctx, seqs)
		if err != nil {
			return SearchResult{}, fmt.Errorf("classifying posts: %w", err)
		}
		if len(scores) != len(kept) {
			return SearchResult{}, fmt.Errorf("%w: classifier returned %d scores for %d posts", domain.ErrModelArtifact, len(scores), len(kept))
		}
		res.Corpus.Posts = make([]domain.ScoredPost, len(kept))
		for i, p := range kept {
			res.Corpus.Posts[i] = domain.ScoredPost{CleanedPost: p, Score: scores[i], Label: domain.LabelFor(scores[i])}
		}
	}

	pos, neg := res.Corpus.Counts()
	res.Elapsed = s.now().Sub(start)
	slog.Info("search finished", "term", req.Term, "fetched", len(posts), "dropped", res.Dropped,
		"positive", pos, "negative", neg, "elapsed", res.Elapsed)

	if s.archiver != nil {
		run := &domain.RunSummary{Term: req.Term, Requested: req.Count, Fetched: len(posts), Dropped: res.Dropped}
		if err := s.archiver.SaveRun(ctx, run, res.Corpus); err != nil {
			slog.Warn("archiving run failed", "err", err)
			res.ArchiveErr = err
		} else {
			res.RunID = run.ID
		}
	}
	return res, nil
}
