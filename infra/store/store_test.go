package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func scored(text string, score float64) domain.ScoredPost {
	return domain.ScoredPost{
		CleanedPost: domain.CleanedPost{
			Post:    domain.Post{Text: text, Username: "u"},
			Cleaned: text,
		},
		Score: score,
		Label: domain.LabelFor(score),
	}
}

func TestOpen_CreatesSchema(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, table := range []string{"runs", "posts"} {
		if _, err := db.conn.ExecContext(ctx, "SELECT 1 FROM "+table+" LIMIT 1"); err != nil {
			t.Errorf("%s table not created: %v", table, err)
		}
	}
}

func TestSaveRun_AssignsIDAndCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	corpus := domain.Corpus{Posts: []domain.ScoredPost{
		scored("good", 0.9), scored("meh", 0.5), scored("bad", 0.1),
	}}
	run := &domain.RunSummary{Term: "golang", Requested: 100, Fetched: 4, Dropped: 1}
	if err := db.SaveRun(ctx, run, corpus); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if _, err := uuid.Parse(run.ID); err != nil {
		t.Fatalf("expected uuid run id, got %q", run.ID)
	}
	if run.Positive != 2 || run.Negative != 1 || run.Scored() != 3 {
		t.Fatalf("unexpected counts: %+v", run)
	}

	n, err := db.PostCount(ctx, run.ID)
	if err != nil {
		t.Fatalf("PostCount failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 archived posts, got %d", n)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, term := range []string{"first", "second", "third"} {
		run := &domain.RunSummary{Term: term, Requested: 100, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := db.SaveRun(ctx, run, domain.Corpus{}); err != nil {
			t.Fatalf("SaveRun %s failed: %v", term, err)
		}
	}

	runs, err := db.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Term != "third" || runs[1].Term != "second" {
		t.Fatalf("unexpected order: %s, %s", runs[0].Term, runs[1].Term)
	}
	if !runs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("created_at round trip: %v", runs[0].CreatedAt)
	}
}
