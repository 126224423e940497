package twitterapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/auth"
)

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

func newTestClient(h http.Handler) *Client {
	return &Client{
		baseURL: "http://example.test",
		http:    &http.Client{Transport: handlerRoundTripper{h: h}},
	}
}

// page returns a search response with n tweets numbered from start.
func page(start, n int, next string) map[string]any {
	data := make([]map[string]any, 0, n)
	users := make([]map[string]any, 0, n)
	for i := start; i < start+n; i++ {
		id := fmt.Sprint(i)
		data = append(data, map[string]any{
			"id":             id,
			"text":           "tweet " + id,
			"author_id":      "u" + id,
			"created_at":     "2024-10-10T12:00:00.000Z",
			"public_metrics": map[string]any{"reply_count": i},
		})
		users = append(users, map[string]any{"id": "u" + id, "username": "user" + id})
	}
	meta := map[string]any{"result_count": n}
	if next != "" {
		meta["next_token"] = next
	}
	return map[string]any{"data": data, "includes": map[string]any{"users": users}, "meta": meta}
}

func TestFetch_PaginatesAndMaps(t *testing.T) {
	var calls []string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != searchPath {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer typed" {
			t.Fatalf("unexpected auth header %q", got)
		}
		q := r.URL.Query()
		if q.Get("query") != "golang -is:retweet lang:en" {
			t.Fatalf("unexpected query %q", q.Get("query"))
		}
		if !strings.Contains(q.Get("tweet.fields"), "created_at") || q.Get("expansions") != "author_id" {
			t.Fatalf("missing fields: %v", q)
		}
		calls = append(calls, q.Get("max_results")+"/"+q.Get("next_token"))
		switch q.Get("next_token") {
		case "":
			_ = json.NewEncoder(w).Encode(page(0, 100, "p2"))
		case "p2":
			_ = json.NewEncoder(w).Encode(page(100, 100, "p3"))
		default:
			_ = json.NewEncoder(w).Encode(page(200, 50, ""))
		}
	})

	f := NewFetcher(newTestClient(h), "en")
	posts, err := f.Fetch(context.Background(), domain.SearchRequest{Term: "golang", Count: 150, Credential: "typed"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(posts) != 150 {
		t.Fatalf("expected 150 posts, got %d", len(posts))
	}
	want := []string{"100/", "50/p2"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected paging %v want %v", calls, want)
	}
	p := posts[101]
	if p.Text != "tweet 101" || p.Username != "user101" || p.AuthorID != "u101" || p.ReplyCount != 101 {
		t.Fatalf("unexpected mapping: %+v", p)
	}
	if p.CreatedAt.Year() != 2024 {
		t.Fatalf("created_at not parsed: %v", p.CreatedAt)
	}
}

func TestFetch_StopsWhenResultsRunOut(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(page(0, 30, ""))
	})
	f := NewFetcher(newTestClient(h), "en")
	posts, err := f.Fetch(context.Background(), domain.SearchRequest{Term: "x", Count: 500, Credential: "t"})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(posts) != 30 {
		t.Fatalf("expected 30 posts, got %d", len(posts))
	}
}

func TestFetch_EmptyResultIsNoData(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta":{"result_count":0}}`))
	})
	f := NewFetcher(newTestClient(h), "en")
	_, err := f.Fetch(context.Background(), domain.SearchRequest{Term: "x", Count: 100, Credential: "t"})
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestFetch_UnauthorizedAndFallback(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"title":"Unauthorized"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(page(0, 10, ""))
	})

	f := NewFetcher(newTestClient(h), "en", auth.StaticToken("good"))
	if f.RequiresCredential() {
		t.Fatalf("fallback should make credential optional")
	}
	if _, err := f.Fetch(context.Background(), domain.SearchRequest{Term: "x", Count: 100}); err != nil {
		t.Fatalf("fallback token should succeed: %v", err)
	}

	_, err := f.Fetch(context.Background(), domain.SearchRequest{Term: "x", Count: 100, Credential: "bad"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected APIError with 401, got %v", err)
	}
}

func TestAPIErrorPropagation_ContainsPathAndStatus(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"title":"Too Many Requests"}`))
	})
	f := NewFetcher(newTestClient(h), "")
	_, err := f.Fetch(context.Background(), domain.SearchRequest{Term: "x", Count: 100, Credential: "t"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), searchPath) || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected path and status in wrapped error, got %v", err)
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("429 must not be reported as unauthorized")
	}
}

func TestQuery(t *testing.T) {
	if got := NewFetcher(nil, "").Query("  go  "); got != "go -is:retweet" {
		t.Fatalf("unexpected query %q", got)
	}
}
