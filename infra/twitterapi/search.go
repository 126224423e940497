// Package twitterapi fetches posts from the Twitter API v2 recent-search
// endpoint. It is the alternative to running the harvester CLI.
package twitterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/auth"
)

const (
	searchPath = "/2/tweets/search/recent"
	minPage    = 10
	maxPage    = 100
)

// Fetcher implements app.PostFetcher over recent search.
type Fetcher struct {
	client   *Client
	language string
	fallback []auth.TokenProvider
}

// NewFetcher creates a Fetcher. fallback providers are used when a
// search carries no credential of its own.
func NewFetcher(client *Client, language string, fallback ...auth.TokenProvider) *Fetcher {
	return &Fetcher{client: client, language: language, fallback: fallback}
}

// RequiresCredential reports whether a search must carry its own token.
func (f *Fetcher) RequiresCredential() bool {
	return len(f.fallback) == 0
}

type searchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		AuthorID      string `json:"author_id"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			ReplyCount int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

// Query builds the search query: the term without retweets, filtered by language.
func (f *Fetcher) Query(term string) string {
	q := strings.TrimSpace(term) + " -is:retweet"
	if f.language != "" {
		q += " lang:" + f.language
	}
	return q
}

// Fetch pages through recent search until req.Count posts are collected
// or the results run out.
func (f *Fetcher) Fetch(ctx context.Context, req domain.SearchRequest) ([]domain.Post, error) {
	client := f.client.WithToken(auth.ForRequest(req.Credential, f.fallback...))
	query := f.Query(req.Term)

	posts := make([]domain.Post, 0, req.Count)
	next := ""
	for len(posts) < req.Count {
		page := min(max(req.Count-len(posts), minPage), maxPage)
		params := url.Values{}
		params.Set("query", query)
		params.Set("max_results", strconv.Itoa(page))
		params.Set("tweet.fields", "created_at,author_id,text,public_metrics")
		params.Set("expansions", "author_id")
		params.Set("user.fields", "username")
		if next != "" {
			params.Set("next_token", next)
		}

		data, err := client.Get(ctx, searchPath+"?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("searching posts: %w", err)
		}
		var resp searchResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("parsing search response: %w", err)
		}

		users := make(map[string]string, len(resp.Includes.Users))
		for _, u := range resp.Includes.Users {
			users[u.ID] = u.Username
		}
		for _, d := range resp.Data {
			createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
			posts = append(posts, domain.Post{
				CreatedAt:  createdAt,
				AuthorID:   d.AuthorID,
				Username:   users[d.AuthorID],
				Text:       d.Text,
				ReplyCount: d.PublicMetrics.ReplyCount,
			})
		}
		slog.Debug("search page", "results", len(resp.Data), "total", len(posts))

		next = resp.Meta.NextToken
		if next == "" || len(resp.Data) == 0 {
			break
		}
	}
	if len(posts) > req.Count {
		posts = posts[:req.Count]
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: search returned no posts", domain.ErrNoData)
	}
	slog.Info("api search finished", "posts", len(posts))
	return posts, nil
}
