package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CrestNiraj12/tweetsentiment/app"
	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/config"
	"github.com/CrestNiraj12/tweetsentiment/infra/harvest"
	"github.com/CrestNiraj12/tweetsentiment/infra/twitterapi"
	"github.com/CrestNiraj12/tweetsentiment/viz"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		mode  cliMode
		term  string
		count int
		limit int
		msg   string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus"},
		{name: "invalid flags", args: []string{"--bogus", "--pogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus --pogus"},
		{name: "too many args", args: []string{"--version", "extra"}, mode: cliVersion},
		{name: "report term", args: []string{"report", "golang"}, mode: cliReport, term: "golang"},
		{name: "report term count", args: []string{"report", "golang", "500"}, mode: cliReport, term: "golang", count: 500},
		{name: "report missing term", args: []string{"report"}, mode: cliInvalid},
		{name: "report blank term", args: []string{"report", "  "}, mode: cliInvalid},
		{name: "report count too low", args: []string{"report", "golang", "99"}, mode: cliInvalid},
		{name: "report count not a number", args: []string{"report", "golang", "many"}, mode: cliInvalid},
		{name: "history default", args: []string{"history"}, mode: cliHistory, limit: defaultHistoryLimit},
		{name: "history limit", args: []string{"history", "5"}, mode: cliHistory, limit: 5},
		{name: "history bad limit", args: []string{"history", "0"}, mode: cliInvalid},
		{name: "history extra", args: []string{"history", "5", "6"}, mode: cliInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseCLIArgs(tc.args)
			if got.mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", got.mode, tc.mode)
			}
			if tc.msg != "" && got.msg != tc.msg {
				t.Fatalf("msg mismatch: got %q want %q", got.msg, tc.msg)
			}
			if got.term != tc.term || got.count != tc.count || got.limit != tc.limit {
				t.Fatalf("args mismatch: got %+v", got)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	settings := map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2026-01-02T03:04:05Z"}

	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", settings)
	if v != "v1.2.3" || c != "0123456789ab" || d != "2026-01-02T03:04:05Z" {
		t.Fatalf("got %s %s %s", v, c, d)
	}

	v, c, d = resolveVersionInfo("v9", "abc", "today", "(devel)", settings)
	if v != "v9" || c != "abc" || d != "today" {
		t.Fatalf("ldflags values must win, got %s %s %s", v, c, d)
	}
}

func TestNewFetcher_SelectsBackend(t *testing.T) {
	t.Setenv(tokenEnv, "")
	cfg := config.Config{
		FetchBackend:   config.BackendHarvest,
		HarvestCommand: "npx tweet-harvest@2.6.0",
		TokenPath:      filepath.Join(t.TempDir(), "missing"),
		APIBaseURL:     "https://api.twitter.com",
		Language:       "en",
	}
	f := newFetcher(cfg)
	if _, ok := f.(*harvest.Fetcher); !ok {
		t.Fatalf("harvest backend built %T", f)
	}
	if !f.RequiresCredential() {
		t.Fatal("no token file or env: credential must be required")
	}

	cfg.FetchBackend = config.BackendAPI
	t.Setenv(tokenEnv, "from-env")
	f = newFetcher(cfg)
	if _, ok := f.(*twitterapi.Fetcher); !ok {
		t.Fatalf("api backend built %T", f)
	}
	if f.RequiresCredential() {
		t.Fatal("env token should make the credential optional")
	}
}

func TestWriteReport(t *testing.T) {
	post := func(text string, l domain.Label) domain.ScoredPost {
		return domain.ScoredPost{CleanedPost: domain.CleanedPost{Cleaned: text}, Label: l}
	}
	res := app.SearchResult{
		Term:    "golang",
		Fetched: make([]domain.Post, 4),
		Dropped: 1,
		Corpus: domain.Corpus{Posts: []domain.ScoredPost{
			post("golang release great", domain.Positive),
			post("golang release slow", domain.Positive),
			post("compile error", domain.Negative),
		}},
		ArchiveErr: errors.New("disk full"),
	}
	ch := viz.NewBuilder(viz.DefaultTheme(), nil, nil).Build(res.Corpus, domain.ViewAll)

	var buf bytes.Buffer
	writeReport(&buf, res, ch)
	out := buf.String()
	for _, want := range []string{
		`Sentiment for "golang": 3 of 4 posts scored (1 dropped)`,
		"Positive",
		"66.7%",
		"Top 10 Occurring Words",
		"Top 10 Occurring Bigrams",
		"not archived: disk full",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Positive") > strings.Index(out, "Negative") {
		t.Fatal("largest slice must be listed first")
	}
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	writeHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No searches") {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	writeHistory(&buf, []domain.RunSummary{{
		ID: "run-1", Term: "golang", Positive: 1200, Negative: 3, CreatedAt: time.Now().Add(-time.Hour),
	}})
	out := buf.String()
	for _, want := range []string{"1 hour ago", `"golang"`, "1,203", "1,200", "run-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history missing %q: %s", want, out)
		}
	}
}
