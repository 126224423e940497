// Package harvest fetches posts by running the tweet-harvest CLI and
// reading the newest CSV file it leaves in its output directory.
package harvest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/auth"
)

// ProcessError is returned when the harvester exits with a non-zero status.
type ProcessError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + lastLine(s)
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return domain.ErrExternalProcess }

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// waitDelay bounds how long a cancelled harvest may hold its output pipes.
const waitDelay = 3 * time.Second

// Fetcher runs the harvester for each search.
type Fetcher struct {
	argv     []string
	dir      string
	workDir  string
	tab      string
	language string
	tokens   []auth.TokenProvider
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithOutputDir sets the directory the harvester writes CSV files to.
// Relative paths are resolved against the working directory.
func WithOutputDir(dir string) Option {
	return func(f *Fetcher) { f.dir = dir }
}

// WithWorkDir runs the harvester in dir.
func WithWorkDir(dir string) Option {
	return func(f *Fetcher) { f.workDir = dir }
}

// WithTab selects the result tab (LATEST or TOP).
func WithTab(tab string) Option {
	return func(f *Fetcher) { f.tab = tab }
}

// WithLanguage sets the language filter appended to the search term.
func WithLanguage(lang string) Option {
	return func(f *Fetcher) { f.language = lang }
}

// WithFallbackToken supplies a token used when the search form has none.
func WithFallbackToken(tp auth.TokenProvider) Option {
	return func(f *Fetcher) { f.tokens = append(f.tokens, tp) }
}

// New creates a Fetcher running argv, e.g. ["npx", "tweet-harvest@2.6.0"].
func New(argv []string, opts ...Option) *Fetcher {
	f := &Fetcher{
		argv:     argv,
		dir:      "tweets-data",
		tab:      "LATEST",
		language: "en",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RequiresCredential reports whether a search must carry its own token.
func (f *Fetcher) RequiresCredential() bool {
	return len(f.tokens) == 0
}

// Fetch runs the harvester and parses its newest output file.
func (f *Fetcher) Fetch(ctx context.Context, req domain.SearchRequest) ([]domain.Post, error) {
	if len(f.argv) == 0 {
		return nil, fmt.Errorf("%w: no harvester command configured", domain.ErrExecutableNotFound)
	}
	token, err := auth.ForRequest(req.Credential, f.tokens...).AccessToken()
	if err != nil {
		return nil, err
	}

	bin, err := exec.LookPath(f.argv[0])
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (is it installed and on PATH?)", domain.ErrExecutableNotFound, f.argv[0])
		}
		return nil, fmt.Errorf("locating harvester: %w", err)
	}

	keyword := strings.TrimSpace(req.Term)
	if f.language != "" {
		keyword += " lang:" + f.language
	}
	args := append(append([]string{}, f.argv[1:]...),
		"-s", keyword,
		"--tab", f.tab,
		"-l", strconv.Itoa(req.Count),
		"--token", token,
	)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = f.workDir
	// npx leaves node children holding the output pipes after a kill.
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	display := f.displayCommand(args)
	slog.Info("harvest started", "command", display, "limit", req.Count)
	if err := cmd.Run(); err != nil {
		// A killed child also reports an ExitError.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr := &ProcessError{
				Command:  display,
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
			slog.Error("harvest failed", "code", perr.ExitCode, "stderr", perr.Stderr)
			return nil, perr
		}
		return nil, fmt.Errorf("running harvester: %w", err)
	}

	path, err := NewestCSV(f.outputDir())
	if err != nil {
		return nil, err
	}
	posts, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(posts) > req.Count {
		posts = posts[:req.Count]
	}
	slog.Info("harvest finished", "file", path, "rows", len(posts))
	return posts, nil
}

func (f *Fetcher) outputDir() string {
	if filepath.IsAbs(f.dir) || f.workDir == "" {
		return f.dir
	}
	return filepath.Join(f.workDir, f.dir)
}

// displayCommand renders the command line with the token masked.
func (f *Fetcher) displayCommand(args []string) string {
	parts := append([]string{f.argv[0]}, args...)
	out := make([]string, len(parts))
	for i, p := range parts {
		if i > 0 && parts[i-1] == "--token" {
			p = "***"
		}
		out[i] = p
	}
	return strings.Join(out, " ")
}
