package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/tweetsentiment/app"
	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/config"
	"github.com/CrestNiraj12/tweetsentiment/infra/harvest"
	"github.com/CrestNiraj12/tweetsentiment/infra/viewer"
	"github.com/CrestNiraj12/tweetsentiment/tui/common"
	"github.com/CrestNiraj12/tweetsentiment/tui/dashboard"
	"github.com/CrestNiraj12/tweetsentiment/tui/search"
	"github.com/CrestNiraj12/tweetsentiment/viz"
)

// Searcher runs one search. *app.SearchService satisfies it.
type Searcher interface {
	RunSearch(ctx context.Context, req domain.SearchRequest) (app.SearchResult, error)
	RequiresCredential() bool
}

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Search    Searcher
	Charts    *viz.Builder
	Viewer    *viewer.EnvViewer
	OutputDir string
	// StatePath is where the last term and count are remembered. Empty disables it.
	StatePath    string
	InitialTerm  string
	InitialCount int
}

type activeView int

const (
	searchView activeView = iota
	loadingView
	dashboardView
)

// searchDoneMsg carries a finished search and its charts.
type searchDoneMsg struct {
	id     int
	result app.SearchResult
	charts []viz.Charts
	err    error
}

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps      Deps
	active    activeView
	form      search.Model
	dashboard *dashboard.Model
	spinner   spinner.Model
	keys      common.KeyMap

	searchID int
	cancel   context.CancelFunc
	pending  domain.SearchRequest

	status string // Transient status message (e.g. "Scored 1,000 posts")
	errMsg string
	detail string
	width  int
	height int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DA1F2"))

	return App{
		deps:    deps,
		active:  searchView,
		form:    search.New(deps.InitialTerm, deps.InitialCount, deps.Search.RequiresCredential(), false),
		spinner: s,
		keys:    common.DefaultKeyMap(),
	}
}

// Init delegates to the active sub-model.
func (a App) Init() tea.Cmd {
	return a.form.Init()
}

func (a App) runSearch(ctx context.Context, id int, req domain.SearchRequest) tea.Cmd {
	return func() tea.Msg {
		res, err := a.deps.Search.RunSearch(ctx, req)
		if err != nil {
			return searchDoneMsg{id: id, err: err}
		}
		return searchDoneMsg{id: id, result: res, charts: a.deps.Charts.BuildAll(res.Corpus)}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.dashboard != nil {
			d, _ := a.dashboard.Update(msg)
			a.dashboard = &d
		}
		return a, nil

	case tea.KeyMsg:
		// Global key bindings, handled regardless of active view.
		if key.Matches(msg, a.keys.ForceQuit) {
			a.stopSearch()
			return a, tea.Quit
		}
		switch a.active {
		case loadingView:
			if key.Matches(msg, a.keys.Cancel) {
				a.stopSearch()
				a.searchID++
				a.active = searchView
				a.status = "Search cancelled."
				a.form = search.New(a.pending.Term, a.pending.Count, a.deps.Search.RequiresCredential(), a.dashboard != nil)
				return a, a.form.Init()
			}
			return a, nil
		case dashboardView:
			if key.Matches(msg, a.keys.Quit) && !a.dashboard.Filtering() {
				return a, tea.Quit
			}
		}

	case search.SubmitMsg:
		ctx, cancel := context.WithCancel(context.Background())
		a.stopSearch()
		a.cancel = cancel
		a.searchID++
		a.pending = msg.Request
		a.active = loadingView
		a.status, a.errMsg, a.detail = "", "", ""
		return a, tea.Batch(a.spinner.Tick, a.runSearch(ctx, a.searchID, msg.Request))

	case search.CancelMsg:
		if a.dashboard != nil {
			a.active = dashboardView
		}
		return a, nil

	case dashboard.NewSearchMsg:
		term, count := a.deps.InitialTerm, a.deps.InitialCount
		if a.pending.Term != "" {
			term, count = a.pending.Term, a.pending.Count
		}
		a.form = search.New(term, count, a.deps.Search.RequiresCredential(), true)
		a.active = searchView
		a.status = ""
		return a, a.form.Init()

	case searchDoneMsg:
		if msg.id != a.searchID {
			return a, nil
		}
		a.stopSearch()
		return a.finishSearch(msg)

	case spinner.TickMsg:
		if a.active != loadingView {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Delegate to the active sub-model.
	switch a.active {
	case searchView:
		updated, cmd := a.form.Update(msg)
		a.form = updated
		return a, cmd
	case dashboardView:
		updated, cmd := a.dashboard.Update(msg)
		a.dashboard = &updated
		return a, cmd
	}

	return a, nil
}

func (a *App) stopSearch() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a App) finishSearch(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Error("search failed", "term", a.pending.Term, "err", msg.err)
		// A failed search never leaves the previous results on screen.
		a.dashboard = nil
		a.errMsg, a.detail = describeError(msg.err, a.pending.Term)
		a.active = searchView
		a.form = search.New(a.pending.Term, a.pending.Count, a.deps.Search.RequiresCredential(), false)
		return a, a.form.Init()
	}

	res := msg.result
	d := dashboard.New(res.Term, msg.charts, a.deps.Charts.Theme, a.deps.OutputDir, a.deps.Viewer)
	if a.width > 0 {
		d, _ = d.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	a.dashboard = &d
	a.active = dashboardView
	a.errMsg, a.detail = "", ""
	a.status = fmt.Sprintf("Scored %s of %s posts in %s", humanize.Comma(int64(res.Corpus.Len())), humanize.Comma(int64(len(res.Fetched))), res.Elapsed.Round(time.Millisecond))
	if res.Dropped > 0 {
		a.status += fmt.Sprintf(" (%d dropped)", res.Dropped)
	}
	if res.ArchiveErr != nil {
		a.status += " • history not saved: " + res.ArchiveErr.Error()
	}

	if a.deps.StatePath != "" {
		if err := config.SaveUIState(a.deps.StatePath, config.UIState{Term: res.Term, Count: res.Count}); err != nil {
			slog.Warn("saving ui state failed", "err", err)
		}
	}
	return a, nil
}

// describeError turns a search failure into a headline and optional
// diagnostic detail for the search screen.
func describeError(err error, term string) (string, string) {
	var perr *harvest.ProcessError
	switch {
	case errors.As(err, &perr):
		return fmt.Sprintf("Fetching posts failed: the harvester exited with status %d.", perr.ExitCode), tail(perr.Stderr, 8)
	case errors.Is(err, domain.ErrExecutableNotFound):
		return "Post harvester not found. Install Node.js so that npx is on PATH, or set harvest_command.", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return "The access token was rejected. Check it and try again.", ""
	case errors.Is(err, domain.ErrNoData):
		return fmt.Sprintf("No posts found for %q.", term), ""
	case errors.Is(err, domain.ErrModelArtifact):
		return "The sentiment model could not be loaded.", err.Error()
	case errors.Is(err, domain.ErrInvalidRequest):
		return err.Error(), ""
	case errors.Is(err, context.Canceled):
		return "Search cancelled.", ""
	}
	return "Search failed: " + err.Error(), ""
}

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for i, l := range lines {
		lines[i] = common.SanitizeForTerminal(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case searchView:
		s = a.form.View()
		if a.errMsg != "" {
			s += "\n" + common.ErrorStyle.Render(a.errMsg)
			if a.detail != "" {
				s += "\n" + common.DiagnosticStyle.Render(a.detail)
			}
		}
	case loadingView:
		s = common.AppTitleStyle.Render("Stream-search Sentiment Analyzer") + "\n\n" +
			fmt.Sprintf(" %s Fetching and scoring %s posts for %s...", a.spinner.View(),
				humanize.Comma(int64(a.pending.Count)), common.TermStyle.Render(a.pending.Term)) +
			"\n" + common.StatusBarStyle.Render("  esc: cancel • ctrl+c: quit")
	case dashboardView:
		s = a.dashboard.View()
	}

	// Append transient status if present.
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}

	return s
}
