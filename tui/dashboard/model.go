package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/infra/viewer"
	"github.com/CrestNiraj12/tweetsentiment/tui/common"
	"github.com/CrestNiraj12/tweetsentiment/viz"
)

const (
	defaultWidth  = 100
	defaultHeight = 40
	tableRows     = 8
)

// --- Messages ---

// ExportedMsg is sent after a word cloud export attempt.
type ExportedMsg struct {
	Path string
	Err  error
}

// viewerClosedMsg is sent when the external image viewer returns.
type viewerClosedMsg struct {
	path string
	err  error
}

// NewSearchMsg asks the root model to show the search form.
type NewSearchMsg struct{}

// --- Model ---

// Model is the results dashboard of one search: a tab per view with the
// sentiment pie, n-gram bars, word cloud and post table.
type Model struct {
	term      string
	charts    []viz.Charts
	theme     viz.Theme
	exportDir string
	viewer    *viewer.EnvViewer
	now       func() time.Time

	tab       int
	table     table.Model
	filter    textinput.Model
	filtering bool
	keys      common.KeyMap
	help      help.Model
	status    string
	width     int
	height    int
}

// New creates a dashboard over charts, one entry per domain.Views tab.
func New(term string, charts []viz.Charts, theme viz.Theme, exportDir string, v *viewer.EnvViewer) Model {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "filter posts"
	fi.CharLimit = 64

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(tableRows),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true)
	t.SetStyles(st)

	m := Model{
		term:      term,
		charts:    charts,
		theme:     theme,
		exportDir: exportDir,
		viewer:    v,
		now:       time.Now,
		table:     t,
		filter:    fi,
		keys:      common.DefaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.refreshTable()
	return m
}

// Init has nothing to start; charts are computed before the dashboard exists.
func (m Model) Init() tea.Cmd {
	return nil
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.filtering
}

// Tab returns the selected view.
func (m Model) Tab() domain.View {
	if m.tab < len(domain.Views) {
		return domain.Views[m.tab]
	}
	return domain.ViewAll
}

func (m Model) current() (viz.Charts, bool) {
	if m.tab < 0 || m.tab >= len(m.charts) {
		return viz.Charts{}, false
	}
	return m.charts[m.tab], true
}

// visiblePosts returns the posts of the current tab matching the filter.
func (m Model) visiblePosts() []domain.ScoredPost {
	ch, ok := m.current()
	if !ok {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		return ch.Corpus.Posts
	}
	out := make([]domain.ScoredPost, 0, len(ch.Corpus.Posts))
	for _, p := range ch.Corpus.Posts {
		if strings.Contains(strings.ToLower(p.Text), q) ||
			strings.Contains(strings.ToLower(p.Cleaned), q) ||
			strings.Contains(strings.ToLower(p.Label.String()), q) {
			out = append(out, p)
		}
	}
	return out
}

func (m *Model) refreshTable() {
	textWidth := max(m.width-8-10-7-14-4, 20)
	m.table.SetColumns([]table.Column{
		{Title: "Sentiment", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Posted", Width: 14},
		{Title: "Text", Width: textWidth},
	})

	posts := m.visiblePosts()
	rows := make([]table.Row, 0, len(posts))
	now := m.now()
	for _, p := range posts {
		posted := "-"
		if !p.CreatedAt.IsZero() {
			posted = humanize.RelTime(p.CreatedAt, now, "ago", "from now")
		}
		text := ansi.Truncate(common.SanitizeForTerminal(p.Text), textWidth, "…")
		rows = append(rows, table.Row{
			p.Label.String(),
			fmt.Sprintf("%.3f", p.Score),
			posted,
			text,
		})
	}
	m.table.SetRows(rows)
	m.table.SetWidth(m.width - 4)
	m.table.GotoTop()
}

func (m *Model) selectTab(i int) {
	n := len(m.charts)
	if n == 0 {
		return
	}
	i = (i + n) % n
	if i == m.tab {
		return
	}
	m.tab = i
	m.status = ""
	m.refreshTable()
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refreshTable()
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.status = common.ErrorStyle.Render("Export failed: " + msg.Err.Error())
			return m, nil
		}
		m.status = common.SuccessStyle.Render("Saved " + msg.Path)
		return m, m.openViewer(msg.Path)

	case viewerClosedMsg:
		if msg.err != nil {
			m.status = common.ErrorStyle.Render("Saved " + msg.path + " (viewer: " + msg.err.Error() + ")")
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.refreshTable()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshTable()
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.TabAll):
		m.selectTab(0)
		return m, nil
	case key.Matches(msg, m.keys.TabPositive):
		m.selectTab(1)
		return m, nil
	case key.Matches(msg, m.keys.TabNegative):
		m.selectTab(2)
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.selectTab(m.tab + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.selectTab(m.tab - 1)
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Cancel):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.refreshTable()
		}
		return m, nil
	case key.Matches(msg, m.keys.NewSearch):
		return m, func() tea.Msg { return NewSearchMsg{} }
	case key.Matches(msg, m.keys.Export):
		return m, m.export()
	case key.Matches(msg, m.keys.ToggleHints):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// export saves the current tab's word cloud as a PNG.
func (m Model) export() tea.Cmd {
	ch, ok := m.current()
	if !ok || ch.Cloud == nil || ch.Cloud.Image == nil {
		return func() tea.Msg {
			return ExportedMsg{Err: fmt.Errorf("%w: no word cloud for this view", domain.ErrNoData)}
		}
	}
	dir, img := m.exportDir, ch.Cloud.Image
	name := viz.ExportName(m.term, ch.View, m.now())
	return func() tea.Msg {
		path, err := viz.SavePNG(dir, name, img)
		return ExportedMsg{Path: path, Err: err}
	}
}

func (m Model) openViewer(path string) tea.Cmd {
	if m.viewer == nil {
		return nil
	}
	cmd, err := m.viewer.Cmd(path)
	if err != nil {
		return func() tea.Msg { return viewerClosedMsg{path: path, err: err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return viewerClosedMsg{path: path, err: err}
	})
}
