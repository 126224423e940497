package dashboard

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/viz"
)

func scored(text string, label domain.Label, score float64, at time.Time) domain.ScoredPost {
	return domain.ScoredPost{
		CleanedPost: domain.CleanedPost{
			Post:    domain.Post{Text: text, CreatedAt: at},
			Cleaned: strings.ToLower(text),
		},
		Score: score,
		Label: label,
	}
}

func testCorpus() domain.Corpus {
	at := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	return domain.Corpus{Posts: []domain.ScoredPost{
		scored("love golang release", domain.Positive, 0.91, at),
		scored("great golang tooling", domain.Positive, 0.77, at),
		scored("hate slow build", domain.Negative, 0.12, at),
	}}
}

func newTestModel(t *testing.T, clouds *viz.CloudGenerator, dir string) Model {
	t.Helper()
	theme := viz.DefaultTheme()
	b := viz.NewBuilder(theme, nil, clouds)
	m := New("golang", b.BuildAll(testCorpus()), theme, dir, nil)
	m.now = func() time.Time { return time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC) }
	m.refreshTable()
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabs_SwitchByNumberAndCycle(t *testing.T) {
	m := newTestModel(t, nil, "")
	if got := len(m.table.Rows()); got != 3 {
		t.Fatalf("all tab rows = %d, want 3", got)
	}

	m, _ = m.Update(runeKey("2"))
	if m.Tab() != domain.ViewPositive || len(m.table.Rows()) != 2 {
		t.Fatalf("tab = %v rows = %d, want Positive with 2 rows", m.Tab(), len(m.table.Rows()))
	}

	m, _ = m.Update(runeKey("3"))
	if m.Tab() != domain.ViewNegative || len(m.table.Rows()) != 1 {
		t.Fatalf("tab = %v rows = %d, want Negative with 1 row", m.Tab(), len(m.table.Rows()))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Tab() != domain.ViewAll {
		t.Fatalf("tab after wrap = %v, want All", m.Tab())
	}
}

func TestTable_RowsCarryLabelScoreAndAge(t *testing.T) {
	m := newTestModel(t, nil, "")
	row := m.table.Rows()[0]
	if row[0] != "Positive" || row[1] != "0.910" || row[2] != "2 hours ago" {
		t.Fatalf("unexpected row %v", row)
	}
	if !strings.Contains(row[3], "love golang") {
		t.Fatalf("text cell = %q", row[3])
	}
}

func TestFilter_NarrowsRowsAndEscClears(t *testing.T) {
	m := newTestModel(t, nil, "")
	m, _ = m.Update(runeKey("/"))
	if !m.Filtering() {
		t.Fatal("expected filter focus")
	}
	for _, r := range "hate" {
		m, _ = m.Update(runeKey(string(r)))
	}
	if got := len(m.table.Rows()); got != 1 {
		t.Fatalf("filtered rows = %d, want 1", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Filtering() {
		t.Fatal("enter should leave filter input")
	}
	if got := len(m.table.Rows()); got != 1 {
		t.Fatalf("filter must persist after enter, rows = %d", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := len(m.table.Rows()); got != 3 {
		t.Fatalf("rows after esc = %d, want 3", got)
	}
}

func TestFilter_MatchesLabel(t *testing.T) {
	m := newTestModel(t, nil, "")
	m.filter.SetValue("negative")
	m.refreshTable()
	if got := len(m.table.Rows()); got != 1 {
		t.Fatalf("rows = %d, want 1", got)
	}
}

func TestNewSearchKey(t *testing.T) {
	m := newTestModel(t, nil, "")
	_, cmd := m.Update(runeKey("s"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(NewSearchMsg); !ok {
		t.Fatal("expected NewSearchMsg")
	}
}

func TestExport_WithoutCloudFails(t *testing.T) {
	m := newTestModel(t, nil, t.TempDir())
	_, cmd := m.Update(runeKey("w"))
	msg, ok := cmd().(ExportedMsg)
	if !ok {
		t.Fatal("expected ExportedMsg")
	}
	if !errors.Is(msg.Err, domain.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", msg.Err)
	}
}

func TestExport_WritesPNG(t *testing.T) {
	opts := viz.DefaultCloudOptions()
	opts.Width, opts.Height = 160, 160
	dir := t.TempDir()
	m := newTestModel(t, viz.NewCloudGenerator(opts, nil, nil), dir)

	_, cmd := m.Update(runeKey("w"))
	msg, ok := cmd().(ExportedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("export failed: %+v", msg)
	}
	if !strings.HasPrefix(msg.Path, dir) || !strings.HasSuffix(msg.Path, "-all-20260102-120000.png") {
		t.Fatalf("path = %q", msg.Path)
	}
	if _, err := os.Stat(msg.Path); err != nil {
		t.Fatalf("stat: %v", err)
	}

	m, cmd = m.Update(msg)
	if cmd != nil {
		t.Fatal("nil viewer must not exec anything")
	}
	if !strings.Contains(m.View(), "Saved") {
		t.Fatal("expected saved status")
	}
}

func TestView_ShowsTabsAndCharts(t *testing.T) {
	v := newTestModel(t, nil, "").View()
	for _, want := range []string{"golang", "Positive (2)", "Negative (1)", "Top 10 Occurring Words", "Top 10 Occurring Bigrams", "word cloud disabled"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}
