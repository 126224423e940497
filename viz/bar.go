package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// Bar is a horizontal bar chart of ranked n-grams. Rank 1 is drawn on top.
type Bar struct {
	Title   string
	Entries []domain.NGramEntry
	Color   string
}

// NewBar creates a bar chart.
func NewBar(title string, entries []domain.NGramEntry, color string) Bar {
	return Bar{Title: title, Entries: entries, Color: color}
}

// Render draws the chart in at most width columns.
func (b Bar) Render(width int, t Theme) string {
	var out strings.Builder
	out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.TitleColor)).Render(b.Title))
	if len(b.Entries) == 0 {
		out.WriteString("\n")
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextColor)).Render("no data"))
		return out.String()
	}

	labelW, countW, maxCount := 0, 0, 0
	for _, e := range b.Entries {
		labelW = max(labelW, ansi.StringWidth(e.Phrase))
		countW = max(countW, len(humanize.Comma(int64(e.Count))))
		maxCount = max(maxCount, e.Count)
	}
	labelW = min(labelW, max(width/3, 6))
	barW := max(width-labelW-countW-3, 1)

	label := lipgloss.NewStyle().Width(labelW).Foreground(lipgloss.Color(t.TextColor))
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
	axis := lipgloss.NewStyle().Foreground(lipgloss.Color(t.AxisColor)).Render("│")
	for _, e := range b.Entries {
		n := 0
		if maxCount > 0 {
			n = int(math.Round(float64(e.Count) / float64(maxCount) * float64(barW)))
		}
		if e.Count > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&out, "\n%s%s%s %s",
			label.Render(ansi.Truncate(e.Phrase, labelW, "…")),
			axis,
			bar.Render(strings.Repeat("█", n)),
			humanize.Comma(int64(e.Count)),
		)
	}
	return out.String()
}
