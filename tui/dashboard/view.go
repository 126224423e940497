package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/tui/common"
	"github.com/CrestNiraj12/tweetsentiment/viz"
)

const (
	cloudCols = 24
	cloudRows = 12
)

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n")

	ch, ok := m.current()
	if !ok {
		b.WriteString(common.ErrorStyle.Render("no results"))
		return b.String()
	}

	half := max(m.width/2-4, 20)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		common.PanelStyle.Render(ch.Pie.Render(m.theme)),
		common.PanelStyle.Render(m.cloudView(ch)),
	)
	bars := lipgloss.JoinHorizontal(lipgloss.Top,
		common.PanelStyle.Width(half).Render(ch.Unigrams.Render(half-2, m.theme)),
		common.PanelStyle.Width(half).Render(ch.Bigrams.Render(half-2, m.theme)),
	)
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(bars)
	b.WriteString("\n")
	b.WriteString(common.FocusedPanelStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString(common.TimestampStyle.Render("  " + humanize.Comma(int64(len(m.table.Rows()))) + " matching"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) headerView() string {
	title := common.AppTitleStyle.Render("Sentiment for") + " " + common.TermStyle.Render(m.term)
	var pos, neg int
	if len(m.charts) > 0 {
		pos, neg = m.charts[0].Corpus.Counts()
	}
	summary := common.BadgeStyle(m.theme.PositiveColor).Render(humanize.Comma(int64(pos))+" positive") + " " +
		common.BadgeStyle(m.theme.NegativeColor).Render(humanize.Comma(int64(neg))+" negative")
	return title + "  " + summary
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, len(domain.Views))
	for i, v := range domain.Views {
		label := v.String()
		if i < len(m.charts) {
			label += " (" + humanize.Comma(int64(m.charts[i].Corpus.Len())) + ")"
		}
		if i == m.tab {
			tabs = append(tabs, common.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, common.TabInactiveStyle.Render(label))
		}
	}
	return " " + strings.Join(tabs, " ")
}

func (m Model) cloudView(ch viz.Charts) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.TitleColor)).Render("Word Cloud")
	if ch.Cloud == nil || ch.Cloud.Image == nil {
		return title + "\n" + common.TimestampStyle.Render("word cloud disabled")
	}
	if len(ch.Cloud.Words) == 0 {
		return title + "\n" + common.TimestampStyle.Render("no words")
	}
	return title + "\n" + viz.Thumbnail(ch.Cloud.Image, cloudCols, cloudRows) + "\n" +
		common.TimestampStyle.Render("w: save full-size PNG")
}
