package search

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/tui/common"
)

var fieldLabels = [fieldCount]string{"Search term", "Number of posts", "Auth token"}

// View renders the search form.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Stream-search Sentiment Analyzer"))
	b.WriteString("\n")
	b.WriteString(common.TaglineStyle.Render("Currently, only English posts are supported."))
	b.WriteString("\n\n")

	var form strings.Builder
	for i, in := range m.inputs {
		label := fieldLabels[i]
		if i == countField {
			label += fmt.Sprintf(" (%d-%d)", domain.MinPostCount, domain.MaxPostCount)
		}
		form.WriteString(common.FieldLabelStyle.Render(label))
		form.WriteString("\n")
		form.WriteString(in.View())
		if i < len(m.inputs)-1 {
			form.WriteString("\n\n")
		}
	}
	b.WriteString(common.FocusedPanelStyle.Render(form.String()))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(common.ErrorStyle.Render(m.err))
		b.WriteString("\n")
	}

	hint := "  enter: search • tab: next field • ctrl+c: quit"
	if m.cancellable {
		hint += " • esc: back to dashboard"
	}
	b.WriteString(common.StatusBarStyle.Render(hint + "\n  Note: inference may take a while, depending on the number of posts fetched."))
	return b.String()
}
