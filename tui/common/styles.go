package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1DA1F2")).
			Padding(1, 2, 0, 1)

	// TermStyle styles the search term shown next to the title.
	TermStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")). // Dimmed grey
			Italic(true).
			MarginLeft(1)

	// FieldLabelStyle styles search form labels.
	FieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps and secondary figures.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// PanelStyle frames one chart.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// FocusedPanelStyle frames the focused form or table.
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#1DA1F2")).
				Padding(0, 1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// TabActiveStyle styles the selected dashboard tab.
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1DA1F2")).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	// TabInactiveStyle styles the other tabs.
	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6E738D")).
				Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// DiagnosticStyle styles captured process output below an error.
	DiagnosticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			MarginLeft(2)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)

// BadgeStyle colors a sentiment label cell.
func BadgeStyle(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1)
}
