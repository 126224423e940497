package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/tui/common"
)

// --- Messages ---

// SubmitMsg is sent when the form holds a valid request.
type SubmitMsg struct {
	Request domain.SearchRequest
}

// CancelMsg is sent when the user leaves the form without searching.
type CancelMsg struct{}

// --- Model ---

const (
	termField = iota
	countField
	tokenField
	fieldCount
)

// Model is the search form: term, post count and access token.
type Model struct {
	inputs            []textinput.Model
	focus             int
	keys              common.KeyMap
	requireCredential bool
	cancellable       bool
	err               string
}

// New creates the form prefilled with term and count. cancellable allows
// esc to return to an existing dashboard.
func New(term string, count int, requireCredential, cancellable bool) Model {
	if count < domain.MinPostCount || count > domain.MaxPostCount {
		count = domain.MinPostCount
	}

	termIn := textinput.New()
	termIn.Placeholder = "e.g. golang"
	termIn.CharLimit = 256
	termIn.Width = 40
	termIn.SetValue(term)

	countIn := textinput.New()
	countIn.Placeholder = fmt.Sprintf("%d-%d", domain.MinPostCount, domain.MaxPostCount)
	countIn.CharLimit = 4
	countIn.Width = 6
	countIn.Validate = digitsOnly
	countIn.SetValue(strconv.Itoa(count))

	tokenIn := textinput.New()
	tokenIn.Placeholder = "auth token"
	if !requireCredential {
		tokenIn.Placeholder = "auth token (optional, stored token used if empty)"
	}
	tokenIn.EchoMode = textinput.EchoPassword
	tokenIn.EchoCharacter = '•'
	tokenIn.Width = 40

	m := Model{
		inputs:            []textinput.Model{termIn, countIn, tokenIn},
		keys:              common.DefaultKeyMap(),
		requireCredential: requireCredential,
		cancellable:       cancellable,
	}
	m.setFocus(termField)
	return m
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("count must be a number")
		}
	}
	return nil
}

func (m *Model) setFocus(i int) {
	m.focus = (i + fieldCount) % fieldCount
	for j := range m.inputs {
		if j == m.focus {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Request parses the form into a validated request.
func (m Model) Request() (domain.SearchRequest, error) {
	count, err := strconv.Atoi(strings.TrimSpace(m.inputs[countField].Value()))
	if err != nil {
		return domain.SearchRequest{}, fmt.Errorf("%w: post count must be a number", domain.ErrInvalidRequest)
	}
	req := domain.SearchRequest{
		Term:       strings.TrimSpace(m.inputs[termField].Value()),
		Count:      count,
		Credential: strings.TrimSpace(m.inputs[tokenField].Value()),
	}
	if err := req.Validate(m.requireCredential); err != nil {
		return domain.SearchRequest{}, err
	}
	return req, nil
}

// Update handles messages for the search form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			if m.cancellable {
				return m, emit(CancelMsg{})
			}
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			req, err := m.Request()
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.err = ""
			return m, emit(SubmitMsg{Request: req})

		case key.Matches(msg, m.keys.NextField):
			m.setFocus(m.focus + 1)
			return m, nil

		case key.Matches(msg, m.keys.PrevField):
			m.setFocus(m.focus - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// emit wraps a message into a tea.Cmd for immediate delivery.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
