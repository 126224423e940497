package search

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

func keyEnter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyTab() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyTab} }

func TestNew_PrefillsAndClampsCount(t *testing.T) {
	m := New("golang", 5000, true, false)
	if got := m.inputs[termField].Value(); got != "golang" {
		t.Fatalf("term = %q", got)
	}
	if got := m.inputs[countField].Value(); got != "100" {
		t.Fatalf("count = %q, want clamped default 100", got)
	}
	if m.focus != termField {
		t.Fatalf("focus = %d, want term field", m.focus)
	}
}

func TestRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		count   string
		token   string
		require bool
		wantErr bool
	}{
		{name: "valid", term: "golang", count: "150", token: "abc", require: true},
		{name: "empty term", term: "   ", count: "150", token: "abc", require: true, wantErr: true},
		{name: "count too low", term: "golang", count: "99", token: "abc", require: true, wantErr: true},
		{name: "count too high", term: "golang", count: "2001", token: "abc", require: true, wantErr: true},
		{name: "count empty", term: "golang", count: "", token: "abc", require: true, wantErr: true},
		{name: "missing token", term: "golang", count: "100", require: true, wantErr: true},
		{name: "token optional", term: "golang", count: "2000", require: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("", 100, tt.require, false)
			m.inputs[termField].SetValue(tt.term)
			m.inputs[countField].SetValue(tt.count)
			m.inputs[tokenField].SetValue(tt.token)
			req, err := m.Request()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidRequest) {
					t.Fatalf("err = %v, want ErrInvalidRequest", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Term != strings.TrimSpace(tt.term) || req.Credential != tt.token {
				t.Fatalf("unexpected request %+v", req)
			}
		})
	}
}

func TestUpdate_SubmitEmitsRequest(t *testing.T) {
	m := New("golang", 120, true, false)
	m.inputs[tokenField].SetValue("secret")

	m, cmd := m.Update(keyEnter())
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	if msg.Request.Term != "golang" || msg.Request.Count != 120 || msg.Request.Credential != "secret" {
		t.Fatalf("unexpected request %+v", msg.Request)
	}
	if m.err != "" {
		t.Fatalf("unexpected error text %q", m.err)
	}
}

func TestUpdate_InvalidSubmitShowsErrorAndStays(t *testing.T) {
	m := New("", 100, true, false)
	m, cmd := m.Update(keyEnter())
	if cmd != nil {
		t.Fatal("invalid form must not emit a command")
	}
	if m.err == "" {
		t.Fatal("expected inline error")
	}
	if !strings.Contains(m.View(), "search term is empty") {
		t.Fatal("expected error in view")
	}
}

func TestUpdate_TabCyclesFocus(t *testing.T) {
	m := New("", 100, true, false)
	for _, want := range []int{countField, tokenField, termField} {
		m, _ = m.Update(keyTab())
		if m.focus != want {
			t.Fatalf("focus = %d, want %d", m.focus, want)
		}
	}
}

func TestUpdate_EscOnlyCancelsWhenCancellable(t *testing.T) {
	m := New("golang", 100, false, false)
	if _, cmd := m.Update(keyEsc()); cmd != nil {
		t.Fatal("esc without a dashboard must be ignored")
	}

	m = New("golang", 100, false, true)
	_, cmd := m.Update(keyEsc())
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(CancelMsg); !ok {
		t.Fatal("expected CancelMsg")
	}
}

func TestView_ShowsFieldsAndBounds(t *testing.T) {
	v := New("golang", 100, true, true).View()
	for _, want := range []string{"Search term", "Number of posts (100-2000)", "Auth token", "esc: back to dashboard"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}
