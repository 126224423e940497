package clean

import (
	"errors"
	"strings"
	"testing"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/nlp/stopwords"
)

func TestClean_Scenario(t *testing.T) {
	c := New(stopwords.General())
	got, err := c.Clean("I LOVE this!! http://x.co @bob")
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(got, "love") {
		t.Fatalf("expected love in %q", got)
	}
	for _, banned := range []string{"bob", "http", "!", "x.co"} {
		if strings.Contains(got, banned) {
			t.Fatalf("cleaned text %q must not contain %q", got, banned)
		}
	}
}

func TestClean_Steps(t *testing.T) {
	c := New(stopwords.General())
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "negation expanded", in: "I don't like Mornings", want: "not like morning"},
		{name: "entity stripped", in: "cats &amp; dogs", want: "cat dog"},
		{name: "www url stripped", in: "visit www.example.com now please", want: "visit please"},
		{name: "lemmatized verb", in: "she was running fast", want: "run fast"},
		{name: "short tokens dropped", in: "a b c ok", want: "ok"},
		{name: "empty", in: "", want: ""},
		{name: "only noise", in: "@bob https://t.co/xyz 123", want: ""},
		{name: "mention ends at no-break space", in: "@bob\u00a0great\u00a0day", want: "great day"},
		{name: "mention ends at ideographic space", in: "@bob\u3000great day", want: "great day"},
		{name: "mention ends at next line", in: "@bob\u0085great day", want: "great day"},
		{name: "negation before unicode space", in: "I don't\u00a0like it", want: "not like"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Clean(tc.in)
			if err != nil {
				t.Fatalf("clean failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_NegationNeedsNonLetter(t *testing.T) {
	// A letter after the apostrophe-t is part of the word, ASCII or not.
	got := strings.Join(Normalize("isn'tà don'tx can't!"), " ")
	if got != "isn t don tx ca not" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestClean_FailuresAreTextCleaningErrors(t *testing.T) {
	c := New(nil)
	for _, in := range []string{"bad \xff utf8", strings.Repeat("a", maxInputBytes+1)} {
		_, err := c.Clean(in)
		if !errors.Is(err, domain.ErrTextCleaning) {
			t.Fatalf("expected ErrTextCleaning, got %v", err)
		}
	}
}

func FuzzClean(f *testing.F) {
	f.Add("I LOVE this!! http://x.co @bob")
	f.Add("&quot;Hello&quot; <b>World</b> www.go.dev")
	f.Add("Can't stop, won't stop")
	f.Add("")

	c := New(nil)
	f.Fuzz(func(t *testing.T, s string) {
		got, err := c.Clean(s)
		if err != nil {
			return
		}
		if strings.ToLower(got) != got {
			t.Errorf("uppercase in output: %q", got)
		}
		if strings.Contains(got, "@") || strings.Contains(got, "http") && strings.Contains(got, "://") {
			t.Errorf("mention or url in output: %q", got)
		}
		if strings.ContainsAny(got, "&;./:") {
			t.Errorf("non-alphabetic in output: %q", got)
		}
		for _, tok := range strings.Fields(got) {
			if len(tok) <= 1 {
				t.Errorf("short token %q in output %q", tok, got)
			}
		}
	})
}
