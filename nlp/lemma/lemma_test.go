package lemma

import (
	"testing"

	"github.com/CrestNiraj12/tweetsentiment/nlp/postag"
)

func TestLemmatize_Rules(t *testing.T) {
	rules := New(nil)
	tests := []struct {
		word string
		tag  postag.Tag
		want string
	}{
		{"dogs", postag.Noun, "dog"},
		{"stories", postag.Noun, "story"},
		{"watches", postag.Noun, "watch"},
		{"children", postag.Noun, "child"},
		{"glass", postag.Noun, "glass"},
		{"bus", postag.Noun, "bus"},
		{"cats", postag.Other, "cat"},
		{"running", postag.Verb, "run"},
		{"loved", postag.Verb, "love"},
		{"loving", postag.Verb, "love"},
		{"walked", postag.Verb, "walk"},
		{"tried", postag.Verb, "try"},
		{"goes", postag.Verb, "go"},
		{"loves", postag.Verb, "love"},
		{"went", postag.Verb, "go"},
		{"was", postag.Verb, "be"},
		{"agreed", postag.Verb, "agree"},
		{"freed", postag.Verb, "free"},
		{"calling", postag.Verb, "call"},
		{"opened", postag.Verb, "open"},
		{"bring", postag.Verb, "bring"},
		{"need", postag.Verb, "need"},
		{"feed", postag.Verb, "feed"},
		{"speed", postag.Verb, "speed"},
		{"succeed", postag.Verb, "succeed"},
		{"proceed", postag.Verb, "proceed"},
		{"indeed", postag.Verb, "indeed"},
		{"happier", postag.Adj, "happy"},
		{"funniest", postag.Adj, "funny"},
		{"bigger", postag.Adj, "big"},
		{"better", postag.Adj, "good"},
		{"clever", postag.Adj, "clever"},
		{"quickly", postag.Adv, "quickly"},
	}
	for _, tc := range tests {
		if got := rules.Lemmatize(tc.word, tc.tag); got != tc.want {
			t.Errorf("Lemmatize(%q, %v) = %q, want %q", tc.word, tc.tag, got, tc.want)
		}
	}
}

// mapDict is a Dictionary over a fixed form -> lemmas table. Every lemma
// is also a known word.
type mapDict map[string][]string

func (d mapDict) InDict(w string) bool {
	if _, ok := d[w]; ok {
		return true
	}
	for _, ls := range d {
		for _, l := range ls {
			if l == w {
				return true
			}
		}
	}
	return false
}

func (d mapDict) Lemmas(w string) []string {
	if ls, ok := d[w]; ok {
		return ls
	}
	return []string{w}
}

func TestLemmatize_DictionaryPicksByTag(t *testing.T) {
	l := New(mapDict{
		"saws":   {"saw", "see"},
		"axes":   {"axe", "axis"},
		"need":   {"need"},
		"loved":  {"love"},
		"wanted": {"want"},
	})
	tests := []struct {
		word string
		tag  postag.Tag
		want string
	}{
		// Rule result among the candidates wins.
		{"saws", postag.Noun, "saw"},
		// No candidate matches the rule result "ax": first lemma.
		{"axes", postag.Noun, "axe"},
		// The word itself is a lemma.
		{"need", postag.Verb, "need"},
		// Mistagged verb form falls back to the dictionary's lemma.
		{"loved", postag.Noun, "love"},
		// Unknown word: rule result kept only when it is a known word.
		{"wanteds", postag.Noun, "wanted"},
		{"zorbs", postag.Noun, "zorbs"},
		// Exceptions apply before the dictionary.
		{"was", postag.Verb, "be"},
	}
	for _, tc := range tests {
		if got := l.Lemmatize(tc.word, tc.tag); got != tc.want {
			t.Errorf("Lemmatize(%q, %v) = %q, want %q", tc.word, tc.tag, got, tc.want)
		}
	}
}

func TestLemmatize_EnglishDictionaryKeepsRealWords(t *testing.T) {
	tests := []struct {
		word string
		tag  postag.Tag
		want string
	}{
		{"need", postag.Verb, "need"},
		{"feed", postag.Verb, "feed"},
		{"speed", postag.Noun, "speed"},
		{"succeed", postag.Verb, "succeed"},
		{"indeed", postag.Adv, "indeed"},
		{"cats", postag.Noun, "cat"},
		{"running", postag.Verb, "run"},
		{"was", postag.Verb, "be"},
	}
	for _, tc := range tests {
		if got := Lemmatize(tc.word, tc.tag); got != tc.want {
			t.Errorf("Lemmatize(%q, %v) = %q, want %q", tc.word, tc.tag, got, tc.want)
		}
	}
}
