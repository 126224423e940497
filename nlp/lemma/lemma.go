// Package lemma reduces lowercase English words to a dictionary base
// form, guided by a coarse part of speech.
//
// Candidates come from the golem English dictionary. When a word has
// several lemmas ("leaves" -> leaf, leave) the part of speech picks one
// through per-tag exception tables and detachment rules; verb stems are
// repaired by undoubling final consonants ("running" -> "run") or
// restoring a silent e on short stems ("loving" -> "love"). Words the
// dictionary does not know keep a rule result only if that result is a
// known word.
//
// Words tagged postag.Other use noun rules.
package lemma

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/CrestNiraj12/tweetsentiment/nlp/postag"
)

// Dictionary maps inflected forms to their lemmas.
// *golem.Lemmatizer satisfies it.
type Dictionary interface {
	InDict(word string) bool
	Lemmas(word string) []string
}

// Lemmatizer combines a Dictionary with part-of-speech rules.
// A nil dictionary uses the rules alone.
type Lemmatizer struct {
	dict Dictionary
}

// New creates a Lemmatizer over dict.
func New(dict Dictionary) *Lemmatizer {
	return &Lemmatizer{dict: dict}
}

var english = sync.OnceValue(func() *Lemmatizer {
	g, err := golem.New(en.New())
	if err != nil {
		slog.Warn("english lemma dictionary unavailable, using rules only", "err", err)
		return New(nil)
	}
	return New(g)
})

// Lemmatize returns the base form of word for the given tag using the
// embedded English dictionary.
func Lemmatize(word string, tag postag.Tag) string {
	return english().Lemmatize(word, tag)
}

// Lemmatize returns the base form of word for the given tag.
func (l *Lemmatizer) Lemmatize(word string, tag postag.Tag) string {
	if base, ok := exception(word, tag); ok {
		return base
	}
	r := rule(word, tag)
	if l.dict == nil {
		return r
	}
	if !l.dict.InDict(word) {
		if r != word && l.dict.InDict(r) {
			return r
		}
		return word
	}
	cands := l.dict.Lemmas(word)
	switch {
	case slices.Contains(cands, r):
		return r
	case slices.Contains(cands, word):
		return word
	case len(cands) > 0:
		return cands[0]
	}
	return word
}

func exception(w string, tag postag.Tag) (string, bool) {
	var table map[string]string
	switch tag {
	case postag.Verb:
		table = verbExceptions
	case postag.Adj:
		table = adjExceptions
	case postag.Adv:
		return "", false
	default:
		table = nounExceptions
	}
	base, ok := table[w]
	return base, ok
}

func rule(word string, tag postag.Tag) string {
	switch tag {
	case postag.Verb:
		return verb(word)
	case postag.Adj:
		return adj(word)
	case postag.Adv:
		return word
	default:
		return noun(word)
	}
}

func noun(w string) string {
	n := len(w)
	switch {
	case n <= 3:
		return w
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "us"), strings.HasSuffix(w, "is"):
		return w
	case n > 4 && strings.HasSuffix(w, "ies"):
		return w[:n-3] + "y"
	case strings.HasSuffix(w, "sses"), strings.HasSuffix(w, "ches"),
		strings.HasSuffix(w, "shes"), strings.HasSuffix(w, "xes"), strings.HasSuffix(w, "zes"):
		return w[:n-2]
	case strings.HasSuffix(w, "s"):
		return w[:n-1]
	}
	return w
}

func verb(w string) string {
	n := len(w)
	switch {
	case n <= 3:
		return w
	case strings.HasSuffix(w, "ies"), n > 4 && strings.HasSuffix(w, "ied"):
		return w[:n-3] + "y"
	case strings.HasSuffix(w, "eed"):
		// need, speed, succeed; past tenses such as agreed are exceptions.
		return w
	case n >= 5 && strings.HasSuffix(w, "ing"):
		if stem := w[:n-3]; hasVowel(stem) {
			return repair(stem)
		}
		return w
	case n > 4 && strings.HasSuffix(w, "ed"):
		if stem := w[:n-2]; hasVowel(stem) {
			return repair(stem)
		}
		return w
	case strings.HasSuffix(w, "sses"), strings.HasSuffix(w, "ches"),
		strings.HasSuffix(w, "shes"), strings.HasSuffix(w, "xes"),
		strings.HasSuffix(w, "zes"), strings.HasSuffix(w, "oes"):
		return w[:n-2]
	case strings.HasSuffix(w, "ss"):
		return w
	case strings.HasSuffix(w, "s"):
		return w[:n-1]
	}
	return w
}

func adj(w string) string {
	n := len(w)
	switch {
	case n > 4 && strings.HasSuffix(w, "iest"):
		return w[:n-4] + "y"
	case n > 3 && strings.HasSuffix(w, "ier"):
		return w[:n-3] + "y"
	case n > 5 && strings.HasSuffix(w, "est") && doubled(w[:n-3]):
		return w[:n-4]
	case n > 4 && strings.HasSuffix(w, "er") && doubled(w[:n-2]):
		return w[:n-3]
	}
	return w
}

// repair fixes a stem left behind by stripping -ing or -ed.
func repair(stem string) string {
	if doubled(stem) {
		switch stem[len(stem)-1] {
		case 'l', 's', 'z':
			return stem
		}
		return stem[:len(stem)-1]
	}
	if vowelGroups(stem) == 1 && endsCVC(stem) {
		return stem + "e"
	}
	return stem
}

func isVowel(s string, i int) bool {
	switch s[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	case 'y':
		return i > 0 && !isVowel(s, i-1)
	}
	return false
}

func hasVowel(s string) bool {
	for i := 0; i < len(s); i++ {
		if isVowel(s, i) {
			return true
		}
	}
	return false
}

func vowelGroups(s string) int {
	groups := 0
	prev := false
	for i := 0; i < len(s); i++ {
		v := isVowel(s, i)
		if v && !prev {
			groups++
		}
		prev = v
	}
	return groups
}

func endsCVC(s string) bool {
	n := len(s)
	if n < 3 {
		return false
	}
	switch s[n-1] {
	case 'w', 'x', 'y':
		return false
	}
	return !isVowel(s, n-1) && isVowel(s, n-2) && !isVowel(s, n-3)
}

func doubled(s string) bool {
	n := len(s)
	return n >= 2 && s[n-1] == s[n-2] && !isVowel(s, n-1)
}
