// Package ngram counts word n-grams across a corpus of cleaned texts.
//
// Tokens are runs of two or more word characters. Stopwords are removed
// from the token stream before windows are formed, so "not good" with
// "not" as a stopword counts as the unigram "good" only. Distinct
// n-grams are visited in lexicographic order and stably sorted by
// count, so equal counts keep lexicographic order.
package ngram

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/nlp/stopwords"
)

// DefaultTopN is the number of entries shown on the dashboard charts.
const DefaultTopN = 10

var tokenRe = regexp.MustCompile(`\w\w+`)

// Counts returns the frequency of every n-gram of order n.
func Counts(texts []string, n int, stop stopwords.Set) map[string]int {
	counts := make(map[string]int)
	if n < 1 {
		return counts
	}
	for _, text := range texts {
		raw := tokenRe.FindAllString(strings.ToLower(text), -1)
		tokens := raw[:0]
		for _, t := range raw {
			if !stop.Contains(t) {
				tokens = append(tokens, t)
			}
		}
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}

// Total returns the number of n-gram occurrences in counts.
func Total(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// Top returns the topN most frequent n-grams of order n, title-cased.
func Top(texts []string, n, topN int, stop stopwords.Set) []domain.NGramEntry {
	counts := Counts(texts, n, stop)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]domain.NGramEntry, len(keys))
	for i, k := range keys {
		entries[i] = domain.NGramEntry{Phrase: k, Count: counts[k]}
	}
	slices.SortStableFunc(entries, func(a, b domain.NGramEntry) int {
		return b.Count - a.Count
	})
	if topN >= 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	title := cases.Title(language.English)
	for i := range entries {
		entries[i].Phrase = title.String(entries[i].Phrase)
	}
	return entries
}
