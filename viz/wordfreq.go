package viz

import (
	"regexp"
	"slices"
	"strings"

	"github.com/CrestNiraj12/tweetsentiment/nlp/stopwords"
)

// MaxCloudWords bounds the number of words in a word cloud.
const MaxCloudWords = 90

// WordFreq is a word and its occurrence count.
type WordFreq struct {
	Word  string
	Count int
}

var cloudTokenRe = regexp.MustCompile(`\w[\w']*`)

// Frequencies counts the words of texts for a cloud: tokens of at least
// two characters, not stopwords and not pure digits. A plural ending in a
// single "s" is folded into its singular when the singular also occurs.
// The result is ordered by count, then word, and cut to maxWords.
func Frequencies(texts []string, stop stopwords.Set, maxWords int) []WordFreq {
	counts := make(map[string]int)
	for _, t := range texts {
		for _, tok := range cloudTokenRe.FindAllString(strings.ToLower(t), -1) {
			tok = strings.TrimSuffix(tok, "'s")
			if len(tok) < 2 || stop.Contains(tok) || isDigits(tok) {
				continue
			}
			counts[tok]++
		}
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	slices.Sort(words)
	for _, w := range words {
		if !strings.HasSuffix(w, "s") || strings.HasSuffix(w, "ss") {
			continue
		}
		singular := w[:len(w)-1]
		if _, ok := counts[singular]; ok {
			counts[singular] += counts[w]
			delete(counts, w)
		}
	}

	out := make([]WordFreq, 0, len(counts))
	for w, n := range counts {
		out = append(out, WordFreq{Word: w, Count: n})
	}
	slices.SortFunc(out, func(a, b WordFreq) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Word, b.Word)
	})
	if maxWords > 0 && len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
