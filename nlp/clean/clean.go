// Package clean normalizes raw post text into space-separated lemmas.
//
// The steps run in a fixed order: lowercase, expand the "n't" negation,
// strip URLs, user mentions and entity references, drop everything
// outside a-z, tokenize, tag parts of speech, drop short tokens and
// stopwords, lemmatize by tag, and join with single spaces.
//
// A Cleaner is immutable after construction and safe for concurrent use.
package clean

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/nlp/lemma"
	"github.com/CrestNiraj12/tweetsentiment/nlp/postag"
	"github.com/CrestNiraj12/tweetsentiment/nlp/stopwords"
)

// maxInputBytes bounds a single post. Longer input is a cleaning failure.
const maxInputBytes = 1 << 20

// Whitespace and word classes are Unicode-aware: \s and \W alone only
// cover ASCII.
var (
	negContractionRe = regexp.MustCompile(`n't[^\p{L}\p{N}_]`)
	urlRe            = regexp.MustCompile(`((http://)[^ ]*|(https://)[^ ]*|(www\.)[^ ]*)`)
	userRe           = regexp.MustCompile(`@[^\s\p{Z}\x{85}\x{1c}-\x{1f}]+`)
	entityRe         = regexp.MustCompile(`&.*;`)
	nonAlphaRe       = regexp.MustCompile(`[^a-z]`)
)

// Cleaner turns raw post text into cleaned text.
type Cleaner struct {
	stopwords stopwords.Set
}

// New creates a Cleaner filtering the given stopwords.
func New(sw stopwords.Set) *Cleaner {
	if sw == nil {
		sw = stopwords.General()
	}
	return &Cleaner{stopwords: sw}
}

// Clean returns the cleaned text of raw. The error wraps
// domain.ErrTextCleaning; callers drop the post and keep going.
func (c *Cleaner) Clean(raw string) (cleaned string, err error) {
	defer func() {
		if r := recover(); r != nil {
			cleaned = ""
			err = fmt.Errorf("%w: %v", domain.ErrTextCleaning, r)
		}
	}()

	if len(raw) > maxInputBytes {
		return "", fmt.Errorf("%w: input exceeds %d bytes", domain.ErrTextCleaning, maxInputBytes)
	}
	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: invalid UTF-8", domain.ErrTextCleaning)
	}

	tokens := Normalize(raw)
	tagged := postag.TagTokens(tokens)

	out := make([]string, 0, len(tagged))
	for _, tw := range tagged {
		if len(tw.Word) <= 1 || c.stopwords.Contains(tw.Word) {
			continue
		}
		out = append(out, lemma.Lemmatize(tw.Word, tw.Tag))
	}
	return strings.Join(out, " "), nil
}

// Normalize runs the character-level steps and tokenizes the result.
// Every returned token matches [a-z]+.
func Normalize(raw string) []string {
	s := strings.ToLower(raw)
	s = negContractionRe.ReplaceAllString(s, " not ")
	s = urlRe.ReplaceAllString(s, " ")
	s = userRe.ReplaceAllString(s, " ")
	s = entityRe.ReplaceAllString(s, " ")
	s = nonAlphaRe.ReplaceAllString(s, " ")
	return strings.Fields(s)
}
