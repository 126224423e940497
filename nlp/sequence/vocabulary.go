// Package sequence maps cleaned text to fixed-length id sequences with
// a pre-fit vocabulary.
//
// The vocabulary artifact uses the JSON layout written by the Keras
// text tokenizer (`tokenizer.to_json()`): a "config" object holding
// "word_index" (either an object or a JSON-encoded string), optional
// "num_words", "oov_token", "lower" and "filters".
//
// Encoding follows the same rules: ids at or above num_words are
// dropped, unknown words map to the OOV id when the vocabulary has one
// and are dropped otherwise. Sequences are padded with zeros and
// truncated from the front so the most recent tokens are kept.
package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// Length is the input length the pretrained network expects.
const Length = 54

const defaultFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// Vocabulary is a read-only word to id mapping.
type Vocabulary struct {
	wordIndex map[string]int
	numWords  int
	oovIndex  int
	lower     bool
	filters   string
}

type artifact struct {
	ClassName string `json:"class_name"`
	Config    struct {
		NumWords  *int            `json:"num_words"`
		OOVToken  *string         `json:"oov_token"`
		Lower     *bool           `json:"lower"`
		Filters   *string         `json:"filters"`
		WordIndex json.RawMessage `json:"word_index"`
	} `json:"config"`
}

// LoadVocabulary reads a vocabulary artifact from disk.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading tokenizer %s: %v", domain.ErrModelArtifact, path, err)
	}
	v, err := ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("tokenizer %s: %w", path, err)
	}
	return v, nil
}

// ParseVocabulary decodes a vocabulary artifact.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: parsing tokenizer: %v", domain.ErrModelArtifact, err)
	}

	raw := a.Config.WordIndex
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: word_index: %v", domain.ErrModelArtifact, err)
		}
		raw = json.RawMessage(inner)
	}
	var index map[string]int
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: word_index missing", domain.ErrModelArtifact)
	}
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("%w: word_index: %v", domain.ErrModelArtifact, err)
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("%w: word_index is empty", domain.ErrModelArtifact)
	}

	v := &Vocabulary{
		wordIndex: index,
		lower:     true,
		filters:   defaultFilters,
	}
	if a.Config.NumWords != nil {
		v.numWords = *a.Config.NumWords
	}
	if a.Config.Lower != nil {
		v.lower = *a.Config.Lower
	}
	if a.Config.Filters != nil {
		v.filters = *a.Config.Filters
	}
	if a.Config.OOVToken != nil {
		id, ok := index[*a.Config.OOVToken]
		if !ok {
			return nil, fmt.Errorf("%w: oov_token %q not in word_index", domain.ErrModelArtifact, *a.Config.OOVToken)
		}
		v.oovIndex = id
	}
	return v, nil
}

// Size returns the number of words in the vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.wordIndex)
}

// TextToSequence maps one text to ids without padding.
func (v *Vocabulary) TextToSequence(text string) []int {
	if v.lower {
		text = strings.ToLower(text)
	}
	if v.filters != "" {
		text = strings.Map(func(r rune) rune {
			if strings.ContainsRune(v.filters, r) {
				return ' '
			}
			return r
		}, text)
	}

	words := strings.Fields(text)
	seq := make([]int, 0, len(words))
	for _, w := range words {
		id, ok := v.wordIndex[w]
		switch {
		case ok && (v.numWords == 0 || id < v.numWords):
			seq = append(seq, id)
		case v.oovIndex != 0:
			seq = append(seq, v.oovIndex)
		}
	}
	return seq
}

// Pad left-pads seq with zeros, or drops its leading ids, to exactly n.
func Pad(seq []int, n int) []int {
	out := make([]int, n)
	if len(seq) >= n {
		copy(out, seq[len(seq)-n:])
		return out
	}
	copy(out[n-len(seq):], seq)
	return out
}
