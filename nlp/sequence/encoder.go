package sequence

import (
	"log/slog"
	"sync"
)

// Encoder turns cleaned texts into padded id sequences. The vocabulary
// is loaded from disk on first use and shared for the life of the Encoder.
type Encoder struct {
	path   string
	length int

	once  sync.Once
	vocab *Vocabulary
	err   error
}

// NewEncoder creates an Encoder over the vocabulary artifact at path.
func NewEncoder(path string) *Encoder {
	return &Encoder{path: path, length: Length}
}

// NewEncoderFromVocabulary wraps an already loaded vocabulary.
func NewEncoderFromVocabulary(v *Vocabulary) *Encoder {
	e := &Encoder{length: Length, vocab: v}
	e.once.Do(func() {})
	return e
}

func (e *Encoder) load() (*Vocabulary, error) {
	e.once.Do(func() {
		e.vocab, e.err = LoadVocabulary(e.path)
		if e.err == nil {
			slog.Info("tokenizer loaded", "path", e.path, "words", e.vocab.Size())
		}
	})
	return e.vocab, e.err
}

// Encode returns one sequence of exactly Length ids per text.
func (e *Encoder) Encode(texts []string) ([][]int, error) {
	v, err := e.load()
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(texts))
	for i, t := range texts {
		out[i] = Pad(v.TextToSequence(t), e.length)
	}
	return out, nil
}
