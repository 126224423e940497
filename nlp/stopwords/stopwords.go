// Package stopwords provides the two word lists used by the pipeline:
// the general list applied while cleaning post text, and the
// visualization list applied to n-gram charts and word clouds.
//
// Both lists ship embedded. A file path can replace either list; the
// file holds one word per line, blank lines are ignored.
//
// The general list deliberately keeps negations ("not", "no", "nor")
// so the classifier sees them. The visualization list drops them.
package stopwords

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/general.txt
var generalList []byte

//go:embed data/viz.txt
var vizList []byte

// Set is an immutable membership set of lowercase words.
type Set map[string]struct{}

// Contains reports whether w is in the set.
func (s Set) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// General returns the embedded cleaning stopwords.
func General() Set {
	s, _ := Parse(bytes.NewReader(generalList))
	return s
}

// Viz returns the embedded visualization stopwords.
func Viz() Set {
	s, _ := Parse(bytes.NewReader(vizList))
	return s
}

// Parse reads one word per line.
func Parse(r io.Reader) (Set, error) {
	s := make(Set)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a word list from path, or returns fallback when path is empty.
func Load(path string, fallback Set) (Set, error) {
	if path == "" {
		return fallback, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stopwords %s: %w", path, err)
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading stopwords %s: %w", path, err)
	}
	return s, nil
}
