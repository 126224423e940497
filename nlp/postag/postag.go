// Package postag assigns coarse universal-tagset parts of speech to
// lowercase English tokens.
//
// Tokens are tagged by prose's averaged-perceptron model and its Penn
// Treebank tags are folded by first letter: J adjective, V verb, N noun,
// R adverb. When prose splits the input differently from the given
// tokens, a closed-class lexicon plus suffix heuristics tags them
// instead.
//
// Known limitations:
//   - The model is trained on cased, punctuated text; lowercase word runs
//     tag less accurately.
//   - Input must already be lowercase ASCII words.
package postag

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
)

// Tag is a coarse part of speech.
type Tag int

const (
	Other Tag = iota
	Noun
	Verb
	Adj
	Adv
)

func (t Tag) String() string {
	switch t {
	case Noun:
		return "NOUN"
	case Verb:
		return "VERB"
	case Adj:
		return "ADJ"
	case Adv:
		return "ADV"
	default:
		return "X"
	}
}

// Tagged is a token with its tag.
type Tagged struct {
	Word string
	Tag  Tag
}

var lexicon = buildLexicon()

// verb triggers make the following unknown word a verb.
var verbTriggers = set("to will would can could should must may might shall do does did not")

// subject pronouns make a following noun-shaped word a verb ("she loves").
var subjects = set("i you we they he she it who")

func buildLexicon() map[string]Tag {
	m := make(map[string]Tag)
	add := func(t Tag, words string) {
		for _, w := range strings.Fields(words) {
			m[w] = t
		}
	}
	add(Other, `a an the this that these those some any each every either neither no all both
		i me my mine myself you your yours yourself we us our ours ourselves he him his himself
		she her hers herself it its itself they them their theirs themselves who whom whose which what
		and but or nor so yet for because although though if unless while whereas since than
		of in on at by with from into onto upon about above below over under between among through
		during before after against across along around behind beyond near off out up down via per
		to as like one two three four five six seven eight nine ten hundred thousand million`)
	add(Verb, `be is are was were been being am have has had having do does did done doing
		love hate like want need make get go know think see say come take give feel look use find
		tell ask work seem try leave call keep let begin help show hear play run move live believe
		bring happen write sit stand lose pay meet include continue learn change watch follow stop
		speak read spend grow open walk win buy wait send die kill hope enjoy miss thank wish
		went gone got gotten made knew known thought saw seen said came took taken gave given felt
		found told left kept began begun shown heard ran lived brought wrote written sat stood lost
		paid met spoke spoken spent grew grown won bought sent`)
	add(Adj, `good bad great best better worse worst new old happy sad amazing awesome terrible horrible
		nice beautiful ugly big small large little high low long short hard easy free real true false
		full early late young important bright dark hot cold sure able fine wrong right perfect excellent
		poor rich angry glad lovely cute cool fun funny crazy stupid smart boring sick tired proud`)
	add(Adv, `very really so too also just never always often sometimes not now here there well still
		even again already quite almost actually probably maybe perhaps soon ever rather yet once
		instead literally seriously definitely totally`)
	return m
}

func set(words string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		m[w] = struct{}{}
	}
	return m
}

var perceptron = sync.OnceValue(func() *prose.Model {
	doc, err := prose.NewDocument("warm up",
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		slog.Warn("pos model unavailable, using lexicon tagger", "err", err)
		return nil
	}
	return doc.Model
})

// TagTokens tags tokens in order.
func TagTokens(tokens []string) []Tagged {
	if len(tokens) == 0 {
		return []Tagged{}
	}
	if tagged, ok := tagPerceptron(tokens); ok {
		return tagged
	}
	return tagLexicon(tokens)
}

// tagPerceptron runs the prose model over the joined tokens. It reports
// false when the model is missing or its tokens do not line up.
func tagPerceptron(tokens []string) ([]Tagged, bool) {
	model := perceptron()
	if model == nil {
		return nil, false
	}
	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.UsingModel(model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, false
	}
	got := doc.Tokens()
	if len(got) != len(tokens) {
		return nil, false
	}
	out := make([]Tagged, len(tokens))
	for i, tok := range got {
		if tok.Text != tokens[i] {
			return nil, false
		}
		out[i] = Tagged{Word: tokens[i], Tag: FromPenn(tok.Tag)}
	}
	return out, true
}

// FromPenn folds a Penn Treebank tag into a coarse tag.
func FromPenn(tag string) Tag {
	if tag == "" {
		return Other
	}
	switch tag[0] {
	case 'J':
		return Adj
	case 'V':
		return Verb
	case 'N':
		return Noun
	case 'R':
		return Adv
	}
	return Other
}

// tagLexicon tags tokens with the lexicon and suffix rules.
func tagLexicon(tokens []string) []Tagged {
	out := make([]Tagged, len(tokens))
	for i, w := range tokens {
		t, known := lexicon[w]
		if !known {
			t = bySuffix(w)
		}
		if i > 0 && (!known || t == Noun) && t != Adv {
			prev := tokens[i-1]
			if _, ok := verbTriggers[prev]; ok && t == Noun {
				t = Verb
			} else if _, ok := subjects[prev]; ok && t == Noun {
				t = Verb
			}
		}
		out[i] = Tagged{Word: w, Tag: t}
	}
	return out
}

func bySuffix(w string) Tag {
	n := len(w)
	switch {
	case n > 4 && strings.HasSuffix(w, "ly"):
		return Adv
	case n > 5 && strings.HasSuffix(w, "ing"):
		return Verb
	case n > 4 && strings.HasSuffix(w, "ed"):
		return Verb
	}
	for _, suf := range []string{"ous", "ful", "able", "ible", "ive", "less", "ish", "ical", "ic"} {
		if n > len(suf)+2 && strings.HasSuffix(w, suf) {
			return Adj
		}
	}
	return Noun
}
