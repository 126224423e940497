package viz

import (
	"github.com/CrestNiraj12/tweetsentiment/domain"
	"github.com/CrestNiraj12/tweetsentiment/nlp/ngram"
	"github.com/CrestNiraj12/tweetsentiment/nlp/stopwords"
)

// Charts is everything one dashboard tab shows besides the post table.
type Charts struct {
	View     domain.View
	Corpus   domain.Corpus
	Pie      Pie
	Unigrams Bar
	Bigrams  Bar
	Cloud    *Cloud
}

// Builder derives Charts from a corpus.
type Builder struct {
	Theme     Theme
	Stopwords stopwords.Set
	// Clouds is nil when word clouds are disabled.
	Clouds *CloudGenerator
}

// NewBuilder creates a Builder. A nil stopword set uses the embedded
// visualization list.
func NewBuilder(theme Theme, stop stopwords.Set, clouds *CloudGenerator) *Builder {
	if stop == nil {
		stop = stopwords.Viz()
	}
	return &Builder{Theme: theme, Stopwords: stop, Clouds: clouds}
}

// Build computes the charts of view v of c.
func (b *Builder) Build(c domain.Corpus, v domain.View) Charts {
	view := c.View(v)
	texts := view.Texts()
	style := b.Theme.Style(v)

	ch := Charts{
		View:     v,
		Corpus:   view,
		Pie:      NewPie(view, b.Theme),
		Unigrams: NewBar("Top 10 Occurring Words", ngram.Top(texts, 1, ngram.DefaultTopN, b.Stopwords), style.BarColor),
		Bigrams:  NewBar("Top 10 Occurring Bigrams", ngram.Top(texts, 2, ngram.DefaultTopN, b.Stopwords), style.BarColor),
	}
	if b.Clouds != nil {
		ch.Cloud = b.Clouds.Generate(Frequencies(texts, b.Stopwords, MaxCloudWords), style.Cloud)
	}
	return ch
}

// BuildAll computes the charts of every dashboard tab in display order.
func (b *Builder) BuildAll(c domain.Corpus) []Charts {
	out := make([]Charts, 0, len(domain.Views))
	for _, v := range domain.Views {
		out = append(out, b.Build(c, v))
	}
	return out
}
