package domain

// NGramEntry is one ranked phrase with its corpus-wide count.
type NGramEntry struct {
	Phrase string
	Count  int
}
