package domain

import "fmt"

// PositiveThreshold is the inclusive score boundary for a Positive label.
const PositiveThreshold = 0.50

// Label is the binary sentiment of a scored post.
type Label int

const (
	Negative Label = iota
	Positive
)

// LabelFor derives the label from a classifier score.
func LabelFor(score float64) Label {
	if score >= PositiveThreshold {
		return Positive
	}
	return Negative
}

// String returns the display name of the label.
func (l Label) String() string {
	switch l {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}
