// Package viz builds the dashboard charts of one corpus view: the
// sentiment pie, the n-gram bars and the word cloud. Every builder takes
// an explicit Theme; nothing here reads or mutates global styling.
package viz

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// Palette is an ordered set of word cloud colors.
type Palette struct {
	Name   string
	Colors []color.RGBA
}

// ViewStyle is the per-tab coloring.
type ViewStyle struct {
	BarColor string
	Cloud    Palette
}

// Theme holds every color and size the charts use.
type Theme struct {
	PositiveColor string
	NegativeColor string
	TitleColor    string
	TextColor     string
	AxisColor     string
	Colorway      []string

	// PieHole is the donut hole radius as a fraction of the pie radius.
	PieHole float64
	// PieSize is the pie thumbnail height in terminal rows.
	PieSize int

	Views map[domain.View]ViewStyle
}

// Matplotlib's Greens, Blues and Oranges sampled over the 10th-14th of
// 20 evenly spaced stops.
var (
	Greens  = mustPalette("Greens", "#6bc072", "#56b567", "#41ab5d", "#329b51", "#238b45")
	Blues   = mustPalette("Blues", "#6aaed6", "#5aa2cf", "#4292c6", "#3282be", "#2171b5")
	Oranges = mustPalette("Oranges", "#fd9243", "#fb8431", "#f16913", "#e95e0d", "#d94801")
)

// DefaultTheme returns the dashboard's standard colors.
func DefaultTheme() Theme {
	return Theme{
		PositiveColor: "#1F77B4",
		NegativeColor: "#FF7F0E",
		TitleColor:    "#353535",
		TextColor:     "#707070",
		AxisColor:     "#D3D3D3",
		Colorway: []string{
			"#1F77B4", "#FF7F0E", "#54A24B", "#D62728", "#C355FA",
			"#8C564B", "#E377C2", "#7F7F7F", "#FFE323", "#17BECF",
		},
		PieHole: 0.3,
		PieSize: 8,
		Views: map[domain.View]ViewStyle{
			domain.ViewAll:      {BarColor: "#54A24B", Cloud: Greens},
			domain.ViewPositive: {BarColor: "#1F77B4", Cloud: Blues},
			domain.ViewNegative: {BarColor: "#FF7F0E", Cloud: Oranges},
		},
	}
}

// Style returns the styling of a view, falling back to the All tab.
func (t Theme) Style(v domain.View) ViewStyle {
	if s, ok := t.Views[v]; ok {
		return s
	}
	return t.Views[domain.ViewAll]
}

// LabelColor returns the pie and table color of a label.
func (t Theme) LabelColor(l domain.Label) string {
	if l == domain.Positive {
		return t.PositiveColor
	}
	return t.NegativeColor
}

func mustPalette(name string, hexes ...string) Palette {
	p := Palette{Name: name}
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		p.Colors = append(p.Colors, c)
	}
	return p
}

// ParseHex parses a #RRGGBB color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
