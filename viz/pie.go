package viz

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/CrestNiraj12/tweetsentiment/domain"
)

// PieSlice is one label's share of a view.
type PieSlice struct {
	Label   domain.Label
	Count   int
	Percent float64
	Color   string
}

// Pie is the sentiment distribution of a view. Labels with no posts
// have no slice.
type Pie struct {
	Title  string
	Slices []PieSlice
	Total  int
}

// NewPie counts the labels of c, largest slice first.
func NewPie(c domain.Corpus, t Theme) Pie {
	pos, neg := c.Counts()
	p := Pie{Title: "Sentiment Distribution", Total: pos + neg}
	add := func(l domain.Label, n int) {
		if n == 0 {
			return
		}
		p.Slices = append(p.Slices, PieSlice{
			Label:   l,
			Count:   n,
			Percent: 100 * float64(n) / float64(p.Total),
			Color:   t.LabelColor(l),
		})
	}
	if neg > pos {
		add(domain.Negative, neg)
		add(domain.Positive, pos)
	} else {
		add(domain.Positive, pos)
		add(domain.Negative, neg)
	}
	return p
}

// Values returns the slice counts keyed by label.
func (p Pie) Values() map[domain.Label]int {
	out := make(map[domain.Label]int, len(p.Slices))
	for _, s := range p.Slices {
		out[s.Label] = s.Count
	}
	return out
}

// Image rasterizes the pie as a donut of the given pixel size, starting
// at twelve o'clock and running clockwise. Pixels outside the donut are
// transparent.
func (p Pie) Image(size int, hole float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if p.Total == 0 || size <= 0 {
		return img
	}
	colors := make([]color.RGBA, len(p.Slices))
	for i, s := range p.Slices {
		c, err := ParseHex(s.Color)
		if err != nil {
			c = color.RGBA{A: 0xff}
		}
		colors[i] = c
	}

	center := float64(size) / 2
	radius := center - 0.5
	inner := hole * radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			r := math.Hypot(dx, dy)
			if r > radius || r < inner {
				continue
			}
			angle := math.Atan2(dx, -dy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			frac := angle / (2 * math.Pi)
			acc := 0.0
			for i, s := range p.Slices {
				acc += float64(s.Count) / float64(p.Total)
				if frac <= acc || i == len(p.Slices)-1 {
					img.SetRGBA(x, y, colors[i])
					break
				}
			}
		}
	}
	return img
}

// Render draws the pie as an ANSI thumbnail with a legend.
func (p Pie) Render(t Theme) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.TitleColor)).Render(p.Title)
	if p.Total == 0 {
		return title + "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextColor)).Render("no posts")
	}
	rows := max(t.PieSize, 2)
	img := p.Image(rows*8, t.PieHole)

	var legend []string
	for _, s := range p.Slices {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■")
		legend = append(legend, fmt.Sprintf("%s %-8s %s (%.1f%%)", swatch, s.Label, humanize.Comma(int64(s.Count)), s.Percent))
	}
	return title + "\n" + Thumbnail(img, rows, rows) + "\n" + strings.Join(legend, "\n")
}
