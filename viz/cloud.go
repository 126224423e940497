package viz

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"golang.org/x/image/draw"
)

// CloudSeed is the fixed layout seed. Identical input yields an identical cloud.
const CloudSeed = 42

// CloudOptions controls word cloud layout.
type CloudOptions struct {
	// Width and Height size the canvas when no mask is given.
	Width, Height    int
	MaxWords         int
	MaxFontSize      int
	MinFontSize      int
	PreferHorizontal float64
	RelativeScaling  float64
	Margin           int
	Seed             int64
	Background       color.RGBA
}

// DefaultCloudOptions returns the standard layout settings.
func DefaultCloudOptions() CloudOptions {
	return CloudOptions{
		Width:            400,
		Height:           400,
		MaxWords:         MaxCloudWords,
		MaxFontSize:      100,
		MinFontSize:      4,
		PreferHorizontal: 0.9,
		RelativeScaling:  0.5,
		Margin:           2,
		Seed:             CloudSeed,
		Background:       color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// PlacedWord is a word drawn on the cloud canvas.
type PlacedWord struct {
	Word     string
	Count    int
	Size     int
	Bounds   image.Rectangle
	Vertical bool
	Color    color.RGBA
}

// Cloud is a finished word cloud.
type Cloud struct {
	Words []PlacedWord
	Image *image.RGBA
}

// CloudGenerator lays out word clouds on a fixed mask with a fixed font.
// Each Generate call starts from a fresh random source seeded with Seed.
type CloudGenerator struct {
	opts CloudOptions
	mask *Mask
	face Typeface
}

// NewCloudGenerator creates a generator. A nil mask uses the ellipse
// silhouette and a nil face the bitmap font.
func NewCloudGenerator(opts CloudOptions, mask *Mask, face Typeface) *CloudGenerator {
	if mask == nil {
		mask = EllipseMask(opts.Width, opts.Height)
	}
	if face == nil {
		face = BitmapFace{}
	}
	if opts.MaxWords <= 0 || opts.MaxWords > MaxCloudWords {
		opts.MaxWords = MaxCloudWords
	}
	return &CloudGenerator{opts: opts, mask: mask, face: face}
}

// occupancy tracks covered pixels with a summed-area table for O(1)
// rectangle queries.
type occupancy struct {
	w, h  int
	taken []bool
	sat   []int32 // (w+1)*(h+1)
}

func newOccupancy(m *Mask) *occupancy {
	o := &occupancy{w: m.W, h: m.H, taken: make([]bool, m.W*m.H), sat: make([]int32, (m.W+1)*(m.H+1))}
	copy(o.taken, m.blocked)
	o.rebuild()
	return o
}

func (o *occupancy) rebuild() {
	stride := o.w + 1
	for y := 0; y < o.h; y++ {
		var row int32
		for x := 0; x < o.w; x++ {
			if o.taken[y*o.w+x] {
				row++
			}
			o.sat[(y+1)*stride+x+1] = o.sat[y*stride+x+1] + row
		}
	}
}

func (o *occupancy) area(x, y, w, h int) int32 {
	stride := o.w + 1
	return o.sat[(y+h)*stride+x+w] - o.sat[y*stride+x+w] - o.sat[(y+h)*stride+x] + o.sat[y*stride+x]
}

// sample picks a uniformly random free w x h position, or false if none.
func (o *occupancy) sample(rng *rand.Rand, w, h int) (int, int, bool) {
	if w > o.w || h > o.h {
		return 0, 0, false
	}
	free := 0
	for y := 0; y+h <= o.h; y++ {
		for x := 0; x+w <= o.w; x++ {
			if o.area(x, y, w, h) == 0 {
				free++
			}
		}
	}
	if free == 0 {
		return 0, 0, false
	}
	pick := rng.Intn(free)
	for y := 0; y+h <= o.h; y++ {
		for x := 0; x+w <= o.w; x++ {
			if o.area(x, y, w, h) == 0 {
				if pick == 0 {
					return x, y, true
				}
				pick--
			}
		}
	}
	return 0, 0, false
}

func (o *occupancy) mark(glyph *image.Alpha, at image.Point) {
	b := glyph.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if glyph.AlphaAt(b.Min.X+x, b.Min.Y+y).A > 0 {
				o.taken[(at.Y+y)*o.w+at.X+x] = true
			}
		}
	}
	o.rebuild()
}

// Generate lays out freqs, which must be ordered by count descending.
func (g *CloudGenerator) Generate(freqs []WordFreq, palette Palette) *Cloud {
	opts := g.opts
	img := image.NewRGBA(image.Rect(0, 0, g.mask.W, g.mask.H))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)
	cloud := &Cloud{Image: img}
	if len(freqs) == 0 || freqs[0].Count <= 0 {
		return cloud
	}
	if len(freqs) > opts.MaxWords {
		freqs = freqs[:opts.MaxWords]
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	occ := newOccupancy(g.mask)
	maxCount := float64(freqs[0].Count)
	fontSize := opts.MaxFontSize
	lastFreq := 1.0
	margin := max(opts.Margin, 0)

	for i, wf := range freqs {
		freq := float64(wf.Count) / maxCount
		if i > 0 && opts.RelativeScaling != 0 {
			rs := opts.RelativeScaling
			fontSize = int(math.Round((rs*(freq/lastFreq) + (1 - rs)) * float64(fontSize)))
		}

		vertical := rng.Float64() >= opts.PreferHorizontal
		triedOther := false
		var (
			glyph *image.Alpha
			x, y  int
			found bool
		)
		for fontSize >= opts.MinFontSize {
			glyph = g.face.Render(wf.Word, fontSize)
			if vertical {
				glyph = rotate90(glyph)
			}
			b := glyph.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				x, y, found = occ.sample(rng, b.Dx()+margin, b.Dy()+margin)
				if found {
					break
				}
			}
			if !triedOther && opts.PreferHorizontal < 1 {
				vertical = !vertical
				triedOther = true
			} else {
				fontSize--
				vertical = false
			}
		}
		if !found {
			break
		}

		at := image.Pt(x+margin/2, y+margin/2)
		c := pickColor(rng, palette)
		r := image.Rectangle{Min: at, Max: at.Add(glyph.Bounds().Size())}
		draw.DrawMask(img, r, &image.Uniform{C: c}, image.Point{}, glyph, glyph.Bounds().Min, draw.Over)
		occ.mark(glyph, at)

		cloud.Words = append(cloud.Words, PlacedWord{
			Word:     wf.Word,
			Count:    wf.Count,
			Size:     fontSize,
			Bounds:   r,
			Vertical: vertical,
			Color:    c,
		})
		lastFreq = freq
	}
	return cloud
}

func pickColor(rng *rand.Rand, p Palette) color.RGBA {
	if len(p.Colors) == 0 {
		return color.RGBA{A: 0xff}
	}
	i := int(rng.Float64() * float64(len(p.Colors)))
	return p.Colors[min(i, len(p.Colors)-1)]
}

// rotate90 turns a glyph a quarter turn counterclockwise.
func rotate90(src *image.Alpha) *image.Alpha {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewAlpha(image.Rect(0, 0, h, w))
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetAlpha(x, y, src.AlphaAt(b.Min.X+w-1-y, b.Min.Y+x))
		}
	}
	return dst
}
