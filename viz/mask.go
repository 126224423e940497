package viz

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
)

// Mask marks the canvas pixels words may not cover.
type Mask struct {
	W, H    int
	blocked []bool
}

// Blocked reports whether (x, y) is outside the drawable shape.
func (m *Mask) Blocked(x, y int) bool {
	return m.blocked[y*m.W+x]
}

// EllipseMask is the built-in silhouette: an ellipse filling the canvas.
func EllipseMask(w, h int) *Mask {
	m := &Mask{W: w, H: h, blocked: make([]bool, w*h)}
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / cx
			dy := (float64(y) + 0.5 - cy) / cy
			m.blocked[y*w+x] = dx*dx+dy*dy > 1
		}
	}
	return m
}

// MaskFromImage treats pure white pixels as blocked, like a stencil.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := &Mask{W: b.Dx(), H: b.Dy(), blocked: make([]bool, b.Dx()*b.Dy())}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			m.blocked[y*m.W+x] = c.R == 0xff && c.G == 0xff && c.B == 0xff
		}
	}
	return m
}

// LoadMask decodes a PNG mask file.
func LoadMask(path string) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mask: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding mask %s: %w", path, err)
	}
	return MaskFromImage(img), nil
}
