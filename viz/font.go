package viz

import (
	"fmt"
	"image"
	"os"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Typeface renders a word as a coverage mask of the given pixel height.
type Typeface interface {
	Render(word string, size int) *image.Alpha
}

// BitmapFace scales the built-in 7x13 bitmap font. It needs no font file.
type BitmapFace struct{}

func (BitmapFace) Render(word string, size int) *image.Alpha {
	face := basicfont.Face7x13
	w := font.MeasureString(face, word).Ceil()
	h := face.Height
	if w <= 0 || size <= 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}
	src := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: src, Src: image.Opaque, Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(word)

	dw := max(w*size/h, 1)
	dst := image.NewAlpha(image.Rect(0, 0, dw, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// OpenTypeFace renders with a TrueType or OpenType font file.
type OpenTypeFace struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// LoadOpenType parses the font file at path.
func LoadOpenType(path string) (*OpenTypeFace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return &OpenTypeFace{font: f, faces: make(map[int]font.Face)}, nil
}

func (o *OpenTypeFace) face(size int) (font.Face, error) {
	if f, ok := o.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(o.font, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	o.faces[size] = f
	return f, nil
}

func (o *OpenTypeFace) Render(word string, size int) *image.Alpha {
	o.mu.Lock()
	defer o.mu.Unlock()

	face, err := o.face(size)
	if err != nil || size <= 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	h := ascent + m.Descent.Ceil()
	w := font.MeasureString(face, word).Ceil()
	dst := image.NewAlpha(image.Rect(0, 0, max(w, 0), max(h, 0)))
	d := font.Drawer{Dst: dst, Src: image.Opaque, Face: face, Dot: fixed.P(0, ascent)}
	d.DrawString(word)
	return dst
}

// Close releases the cached faces.
func (o *OpenTypeFace) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for size, f := range o.faces {
		f.Close()
		delete(o.faces, size)
	}
	return nil
}

// LoadTypeface returns the font at path, or the bitmap face when path is empty.
func LoadTypeface(path string) (Typeface, error) {
	if path == "" {
		return BitmapFace{}, nil
	}
	return LoadOpenType(path)
}
