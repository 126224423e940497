package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Thumbnail renders img as w x h terminal cells using 24-bit background
// colors, two spaces per cell. Transparent pixels are left blank.
func Thumbnail(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			sy := b.Min.Y + y*b.Dy()/h
			c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			if c.A == 0 {
				out.WriteString("  ")
				continue
			}
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
