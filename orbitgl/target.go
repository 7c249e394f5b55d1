package orbitgl

import "image"

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderSolid RenderMode = iota
	RenderWireframe
)

// RGBATarget renders into an *image.RGBA.
type RGBATarget struct {
	Img *image.RGBA
}

// Size returns the image bounds size.
func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.Img == nil {
		return 0, 0
	}
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole image with c, fully opaque.
func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Img == nil {
		return
	}
	b := t.Img.Bounds()
	if b.Empty() {
		return
	}
	row := t.Img.Pix[t.Img.PixOffset(b.Min.X, b.Min.Y):]
	n := b.Dx() * 4
	for x := 0; x < n; x += 4 {
		row[x+0] = c.R
		row[x+1] = c.G
		row[x+2] = c.B
		row[x+3] = 0xFF
	}
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		off := t.Img.PixOffset(b.Min.X, y)
		copy(t.Img.Pix[off:off+n], row[:n])
	}
}

// SetPixel writes one opaque pixel, ignoring coordinates outside the image.
func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if t == nil || t.Img == nil {
		return
	}
	b := t.Img.Bounds()
	x += b.Min.X
	y += b.Min.Y
	if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	i := t.Img.PixOffset(x, y)
	p := t.Img.Pix[i : i+4 : i+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = 0xFF
}
