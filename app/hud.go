package app

import (
	"fmt"
	"image"
	"image/color"

	"scrollscape/internal/buildinfo"
	"scrollscape/orbitgl"
	"scrollscape/scene"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	hudLineHeight = 12
	hudMargin     = 4
)

var hudColor = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}

// hud prints the scroll position and frame counters over the scene.
type hud struct {
	enabled bool
	d       *imageDisplayer
	font    tinyfont.Fonter
}

func newHUD(img *image.RGBA) *hud {
	return &hud{
		enabled: true,
		d:       &imageDisplayer{img: img},
		font:    &proggy.TinySZ8pt7b,
	}
}

func (h *hud) lines(d *scene.Driver, top float64) []string {
	mode := "solid"
	if d.Renderer().Mode == orbitgl.RenderWireframe {
		mode = "wire"
	}
	cam := d.Camera().Position
	return []string{
		"scrollscape " + buildinfo.Short(),
		fmt.Sprintf("top %.0f  scrolls %d", top, d.ScrollEvents()),
		fmt.Sprintf("frame %d  %s", d.Frames(), mode),
		fmt.Sprintf("cam %.2f %.2f %.2f", cam.X, cam.Y, cam.Z),
	}
}

func (h *hud) draw(d *scene.Driver, top float64) {
	if h == nil || !h.enabled {
		return
	}
	y := int16(hudMargin)
	for _, line := range h.lines(d, top) {
		y += hudLineHeight
		tinyfont.WriteLine(h.d, h.font, hudMargin, y, line, hudColor)
	}
}

// imageDisplayer lets tinyfont draw straight into the framebuffer image.
type imageDisplayer struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*imageDisplayer)(nil)

func (d *imageDisplayer) Size() (x, y int16) {
	if d.img == nil {
		return 0, 0
	}
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *imageDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.img == nil {
		return
	}
	b := d.img.Bounds()
	ix, iy := b.Min.X+int(x), b.Min.Y+int(y)
	if ix < b.Min.X || iy < b.Min.Y || ix >= b.Max.X || iy >= b.Max.Y {
		return
	}
	d.img.SetRGBA(ix, iy, c)
}

func (d *imageDisplayer) Display() error { return nil }
