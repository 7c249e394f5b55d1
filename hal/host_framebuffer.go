package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	ratio  float64
	img    *image.RGBA
	frames uint64
}

func newHostFramebuffer(width, height int, ratio float64) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		ratio:  ratio,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) PixelRatio() float64 { return f.ratio }
func (f *hostFramebuffer) Image() *image.RGBA  { return f.img }

// Present marks a finished frame; the window copies it on the next draw.
func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.frames++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xFF
	}
}

func (f *hostFramebuffer) presented() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

func (f *hostFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.img.Pix)
}
