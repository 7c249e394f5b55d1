package orbitgl

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Texture is an image reference whose pixels may arrive later.
//
// The zero value is a texture that never becomes ready.
type Texture struct {
	Path string

	img     atomic.Pointer[image.RGBA]
	version atomic.Uint64
}

// NewTexture returns a ready texture wrapping img.
func NewTexture(path string, img image.Image) *Texture {
	t := &Texture{Path: path}
	t.Set(img)
	return t
}

// Set publishes the texture pixels. A nil image clears it.
func (t *Texture) Set(img image.Image) {
	if t == nil {
		return
	}
	if img == nil {
		t.img.Store(nil)
		t.version.Add(1)
		return
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	t.img.Store(rgba)
	t.version.Add(1)
}

// Ready reports whether pixels are available.
func (t *Texture) Ready() bool {
	return t != nil && t.img.Load() != nil
}

// Image returns the current pixels or nil.
func (t *Texture) Image() *image.RGBA {
	if t == nil {
		return nil
	}
	return t.img.Load()
}

// Version changes every time Set is called.
func (t *Texture) Version() uint64 {
	if t == nil {
		return 0
	}
	return t.version.Load()
}

// Sample returns the texel at (u, v) with repeat wrapping; v = 0 is the bottom
// row of the image. ok is false while the texture is not ready.
func (t *Texture) Sample(u, v Scalar) (c Color, ok bool) {
	img := t.Image()
	if img == nil {
		return Color{}, false
	}
	return sampleRGBA(img, u, v), true
}

func sampleRGBA(img *image.RGBA, u, v Scalar) Color {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return Color{}
	}
	u = u - Scalar(int(u))
	if u < 0 {
		u++
	}
	v = v - Scalar(int(v))
	if v < 0 {
		v++
	}
	x := int(u * Scalar(w))
	y := int((1 - v) * Scalar(h))
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}
	if y < 0 {
		y = 0
	}
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	p := img.Pix[i : i+4 : i+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// TextureLoader decodes image files from a filesystem in the background.
type TextureLoader struct {
	FS fs.FS

	// OnError, if set, is called from the loading goroutine when a load fails.
	OnError func(path string, err error)

	g errgroup.Group
}

// NewTextureLoader creates a loader reading from fsys.
func NewTextureLoader(fsys fs.FS) *TextureLoader {
	return &TextureLoader{FS: fsys}
}

// Load returns a texture immediately and fills it in once the file decodes.
// Failures leave the texture without pixels.
func (l *TextureLoader) Load(path string) *Texture {
	t := &Texture{Path: path}
	if l == nil {
		return t
	}
	l.g.Go(func() error {
		img, err := l.decode(path)
		if err != nil {
			if l.OnError != nil {
				l.OnError(path, err)
			}
			return err
		}
		t.Set(img)
		return nil
	})
	return t
}

func (l *TextureLoader) decode(path string) (image.Image, error) {
	if l.FS == nil {
		return nil, fmt.Errorf("texture %s: no filesystem", path)
	}
	f, err := l.FS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture %s: decode: %w", path, err)
	}
	return img, nil
}

// Wait blocks until every load started so far has finished and returns the
// first failure.
func (l *TextureLoader) Wait() error {
	if l == nil {
		return nil
	}
	return l.g.Wait()
}
