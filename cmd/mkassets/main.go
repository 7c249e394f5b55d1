package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

const jpegQuality = 90

func main() {
	var (
		outDir = flag.String("out", "assets", "Output directory.")
		size   = flag.Int("size", 512, "Texture height in pixels; wrapped maps are twice as wide.")
		seed   = flag.Uint64("seed", 1, "Noise seed.")
	)
	flag.Parse()

	if *size < 8 || *size > 8192 {
		fatalf("size out of range: %d", *size)
	}
	if err := generate(*outDir, *size, *seed); err != nil {
		fatalf("mkassets: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// generate writes space.jpg, fred.jpg, moon.jpg and normal.jpg into dir.
func generate(dir string, size int, seed uint64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %q: %w", dir, err)
	}

	height := newHeightField(2*size, size, seed)

	var g errgroup.Group
	write := func(name string, build func() *image.RGBA) {
		g.Go(func() error {
			return writeJPEG(filepath.Join(dir, name), build())
		})
	}
	write("space.jpg", func() *image.RGBA { return space(2*size, size, seed) })
	write("fred.jpg", func() *image.RGBA { return avatar(size) })
	write("moon.jpg", func() *image.RGBA { return moon(height) })
	write("normal.jpg", func() *image.RGBA { return normalMap(height, 4) })
	return g.Wait()
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}

// space is a dark blue vertical gradient sprinkled with stars.
func space(w, h int, seed uint64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h)
		c := color.RGBA{R: uint8(4 + 10*t), G: uint8(6 + 14*t), B: uint8(18 + 40*t), A: 0xFF}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	rng := rand.New(rand.NewPCG(seed, 0x5ace))
	n := w * h / 300
	for i := 0; i < n; i++ {
		x, y := rng.IntN(w), rng.IntN(h)
		v := uint8(140 + rng.IntN(116))
		img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
	}
	return img
}

// avatar is a flat smiley: a round yellow face on a teal tile.
func avatar(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := color.RGBA{R: 0x1B, G: 0x7F, B: 0x79, A: 0xFF}
	face := color.RGBA{R: 0xF4, G: 0xC4, B: 0x30, A: 0xFF}
	ink := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}

	s := float64(size)
	in := func(x, y, cx, cy, r float64) bool {
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= r*r
	}
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x, y := (float64(px)+0.5)/s, (float64(py)+0.5)/s
			c := bg
			if in(x, y, 0.5, 0.5, 0.4) {
				c = face
				switch {
				case in(x, y, 0.36, 0.4, 0.05), in(x, y, 0.64, 0.4, 0.05):
					c = ink
				case y > 0.55 && in(x, y, 0.5, 0.52, 0.22) && !in(x, y, 0.5, 0.47, 0.22):
					c = ink
				}
			}
			img.SetRGBA(px, py, c)
		}
	}
	return img
}

// heightField is an equirectangular bump map in [0, 1] that wraps in x.
type heightField struct {
	w, h int
	v    []float64
}

func (f *heightField) at(x, y int) float64 {
	x = ((x % f.w) + f.w) % f.w
	if y < 0 {
		y = 0
	}
	if y >= f.h {
		y = f.h - 1
	}
	return f.v[y*f.w+x]
}

func newHeightField(w, h int, seed uint64) *heightField {
	f := &heightField{w: w, h: h, v: make([]float64, w*h)}
	rng := rand.New(rand.NewPCG(seed, 0x3007))

	// Value noise octaves.
	for oct, cells := 0, 4; oct < 5; oct, cells = oct+1, cells*2 {
		amp := math.Pow(0.5, float64(oct))
		cw, ch := cells*2, cells+1
		grid := make([]float64, cw*ch)
		for i := range grid {
			grid[i] = rng.Float64()
		}
		for y := 0; y < h; y++ {
			gy := float64(y) / float64(h) * float64(cells)
			y0 := int(gy)
			ty := smooth(gy - float64(y0))
			for x := 0; x < w; x++ {
				gx := float64(x) / float64(w) * float64(cw)
				x0 := int(gx)
				tx := smooth(gx - float64(x0))
				x1 := (x0 + 1) % cw
				a := lerp(grid[y0*cw+x0], grid[y0*cw+x1], tx)
				b := lerp(grid[(y0+1)*cw+x0], grid[(y0+1)*cw+x1], tx)
				f.v[y*w+x] += amp * lerp(a, b, ty)
			}
		}
	}

	// Craters: a raised rim around a shallow bowl.
	craters := 12 + w/16
	for i := 0; i < craters; i++ {
		cx, cy := rng.Float64()*float64(w), rng.Float64()*float64(h)
		r := (0.01 + 0.05*rng.Float64()) * float64(h)
		for y := int(cy - 2*r); y <= int(cy+2*r); y++ {
			if y < 0 || y >= h {
				continue
			}
			for x := int(cx - 2*r); x <= int(cx+2*r); x++ {
				d := math.Hypot(float64(x)-cx, float64(y)-cy) / r
				if d > 2 {
					continue
				}
				wx := ((x % w) + w) % w
				f.v[y*w+wx] += crater(d) * 0.6
			}
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f.v {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi > lo {
		for i, v := range f.v {
			f.v[i] = (v - lo) / (hi - lo)
		}
	}
	return f
}

func crater(d float64) float64 {
	if d < 1 {
		return d*d - 1
	}
	return 1.2 * (2 - d) * (d - 1)
}

func smooth(t float64) float64     { return t * t * (3 - 2*t) }
func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// moon shades the height field in grey.
func moon(f *heightField) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			v := uint8(70 + 150*f.at(x, y))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
		}
	}
	return img
}

// normalMap encodes the height field's tangent-space normals as RGB, with
// strength scaling the slopes.
func normalMap(f *heightField, strength float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
	enc := func(v float64) uint8 { return uint8(math.Round((v*0.5 + 0.5) * 255)) }
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			dx := (f.at(x+1, y) - f.at(x-1, y)) * strength
			dy := (f.at(x, y-1) - f.at(x, y+1)) * strength
			nx, ny, nz := -dx, -dy, 1.0
			l := math.Sqrt(nx*nx + ny*ny + nz*nz)
			img.SetRGBA(x, y, color.RGBA{R: enc(nx / l), G: enc(ny / l), B: enc(nz / l), A: 0xFF})
		}
	}
	return img
}
