package orbitgl

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

// twoRows is 1×2: red on top, blue at the bottom.
func twoRows() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	img.Set(0, 1, color.NRGBA{B: 0xFF, A: 0xFF})
	return img
}

func TestTextureSampleBottomUp(t *testing.T) {
	tex := NewTexture("rows", twoRows())
	c, ok := tex.Sample(0.5, 0.1)
	if !ok || c.B != 0xFF || c.R != 0 {
		t.Fatalf("v=0.1 should hit the bottom row, got %+v ok=%v", c, ok)
	}
	c, _ = tex.Sample(0.5, 0.9)
	if c.R != 0xFF || c.B != 0 {
		t.Fatalf("v=0.9 should hit the top row, got %+v", c)
	}
	c, _ = tex.Sample(1.5, 1.9)
	if c.R != 0xFF {
		t.Fatalf("sampling should wrap, got %+v", c)
	}
}

func TestZeroTextureNotReady(t *testing.T) {
	var tex *Texture
	if tex.Ready() {
		t.Fatal("nil texture ready")
	}
	if _, ok := (&Texture{}).Sample(0, 0); ok {
		t.Fatal("empty texture sampled")
	}
}

func TestTextureLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.png":  {Data: encodePNG(t, twoRows())},
		"bad.jpg": {Data: []byte("not an image")},
	}

	var failed []string
	l := NewTextureLoader(fsys)
	l.OnError = func(path string, err error) { failed = append(failed, path) }

	ok := l.Load("ok.png")
	bad := l.Load("bad.jpg")
	if err := l.Wait(); err == nil {
		t.Fatal("expected an error from the bad texture")
	}

	if !ok.Ready() {
		t.Fatal("ok.png not ready after Wait")
	}
	if ok.Path != "ok.png" {
		t.Fatalf("path: %q", ok.Path)
	}
	if bad.Ready() {
		t.Fatal("bad.jpg should stay without pixels")
	}
	if len(failed) != 1 || failed[0] != "bad.jpg" {
		t.Fatalf("OnError calls: %v", failed)
	}
}

func TestTextureLoaderMissingFile(t *testing.T) {
	l := NewTextureLoader(fstest.MapFS{})
	tex := l.Load("space.jpg")
	if err := l.Wait(); err == nil {
		t.Fatal("expected error for missing file")
	}
	if tex.Ready() {
		t.Fatal("missing texture became ready")
	}
}

func TestTextureVersion(t *testing.T) {
	tex := &Texture{}
	v0 := tex.Version()
	tex.Set(twoRows())
	if tex.Version() == v0 {
		t.Fatal("version did not change on Set")
	}
}
