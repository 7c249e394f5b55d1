package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"scrollscape/hal"
	"scrollscape/orbitgl"
)

type fakeLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *fakeLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *fakeLog) text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

type fakeFB struct {
	img      *image.RGBA
	presents int
	clears   int
}

func (f *fakeFB) Width() int             { return f.img.Rect.Dx() }
func (f *fakeFB) Height() int            { return f.img.Rect.Dy() }
func (f *fakeFB) PixelRatio() float64    { return 1 }
func (f *fakeFB) Image() *image.RGBA     { return f.img }
func (f *fakeFB) ClearRGB(r, g, b uint8) { f.clears++ }
func (f *fakeFB) Present() error         { f.presents++; return nil }

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k *fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeScroll struct {
	ch  chan hal.ScrollEvent
	top float64
}

func (s *fakeScroll) Events() <-chan hal.ScrollEvent { return s.ch }
func (s *fakeScroll) Top() float64                   { return s.top }

func (s *fakeScroll) to(top float64) {
	s.top = top
	s.ch <- hal.ScrollEvent{Top: top}
}

type fakePointer struct{ next hal.PointerDelta }

func (p *fakePointer) Take() hal.PointerDelta {
	d := p.next
	p.next = hal.PointerDelta{}
	return d
}

type fakeHAL struct {
	log     *fakeLog
	fb      *fakeFB
	kbd     *fakeKeyboard
	scroll  *fakeScroll
	pointer *fakePointer
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		log:     &fakeLog{},
		fb:      &fakeFB{img: image.NewRGBA(image.Rect(0, 0, w, h))},
		kbd:     &fakeKeyboard{ch: make(chan hal.KeyEvent, 8)},
		scroll:  &fakeScroll{ch: make(chan hal.ScrollEvent, 16)},
		pointer: &fakePointer{},
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.kbd }
func (h *fakeHAL) Scroll() hal.Scroll           { return h.scroll }
func (h *fakeHAL) Pointer() hal.Pointer         { return h.pointer }

func testConfig(t *testing.T) Config {
	return Config{Assets: t.TempDir(), Seed: 42}
}

func TestStepDeliversScrollEventsInOrder(t *testing.T) {
	h := newFakeHAL(32, 24)
	s := newSystem(h, testConfig(t))

	h.scroll.to(-100)
	h.scroll.to(-200)
	h.scroll.to(-300)
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	// One eager update at startup plus the three queued events.
	if got := s.driver.ScrollEvents(); got != 4 {
		t.Fatalf("scroll events: %d", got)
	}
	if z := s.driver.Camera().Position.Z; math.Abs(float64(z-3)) > 1e-4 {
		t.Fatalf("camera z should follow the last event, got %v", z)
	}
	if h.fb.presents != 1 || s.driver.Frames() != 1 {
		t.Fatalf("presents=%d frames=%d", h.fb.presents, s.driver.Frames())
	}
}

func TestInitialScrollPosition(t *testing.T) {
	h := newFakeHAL(32, 24)
	h.scroll.top = -500
	s := newSystem(h, testConfig(t))
	if z := s.driver.Camera().Position.Z; math.Abs(float64(z-5)) > 1e-4 {
		t.Fatalf("camera z after startup: %v", z)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []hal.KeyEvent{
		{Press: true, Rune: 'q'},
		{Press: true, Code: hal.KeyEscape},
	} {
		h := newFakeHAL(16, 16)
		step := New(h, testConfig(t))
		h.kbd.ch <- ev
		if err := step(); !errors.Is(err, hal.ErrQuit) {
			t.Fatalf("%+v: got %v", ev, err)
		}
	}
}

func TestReleaseIsIgnored(t *testing.T) {
	h := newFakeHAL(16, 16)
	step := New(h, testConfig(t))
	h.kbd.ch <- hal.KeyEvent{Code: hal.KeyEscape}
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestWireframeToggle(t *testing.T) {
	h := newFakeHAL(16, 16)
	cfg := testConfig(t)
	cfg.Wireframe = true
	s := newSystem(h, cfg)
	if s.driver.Renderer().Mode != orbitgl.RenderWireframe {
		t.Fatal("config should start in wireframe")
	}

	h.kbd.ch <- hal.KeyEvent{Press: true, Rune: 'w'}
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.driver.Renderer().Mode != orbitgl.RenderSolid {
		t.Fatal("w should switch back to solid")
	}
}

func TestMissingAssetsAreLogged(t *testing.T) {
	h := newFakeHAL(16, 16)
	s := newSystem(h, testConfig(t))
	if err := s.loader.Wait(); err == nil {
		t.Fatal("expected texture errors from an empty asset dir")
	}
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !strings.Contains(h.log.text(), "not loaded") {
		t.Fatalf("log:\n%s", h.log.text())
	}
}

func TestPointerSurfaceGestures(t *testing.T) {
	ptr := &fakePointer{next: hal.PointerDelta{DragX: 3, DragY: -2, PanX: 1, PanY: 4, Zoom: -1}}
	p := &pointerSurface{fb: &fakeFB{img: image.NewRGBA(image.Rect(0, 0, 10, 20))}, ptr: ptr}

	if w, h := p.Size(); w != 10 || h != 20 {
		t.Fatalf("size %dx%d", w, h)
	}
	g := p.TakeGestures()
	want := orbitgl.Gestures{
		Rotate: orbitgl.Vec2{X: 3, Y: -2},
		Pan:    orbitgl.Vec2{X: 1, Y: 4},
		Zoom:   -1,
	}
	if g != want {
		t.Fatalf("gestures: %+v", g)
	}
	if !p.TakeGestures().IsZero() {
		t.Fatal("gestures should be consumed")
	}
}

func TestDragOrbitsCamera(t *testing.T) {
	h := newFakeHAL(32, 24)
	s := newSystem(h, testConfig(t))
	h.scroll.to(-1000)
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	before := s.driver.Camera().Position

	h.pointer.next = hal.PointerDelta{DragX: 6}
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.driver.Camera().Position == before {
		t.Fatal("drag did not move the camera")
	}
}

func TestHUDDrawsText(t *testing.T) {
	h := newFakeHAL(160, 60)
	cfg := testConfig(t)
	cfg.HUD = true
	s := newSystem(h, cfg)
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	var hits int
	for y := 0; y < 20; y++ {
		for x := 0; x < 120; x++ {
			if h.fb.img.RGBAAt(x, y) == hudColor {
				hits++
			}
		}
	}
	if hits == 0 {
		t.Fatal("no HUD pixels in the top-left corner")
	}

	h.kbd.ch <- hal.KeyEvent{Press: true, Rune: 'h'}
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.hud.enabled {
		t.Fatal("h should hide the HUD")
	}
}

func TestImageDisplayerClips(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	d := &imageDisplayer{img: img}
	c := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	d.SetPixel(-1, 0, c)
	d.SetPixel(4, 4, c)
	d.SetPixel(2, 1, c)
	if img.RGBAAt(2, 1) != c {
		t.Fatal("pixel not written")
	}
	if x, y := d.Size(); x != 4 || y != 4 {
		t.Fatalf("size %dx%d", x, y)
	}
}

func TestStartupClearsFramebuffer(t *testing.T) {
	h := newFakeHAL(16, 16)
	newSystem(h, testConfig(t))
	if h.fb.clears != 1 {
		t.Fatalf("clears: %d", h.fb.clears)
	}
}

func writeSolidPNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestHeadlessSnapshotWaitsForBackground(t *testing.T) {
	assets := t.TempDir()
	blue := color.RGBA{B: 0xC0, A: 0xFF}
	// Large enough that decoding is not instant.
	writeSolidPNG(t, filepath.Join(assets, "space.jpg"), 3000, 1500, blue)

	out := filepath.Join(t.TempDir(), "snap.png")
	log := &bytes.Buffer{}
	host := hal.HostConfig{Width: 32, Height: 24, Log: log}
	newApp := func(h hal.HAL) func() error {
		return New(h, Config{Assets: assets, Seed: 1, WaitAssets: true})
	}
	err := hal.RunHeadless(context.Background(), host, newApp, hal.HeadlessConfig{Hz: 1000, Ticks: 1, Snapshot: out})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	// The camera starts inside the torus ring; the top row is background
	// apart from the odd star.
	b := img.Bounds()
	bg := 0
	for x := b.Min.X; x < b.Max.X; x++ {
		r, g, bl, _ := img.At(x, b.Min.Y).RGBA()
		if r == 0 && g == 0 && bl>>8 == 0xC0 {
			bg++
		}
	}
	if bg < b.Dx()/2 {
		t.Fatalf("background pixels in top row: %d of %d", bg, b.Dx())
	}
	// The other textures are missing; that is logged, not fatal.
	if !strings.Contains(log.String(), "app: assets incomplete") {
		t.Fatalf("log:\n%s", log.String())
	}
}
