// Package app wires the scene driver to a HAL: it loads the assets, feeds
// scroll events and pointer gestures to the driver and presents each frame.
package app

import (
	"fmt"
	"math/rand/v2"
	"os"

	"scrollscape/hal"
	"scrollscape/orbitgl"
	"scrollscape/scene"
)

// Config selects the optional app features.
type Config struct {
	// Assets is the directory the textures are read from.
	Assets string
	// Seed fixes the star field. 0 picks a random layout.
	Seed uint64

	HUD       bool
	Wireframe bool

	// WaitAssets makes New block until every texture has loaded or failed,
	// so the first frame already shows them. Headless snapshots set it.
	WaitAssets bool
}

type system struct {
	h   hal.HAL
	log hal.Logger
	cfg Config

	fb      hal.Framebuffer
	surface *pointerSurface
	loader  *orbitgl.TextureLoader
	driver  *scene.Driver
	hud     *hud
}

// New builds the scene for h and returns the per-frame step function.
func New(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

func newSystem(h hal.HAL, cfg Config) *system {
	s := &system{h: h, log: h.Logger(), cfg: cfg}

	var target orbitgl.Target
	if d := h.Display(); d != nil {
		s.fb = d.Framebuffer()
	}
	if s.fb != nil {
		s.fb.ClearRGB(0, 0, 0)
		target = &orbitgl.RGBATarget{Img: s.fb.Image()}
	}

	var ptr hal.Pointer
	if in := h.Input(); in != nil {
		ptr = in.Pointer()
	}
	s.surface = &pointerSurface{fb: s.fb, ptr: ptr}

	dir := cfg.Assets
	if dir == "" {
		dir = "."
	}
	s.loader = orbitgl.NewTextureLoader(os.DirFS(dir))

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15))
	}

	var top float64
	if sc := s.scroll(); sc != nil {
		top = sc.Top()
	}

	s.driver = scene.New(scene.Options{
		Target:           target,
		Surface:          s.surface,
		Textures:         s.loader,
		Rand:             rng,
		Log:              s.log,
		InitialScrollTop: top,
	})
	s.setWireframe(cfg.Wireframe)

	if cfg.WaitAssets {
		if err := s.loader.Wait(); err != nil {
			s.logf("app: assets incomplete: %v", err)
		}
	}

	if cfg.HUD && s.fb != nil {
		s.hud = newHUD(s.fb.Image())
	}
	if s.fb != nil {
		s.logf("app: %dx%d @%.2gx, assets %s", s.fb.Width(), s.fb.Height(), s.fb.PixelRatio(), dir)
	}
	return s
}

func (s *system) scroll() hal.Scroll {
	in := s.h.Input()
	if in == nil {
		return nil
	}
	return in.Scroll()
}

func (s *system) keyboard() hal.Keyboard {
	in := s.h.Input()
	if in == nil {
		return nil
	}
	return in.Keyboard()
}

// step runs one display refresh: key commands, then every pending scroll
// event in order, then the frame update.
func (s *system) step() error {
	if err := s.drainKeys(); err != nil {
		return err
	}
	s.drainScroll()

	s.driver.OnFrame()

	if s.hud != nil {
		s.hud.draw(s.driver, s.scrollTop())
	}
	if s.fb != nil {
		if err := s.fb.Present(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
	}
	return nil
}

func (s *system) drainKeys() error {
	kbd := s.keyboard()
	if kbd == nil {
		return nil
	}
	ch := kbd.Events()
	if ch == nil {
		return nil
	}
	for {
		select {
		case ev := <-ch:
			if !ev.Press {
				continue
			}
			if err := s.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *system) handleKey(ev hal.KeyEvent) error {
	if ev.Code == hal.KeyEscape {
		return hal.ErrQuit
	}
	switch ev.Rune {
	case 'q':
		return hal.ErrQuit
	case 'w':
		s.setWireframe(s.driver.Renderer().Mode != orbitgl.RenderWireframe)
	case 'h':
		if s.hud != nil {
			s.hud.enabled = !s.hud.enabled
		} else if s.fb != nil {
			s.hud = newHUD(s.fb.Image())
		}
	}
	return nil
}

func (s *system) setWireframe(on bool) {
	mode := orbitgl.RenderSolid
	if on {
		mode = orbitgl.RenderWireframe
	}
	s.driver.Renderer().SetRenderMode(mode)
}

func (s *system) drainScroll() {
	sc := s.scroll()
	if sc == nil {
		return
	}
	ch := sc.Events()
	if ch == nil {
		return
	}
	for {
		select {
		case ev := <-ch:
			s.driver.OnScroll(ev.Top)
		default:
			return
		}
	}
}

func (s *system) scrollTop() float64 {
	if sc := s.scroll(); sc != nil {
		return sc.Top()
	}
	return 0
}

func (s *system) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

// pointerSurface adapts the HAL pointer to the orbit controls.
type pointerSurface struct {
	fb  hal.Framebuffer
	ptr hal.Pointer
}

func (p *pointerSurface) Size() (w, h int) {
	if p.fb == nil {
		return 0, 0
	}
	return p.fb.Width(), p.fb.Height()
}

func (p *pointerSurface) TakeGestures() orbitgl.Gestures {
	if p.ptr == nil {
		return orbitgl.Gestures{}
	}
	d := p.ptr.Take()
	return orbitgl.Gestures{
		Rotate: orbitgl.Vec2{X: orbitgl.Scalar(d.DragX), Y: orbitgl.Scalar(d.DragY)},
		Pan:    orbitgl.Vec2{X: orbitgl.Scalar(d.PanX), Y: orbitgl.Scalar(d.PanY)},
		Zoom:   orbitgl.Scalar(d.Zoom),
	}
}
