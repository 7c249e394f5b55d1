//go:build cgo

package hal

import (
	"errors"

	"scrollscape/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the framebuffer and forwards
// keyboard, wheel and mouse input. It blocks until the window closes or the
// app step returns ErrQuit.
func RunWindow(cfg HostConfig, newApp func(HAL) func() error) error {
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
		if m := ebiten.Monitor(); m != nil {
			cfg.PixelRatio = m.DeviceScaleFactor()
		}
	}
	h := newHost(cfg)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("scrollscape (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(true)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

// Update runs once per display refresh.
func (g *hostGame) Update() error {
	g.h.pollInput()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.scratch = make([]byte, len(fb.img.Pix))
	}
	fb.snapshot(g.scratch)
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

// Layout pins the screen to the framebuffer size; window resizes only scale it.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
