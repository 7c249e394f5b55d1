package hal

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
)

// HostConfig sizes the desktop host.
type HostConfig struct {
	// Width and Height are the viewport size in viewport pixels.
	Width  int
	Height int

	// PixelRatio multiplies the viewport size to get the framebuffer size.
	// 0 lets the window backend ask the monitor; headless runs use 1.
	PixelRatio float64

	// PageHeight is the scrollable document height in viewport pixels.
	PageHeight float64
	// ScrollStep is how far one wheel notch scrolls.
	ScrollStep float64

	// Log receives log lines. Nil means stdout.
	Log io.Writer
}

// DefaultHostConfig returns the settings used when no flags are given.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Width:      960,
		Height:     540,
		PageHeight: 6000,
		ScrollStep: 100,
	}
}

func (c HostConfig) withDefaults() HostConfig {
	d := DefaultHostConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = 1
	}
	if c.PageHeight <= 0 {
		c.PageHeight = d.PageHeight
	}
	if c.ScrollStep <= 0 {
		c.ScrollStep = d.ScrollStep
	}
	if c.Log == nil {
		c.Log = os.Stdout
	}
	return c
}

type hostHAL struct {
	cfg HostConfig

	logger  *hostLogger
	fb      *hostFramebuffer
	kbd     *hostKeyboard
	scroll  *hostScroll
	pointer *hostPointer
	input   hostInputState
}

func newHost(cfg HostConfig) *hostHAL {
	cfg = cfg.withDefaults()
	fbW := int(math.Round(float64(cfg.Width) * cfg.PixelRatio))
	fbH := int(math.Round(float64(cfg.Height) * cfg.PixelRatio))
	return &hostHAL{
		cfg:     cfg,
		logger:  &hostLogger{w: cfg.Log},
		fb:      newHostFramebuffer(fbW, fbH, cfg.PixelRatio),
		kbd:     newHostKeyboard(),
		scroll:  newHostScroll(cfg.PageHeight, float64(cfg.Height), cfg.ScrollStep),
		pointer: &hostPointer{},
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{h: h} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	h *hostHAL
}

func (in hostInput) Keyboard() Keyboard { return in.h.kbd }
func (in hostInput) Scroll() Scroll     { return in.h.scroll }
func (in hostInput) Pointer() Pointer   { return in.h.pointer }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
