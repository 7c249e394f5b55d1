package hal

import (
	"errors"
	"image"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrQuit is returned by an app step to end the run cleanly.
var ErrQuit = errors.New("quit")

// Framebuffer is a fixed-size RGBA pixel buffer plus a "present" hook.
//
// The size is chosen when the host starts and never changes.
type Framebuffer interface {
	Width() int
	Height() int
	// PixelRatio is the device pixels per viewport pixel the buffer was sized with.
	PixelRatio() float64
	Image() *image.RGBA
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeySpace
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// ScrollEvent is delivered once per document scroll.
//
// Top is the signed distance of the document top from the viewport top in
// viewport pixels: 0 at the start of the page, negative once scrolled down.
type ScrollEvent struct {
	Top float64
}

// Scroll is the document scroll source.
type Scroll interface {
	Events() <-chan ScrollEvent
	Top() float64
}

// PointerDelta is pointer movement accumulated since the last Take.
//
// Drag and Pan are in framebuffer pixels; Zoom is in wheel steps, positive
// meaning "towards the scene".
type PointerDelta struct {
	DragX, DragY float64
	PanX, PanY   float64
	Zoom         float64
}

// Pointer accumulates mouse gestures over the render surface.
type Pointer interface {
	Take() PointerDelta
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Scroll() Scroll
	Pointer() Pointer
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
