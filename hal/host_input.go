//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollInput turns this tick's ebiten input state into keyboard events,
// document scrolls and pointer gestures.
func (h *hostHAL) pollInput() {
	h.pollKeys()
	h.pollWheel()
	h.pollMouse()
}

var scrollKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyEscape, KeyEscape},
}

func (h *hostHAL) pollKeys() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == ' ' {
			continue
		}
		h.kbd.emit(KeyEvent{Press: true, Rune: r})
	}

	page := float64(h.cfg.Height) * 0.875
	line := 40.0
	for _, k := range scrollKeys {
		if inpututil.IsKeyJustReleased(k.key) {
			h.kbd.emit(KeyEvent{Code: k.code, Press: false})
			continue
		}
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		h.kbd.emit(KeyEvent{Code: k.code, Press: true})

		// Scroll like a browser page does.
		switch k.code {
		case KeyUp:
			h.scroll.scrollBy(-line)
		case KeyDown:
			h.scroll.scrollBy(line)
		case KeyPageUp:
			h.scroll.scrollBy(-page)
		case KeyPageDown, KeySpace:
			h.scroll.scrollBy(page)
		case KeyHome:
			h.scroll.start()
		case KeyEnd:
			h.scroll.end()
		}
	}
}

func (h *hostHAL) pollWheel() {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		// Ctrl+wheel zooms the orbit camera instead of scrolling the page.
		h.pointer.add(PointerDelta{Zoom: dy})
		return
	}
	// Wheel up (dy > 0) scrolls towards the top of the page.
	h.scroll.scrollWheel(-dy)
}

func (h *hostHAL) pollMouse() {
	x, y := ebiten.CursorPosition()
	st := &h.input

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		st.dragging = true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		st.panning = true
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		st.dragging = false
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		st.panning = false
	}

	dx := float64(x - st.lastX)
	dy := float64(y - st.lastY)
	st.lastX, st.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}

	switch {
	case st.dragging:
		h.pointer.add(PointerDelta{DragX: dx, DragY: dy})
	case st.panning:
		h.pointer.add(PointerDelta{PanX: dx, PanY: dy})
	}
}
