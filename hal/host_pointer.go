package hal

import "sync"

type hostPointer struct {
	mu  sync.Mutex
	acc PointerDelta
}

func (p *hostPointer) add(d PointerDelta) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acc.DragX += d.DragX
	p.acc.DragY += d.DragY
	p.acc.PanX += d.PanX
	p.acc.PanY += d.PanY
	p.acc.Zoom += d.Zoom
}

func (p *hostPointer) Take() PointerDelta {
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.acc
	p.acc = PointerDelta{}
	return d
}

// hostInputState is per-poll bookkeeping for the window backend.
type hostInputState struct {
	dragging bool
	panning  bool
	lastX    int
	lastY    int
}
