package hal

import "sync"

// hostScroll models a page taller than the viewport.
//
// top follows the browser's getBoundingClientRect().top for the body: 0 at
// the start, down to -(page - viewport) at the end.
type hostScroll struct {
	mu   sync.Mutex
	top  float64
	min  float64
	step float64
	ch   chan ScrollEvent
}

func newHostScroll(pageHeight, viewportHeight, step float64) *hostScroll {
	maxScroll := pageHeight - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	return &hostScroll{
		min:  -maxScroll,
		step: step,
		ch:   make(chan ScrollEvent, 256),
	}
}

func (s *hostScroll) Events() <-chan ScrollEvent { return s.ch }

func (s *hostScroll) Top() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top
}

// scrollBy moves the page down by dy viewport pixels (up when negative).
func (s *hostScroll) scrollBy(dy float64) bool {
	s.mu.Lock()
	top := s.top - dy
	s.mu.Unlock()
	return s.scrollTo(top)
}

// scrollWheel scrolls by notches; positive notches move down.
func (s *hostScroll) scrollWheel(notches float64) bool {
	return s.scrollBy(notches * s.step)
}

// scrollTo sets the document top, clamped to the page. It emits one event
// when the position actually changes.
func (s *hostScroll) scrollTo(top float64) bool {
	if top > 0 {
		top = 0
	}
	if top < s.min {
		top = s.min
	}

	s.mu.Lock()
	if top == s.top {
		s.mu.Unlock()
		return false
	}
	s.top = top
	s.mu.Unlock()

	// Events are dropped when nobody drains the queue.
	select {
	case s.ch <- ScrollEvent{Top: top}:
	default:
	}
	return true
}

func (s *hostScroll) end() bool   { return s.scrollTo(s.min) }
func (s *hostScroll) start() bool { return s.scrollTo(0) }
