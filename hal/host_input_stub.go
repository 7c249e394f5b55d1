//go:build !cgo

package hal

func (h *hostHAL) pollInput() {
	// No input support without the window backend.
}
