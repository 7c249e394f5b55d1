//go:build !cgo

package hal

import "errors"

// RunWindow is unavailable without cgo; ebiten needs it for the window.
func RunWindow(_ HostConfig, _ func(HAL) func() error) error {
	return errors.New("window mode needs cgo: rebuild with CGO_ENABLED=1 or pass -headless")
}
