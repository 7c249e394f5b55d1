package hal

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// writePNG saves the current framebuffer contents as a PNG file.
func writePNG(path string, fb *hostFramebuffer) error {
	img := image.NewRGBA(fb.img.Rect)
	fb.snapshot(img.Pix)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return nil
}
