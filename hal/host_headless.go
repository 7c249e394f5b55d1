package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// ScrollPerTick scrolls the document this many viewport pixels down
	// before every tick (negative scrolls up).
	ScrollPerTick float64

	// Snapshot, if set, receives a PNG of the last presented frame.
	Snapshot string
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, host HostConfig, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(host)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	err := runTicks(ctx, h, step, t.C, cfg)
	if cfg.Snapshot != "" {
		if serr := writePNG(cfg.Snapshot, h.fb); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func runTicks(ctx context.Context, h *hostHAL, step func() error, ticks <-chan time.Time, cfg HeadlessConfig) error {
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			if cfg.ScrollPerTick != 0 {
				h.scroll.scrollBy(cfg.ScrollPerTick)
			}
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
