package hal

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunTicksStopsAtLimit(t *testing.T) {
	h := newHost(HostConfig{Width: 4, Height: 4, PageHeight: 100, Log: &bytes.Buffer{}})
	ticks := make(chan time.Time, 8)
	for i := 0; i < 8; i++ {
		ticks <- time.Time{}
	}

	var steps int
	var tops []float64
	step := func() error {
		steps++
		tops = append(tops, h.scroll.Top())
		return nil
	}
	err := runTicks(context.Background(), h, step, ticks, HeadlessConfig{Ticks: 3, ScrollPerTick: 10})
	if err != nil {
		t.Fatalf("runTicks: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps: %d", steps)
	}
	if tops[0] != -10 || tops[2] != -30 {
		t.Fatalf("auto scroll tops: %v", tops)
	}
}

func TestRunTicksQuit(t *testing.T) {
	h := newHost(HostConfig{Log: &bytes.Buffer{}})
	ticks := make(chan time.Time, 1)
	ticks <- time.Time{}
	err := runTicks(context.Background(), h, func() error { return ErrQuit }, ticks, HeadlessConfig{})
	if err != nil {
		t.Fatalf("quit should end cleanly, got %v", err)
	}
}

func TestRunTicksStepError(t *testing.T) {
	h := newHost(HostConfig{Log: &bytes.Buffer{}})
	ticks := make(chan time.Time, 1)
	ticks <- time.Time{}
	boom := errors.New("boom")
	err := runTicks(context.Background(), h, func() error { return boom }, ticks, HeadlessConfig{})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestRunTicksCanceled(t *testing.T) {
	h := newHost(HostConfig{Log: &bytes.Buffer{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runTicks(ctx, h, nil, make(chan time.Time), HeadlessConfig{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestRunHeadlessSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	var log bytes.Buffer
	host := HostConfig{Width: 8, Height: 6, PixelRatio: 2, Log: &log}

	newApp := func(h HAL) func() error {
		h.Logger().WriteLineString("app: started")
		return func() error {
			fb := h.Display().Framebuffer()
			fb.ClearRGB(0x10, 0x20, 0x30)
			return fb.Present()
		}
	}
	err := RunHeadless(context.Background(), host, newApp, HeadlessConfig{Hz: 1000, Ticks: 2, Snapshot: out})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if !strings.Contains(log.String(), "app: started") {
		t.Fatalf("log: %q", log.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Fatalf("snapshot size %v, want 16x12 at pixel ratio 2", b)
	}
	r, g, b, _ := img.At(3, 3).RGBA()
	if r>>8 != 0x10 || g>>8 != 0x20 || b>>8 != 0x30 {
		t.Fatalf("snapshot pixel = %x %x %x", r>>8, g>>8, b>>8)
	}
}
