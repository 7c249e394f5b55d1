package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"scrollscape/app"
	"scrollscape/hal"
	"scrollscape/internal/buildinfo"
)

func main() {
	var (
		headless hal.HeadlessConfig
		host     = hal.DefaultHostConfig()
		cfg      app.Config
		version  bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Float64Var(&headless.ScrollPerTick, "scroll-per-tick", 0, "Scroll the page this many pixels down every headless tick.")
	flag.StringVar(&headless.Snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")

	flag.IntVar(&host.Width, "width", host.Width, "Viewport width in pixels.")
	flag.IntVar(&host.Height, "height", host.Height, "Viewport height in pixels.")
	flag.Float64Var(&host.PixelRatio, "pixel-ratio", 0, "Framebuffer pixels per viewport pixel (0 = ask the monitor).")
	flag.Float64Var(&host.PageHeight, "page-height", host.PageHeight, "Height of the scrollable page in pixels.")
	flag.Float64Var(&host.ScrollStep, "scroll-step", host.ScrollStep, "Pixels scrolled per wheel notch.")

	flag.StringVar(&cfg.Assets, "assets", "assets", "Directory holding space.jpg, fred.jpg, moon.jpg and normal.jpg.")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "Star field seed (0 = random).")
	flag.BoolVar(&cfg.HUD, "hud", false, "Show the scroll and frame overlay.")
	flag.BoolVar(&cfg.Wireframe, "wireframe", false, "Start in wireframe mode (toggle with w).")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	// A snapshot should show the textures, not whatever had decoded by then.
	cfg.WaitAssets = headless.Snapshot != ""

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	newApp := func(h hal.HAL) func() error {
		return app.New(h, cfg)
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, host, newApp, headless); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(host, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
