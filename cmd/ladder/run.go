// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"log/slog"
	"time"

	"cogentcore.org/ladder/config"
	"cogentcore.org/ladder/gpu"
	"cogentcore.org/ladder/gpu/glcore"
	"cogentcore.org/ladder/ladder"
	"cogentcore.org/ladder/logx"
)

// pollDelay is how often window events are processed.
const pollDelay = time.Second / 60

// run opens the window and runs the demo until the window is closed.
// Everything happens on the locked main thread: the animator ticks and
// event polling are multiplexed with select, and a frame is drawn
// whenever a tick or resize asked for one.
func run(cf *config.Config) error {
	demo, err := ladder.DemoByName(cf.Demo)
	if err != nil {
		return err
	}
	opts, err := ladder.NewOptions(cf)
	if err != nil {
		return err
	}
	rn, err := demo.NewRenderer(opts)
	if err != nil {
		return err
	}

	title := cf.Title
	if title == "" {
		title = demo.Title
	}
	dirty := true
	win, err := glcore.CreateWindow(image.Point{cf.Width, cf.Height}, title, func(size image.Point) {
		rn.Resize(size.X, size.Y)
		dirty = true
	})
	if err != nil {
		return err
	}
	defer win.Terminate()

	if err := rn.Initialize(win.Context); err != nil {
		logx.PrintlnError(rn.Diagnostic())
	}
	defer rn.Destroy()
	sz := win.FramebufferSize()
	rn.Resize(sz.X, sz.Y)

	var tick <-chan time.Time // nil for static demos, so never ready
	an := ladder.NewAnimator(rn, cf, func() { dirty = true })
	if an != nil {
		tick = an.Start()
		defer an.Stop()
	}

	poll := time.NewTicker(pollDelay)
	defer poll.Stop()
	for {
		select {
		case <-tick:
			an.Tick()
		case <-poll.C:
			if !win.PollEvents() {
				logStats(demo, rn, an)
				return nil
			}
			if dirty {
				rn.RenderFrame()
				win.SwapBuffers()
				dirty = false
			}
		}
	}
}

func logStats(demo *ladder.Demo, rn *gpu.Renderer, an *gpu.Animator) {
	ticks := 0
	if an != nil {
		ticks = an.Ticks()
	}
	slog.Info("ladder", "demo", demo.Name, "frames", rn.Frames(), "ticks", ticks, "fps", rn.FPS())
}
