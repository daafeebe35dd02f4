// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "time"

// Animator advances a [Transform] by a fixed step on a fixed interval.
// It never draws: each tick requests a repaint from the host, which
// renders on its own thread. The host selects on the channel returned
// by [Animator.Start] and calls [Animator.Tick] for each value, so
// ticks and frames never overlap.
type Animator struct {
	// Interval between ticks.
	Interval time.Duration

	// Step is the angle added per tick, in degrees.
	Step float32

	// Transform advanced by each tick.
	Transform *Transform

	// Repaint is called after each tick to request a new frame.
	Repaint func()

	ticker *time.Ticker
	ticks  int
}

// NewAnimator returns an animator with default interval and step.
func NewAnimator(tf *Transform, repaint func()) *Animator {
	an := &Animator{Transform: tf, Repaint: repaint}
	an.Defaults()
	return an
}

// Defaults sets a 16ms interval and a 1 degree step.
func (an *Animator) Defaults() {
	an.Interval = 16 * time.Millisecond
	an.Step = 1
}

// Start starts the ticker and returns its channel.
// Calling Start again restarts it.
func (an *Animator) Start() <-chan time.Time {
	if an.Interval <= 0 {
		an.Interval = 16 * time.Millisecond
	}
	if an.ticker != nil {
		an.ticker.Reset(an.Interval)
	} else {
		an.ticker = time.NewTicker(an.Interval)
	}
	return an.ticker.C
}

// Tick advances the transform one step and requests a repaint.
func (an *Animator) Tick() {
	an.ticks++
	if an.Transform != nil {
		an.Transform.Advance(an.Step)
	}
	if an.Repaint != nil {
		an.Repaint()
	}
}

// Ticks returns the number of ticks so far.
func (an *Animator) Ticks() int { return an.ticks }

// Running returns whether the ticker is started.
func (an *Animator) Running() bool { return an.ticker != nil }

// Stop stops the ticker. Safe to call when not started.
func (an *Animator) Stop() {
	if an.ticker == nil {
		return
	}
	an.ticker.Stop()
	an.ticker = nil
}
