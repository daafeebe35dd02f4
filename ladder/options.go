// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ladder

import (
	"cogentcore.org/ladder/config"
	"cogentcore.org/ladder/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// NewOptions returns the renderer options set by the config.
func NewOptions(cf *config.Config) (Options, error) {
	opts := Options{TextureDir: cf.TextureDir}
	fb, ok, err := cf.FallbackStyle()
	if err != nil {
		return opts, err
	}
	opts.Fallback, opts.HasFallback = fb, ok
	if len(cf.ClearColor) == 4 {
		cc := mgl32.Vec4{cf.ClearColor[0], cf.ClearColor[1], cf.ClearColor[2], cf.ClearColor[3]}
		opts.ClearColor = &cc
	}
	return opts, nil
}

// NewAnimator returns an animator for the renderer transform with the
// config interval and step, or nil if the renderer is static.
func NewAnimator(rn *gpu.Renderer, cf *config.Config, repaint func()) *gpu.Animator {
	if rn.Config.Transform == nil {
		return nil
	}
	an := gpu.NewAnimator(rn.Config.Transform, repaint)
	if iv := cf.TickInterval(); iv > 0 {
		an.Interval = iv
	}
	an.Step = cf.Step
	return an
}
