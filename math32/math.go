// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 is a small float32 math package for the
// angles used by the render pipeline.
// Vector and matrix types come from mgl32.
package math32

import (
	"math"

	"github.com/chewxy/math32"
)

// Mathematical constants.
const (
	Pi = math.Pi

	// DegToRadFactor is the number of radians per degree.
	DegToRadFactor = Pi / 180

	// RadToDegFactor is the number of degrees per radian.
	RadToDegFactor = 180 / Pi
)

// DegToRad converts a number from degrees to radians
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// RadToDeg converts a number from radians to degrees
func RadToDeg(radians float32) float32 {
	return radians * RadToDegFactor
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// WrapDegrees returns the angle in degrees wrapped into [0, 360).
// Non-finite angles wrap to 0.
func WrapDegrees(deg float32) float32 {
	if !IsFinite(deg) {
		return 0
	}
	w := math32.Mod(deg, 360)
	if w < 0 {
		w += 360
	}
	if w >= 360 { // -tiny + 360 rounds up
		w = 0
	}
	return w
}
