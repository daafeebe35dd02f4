// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{359.5, 359.5},
		{360, 0},
		{361, 1},
		{720, 0},
		{-1, 359},
		{-360, 0},
		{-720.5, 359.5},
		{nan(), 0},
		{float32(math.Inf(1)), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WrapDegrees(tt.in), "WrapDegrees(%g)", tt.in)
	}
}

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, Pi, DegToRad(180), 1e-6)
	assert.InDelta(t, 90, RadToDeg(Pi/2), 1e-4)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(-3.5))
	assert.False(t, IsFinite(nan()))
	assert.False(t, IsFinite(float32(math.Inf(-1))))
}

func nan() float32 {
	var zero float32
	return zero / zero
}
