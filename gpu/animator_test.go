// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimatorFullTurn(t *testing.T) {
	tf := NewTransform(diceRotations...)
	repaints := 0
	an := NewAnimator(tf, func() { repaints++ })
	assert.Equal(t, 16*time.Millisecond, an.Interval)
	assert.Equal(t, float32(1), an.Step)

	for i := range 360 {
		an.Tick()
		if i == 179 {
			assert.Equal(t, float32(180), tf.Angle)
		}
	}
	assert.Equal(t, 360, an.Ticks())
	assert.Equal(t, 360, repaints)
	assert.Zero(t, tf.Angle)
	assertMat4(t, mgl32.Ident4(), tf.Model)
}

func TestAnimatorTicker(t *testing.T) {
	an := NewAnimator(NewTransform(), nil)
	an.Interval = time.Millisecond
	assert.False(t, an.Running())
	c := an.Start()
	require.True(t, an.Running())
	for range 3 {
		select {
		case <-c:
			an.Tick()
		case <-time.After(time.Second):
			t.Fatal("no tick")
		}
	}
	assert.Equal(t, 3, an.Ticks())
	assert.InDelta(t, 3, an.Transform.Angle, 1e-6)

	assert.Equal(t, c, an.Start())
	an.Stop()
	an.Stop()
	assert.False(t, an.Running())
}
