// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

var diceRotations = []AxisRate{
	{Axis: mgl32.Vec3{0, 1, 0}, Rate: 1},
	{Axis: mgl32.Vec3{1, 0, 0}, Rate: 0.5},
}

func TestTransformDefaults(t *testing.T) {
	tf := NewTransform()
	assert.Equal(t, mgl32.Ident4(), tf.Model)
	assert.Equal(t, mgl32.Ident4(), tf.View)
	assert.Equal(t, mgl32.Ident4(), tf.Projection)
	assert.Equal(t, float32(45), tf.FOV)
	assert.Equal(t, mgl32.Ident4(), tf.MVP())
}

func TestTransformAdvanceFullTurn(t *testing.T) {
	tf := NewTransform(AxisRate{Axis: mgl32.Vec3{0.5, 1, 0}, Rate: 1})
	tf.Advance(360)
	assert.Zero(t, tf.Angle)
	assertMat4(t, mgl32.Ident4(), tf.Model)

	tf.Advance(90)
	tf.Advance(270)
	assert.Zero(t, tf.Angle)
	assertMat4(t, mgl32.Ident4(), tf.Model)
}

func TestTransformAdvanceFullTurnExact(t *testing.T) {
	for _, start := range []float32{0.1, 0.3, 12.7, 123.45, 359.9} {
		for _, delta := range []float32{360, -360, 720} {
			tf := NewTransform(AxisRate{Axis: mgl32.Vec3{0, 1, 0}, Rate: 1})
			tf.Angle = start
			tf.Advance(delta)
			assert.Equal(t, start, tf.Angle, "start %g, delta %g", start, delta)
		}
	}
}

func TestTransformAngleWraps(t *testing.T) {
	tf := NewTransform()
	tf.Advance(350)
	tf.Advance(20)
	assert.InDelta(t, 10, tf.Angle, 1e-4)
	tf.Advance(-30)
	assert.InDelta(t, 340, tf.Angle, 1e-4)
	for range 1000 {
		tf.Advance(7.3)
		assert.GreaterOrEqual(t, tf.Angle, float32(0))
		assert.Less(t, tf.Angle, float32(360))
	}
}

func TestTransformComposeOrder(t *testing.T) {
	tf := NewTransform(diceRotations...)
	tf.Advance(90)
	want := mgl32.HomogRotate3DY(mgl32.DegToRad(90)).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(45)))
	assertMat4(t, want, tf.Model)

	// zero axes are skipped
	tf.Rotations = append(tf.Rotations, AxisRate{Rate: 3})
	assertMat4(t, want, tf.ComposeModel())
}

func TestTransformResize(t *testing.T) {
	tf := NewTransform()
	assert.True(t, tf.Resize(800, 600))
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)
	assertMat4(t, want, tf.Projection)

	// a minimized window keeps the last projection
	assert.False(t, tf.Resize(800, 0))
	assert.False(t, tf.Resize(-1, 600))
	assertMat4(t, want, tf.Projection)
	assert.InDelta(t, 800.0/600.0, tf.Aspect, 1e-6)
}

func TestTransformView(t *testing.T) {
	tf := NewTransform()
	tf.Translate(0, 0, -3)
	p := tf.MVP().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{0, 0, -3, 1}, p)

	tf.LookAt(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertMat4(t, mgl32.Translate3D(0, 0, -3), tf.View)
}
