// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/ladder/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AxisRate is a rotation about Axis by Rate times the animation angle.
type AxisRate struct {
	Axis mgl32.Vec3
	Rate float32
}

// Transform holds the model, view and projection matrices,
// and the animation angle the model rotation is derived from.
type Transform struct {
	// Model matrix, recomputed by [Transform.ComposeModel].
	Model mgl32.Mat4

	// View matrix, set by [Transform.LookAt] or [Transform.Translate].
	View mgl32.Mat4

	// Projection matrix, recomputed by [Transform.Resize].
	Projection mgl32.Mat4

	// Angle is the animation angle in degrees, in [0, 360).
	Angle float32

	// Rotations applied to the model in order: the vertex is
	// rotated by the last entry first.
	Rotations []AxisRate

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Near and Far are the clipping plane distances.
	Near, Far float32

	// Aspect is the last valid width / height ratio.
	Aspect float32
}

// NewTransform returns a transform with identity matrices and defaults.
func NewTransform(rotations ...AxisRate) *Transform {
	tf := &Transform{Rotations: rotations}
	tf.Defaults()
	return tf
}

func (tf *Transform) Defaults() {
	tf.Model = mgl32.Ident4()
	tf.View = mgl32.Ident4()
	tf.Projection = mgl32.Ident4()
	tf.FOV = 45
	tf.Near = 0.1
	tf.Far = 100
	tf.Aspect = 1
}

// Resize recomputes the perspective projection for a viewport of the
// given size. A zero or negative dimension is skipped, keeping the
// previous projection, and Resize returns false.
func (tf *Transform) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	tf.Aspect = float32(width) / float32(height)
	tf.Projection = mgl32.Perspective(math32.DegToRad(tf.FOV), tf.Aspect, tf.Near, tf.Far)
	return true
}

// Advance adds delta degrees to the angle, wrapping into [0, 360),
// and recomposes the model matrix. The delta is wrapped first, so whole
// turns leave the angle bit for bit unchanged.
func (tf *Transform) Advance(delta float32) {
	tf.Angle = math32.WrapDegrees(tf.Angle + math32.WrapDegrees(delta))
	tf.ComposeModel()
}

// ComposeModel sets the model matrix from the rotations at the
// current angle: R(rate0*angle, axis0) * R(rate1*angle, axis1) * ...
// Zero axes are skipped.
func (tf *Transform) ComposeModel() mgl32.Mat4 {
	m := mgl32.Ident4()
	for _, r := range tf.Rotations {
		if r.Axis.Len() == 0 {
			continue
		}
		m = m.Mul4(mgl32.HomogRotate3D(math32.DegToRad(r.Rate*tf.Angle), r.Axis.Normalize()))
	}
	tf.Model = m
	return m
}

// LookAt sets the view to look from eye toward center.
func (tf *Transform) LookAt(eye, center, up mgl32.Vec3) {
	tf.View = mgl32.LookAtV(eye, center, up)
}

// Translate sets the view to a translation.
func (tf *Transform) Translate(x, y, z float32) {
	tf.View = mgl32.Translate3D(x, y, z)
}

// MVP returns Projection * View * Model.
func (tf *Transform) MVP() mgl32.Mat4 {
	return tf.Projection.Mul4(tf.View).Mul4(tf.Model)
}
