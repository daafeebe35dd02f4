// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/ladder/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Common vertex colors.
var (
	Red     = mgl32.Vec3{1, 0, 0}
	Green   = mgl32.Vec3{0, 1, 0}
	Blue    = mgl32.Vec3{0, 0, 1}
	Yellow  = mgl32.Vec3{1, 1, 0}
	Cyan    = mgl32.Vec3{0, 1, 1}
	Magenta = mgl32.Vec3{1, 0, 1}
	Orange  = mgl32.Vec3{1, 0.5, 0}
	Gray    = mgl32.Vec3{0.5, 0.5, 0.5}
)

// QuadTexLayout is position (3) at location 0 and texture coordinate
// (2) at location 2, leaving location 1 unused.
var QuadTexLayout = gpu.PackedLayout([]string{"Pos", "TexCoord"}, [2]int{0, 3}, [2]int{2, 2})

// Triangle returns a triangle in the XY plane with a red top,
// green bottom-left and blue bottom-right corner, for DrawArrays.
func Triangle() *Mesh {
	ms := &Mesh{Name: "triangle", Layout: gpu.PosColorLayout}
	ms.appendVertex([]float32{0, 0.5, 0}, Red[:])
	ms.appendVertex([]float32{-0.5, -0.5, 0}, Green[:])
	ms.appendVertex([]float32{0.5, -0.5, 0}, Blue[:])
	return ms
}

// ColorQuad returns an indexed unit quad centered at the origin,
// with red, green, blue and yellow corners counterclockwise from
// the top left.
func ColorQuad() *Mesh {
	ms := &Mesh{Name: "color-quad", Layout: gpu.PosColorLayout}
	ms.appendVertex([]float32{-0.5, 0.5, 0}, Red[:])
	ms.appendVertex([]float32{-0.5, -0.5, 0}, Green[:])
	ms.appendVertex([]float32{0.5, -0.5, 0}, Blue[:])
	ms.appendVertex([]float32{0.5, 0.5, 0}, Yellow[:])
	ms.Indices = []uint32{0, 1, 2, 2, 3, 0}
	return ms
}

// TexturedQuad returns an indexed unit quad centered at the origin
// in [QuadTexLayout], with texture coordinates spanning [0, 1].
func TexturedQuad() *Mesh {
	ms := &Mesh{Name: "textured-quad", Layout: QuadTexLayout}
	ms.appendVertex([]float32{0.5, 0.5, 0}, []float32{1, 1})
	ms.appendVertex([]float32{0.5, -0.5, 0}, []float32{1, 0})
	ms.appendVertex([]float32{-0.5, -0.5, 0}, []float32{0, 0})
	ms.appendVertex([]float32{-0.5, 0.5, 0}, []float32{0, 1})
	ms.Indices = []uint32{0, 1, 3, 1, 2, 3}
	return ms
}
