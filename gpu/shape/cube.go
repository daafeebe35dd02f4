// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/ladder/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeCorners are the corners of a unit cube centered at the origin:
// the front (+Z) face counterclockwise from bottom left, then the back.
var cubeCorners = [8]mgl32.Vec3{
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
	{-0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5},
	{0.5, 0.5, -0.5},
	{-0.5, 0.5, -0.5},
}

// cubeColors are the colors of cubeCorners.
var cubeColors = [8]mgl32.Vec3{Red, Green, Blue, Yellow, Magenta, Cyan, Gray, Orange}

// cubeIndices are two counterclockwise triangles per face, in the
// order front, back, right, left, top, bottom.
var cubeIndices = []uint32{
	0, 1, 2, 0, 2, 3,
	5, 4, 7, 5, 7, 6,
	1, 5, 6, 1, 6, 2,
	4, 0, 3, 4, 3, 7,
	3, 2, 6, 3, 6, 7,
	4, 5, 1, 4, 1, 0,
}

// cubeTriangles is the corner order of the unindexed cube.
var cubeTriangles = []int{
	0, 1, 2, 2, 3, 0,
	5, 4, 7, 7, 6, 5,
	1, 5, 6, 6, 2, 1,
	4, 0, 3, 3, 7, 4,
	3, 2, 6, 6, 7, 3,
	4, 5, 1, 1, 0, 4,
}

// ColorCube returns a unit cube as 36 unindexed vertices with
// per-corner colors, for DrawArrays.
func ColorCube() *Mesh {
	ms := &Mesh{Name: "color-cube", Layout: gpu.PosColorLayout}
	for _, c := range cubeTriangles {
		ms.appendVertex(cubeCorners[c][:], cubeColors[c][:])
	}
	return ms
}

// IndexedColorCube returns a unit cube as its 8 colored corners
// and 36 indices, for DrawElements.
func IndexedColorCube() *Mesh {
	ms := &Mesh{Name: "indexed-color-cube", Layout: gpu.PosColorLayout}
	for i := range cubeCorners {
		ms.appendVertex(cubeCorners[i][:], cubeColors[i][:])
	}
	ms.Indices = append([]uint32(nil), cubeIndices...)
	return ms
}

// DiceFaces are the pip counts of the [DiceCube] faces, in face
// order +Z, -Z, +Y, -Y, +X, -X. Opposite faces sum to 7.
var DiceFaces = []int{1, 6, 5, 2, 3, 4}

// diceQuads are the corners of each dice face, counterclockwise
// seen from outside, with the texture origin at the first corner.
var diceQuads = [6][4]int{
	{0, 1, 2, 3}, // +Z
	{5, 4, 7, 6}, // -Z
	{3, 2, 6, 7}, // +Y
	{4, 5, 1, 0}, // -Y
	{1, 5, 6, 2}, // +X
	{4, 0, 3, 7}, // -X
}

var quadTexCoords = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// DiceCube returns a unit cube with 4 vertices per face, each face
// mapping the full [0, 1] texture square, in [gpu.PosTexLayout].
// The 36 indices hold two triangles per face, so the index range of
// face k is [6k, 6k+6).
func DiceCube() *Mesh {
	ms := &Mesh{Name: "dice-cube", Layout: gpu.PosTexLayout}
	for k, q := range diceQuads {
		for i, c := range q {
			ms.appendVertex(cubeCorners[c][:], quadTexCoords[i][:])
		}
		b := uint32(4 * k)
		ms.Indices = append(ms.Indices, b, b+1, b+2, b+2, b+3, b)
	}
	return ms
}
