// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import (
	"image"
	"image/color"
)

// Coverage rasterizes the triangles of a recorded draw into a mask of
// the given size, treating the attribute at posLocation as clip space
// positions with w = 1. Pixel rows run top to bottom, so NDC y = 1 is
// row 0. A pixel is covered when its center lies inside a triangle;
// pixels on an edge follow the top-left rule, so triangles sharing an
// edge never both cover it.
func Coverage(d Draw, posLocation, width, height int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	pos := d.Attribs[posLocation]
	for t := 0; t+2 < len(pos); t += 3 {
		var v [3][2]float64
		for i := range v {
			p := pos[t+i]
			y := 0.0
			if len(p) > 1 {
				y = float64(p[1])
			}
			v[i] = [2]float64{
				(float64(p[0]) + 1) / 2 * float64(width),
				(1 - y) / 2 * float64(height),
			}
		}
		fillTriangle(mask, v)
	}
	return mask
}

// Covered returns the number of covered pixels in the rectangle.
func Covered(mask *image.Alpha, r image.Rectangle) int {
	n := 0
	r = r.Intersect(mask.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if mask.AlphaAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}

func edge(a, b [2]float64, px, py float64) float64 {
	return (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
}

// topLeft reports whether the edge a->b is a top or left edge
// of a triangle with positive winding in pixel space.
func topLeft(a, b [2]float64) bool {
	dx, dy := b[0]-a[0], b[1]-a[1]
	return (dy == 0 && dx < 0) || dy > 0
}

func fillTriangle(mask *image.Alpha, v [3][2]float64) {
	area := edge(v[0], v[1], v[2][0], v[2][1])
	if area == 0 {
		return
	}
	if area < 0 {
		v[1], v[2] = v[2], v[1]
	}
	minX, minY := mask.Rect.Max.X, mask.Rect.Max.Y
	maxX, maxY := mask.Rect.Min.X, mask.Rect.Min.Y
	for _, p := range v {
		minX = min(minX, int(p[0]))
		minY = min(minY, int(p[1]))
		maxX = max(maxX, int(p[0])+1)
		maxY = max(maxY, int(p[1])+1)
	}
	r := image.Rect(minX, minY, maxX, maxY).Intersect(mask.Rect)
	on := color.Alpha{A: 255}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := r.Min.X; x < r.Max.X; x++ {
			px := float64(x) + 0.5
			inside := true
			for i := range 3 {
				a, b := v[i], v[(i+1)%3]
				e := edge(a, b, px, py)
				if e < 0 || (e == 0 && !topLeft(a, b)) {
					inside = false
					break
				}
			}
			if inside {
				mask.SetAlpha(x, y, on)
			}
		}
	}
}
