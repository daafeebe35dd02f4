// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// UpdateTestImages indicates whether [Assert] should overwrite the saved
// golden images instead of comparing against them. It is set when the
// environment variable LADDER_UPDATE_TESTDATA is "true".
var UpdateTestImages = os.Getenv("LADDER_UPDATE_TESTDATA") == "true"

// Mismatch describes the first pixel at which two images differ.
type Mismatch struct {
	At         image.Point
	Want, Have color.RGBA
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// Compare returns the first pixel of have whose channels differ from want
// by more than tol, in row order, or nil if there is none. Images with
// different bounds mismatch at their minimum point.
func Compare(want, have image.Image, tol int) *Mismatch {
	wb, hb := want.Bounds(), have.Bounds()
	if wb != hb {
		return &Mismatch{At: hb.Min}
	}
	for y := wb.Min.Y; y < wb.Max.Y; y++ {
		for x := wb.Min.X; x < wb.Max.X; x++ {
			w, h := rgbaAt(want, x, y), rgbaAt(have, x, y)
			if absDiff(w.R, h.R) > tol || absDiff(w.G, h.G) > tol || absDiff(w.B, h.B) > tol || absDiff(w.A, h.A) > tol {
				return &Mismatch{At: image.Point{x, y}, Want: w, Have: h}
			}
		}
	}
	return nil
}

// DiffImage returns an opaque image of the per channel absolute
// differences between a and b, over the bounds of a.
func DiffImage(a, b image.Image) *image.RGBA {
	ab := a.Bounds()
	di := image.NewRGBA(ab)
	for y := ab.Min.Y; y < ab.Max.Y; y++ {
		for x := ab.Min.X; x < ab.Max.X; x++ {
			ca, cb := rgbaAt(a, x, y), rgbaAt(b, x, y)
			di.SetRGBA(x, y, color.RGBA{uint8(absDiff(ca.R, cb.R)), uint8(absDiff(ca.G, cb.G)), uint8(absDiff(ca.B, cb.B)), 255})
		}
	}
	return di
}

// Assert checks that img matches the golden image testdata/<name>.png
// exactly. See [AssertTolerance].
func Assert(t TestingT, img image.Image, name string) {
	AssertTolerance(t, img, name, 0)
}

// AssertTolerance checks that img matches the golden image
// testdata/<name>.png within tol per channel. A missing golden image is
// created from img. On a mismatch img is saved as <name>.fail.png next
// to a <name>.diff.png of the differences.
func AssertTolerance(t TestingT, img image.Image, name string, tol int) {
	filename := filepath.Join("testdata", name)
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".png"
		filename += ext
	}
	base := strings.TrimSuffix(filename, ext)
	failFile, diffFile := base+".fail"+ext, base+".diff"+ext

	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		t.Errorf("imagex.Assert: %v", err)
		return
	}
	clean := func() {
		os.Remove(failFile)
		os.Remove(diffFile)
	}

	golden, _, err := Open(filename)
	switch {
	case UpdateTestImages || errors.Is(err, fs.ErrNotExist):
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: saving %s: %v", filename, err)
		}
		clean()
		return
	case err != nil:
		t.Errorf("imagex.Assert: opening %s: %v", filename, err)
		return
	}

	mm := Compare(golden, img, tol)
	if mm == nil {
		clean()
		return
	}
	if golden.Bounds() != img.Bounds() {
		t.Errorf("imagex.Assert: %s has bounds %v, got %v; see %s", filename, golden.Bounds(), img.Bounds(), failFile)
	} else {
		t.Errorf("imagex.Assert: %s differs at %v: want %v, got %v; see %s", filename, mm.At, mm.Want, mm.Have, failFile)
	}
	if err := Save(img, failFile); err != nil {
		t.Errorf("imagex.Assert: saving %s: %v", failFile, err)
	}
	if err := Save(DiffImage(img, golden), diffFile); err != nil {
		t.Errorf("imagex.Assert: saving %s: %v", diffFile, err)
	}
}
