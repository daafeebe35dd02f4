// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRows returns a 2x2 image with a red top row and blue bottom row.
func twoRows() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetRGBA(x, 0, color.RGBA{255, 0, 0, 255})
		img.SetRGBA(x, 1, color.RGBA{0, 0, 255, 255})
	}
	return img
}

func TestReadPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, twoRows()))
	img, f, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
}

func TestReadNotImage(t *testing.T) {
	_, f, err := Read(bytes.NewReader([]byte("this is plain text, not pixels")))
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, None, f)

	_, _, err = Read(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "rows.png")
	require.NoError(t, Save(twoRows(), fn))
	img, f, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(1, 1)))

	_, _, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFlipV(t *testing.T) {
	fl := FlipV(twoRows())
	require.NotNil(t, fl)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, fl.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, fl.RGBAAt(1, 1))
	assert.Nil(t, FlipV(nil))
}

func TestAsRGBA(t *testing.T) {
	src := twoRows()
	assert.Same(t, src, AsRGBA(src))

	sub := src.SubImage(image.Rect(0, 1, 2, 2))
	rg := AsRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 2, 1), rg.Bounds())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rg.RGBAAt(0, 0))

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.Pix[0] = 128
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, AsRGBA(gray).RGBAAt(0, 0))
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".JPG")
	require.NoError(t, err)
	assert.Equal(t, JPEG, f)
	assert.Equal(t, "JPEG", f.String())
	_, err = ExtToFormat("")
	assert.Error(t, err)
	_, err = ExtToFormat("psd")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	a := twoRows()
	b := CloneAsRGBA(a)
	assert.Nil(t, Compare(a, b, 0))

	b.SetRGBA(1, 1, color.RGBA{0, 0, 250, 255})
	assert.Nil(t, Compare(a, b, 5))
	mm := Compare(a, b, 4)
	require.NotNil(t, mm)
	assert.Equal(t, image.Pt(1, 1), mm.At)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, mm.Want)
	assert.Equal(t, color.RGBA{0, 0, 250, 255}, mm.Have)

	assert.NotNil(t, Compare(a, image.NewRGBA(image.Rect(0, 0, 1, 1)), 255))
	assert.Equal(t, color.RGBA{0, 0, 5, 255}, DiffImage(a, b).RGBAAt(1, 1))
}

type recorder struct{ errs []string }

func (r *recorder) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func TestAssert(t *testing.T) {
	t.Chdir(t.TempDir())
	rec := &recorder{}
	Assert(rec, twoRows(), "rows")
	assert.Empty(t, rec.errs)
	assert.FileExists(t, filepath.Join("testdata", "rows.png"))

	Assert(rec, twoRows(), "rows")
	assert.Empty(t, rec.errs)

	Assert(rec, FlipV(twoRows()), "rows")
	require.Len(t, rec.errs, 1)
	assert.Contains(t, rec.errs[0], "differs at (0,0)")
	assert.FileExists(t, filepath.Join("testdata", "rows.fail.png"))
	assert.FileExists(t, filepath.Join("testdata", "rows.diff.png"))

	rec.errs = nil
	Assert(rec, twoRows(), "rows")
	assert.Empty(t, rec.errs)
	assert.NoFileExists(t, filepath.Join("testdata", "rows.fail.png"))
}
