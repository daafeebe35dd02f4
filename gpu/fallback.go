// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FallbackStyles are the kinds of image synthesized
// when a texture file cannot be loaded.
type FallbackStyles int32

const (
	// FallbackChecker is a gray checkerboard.
	FallbackChecker FallbackStyles = iota

	// FallbackLabel is the texture label drawn large in red
	// on a light gray background.
	FallbackLabel
)

var fallbackNames = [...]string{"Checker", "Label"}

func (fs FallbackStyles) String() string {
	if fs >= 0 && int(fs) < len(fallbackNames) {
		return fallbackNames[fs]
	}
	return fmt.Sprintf("FallbackStyles(%d)", int32(fs))
}

// MarshalText implements [encoding.TextMarshaler].
func (fs FallbackStyles) MarshalText() ([]byte, error) { return []byte(fs.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler], case insensitively.
func (fs *FallbackStyles) UnmarshalText(text []byte) error {
	for i, nm := range fallbackNames {
		if strings.EqualFold(nm, string(text)) {
			*fs = FallbackStyles(i)
			return nil
		}
	}
	return fmt.Errorf("gpu.FallbackStyles: unknown fallback style %q", text)
}

// Fallback image parameters.
const (
	CheckerSize = 128
	CheckerTile = 16
	LabelSize   = 256
)

var (
	CheckerDark  = color.RGBA{50, 50, 50, 255}
	CheckerLight = color.RGBA{200, 200, 200, 255}
	LabelBack    = color.RGBA{240, 240, 240, 255}
	LabelColor   = color.RGBA{255, 0, 0, 255}
)

// GenerateFallback synthesizes a fallback image in the given style.
// A label that cannot be drawn gives the checkerboard instead,
// so it always returns a valid image.
func GenerateFallback(label string, style FallbackStyles) *image.RGBA {
	if style == FallbackLabel {
		img, err := labelImage(label)
		if err == nil {
			return img
		}
		slog.Warn("gpu.GenerateFallback: using checkerboard", "label", label, "err", err)
	}
	return checkerImage()
}

func checkerImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CheckerSize, CheckerSize))
	for y := range CheckerSize {
		for x := range CheckerSize {
			c := CheckerLight
			if (x/CheckerTile+y/CheckerTile)%2 == 1 {
				c = CheckerDark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var labelFace = sync.OnceValues(func() (font.Face, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    LabelSize / 2,
		DPI:     72,
		Hinting: font.HintingFull,
	})
})

// labelImage draws the label centered by its ink bounds.
func labelImage(label string) (*image.RGBA, error) {
	if strings.TrimSpace(label) == "" {
		return nil, fmt.Errorf("empty label")
	}
	face, err := labelFace()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, LabelSize, LabelSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(LabelBack), image.Point{}, draw.Src)

	bounds, _ := font.BoundString(face, label)
	if bounds.Empty() {
		return nil, fmt.Errorf("label %q has no visible glyphs", label)
	}
	size := fixed.I(LabelSize)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: (size - bounds.Min.X - bounds.Max.X) / 2,
			Y: (size - bounds.Min.Y - bounds.Max.Y) / 2,
		},
	}
	d.DrawString(label)
	return img, nil
}
