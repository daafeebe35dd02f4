// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"

	"cogentcore.org/ladder/gpu/gl"
)

// Filters are the texture sampling filter modes.
type Filters int32

const (
	FilterNearest Filters = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapLinear
)

var filterNames = [...]string{"Nearest", "Linear", "NearestMipmapNearest", "LinearMipmapNearest", "NearestMipmapLinear", "LinearMipmapLinear"}

var filterEnums = [...]gl.Enum{gl.NEAREST, gl.LINEAR, gl.NEAREST_MIPMAP_NEAREST, gl.LINEAR_MIPMAP_NEAREST, gl.NEAREST_MIPMAP_LINEAR, gl.LINEAR_MIPMAP_LINEAR}

func (f Filters) String() string {
	if f >= 0 && int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("Filters(%d)", int32(f))
}

// Enum returns the GL value of the filter.
func (f Filters) Enum() gl.Enum {
	if f >= 0 && int(f) < len(filterEnums) {
		return filterEnums[f]
	}
	return gl.LINEAR
}

// Mipmapped returns whether the filter samples mipmap levels.
func (f Filters) Mipmapped() bool { return f >= FilterNearestMipmapNearest }

// MarshalText implements [encoding.TextMarshaler].
func (f Filters) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler], case insensitively.
func (f *Filters) UnmarshalText(text []byte) error {
	for i, nm := range filterNames {
		if strings.EqualFold(nm, string(text)) {
			*f = Filters(i)
			return nil
		}
	}
	return fmt.Errorf("gpu.Filters: unknown filter %q", text)
}

// WrapModes are the texture coordinate wrapping modes.
type WrapModes int32

const (
	WrapRepeat WrapModes = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

var wrapNames = [...]string{"Repeat", "ClampToEdge", "MirroredRepeat"}

var wrapEnums = [...]gl.Enum{gl.REPEAT, gl.CLAMP_TO_EDGE, gl.MIRRORED_REPEAT}

func (w WrapModes) String() string {
	if w >= 0 && int(w) < len(wrapNames) {
		return wrapNames[w]
	}
	return fmt.Sprintf("WrapModes(%d)", int32(w))
}

// Enum returns the GL value of the wrap mode.
func (w WrapModes) Enum() gl.Enum {
	if w >= 0 && int(w) < len(wrapEnums) {
		return wrapEnums[w]
	}
	return gl.REPEAT
}

// MarshalText implements [encoding.TextMarshaler].
func (w WrapModes) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler], case insensitively.
func (w *WrapModes) UnmarshalText(text []byte) error {
	for i, nm := range wrapNames {
		if strings.EqualFold(nm, string(text)) {
			*w = WrapModes(i)
			return nil
		}
	}
	return fmt.Errorf("gpu.WrapModes: unknown wrap mode %q", text)
}

// Sampler has the parameters for sampling a [Texture].
type Sampler struct {
	// MinFilter is used when the texture is minified.
	MinFilter Filters

	// MagFilter is used when the texture is magnified.
	// Mipmapped filters are not valid here and fall back to Linear.
	MagFilter Filters

	// Wrap applies to both the S and T coordinates.
	Wrap WrapModes

	// Mipmaps generates the mipmap chain after upload.
	Mipmaps bool
}

// Defaults sets trilinear filtering with repeat wrapping and mipmaps.
func (sm *Sampler) Defaults() {
	sm.MinFilter = FilterLinearMipmapLinear
	sm.MagFilter = FilterLinear
	sm.Wrap = WrapRepeat
	sm.Mipmaps = true
}

// DefaultSampler returns a [Sampler] with [Sampler.Defaults] applied.
func DefaultSampler() Sampler {
	var sm Sampler
	sm.Defaults()
	return sm
}

// NearestSampler returns a sampler for pixel-exact images:
// nearest minification, linear magnification, no mipmaps.
func NearestSampler() Sampler {
	return Sampler{MinFilter: FilterNearest, MagFilter: FilterLinear, Wrap: WrapRepeat}
}

// minFilter returns the effective min filter: without mipmaps, a
// mipmapped filter would leave the texture incomplete.
func (sm *Sampler) minFilter() Filters {
	if sm.Mipmaps || !sm.MinFilter.Mipmapped() {
		return sm.MinFilter
	}
	switch sm.MinFilter {
	case FilterNearestMipmapNearest, FilterNearestMipmapLinear:
		return FilterNearest
	}
	return FilterLinear
}

func (sm *Sampler) magFilter() Filters {
	if sm.MagFilter == FilterNearest {
		return FilterNearest
	}
	return FilterLinear
}
