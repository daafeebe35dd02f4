// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"slices"

	"cogentcore.org/ladder/base/errors"
)

// FloatSize is the size of a float32 vertex component in bytes.
const FloatSize = 4

// Attribute describes one float32 vertex attribute within
// an interleaved vertex record.
type Attribute struct {
	// Name is for diagnostics, e.g. "Pos".
	Name string

	// Location is the shader input location fed by this attribute.
	Location int

	// Components is the number of float32 components (1..4).
	Components int

	// Offset is the byte offset of the first component in the record.
	Offset int
}

// End returns the byte offset just past the last component.
func (at Attribute) End() int {
	return at.Offset + at.Components*FloatSize
}

// VertexLayout describes an interleaved float32 vertex record.
// The stride is derived from the record size: the sum of the
// components of all attributes.
type VertexLayout struct {
	Attributes []Attribute
}

// NewVertexLayout returns a layout with the given attributes.
func NewVertexLayout(attrs ...Attribute) VertexLayout {
	return VertexLayout{Attributes: slices.Clone(attrs)}
}

// PackedLayout returns a layout with one attribute per location,
// packed in order with no gaps. Each pair is (location, components).
func PackedLayout(names []string, locComps ...[2]int) VertexLayout {
	var vl VertexLayout
	off := 0
	for i, lc := range locComps {
		nm := ""
		if i < len(names) {
			nm = names[i]
		}
		vl.Attributes = append(vl.Attributes, Attribute{Name: nm, Location: lc[0], Components: lc[1], Offset: off})
		off += lc[1] * FloatSize
	}
	return vl
}

// Floats returns the number of float32 values in one vertex record.
func (vl *VertexLayout) Floats() int {
	n := 0
	for _, at := range vl.Attributes {
		n += at.Components
	}
	return n
}

// Stride returns the size of one vertex record in bytes.
func (vl *VertexLayout) Stride() int {
	return vl.Floats() * FloatSize
}

// AttributeAt returns the attribute feeding the given location.
func (vl *VertexLayout) AttributeAt(location int) (Attribute, bool) {
	for _, at := range vl.Attributes {
		if at.Location == location {
			return at, true
		}
	}
	return Attribute{}, false
}

// Validate checks that every attribute lies within the stride
// (offset + components*4 <= stride), is 4-byte aligned, has 1..4
// components, and that locations are unique and attributes do not overlap.
func (vl *VertexLayout) Validate() error {
	if len(vl.Attributes) == 0 {
		return fmt.Errorf("%w: no attributes", ErrInvalidLayout)
	}
	stride := vl.Stride()
	var errs []error
	seen := map[int]bool{}
	for _, at := range vl.Attributes {
		switch {
		case at.Components < 1 || at.Components > 4:
			errs = append(errs, fmt.Errorf("%w: attribute %q has %d components", ErrInvalidLayout, at.Name, at.Components))
		case at.Offset < 0 || at.Offset%FloatSize != 0:
			errs = append(errs, fmt.Errorf("%w: attribute %q offset %d is not 4-byte aligned", ErrInvalidLayout, at.Name, at.Offset))
		case at.End() > stride:
			errs = append(errs, fmt.Errorf("%w: attribute %q ends at byte %d past stride %d", ErrInvalidLayout, at.Name, at.End(), stride))
		}
		if at.Location < 0 {
			errs = append(errs, fmt.Errorf("%w: attribute %q has negative location", ErrInvalidLayout, at.Name))
		}
		if seen[at.Location] {
			errs = append(errs, fmt.Errorf("%w: location %d used twice", ErrInvalidLayout, at.Location))
		}
		seen[at.Location] = true
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	sorted := slices.Clone(vl.Attributes)
	slices.SortFunc(sorted, func(a, b Attribute) int { return a.Offset - b.Offset })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Offset < sorted[i-1].End() {
			errs = append(errs, fmt.Errorf("%w: attributes %q and %q overlap", ErrInvalidLayout, sorted[i-1].Name, sorted[i].Name))
		}
	}
	return errors.Join(errs...)
}

// Match checks that the layout feeds every declared shader input with an
// attribute of the same component count. Attributes for locations the
// shader does not declare are allowed: enabling them has no effect.
func (vl *VertexLayout) Match(inputs []ShaderInput) error {
	var errs []error
	for _, in := range inputs {
		at, ok := vl.AttributeAt(in.Location)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: no attribute for input %q at location %d", ErrLayoutMismatch, in.Name, in.Location))
			continue
		}
		if at.Components != in.Components {
			errs = append(errs, fmt.Errorf("%w: input %q at location %d has %d components, attribute %q has %d", ErrLayoutMismatch, in.Name, in.Location, in.Components, at.Name, at.Components))
		}
	}
	return errors.Join(errs...)
}

// Standard vertex layouts used by the demos.
var (
	// PosColorLayout is position (3) at location 0 and color (3) at location 1.
	PosColorLayout = PackedLayout([]string{"Pos", "Color"}, [2]int{0, 3}, [2]int{1, 3})

	// PosTexLayout is position (3) at location 0 and texture coordinate (2) at location 1.
	PosTexLayout = PackedLayout([]string{"Pos", "TexCoord"}, [2]int{0, 3}, [2]int{1, 2})
)
