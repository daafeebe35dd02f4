// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackedLayout(t *testing.T) {
	assert.Equal(t, 24, PosColorLayout.Stride())
	assert.Equal(t, 6, PosColorLayout.Floats())
	assert.Equal(t, 20, PosTexLayout.Stride())

	at, ok := PosTexLayout.AttributeAt(1)
	assert.True(t, ok)
	assert.Equal(t, Attribute{Name: "TexCoord", Location: 1, Components: 2, Offset: 12}, at)
	_, ok = PosTexLayout.AttributeAt(2)
	assert.False(t, ok)
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name  string
		attrs []Attribute
		ok    bool
	}{
		{"pos color", PosColorLayout.Attributes, true},
		{"empty", nil, false},
		{"too many components", []Attribute{{Name: "P", Components: 5}}, false},
		{"unaligned", []Attribute{{Name: "P", Components: 3, Offset: 2}}, false},
		{"past stride", []Attribute{{Name: "P", Components: 3, Offset: 4}}, false},
		{"same location", []Attribute{{Name: "A", Components: 1}, {Name: "B", Components: 1, Offset: 4}}, false},
		{"overlap", []Attribute{{Name: "A", Components: 2}, {Name: "B", Location: 1, Components: 1, Offset: 4}, {Name: "C", Location: 2, Components: 1, Offset: 8}}, false},
		{"two scalars", []Attribute{{Name: "A", Components: 1}, {Name: "B", Location: 1, Components: 1, Offset: 4}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vl := NewVertexLayout(tt.attrs...)
			err := vl.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidLayout)
			}
		})
	}
}

// Every attribute of a valid layout ends within the stride.
func TestLayoutWithinStride(t *testing.T) {
	for _, vl := range []VertexLayout{PosColorLayout, PosTexLayout} {
		assert.NoError(t, vl.Validate())
		for _, at := range vl.Attributes {
			assert.LessOrEqual(t, at.Offset+at.Components*FloatSize, vl.Stride())
		}
	}
}

func TestLayoutMatch(t *testing.T) {
	ins := ParseShaderInputs(`#version 330 core
layout (location = 0) in vec3 aPos;
layout(location=1) in vec3 aColor;
void main() {}`)
	assert.Equal(t, []ShaderInput{{"aPos", 0, 3}, {"aColor", 1, 3}}, ins)
	assert.NoError(t, PosColorLayout.Match(ins))
	assert.ErrorIs(t, PosTexLayout.Match(ins), ErrLayoutMismatch)

	// attributes the shader does not declare are fine
	assert.NoError(t, PosColorLayout.Match(ins[:1]))

	missing := []ShaderInput{{"aTexCoord", 2, 2}}
	assert.ErrorIs(t, PosTexLayout.Match(missing), ErrLayoutMismatch)
}

func TestParseUniforms(t *testing.T) {
	src := `uniform mat4 model;
// uniform mat4 commented;
uniform highp sampler2D tex;
/* uniform vec3 block; */
uniform mat4 model;
uniform float weights[4];`
	assert.Equal(t, []string{"model", "tex", "weights"}, ParseUniforms(src))
}
