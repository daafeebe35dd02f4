// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import (
	"encoding/binary"
	"image"
	"math"
	"testing"

	"cogentcore.org/ladder/gpu/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatBytes(vs ...float32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

const vert = `#version 330 core
layout (location = 0) in vec2 pos;
uniform float scale;
void main() { gl_Position = vec4(pos * scale, 0.0, 1.0); }`

const frag = `#version 330 core
out vec4 color;
uniform vec4 tint; // uniform vec4 ignored;
void main() { color = tint; }`

// setup links a program and uploads a full-screen pair of
// triangles in a vertex array, leaving both bound.
func setup(t *testing.T, c *Context) gl.Program {
	vs := c.CreateShader(gl.VERTEX_SHADER)
	c.ShaderSource(vs, vert)
	c.CompileShader(vs)
	require.Equal(t, statusTrue, c.GetShaderi(vs, gl.COMPILE_STATUS))
	fs := c.CreateShader(gl.FRAGMENT_SHADER)
	c.ShaderSource(fs, frag)
	c.CompileShader(fs)
	p := c.CreateProgram()
	c.AttachShader(p, vs)
	c.AttachShader(p, fs)
	c.LinkProgram(p)
	require.Equal(t, statusTrue, c.GetProgrami(p, gl.LINK_STATUS), c.GetProgramInfoLog(p))
	assert.Equal(t, []string{"scale", "tint"}, c.Programs[p.Value].Uniforms)
	c.UseProgram(p)

	va := c.CreateVertexArray()
	c.BindVertexArray(va)
	b := c.CreateBuffer()
	c.BindBuffer(gl.ARRAY_BUFFER, b)
	c.BufferData(gl.ARRAY_BUFFER, floatBytes(-1, -1, 1, -1, 1, 1, -1, 1), gl.STATIC_DRAW)
	c.EnableVertexAttribArray(gl.Attrib{Value: 0})
	c.VertexAttribPointer(gl.Attrib{Value: 0}, 2, gl.FLOAT, false, 8, 0)
	eb := c.CreateBuffer()
	c.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, eb)
	idx := make([]byte, 4*6)
	for i, v := range []uint32{0, 1, 2, 2, 3, 0} {
		binary.LittleEndian.PutUint32(idx[4*i:], v)
	}
	c.BufferData(gl.ELEMENT_ARRAY_BUFFER, idx, gl.STATIC_DRAW)
	return p
}

func TestContextDraw(t *testing.T) {
	c := NewContext()
	p := setup(t, c)
	c.Uniform1f(c.GetUniformLocation(p, "scale"), 1)
	c.Uniform4f(c.GetUniformLocation(p, "tint"), 1, 0, 0, 1)
	assert.Equal(t, int32(-1), c.GetUniformLocation(p, "ignored").Value)

	c.DrawElements(gl.TRIANGLES, 3, gl.UNSIGNED_INT, 12)
	require.Len(t, c.Draws, 1)
	d := c.Draws[0]
	assert.Equal(t, []uint32{2, 3, 0}, d.Indices)
	assert.Equal(t, [][]float32{{1, 1}, {-1, 1}, {-1, -1}}, d.Attribs[0])
	assert.Equal(t, []float32{1, 0, 0, 1}, d.Uniforms["tint"])
	assert.Equal(t, gl.NO_ERROR, c.GetError())

	// past the end of the element buffer
	c.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, 4)
	assert.Equal(t, gl.INVALID_OPERATION, c.GetError())
	assert.Len(t, c.Draws, 1)
}

func TestContextCompileErrors(t *testing.T) {
	c := NewContext()
	c.CompileErrors[gl.FRAGMENT_SHADER] = "bad"
	fs := c.CreateShader(gl.FRAGMENT_SHADER)
	c.ShaderSource(fs, frag)
	c.CompileShader(fs)
	assert.Zero(t, c.GetShaderi(fs, gl.COMPILE_STATUS))
	assert.Equal(t, "bad", c.GetShaderInfoLog(fs))

	vs := c.CreateShader(gl.VERTEX_SHADER)
	c.ShaderSource(vs, "void main() {}")
	c.CompileShader(vs)
	assert.Contains(t, c.GetShaderInfoLog(vs), "#version")

	p := c.CreateProgram()
	c.LinkProgram(p)
	assert.Zero(t, c.GetProgrami(p, gl.LINK_STATUS))
	c.UseProgram(p)
	assert.Equal(t, gl.INVALID_OPERATION, c.GetError())

	c.DeleteShader(fs)
	c.DeleteShader(vs)
	c.DeleteProgram(p)
	assert.Zero(t, c.Live())
}

func TestContextTexture(t *testing.T) {
	c := NewContext()
	tx := c.CreateTexture()
	c.ActiveTexture(gl.TEXTURE0 + 2)
	c.BindTexture(gl.TEXTURE_2D, tx)
	assert.Equal(t, tx.Value, c.BoundTexture(2))
	c.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA8), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, []byte{1, 2, 3, 4})
	c.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA8), 2, 2, gl.RGBA, gl.UNSIGNED_BYTE, []byte{1, 2, 3, 4})
	assert.Equal(t, gl.INVALID_VALUE, c.GetError())
	c.GenerateMipmap(gl.TEXTURE_2D)
	to := c.Textures[tx.Value]
	assert.True(t, to.Mipmaps)
	assert.Equal(t, []byte{1, 2, 3, 4}, to.Image().Pix)

	c.DeleteTexture(tx)
	assert.Zero(t, c.BoundTexture(2))
	c.OutOfMemory = true
	tx = c.CreateTexture()
	c.BindTexture(gl.TEXTURE_2D, tx)
	c.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA8), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, []byte{1, 2, 3, 4})
	assert.Equal(t, gl.OUT_OF_MEMORY, c.GetError())
}

func TestCoverageSharedEdge(t *testing.T) {
	c := NewContext()
	setup(t, c)
	c.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, 0)
	require.Len(t, c.Draws, 1)
	mask := Coverage(c.Draws[0], 0, 64, 48)
	// the diagonal is covered once, so the whole viewport is covered
	assert.Equal(t, 64*48, Covered(mask, mask.Rect))
}

func TestCoverageTriangle(t *testing.T) {
	d := Draw{Attribs: map[int][][]float32{0: {{0, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0}}}}
	mask := Coverage(d, 0, 100, 100)
	n := Covered(mask, mask.Rect)
	// half of the 50x50 bounding box
	assert.InDelta(t, 1250, n, 50)
	assert.Equal(t, n, Covered(mask, image.Rect(25, 25, 75, 75)))
	assert.Zero(t, mask.AlphaAt(50, 10).A)
	assert.NotZero(t, mask.AlphaAt(50, 70).A)
}
