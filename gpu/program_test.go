// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"cogentcore.org/ladder/gpu/gl"
	"cogentcore.org/ladder/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const colorVert = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
out vec3 ourColor;
uniform mat4 model;
void main()
{
    gl_Position = model * vec4(aPos, 1.0);
    ourColor = aColor;
}
`

const colorFrag = `#version 330 core
in vec3 ourColor;
out vec4 FragColor;
uniform float alpha;
void main()
{
    FragColor = vec4(ourColor, alpha);
}
`

// captureLog sends the default logger to a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestProgramCompileAndLink(t *testing.T) {
	ctx := gputest.NewContext()
	pr := NewProgram(ctx, "color")
	assert.Equal(t, ProgramUnlinked, pr.State())
	require.NoError(t, pr.CompileAndLink(colorVert, colorFrag))
	assert.Equal(t, ProgramLinked, pr.State())
	assert.Equal(t, []string{"model", "alpha"}, pr.Uniforms())
	assert.Len(t, pr.Inputs(), 2)
	assert.True(t, pr.HasUniform("model"))
	assert.False(t, pr.HasUniform("view"))

	err := pr.CompileAndLink(colorVert, colorFrag)
	assert.ErrorIs(t, err, ErrProgramState)

	pr.Destroy()
	assert.Equal(t, 0, ctx.Live())
	assert.Error(t, pr.Bind())
}

func TestProgramCompileFailure(t *testing.T) {
	captureLog(t)
	tests := []struct {
		name  string
		setup func(ctx *gputest.Context)
		vert  string
		stage ShaderStages
	}{
		{"vertex", func(ctx *gputest.Context) {
			ctx.CompileErrors[gl.VERTEX_SHADER] = "0:3(1): error: syntax error"
		}, colorVert, VertexStage},
		{"fragment", func(ctx *gputest.Context) {
			ctx.CompileErrors[gl.FRAGMENT_SHADER] = "0:5(1): error: undeclared"
		}, colorVert, FragmentStage},
		{"no version", func(ctx *gputest.Context) {}, "void main() {}", VertexStage},
		{"link", func(ctx *gputest.Context) {
			ctx.LinkError = "error: varying mismatch"
		}, colorVert, LinkStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := gputest.NewContext()
			tt.setup(ctx)
			pr := NewProgram(ctx, tt.name)
			err := pr.CompileAndLink(tt.vert, colorFrag)
			var se *ShaderError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.stage, se.Stage)
			assert.NotEmpty(t, se.Log)
			assert.Equal(t, ProgramFailed, pr.State())
			assert.Equal(t, se.Log, pr.Log())

			assert.ErrorIs(t, pr.Bind(), ErrProgramState)
			assert.ErrorIs(t, pr.CompileAndLink(colorVert, colorFrag), ErrProgramState)
			pr.Destroy()
			assert.Equal(t, se.Log, pr.Log())
			assert.Equal(t, 0, ctx.Live())
		})
	}
}

func TestProgramNotCurrent(t *testing.T) {
	ctx := gputest.NewContext()
	ctx.Current = false
	pr := NewProgram(ctx, "color")
	assert.ErrorIs(t, pr.CompileAndLink(colorVert, colorFrag), ErrNotCurrent)
	assert.Equal(t, ProgramUnlinked, pr.State())
}

func TestSetUniform(t *testing.T) {
	ctx := gputest.NewContext()
	pr := NewProgram(ctx, "color")
	require.NoError(t, pr.CompileAndLink(colorVert, colorFrag))
	defer pr.Destroy()

	require.NoError(t, pr.Bind())
	defer pr.Release()
	assert.True(t, pr.IsBound())
	id := ctx.CurrentProgram()

	m := mgl32.Translate3D(1, 2, 3)
	pr.SetUniform("model", m)
	pr.SetUniform("alpha", float32(0.5))
	assert.Equal(t, m[:], ctx.UniformValue(id, "model"))
	assert.Equal(t, []float32{0.5}, ctx.UniformValue(id, "alpha"))
}

func TestSetUniformMissing(t *testing.T) {
	buf := captureLog(t)
	ctx := gputest.NewContext()
	pr := NewProgram(ctx, "color")
	require.NoError(t, pr.CompileAndLink(colorVert, colorFrag))
	defer pr.Destroy()
	require.NoError(t, pr.Bind())
	defer pr.Release()

	for range 3 {
		pr.SetUniform("projection", mgl32.Ident4())
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "uniform not found"))
	assert.Zero(t, ctx.CallCount("UniformMatrix4fv"))
	assert.Equal(t, 1, ctx.CallCount("GetUniformLocation"))
	assert.Equal(t, gl.NO_ERROR, ctx.GetError())
}

func TestSetUniformUnbound(t *testing.T) {
	buf := captureLog(t)
	ctx := gputest.NewContext()
	pr := NewProgram(ctx, "color")
	require.NoError(t, pr.CompileAndLink(colorVert, colorFrag))
	defer pr.Destroy()

	pr.SetUniform("model", mgl32.Ident4())
	assert.Contains(t, buf.String(), ErrNotBound.Error())
	assert.Zero(t, ctx.CallCount("UniformMatrix4fv"))
}

func TestBindAttribute(t *testing.T) {
	ctx := gputest.NewContext()
	pr := NewProgram(ctx, "color")
	require.NoError(t, pr.CompileAndLink(colorVert, colorFrag))
	defer pr.Destroy()
	gm, err := NewGeometry(ctx, "quad", PosColorLayout, quadVertices, quadIndices)
	require.NoError(t, err)
	defer gm.Destroy()

	assert.ErrorIs(t, pr.BindAttribute(0, gm, 3, 24, 0), ErrNotBound)

	require.NoError(t, pr.Bind())
	defer pr.Release()
	require.NoError(t, gm.Bind())
	defer gm.Release()

	assert.ErrorIs(t, pr.BindAttribute(1, gm, 3, 24, 16), ErrInvalidLayout)
	assert.ErrorIs(t, pr.BindAttribute(1, gm, 5, 40, 0), ErrInvalidLayout)
	require.NoError(t, pr.BindLayout(gm))

	vao := ctx.VertexArrays[ctx.BoundVertexArray()]
	require.NotNil(t, vao)
	col := vao.Attribs[1]
	require.NotNil(t, col)
	assert.True(t, col.Enabled)
	assert.Equal(t, 3, col.Size)
	assert.Equal(t, 24, col.Stride)
	assert.Equal(t, 12, col.Offset)
}
