// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gl defines the OpenGL context interface, handle types and
// constants used by the gpu render pipeline. The shapes follow
// golang.org/x/mobile/gl so that any GL binding can be adapted to it.
package gl

import "fmt"

// Enum is an OpenGL enumerated value. The constants below
// use the values from the OpenGL registry, so backends can
// pass them straight through to the driver.
type Enum uint32

// OpenGL constants used by the render pipeline.
const (
	NO_ERROR          Enum = 0
	INVALID_ENUM      Enum = 0x0500
	INVALID_VALUE     Enum = 0x0501
	INVALID_OPERATION Enum = 0x0502
	OUT_OF_MEMORY     Enum = 0x0505

	TRIANGLES Enum = 0x0004

	UNSIGNED_BYTE Enum = 0x1401
	UNSIGNED_INT  Enum = 0x1405
	FLOAT         Enum = 0x1406

	DEPTH_BUFFER_BIT Enum = 0x0100
	COLOR_BUFFER_BIT Enum = 0x4000
	DEPTH_TEST       Enum = 0x0B71

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4

	FRAGMENT_SHADER Enum = 0x8B30
	VERTEX_SHADER   Enum = 0x8B31
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82

	TEXTURE_2D         Enum = 0x0DE1
	TEXTURE0           Enum = 0x84C0
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803

	NEAREST                Enum = 0x2600
	LINEAR                 Enum = 0x2601
	NEAREST_MIPMAP_NEAREST Enum = 0x2700
	LINEAR_MIPMAP_NEAREST  Enum = 0x2701
	NEAREST_MIPMAP_LINEAR  Enum = 0x2702
	LINEAR_MIPMAP_LINEAR   Enum = 0x2703

	REPEAT          Enum = 0x2901
	CLAMP_TO_EDGE   Enum = 0x812F
	MIRRORED_REPEAT Enum = 0x8370

	RGBA  Enum = 0x1908
	RGBA8 Enum = 0x8058

	VENDOR   Enum = 0x1F00
	RENDERER Enum = 0x1F01
	VERSION  Enum = 0x1F02
)

// Buffer is a GL buffer object.
type Buffer struct{ Value uint32 }

// VertexArray is a GL vertex array object.
type VertexArray struct{ Value uint32 }

// Shader is a GL shader object.
type Shader struct{ Value uint32 }

// Program is a GL program object.
type Program struct{ Value uint32 }

// Texture is a GL texture object.
type Texture struct{ Value uint32 }

// Uniform is a uniform location in a linked program.
// A Value of -1 means the uniform does not exist.
type Uniform struct{ Value int32 }

// Attrib is a vertex attribute location.
type Attrib struct{ Value uint32 }

// Valid returns whether the uniform refers to an active uniform.
func (u Uniform) Valid() bool { return u.Value >= 0 }

// Context is the subset of the OpenGL 3.3 core / ES 3.0 API used by the
// render pipeline. It is supplied by the host once its graphics context
// is current, and every method must be called on the thread that owns
// that context. Handle and method shapes follow golang.org/x/mobile/gl.
type Context interface {
	// IsCurrent reports whether the context is current on the calling thread.
	IsCurrent() bool

	GetError() Enum
	GetString(name Enum) string

	ClearColor(red, green, blue, alpha float32)
	Clear(mask Enum)
	Enable(capability Enum)
	Disable(capability Enum)
	Viewport(x, y, width, height int)

	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, src []byte, usage Enum)
	DeleteBuffer(b Buffer)

	CreateVertexArray() VertexArray
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)

	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	GetUniformLocation(p Program, name string) Uniform
	Uniform1i(dst Uniform, v int)
	Uniform1f(dst Uniform, v float32)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	UniformMatrix4fv(dst Uniform, src []float32)

	EnableVertexAttribArray(a Attrib)
	DisableVertexAttribArray(a Attrib)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)

	CreateTexture() Texture
	ActiveTexture(texture Enum)
	BindTexture(target Enum, t Texture)
	TexImage2D(target Enum, level int, internalFormat int, width, height int, format Enum, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	GenerateMipmap(target Enum)
	DeleteTexture(t Texture)

	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
}

// ErrorString returns a readable name for a GL error code.
func ErrorString(e Enum) string {
	switch e {
	case NO_ERROR:
		return "NO_ERROR"
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	}
	return fmt.Sprintf("GL error 0x%04X", uint32(e))
}
