// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glcore implements [gl.Context] over the OpenGL 4.1 core
// profile bindings from github.com/go-gl/gl.
package glcore

import (
	"strings"
	"unsafe"

	"cogentcore.org/ladder/gpu/gl"
	ogl "github.com/go-gl/gl/v4.1-core/gl"
)

// Context is a [gl.Context] for the OpenGL context that is current
// on the calling thread. It must only be used on that thread.
type Context struct {
	isCurrent func() bool
}

// NewContext loads the OpenGL function pointers for the context that
// is current on this thread, and returns a [gl.Context] for it.
// isCurrent reports whether that context is still current; the host
// window system knows this, OpenGL itself does not.
func NewContext(isCurrent func() bool) (*Context, error) {
	if err := ogl.Init(); err != nil {
		return nil, err
	}
	return &Context{isCurrent: isCurrent}, nil
}

func (c *Context) IsCurrent() bool {
	return c.isCurrent == nil || c.isCurrent()
}

func (c *Context) GetError() gl.Enum { return gl.Enum(ogl.GetError()) }

func (c *Context) GetString(name gl.Enum) string {
	p := ogl.GetString(uint32(name))
	if p == nil {
		return ""
	}
	return ogl.GoStr(p)
}

func (c *Context) ClearColor(red, green, blue, alpha float32) {
	ogl.ClearColor(red, green, blue, alpha)
}

func (c *Context) Clear(mask gl.Enum) {
	ogl.Clear(uint32(mask))
}

func (c *Context) Enable(capability gl.Enum) {
	ogl.Enable(uint32(capability))
}

func (c *Context) Disable(capability gl.Enum) {
	ogl.Disable(uint32(capability))
}

func (c *Context) Viewport(x, y, width, height int) {
	ogl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) CreateBuffer() gl.Buffer {
	var b uint32
	ogl.GenBuffers(1, &b)
	return gl.Buffer{Value: b}
}

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	ogl.BindBuffer(uint32(target), b.Value)
}

func (c *Context) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	var p unsafe.Pointer
	if len(src) > 0 {
		p = ogl.Ptr(src)
	}
	ogl.BufferData(uint32(target), len(src), p, uint32(usage))
}

func (c *Context) DeleteBuffer(b gl.Buffer) {
	ogl.DeleteBuffers(1, &b.Value)
}

func (c *Context) CreateVertexArray() gl.VertexArray {
	var va uint32
	ogl.GenVertexArrays(1, &va)
	return gl.VertexArray{Value: va}
}

func (c *Context) BindVertexArray(va gl.VertexArray) {
	ogl.BindVertexArray(va.Value)
}

func (c *Context) DeleteVertexArray(va gl.VertexArray) {
	ogl.DeleteVertexArrays(1, &va.Value)
}

func (c *Context) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{Value: ogl.CreateShader(uint32(ty))}
}

func (c *Context) ShaderSource(s gl.Shader, src string) {
	csrc, free := ogl.Strs(cString(src))
	defer free()
	ogl.ShaderSource(s.Value, 1, csrc, nil)
}

func (c *Context) CompileShader(s gl.Shader) {
	ogl.CompileShader(s.Value)
}

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var v int32
	ogl.GetShaderiv(s.Value, uint32(pname), &v)
	return int(v)
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	var n int32
	ogl.GetShaderiv(s.Value, ogl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(n+1))
	ogl.GetShaderInfoLog(s.Value, n, nil, ogl.Str(msg))
	return goString(msg)
}

func (c *Context) DeleteShader(s gl.Shader) {
	ogl.DeleteShader(s.Value)
}

func (c *Context) CreateProgram() gl.Program {
	return gl.Program{Value: ogl.CreateProgram()}
}

func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	ogl.AttachShader(p.Value, s.Value)
}

func (c *Context) LinkProgram(p gl.Program) {
	ogl.LinkProgram(p.Value)
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	var v int32
	ogl.GetProgramiv(p.Value, uint32(pname), &v)
	return int(v)
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	var n int32
	ogl.GetProgramiv(p.Value, ogl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(n+1))
	ogl.GetProgramInfoLog(p.Value, n, nil, ogl.Str(msg))
	return goString(msg)
}

func (c *Context) UseProgram(p gl.Program) {
	ogl.UseProgram(p.Value)
}

func (c *Context) DeleteProgram(p gl.Program) {
	ogl.DeleteProgram(p.Value)
}

func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{Value: ogl.GetUniformLocation(p.Value, ogl.Str(cString(name)))}
}

func (c *Context) Uniform1i(dst gl.Uniform, v int) {
	ogl.Uniform1i(dst.Value, int32(v))
}

func (c *Context) Uniform1f(dst gl.Uniform, v float32) {
	ogl.Uniform1f(dst.Value, v)
}

func (c *Context) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	ogl.Uniform2f(dst.Value, v0, v1)
}

func (c *Context) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	ogl.Uniform3f(dst.Value, v0, v1, v2)
}

func (c *Context) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	ogl.Uniform4f(dst.Value, v0, v1, v2, v3)
}

func (c *Context) UniformMatrix4fv(dst gl.Uniform, src []float32) {
	if len(src) < 16 {
		return
	}
	ogl.UniformMatrix4fv(dst.Value, int32(len(src)/16), false, &src[0])
}

func (c *Context) EnableVertexAttribArray(a gl.Attrib) {
	ogl.EnableVertexAttribArray(a.Value)
}

func (c *Context) DisableVertexAttribArray(a gl.Attrib) {
	ogl.DisableVertexAttribArray(a.Value)
}

func (c *Context) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	ogl.VertexAttribPointerWithOffset(dst.Value, int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (c *Context) CreateTexture() gl.Texture {
	var t uint32
	ogl.GenTextures(1, &t)
	return gl.Texture{Value: t}
}

func (c *Context) ActiveTexture(texture gl.Enum) {
	ogl.ActiveTexture(uint32(texture))
}

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) {
	ogl.BindTexture(uint32(target), t.Value)
}

func (c *Context) TexImage2D(target gl.Enum, level int, internalFormat int, width, height int, format gl.Enum, ty gl.Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = ogl.Ptr(data)
	}
	ogl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), p)
}

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	ogl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (c *Context) GenerateMipmap(target gl.Enum) {
	ogl.GenerateMipmap(uint32(target))
}

func (c *Context) DeleteTexture(t gl.Texture) {
	ogl.DeleteTextures(1, &t.Value)
}

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	ogl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (c *Context) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	ogl.DrawElementsWithOffset(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

// cString returns s with a null terminator, as OpenGL requires.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// goString returns s up to its first null terminator.
func goString(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

var _ gl.Context = (*Context)(nil)
