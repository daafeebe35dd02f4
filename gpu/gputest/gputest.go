// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides an in-memory [gl.Context] that records
// GPU state and draw calls, for testing code that renders without a
// window or driver.
package gputest

import (
	"encoding/binary"
	"fmt"
	"image"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"

	"cogentcore.org/ladder/gpu/gl"
)

// BufferObject is a recorded buffer.
type BufferObject struct {
	Target gl.Enum
	Data   []byte
	Usage  gl.Enum
}

// AttribPointer is a recorded vertex attribute pointer.
type AttribPointer struct {
	Buffer     uint32
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
	Enabled    bool
}

// VertexArrayObject is a recorded vertex array with its
// attribute pointers and element buffer.
type VertexArrayObject struct {
	Attribs map[uint32]*AttribPointer
	Element uint32
}

// ShaderObject is a recorded shader.
type ShaderObject struct {
	Type     gl.Enum
	Source   string
	Compiled bool
	Log      string
}

// ProgramObject is a recorded program.
type ProgramObject struct {
	Shaders  []uint32
	Linked   bool
	Log      string
	Uniforms []string
	Values   map[string][]float32
}

// TextureObject is a recorded 2D texture.
type TextureObject struct {
	Width, Height  int
	InternalFormat int
	Pix            []byte
	Params         map[gl.Enum]int
	Mipmaps        bool
}

// Image returns the texture data as an image, rows in upload order.
func (to *TextureObject) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, to.Width, to.Height))
	copy(img.Pix, to.Pix)
	return img
}

// Draw is a recorded draw call, with the state it used.
type Draw struct {
	Mode    gl.Enum
	Indexed bool

	// First and Count are the vertex range for DrawArrays,
	// and Offset and Count the index range for DrawElements.
	First, Count, Offset int

	Program  uint32
	Uniforms map[string][]float32

	// Textures maps texture units to the texture bound on each.
	Textures map[int]uint32

	// Indices used, nil for DrawArrays.
	Indices []uint32

	// Attribs are the values of each enabled attribute
	// for every vertex in draw order.
	Attribs map[int][][]float32
}

// Context is an in-memory [gl.Context]. The zero value is not
// usable; use [NewContext].
type Context struct {
	// Current is returned by IsCurrent.
	Current bool

	// Strings are returned by GetString.
	Strings map[gl.Enum]string

	// CompileErrors forces compilation of shaders of a type to fail
	// with the given log.
	CompileErrors map[gl.Enum]string

	// LinkError forces linking to fail with the given log.
	LinkError string

	// OutOfMemory makes data uploads fail with OUT_OF_MEMORY.
	OutOfMemory bool

	// Calls is the name of every method called, in order.
	Calls []string

	Draws        []Draw
	Clears       []gl.Enum
	ClearColor4  [4]float32
	Enabled      map[gl.Enum]bool
	ViewportRect image.Rectangle

	Buffers      map[uint32]*BufferObject
	VertexArrays map[uint32]*VertexArrayObject
	Shaders      map[uint32]*ShaderObject
	Programs     map[uint32]*ProgramObject
	Textures     map[uint32]*TextureObject

	next       uint32
	errs       []gl.Enum
	arrayBuf   uint32
	vao        uint32
	program    uint32
	activeUnit int
	units      map[int]uint32
	defaultVAO *VertexArrayObject
}

// NewContext returns a current, empty context.
func NewContext() *Context {
	return &Context{
		Current: true,
		Strings: map[gl.Enum]string{
			gl.VENDOR:   "gputest",
			gl.RENDERER: "gputest",
			gl.VERSION:  "3.3 gputest",
		},
		CompileErrors: map[gl.Enum]string{},
		Enabled:       map[gl.Enum]bool{},
		Buffers:       map[uint32]*BufferObject{},
		VertexArrays:  map[uint32]*VertexArrayObject{},
		Shaders:       map[uint32]*ShaderObject{},
		Programs:      map[uint32]*ProgramObject{},
		Textures:      map[uint32]*TextureObject{},
		units:         map[int]uint32{},
		defaultVAO:    &VertexArrayObject{Attribs: map[uint32]*AttribPointer{}},
	}
}

func (c *Context) call(name string) { c.Calls = append(c.Calls, name) }

func (c *Context) fail(e gl.Enum) { c.errs = append(c.errs, e) }

func (c *Context) newName() uint32 {
	c.next++
	return c.next
}

// InjectError queues a GL error to be returned by GetError.
func (c *Context) InjectError(e gl.Enum) { c.errs = append(c.errs, e) }

// Live returns the number of GPU objects not yet deleted.
func (c *Context) Live() int {
	return len(c.Buffers) + len(c.VertexArrays) + len(c.Shaders) + len(c.Programs) + len(c.Textures)
}

// CallCount returns how many times the named method was called.
func (c *Context) CallCount(name string) int {
	n := 0
	for _, cl := range c.Calls {
		if cl == name {
			n++
		}
	}
	return n
}

// ResetCalls clears the recorded calls, draws and clears.
func (c *Context) ResetCalls() {
	c.Calls = nil
	c.Draws = nil
	c.Clears = nil
}

// CurrentProgram returns the program in use, 0 if none.
func (c *Context) CurrentProgram() uint32 { return c.program }

// BoundVertexArray returns the vertex array bound, 0 if none.
func (c *Context) BoundVertexArray() uint32 { return c.vao }

// BoundTexture returns the texture bound on the unit, 0 if none.
func (c *Context) BoundTexture(unit int) uint32 { return c.units[unit] }

func (c *Context) IsCurrent() bool { return c.Current }

func (c *Context) GetError() gl.Enum {
	c.call("GetError")
	if len(c.errs) == 0 {
		return gl.NO_ERROR
	}
	e := c.errs[0]
	c.errs = c.errs[1:]
	return e
}

func (c *Context) GetString(name gl.Enum) string {
	c.call("GetString")
	return c.Strings[name]
}

func (c *Context) ClearColor(red, green, blue, alpha float32) {
	c.call("ClearColor")
	c.ClearColor4 = [4]float32{red, green, blue, alpha}
}

func (c *Context) Clear(mask gl.Enum) {
	c.call("Clear")
	c.Clears = append(c.Clears, mask)
}

func (c *Context) Enable(capability gl.Enum) {
	c.call("Enable")
	c.Enabled[capability] = true
}

func (c *Context) Disable(capability gl.Enum) {
	c.call("Disable")
	c.Enabled[capability] = false
}

func (c *Context) Viewport(x, y, width, height int) {
	c.call("Viewport")
	c.ViewportRect = image.Rect(x, y, x+width, y+height)
}

func (c *Context) CreateBuffer() gl.Buffer {
	c.call("CreateBuffer")
	n := c.newName()
	c.Buffers[n] = &BufferObject{}
	return gl.Buffer{Value: n}
}

func (c *Context) currentVAO() *VertexArrayObject {
	if c.vao == 0 {
		return c.defaultVAO
	}
	return c.VertexArrays[c.vao]
}

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	c.call("BindBuffer")
	if b.Value != 0 && c.Buffers[b.Value] == nil {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	switch target {
	case gl.ARRAY_BUFFER:
		c.arrayBuf = b.Value
	case gl.ELEMENT_ARRAY_BUFFER:
		c.currentVAO().Element = b.Value
	default:
		c.fail(gl.INVALID_ENUM)
	}
}

func (c *Context) boundBuffer(target gl.Enum) *BufferObject {
	switch target {
	case gl.ARRAY_BUFFER:
		return c.Buffers[c.arrayBuf]
	case gl.ELEMENT_ARRAY_BUFFER:
		return c.Buffers[c.currentVAO().Element]
	}
	return nil
}

func (c *Context) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	c.call("BufferData")
	if c.OutOfMemory {
		c.fail(gl.OUT_OF_MEMORY)
		return
	}
	bo := c.boundBuffer(target)
	if bo == nil {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	bo.Target = target
	bo.Data = slices.Clone(src)
	bo.Usage = usage
}

func (c *Context) DeleteBuffer(b gl.Buffer) {
	c.call("DeleteBuffer")
	delete(c.Buffers, b.Value)
	if c.arrayBuf == b.Value {
		c.arrayBuf = 0
	}
}

func (c *Context) CreateVertexArray() gl.VertexArray {
	c.call("CreateVertexArray")
	n := c.newName()
	c.VertexArrays[n] = &VertexArrayObject{Attribs: map[uint32]*AttribPointer{}}
	return gl.VertexArray{Value: n}
}

func (c *Context) BindVertexArray(va gl.VertexArray) {
	c.call("BindVertexArray")
	if va.Value != 0 && c.VertexArrays[va.Value] == nil {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	c.vao = va.Value
}

func (c *Context) DeleteVertexArray(va gl.VertexArray) {
	c.call("DeleteVertexArray")
	delete(c.VertexArrays, va.Value)
	if c.vao == va.Value {
		c.vao = 0
	}
}

func (c *Context) CreateShader(ty gl.Enum) gl.Shader {
	c.call("CreateShader")
	n := c.newName()
	c.Shaders[n] = &ShaderObject{Type: ty}
	return gl.Shader{Value: n}
}

func (c *Context) ShaderSource(s gl.Shader, src string) {
	c.call("ShaderSource")
	if so := c.Shaders[s.Value]; so != nil {
		so.Source = src
	} else {
		c.fail(gl.INVALID_VALUE)
	}
}

// CompileShader accepts any source that declares a version and a main
// function, unless an error is forced through CompileErrors.
func (c *Context) CompileShader(s gl.Shader) {
	c.call("CompileShader")
	so := c.Shaders[s.Value]
	if so == nil {
		c.fail(gl.INVALID_VALUE)
		return
	}
	switch {
	case c.CompileErrors[so.Type] != "":
		so.Log = c.CompileErrors[so.Type]
	case !strings.Contains(so.Source, "#version"):
		so.Log = "0:1(1): error: missing #version directive"
	case !mainFunc.MatchString(so.Source):
		so.Log = "0:1(1): error: main function not defined"
	default:
		so.Compiled = true
		so.Log = ""
		return
	}
	so.Compiled = false
}

var (
	mainFunc     = regexp.MustCompile(`void\s+main\s*\(\s*\)`)
	uniformDecl  = regexp.MustCompile(`uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
	commentStrip = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
)

// statusTrue is the GL_TRUE result of a status query.
const statusTrue = 1

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	c.call("GetShaderi")
	so := c.Shaders[s.Value]
	if so == nil || pname != gl.COMPILE_STATUS {
		c.fail(gl.INVALID_ENUM)
		return 0
	}
	if so.Compiled {
		return statusTrue
	}
	return 0
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	c.call("GetShaderInfoLog")
	if so := c.Shaders[s.Value]; so != nil {
		return so.Log
	}
	return ""
}

func (c *Context) DeleteShader(s gl.Shader) {
	c.call("DeleteShader")
	delete(c.Shaders, s.Value)
}

func (c *Context) CreateProgram() gl.Program {
	c.call("CreateProgram")
	n := c.newName()
	c.Programs[n] = &ProgramObject{Values: map[string][]float32{}}
	return gl.Program{Value: n}
}

func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	c.call("AttachShader")
	po := c.Programs[p.Value]
	if po == nil || c.Shaders[s.Value] == nil {
		c.fail(gl.INVALID_VALUE)
		return
	}
	po.Shaders = append(po.Shaders, s.Value)
}

// LinkProgram links when a compiled vertex and fragment shader are
// attached. Active uniforms are those declared in either source.
func (c *Context) LinkProgram(p gl.Program) {
	c.call("LinkProgram")
	po := c.Programs[p.Value]
	if po == nil {
		c.fail(gl.INVALID_VALUE)
		return
	}
	po.Linked = false
	if c.LinkError != "" {
		po.Log = c.LinkError
		return
	}
	stages := map[gl.Enum]bool{}
	var uniforms []string
	for _, sn := range po.Shaders {
		so := c.Shaders[sn]
		if so == nil || !so.Compiled {
			po.Log = "error: linking with uncompiled shader"
			return
		}
		stages[so.Type] = true
		src := commentStrip.ReplaceAllString(so.Source, "")
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if !slices.Contains(uniforms, m[1]) {
				uniforms = append(uniforms, m[1])
			}
		}
	}
	if !stages[gl.VERTEX_SHADER] || !stages[gl.FRAGMENT_SHADER] {
		po.Log = "error: program needs a vertex and a fragment shader"
		return
	}
	po.Linked = true
	po.Log = ""
	po.Uniforms = uniforms
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	c.call("GetProgrami")
	po := c.Programs[p.Value]
	if po == nil || pname != gl.LINK_STATUS {
		c.fail(gl.INVALID_ENUM)
		return 0
	}
	if po.Linked {
		return statusTrue
	}
	return 0
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	c.call("GetProgramInfoLog")
	if po := c.Programs[p.Value]; po != nil {
		return po.Log
	}
	return ""
}

func (c *Context) UseProgram(p gl.Program) {
	c.call("UseProgram")
	if p.Value != 0 {
		po := c.Programs[p.Value]
		if po == nil || !po.Linked {
			c.fail(gl.INVALID_OPERATION)
			return
		}
	}
	c.program = p.Value
}

func (c *Context) DeleteProgram(p gl.Program) {
	c.call("DeleteProgram")
	delete(c.Programs, p.Value)
	if c.program == p.Value {
		c.program = 0
	}
}

func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	c.call("GetUniformLocation")
	po := c.Programs[p.Value]
	if po == nil || !po.Linked {
		c.fail(gl.INVALID_OPERATION)
		return gl.Uniform{Value: -1}
	}
	return gl.Uniform{Value: int32(slices.Index(po.Uniforms, name))}
}

// setUniform stores a uniform value on the current program.
func (c *Context) setUniform(name string, dst gl.Uniform, v []float32) {
	c.call(name)
	if dst.Value == -1 {
		return
	}
	po := c.Programs[c.program]
	if po == nil || int(dst.Value) >= len(po.Uniforms) || dst.Value < 0 {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	po.Values[po.Uniforms[dst.Value]] = v
}

func (c *Context) Uniform1i(dst gl.Uniform, v int) {
	c.setUniform("Uniform1i", dst, []float32{float32(v)})
}

func (c *Context) Uniform1f(dst gl.Uniform, v float32) {
	c.setUniform("Uniform1f", dst, []float32{v})
}

func (c *Context) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	c.setUniform("Uniform2f", dst, []float32{v0, v1})
}

func (c *Context) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	c.setUniform("Uniform3f", dst, []float32{v0, v1, v2})
}

func (c *Context) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	c.setUniform("Uniform4f", dst, []float32{v0, v1, v2, v3})
}

func (c *Context) UniformMatrix4fv(dst gl.Uniform, src []float32) {
	c.setUniform("UniformMatrix4fv", dst, slices.Clone(src))
}

// UniformValue returns the value last set for the named uniform
// of the program.
func (c *Context) UniformValue(program uint32, name string) []float32 {
	if po := c.Programs[program]; po != nil {
		return po.Values[name]
	}
	return nil
}

func (c *Context) EnableVertexAttribArray(a gl.Attrib) {
	c.call("EnableVertexAttribArray")
	vo := c.currentVAO()
	ap := vo.Attribs[a.Value]
	if ap == nil {
		ap = &AttribPointer{}
		vo.Attribs[a.Value] = ap
	}
	ap.Enabled = true
}

func (c *Context) DisableVertexAttribArray(a gl.Attrib) {
	c.call("DisableVertexAttribArray")
	if ap := c.currentVAO().Attribs[a.Value]; ap != nil {
		ap.Enabled = false
	}
}

func (c *Context) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	c.call("VertexAttribPointer")
	if c.arrayBuf == 0 {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	if size < 1 || size > 4 || stride < 0 || offset < 0 {
		c.fail(gl.INVALID_VALUE)
		return
	}
	vo := c.currentVAO()
	ap := vo.Attribs[dst.Value]
	if ap == nil {
		ap = &AttribPointer{}
		vo.Attribs[dst.Value] = ap
	}
	enabled := ap.Enabled
	*ap = AttribPointer{Buffer: c.arrayBuf, Size: size, Type: ty, Normalized: normalized, Stride: stride, Offset: offset, Enabled: enabled}
}

func (c *Context) CreateTexture() gl.Texture {
	c.call("CreateTexture")
	n := c.newName()
	c.Textures[n] = &TextureObject{Params: map[gl.Enum]int{}}
	return gl.Texture{Value: n}
}

func (c *Context) ActiveTexture(texture gl.Enum) {
	c.call("ActiveTexture")
	if texture < gl.TEXTURE0 || texture >= gl.TEXTURE0+32 {
		c.fail(gl.INVALID_ENUM)
		return
	}
	c.activeUnit = int(texture - gl.TEXTURE0)
}

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) {
	c.call("BindTexture")
	if target != gl.TEXTURE_2D {
		c.fail(gl.INVALID_ENUM)
		return
	}
	if t.Value != 0 && c.Textures[t.Value] == nil {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	c.units[c.activeUnit] = t.Value
}

func (c *Context) boundTexture() *TextureObject {
	return c.Textures[c.units[c.activeUnit]]
}

func (c *Context) TexImage2D(target gl.Enum, level int, internalFormat int, width, height int, format gl.Enum, ty gl.Enum, data []byte) {
	c.call("TexImage2D")
	to := c.boundTexture()
	switch {
	case to == nil:
		c.fail(gl.INVALID_OPERATION)
	case c.OutOfMemory:
		c.fail(gl.OUT_OF_MEMORY)
	case format != gl.RGBA || ty != gl.UNSIGNED_BYTE || len(data) != width*height*4:
		c.fail(gl.INVALID_VALUE)
	case level == 0:
		to.Width, to.Height = width, height
		to.InternalFormat = internalFormat
		to.Pix = slices.Clone(data)
		to.Mipmaps = false
	}
}

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	c.call("TexParameteri")
	to := c.boundTexture()
	if to == nil {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	to.Params[pname] = param
}

func (c *Context) GenerateMipmap(target gl.Enum) {
	c.call("GenerateMipmap")
	to := c.boundTexture()
	if to == nil || to.Pix == nil {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	to.Mipmaps = true
}

func (c *Context) DeleteTexture(t gl.Texture) {
	c.call("DeleteTexture")
	delete(c.Textures, t.Value)
	for u, tv := range c.units {
		if tv == t.Value {
			c.units[u] = 0
		}
	}
}

// drawState checks that a draw can be issued and starts its record.
func (c *Context) drawState(mode gl.Enum) (*Draw, bool) {
	po := c.Programs[c.program]
	if po == nil || !po.Linked || c.vao == 0 || c.VertexArrays[c.vao] == nil {
		c.fail(gl.INVALID_OPERATION)
		return nil, false
	}
	if mode != gl.TRIANGLES {
		c.fail(gl.INVALID_ENUM)
		return nil, false
	}
	d := &Draw{
		Mode:     mode,
		Program:  c.program,
		Uniforms: maps.Clone(po.Values),
		Textures: map[int]uint32{},
		Attribs:  map[int][][]float32{},
	}
	for u, t := range c.units {
		if t != 0 {
			d.Textures[u] = t
		}
	}
	return d, true
}

// fetch appends the attribute values of vertex v to the draw.
func (c *Context) fetch(d *Draw, v int) bool {
	for loc, ap := range c.VertexArrays[c.vao].Attribs {
		if !ap.Enabled {
			continue
		}
		bo := c.Buffers[ap.Buffer]
		stride := ap.Stride
		if stride == 0 {
			stride = ap.Size * 4
		}
		start := v*stride + ap.Offset
		if bo == nil || start < 0 || start+ap.Size*4 > len(bo.Data) {
			c.fail(gl.INVALID_OPERATION)
			return false
		}
		vals := make([]float32, ap.Size)
		for i := range vals {
			vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(bo.Data[start+i*4:]))
		}
		d.Attribs[int(loc)] = append(d.Attribs[int(loc)], vals)
	}
	return true
}

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	c.call("DrawArrays")
	d, ok := c.drawState(mode)
	if !ok {
		return
	}
	if first < 0 || count < 0 {
		c.fail(gl.INVALID_VALUE)
		return
	}
	d.First, d.Count = first, count
	for v := first; v < first+count; v++ {
		if !c.fetch(d, v) {
			return
		}
	}
	c.Draws = append(c.Draws, *d)
}

func (c *Context) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	c.call("DrawElements")
	d, ok := c.drawState(mode)
	if !ok {
		return
	}
	if ty != gl.UNSIGNED_INT {
		c.fail(gl.INVALID_ENUM)
		return
	}
	eb := c.Buffers[c.VertexArrays[c.vao].Element]
	if eb == nil || count < 0 || offset < 0 || offset%4 != 0 || offset+count*4 > len(eb.Data) {
		c.fail(gl.INVALID_OPERATION)
		return
	}
	d.Indexed = true
	d.Count, d.Offset = count, offset
	for i := range count {
		ix := binary.LittleEndian.Uint32(eb.Data[offset+i*4:])
		d.Indices = append(d.Indices, ix)
		if !c.fetch(d, int(ix)) {
			return
		}
	}
	c.Draws = append(c.Draws, *d)
}

// String summarizes the context state, for test failure messages.
func (c *Context) String() string {
	return fmt.Sprintf("gputest.Context{live: %d, draws: %d, program: %d, vao: %d}", c.Live(), len(c.Draws), c.program, c.vao)
}
