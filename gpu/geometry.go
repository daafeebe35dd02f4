// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"
	"fmt"
	"slices"

	"cogentcore.org/ladder/gpu/gl"
	"golang.org/x/mobile/exp/f32"
)

// IndexSize is the size of a uint32 index in bytes.
const IndexSize = 4

// Geometry owns static vertex data and optional index data on the GPU,
// in a vertex array object with one vertex buffer and at most one
// element buffer. The data is copied at creation and never re-uploaded:
// changing geometry means destroying it and creating a new one.
type Geometry struct {
	// Name of the geometry, for diagnostics.
	Name string

	// Layout of one interleaved vertex record.
	Layout VertexLayout

	vertices []float32
	indices  []uint32
	nVertex  int

	ctx   gl.Context
	vao   gl.VertexArray
	vbo   gl.Buffer
	ebo   gl.Buffer
	live  bool
	bound bool
}

// ValidateGeometry checks that vertices hold a whole number of records
// of the layout, and that every index refers to an existing vertex.
// It returns the number of vertices.
func ValidateGeometry(layout VertexLayout, vertices []float32, indices []uint32) (int, error) {
	if err := layout.Validate(); err != nil {
		return 0, err
	}
	nf := layout.Floats()
	if len(vertices) == 0 || len(vertices)%nf != 0 {
		return 0, fmt.Errorf("%w: %d floats is not a whole number of %d-float vertices", ErrInvalidGeometry, len(vertices), nf)
	}
	nv := len(vertices) / nf
	for i, ix := range indices {
		if int64(ix) >= int64(nv) {
			return 0, fmt.Errorf("%w: index %d at position %d, vertex count %d", ErrIndexOutOfRange, ix, i, nv)
		}
	}
	return nv, nil
}

// NewGeometry validates the data and uploads it to new GPU buffers.
// Pass nil indices for non-indexed geometry. It returns a
// [ResourceError] if the context is not current or allocation fails.
func NewGeometry(ctx gl.Context, name string, layout VertexLayout, vertices []float32, indices []uint32) (*Geometry, error) {
	nv, err := ValidateGeometry(layout, vertices, indices)
	if err != nil {
		return nil, &ResourceError{Op: "gpu.NewGeometry " + name, Err: err}
	}
	if err := checkCurrent(ctx, "gpu.NewGeometry "+name); err != nil {
		return nil, err
	}
	gm := &Geometry{Name: name, Layout: layout, nVertex: nv, ctx: ctx}
	gm.Layout.Attributes = slices.Clone(layout.Attributes)
	gm.vertices = slices.Clone(vertices)
	if len(indices) > 0 {
		gm.indices = slices.Clone(indices)
	}
	if err := gm.upload(); err != nil {
		gm.Destroy()
		return nil, err
	}
	return gm, nil
}

func (gm *Geometry) upload() error {
	ctx := gm.ctx
	gm.vao = ctx.CreateVertexArray()
	ctx.BindVertexArray(gm.vao)
	defer ctx.BindVertexArray(gl.VertexArray{})
	gm.live = true

	gm.vbo = ctx.CreateBuffer()
	ctx.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	ctx.BufferData(gl.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, gm.vertices...), gl.STATIC_DRAW)
	ctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})

	if gm.Indexed() {
		gm.ebo = ctx.CreateBuffer()
		// element buffer binding is recorded in the vertex array
		ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		ctx.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBytes(gm.indices), gl.STATIC_DRAW)
	}
	return checkGL(ctx, "gpu.Geometry upload "+gm.Name)
}

func indexBytes(indices []uint32) []byte {
	b := make([]byte, len(indices)*IndexSize)
	for i, ix := range indices {
		binary.LittleEndian.PutUint32(b[i*IndexSize:], ix)
	}
	return b
}

// VertexCount returns the number of vertices.
func (gm *Geometry) VertexCount() int { return gm.nVertex }

// IndexCount returns the number of indices, 0 if not indexed.
func (gm *Geometry) IndexCount() int { return len(gm.indices) }

// Indexed returns whether the geometry has an index buffer.
func (gm *Geometry) Indexed() bool { return len(gm.indices) > 0 }

// Vertices returns a copy of the vertex data.
func (gm *Geometry) Vertices() []float32 { return slices.Clone(gm.vertices) }

// Indices returns a copy of the index data.
func (gm *Geometry) Indices() []uint32 { return slices.Clone(gm.indices) }

// IsBound returns whether the geometry is currently bound.
func (gm *Geometry) IsBound() bool { return gm.bound }

// Bind binds the vertex array and buffers for attribute setup or drawing.
// Always pair with [Geometry.Release], typically via defer.
func (gm *Geometry) Bind() error {
	if gm == nil || !gm.live {
		return &ResourceError{Op: "gpu.Geometry Bind", Err: ErrNotCreated}
	}
	gm.ctx.BindVertexArray(gm.vao)
	gm.ctx.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	if gm.Indexed() {
		gm.ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	}
	gm.bound = true
	return nil
}

// Release unbinds the geometry. It is safe to call when not bound.
func (gm *Geometry) Release() {
	if gm == nil || !gm.bound {
		return
	}
	gm.ctx.BindVertexArray(gl.VertexArray{})
	gm.ctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	gm.bound = false
}

// Destroy deletes the GPU objects. It must be called while
// the context is still current. Safe to call more than once.
func (gm *Geometry) Destroy() {
	if gm == nil || !gm.live {
		return
	}
	gm.Release()
	if gm.ebo.Value != 0 {
		gm.ctx.DeleteBuffer(gm.ebo)
	}
	if gm.vbo.Value != 0 {
		gm.ctx.DeleteBuffer(gm.vbo)
	}
	if gm.vao.Value != 0 {
		gm.ctx.DeleteVertexArray(gm.vao)
	}
	gm.ebo, gm.vbo, gm.vao = gl.Buffer{}, gl.Buffer{}, gl.VertexArray{}
	gm.live = false
}
