// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape builds the vertex and index data of simple meshes
// in the interleaved layouts used by the gpu package.
package shape

import (
	"cogentcore.org/ladder/gpu"
	"cogentcore.org/ladder/gpu/gl"
)

// Mesh is interleaved vertex data with optional indices.
// Each builder returns a new Mesh, so callers own its data.
type Mesh struct {
	// Name of the mesh, for diagnostics.
	Name string

	// Layout of each vertex record.
	Layout gpu.VertexLayout

	// Vertices are interleaved records in Layout.
	Vertices []float32

	// Indices into Vertices, nil for non-indexed meshes.
	Indices []uint32
}

// N returns the number of vertices and indices.
func (ms *Mesh) N() (numVertex, numIndex int) {
	if nf := ms.Layout.Floats(); nf > 0 {
		numVertex = len(ms.Vertices) / nf
	}
	return numVertex, len(ms.Indices)
}

// Validate checks the mesh data against its layout.
func (ms *Mesh) Validate() error {
	_, err := gpu.ValidateGeometry(ms.Layout, ms.Vertices, ms.Indices)
	return err
}

// Geometry uploads the mesh to a new [gpu.Geometry].
func (ms *Mesh) Geometry(ctx gl.Context) (*gpu.Geometry, error) {
	return gpu.NewGeometry(ctx, ms.Name, ms.Layout, ms.Vertices, ms.Indices)
}

// Vertex returns the record of vertex i.
func (ms *Mesh) Vertex(i int) []float32 {
	nf := ms.Layout.Floats()
	return ms.Vertices[i*nf : (i+1)*nf]
}

// appendVertex appends one record made of the given parts.
func (ms *Mesh) appendVertex(parts ...[]float32) {
	for _, p := range parts {
		ms.Vertices = append(ms.Vertices, p...)
	}
}
