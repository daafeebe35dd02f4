// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/ladder/base/errors"
	"cogentcore.org/ladder/gpu/gl"
)

var (
	// ErrNotCurrent means the graphics context is missing or not
	// current on the calling thread.
	ErrNotCurrent = errors.New("graphics context is not current")

	// ErrOutOfMemory means the driver could not allocate a GPU object.
	ErrOutOfMemory = errors.New("GPU out of memory")

	// ErrNotCreated means a resource was used before it was
	// created or after it was destroyed.
	ErrNotCreated = errors.New("resource has not been created")

	// ErrNotBound means an operation needed a bound program or geometry.
	ErrNotBound = errors.New("resource is not bound")

	// ErrProgramState means a program operation is not valid in the
	// current [ProgramStates].
	ErrProgramState = errors.New("invalid program state")

	// ErrInvalidLayout means a [VertexLayout] does not describe
	// a valid vertex record.
	ErrInvalidLayout = errors.New("invalid vertex layout")

	// ErrLayoutMismatch means the vertex layout does not feed the
	// inputs declared by the vertex shader.
	ErrLayoutMismatch = errors.New("vertex layout does not match shader inputs")

	// ErrInvalidGeometry means vertex or index data is malformed.
	ErrInvalidGeometry = errors.New("invalid geometry data")

	// ErrIndexOutOfRange means an index refers past the last vertex.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidFaces means the faces cannot partition the draw.
	ErrInvalidFaces = errors.New("invalid face partition")
)

// ResourceError is a fatal error creating or binding GPU resources,
// such as a buffer allocation failure or a context that is not current.
type ResourceError struct {
	// Op is the operation that failed, e.g. "gpu.Geometry Create".
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *ResourceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ShaderStages are the stages of building a [Program]
// that can fail with a [ShaderError].
type ShaderStages int32

const (
	// VertexStage is compilation of the vertex shader.
	VertexStage ShaderStages = iota

	// FragmentStage is compilation of the fragment shader.
	FragmentStage

	// LinkStage is linking the compiled stages into a program.
	LinkStage
)

func (st ShaderStages) String() string {
	switch st {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	case LinkStage:
		return "link"
	}
	return fmt.Sprintf("ShaderStages(%d)", int32(st))
}

// ShaderError is a compile or link failure, carrying the driver log.
type ShaderError struct {
	Stage ShaderStages
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s shader stage failed", e.Stage)
	}
	return fmt.Sprintf("%s shader stage failed: %s", e.Stage, e.Log)
}

// TextureLoadError describes why a texture image could not be loaded.
// It never escapes [TextureLoader.Load]: it is logged and
// replaced with a fallback image.
type TextureLoadError struct {
	Path string
	Err  error
}

func (e *TextureLoadError) Error() string {
	return fmt.Sprintf("loading texture %q: %v", e.Path, e.Err)
}

func (e *TextureLoadError) Unwrap() error { return e.Err }

// checkCurrent returns a [ResourceError] for the given operation
// if ctx is nil or not current.
func checkCurrent(ctx gl.Context, op string) error {
	if ctx == nil || !ctx.IsCurrent() {
		return &ResourceError{Op: op, Err: ErrNotCurrent}
	}
	return nil
}

// checkGL drains the GL error queue, returning a [ResourceError]
// for the given operation if any error was pending.
// OUT_OF_MEMORY is reported as [ErrOutOfMemory].
func checkGL(ctx gl.Context, op string) error {
	var errs []error
	for range 8 {
		code := ctx.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if code == gl.OUT_OF_MEMORY {
			errs = append(errs, ErrOutOfMemory)
			continue
		}
		errs = append(errs, errors.New(gl.ErrorString(code)))
	}
	if len(errs) == 0 {
		return nil
	}
	return &ResourceError{Op: op, Err: errors.Join(errs...)}
}
