// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/ladder/gpu/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ProgramStates are the states of a [Program]. A program starts
// Unlinked and moves once to either Linked or Failed, never back.
type ProgramStates int32

const (
	ProgramUnlinked ProgramStates = iota
	ProgramLinked
	ProgramFailed
)

func (ps ProgramStates) String() string {
	switch ps {
	case ProgramUnlinked:
		return "Unlinked"
	case ProgramLinked:
		return "Linked"
	case ProgramFailed:
		return "Failed"
	}
	return fmt.Sprintf("ProgramStates(%d)", int32(ps))
}

// Program is a linked vertex + fragment shader program.
type Program struct {
	// Name of the program, for diagnostics.
	Name string

	ctx      gl.Context
	program  gl.Program
	shaders  []gl.Shader
	state    ProgramStates
	log      string
	inputs   []ShaderInput
	uniforms []string
	bound    bool

	// cached uniform locations, including missing (-1) ones
	locations map[string]gl.Uniform

	// uniform names already warned about as missing
	warned map[string]bool
}

// NewProgram returns a new unlinked program using the given context.
func NewProgram(ctx gl.Context, name string) *Program {
	return &Program{Name: name, ctx: ctx}
}

// State returns the current [ProgramStates].
func (pr *Program) State() ProgramStates { return pr.state }

// Log returns the compile or link diagnostics, if any.
func (pr *Program) Log() string { return pr.log }

// Inputs returns the located inputs declared by the vertex shader.
func (pr *Program) Inputs() []ShaderInput { return pr.inputs }

// Uniforms returns the uniform names declared by both stages.
func (pr *Program) Uniforms() []string { return pr.uniforms }

// IsBound returns whether the program is in use.
func (pr *Program) IsBound() bool { return pr.bound }

// CompileAndLink compiles both stages from source and links them.
// On failure it returns a [*ShaderError] and the program moves to
// ProgramFailed; the GL objects are kept so [Program.Log] can be read
// until [Program.Destroy].
func (pr *Program) CompileAndLink(vertexSrc, fragmentSrc string) error {
	if pr.state != ProgramUnlinked {
		return fmt.Errorf("gpu.Program %s CompileAndLink: %w: %s", pr.Name, ErrProgramState, pr.state)
	}
	if err := checkCurrent(pr.ctx, "gpu.Program CompileAndLink "+pr.Name); err != nil {
		return err
	}
	pr.inputs = ParseShaderInputs(vertexSrc)
	pr.uniforms = ParseUniforms(vertexSrc)
	for _, u := range ParseUniforms(fragmentSrc) {
		if !slices.Contains(pr.uniforms, u) {
			pr.uniforms = append(pr.uniforms, u)
		}
	}

	ctx := pr.ctx
	pr.program = ctx.CreateProgram()
	if err := pr.compile(gl.VERTEX_SHADER, VertexStage, vertexSrc); err != nil {
		return pr.fail(err)
	}
	if err := pr.compile(gl.FRAGMENT_SHADER, FragmentStage, fragmentSrc); err != nil {
		return pr.fail(err)
	}
	ctx.LinkProgram(pr.program)
	if ctx.GetProgrami(pr.program, gl.LINK_STATUS) == 0 {
		return pr.fail(&ShaderError{Stage: LinkStage, Log: ctx.GetProgramInfoLog(pr.program)})
	}
	pr.state = ProgramLinked
	pr.log = ctx.GetProgramInfoLog(pr.program)
	return nil
}

func (pr *Program) compile(ty gl.Enum, stage ShaderStages, src string) *ShaderError {
	ctx := pr.ctx
	sh := ctx.CreateShader(ty)
	pr.shaders = append(pr.shaders, sh)
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		return &ShaderError{Stage: stage, Log: ctx.GetShaderInfoLog(sh)}
	}
	ctx.AttachShader(pr.program, sh)
	return nil
}

func (pr *Program) fail(err *ShaderError) error {
	pr.state = ProgramFailed
	pr.log = err.Log
	slog.Error("gpu.Program CompileAndLink", "program", pr.Name, "stage", err.Stage.String(), "log", err.Log)
	return err
}

// Bind makes the program current. It fails unless the program is linked.
// Always pair with [Program.Release], typically via defer.
func (pr *Program) Bind() error {
	if pr.state != ProgramLinked {
		return fmt.Errorf("gpu.Program %s Bind: %w: %s", pr.Name, ErrProgramState, pr.state)
	}
	if pr.program.Value == 0 {
		return &ResourceError{Op: "gpu.Program Bind " + pr.Name, Err: ErrNotCreated}
	}
	pr.ctx.UseProgram(pr.program)
	pr.bound = true
	return nil
}

// Release stops using the program. It is safe to call when not bound.
func (pr *Program) Release() {
	if !pr.bound {
		return
	}
	pr.ctx.UseProgram(gl.Program{})
	pr.bound = false
}

// location returns the cached location of the named uniform.
func (pr *Program) location(name string) gl.Uniform {
	if loc, ok := pr.locations[name]; ok {
		return loc
	}
	if pr.locations == nil {
		pr.locations = make(map[string]gl.Uniform)
	}
	loc := pr.ctx.GetUniformLocation(pr.program, name)
	pr.locations[name] = loc
	return loc
}

// HasUniform returns whether the linked program has an active
// uniform with the given name.
func (pr *Program) HasUniform(name string) bool {
	if pr.state != ProgramLinked {
		return false
	}
	return pr.location(name).Valid()
}

// SetUniform sets the named uniform on the bound program.
// Supported values are int (including sampler units), float32,
// mgl32.Vec2, Vec3, Vec4 and Mat4. A name that is not an active
// uniform is ignored with a single warning per name, so drift between
// shader and CPU side names never stops the frame loop.
func (pr *Program) SetUniform(name string, value any) {
	if pr.state != ProgramLinked || !pr.bound {
		slog.Error("gpu.Program SetUniform", "program", pr.Name, "uniform", name, "err", ErrNotBound)
		return
	}
	loc := pr.location(name)
	if !loc.Valid() {
		if !pr.warned[name] {
			if pr.warned == nil {
				pr.warned = make(map[string]bool)
			}
			pr.warned[name] = true
			slog.Warn("gpu.Program SetUniform: uniform not found", "program", pr.Name, "uniform", name)
		}
		return
	}
	ctx := pr.ctx
	switch v := value.(type) {
	case int:
		ctx.Uniform1i(loc, v)
	case int32:
		ctx.Uniform1i(loc, int(v))
	case float32:
		ctx.Uniform1f(loc, v)
	case mgl32.Vec2:
		ctx.Uniform2f(loc, v[0], v[1])
	case mgl32.Vec3:
		ctx.Uniform3f(loc, v[0], v[1], v[2])
	case mgl32.Vec4:
		ctx.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case mgl32.Mat4:
		ctx.UniformMatrix4fv(loc, v[:])
	case *mgl32.Mat4:
		ctx.UniformMatrix4fv(loc, v[:])
	default:
		slog.Error("gpu.Program SetUniform: unsupported value type", "program", pr.Name, "uniform", name, "type", fmt.Sprintf("%T", value))
	}
}

// BindAttribute points the vertex attribute at location to a region
// of the bound geometry's vertex buffer and enables it. Both the program
// and the geometry must be bound. Locations the vertex shader does not
// declare are accepted and have no effect.
func (pr *Program) BindAttribute(location int, gm *Geometry, components, stride, offset int) error {
	if !pr.bound || gm == nil || !gm.IsBound() {
		return fmt.Errorf("gpu.Program %s BindAttribute: %w", pr.Name, ErrNotBound)
	}
	if location < 0 || components < 1 || components > 4 || offset < 0 || offset+components*FloatSize > stride {
		return fmt.Errorf("gpu.Program %s BindAttribute: %w: location %d, %d components at offset %d, stride %d",
			pr.Name, ErrInvalidLayout, location, components, offset, stride)
	}
	a := gl.Attrib{Value: uint32(location)}
	pr.ctx.EnableVertexAttribArray(a)
	pr.ctx.VertexAttribPointer(a, components, gl.FLOAT, false, stride, offset)
	return nil
}

// BindLayout calls [Program.BindAttribute] for every attribute
// of the geometry's layout.
func (pr *Program) BindLayout(gm *Geometry) error {
	stride := gm.Layout.Stride()
	for _, at := range gm.Layout.Attributes {
		if err := pr.BindAttribute(at.Location, gm, at.Components, stride, at.Offset); err != nil {
			return err
		}
	}
	return nil
}

// Destroy deletes the GL program and shaders. It must be called
// while the context is still current. The log remains readable.
func (pr *Program) Destroy() {
	pr.Release()
	for _, sh := range pr.shaders {
		pr.ctx.DeleteShader(sh)
	}
	pr.shaders = nil
	if pr.program.Value != 0 {
		pr.ctx.DeleteProgram(pr.program)
		pr.program = gl.Program{}
	}
}
