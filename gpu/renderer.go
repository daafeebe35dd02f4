// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/ladder/base/errors"
	"cogentcore.org/ladder/gpu/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawModes are the ways a [Renderer] issues its draw calls.
type DrawModes int32

const (
	// DrawArrays draws the vertices in order, without indices.
	DrawArrays DrawModes = iota

	// DrawElements draws through the index buffer, one call per face.
	DrawElements
)

func (dm DrawModes) String() string {
	switch dm {
	case DrawArrays:
		return "DrawArrays"
	case DrawElements:
		return "DrawElements"
	}
	return fmt.Sprintf("DrawModes(%d)", int32(dm))
}

// TextureSource is a texture file and the label drawn
// on its fallback image if the file cannot be loaded.
type TextureSource struct {
	Path  string
	Label string
}

// RendererConfig is everything a [Renderer] draws.
type RendererConfig struct {
	// Name for diagnostics.
	Name string

	// VertexShader and FragmentShader are GLSL sources.
	VertexShader   string
	FragmentShader string

	// Layout of the vertex data.
	Layout VertexLayout

	// Vertices is interleaved vertex data in Layout.
	Vertices []float32

	// Indices into Vertices; required for DrawElements.
	Indices []uint32

	// Mode is fixed for the life of the renderer.
	Mode DrawModes

	// FaceCount is the number of equal ranges the draw is split into,
	// each with its own texture. DrawArrays allows only one face.
	FaceCount int

	// Textures are none, one shared by all faces, or one per face.
	Textures []TextureSource

	// Loader loads Textures.
	Loader TextureLoader

	// TextureUnit that face textures are bound to.
	TextureUnit int

	// SamplerUniform is set to TextureUnit when drawing a textured face.
	SamplerUniform string

	// Transform, if set, is uploaded to the uniforms named
	// ModelUniform, ViewUniform and ProjectionUniform each frame.
	Transform *Transform

	ModelUniform      string
	ViewUniform       string
	ProjectionUniform string

	// ClearColor is the background color.
	ClearColor mgl32.Vec4

	// DepthTest enables depth testing and depth buffer clearing.
	DepthTest bool
}

// Defaults sets the face count and uniform names.
func (rc *RendererConfig) Defaults() {
	if rc.FaceCount <= 0 {
		rc.FaceCount = 1
	}
	if rc.ModelUniform == "" {
		rc.ModelUniform = "model"
	}
	if rc.ViewUniform == "" {
		rc.ViewUniform = "view"
	}
	if rc.ProjectionUniform == "" {
		rc.ProjectionUniform = "projection"
	}
}

// FPSWindow is the interval over which [Renderer.FPS] is measured.
const FPSWindow = 10 * time.Second

// Renderer owns the GPU resources for one object and draws it each frame.
// All methods must be called on the thread where the context is current.
type Renderer struct {
	Config RendererConfig

	ctx      gl.Context
	program  *Program
	geometry *Geometry
	textures []*Texture
	faces    []Face
	ready    bool
	diag     string

	frames       int
	windowFrames int
	windowStart  time.Time
	fps          float64
}

// NewRenderer returns a renderer for the config. No GPU
// resources are created until [Renderer.Initialize].
func NewRenderer(cfg RendererConfig) *Renderer {
	cfg.Defaults()
	return &Renderer{Config: cfg}
}

// Diagnostic returns the last shader, resource or draw problem, or "".
func (rn *Renderer) Diagnostic() string { return rn.diag }

// Ready returns whether initialization succeeded, so frames are drawn.
func (rn *Renderer) Ready() bool { return rn.ready }

// Program returns the shader program, nil before initialization.
func (rn *Renderer) Program() *Program { return rn.program }

// Geometry returns the geometry, nil before successful initialization.
func (rn *Renderer) Geometry() *Geometry { return rn.geometry }

// Faces returns the face to texture mapping.
func (rn *Renderer) Faces() []Face { return rn.faces }

// Frames returns the number of frames drawn.
func (rn *Renderer) Frames() int { return rn.frames }

// FPS returns the frame rate over the last completed [FPSWindow].
func (rn *Renderer) FPS() float64 { return rn.fps }

// Initialize creates all GPU resources. It is called once, with the
// context current. On failure the diagnostic is set, every resource
// created so far is destroyed, and later frames are skipped.
func (rn *Renderer) Initialize(ctx gl.Context) error {
	if rn.ctx != nil {
		return fmt.Errorf("gpu.Renderer %s Initialize: already initialized", rn.Config.Name)
	}
	err := rn.initialize(ctx)
	if err != nil {
		rn.diag = err.Error()
		slog.Error("gpu.Renderer Initialize", "renderer", rn.Config.Name, "err", err)
		rn.destroyResources()
		return err
	}
	rn.ready = true
	rn.diag = ""
	return nil
}

func (rn *Renderer) initialize(ctx gl.Context) error {
	rc := &rn.Config
	op := "gpu.Renderer Initialize " + rc.Name
	if err := checkCurrent(ctx, op); err != nil {
		return err
	}
	rn.ctx = ctx
	slog.Debug("gpu.Renderer", "renderer", rc.Name, "version", ctx.GetString(gl.VERSION), "device", ctx.GetString(gl.RENDERER), "vendor", ctx.GetString(gl.VENDOR))

	ctx.ClearColor(rc.ClearColor[0], rc.ClearColor[1], rc.ClearColor[2], rc.ClearColor[3])
	if rc.DepthTest {
		ctx.Enable(gl.DEPTH_TEST)
	} else {
		ctx.Disable(gl.DEPTH_TEST)
	}

	if rc.Mode == DrawArrays && rc.FaceCount != 1 {
		return &ResourceError{Op: op, Err: fmt.Errorf("%w: DrawArrays draws a single face, not %d", ErrInvalidFaces, rc.FaceCount)}
	}
	if rc.Mode == DrawElements && len(rc.Indices) == 0 {
		return &ResourceError{Op: op, Err: fmt.Errorf("%w: DrawElements needs indices", ErrInvalidGeometry)}
	}
	if nt := len(rc.Textures); nt > 1 && nt != rc.FaceCount {
		return &ResourceError{Op: op, Err: fmt.Errorf("%w: %d textures for %d faces", ErrInvalidFaces, nt, rc.FaceCount)}
	}

	rn.program = NewProgram(ctx, rc.Name)
	if err := rn.program.CompileAndLink(rc.VertexShader, rc.FragmentShader); err != nil {
		return err
	}
	if err := rc.Layout.Match(rn.program.Inputs()); err != nil {
		return &ResourceError{Op: op, Err: err}
	}

	var indices []uint32
	if rc.Mode == DrawElements {
		indices = rc.Indices
	}
	gm, err := NewGeometry(ctx, rc.Name, rc.Layout, rc.Vertices, indices)
	if err != nil {
		return err
	}
	rn.geometry = gm
	if err := rn.bindAttributes(); err != nil {
		return &ResourceError{Op: op, Err: err}
	}

	n := gm.VertexCount()
	if gm.Indexed() {
		n = gm.IndexCount()
	}
	ranges, err := Partition(n, rc.FaceCount)
	if err != nil {
		return &ResourceError{Op: op, Err: err}
	}

	for _, ts := range rc.Textures {
		tx := rc.Loader.Load(ctx, ts.Path, ts.Label)
		if tx == nil {
			return &ResourceError{Op: op, Err: fmt.Errorf("texture %q: %w", ts.Path, ErrNotCreated)}
		}
		rn.textures = append(rn.textures, tx)
	}
	rn.faces = make([]Face, len(ranges))
	for i, rg := range ranges {
		rn.faces[i].Range = rg
		switch len(rn.textures) {
		case 0:
		case 1:
			rn.faces[i].Texture = rn.textures[0]
		default:
			rn.faces[i].Texture = rn.textures[i]
		}
	}
	if err := ValidateFaces(rn.faces, n); err != nil {
		return &ResourceError{Op: op, Err: err}
	}
	return checkGL(ctx, op)
}

// bindAttributes records the attribute pointers in the vertex array.
func (rn *Renderer) bindAttributes() error {
	if err := rn.program.Bind(); err != nil {
		return err
	}
	defer rn.program.Release()
	if err := rn.geometry.Bind(); err != nil {
		return err
	}
	defer rn.geometry.Release()
	return rn.program.BindLayout(rn.geometry)
}

// Resize sets the viewport and projection for a new framebuffer size.
// Zero or negative sizes, as when a window is minimized, are ignored.
func (rn *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		slog.Debug("gpu.Renderer Resize: skipping empty size", "renderer", rn.Config.Name, "width", width, "height", height)
		return
	}
	if rn.ctx != nil {
		rn.ctx.Viewport(0, 0, width, height)
	}
	if rn.Config.Transform != nil {
		rn.Config.Transform.Resize(width, height)
	}
}

// RenderFrame clears and draws one frame. It does nothing at all
// unless initialization succeeded.
func (rn *Renderer) RenderFrame() {
	if !rn.ready {
		return
	}
	rc := &rn.Config
	ctx := rn.ctx
	mask := gl.COLOR_BUFFER_BIT
	if rc.DepthTest {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	ctx.Clear(mask)

	if err := rn.draw(); err != nil {
		rn.diag = err.Error()
		errors.Log(err)
	}
	if err := checkGL(ctx, "gpu.Renderer RenderFrame "+rc.Name); err != nil {
		rn.diag = err.Error()
		errors.Log(err)
	}
	rn.countFrame()
}

func (rn *Renderer) draw() error {
	rc := &rn.Config
	if err := rn.program.Bind(); err != nil {
		return err
	}
	defer rn.program.Release()
	if err := rn.geometry.Bind(); err != nil {
		return err
	}
	defer rn.geometry.Release()

	if tf := rc.Transform; tf != nil {
		rn.program.SetUniform(rc.ModelUniform, tf.Model)
		rn.program.SetUniform(rc.ViewUniform, tf.View)
		rn.program.SetUniform(rc.ProjectionUniform, tf.Projection)
	}
	for _, f := range rn.faces {
		if err := rn.drawFace(f); err != nil {
			return err
		}
	}
	return nil
}

func (rn *Renderer) drawFace(f Face) error {
	rc := &rn.Config
	if f.Texture != nil {
		if err := f.Texture.Bind(rc.TextureUnit); err != nil {
			return err
		}
		defer f.Texture.Release()
		if rc.SamplerUniform != "" {
			rn.program.SetUniform(rc.SamplerUniform, rc.TextureUnit)
		}
	}
	if rc.Mode == DrawElements {
		rn.ctx.DrawElements(gl.TRIANGLES, f.Range.Count, gl.UNSIGNED_INT, f.Range.First*IndexSize)
	} else {
		rn.ctx.DrawArrays(gl.TRIANGLES, f.Range.First, f.Range.Count)
	}
	return nil
}

func (rn *Renderer) countFrame() {
	rn.frames++
	rn.windowFrames++
	now := time.Now()
	if rn.windowStart.IsZero() {
		rn.windowStart = now
		return
	}
	dur := now.Sub(rn.windowStart)
	if dur > FPSWindow {
		rn.fps = float64(rn.windowFrames) / dur.Seconds()
		slog.Debug("gpu.Renderer", "renderer", rn.Config.Name, "fps", fmt.Sprintf("%.0f", rn.fps))
		rn.windowFrames = 0
		rn.windowStart = now
	}
}

func (rn *Renderer) destroyResources() {
	for _, tx := range rn.textures {
		tx.Destroy()
	}
	rn.textures = nil
	rn.faces = nil
	if rn.geometry != nil {
		rn.geometry.Destroy()
		rn.geometry = nil
	}
	if rn.program != nil {
		rn.program.Destroy()
	}
}

// Destroy deletes all GPU resources. The host calls it while the
// context is still current, before destroying the context.
func (rn *Renderer) Destroy() {
	rn.ready = false
	if rn.ctx == nil {
		return
	}
	rn.destroyResources()
}
