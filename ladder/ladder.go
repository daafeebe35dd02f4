// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ladder defines a graded series of rendering demos, from a
// colored triangle to a rotating cube with a texture on each face,
// each one a configuration of the same gpu render pipeline.
package ladder

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"

	"cogentcore.org/ladder/gpu"
	"cogentcore.org/ladder/gpu/shape"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/*.vert shaders/*.frag
var shaders embed.FS

// Shader returns the source of the named embedded shader.
func Shader(name string) (string, error) {
	b, err := fs.ReadFile(shaders, "shaders/"+name)
	if err != nil {
		return "", fmt.Errorf("ladder: shader %q: %w", name, err)
	}
	return string(b), nil
}

// Background colors.
var (
	Teal      = mgl32.Vec4{0.2, 0.3, 0.3, 1}
	LightGray = mgl32.Vec4{0.9, 0.9, 0.9, 1}
)

// Demo is one step of the ladder.
type Demo struct {
	// Name is the short name used to select the demo.
	Name string

	// Title is the window title.
	Title string

	// Mesh builds the geometry.
	Mesh func() *shape.Mesh

	// VertexShader and FragmentShader are embedded shader file names.
	VertexShader   string
	FragmentShader string

	Mode      gpu.DrawModes
	FaceCount int

	// Textures, none, one or one per face.
	Textures []gpu.TextureSource

	// Sampler for the textures.
	Sampler gpu.Sampler

	// Fallback is the image style used for textures that fail to load.
	Fallback gpu.FallbackStyles

	// SamplerUniform is the name of the sampler2D uniform.
	SamplerUniform string

	ClearColor mgl32.Vec4
	DepthTest  bool

	// Rotations applied to the model as the demo animates.
	// A demo without rotations is static and has no transform.
	Rotations []gpu.AxisRate

	// View sets the view matrix of the transform.
	View func(tf *gpu.Transform)
}

// Animated returns whether the demo rotates over time.
func (d *Demo) Animated() bool { return len(d.Rotations) > 0 }

// Options adjust how a [Demo] is turned into a renderer.
type Options struct {
	// TextureFS resolves texture paths when set.
	TextureFS fs.FS

	// TextureDir is the base directory for texture paths.
	TextureDir string

	// Fallback overrides the demo fallback style when HasFallback is set.
	Fallback    gpu.FallbackStyles
	HasFallback bool

	// ClearColor overrides the demo background when set.
	ClearColor *mgl32.Vec4
}

// RendererConfig returns the renderer configuration for the demo,
// with a new transform for animated demos.
func (d *Demo) RendererConfig(opts Options) (gpu.RendererConfig, error) {
	var rc gpu.RendererConfig
	vs, err := Shader(d.VertexShader)
	if err != nil {
		return rc, err
	}
	frag, err := Shader(d.FragmentShader)
	if err != nil {
		return rc, err
	}
	ms := d.Mesh()
	rc = gpu.RendererConfig{
		Name:           d.Name,
		VertexShader:   vs,
		FragmentShader: frag,
		Layout:         ms.Layout,
		Vertices:       ms.Vertices,
		Indices:        ms.Indices,
		Mode:           d.Mode,
		FaceCount:      d.FaceCount,
		Textures:       slices.Clone(d.Textures),
		SamplerUniform: d.SamplerUniform,
		ClearColor:     d.ClearColor,
		DepthTest:      d.DepthTest,
		Loader: gpu.TextureLoader{
			FS:       opts.TextureFS,
			Dir:      opts.TextureDir,
			Sampler:  d.Sampler,
			Fallback: d.Fallback,
		},
	}
	if opts.HasFallback {
		rc.Loader.Fallback = opts.Fallback
	}
	if opts.ClearColor != nil {
		rc.ClearColor = *opts.ClearColor
	}
	if d.Animated() {
		tf := gpu.NewTransform(slices.Clone(d.Rotations)...)
		if d.View != nil {
			d.View(tf)
		}
		tf.ComposeModel()
		rc.Transform = tf
	}
	rc.Defaults()
	return rc, nil
}

// NewRenderer returns a renderer for the demo.
func (d *Demo) NewRenderer(opts Options) (*gpu.Renderer, error) {
	rc, err := d.RendererConfig(opts)
	if err != nil {
		return nil, err
	}
	return gpu.NewRenderer(rc), nil
}

// DiceTextures returns the texture of each dice face, in face order,
// labeled with the pip count for the fallback image.
func DiceTextures() []gpu.TextureSource {
	ts := make([]gpu.TextureSource, len(shape.DiceFaces))
	for i, n := range shape.DiceFaces {
		lbl := strconv.Itoa(n)
		ts[i] = gpu.TextureSource{Path: "textures/dice_face_" + lbl + ".png", Label: lbl}
	}
	return ts
}

// Demos returns all demos, from simplest to most complete.
func Demos() []*Demo {
	return []*Demo{
		{
			Name:           "triangle",
			Title:          "Colored Triangle",
			Mesh:           shape.Triangle,
			VertexShader:   "color.vert",
			FragmentShader: "color.frag",
			Mode:           gpu.DrawArrays,
			ClearColor:     Teal,
		},
		{
			Name:           "indexed-quad",
			Title:          "Indexed Quad",
			Mesh:           shape.ColorQuad,
			VertexShader:   "color.vert",
			FragmentShader: "color.frag",
			Mode:           gpu.DrawElements,
			ClearColor:     Teal,
		},
		{
			Name:           "textured-quad",
			Title:          "Textured Quad",
			Mesh:           shape.TexturedQuad,
			VertexShader:   "texquad.vert",
			FragmentShader: "texquad.frag",
			Mode:           gpu.DrawElements,
			Textures:       []gpu.TextureSource{{Path: "texture.png", Label: "texture"}},
			Sampler:        gpu.NearestSampler(),
			Fallback:       gpu.FallbackChecker,
			SamplerUniform: "ourTexture",
			ClearColor:     Teal,
		},
		{
			Name:           "cube",
			Title:          "3D Cube (DrawArrays)",
			Mesh:           shape.ColorCube,
			VertexShader:   "colorcube.vert",
			FragmentShader: "color.frag",
			Mode:           gpu.DrawArrays,
			ClearColor:     LightGray,
			DepthTest:      true,
			Rotations:      []gpu.AxisRate{{Axis: mgl32.Vec3{0.5, 1, 0}, Rate: 1}},
			View:           func(tf *gpu.Transform) { tf.Translate(0, 0, -3) },
		},
		{
			Name:           "indexed-cube",
			Title:          "3D Cube (DrawElements)",
			Mesh:           shape.IndexedColorCube,
			VertexShader:   "colorcube.vert",
			FragmentShader: "color.frag",
			Mode:           gpu.DrawElements,
			ClearColor:     LightGray,
			DepthTest:      true,
			Rotations:      []gpu.AxisRate{{Axis: mgl32.Vec3{0.5, 1, 0}, Rate: 1}},
			View:           func(tf *gpu.Transform) { tf.Translate(0, 0, -3) },
		},
		{
			Name:           "dice-cube",
			Title:          "3D Textured Cube",
			Mesh:           shape.DiceCube,
			VertexShader:   "dice.vert",
			FragmentShader: "dice.frag",
			Mode:           gpu.DrawElements,
			FaceCount:      len(shape.DiceFaces),
			Textures:       DiceTextures(),
			Sampler:        gpu.DefaultSampler(),
			Fallback:       gpu.FallbackLabel,
			SamplerUniform: "textureSampler",
			ClearColor:     Teal,
			DepthTest:      true,
			Rotations: []gpu.AxisRate{
				{Axis: mgl32.Vec3{0, 1, 0}, Rate: 1},
				{Axis: mgl32.Vec3{1, 0, 0}, Rate: 0.5},
			},
			View: func(tf *gpu.Transform) {
				tf.LookAt(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
			},
		},
	}
}

// Names returns the names of all demos, in order.
func Names() []string {
	var nms []string
	for _, d := range Demos() {
		nms = append(nms, d.Name)
	}
	return nms
}

// DemoByName returns the demo with the given name.
func DemoByName(name string) (*Demo, error) {
	for _, d := range Demos() {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("ladder: unknown demo %q, want one of %v", name, Names())
}
