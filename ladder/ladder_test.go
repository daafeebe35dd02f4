// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ladder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"cogentcore.org/ladder/config"
	"cogentcore.org/ladder/gpu"
	"cogentcore.org/ladder/gpu/gl"
	"cogentcore.org/ladder/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog(t *testing.T) {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func texturePNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDemoNames(t *testing.T) {
	assert.Equal(t, []string{"triangle", "indexed-quad", "textured-quad", "cube", "indexed-cube", "dice-cube"}, Names())
	d, err := DemoByName("cube")
	require.NoError(t, err)
	assert.True(t, d.Animated())
	_, err = DemoByName("teapot")
	assert.ErrorContains(t, err, "dice-cube")
}

func TestShaders(t *testing.T) {
	for _, d := range Demos() {
		for _, nm := range []string{d.VertexShader, d.FragmentShader} {
			src, err := Shader(nm)
			require.NoError(t, err, nm)
			assert.Contains(t, src, "#version 330 core", nm)
		}
		vs, _ := Shader(d.VertexShader)
		assert.NoError(t, d.Mesh().Layout.Match(gpu.ParseShaderInputs(vs)), d.Name)
	}
	_, err := Shader("missing.vert")
	assert.Error(t, err)
}

// Every demo builds and draws a frame.
func TestDemosRender(t *testing.T) {
	quietLog(t)
	fsys := fstest.MapFS{"texture.png": {Data: texturePNG(t)}}
	draws := map[string]int{
		"triangle":      1,
		"indexed-quad":  1,
		"textured-quad": 1,
		"cube":          1,
		"indexed-cube":  1,
		"dice-cube":     6,
	}
	for _, d := range Demos() {
		t.Run(d.Name, func(t *testing.T) {
			ctx := gputest.NewContext()
			rn, err := d.NewRenderer(Options{TextureFS: fsys})
			require.NoError(t, err)
			require.NoError(t, rn.Initialize(ctx), rn.Diagnostic())
			rn.Resize(800, 600)
			rn.RenderFrame()
			require.Len(t, ctx.Draws, draws[d.Name])
			assert.Equal(t, [4]float32(d.ClearColor), ctx.ClearColor4)
			assert.Equal(t, d.DepthTest, ctx.Enabled[gl.DEPTH_TEST])
			if d.Animated() {
				assert.NotEmpty(t, ctx.Draws[0].Uniforms["projection"])
			}
			for _, f := range rn.Faces() {
				if f.Texture != nil {
					assert.Equal(t, d.Name == "dice-cube", f.Texture.Fallback)
				}
			}
			rn.Destroy()
			assert.Zero(t, ctx.Live())
		})
	}
}

func TestTexturedQuadSampler(t *testing.T) {
	quietLog(t)
	d, err := DemoByName("textured-quad")
	require.NoError(t, err)
	ctx := gputest.NewContext()
	rn, err := d.NewRenderer(Options{TextureFS: fstest.MapFS{}})
	require.NoError(t, err)
	require.NoError(t, rn.Initialize(ctx))
	defer rn.Destroy()

	tx := rn.Faces()[0].Texture
	require.NotNil(t, tx)
	assert.True(t, tx.Fallback)
	assert.Equal(t, image.Pt(gpu.CheckerSize, gpu.CheckerSize), tx.Size())
	rn.RenderFrame()
	require.Len(t, ctx.Draws, 1)
	assert.Equal(t, []float32{0}, ctx.Draws[0].Uniforms["ourTexture"])
	to := ctx.Textures[ctx.Draws[0].Textures[0]]
	require.NotNil(t, to)
	assert.Equal(t, int(gl.NEAREST), to.Params[gl.TEXTURE_MIN_FILTER])
	assert.Equal(t, int(gl.REPEAT), to.Params[gl.TEXTURE_WRAP_S])
}

func TestDiceTextures(t *testing.T) {
	ts := DiceTextures()
	require.Len(t, ts, 6)
	assert.Equal(t, gpu.TextureSource{Path: "textures/dice_face_1.png", Label: "1"}, ts[0])
	assert.Equal(t, gpu.TextureSource{Path: "textures/dice_face_4.png", Label: "4"}, ts[5])
}

func TestDemoViews(t *testing.T) {
	d, err := DemoByName("dice-cube")
	require.NoError(t, err)
	rc, err := d.RendererConfig(Options{})
	require.NoError(t, err)
	require.NotNil(t, rc.Transform)
	p := rc.Transform.View.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3, p.Z(), 1e-5)
	assert.Equal(t, gpu.FallbackLabel, rc.Loader.Fallback)
	assert.Equal(t, 6, rc.FaceCount)
	assert.Equal(t, "model", rc.ModelUniform)

	// each config has its own transform
	rc2, err := d.RendererConfig(Options{})
	require.NoError(t, err)
	assert.NotSame(t, rc.Transform, rc2.Transform)

	d, err = DemoByName("triangle")
	require.NoError(t, err)
	rc, err = d.RendererConfig(Options{})
	require.NoError(t, err)
	assert.Nil(t, rc.Transform)
}

func TestNewOptions(t *testing.T) {
	cf := &config.Config{}
	cf.Defaults()
	opts, err := NewOptions(cf)
	require.NoError(t, err)
	assert.False(t, opts.HasFallback)
	assert.Nil(t, opts.ClearColor)

	cf.Fallback = "checker"
	cf.TextureDir = "assets"
	cf.ClearColor = []float32{0, 0, 0, 1}
	opts, err = NewOptions(cf)
	require.NoError(t, err)
	assert.True(t, opts.HasFallback)
	assert.Equal(t, gpu.FallbackChecker, opts.Fallback)
	require.NotNil(t, opts.ClearColor)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, *opts.ClearColor)

	d, err := DemoByName("dice-cube")
	require.NoError(t, err)
	rc, err := d.RendererConfig(opts)
	require.NoError(t, err)
	assert.Equal(t, gpu.FallbackChecker, rc.Loader.Fallback)
	assert.Equal(t, "assets", rc.Loader.Dir)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, rc.ClearColor)

	cf.Fallback = "plaid"
	_, err = NewOptions(cf)
	assert.Error(t, err)
}

func TestNewAnimator(t *testing.T) {
	cf := &config.Config{}
	cf.Defaults()
	cf.Interval = 40
	cf.Step = 2

	d, err := DemoByName("cube")
	require.NoError(t, err)
	rn, err := d.NewRenderer(Options{})
	require.NoError(t, err)
	repaints := 0
	an := NewAnimator(rn, cf, func() { repaints++ })
	require.NotNil(t, an)
	assert.Equal(t, 40*time.Millisecond, an.Interval)
	for range 180 {
		an.Tick()
	}
	assert.Equal(t, 180, repaints)
	assert.Zero(t, rn.Config.Transform.Angle)

	d, err = DemoByName("indexed-quad")
	require.NoError(t, err)
	rn, err = d.NewRenderer(Options{})
	require.NoError(t, err)
	assert.Nil(t, NewAnimator(rn, cf, nil))
}
