// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"io/fs"
	"log/slog"

	"cogentcore.org/ladder/base/errors"
	"cogentcore.org/ladder/base/fsx"
	"cogentcore.org/ladder/base/iox/imagex"
	"cogentcore.org/ladder/gpu/gl"
)

// Texture is a 2D RGBA texture on the GPU, sampled with its [Sampler].
// The image is flipped vertically on upload so texture coordinate
// (0,0) is the bottom-left corner of the source image.
type Texture struct {
	// Name of the texture, for diagnostics. It is the file path
	// when loaded from a file.
	Name string

	// Sampler parameters, applied by [Texture.Configure].
	Sampler Sampler

	// Fallback is set when the image was synthesized
	// because the file could not be loaded.
	Fallback bool

	ctx   gl.Context
	tex   gl.Texture
	img   *image.RGBA
	unit  int
	live  bool
	bound bool
}

// NewTexture uploads a copy of the image as a new texture and
// configures it with the sampler.
func NewTexture(ctx gl.Context, name string, img image.Image, sampler Sampler) (*Texture, error) {
	if err := checkCurrent(ctx, "gpu.NewTexture "+name); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, &ResourceError{Op: "gpu.NewTexture " + name, Err: imagex.ErrNotImage}
	}
	tx := &Texture{Name: name, Sampler: sampler, ctx: ctx, img: imagex.CloneAsRGBA(img)}
	if err := tx.upload(); err != nil {
		tx.Destroy()
		return nil, err
	}
	return tx, nil
}

func (tx *Texture) upload() error {
	ctx := tx.ctx
	flip := imagex.FlipV(tx.img)
	sz := flip.Rect.Size()
	tx.tex = ctx.CreateTexture()
	tx.live = true
	ctx.BindTexture(gl.TEXTURE_2D, tx.tex)
	ctx.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA8), sz.X, sz.Y, gl.RGBA, gl.UNSIGNED_BYTE, flip.Pix)
	tx.applySampler()
	ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	return checkGL(ctx, "gpu.Texture upload "+tx.Name)
}

// applySampler sets the parameters of the texture bound to TEXTURE_2D.
func (tx *Texture) applySampler() {
	ctx := tx.ctx
	sm := &tx.Sampler
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int(sm.Wrap.Enum()))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int(sm.Wrap.Enum()))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int(sm.minFilter().Enum()))
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int(sm.magFilter().Enum()))
	if sm.Mipmaps {
		ctx.GenerateMipmap(gl.TEXTURE_2D)
	}
}

// Configure sets new sampler parameters on the uploaded texture,
// generating mipmaps when requested.
func (tx *Texture) Configure(sampler Sampler) error {
	if tx == nil || !tx.live {
		return &ResourceError{Op: "gpu.Texture Configure", Err: ErrNotCreated}
	}
	tx.Sampler = sampler
	tx.ctx.BindTexture(gl.TEXTURE_2D, tx.tex)
	tx.applySampler()
	tx.ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	if tx.bound {
		tx.ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(tx.unit))
		tx.ctx.BindTexture(gl.TEXTURE_2D, tx.tex)
	}
	return checkGL(tx.ctx, "gpu.Texture Configure "+tx.Name)
}

// Image returns the source image, in its original orientation.
func (tx *Texture) Image() *image.RGBA { return tx.img }

// Size returns the size of the texture in pixels.
func (tx *Texture) Size() image.Point {
	if tx.img == nil {
		return image.Point{}
	}
	return tx.img.Rect.Size()
}

// IsLive returns whether the texture exists on the GPU.
func (tx *Texture) IsLive() bool { return tx != nil && tx.live }

// Bind binds the texture to the given texture unit.
// Always pair with [Texture.Release], typically via defer.
func (tx *Texture) Bind(unit int) error {
	if tx == nil || !tx.live {
		return &ResourceError{Op: "gpu.Texture Bind", Err: ErrNotCreated}
	}
	tx.unit = unit
	tx.ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
	tx.ctx.BindTexture(gl.TEXTURE_2D, tx.tex)
	tx.bound = true
	return nil
}

// Release unbinds the texture from its unit. It is safe to call when not bound.
func (tx *Texture) Release() {
	if tx == nil || !tx.bound {
		return
	}
	tx.ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(tx.unit))
	tx.ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	tx.bound = false
}

// Destroy deletes the GPU texture. It must be called while
// the context is still current. Safe to call more than once.
func (tx *Texture) Destroy() {
	if tx == nil || !tx.live {
		return
	}
	tx.Release()
	if tx.tex.Value != 0 {
		tx.ctx.DeleteTexture(tx.tex)
	}
	tx.tex = gl.Texture{}
	tx.live = false
}

// TextureLoader loads textures from image files, substituting
// a synthesized image for any file that cannot be loaded.
type TextureLoader struct {
	// FS, if set, is used to resolve relative paths, e.g. embedded assets.
	FS fs.FS

	// Dir is the base directory for relative paths when FS is nil.
	// The default is the directory of the running executable,
	// so textures are found regardless of the working directory.
	Dir string

	// Sampler for loaded textures.
	Sampler Sampler

	// Fallback is the style of the image used when loading fails.
	Fallback FallbackStyles
}

// Decode reads and decodes the image at path, returning a
// [*TextureLoadError] on any failure. A path that is missing or names a
// directory wraps fs.ErrNotExist, which tells it apart from a file that
// is not a decodable image.
func (tl *TextureLoader) Decode(path string) (image.Image, error) {
	if path == "" {
		return nil, &TextureLoadError{Path: path, Err: fs.ErrInvalid}
	}
	fsys, fpath, err := fsx.ResolveFS(tl.FS, tl.Dir, path)
	if err != nil {
		return nil, &TextureLoadError{Path: path, Err: err}
	}
	ok, err := fsx.FileExistsFS(fsys, fpath)
	if err != nil {
		return nil, &TextureLoadError{Path: path, Err: err}
	}
	if !ok {
		return nil, &TextureLoadError{Path: path, Err: fs.ErrNotExist}
	}
	img, _, err := imagex.OpenFS(fsys, fpath)
	if err != nil {
		return nil, &TextureLoadError{Path: path, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, &TextureLoadError{Path: path, Err: imagex.ErrNotImage}
	}
	return img, nil
}

// Load loads the texture at path. Reading the file never fails: when
// it is missing or cannot be decoded, the problem is logged and a
// fallback image, drawn with label in the loader's [FallbackStyles],
// is uploaded instead. GPU failures are not covered by this: if the
// upload itself fails (context not current, out of memory) the error
// is logged and the result is nil, which [Renderer.Initialize] reports
// as a [ResourceError].
func (tl *TextureLoader) Load(ctx gl.Context, path, label string) *Texture {
	fallback := false
	img, err := tl.Decode(path)
	if err != nil {
		slog.Warn("gpu.TextureLoader Load: using fallback image", "path", path, "label", label, "err", err)
		img = GenerateFallback(label, tl.Fallback)
		fallback = true
	}
	tx, err := NewTexture(ctx, path, img, tl.Sampler)
	if errors.Log(err) != nil {
		return nil
	}
	tx.Fallback = fallback
	return tx
}
