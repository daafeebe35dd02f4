// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package glcore

import (
	"image"

	"cogentcore.org/ladder/base/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.

// Window is a glfw window with a current OpenGL 4.1 core context.
type Window struct {
	*glfw.Window

	// Context issues GL calls to the window's context.
	Context *Context
}

// CreateWindow initializes glfw, opens a window with an OpenGL 4.1 core
// profile context, makes the context current and loads the GL functions.
// resize is called with the framebuffer size, in pixels, whenever it changes.
// IMPORTANT: must be called on the main initial thread, which must stay locked!
func CreateWindow(size image.Point, title string, resize func(size image.Point)) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Log(err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompat, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	win, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Log(err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	ctx, err := NewContext(func() bool { return glfw.GetCurrentContext() == win })
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, errors.Log(err)
	}
	w := &Window{Window: win, Context: ctx}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if resize != nil {
			resize(image.Point{width, height})
		}
	})
	return w, nil
}

// FramebufferSize returns the size of the framebuffer in pixels.
func (w *Window) FramebufferSize() image.Point {
	x, y := w.GetFramebufferSize()
	return image.Point{x, y}
}

// PollEvents processes pending window events and returns
// false once the window has been asked to close.
func (w *Window) PollEvents() bool {
	if w.ShouldClose() {
		return false
	}
	glfw.PollEvents()
	return true
}

// Terminate destroys the window and shuts down glfw.
// Release all GPU resources before calling it.
func (w *Window) Terminate() {
	w.Destroy()
	glfw.Terminate()
}
