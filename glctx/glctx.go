// SPDX-License-Identifier: Unlicense OR MIT

// Package glctx provides the OpenGL context the object wrappers run
// in. A Context owns a hidden GLFW window; work submitted with Do runs
// on a locked OS thread with the context current.
package glctx

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"gioui.org/glwrap/gl"
	"gioui.org/glwrap/gl/gogl"
	"gioui.org/glwrap/object"
)

// Options configure a Context. The zero value requests a 4.6 core
// profile context.
type Options struct {
	Major, Minor int
	// Debug requests a debug context and routes KHR_debug messages to
	// Logger.
	Debug bool
	// Logger defaults to object.Logger.
	Logger *slog.Logger
	// Call runs a function on the main thread. GLFW must be initialized
	// and its windows created there on some platforms. If nil, such
	// functions run on the calling goroutine.
	Call func(func())
}

// Context is an OpenGL context with its entry points loaded.
type Context struct {
	mu       sync.Mutex
	call     func(func())
	window   *glfw.Window
	funcs    *gogl.Functions
	version  [2]int
	bindless bool
	released bool
}

var ErrReleased = errors.New("glctx: context released")

func New(opts Options) (*Context, error) {
	if opts.Major == 0 {
		opts.Major, opts.Minor = 4, 6
	}
	if opts.Logger == nil {
		opts.Logger = object.Logger()
	}
	c := &Context{call: opts.Call}
	if c.call == nil {
		c.call = func(f func()) { f() }
	}
	var err error
	c.call(func() {
		c.window, err = createWindow(opts)
	})
	if err != nil {
		return nil, err
	}
	err = c.do(func() error {
		f, err := gogl.New()
		if err != nil {
			return err
		}
		if opts.Debug {
			f.EnableDebugOutput(opts.Logger)
		}
		ver, err := gl.ParseGLVersion(f.GetString(gl.VERSION))
		if err != nil {
			return err
		}
		if ver[0] < 4 || ver[0] == 4 && ver[1] < 5 {
			return fmt.Errorf("glctx: OpenGL %d.%d is too old, need 4.5", ver[0], ver[1])
		}
		c.funcs = f
		c.version = ver
		c.bindless = gl.HasExtension(f.GetString(gl.EXTENSIONS), "GL_ARB_bindless_texture")
		opts.Logger.Debug("context created",
			"version", f.GetString(gl.VERSION),
			"renderer", f.GetString(gl.RENDERER),
			"bindless", c.bindless)
		return nil
	})
	if err != nil {
		c.call(c.destroy)
		return nil, err
	}
	return c, nil
}

func createWindow(opts Options) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glctx: %w", err)
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, opts.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	w, err := glfw.CreateWindow(1, 1, "glwrap", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glctx: %w", err)
	}
	return w, nil
}

// Do runs f with the context current and returns its error. Calls are
// serialized; f must not call Do.
func (c *Context) Do(f func(gl.Functions) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return ErrReleased
	}
	return c.do(func() error {
		return f(c.funcs)
	})
}

func (c *Context) do(f func() error) error {
	errCh := make(chan error)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		c.window.MakeContextCurrent()
		defer glfw.DetachCurrentContext()
		errCh <- f()
	}()
	return <-errCh
}

// Version returns the major and minor version of the context.
func (c *Context) Version() [2]int {
	return c.version
}

// Bindless reports whether ARB_bindless_texture is supported.
func (c *Context) Bindless() bool {
	return c.bindless
}

// Release destroys the window and its context. Objects created in the
// context must be released before.
func (c *Context) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	c.call(c.destroy)
}

func (c *Context) destroy() {
	c.window.Destroy()
	glfw.Terminate()
}
