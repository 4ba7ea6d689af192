// SPDX-License-Identifier: Unlicense OR MIT

// Command glwrap-demo renders instanced, textured triangles into an
// offscreen framebuffer and writes the result as a PNG file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/faiface/mainthread"

	"gioui.org/glwrap/gl"
	"gioui.org/glwrap/glctx"
	"gioui.org/glwrap/object"
)

var (
	output    = flag.String("o", "glwrap.png", "output PNG file.")
	width     = flag.Int("width", 256, "framebuffer width in pixels.")
	height    = flag.Int("height", 256, "framebuffer height in pixels.")
	instances = flag.Int("instances", 3, "number of triangle instances to draw.")
	debug     = flag.Bool("debug", false, "request a debug context and log object lifecycle events.")
)

func main() {
	flag.Parse()
	mainthread.Run(func() {
		if err := mainErr(); err != nil {
			fmt.Fprintf(os.Stderr, "glwrap-demo: %v\n", err)
			os.Exit(1)
		}
	})
}

func mainErr() error {
	if *width < 1 || *height < 1 || *instances < 1 {
		return errors.New("-width, -height and -instances must be positive")
	}
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	object.SetLogger(logger)

	ctx, err := glctx.New(glctx.Options{
		Debug:  *debug,
		Logger: logger,
		Call:   mainthread.Call,
	})
	if err != nil {
		return err
	}
	defer ctx.Release()

	var img *image.RGBA
	err = ctx.Do(func(f gl.Functions) error {
		s, err := newScene(f, *width, *height)
		if err != nil {
			return err
		}
		defer s.Release()
		img, err = s.Render(*instances)
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("rendered", "size", img.Bounds().Size(), "instances", *instances, "output", *output)
	return writePNG(*output, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
