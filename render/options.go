// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "image/draw"

// Default surface settings.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultBackground = "#FFFFFF"
)

// Options configures an Engine at creation.
type Options struct {
	Width, Height int

	// Background is the hex color the surface is cleared to.
	Background string

	// Grid draws the alignment grid beneath the objects.
	Grid bool

	// Target, when set, receives a copy of every finished frame.
	// Drawing always happens off-screen first.
	Target draw.Image
}

// Option configures Options.
//
// Example:
//
//	eng, err := render.New("canvas", render.WithSize(1080, 1920), render.WithGrid(true))
type Option func(*Options)

// NewOptions returns the defaults with opts applied in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithSize sets the surface size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithBackground sets the background color as hex ("#RRGGBB" or
// "#RRGGBBAA"). An empty string keeps the default.
func WithBackground(hex string) Option {
	return func(o *Options) {
		if hex != "" {
			o.Background = hex
		}
	}
}

// WithGrid enables or disables the alignment grid.
func WithGrid(enabled bool) Option {
	return func(o *Options) {
		o.Grid = enabled
	}
}

// WithTarget sets a visible destination that receives each finished frame.
func WithTarget(dst draw.Image) Option {
	return func(o *Options) {
		o.Target = dst
	}
}
