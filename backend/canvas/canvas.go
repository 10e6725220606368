// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/studio"
	"github.com/gogpu/studio/geom"
	"github.com/gogpu/studio/render"
	"github.com/gogpu/studio/scene"
)

// BackendName is the registry name of this engine.
const BackendName = "canvas"

func init() {
	render.Register(BackendName, 10, func(opts render.Options) (render.Engine, error) {
		return New(func(o *render.Options) { *o = opts }), nil
	}, nil)
}

var (
	_ render.Engine       = (*Canvas)(nil)
	_ render.TextMeasurer = (*Canvas)(nil)
)

// Canvas is a gg-backed render.Engine.
type Canvas struct {
	dc            *gg.Context // nil while the surface is empty
	width, height int

	opts       render.Options
	background gg.RGBA
	grid       bool

	scene *scene.Scene
	faces map[faceKey]text.Face

	frames uint64
}

// New creates a canvas and renders the empty scene once.
func New(opts ...render.Option) *Canvas {
	o := render.NewOptions(opts...)
	c := &Canvas{
		opts:       o,
		background: parseColor(o.Background, gg.White),
		grid:       o.Grid,
		scene:      scene.New(),
		faces:      make(map[faceKey]text.Face),
	}
	c.resize(o.Width, o.Height)
	c.Render()
	return c
}

// Close releases the drawing surface. The canvas must not be used after
// Close.
func (c *Canvas) Close() error {
	if c.dc == nil {
		return nil
	}
	err := c.dc.Close()
	c.dc = nil
	return err
}

// Size returns the surface size.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Frames returns the number of frames rendered since creation.
func (c *Canvas) Frames() uint64 { return c.frames }

// Resize changes the surface size and re-renders. A non-positive
// dimension leaves an empty surface: rendering becomes a no-op and
// exporting fails with render.ErrEmptySurface.
func (c *Canvas) Resize(width, height int) {
	c.resize(width, height)
	c.Render()
}

func (c *Canvas) resize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	if c.width == 0 || c.height == 0 {
		if c.dc != nil {
			_ = c.dc.Close()
			c.dc = nil
		}
		return
	}
	if c.dc == nil {
		c.dc = gg.NewContext(c.width, c.height)
		return
	}
	if err := c.dc.Resize(c.width, c.height); err != nil {
		studio.Logger().Warn("canvas: resize failed", "width", width, "height", height, "err", err)
	}
}

// SetGrid toggles the alignment grid and re-renders.
func (c *Canvas) SetGrid(enabled bool) {
	c.grid = enabled
	c.Render()
}

// Reset removes every object and the selection, then re-renders.
func (c *Canvas) Reset() {
	c.scene.Reset()
	c.Render()
}

// AddObject stores obj top-most and returns its id.
func (c *Canvas) AddObject(obj scene.RenderObject) string {
	id := c.scene.Add(obj)
	c.Render()
	return id
}

// RemoveObject deletes the object and drops it from the selection.
func (c *Canvas) RemoveObject(id string) {
	if c.scene.Remove(id) {
		c.Render()
	}
}

// UpdateObject merges p into the object. Id and type never change.
func (c *Canvas) UpdateObject(id string, p scene.Patch) {
	if c.scene.Update(id, p) {
		c.Render()
	}
}

// GetObject returns a copy of the object.
func (c *Canvas) GetObject(id string) (scene.RenderObject, bool) {
	return c.scene.Get(id)
}

// Objects returns copies of all objects in layer order.
func (c *Canvas) Objects() []scene.RenderObject {
	return c.scene.Objects()
}

// DuplicateObject clones the object under a fresh id offset by (dx, dy)
// and places it top-most.
func (c *Canvas) DuplicateObject(id string, dx, dy float64) (string, bool) {
	nid, ok := c.scene.Duplicate(id, dx, dy)
	if ok {
		c.Render()
	}
	return nid, ok
}

// SelectObjects replaces the selection and re-renders the outline.
func (c *Canvas) SelectObjects(ids []string) {
	c.scene.Select(ids)
	c.Render()
}

// Selection returns the selected ids in layer order.
func (c *Canvas) Selection() []string {
	return c.scene.Selection()
}

// SelectedBounds returns the union of the selected objects' footprints.
func (c *Canvas) SelectedBounds() (geom.Rect, bool) {
	return c.scene.SelectedBounds()
}

// HitTest returns the top-most visible, unlocked object containing (x, y).
func (c *Canvas) HitTest(x, y float64) (string, bool) {
	return c.scene.HitTest(x, y)
}

// ApplyTransform merges p into the object's transform.
func (c *Canvas) ApplyTransform(id string, p geom.TransformPatch) {
	if c.scene.ApplyTransform(id, p) {
		c.Render()
	}
}

// BringToFront moves the object to the top of the layer order.
func (c *Canvas) BringToFront(id string) {
	if c.scene.BringToFront(id) {
		c.Render()
	}
}

// SendToBack moves the object to the bottom of the layer order.
func (c *Canvas) SendToBack(id string) {
	if c.scene.SendToBack(id) {
		c.Render()
	}
}

// MeasureText reports the advance width and line height of s rendered
// with the canvas font for family at size.
func (c *Canvas) MeasureText(s, family string, size float64) (width, height float64) {
	face := c.face(family, size)
	if face == nil {
		return 0, 0
	}
	return text.Measure(normalizeText(s), face)
}
