// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"math"
	"strings"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/studio"
	"github.com/gogpu/studio/scene"
)

// Fixed drawing constants.
const (
	GridPitch = 20.0

	selectionWidth = 2.0
	gridColor      = "#E0E0E0"
	selectionColor = "#0D99FF"
	shapeFill      = "#D9D9D9"
	textFill       = "#000000"
)

var selectionDash = []float64{6, 4}

// Render repaints the whole scene into the off-screen buffer and, when a
// target is configured, copies the finished frame to it.
func (c *Canvas) Render() {
	dc := c.dc
	if dc == nil {
		return
	}
	c.frames++

	dc.Identity()
	dc.ClearWithColor(c.background)
	if c.grid {
		c.drawGrid()
	}

	drawn := 0
	c.scene.Range(func(o scene.RenderObject) bool {
		if o.Visible && c.drawObject(o) {
			drawn++
		}
		return true
	})

	c.drawSelection()
	c.blit()

	studio.Logger().Debug("canvas: frame rendered",
		"frame", c.frames, "objects", c.scene.Len(), "drawn", drawn)
}

// Clear fills the surface with the background color without drawing any
// objects. The next Render repaints the scene.
func (c *Canvas) Clear() {
	if c.dc == nil {
		return
	}
	c.dc.Identity()
	c.dc.ClearWithColor(c.background)
	c.blit()
}

func (c *Canvas) drawGrid() {
	dc := c.dc
	w, h := float64(c.width), float64(c.height)

	dc.Push()
	defer dc.Pop()
	setColor(dc, parseColor(gridColor, gg.White))
	dc.SetLineWidth(1)
	dc.ClearDash()
	// Offset by half a pixel so 1px lines land on pixel centers.
	for x := 0.0; x <= w; x += GridPitch {
		dc.DrawLine(x+0.5, 0, x+0.5, h)
	}
	for y := 0.0; y <= h; y += GridPitch {
		dc.DrawLine(0, y+0.5, w, y+0.5)
	}
	_ = dc.Stroke()
}

// drawObject paints one object and reports whether anything was drawn.
func (c *Canvas) drawObject(o scene.RenderObject) bool {
	dc := c.dc
	t := o.Transform
	opacity := t.ClampedOpacity()
	if opacity == 0 {
		return false
	}

	mode := blendMode(o.BlendMode)
	if opacity < 1 || mode != gg.BlendNormal {
		dc.PushLayer(mode, opacity)
		defer dc.PopLayer()
	}

	dc.Push()
	defer dc.Pop()
	dc.Translate(t.X, t.Y)
	dc.Rotate(t.Radians())
	dc.Scale(t.ScaleX, t.ScaleY)

	switch o.Type {
	case scene.TypeShape:
		return c.drawShape(o.Data)
	case scene.TypeText:
		return c.drawText(o.Data)
	case scene.TypeImage:
		return c.drawImage(o.Data)
	}
	return false
}

func (c *Canvas) drawShape(d scene.Data) bool {
	dc := c.dc
	w, h := d.Extent()

	switch d.Shape {
	case scene.ShapeCircle:
		dc.DrawCircle(0, 0, w/2)
	default:
		if d.Radius > 0 {
			r := math.Min(d.Radius, math.Min(w, h)/2)
			dc.DrawRoundedRectangle(-w/2, -h/2, w, h, r)
		} else {
			dc.DrawRectangle(-w/2, -h/2, w, h)
		}
	}

	fill := d.Fill
	if fill == "" && d.Stroke == "" {
		fill = shapeFill
	}
	hasFill := paintable(fill)
	hasStroke := paintable(d.Stroke) && d.StrokeWidth > 0

	if hasFill {
		setColor(dc, parseColor(fill, gg.Black))
		if hasStroke {
			_ = dc.FillPreserve()
		} else {
			_ = dc.Fill()
		}
	}
	if hasStroke {
		setColor(dc, parseColor(d.Stroke, gg.Black))
		dc.SetLineWidth(d.StrokeWidth)
		_ = dc.Stroke()
	}
	if !hasFill && !hasStroke {
		dc.ClearPath()
		return false
	}
	return true
}

// drawText draws a single line centered on the object's origin under the
// object matrix, so rotation and scale apply to the glyphs.
func (c *Canvas) drawText(d scene.Data) bool {
	s := normalizeText(d.Text)
	if s == "" {
		return false
	}
	face := c.face(d.FontFamily, d.FontSize)
	if face == nil {
		return false
	}

	dc := c.dc
	dc.SetFont(face)
	fill := d.Fill
	if fill == "" {
		fill = textFill
	}
	setColor(dc, parseColor(fill, gg.Black))
	dc.DrawStringAnchored(s, 0, 0, 0.5, 0.5)
	return true
}

// drawImage stretches the bitmap over the object's box centered on its
// origin. Objects without a decoded bitmap are skipped.
func (c *Canvas) drawImage(d scene.Data) bool {
	if d.Bitmap == nil || d.Bitmap.Bounds().Empty() {
		return false
	}
	w, h := d.Extent()
	c.dc.DrawImageEx(gg.ImageBufFromImage(d.Bitmap), gg.DrawImageOptions{
		X:         -w / 2,
		Y:         -h / 2,
		DstWidth:  w,
		DstHeight: h,
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
	return true
}

func (c *Canvas) drawSelection() {
	r, ok := c.scene.SelectedBounds()
	if !ok {
		return
	}
	dc := c.dc
	dc.Push()
	defer dc.Pop()
	dc.Identity()
	setColor(dc, parseColor(selectionColor, gg.Black))
	dc.SetLineWidth(selectionWidth)
	dc.SetDash(selectionDash...)
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	_ = dc.Stroke()
	dc.ClearDash()
}

// blit copies the finished frame to the visible target, scaling when the
// target bounds differ from the surface size.
func (c *Canvas) blit() {
	dst := c.opts.Target
	if dst == nil || c.dc == nil {
		return
	}
	src := c.dc.Image()
	db, sb := dst.Bounds(), src.Bounds()
	if db.Dx() == sb.Dx() && db.Dy() == sb.Dy() {
		xdraw.Copy(dst, db.Min, src, sb, xdraw.Src, nil)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, db, src, sb, xdraw.Src, nil)
}

// blendMode maps CSS compositing names onto gg blend modes.
// Unknown names fall back to normal.
func blendMode(name string) gg.BlendMode {
	switch strings.ToLower(name) {
	case "", "normal", "source-over":
		return gg.BlendNormal
	case "multiply":
		return gg.BlendMultiply
	case "screen":
		return gg.BlendScreen
	case "overlay":
		return gg.BlendOverlay
	}
	studio.Logger().Debug("canvas: unsupported blend mode, using normal", "mode", name)
	return gg.BlendNormal
}

func paintable(color string) bool {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "", "none", "transparent":
		return false
	}
	return true
}

// parseColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA".
// Empty strings yield fallback; "none" and "transparent" yield a fully
// transparent color.
func parseColor(s string, fallback gg.RGBA) gg.RGBA {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return fallback
	case "none", "transparent":
		return gg.Transparent
	}
	return gg.Hex(s)
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}
