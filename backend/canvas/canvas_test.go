// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/gogpu/studio/geom"
	"github.com/gogpu/studio/render"
	"github.com/gogpu/studio/scene"
)

func rectObj(x, y, w, h float64, fill string) scene.RenderObject {
	return scene.NewObject(scene.TypeShape, x, y, scene.Data{
		Shape:  scene.ShapeRect,
		Fill:   fill,
		Width:  w,
		Height: h,
	})
}

func exportPNG(t *testing.T, c *Canvas) []byte {
	t.Helper()
	data, err := c.ExportImage(context.Background(), render.FormatPNG, 1)
	if err != nil {
		t.Fatalf("ExportImage: %v", err)
	}
	return data
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return img
}

func assertPixel(t *testing.T, img image.Image, x, y int, want color.RGBA, tol int) {
	t.Helper()
	r, g, b, a := img.At(x, y).RGBA()
	got := [4]int{int(r >> 8), int(g >> 8), int(b >> 8), int(a >> 8)}
	exp := [4]int{int(want.R), int(want.G), int(want.B), int(want.A)}
	for i := range got {
		if d := got[i] - exp[i]; d > tol || d < -tol {
			t.Errorf("pixel (%d,%d) = %v, want %v (±%d)", x, y, got, exp, tol)
			return
		}
	}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
)

func TestNewDefaults(t *testing.T) {
	c := New()
	if w, h := c.Size(); w != render.DefaultWidth || h != render.DefaultHeight {
		t.Errorf("Size() = %dx%d", w, h)
	}
	if c.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1 after New", c.Frames())
	}
}

func TestRegisteredBackend(t *testing.T) {
	eng, err := render.New(BackendName, render.WithSize(64, 32))
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	if w, h := eng.Size(); w != 64 || h != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", w, h)
	}
	if _, ok := eng.(render.TextMeasurer); !ok {
		t.Error("canvas engine should implement TextMeasurer")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	build := func() *Canvas {
		c := New(render.WithSize(120, 80), render.WithGrid(true))
		c.AddObject(rectObj(40, 40, 50, 30, "#3366FF"))
		circle := rectObj(80, 40, 30, 30, "#FF9900")
		circle.Data.Shape = scene.ShapeCircle
		c.AddObject(circle)
		c.AddObject(scene.NewObject(scene.TypeText, 60, 60, scene.Data{Text: "Hi", FontSize: 12}))
		return c
	}

	c := build()
	first := exportPNG(t, c)
	c.Render()
	second := exportPNG(t, c)
	if !bytes.Equal(first, second) {
		t.Error("rendering the same scene twice produced different frames")
	}
	if other := exportPNG(t, build()); !bytes.Equal(first, other) {
		t.Error("two canvases with the same scene produced different frames")
	}
}

func TestShapePixels(t *testing.T) {
	c := New(render.WithSize(100, 100))
	c.AddObject(rectObj(50, 50, 40, 40, "#FF0000"))

	img := decodePNG(t, exportPNG(t, c))
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("bounds = %v", b)
	}
	assertPixel(t, img, 50, 50, red, 2)
	assertPixel(t, img, 5, 5, white, 2)
}

func TestLayerOrderPaintsTopLast(t *testing.T) {
	c := New(render.WithSize(100, 100))
	bottom := c.AddObject(rectObj(50, 50, 40, 40, "#FF0000"))
	c.AddObject(rectObj(50, 50, 40, 40, "#00FF00"))
	assertPixel(t, decodePNG(t, exportPNG(t, c)), 50, 50, green, 2)

	c.BringToFront(bottom)
	assertPixel(t, decodePNG(t, exportPNG(t, c)), 50, 50, red, 2)
}

func TestHiddenAndTransparentObjectsSkipped(t *testing.T) {
	c := New(render.WithSize(100, 100))
	hidden := rectObj(50, 50, 40, 40, "#FF0000")
	hidden.Visible = false
	c.AddObject(hidden)
	faded := rectObj(50, 50, 40, 40, "#FF0000")
	faded.Transform.Opacity = 0
	c.AddObject(faded)

	assertPixel(t, decodePNG(t, exportPNG(t, c)), 50, 50, white, 2)
}

func TestOpacityComposites(t *testing.T) {
	c := New(render.WithSize(100, 100))
	id := c.AddObject(rectObj(50, 50, 40, 40, "#FF0000"))
	c.ApplyTransform(id, geom.OpacityTo(0.5))

	assertPixel(t, decodePNG(t, exportPNG(t, c)), 50, 50, color.RGBA{255, 128, 128, 255}, 4)
}

// inkBounds returns the bounding box of every pixel that differs from
// white by more than a small threshold.
func inkBounds(img image.Image) image.Rectangle {
	var ink image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 > 200 && g>>8 > 200 && bl>>8 > 200 {
				continue
			}
			ink = ink.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return ink
}

func TestRotationAppliesToTextAndImages(t *testing.T) {
	bar := image.NewRGBA(image.Rect(0, 0, 80, 10))
	for i := range bar.Pix {
		if i%4 == 3 {
			bar.Pix[i] = 0xFF
		}
	}

	tests := []struct {
		name string
		obj  scene.RenderObject
	}{
		{"text", scene.NewObject(scene.TypeText, 100, 100, scene.Data{Text: "HHHHHHHHHH", FontSize: 16})},
		{"image", scene.NewObject(scene.TypeImage, 100, 100, scene.Data{Bitmap: bar, Width: 80, Height: 10})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(render.WithSize(200, 200))
			id := c.AddObject(tt.obj)

			flat := inkBounds(decodePNG(t, exportPNG(t, c)))
			if flat.Dx() <= flat.Dy() {
				t.Fatalf("unrotated ink %v should be wider than tall", flat)
			}

			c.ApplyTransform(id, geom.RotateTo(90))
			turned := inkBounds(decodePNG(t, exportPNG(t, c)))
			if turned.Dy() <= turned.Dx() {
				t.Errorf("rotated ink %v should be taller than wide", turned)
			}
			if got, want := turned.Dy(), flat.Dx(); got < want-4 || got > want+4 {
				t.Errorf("rotated ink height = %d, want about %d", got, want)
			}
		})
	}
}

func TestScaleAppliesToShapes(t *testing.T) {
	c := New(render.WithSize(100, 100))
	id := c.AddObject(rectObj(50, 50, 20, 20, "#FF0000"))
	assertPixel(t, decodePNG(t, exportPNG(t, c)), 50, 25, white, 2)

	c.ApplyTransform(id, geom.ScaleTo(1, 3))
	img := decodePNG(t, exportPNG(t, c))
	assertPixel(t, img, 50, 25, red, 2)
	assertPixel(t, img, 25, 50, white, 2)
}

func TestImageObjects(t *testing.T) {
	bmp := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range bmp.Pix {
		bmp.Pix[i] = 0xFF
		if i%4 == 0 || i%4 == 2 {
			bmp.Pix[i] = 0
		}
	}

	c := New(render.WithSize(100, 100))
	c.AddObject(scene.NewObject(scene.TypeImage, 25, 25, scene.Data{Src: "missing.png", Width: 30, Height: 30}))
	c.AddObject(scene.NewObject(scene.TypeImage, 70, 70, scene.Data{Bitmap: bmp, Width: 40, Height: 40}))

	img := decodePNG(t, exportPNG(t, c))
	assertPixel(t, img, 25, 25, white, 2)
	assertPixel(t, img, 70, 70, green, 4)
}

func TestSelectionAndGridChangeFrame(t *testing.T) {
	c := New(render.WithSize(100, 100))
	id := c.AddObject(rectObj(50, 50, 40, 40, "#FF0000"))
	plain := exportPNG(t, c)

	c.SelectObjects([]string{id})
	selected := exportPNG(t, c)
	if bytes.Equal(plain, selected) {
		t.Error("selection outline not drawn")
	}
	if r, ok := c.SelectedBounds(); !ok || r != (geom.Rect{X: 30, Y: 30, Width: 40, Height: 40}) {
		t.Errorf("SelectedBounds() = %+v, %v", r, ok)
	}

	c.SelectObjects(nil)
	if !bytes.Equal(plain, exportPNG(t, c)) {
		t.Error("clearing the selection should restore the plain frame")
	}

	c.SetGrid(true)
	if bytes.Equal(plain, exportPNG(t, c)) {
		t.Error("grid not drawn")
	}
}

func TestTargetReceivesFrames(t *testing.T) {
	same := image.NewRGBA(image.Rect(0, 0, 100, 100))
	c := New(render.WithSize(100, 100), render.WithTarget(same), render.WithBackground("#00FF00"))
	assertPixel(t, same, 10, 10, green, 0)

	c.AddObject(rectObj(50, 50, 100, 100, "#FF0000"))
	assertPixel(t, same, 10, 10, red, 0)

	half := image.NewRGBA(image.Rect(0, 0, 50, 50))
	New(render.WithSize(100, 100), render.WithTarget(half), render.WithBackground("#FF0000"))
	assertPixel(t, half, 25, 25, red, 2)
}

func TestMutationsRenderOnce(t *testing.T) {
	c := New(render.WithSize(50, 50))
	start := c.Frames()

	id := c.AddObject(rectObj(10, 10, 10, 10, "#000000"))
	c.UpdateObject(id, scene.SetLocked(true))
	c.ApplyTransform(id, geom.MoveTo(20, 20))
	c.SendToBack(id)
	c.RemoveObject(id)
	if got := c.Frames() - start; got != 5 {
		t.Errorf("5 mutations rendered %d frames", got)
	}

	before := c.Frames()
	c.RemoveObject("nope")
	c.UpdateObject("nope", scene.SetVisible(false))
	c.ApplyTransform("nope", geom.MoveTo(1, 1))
	c.BringToFront("nope")
	if c.Frames() != before {
		t.Error("operations on unknown ids should not render")
	}
}

func TestEngineQueries(t *testing.T) {
	c := New(render.WithSize(200, 200))
	a := c.AddObject(rectObj(50, 50, 100, 100, "#FF0000"))
	b := c.AddObject(rectObj(100, 100, 100, 100, "#00FF00"))

	if id, ok := c.HitTest(75, 75); !ok || id != b {
		t.Errorf("HitTest overlap = %q, %v; want %q", id, ok, b)
	}
	if id, ok := c.HitTest(10, 10); !ok || id != a {
		t.Errorf("HitTest = %q, %v; want %q", id, ok, a)
	}
	if _, ok := c.HitTest(190, 10); ok {
		t.Error("HitTest on empty area should miss")
	}

	dup, ok := c.DuplicateObject(a, 10, 0)
	if !ok {
		t.Fatal("DuplicateObject failed")
	}
	objs := c.Objects()
	if len(objs) != 3 || objs[2].ID != dup || objs[2].Transform.X != 60 {
		t.Errorf("Objects() after duplicate = %+v", objs)
	}

	got, ok := c.GetObject(a)
	if !ok || got.Data.Fill != "#FF0000" {
		t.Errorf("GetObject = %+v, %v", got, ok)
	}

	c.Reset()
	if len(c.Objects()) != 0 || c.Selection() != nil {
		t.Error("Reset should empty the scene")
	}
}

func TestExportErrors(t *testing.T) {
	c := New(render.WithSize(10, 10))

	if _, err := c.ExportImage(context.Background(), render.Format("gif"), 1); !errors.Is(err, render.ErrUnsupportedFormat) {
		t.Errorf("gif export err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ExportImage(ctx, render.FormatPNG, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled export err = %v", err)
	}

	c.Resize(0, 0)
	_, err := c.ExportImage(context.Background(), render.FormatPNG, 1)
	if !errors.Is(err, render.ErrEncode) || !errors.Is(err, render.ErrEmptySurface) {
		t.Errorf("empty surface export err = %v", err)
	}
	c.AddObject(rectObj(1, 1, 1, 1, "#000000")) // rendering an empty surface is a no-op

	c.Resize(10, 10)
	if _, err := c.ExportImage(context.Background(), render.FormatPNG, 1); err != nil {
		t.Errorf("export after resize: %v", err)
	}
}

func TestExportJPEG(t *testing.T) {
	c := New(render.WithSize(64, 48))
	c.AddObject(rectObj(32, 24, 20, 20, "#FF0000"))

	data, err := c.ExportImage(context.Background(), render.FormatJPEG, 0.8)
	if err != nil {
		t.Fatalf("ExportImage: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("jpeg.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("bounds = %v", b)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := New(render.WithSize(100, 100))
	a := c.AddObject(rectObj(50, 50, 40, 40, "#FF0000"))
	c.AddObject(scene.NewObject(scene.TypeText, 20, 20, scene.Data{Text: "x"}))
	c.SendToBack(a)
	c.SelectObjects([]string{a})

	data, err := c.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	d := New(render.WithSize(100, 100))
	d.AddObject(rectObj(1, 1, 1, 1, "#000000"))
	if err := d.LoadJSON(data); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if d.Selection() != nil {
		t.Error("LoadJSON should clear the selection")
	}
	objs := d.Objects()
	if len(objs) != 2 || objs[0].ID != a {
		t.Fatalf("loaded objects = %+v", objs)
	}

	c.SelectObjects(nil)
	if !bytes.Equal(exportPNG(t, c), exportPNG(t, d)) {
		t.Error("loaded scene renders differently")
	}

	if err := d.LoadJSON([]byte(`{"objects":[{"id":"","type":"shape"}]}`)); !errors.Is(err, scene.ErrInvalidDocument) {
		t.Errorf("invalid document err = %v", err)
	}
	if len(d.Objects()) != 2 {
		t.Error("failed LoadJSON must keep the previous scene")
	}
}

func TestMeasureText(t *testing.T) {
	c := New(render.WithSize(10, 10))

	w16, h16 := c.MeasureText("Hello", "", 0)
	if w16 <= 0 || h16 <= 0 {
		t.Fatalf("MeasureText default = %g x %g", w16, h16)
	}
	w32, _ := c.MeasureText("Hello", "sans-serif", 32)
	if w32 <= w16 {
		t.Errorf("32px width %g should exceed 16px width %g", w32, w16)
	}
	if w, h := c.MeasureText("", "", 16); w != 0 || h != 0 {
		t.Errorf("empty text measured %g x %g", w, h)
	}

	// Decomposed and precomposed forms measure the same after NFC.
	a, _ := c.MeasureText("e\u0301", "", 16)
	b, _ := c.MeasureText("\u00e9", "", 16)
	if a != b {
		t.Errorf("NFC widths differ: %g vs %g", a, b)
	}
}
