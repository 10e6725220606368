// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package template

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/studio"
	"github.com/gogpu/studio/geom"
	"github.com/gogpu/studio/layout"
	"github.com/gogpu/studio/render"
	"github.com/gogpu/studio/scene"
)

// Default component colors.
const (
	DefaultButtonFill  = "#0D99FF"
	DefaultButtonColor = "#FFFFFF"
)

// DefaultConcurrency bounds parallel asset fetches.
const DefaultConcurrency = 4

// Option configures a Renderer.
type Option func(*Renderer)

// WithLoader sets the asset loader. The default is a FetchLoader.
func WithLoader(l AssetLoader) Option {
	return func(r *Renderer) {
		if l != nil {
			r.loader = l
		}
	}
}

// WithConcurrency bounds the number of assets fetched in parallel.
// Values below one are ignored.
func WithConcurrency(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithVariant selects the output variant by name. The default is the
// template's first variant.
func WithVariant(name string) Option {
	return func(r *Renderer) {
		r.variant = name
	}
}

// Renderer instantiates templates into a render.Engine.
// A Renderer may be reused but not shared between goroutines.
type Renderer struct {
	engine      render.Engine
	loader      AssetLoader
	concurrency int
	variant     string
}

// NewRenderer creates a renderer drawing into engine.
func NewRenderer(engine render.Engine, opts ...Option) *Renderer {
	r := &Renderer{
		engine:      engine,
		loader:      &FetchLoader{},
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// asset is the outcome of one prefetch.
type asset struct {
	img image.Image
	err error
}

// Render replaces the engine's scene with the primitives of tpl.
// override is merged over the template data and wins on conflicts.
//
// The scene is rebuilt from scratch on every call. Images that fail to
// load are logged and omitted; Render only fails when ctx is done, in
// which case the scene holds whatever was added before cancellation.
func (r *Renderer) Render(ctx context.Context, tpl *Template, override map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := MergeData(tpl.Data, override)

	r.engine.Reset()
	if v, ok := tpl.Variant(r.variant); ok {
		r.engine.Resize(v.Width, v.Height)
	} else if r.variant != "" {
		studio.Logger().Warn("template: unknown variant, keeping surface size", "template", tpl.ID, "variant", r.variant)
	}

	assets := r.prefetch(ctx, tpl, data)
	if err := ctx.Err(); err != nil {
		return err
	}

	width, _ := r.engine.Size()
	inst := instantiator{
		engine: r.engine,
		data:   data,
		assets: assets,
	}
	var y float64
	for i := range tpl.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		sec := &tpl.Sections[i]
		h, err := inst.section(sec, float64(width), y)
		if err != nil {
			return fmt.Errorf("template %q: section %q: %w", tpl.ID, sec.ID, err)
		}
		y += h
	}

	studio.Logger().Info("template: rendered",
		"template", tpl.ID, "sections", len(tpl.Sections),
		"objects", inst.added, "skipped", inst.skipped, "height", y)
	return nil
}

// prefetch loads every distinct image source concurrently. Failures are
// recorded per source and never cancel the other loads.
func (r *Renderer) prefetch(ctx context.Context, tpl *Template, data map[string]any) map[string]asset {
	srcs := make(map[string]struct{})
	var walk func([]Component)
	walk = func(comps []Component) {
		for i := range comps {
			c := &comps[i]
			if c.Type == TypeImage {
				if src := Resolve(c.Binding, data, c.Src); src != "" {
					srcs[src] = struct{}{}
				}
			}
			walk(c.Children)
		}
	}
	for i := range tpl.Sections {
		walk(tpl.Sections[i].Components)
	}

	assets := make(map[string]asset, len(srcs))
	if len(srcs) == 0 {
		return assets
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(r.concurrency)
	for src := range srcs {
		g.Go(func() error {
			img, err := r.loader.Load(ctx, src)
			mu.Lock()
			assets[src] = asset{img: img, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return assets
}

// instantiator turns laid-out components into scene objects.
type instantiator struct {
	engine render.Engine
	data   map[string]any
	assets map[string]asset

	added, skipped int
}

// section lays out sec at vertical offset y and adds its primitives.
// It returns the resolved section height.
func (in *instantiator) section(sec *Section, width, y float64) (float64, error) {
	style, err := sec.Layout.Style()
	if err != nil {
		return 0, err
	}
	if sec.Layout.Width == "" {
		style.Width = layout.Fill()
	}

	nodes, err := in.nodes(sec.Components)
	if err != nil {
		return 0, err
	}
	res := layout.Apply(layout.Section{ID: sec.ID, Style: style, Children: nodes}, layout.Size{Width: width})

	bg := geom.Rect{Y: y, Width: res.Size.Width, Height: res.Size.Height}
	if paintable(sec.Background) && !bg.IsEmpty() {
		in.add(shapeObject(bg, ComponentStyle{Fill: sec.Background}))
	}

	idx := 0
	in.components(sec.Components, res.Boxes, &idx, 0, y)
	return res.Size.Height, nil
}

func (in *instantiator) nodes(comps []Component) ([]layout.Node, error) {
	out := make([]layout.Node, len(comps))
	for i := range comps {
		c := &comps[i]
		st, err := c.Layout.Style()
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", c.ID, err)
		}
		kids, err := in.nodes(c.Children)
		if err != nil {
			return nil, err
		}
		out[i] = layout.Node{
			ID:       c.ID,
			Style:    st,
			Measure:  in.measure(c),
			Children: kids,
		}
	}
	return out, nil
}

// measure returns the intrinsic size of text-bearing leaves when the
// engine can measure text.
func (in *instantiator) measure(c *Component) layout.MeasureFunc {
	if c.Type != TypeText && c.Type != TypeButton {
		return nil
	}
	m, ok := in.engine.(render.TextMeasurer)
	if !ok {
		return nil
	}
	content := Resolve(c.Binding, in.data, c.Content)
	return func() layout.Size {
		w, h := m.MeasureText(content, c.Style.FontFamily, c.Style.FontSize)
		return layout.Size{Width: math.Ceil(w), Height: math.Ceil(h)}
	}
}

// components walks comps in the same pre-order as boxes, offsetting each
// box by its parent's absolute origin (ox, oy).
func (in *instantiator) components(comps []Component, boxes []layout.Box, idx *int, ox, oy float64) {
	for i := range comps {
		c := &comps[i]
		b := boxes[*idx]
		*idx++
		box := geom.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}.Translate(ox, oy)

		switch c.Type {
		case TypeShape:
			in.add(shapeObject(box, c.Style))
		case TypeText:
			in.add(textObject(box, c.Style, Resolve(c.Binding, in.data, c.Content), ""))
		case TypeImage:
			in.image(c, box)
		case TypeButton:
			bg := c.Style
			if bg.Fill == "" {
				bg.Fill = DefaultButtonFill
			}
			in.add(shapeObject(box, bg))
			in.add(textObject(box, c.Style, Resolve(c.Binding, in.data, c.Content), DefaultButtonColor))
		case TypeContainer:
			// Children only.
		}

		in.components(c.Children, boxes, idx, box.X, box.Y)
	}
}

func (in *instantiator) image(c *Component, box geom.Rect) {
	src := Resolve(c.Binding, in.data, c.Src)
	a, ok := in.assets[src]
	switch {
	case src == "":
		a.err = fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	case !ok:
		a.err = fmt.Errorf("template: asset %q was not fetched", src)
	case a.err == nil && a.img == nil:
		a.err = fmt.Errorf("%w: loader returned no image", ErrNotImage)
	}
	if a.err != nil {
		in.skipped++
		studio.Logger().Warn("template: image omitted", "component", c.ID, "src", src, "err", a.err)
		return
	}

	w, h := int(math.Round(box.Width)), int(math.Round(box.Height))
	if w < 1 || h < 1 {
		in.skipped++
		studio.Logger().Debug("template: image has empty box", "component", c.ID)
		return
	}
	bmp := a.img
	if b := bmp.Bounds(); b.Dx() != w || b.Dy() != h {
		bmp = transform.Resize(bmp, w, h, transform.Linear)
	}

	obj := styled(scene.NewObject(scene.TypeImage, box.X+box.Width/2, box.Y+box.Height/2, scene.Data{
		Src:    src,
		Bitmap: bmp,
		Width:  box.Width,
		Height: box.Height,
	}), c.Style)
	in.add(obj)
}

func (in *instantiator) add(obj scene.RenderObject) {
	in.engine.AddObject(obj)
	in.added++
}

func shapeObject(box geom.Rect, st ComponentStyle) scene.RenderObject {
	kind := scene.ShapeRect
	if st.Shape == string(scene.ShapeCircle) {
		kind = scene.ShapeCircle
	}
	c := box.Center()
	return styled(scene.NewObject(scene.TypeShape, c.X, c.Y, scene.Data{
		Shape:       kind,
		Fill:        st.Fill,
		Stroke:      st.Stroke,
		StrokeWidth: st.StrokeWidth,
		Radius:      st.Radius,
		Width:       box.Width,
		Height:      box.Height,
	}), st)
}

func textObject(box geom.Rect, st ComponentStyle, content, defaultColor string) scene.RenderObject {
	color := st.Color
	if color == "" {
		color = defaultColor
	}
	c := box.Center()
	return styled(scene.NewObject(scene.TypeText, c.X, c.Y, scene.Data{
		Text:       content,
		FontFamily: st.FontFamily,
		FontSize:   st.FontSize,
		Fill:       color,
		Width:      box.Width,
		Height:     box.Height,
	}), st)
}

// styled applies the transform-level style attributes.
func styled(obj scene.RenderObject, st ComponentStyle) scene.RenderObject {
	obj.Transform.Rotation = st.Rotation
	if st.Opacity != nil {
		obj.Transform.Opacity = *st.Opacity
	}
	obj.BlendMode = st.BlendMode
	return obj
}

func paintable(color string) bool {
	switch color {
	case "", "none", "transparent":
		return false
	}
	return true
}
