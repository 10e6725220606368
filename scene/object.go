package scene

import (
	"image"

	"github.com/jinzhu/copier"

	"github.com/gogpu/studio/geom"
)

// ObjectType discriminates the payload carried in Data.
type ObjectType string

const (
	TypeImage ObjectType = "image"
	TypeText  ObjectType = "text"
	TypeShape ObjectType = "shape"
	TypeGroup ObjectType = "group"
)

// Valid reports whether t is one of the known object types.
func (t ObjectType) Valid() bool {
	switch t {
	case TypeImage, TypeText, TypeShape, TypeGroup:
		return true
	default:
		return false
	}
}

// ShapeKind selects the primitive drawn for a shape object.
type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
)

// DefaultExtent is the width and height assumed for hit-testing and
// selection when an object's payload does not declare a size.
const DefaultExtent = 100

// Data is the type-specific payload of a RenderObject. Only the fields
// relevant to the object's type are meaningful; the rest stay zero.
type Data struct {
	// Shape payload.
	Shape       ShapeKind `json:"shape,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Radius      float64   `json:"radius,omitempty"`

	// Shared by shape and text.
	Fill string `json:"fill,omitempty"`

	// Text payload.
	Text       string  `json:"text,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`

	// Image payload. Bitmap is the decoded handle; it is runtime-only and
	// nil until the source has been decoded.
	Src    string      `json:"src,omitempty"`
	Bitmap image.Image `json:"-" copier:"-"`

	// Group payload.
	Children []string `json:"children,omitempty"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Extent returns the payload's box size, substituting DefaultExtent for
// missing dimensions.
func (d Data) Extent() (w, h float64) {
	w, h = d.Width, d.Height
	if w <= 0 {
		w = DefaultExtent
	}
	if h <= 0 {
		h = DefaultExtent
	}
	return w, h
}

// RenderObject is the atomic scene entity.
type RenderObject struct {
	ID        string         `json:"id"`
	Type      ObjectType     `json:"type"`
	Transform geom.Transform `json:"transform"`
	Visible   bool           `json:"visible"`
	Locked    bool           `json:"locked"`
	BlendMode string         `json:"blendMode,omitempty"`
	Data      Data           `json:"data"`
}

// NewObject returns a visible, unlocked object of the given type with an
// identity transform at (x, y).
func NewObject(typ ObjectType, x, y float64, data Data) RenderObject {
	return RenderObject{
		Type:      typ,
		Transform: geom.At(x, y),
		Visible:   true,
		Data:      data,
	}
}

// Bounds returns the object's box-model footprint in scene coordinates.
func (o RenderObject) Bounds() geom.Rect {
	w, h := o.Data.Extent()
	return geom.Footprint(o.Transform, w, h)
}

// Hit reports whether the scene point (x, y) falls on the object's box.
// Visibility and locking are not considered here.
func (o RenderObject) Hit(x, y float64) bool {
	w, h := o.Data.Extent()
	return geom.HitLocal(o.Transform, w, h, x, y)
}

// Hittable reports whether the object participates in hit-testing.
func (o RenderObject) Hittable() bool {
	return o.Visible && !o.Locked
}

// Clone returns a deep copy of the object. The decoded bitmap is shared,
// since bitmaps are never mutated after decoding.
func (o RenderObject) Clone() RenderObject {
	var c RenderObject
	if err := copier.CopyWithOption(&c, &o, copier.Option{DeepCopy: true}); err != nil {
		c = o
		c.Data.Children = append([]string(nil), o.Data.Children...)
	}
	c.Data.Bitmap = o.Data.Bitmap
	return c
}

// Patch is a partial update for a RenderObject. Each non-nil field
// replaces the corresponding object field wholesale. ID and Type can
// never be changed through a Patch.
type Patch struct {
	Transform *geom.Transform `json:"transform,omitempty"`
	Visible   *bool           `json:"visible,omitempty"`
	Locked    *bool           `json:"locked,omitempty"`
	BlendMode *string         `json:"blendMode,omitempty"`
	Data      *Data           `json:"data,omitempty"`
}

func (p Patch) apply(o *RenderObject) {
	if p.Transform != nil {
		o.Transform = *p.Transform
	}
	if p.Visible != nil {
		o.Visible = *p.Visible
	}
	if p.Locked != nil {
		o.Locked = *p.Locked
	}
	if p.BlendMode != nil {
		o.BlendMode = *p.BlendMode
	}
	if p.Data != nil {
		o.Data = *p.Data
	}
}

// SetVisible returns a Patch that changes visibility.
func SetVisible(v bool) Patch { return Patch{Visible: &v} }

// SetLocked returns a Patch that changes the lock flag.
func SetLocked(v bool) Patch { return Patch{Locked: &v} }

// SetBlendMode returns a Patch that changes the blend mode.
func SetBlendMode(mode string) Patch { return Patch{BlendMode: &mode} }
