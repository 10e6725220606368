package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Transform positions an object in the scene.
// X and Y locate the object's center; Rotation is in degrees.
// Opacity is absolute (0..1) and is never inherited in the object model.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
}

// IdentityTransform returns a transform at the origin with unit scale
// and full opacity.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// At returns an identity transform translated to (x, y).
func At(x, y float64) Transform {
	t := IdentityTransform()
	t.X, t.Y = x, y
	return t
}

// Radians returns the rotation converted to radians.
func (t Transform) Radians() float64 {
	return t.Rotation * math.Pi / 180
}

// Matrix returns the affine matrix T·R·S for this transform.
func (t Transform) Matrix() gg.Matrix {
	return gg.Translate(t.X, t.Y).
		Multiply(gg.Rotate(t.Radians())).
		Multiply(gg.Scale(t.ScaleX, t.ScaleY))
}

// ClampedOpacity returns the opacity restricted to [0, 1].
func (t Transform) ClampedOpacity() float64 {
	return math.Max(0, math.Min(1, t.Opacity))
}

// TransformPatch is a partial Transform. Nil fields are left unchanged
// by Apply.
type TransformPatch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	ScaleX   *float64 `json:"scaleX,omitempty"`
	ScaleY   *float64 `json:"scaleY,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
}

// Apply shallow-merges the patch into t and returns the result.
func (p TransformPatch) Apply(t Transform) Transform {
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.ScaleX != nil {
		t.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		t.ScaleY = *p.ScaleY
	}
	if p.Rotation != nil {
		t.Rotation = *p.Rotation
	}
	if p.Opacity != nil {
		t.Opacity = *p.Opacity
	}
	return t
}

// MoveTo returns a patch that sets the position.
func MoveTo(x, y float64) TransformPatch {
	return TransformPatch{X: &x, Y: &y}
}

// RotateTo returns a patch that sets the rotation in degrees.
func RotateTo(deg float64) TransformPatch {
	return TransformPatch{Rotation: &deg}
}

// ScaleTo returns a patch that sets both scale factors.
func ScaleTo(sx, sy float64) TransformPatch {
	return TransformPatch{ScaleX: &sx, ScaleY: &sy}
}

// OpacityTo returns a patch that sets the opacity.
func OpacityTo(a float64) TransformPatch {
	return TransformPatch{Opacity: &a}
}
