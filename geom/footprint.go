package geom

import "github.com/gogpu/gg"

// Footprint returns the axis-aligned bounds of a w×h box centered on the
// transform origin after the transform is applied.
//
// With no rotation and unit scale this is exactly center ± half extents.
func Footprint(t Transform, w, h float64) Rect {
	if t.Rotation == 0 && t.ScaleX == 1 && t.ScaleY == 1 {
		return RectFromCenter(t.X, t.Y, w, h)
	}
	m := t.Matrix()
	hw, hh := w/2, h/2
	corners := [4]gg.Point{
		m.TransformPoint(gg.Pt(-hw, -hh)),
		m.TransformPoint(gg.Pt(hw, -hh)),
		m.TransformPoint(gg.Pt(hw, hh)),
		m.TransformPoint(gg.Pt(-hw, hh)),
	}
	pts := make([]Point, len(corners))
	for i, c := range corners {
		pts[i] = Point{X: c.X, Y: c.Y}
	}
	return RectFromPoints(pts...)
}

// HitLocal reports whether the scene point (x, y) falls inside the w×h box
// centered on the transform origin, honoring rotation and scale.
// A transform with a zero scale factor is never hit.
func HitLocal(t Transform, w, h, x, y float64) bool {
	if t.Rotation == 0 && t.ScaleX == 1 && t.ScaleY == 1 {
		return RectFromCenter(t.X, t.Y, w, h).Contains(x, y)
	}
	if t.ScaleX == 0 || t.ScaleY == 0 {
		return false
	}
	local := t.Matrix().Invert().TransformPoint(gg.Pt(x, y))
	const eps = 1e-9
	return local.X >= -w/2-eps && local.X <= w/2+eps &&
		local.Y >= -h/2-eps && local.Y <= h/2+eps
}
