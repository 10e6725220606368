package scene

import (
	"github.com/gogpu/studio/geom"
)

// Scene is the object store of one canvas plus its selection set.
// Each Scene owns its own selection; scenes never share state.
//
// Scene is NOT safe for concurrent use.
type Scene struct {
	store    *Store
	selected map[string]struct{}
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		store:    NewStore(),
		selected: make(map[string]struct{}),
	}
}

// Len returns the number of objects in the scene.
func (s *Scene) Len() int { return s.store.Len() }

// Add inserts obj as the top-most object and returns its id.
// See Store.Add for id assignment rules.
func (s *Scene) Add(obj RenderObject) string {
	return s.store.Add(obj)
}

// Remove deletes the object and drops it from the selection.
func (s *Scene) Remove(id string) bool {
	delete(s.selected, id)
	return s.store.Remove(id)
}

// Get returns a deep copy of the object.
func (s *Scene) Get(id string) (RenderObject, bool) {
	o, ok := s.store.Get(id)
	if !ok {
		return RenderObject{}, false
	}
	return o.Clone(), true
}

// Update shallow-merges p into the object. Unknown ids are ignored.
func (s *Scene) Update(id string, p Patch) bool {
	return s.store.Update(id, p)
}

// ApplyTransform shallow-merges p into the object's transform.
// Unknown ids are ignored.
func (s *Scene) ApplyTransform(id string, p geom.TransformPatch) bool {
	o, ok := s.store.Get(id)
	if !ok {
		return false
	}
	t := p.Apply(o.Transform)
	return s.store.Update(id, Patch{Transform: &t})
}

// BringToFront moves the object to the top of the layer order.
func (s *Scene) BringToFront(id string) bool { return s.store.BringToFront(id) }

// SendToBack moves the object to the bottom of the layer order.
func (s *Scene) SendToBack(id string) bool { return s.store.SendToBack(id) }

// Duplicate clones the object under a fresh id, offsets the clone by
// (dx, dy) and places it top-most. It returns the new id.
func (s *Scene) Duplicate(id string, dx, dy float64) (string, bool) {
	o, ok := s.store.Get(id)
	if !ok {
		return "", false
	}
	c := o.Clone()
	c.ID = ""
	c.Transform.X += dx
	c.Transform.Y += dy
	return s.store.Add(c), true
}

// Order returns a copy of the layer order, bottom-most first.
func (s *Scene) Order() []string { return s.store.Order() }

// Objects returns copies of all objects in ascending layer order.
func (s *Scene) Objects() []RenderObject {
	out := make([]RenderObject, 0, s.store.Len())
	s.store.Range(func(o RenderObject) bool {
		out = append(out, o.Clone())
		return true
	})
	return out
}

// Range calls fn for each object in ascending layer order.
// See Store.Range.
func (s *Scene) Range(fn func(obj RenderObject) bool) { s.store.Range(fn) }

// Reset removes every object and clears the selection.
func (s *Scene) Reset() {
	s.store.Reset()
	clear(s.selected)
}

// Select replaces the selection with ids. Ids not in the scene are
// silently ignored.
func (s *Scene) Select(ids []string) {
	clear(s.selected)
	for _, id := range ids {
		if s.store.Has(id) {
			s.selected[id] = struct{}{}
		}
	}
}

// IsSelected reports whether id is in the selection.
func (s *Scene) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selection returns the selected ids in layer order.
func (s *Scene) Selection() []string {
	if len(s.selected) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.selected))
	for _, id := range s.store.order {
		if _, ok := s.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SelectedBounds returns the union of the footprints of every selected
// object. It reports false when nothing is selected.
func (s *Scene) SelectedBounds() (geom.Rect, bool) {
	var (
		bounds geom.Rect
		found  bool
	)
	s.store.Range(func(o RenderObject) bool {
		if _, ok := s.selected[o.ID]; !ok {
			return true
		}
		b := o.Bounds()
		if !found {
			bounds, found = b, true
		} else {
			bounds = bounds.Union(b)
		}
		return true
	})
	return bounds, found
}

// Bounds returns the footprint of one object.
func (s *Scene) Bounds(id string) (geom.Rect, bool) {
	o, ok := s.store.Get(id)
	if !ok {
		return geom.Rect{}, false
	}
	return o.Bounds(), true
}

// HitTest returns the top-most visible, unlocked object whose box
// contains (x, y).
func (s *Scene) HitTest(x, y float64) (string, bool) {
	var hit string
	s.store.RangeReverse(func(o RenderObject) bool {
		if o.Hittable() && o.Hit(x, y) {
			hit = o.ID
			return false
		}
		return true
	})
	return hit, hit != ""
}

// HitTestAll returns every hittable object under (x, y), top-most first.
func (s *Scene) HitTestAll(x, y float64) []string {
	var hits []string
	s.store.RangeReverse(func(o RenderObject) bool {
		if o.Hittable() && o.Hit(x, y) {
			hits = append(hits, o.ID)
		}
		return true
	})
	return hits
}
