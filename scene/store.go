package scene

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// idPrefix is the prefix of store-assigned object ids.
const idPrefix = "obj-"

// Store is the authoritative map from object id to RenderObject together
// with the layer order. Both structures are private and updated together
// by every method.
//
// Store is NOT safe for concurrent use.
type Store struct {
	objects map[string]*RenderObject
	order   []string
	seq     uint64 // last assigned numeric id suffix; only ever grows
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{objects: make(map[string]*RenderObject)}
}

// Len returns the number of objects.
func (s *Store) Len() int {
	return len(s.order)
}

// Add inserts obj as the top-most object and returns its id.
//
// An empty ID is replaced with a fresh store-assigned id. Assigned ids are
// never reused, even after the object is removed. Adding an object whose
// ID is already present replaces that object and moves it to the top.
func (s *Store) Add(obj RenderObject) string {
	if obj.ID == "" {
		obj.ID = s.nextID()
	} else {
		s.observeID(obj.ID)
	}
	if _, ok := s.objects[obj.ID]; ok {
		s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == obj.ID })
	}
	o := obj
	s.objects[obj.ID] = &o
	s.order = append(s.order, obj.ID)
	return obj.ID
}

// Remove deletes the object. It reports whether the id was present.
func (s *Store) Remove(id string) bool {
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	if i := s.IndexOf(id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// Get returns a copy of the object.
func (s *Store) Get(id string) (RenderObject, bool) {
	o, ok := s.objects[id]
	if !ok {
		return RenderObject{}, false
	}
	return *o, true
}

// Has reports whether the id is present.
func (s *Store) Has(id string) bool {
	_, ok := s.objects[id]
	return ok
}

// Update shallow-merges the patch into the object.
// It reports whether the id was present.
func (s *Store) Update(id string, p Patch) bool {
	o, ok := s.objects[id]
	if !ok {
		return false
	}
	p.apply(o)
	return true
}

// BringToFront moves the object to the top of the layer order.
func (s *Store) BringToFront(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.order = append(slices.Delete(s.order, i, i+1), id)
	return true
}

// SendToBack moves the object to the bottom of the layer order.
func (s *Store) SendToBack(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.order = slices.Insert(slices.Delete(s.order, i, i+1), 0, id)
	return true
}

// IndexOf returns the layer index of id, or -1.
func (s *Store) IndexOf(id string) int {
	return slices.Index(s.order, id)
}

// Order returns a copy of the layer order, bottom-most first.
func (s *Store) Order() []string {
	return slices.Clone(s.order)
}

// Range calls fn for each object in ascending layer order until fn
// returns false. fn receives a copy and must not mutate the store.
func (s *Store) Range(fn func(obj RenderObject) bool) {
	for _, id := range s.order {
		if !fn(*s.objects[id]) {
			return
		}
	}
}

// RangeReverse is Range from the top-most object down.
func (s *Store) RangeReverse(fn func(obj RenderObject) bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		if !fn(*s.objects[s.order[i]]) {
			return
		}
	}
}

// Reset removes every object. The id sequence is kept so ids issued
// before the reset are not handed out again.
func (s *Store) Reset() {
	clear(s.objects)
	s.order = s.order[:0]
}

// replace swaps in a complete, already validated set of objects and order.
func (s *Store) replace(objs []RenderObject, order []string) {
	s.Reset()
	for i := range objs {
		o := objs[i]
		s.objects[o.ID] = &o
		s.observeID(o.ID)
	}
	s.order = append(s.order, order...)
}

func (s *Store) nextID() string {
	for {
		s.seq++
		id := idPrefix + strconv.FormatUint(s.seq, 10)
		if _, taken := s.objects[id]; !taken {
			return id
		}
	}
}

// observeID advances the sequence past ids that look store-assigned so
// later generated ids cannot collide with them.
func (s *Store) observeID(id string) {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err == nil && n > s.seq {
		s.seq = n
	}
}

// check verifies the id-map/layer-order invariant.
func (s *Store) check() error {
	if len(s.objects) != len(s.order) {
		return fmt.Errorf("scene: %d objects but %d layer entries", len(s.objects), len(s.order))
	}
	seen := make(map[string]struct{}, len(s.order))
	for _, id := range s.order {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("scene: id %q appears twice in layer order", id)
		}
		seen[id] = struct{}{}
		o, ok := s.objects[id]
		if !ok {
			return fmt.Errorf("scene: layer entry %q has no object", id)
		}
		if o.ID != id {
			return fmt.Errorf("scene: object keyed %q carries id %q", id, o.ID)
		}
	}
	return nil
}
