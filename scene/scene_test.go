package scene

import (
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/gogpu/studio/geom"
)

func TestHitTestTopWins(t *testing.T) {
	s := New()
	a := s.Add(rect(50, 50, 40, 40))
	b := s.Add(rect(50, 50, 40, 40))

	got, ok := s.HitTest(50, 50)
	if !ok || got != b {
		t.Fatalf("HitTest = %q, %v; want %q", got, ok, b)
	}

	s.BringToFront(a)
	if got, _ := s.HitTest(50, 50); got != a {
		t.Errorf("after BringToFront, HitTest = %q, want %q", got, a)
	}

	if all := s.HitTestAll(50, 50); !slices.Equal(all, []string{a, b}) {
		t.Errorf("HitTestAll = %v, want [%s %s]", all, a, b)
	}
}

func TestHitTestSkipsLockedAndInvisible(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
	}{
		{"locked", SetLocked(true)},
		{"invisible", SetVisible(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			bottom := s.Add(rect(0, 0, 10, 10))
			top := s.Add(rect(0, 0, 10, 10))
			s.Update(top, tt.patch)

			got, ok := s.HitTest(0, 0)
			if !ok || got != bottom {
				t.Errorf("HitTest = %q, %v; want %q", got, ok, bottom)
			}

			s.Update(bottom, tt.patch)
			if got, ok := s.HitTest(0, 0); ok {
				t.Errorf("HitTest = %q, want no hit", got)
			}
		})
	}
}

func TestHitTestMiss(t *testing.T) {
	s := New()
	s.Add(rect(0, 0, 10, 10))
	if _, ok := s.HitTest(100, 100); ok {
		t.Error("expected miss")
	}
}

func TestHitTestDefaultExtent(t *testing.T) {
	s := New()
	id := s.Add(NewObject(TypeGroup, 0, 0, Data{}))
	if got, ok := s.HitTest(49, -49); !ok || got != id {
		t.Errorf("object without size should use a %dx%d box", DefaultExtent, DefaultExtent)
	}
}

func TestBounds(t *testing.T) {
	s := New()
	id := s.Add(NewObject(TypeShape, 50, 20, Data{Width: 40, Height: 10}))

	got, ok := s.Bounds(id)
	if !ok || got != (geom.Rect{X: 30, Y: 15, Width: 40, Height: 10}) {
		t.Errorf("Bounds = %+v, %v", got, ok)
	}
	if _, ok := s.Bounds("missing"); ok {
		t.Error("Bounds of an unknown id should report false")
	}
}

func TestSelectedBoundsUnion(t *testing.T) {
	s := New()
	a := s.Add(rect(0, 0, 10, 10))
	b := s.Add(rect(100, 0, 10, 10))

	if _, ok := s.SelectedBounds(); ok {
		t.Fatal("empty selection should have no bounds")
	}

	s.Select([]string{a, b})
	got, ok := s.SelectedBounds()
	if !ok {
		t.Fatal("SelectedBounds reported no bounds")
	}
	want := geom.Rect{X: -5, Y: -5, Width: 110, Height: 10}
	if got != want {
		t.Errorf("SelectedBounds = %+v, want %+v", got, want)
	}
}

func TestSelectReplacesAndIgnoresUnknown(t *testing.T) {
	s := New()
	a := s.Add(rect(0, 0, 10, 10))
	b := s.Add(rect(0, 0, 10, 10))

	s.Select([]string{a, "ghost"})
	if got := s.Selection(); !slices.Equal(got, []string{a}) {
		t.Errorf("Selection = %v, want [%s]", got, a)
	}

	s.Select([]string{b})
	if got := s.Selection(); !slices.Equal(got, []string{b}) {
		t.Errorf("Select should replace, got %v", got)
	}

	s.Select(nil)
	if got := s.Selection(); got != nil {
		t.Errorf("Select(nil) should clear, got %v", got)
	}
}

func TestRemoveDropsSelection(t *testing.T) {
	s := New()
	a := s.Add(rect(0, 0, 10, 10))
	s.Select([]string{a})
	s.Remove(a)

	if s.IsSelected(a) {
		t.Error("removed object still selected")
	}
	if _, ok := s.SelectedBounds(); ok {
		t.Error("selection bounds should be empty after removal")
	}
	if s.Remove(a) {
		t.Error("second Remove should report false")
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	s := New()
	id := s.Add(rect(0, 0, 10, 10))

	data := Data{Text: "hello", FontSize: 12}
	if !s.Update(id, Patch{Data: &data}) {
		t.Fatal("Update reported unknown id")
	}
	got, _ := s.Get(id)
	if got.ID != id || got.Type != TypeShape {
		t.Errorf("Update changed identity: %q %q", got.ID, got.Type)
	}
	if got.Data.Text != "hello" || got.Data.Width != 0 {
		t.Errorf("Data should be replaced wholesale, got %+v", got.Data)
	}
	if !got.Visible {
		t.Error("fields absent from the patch must be left alone")
	}

	if s.Update("ghost", SetVisible(false)) {
		t.Error("Update on unknown id should report false")
	}
}

func TestApplyTransform(t *testing.T) {
	s := New()
	id := s.Add(rect(0, 0, 10, 10))

	s.ApplyTransform(id, geom.RotateTo(30))
	s.ApplyTransform(id, geom.MoveTo(7, 8))
	got, _ := s.Get(id)
	want := geom.Transform{X: 7, Y: 8, ScaleX: 1, ScaleY: 1, Rotation: 30, Opacity: 1}
	if got.Transform != want {
		t.Errorf("Transform = %+v, want %+v", got.Transform, want)
	}

	if s.ApplyTransform("ghost", geom.MoveTo(1, 1)) {
		t.Error("ApplyTransform on unknown id should report false")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New()
	obj := NewObject(TypeGroup, 0, 0, Data{Children: []string{"a", "b"}})
	id := s.Add(obj)

	got, _ := s.Get(id)
	got.Data.Children[0] = "tampered"
	got.Transform.X = 99

	again, _ := s.Get(id)
	if again.Data.Children[0] != "a" || again.Transform.X != 0 {
		t.Errorf("mutating a returned object leaked into the scene: %+v", again)
	}
}

func TestDuplicate(t *testing.T) {
	s := New()
	id := s.Add(rect(10, 10, 20, 20))
	s.Add(rect(0, 0, 1, 1))

	dup, ok := s.Duplicate(id, 5, 5)
	if !ok || dup == id {
		t.Fatalf("Duplicate = %q, %v", dup, ok)
	}
	order := s.Order()
	if order[len(order)-1] != dup {
		t.Errorf("duplicate should be top-most, order = %v", order)
	}
	got, _ := s.Get(dup)
	if got.Transform.X != 15 || got.Data.Width != 20 {
		t.Errorf("duplicate = %+v", got)
	}
	if _, ok := s.Duplicate("ghost", 0, 0); ok {
		t.Error("Duplicate on unknown id should report false")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := New()
	a := s.Add(rect(0, 0, 10, 10))
	b := s.Add(NewObject(TypeText, 5, 5, Data{Text: "hi", FontFamily: "sans-serif", FontSize: 14, Fill: "#333"}))
	c := s.Add(NewObject(TypeImage, 1, 2, Data{Src: "cat.png", Width: 30, Height: 20}))
	s.Update(b, SetBlendMode("multiply"))
	s.Update(c, SetLocked(true))
	s.SendToBack(c)
	s.Select([]string{a, b})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	loaded := New()
	loaded.Select([]string{"stale"})
	if err := loaded.LoadJSON(data); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	if !reflect.DeepEqual(loaded.Objects(), s.Objects()) {
		t.Errorf("objects differ after round trip:\n got %+v\nwant %+v", loaded.Objects(), s.Objects())
	}
	if !slices.Equal(loaded.Order(), s.Order()) {
		t.Errorf("order = %v, want %v", loaded.Order(), s.Order())
	}
	if sel := loaded.Selection(); sel != nil {
		t.Errorf("selection should not survive a round trip, got %v", sel)
	}
}

func TestLoadMissingLayerOrder(t *testing.T) {
	s := New()
	err := s.LoadJSON([]byte(`{"objects":[
		{"id":"x","type":"shape","transform":{"x":0,"y":0,"scaleX":1,"scaleY":1,"rotation":0,"opacity":1},"visible":true,"locked":false,"data":{}},
		{"id":"y","type":"text","transform":{"x":0,"y":0,"scaleX":1,"scaleY":1,"rotation":0,"opacity":1},"visible":true,"locked":false,"data":{}}
	]}`))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if got := s.Order(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Order = %v, want [x y]", got)
	}
	if err := s.store.check(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadRepairsLayerOrder(t *testing.T) {
	s := New()
	doc := Document{
		Objects: []RenderObject{
			{ID: "a", Type: TypeShape},
			{ID: "b", Type: TypeShape},
			{ID: "c", Type: TypeShape},
		},
		LayerOrder: []string{"c", "ghost", "a", "c"},
	}
	if err := s.Load(doc); err != nil {
		t.Fatal(err)
	}
	if got := s.Order(); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("Order = %v, want [c a b]", got)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", `not json`},
		{"missing id", `{"objects":[{"type":"shape"}]}`},
		{"unknown type", `{"objects":[{"id":"a","type":"polygon"}]}`},
		{"duplicate id", `{"objects":[{"id":"a","type":"shape"},{"id":"a","type":"text"}]}`},
		{"wrong field type", `{"objects":[{"id":7,"type":"shape"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			keep := s.Add(rect(0, 0, 1, 1))

			err := s.LoadJSON([]byte(tt.data))
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("LoadJSON error = %v, want ErrInvalidDocument", err)
			}
			if _, ok := s.Get(keep); !ok || s.Len() != 1 {
				t.Error("failed load must leave prior state untouched")
			}
		})
	}
}

func TestLoadAdvancesIDSequence(t *testing.T) {
	s := New()
	if err := s.Load(Document{Objects: []RenderObject{{ID: "obj-7", Type: TypeShape}}}); err != nil {
		t.Fatal(err)
	}
	if id := s.Add(rect(0, 0, 1, 1)); id != "obj-8" {
		t.Errorf("Add after Load = %q, want obj-8", id)
	}
}
