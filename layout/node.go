package layout

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// MeasureFunc reports the intrinsic content size of a leaf node, such as
// the extent of a text run.
type MeasureFunc func() Size

// Node is one component of the input tree.
type Node struct {
	ID    string
	Style Style

	// Intrinsic is the content size of a leaf used when it hugs.
	// Measure, when set, takes precedence.
	Intrinsic Size
	Measure   MeasureFunc

	Children []Node
}

// Section is the root of one layout pass.
// Its Style sizes the section itself against the available space and
// arranges its top-level components.
type Section struct {
	ID       string
	Style    Style
	Children []Node
}

// Box is the resolved geometry of one component.
// X and Y are relative to the resolved origin of the immediate parent
// (the section for top-level components).
type Box struct {
	ID     string
	Parent string // empty for top-level components
	X, Y   float64
	Width  float64
	Height float64
}

// Result is the output of one layout pass.
type Result struct {
	// Size is the resolved size of the section.
	Size Size

	// Boxes holds one entry per component in depth-first pre-order.
	Boxes []Box

	index map[string]int
}

// Lookup returns the box for a component id.
// When ids repeat, the last occurrence wins.
func (r Result) Lookup(id string) (Box, bool) {
	i, ok := r.index[id]
	if !ok {
		return Box{}, false
	}
	return r.Boxes[i], true
}

// Absolute returns the box for id with X and Y expressed relative to the
// section origin, accumulating every ancestor's offset.
func (r Result) Absolute(id string) (Box, bool) {
	b, ok := r.Lookup(id)
	if !ok {
		return Box{}, false
	}
	for p := b.Parent; p != ""; {
		pb, ok := r.Lookup(p)
		if !ok {
			break
		}
		b.X += pb.X
		b.Y += pb.Y
		p = pb.Parent
	}
	return b, true
}
