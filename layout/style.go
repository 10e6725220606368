package layout

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	Row    Direction = iota // Children laid out left-to-right
	Column                  // Children laid out top-to-bottom
)

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // Pack at start
	JustifyEnd                         // Pack at end
	JustifyCenter                      // Center children
	JustifySpaceBetween                // Even space between, none at edges
	JustifySpaceAround                 // Even space around each child
	JustifySpaceEvenly                 // Equal space between and at edges
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignStart   Align = iota // Align to start of cross axis
	AlignCenter               // Center on cross axis
	AlignEnd                  // Align to end of cross axis
	AlignStretch              // Stretch hug children across the cross axis
)

// Edges represents values for four sides of a box.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(v float64) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal
// (left/right) values.
func EdgeSymmetric(v, h float64) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// Horizontal returns the sum of Left and Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns the sum of Top and Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Style contains the box-model constraints of a node.
// The zero value hugs content on both axes, lays children out in a row
// and packs them at the start of both axes.
type Style struct {
	Width  Sizing
	Height Sizing

	Padding Edges
	Margin  Edges

	Direction      Direction
	JustifyContent Justify
	AlignItems     Align
	Gap            float64 // Space between children (main axis only)
}
