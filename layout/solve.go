package layout

import "math"

// Apply resolves sec against the available space and returns the geometry
// of every component. A non-positive available extent leaves Fill sizing on
// the section itself to fall back to hugging.
//
// Every internal node is allocated from a per-call arena that is released
// exactly once when Apply returns, including when a MeasureFunc panics.
func Apply(sec Section, available Size) Result {
	a := acquireArena()
	defer a.release()

	root := a.alloc()
	root.id = sec.ID
	root.style = sec.Style
	total := 0
	root.children = build(a, sec.Children, "", root.children, &total)

	measure(root)
	root.w = resolveRoot(root.style.Width, available.Width, root.hugW)
	root.h = resolveRoot(root.style.Height, available.Height, root.hugH)
	arrange(root)

	res := Result{
		Size:  Size{Width: root.w, Height: root.h},
		Boxes: make([]Box, 0, total),
		index: make(map[string]int, total),
	}
	for _, c := range root.children {
		res.collect(c)
	}
	return res
}

func build(a *arena, in []Node, parent string, dst []*node, total *int) []*node {
	for i := range in {
		src := &in[i]
		n := a.alloc()
		*total++
		n.id = src.ID
		n.parent = parent
		n.style = src.Style
		n.intrinsic = src.Intrinsic
		if src.Measure != nil {
			n.intrinsic = src.Measure()
		}
		n.children = build(a, src.Children, src.ID, n.children, total)
		dst = append(dst, n)
	}
	return dst
}

func (r *Result) collect(n *node) {
	r.index[n.id] = len(r.Boxes)
	r.Boxes = append(r.Boxes, Box{
		ID:     n.id,
		Parent: n.parent,
		X:      n.x,
		Y:      n.y,
		Width:  n.w,
		Height: n.h,
	})
	for _, c := range n.children {
		r.collect(c)
	}
}

func resolveRoot(s Sizing, avail, hug float64) float64 {
	switch s.Mode {
	case SizeFixed:
		return nonNeg(s.Value)
	case SizeFill:
		if avail > 0 {
			return avail * s.percent() / 100
		}
	}
	return hug
}

// measure computes hug sizes bottom-up.
// A container hugs the sum of its children's preferred main extents plus
// gaps, and the largest preferred cross extent, each including margins.
// Fill children contribute their own hug size here.
func measure(n *node) {
	for _, c := range n.children {
		measure(c)
	}

	var cw, ch float64
	if len(n.children) == 0 {
		cw, ch = n.intrinsic.Width, n.intrinsic.Height
	} else {
		row := n.style.Direction == Row
		var main, cross float64
		for _, c := range n.children {
			w, h := c.preferred()
			w += c.style.Margin.Horizontal()
			h += c.style.Margin.Vertical()
			if row {
				main += w
				cross = math.Max(cross, h)
			} else {
				main += h
				cross = math.Max(cross, w)
			}
		}
		main += n.style.Gap * float64(len(n.children)-1)
		if row {
			cw, ch = main, cross
		} else {
			cw, ch = cross, main
		}
	}

	n.hugW = nonNeg(cw) + n.style.Padding.Horizontal()
	n.hugH = nonNeg(ch) + n.style.Padding.Vertical()
}

func (n *node) preferred() (w, h float64) {
	w, h = n.hugW, n.hugH
	if n.style.Width.Mode == SizeFixed {
		w = nonNeg(n.style.Width.Value)
	}
	if n.style.Height.Mode == SizeFixed {
		h = nonNeg(n.style.Height.Value)
	}
	return w, h
}

// hugMain returns the hug extent along the row axis when row is true,
// otherwise along the column axis.
func (n *node) hugMain(row bool) float64 {
	if row {
		return n.hugW
	}
	return n.hugH
}

// arrange resolves the children of n, whose own size is already set,
// then recurses.
//
// Main axis: fixed children take their literal size and hug children their
// measured size. Fill children target their percentage of the content
// extent minus their margins; when the combined targets exceed the space
// left after fixed and hug children, the fill children share it in
// proportion to their percentages.
//
// Cross axis: fixed is literal, fill is a percentage of the content extent
// minus margins, and hug is measured unless AlignStretch applies.
func arrange(n *node) {
	if len(n.children) == 0 {
		return
	}

	st := &n.style
	row := st.Direction == Row
	contentW := nonNeg(n.w - st.Padding.Horizontal())
	contentH := nonNeg(n.h - st.Padding.Vertical())
	mainAvail, crossAvail := contentW, contentH
	if !row {
		mainAvail, crossAvail = contentH, contentW
	}

	count := len(n.children)
	used := st.Gap * float64(count-1)
	var fillWant float64
	for _, c := range n.children {
		mainSz, _ := axes(c.style, row)
		mStart, mEnd, _, _ := margins(c.style.Margin, row)
		used += mStart + mEnd
		switch mainSz.Mode {
		case SizeFixed:
			used += nonNeg(mainSz.Value)
		case SizeHug:
			used += c.hugMain(row)
		case SizeFill:
			fillWant += nonNeg(mainAvail-mStart-mEnd) * mainSz.percent() / 100
		}
	}

	free := nonNeg(mainAvail - used)
	scale := 1.0
	if fillWant > free && fillWant > 0 {
		scale = free / fillWant
	}

	var total float64
	mains := make([]float64, count)
	for i, c := range n.children {
		mainSz, crossSz := axes(c.style, row)
		mStart, mEnd, cStart, cEnd := margins(c.style.Margin, row)

		var m float64
		switch mainSz.Mode {
		case SizeFixed:
			m = nonNeg(mainSz.Value)
		case SizeHug:
			m = c.hugMain(row)
		case SizeFill:
			m = nonNeg(mainAvail-mStart-mEnd) * mainSz.percent() / 100 * scale
		}
		mains[i] = m
		total += m + mStart + mEnd

		crossRoom := nonNeg(crossAvail - cStart - cEnd)
		var x float64
		switch crossSz.Mode {
		case SizeFixed:
			x = nonNeg(crossSz.Value)
		case SizeFill:
			x = crossRoom * crossSz.percent() / 100
		case SizeHug:
			if st.AlignItems == AlignStretch {
				x = crossRoom
			} else {
				x = c.hugMain(!row)
			}
		}

		var crossPos float64
		switch st.AlignItems {
		case AlignCenter:
			crossPos = (crossAvail - x - cStart - cEnd) / 2
		case AlignEnd:
			crossPos = crossAvail - x - cStart - cEnd
		}
		crossPos += cStart

		if row {
			c.w, c.h = m, x
			c.y = st.Padding.Top + crossPos
		} else {
			c.w, c.h = x, m
			c.x = st.Padding.Left + crossPos
		}
	}
	total += st.Gap * float64(count-1)

	offset, spacing := justify(st.JustifyContent, nonNeg(mainAvail-total), count)
	pos := offset
	for i, c := range n.children {
		mStart, mEnd, _, _ := margins(c.style.Margin, row)
		pos += mStart
		if row {
			c.x = st.Padding.Left + pos
		} else {
			c.y = st.Padding.Top + pos
		}
		pos += mains[i] + mEnd + st.Gap + spacing
	}

	for _, c := range n.children {
		arrange(c)
	}
}

// justify returns the leading offset and the extra space between children.
func justify(j Justify, free float64, count int) (offset, spacing float64) {
	switch j {
	case JustifyEnd:
		offset = free
	case JustifyCenter:
		offset = free / 2
	case JustifySpaceBetween:
		if count > 1 {
			spacing = free / float64(count-1)
		}
	case JustifySpaceAround:
		spacing = free / float64(count)
		offset = spacing / 2
	case JustifySpaceEvenly:
		spacing = free / float64(count+1)
		offset = spacing
	}
	return offset, spacing
}

func axes(s Style, row bool) (main, cross Sizing) {
	if row {
		return s.Width, s.Height
	}
	return s.Height, s.Width
}

func margins(e Edges, row bool) (mStart, mEnd, cStart, cEnd float64) {
	if row {
		return e.Left, e.Right, e.Top, e.Bottom
	}
	return e.Top, e.Bottom, e.Left, e.Right
}

func nonNeg(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
