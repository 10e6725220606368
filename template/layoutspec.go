// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package template

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/studio/layout"
)

// LayoutSpec is the serializable form of layout.Style.
//
// Width and Height accept "hug", "fill", a percentage such as "50%" or a
// pixel count such as "120". Padding and Margin accept a single number or
// a CSS-style list of one to four numbers.
type LayoutSpec struct {
	Width          string   `json:"width,omitempty" yaml:"width,omitempty"`
	Height         string   `json:"height,omitempty" yaml:"height,omitempty"`
	Direction      string   `json:"direction,omitempty" yaml:"direction,omitempty"`
	AlignItems     string   `json:"alignItems,omitempty" yaml:"alignItems,omitempty"`
	JustifyContent string   `json:"justifyContent,omitempty" yaml:"justifyContent,omitempty"`
	Gap            float64  `json:"gap,omitempty" yaml:"gap,omitempty"`
	Padding        EdgeSpec `json:"padding,omitempty" yaml:"padding,omitempty"`
	Margin         EdgeSpec `json:"margin,omitempty" yaml:"margin,omitempty"`
}

// Style converts the serialized layout into a layout.Style.
func (s LayoutSpec) Style() (layout.Style, error) {
	var st layout.Style
	var err error

	if st.Width, err = layout.ParseSizing(s.Width); err != nil {
		return st, fmt.Errorf("width: %w", err)
	}
	if st.Height, err = layout.ParseSizing(s.Height); err != nil {
		return st, fmt.Errorf("height: %w", err)
	}
	if st.Padding, err = s.Padding.Edges(); err != nil {
		return st, fmt.Errorf("padding: %w", err)
	}
	if st.Margin, err = s.Margin.Edges(); err != nil {
		return st, fmt.Errorf("margin: %w", err)
	}

	switch strings.ToLower(s.Direction) {
	case "", "row", "horizontal":
		st.Direction = layout.Row
	case "column", "col", "vertical":
		st.Direction = layout.Column
	default:
		return st, fmt.Errorf("direction: unknown value %q", s.Direction)
	}

	switch strings.ToLower(s.AlignItems) {
	case "", "start", "flex-start":
		st.AlignItems = layout.AlignStart
	case "center":
		st.AlignItems = layout.AlignCenter
	case "end", "flex-end":
		st.AlignItems = layout.AlignEnd
	case "stretch":
		st.AlignItems = layout.AlignStretch
	default:
		return st, fmt.Errorf("alignItems: unknown value %q", s.AlignItems)
	}

	switch strings.ToLower(s.JustifyContent) {
	case "", "start", "flex-start":
		st.JustifyContent = layout.JustifyStart
	case "end", "flex-end":
		st.JustifyContent = layout.JustifyEnd
	case "center":
		st.JustifyContent = layout.JustifyCenter
	case "space-between":
		st.JustifyContent = layout.JustifySpaceBetween
	case "space-around":
		st.JustifyContent = layout.JustifySpaceAround
	case "space-evenly":
		st.JustifyContent = layout.JustifySpaceEvenly
	default:
		return st, fmt.Errorf("justifyContent: unknown value %q", s.JustifyContent)
	}

	st.Gap = max(s.Gap, 0)
	return st, nil
}

// EdgeSpec is a CSS-style edge list: [all], [vertical, horizontal],
// [top, horizontal, bottom] or [top, right, bottom, left]. In documents it
// may also be written as a bare number.
type EdgeSpec []float64

// Edges expands the list into layout.Edges.
func (e EdgeSpec) Edges() (layout.Edges, error) {
	switch len(e) {
	case 0:
		return layout.Edges{}, nil
	case 1:
		return layout.EdgeAll(e[0]), nil
	case 2:
		return layout.EdgeSymmetric(e[0], e[1]), nil
	case 3:
		return layout.Edges{Top: e[0], Right: e[1], Bottom: e[2], Left: e[1]}, nil
	case 4:
		return layout.Edges{Top: e[0], Right: e[1], Bottom: e[2], Left: e[3]}, nil
	}
	return layout.Edges{}, fmt.Errorf("expected 1 to 4 values, got %d", len(e))
}

// UnmarshalJSON accepts a number or an array of numbers.
func (e *EdgeSpec) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*e = EdgeSpec{v}
		return nil
	}
	var list []float64
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("edges: want number or array of numbers: %w", err)
	}
	*e = list
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of numbers.
func (e *EdgeSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("edges: %w", err)
		}
		*e = EdgeSpec{v}
		return nil
	}
	var list []float64
	if err := node.Decode(&list); err != nil {
		return fmt.Errorf("edges: %w", err)
	}
	*e = list
	return nil
}
