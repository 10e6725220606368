// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package template

// ComponentType selects the primitives a component produces.
type ComponentType string

const (
	TypeShape     ComponentType = "shape"
	TypeText      ComponentType = "text"
	TypeImage     ComponentType = "image"
	TypeButton    ComponentType = "button"
	TypeContainer ComponentType = "container"
)

// Valid reports whether t is a known component type.
func (t ComponentType) Valid() bool {
	switch t {
	case TypeShape, TypeText, TypeImage, TypeButton, TypeContainer:
		return true
	}
	return false
}

// Template is a declarative page: ordered sections plus the data the
// components bind to.
type Template struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Sections []Section      `json:"sections" yaml:"sections"`
	Data     map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
	Variants []Variant      `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Variant is a named output size, such as a square post or a story.
type Variant struct {
	Name   string `json:"name" yaml:"name"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// Variant returns the variant called name, or the first variant when name
// is empty.
func (t *Template) Variant(name string) (Variant, bool) {
	for _, v := range t.Variants {
		if name == "" || v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Section is a horizontal band of the page laid out independently.
// Sections stack vertically in declaration order.
type Section struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Layout     LayoutSpec  `json:"layout" yaml:"layout"`
	Background string      `json:"background,omitempty" yaml:"background,omitempty"`
	Components []Component `json:"components" yaml:"components"`
}

// Component is one node of a section's tree.
type Component struct {
	ID       string         `json:"id" yaml:"id"`
	Type     ComponentType  `json:"type" yaml:"type"`
	Layout   LayoutSpec     `json:"layout" yaml:"layout"`
	Style    ComponentStyle `json:"style" yaml:"style"`
	Content  string         `json:"content,omitempty" yaml:"content,omitempty"`
	Src      string         `json:"src,omitempty" yaml:"src,omitempty"`
	Binding  *Binding       `json:"binding,omitempty" yaml:"binding,omitempty"`
	Children []Component    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Binding ties a component's content (text, label or image source) to a
// template data field.
type Binding struct {
	Field        string `json:"field" yaml:"field"`
	DefaultValue string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// ComponentStyle holds the visual attributes copied onto the produced
// primitives. Color is the text color; Fill paints shapes and button
// backgrounds.
type ComponentStyle struct {
	Shape       string   `json:"shape,omitempty" yaml:"shape,omitempty"`
	Fill        string   `json:"fill,omitempty" yaml:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	StrokeWidth float64  `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	Radius      float64  `json:"radius,omitempty" yaml:"radius,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	FontFamily  string   `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontSize    float64  `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Rotation    float64  `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	BlendMode   string   `json:"blendMode,omitempty" yaml:"blendMode,omitempty"`
}
