// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/studio/layout"
)

const promoYAML = `
id: promo
name: Spring promo
data:
  headline: Spring sale
variants:
  - {name: post, width: 1080, height: 1080}
sections:
  - id: hero
    background: "#FFEEDD"
    layout:
      direction: column
      alignItems: center
      justifyContent: space-between
      gap: 12
      padding: [24, 32]
    components:
      - id: title
        type: text
        binding: {field: headline, defaultValue: Sale}
        style: {fontSize: 48, color: "#222222"}
      - id: cta
        type: button
        content: Shop now
        layout: {width: "240", height: "64", margin: 8}
`

const promoJSON = `{
  "id": "promo",
  "sections": [{
    "id": "hero",
    "layout": {"width": "fill", "padding": 16},
    "components": [
      {"id": "bg", "type": "shape", "layout": {"width": "50%", "height": "120"}, "style": {"fill": "#FF0000", "radius": 8}},
      {"id": "box", "type": "container", "children": [
        {"id": "photo", "type": "image", "src": "photo.png", "layout": {"margin": [1, 2, 3, 4]}}
      ]}
    ]
  }]
}`

func TestDecodeYAML(t *testing.T) {
	tpl, err := Decode(strings.NewReader(promoYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tpl.ID != "promo" || tpl.Data["headline"] != "Spring sale" {
		t.Errorf("template = %+v", tpl)
	}
	if v, ok := tpl.Variant(""); !ok || v.Width != 1080 {
		t.Errorf("first variant = %+v, %v", v, ok)
	}

	sec := tpl.Sections[0]
	st, err := sec.Layout.Style()
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if st.Direction != layout.Column || st.AlignItems != layout.AlignCenter ||
		st.JustifyContent != layout.JustifySpaceBetween || st.Gap != 12 {
		t.Errorf("section style = %+v", st)
	}
	if st.Padding != layout.EdgeSymmetric(24, 32) {
		t.Errorf("padding = %+v", st.Padding)
	}

	title := sec.Components[0]
	if title.Binding == nil || title.Binding.Field != "headline" || title.Style.FontSize != 48 {
		t.Errorf("title = %+v", title)
	}
	cta, err := sec.Components[1].Layout.Style()
	if err != nil {
		t.Fatal(err)
	}
	if cta.Width != layout.Fixed(240) || cta.Margin != layout.EdgeAll(8) {
		t.Errorf("cta style = %+v", cta)
	}
}

func TestDecodeJSON(t *testing.T) {
	tpl, err := Decode(strings.NewReader(promoJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sec := tpl.Sections[0]
	st, _ := sec.Layout.Style()
	if st.Width != layout.Fill() || st.Padding != layout.EdgeAll(16) {
		t.Errorf("section style = %+v", st)
	}
	bg, _ := sec.Components[0].Layout.Style()
	if bg.Width != layout.FillPercent(50) || bg.Height != layout.Fixed(120) {
		t.Errorf("bg style = %+v", bg)
	}
	photo := sec.Components[1].Children[0]
	ps, _ := photo.Layout.Style()
	if ps.Margin != (layout.Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}) {
		t.Errorf("photo margin = %+v", ps.Margin)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"unknown type", FormatJSON, `{"sections":[{"id":"s","components":[{"id":"a","type":"video"}]}]}`},
		{"duplicate ids", FormatJSON, `{"sections":[{"id":"s","components":[{"id":"a","type":"text"},{"id":"a","type":"text"}]}]}`},
		{"bad sizing", FormatJSON, `{"sections":[{"id":"s","components":[{"id":"a","type":"text","layout":{"width":"wide"}}]}]}`},
		{"bad direction", FormatYAML, "sections:\n  - id: s\n    layout: {direction: diagonal}\n"},
		{"too many edges", FormatJSON, `{"sections":[{"id":"s","layout":{"padding":[1,2,3,4,5]}}]}`},
		{"bad variant", FormatJSON, `{"variants":[{"name":"x","width":0,"height":10}]}`},
		{"unknown field", FormatYAML, "id: x\ncolour: red\n"},
		{"malformed", FormatJSON, `{"sections":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("err = %v, want ErrInvalidTemplate", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "promo.yml")
	if err := os.WriteFile(yml, []byte(promoYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	if tpl, err := LoadFile(yml); err != nil || tpl.ID != "promo" {
		t.Errorf("LoadFile(yml) = %v, %v", tpl, err)
	}

	js := filepath.Join(dir, "promo.json")
	if err := os.WriteFile(js, []byte(promoJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	if tpl, err := LoadFile(js); err != nil || len(tpl.Sections) != 1 {
		t.Errorf("LoadFile(json) = %v, %v", tpl, err)
	}

	if _, err := LoadFile(filepath.Join(dir, "promo.txt")); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("unknown extension err = %v", err)
	}
}

func TestEdgeSpec(t *testing.T) {
	tests := []struct {
		in   EdgeSpec
		want layout.Edges
	}{
		{nil, layout.Edges{}},
		{EdgeSpec{5}, layout.EdgeAll(5)},
		{EdgeSpec{1, 2}, layout.Edges{Top: 1, Right: 2, Bottom: 1, Left: 2}},
		{EdgeSpec{1, 2, 3}, layout.Edges{Top: 1, Right: 2, Bottom: 3, Left: 2}},
		{EdgeSpec{1, 2, 3, 4}, layout.Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}},
	}
	for _, tt := range tests {
		got, err := tt.in.Edges()
		if err != nil || got != tt.want {
			t.Errorf("%v.Edges() = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}
}
