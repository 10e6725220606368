// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTemplate wraps every decoding and validation failure.
var ErrInvalidTemplate = errors.New("template: invalid template")

// Format is a template document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: unknown extension %q", ErrInvalidTemplate, filepath.Ext(path))
}

// Decode reads and validates one template.
func Decode(r io.Reader, format Format) (*Template, error) {
	var tpl Template
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&tpl)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&tpl)
	default:
		return nil, fmt.Errorf("%w: unknown format %d", ErrInvalidTemplate, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// LoadFile decodes the template at path, choosing the encoding by
// extension.
func LoadFile(path string) (*Template, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tpl, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tpl, nil
}

// Validate checks component types, layout specs and variant sizes.
// Component ids must be unique within a section.
func (t *Template) Validate() error {
	for _, v := range t.Variants {
		if v.Width <= 0 || v.Height <= 0 {
			return fmt.Errorf("%w: variant %q has size %dx%d", ErrInvalidTemplate, v.Name, v.Width, v.Height)
		}
	}
	for i := range t.Sections {
		sec := &t.Sections[i]
		if _, err := sec.Layout.Style(); err != nil {
			return fmt.Errorf("%w: section %q: %w", ErrInvalidTemplate, sec.ID, err)
		}
		seen := make(map[string]struct{})
		if err := validateComponents(sec.Components, seen); err != nil {
			return fmt.Errorf("%w: section %q: %w", ErrInvalidTemplate, sec.ID, err)
		}
	}
	return nil
}

func validateComponents(comps []Component, seen map[string]struct{}) error {
	for i := range comps {
		c := &comps[i]
		if !c.Type.Valid() {
			return fmt.Errorf("component %q: unknown type %q", c.ID, c.Type)
		}
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				return fmt.Errorf("duplicate component id %q", c.ID)
			}
			seen[c.ID] = struct{}{}
		}
		if _, err := c.Layout.Style(); err != nil {
			return fmt.Errorf("component %q: %w", c.ID, err)
		}
		if err := validateComponents(c.Children, seen); err != nil {
			return err
		}
	}
	return nil
}
