// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"maps"
)

// Resolve returns the content for a component: the bound data field when
// present, else the binding's default, else the static content.
// Non-string data values are formatted with fmt.
func Resolve(b *Binding, data map[string]any, content string) string {
	if b != nil && b.Field != "" {
		if v, ok := data[b.Field]; ok && v != nil {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
		if b.DefaultValue != "" {
			return b.DefaultValue
		}
	}
	return content
}

// MergeData returns base overlaid with override; override wins on
// conflicts. Neither input is modified.
func MergeData(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}
