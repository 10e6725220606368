// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package template turns declarative page templates into scene objects.
//
// A Template is an ordered list of Sections, each holding a tree of
// Components with layout constraints and styling. Renderer resolves each
// section with the layout package, stacks sections vertically, binds
// component content to template data and adds the resulting primitives to
// a render.Engine:
//
//	tpl, err := template.LoadFile("promo.yaml")
//	if err != nil {
//	    return err
//	}
//	r := template.NewRenderer(eng, template.WithConcurrency(8))
//	if err := r.Render(ctx, tpl, map[string]any{"headline": "Spring sale"}); err != nil {
//	    return err
//	}
//
// Image assets are fetched concurrently before anything is added to the
// engine. A component whose asset fails to load is logged and left out;
// the rest of the template still renders.
package template
