// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render defines the backend-independent render engine contract.
//
// An Engine owns a retained scene (object store, layer order and
// selection), redraws the whole scene into an off-screen buffer after every
// mutation, and exports the current frame as an encoded image or the scene
// as a JSON document.
//
// Backends register factories in a Registry. The built-in 2D canvas
// backend registers itself as "canvas" when its package is imported:
//
//	import _ "github.com/gogpu/studio/backend/canvas"
//
//	eng, err := render.NewDefault(render.WithSize(1080, 1080))
//	if err != nil {
//	    return err
//	}
//	id := eng.AddObject(scene.NewObject(scene.TypeShape, 100, 100, scene.Data{Fill: "#FF0000"}))
//	png, err := eng.ExportImage(ctx, render.FormatPNG, 1)
//
// Engines are not safe for concurrent use; callers serialize access.
package render
