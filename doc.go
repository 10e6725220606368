// Package studio is a retained-mode 2D scene graph for page and graphic
// design tools.
//
// # Overview
//
// studio keeps a scene of render objects (shapes, text runs, images and
// groups) in a store with an explicit layer order, answers hit-tests and
// selection queries against it, lays out declarative section trees with a
// flexbox-like solver, and draws the scene through a pluggable backend.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/studio/backend/canvas"
//	    "github.com/gogpu/studio/geom"
//	    "github.com/gogpu/studio/render"
//	    "github.com/gogpu/studio/scene"
//	)
//
//	eng := canvas.New(render.WithSize(800, 600), render.WithBackground("#ffffff"))
//
//	id := eng.AddObject(scene.RenderObject{
//	    Type:      scene.TypeShape,
//	    Transform: geom.Transform{X: 400, Y: 300, ScaleX: 1, ScaleY: 1, Opacity: 1},
//	    Visible:   true,
//	    Data:      scene.Data{Shape: scene.ShapeRect, Width: 200, Height: 120, Fill: "#ff3366"},
//	})
//	eng.SelectObjects([]string{id})
//
//	png, err := eng.ExportImage(ctx, render.FormatPNG, 1)
//
// # Architecture
//
// The module is organized into:
//   - geom: transforms, axis-aligned boxes, footprints
//   - scene: object model, store and layer order, selection, persistence
//   - layout: box-model constraints and the arena-backed flex solver
//   - render: the Engine contract every backend satisfies, plus a registry
//   - backend/canvas: the 2D canvas backend built on github.com/gogpu/gg
//   - template: sectioned templates, data binding and the orchestrator
//
// # Coordinate System
//
// Origin (0,0) at top-left, X grows right, Y grows down. Object transforms
// position the object's center. Rotation is expressed in degrees.
//
// # Concurrency
//
// Engines are not safe for concurrent use. The only internal concurrency is
// asset prefetching in the template renderer, which completes before the
// scene is mutated.
package studio
