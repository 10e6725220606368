// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"

	"github.com/gogpu/studio/geom"
	"github.com/gogpu/studio/scene"
)

// Engine is a retained-mode renderer.
//
// Unknown ids are ignored by mutating methods and reported as absent by
// queries. Every successful store mutation is followed by exactly one
// Render.
type Engine interface {
	// Render redraws the entire scene into the off-screen buffer.
	Render()

	// Clear fills the buffer with the background color.
	Clear()

	// Resize sets the drawing surface size and re-renders.
	// Non-positive sizes leave an empty surface that cannot be exported.
	Resize(width, height int)

	// Size returns the current surface size.
	Size() (width, height int)

	// Reset removes every object and the selection, then re-renders.
	Reset()

	// AddObject stores obj as the top-most object and returns its id.
	// An empty id is replaced by a freshly generated one.
	AddObject(obj scene.RenderObject) string
	RemoveObject(id string)
	UpdateObject(id string, p scene.Patch)
	GetObject(id string) (scene.RenderObject, bool)

	// Objects returns copies of every object in layer order.
	Objects() []scene.RenderObject

	// SelectObjects replaces the selection. Unknown ids are ignored.
	SelectObjects(ids []string)
	Selection() []string
	SelectedBounds() (geom.Rect, bool)

	// HitTest returns the top-most visible, unlocked object at (x, y).
	HitTest(x, y float64) (string, bool)

	ApplyTransform(id string, p geom.TransformPatch)
	BringToFront(id string)
	SendToBack(id string)

	// ExportImage encodes the current frame. Quality in [0, 1] applies to
	// lossy formats only.
	ExportImage(ctx context.Context, format Format, quality float64) ([]byte, error)

	// ExportJSON serializes the scene as {"objects", "layerOrder"}.
	ExportJSON() ([]byte, error)

	// LoadJSON replaces the whole scene with a document produced by
	// ExportJSON. Malformed documents leave the scene untouched.
	LoadJSON(data []byte) error

	SetGrid(enabled bool)
}

// TextMeasurer is implemented by engines that can report the extent of a
// single-line text run in their default font rendering.
type TextMeasurer interface {
	MeasureText(text, family string, size float64) (width, height float64)
}
