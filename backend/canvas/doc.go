// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas is the 2D raster render engine built on gg.
//
// Canvas keeps a retained scene and repaints it in full into an off-screen
// gg.Context after every mutation. When a visible target image is
// configured, each finished frame is copied to it in a single blit, so
// observers never see a partially drawn frame.
//
// Importing the package registers it with the render registry as "canvas":
//
//	import _ "github.com/gogpu/studio/backend/canvas"
//
// Text and images are placed at their transformed origin with scale
// applied; gg draws glyphs and bitmaps axis-aligned, so rotation is not
// applied to them. Hit-testing always honors the full transform.
//
// A Canvas is not safe for concurrent use.
package canvas
