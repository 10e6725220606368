// Package geom holds the plain geometric data shared by the scene, the
// layout solver and render backends: object transforms, axis-aligned
// boxes and the footprint math used for hit-testing and selection.
//
// Transforms are applied in the fixed order translate, rotate, scale,
// matching the order backends use when drawing. Rotation is in degrees.
package geom
