// Package scene holds the retained object model of a canvas.
//
// A Scene owns a Store, which keeps the id-to-object map and the layer
// order in lockstep, and the selection set. All mutation goes through
// Scene methods so the two structures can never drift apart: every id in
// the map appears exactly once in the layer order and vice versa.
//
// Layer order index 0 is bottom-most (drawn first); the last index is
// top-most (drawn last and hit-tested first).
//
// Lookups and mutations on unknown ids never fail: they report false or
// do nothing. The only fallible operation is loading a persisted Document,
// which is validated before any state is replaced.
package scene
