// Package layout resolves a declarative box-model tree into pixel geometry
// using a flexbox-like constraint solver.
//
// A Section carries root constraints and an ordered list of component
// Nodes. Each Node sizes itself per axis as Fixed (literal pixels), Fill
// (a percentage of the parent's content box) or Hug (the union of its
// children, or its intrinsic size for leaves), and arranges its children
// along a Direction with gap, padding, margin, justification and
// cross-axis alignment.
//
// Apply builds a fresh internal tree for every call from a per-call arena
// and releases the whole arena before returning, on every exit path.
// Nothing is cached between calls.
package layout
