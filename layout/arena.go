package layout

import (
	"sync"
	"sync/atomic"
)

const arenaChunk = 64

// node is the solver's working copy of a Node.
type node struct {
	id        string
	parent    string
	style     Style
	intrinsic Size
	children  []*node

	hugW, hugH float64 // content-driven size including padding
	x, y, w, h float64 // resolved geometry, relative to parent
}

// arena hands out nodes from fixed-size chunks so a layout pass performs
// one allocation per chunk instead of one per node. Chunks survive in the
// pool across calls; node contents never do.
type arena struct {
	chunks [][]node
	used   int
}

var arenaPool = sync.Pool{New: func() any { return new(arena) }}

// liveNodes counts nodes handed out and not yet released across all arenas.
var liveNodes atomic.Int64

func acquireArena() *arena {
	return arenaPool.Get().(*arena)
}

func (a *arena) alloc() *node {
	ci := a.used / arenaChunk
	if ci == len(a.chunks) {
		a.chunks = append(a.chunks, make([]node, arenaChunk))
	}
	n := &a.chunks[ci][a.used%arenaChunk]
	a.used++
	liveNodes.Add(1)
	return n
}

// release clears every handed-out node and returns the arena to the pool.
// The arena must not be used afterwards.
func (a *arena) release() {
	for i := 0; i < a.used; i++ {
		n := &a.chunks[i/arenaChunk][i%arenaChunk]
		kids := n.children[:0]
		clear(n.children)
		*n = node{children: kids}
	}
	liveNodes.Add(-int64(a.used))
	a.used = 0
	arenaPool.Put(a)
}
