package layouts

// Interner deduplicates layout attributes by content, so two structurally
// equal layouts resolve to the same pointer. The expression-graph builder owns
// one and threads it through as the attribute context; like the builder, it is
// meant for single-threaded construction and is not safe for concurrent use.
type Interner struct {
	tiled map[uint64][]*TiledLayout
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{tiled: make(map[uint64][]*TiledLayout)}
}

// InternTiled returns the canonical pointer for the given layout, storing it
// if it is new. Hash collisions fall back to structural comparison.
func (it *Interner) InternTiled(layout TiledLayout) *TiledLayout {
	key := layout.Hash()
	for _, candidate := range it.tiled[key] {
		if candidate.Equal(layout) {
			return candidate
		}
	}
	stored := &layout
	it.tiled[key] = append(it.tiled[key], stored)
	return stored
}
