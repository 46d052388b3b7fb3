// Package layouts defines the memory-layout attributes tileir attaches to memref
// types: the tiled layout descriptor (nested tiling plus per-level strides) and the
// flat single-value layout.
//
// Layouts are immutable values with structural equality and a stable content hash,
// so the host IR can intern and deduplicate them (see Interner). The tiled layout
// has a canonical text form, e.g. `<(8,128)(1,128),[1,8]>`, that parses and prints
// bijectively, and lowers to an affine coordinate transform via
// TiledLayout.AffineMap.
package layouts

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/gomlx/tileir/affine"
)

// Layout is a memory-layout attribute. Implementations are immutable and
// structurally hashed.
type Layout interface {
	// String returns the attribute body in its canonical text form, e.g. "<(8,128),[1]>".
	String() string

	// ToIR returns the attribute with its dialect marker, e.g. "#tile.tiled<(8,128),[1]>".
	ToIR() string

	// Hash returns a stable hash of the attribute contents.
	Hash() uint64
}

// Tile is one level of block subdivision: an ordered sequence of positive
// per-dimension block sizes. A rank-0 tile is legal and denotes an empty
// nesting level.
//
// Tiles are immutable once constructed.
type Tile struct {
	dims []int64
}

// NewTile creates a Tile with the given dimension sizes.
//
// Dimension sizes must be strictly positive; violating that is a programming
// error and panics. Text coming from users goes through ParseTiledLayout,
// which rejects non-positive sizes with a regular parse error instead.
func NewTile(dims ...int64) Tile {
	for _, d := range dims {
		if d <= 0 {
			panic(errors.Errorf("tile dimension sizes must be positive, got %v", dims))
		}
	}
	return Tile{dims: append([]int64(nil), dims...)}
}

// Rank returns the number of dimensions of the tile.
func (t Tile) Rank() int { return len(t.dims) }

// Dimensions returns the tile's dimension sizes. The returned slice is owned
// by the Tile and must not be modified.
func (t Tile) Dimensions() []int64 { return t.dims }

// Equal reports whether both tiles have the same dimension sequence.
func (t Tile) Equal(other Tile) bool {
	if len(t.dims) != len(other.dims) {
		return false
	}
	for i, d := range t.dims {
		if d != other.dims[i] {
			return false
		}
	}
	return true
}

// Hash returns a stable hash of the tile's dimension sequence.
func (t Tile) Hash() uint64 {
	digest := xxhash.New()
	hashInts(digest, t.dims)
	return digest.Sum64()
}

// String returns the tile in its text form, e.g. "(8,128)".
func (t Tile) String() string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i, d := range t.dims {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatInt(d, 10))
	}
	buf.WriteByte(')')
	return buf.String()
}

// TiledLayout describes how an array is subdivided into nested fixed-size
// blocks: an ordered sequence of tiles (applied outer-to-inner) plus one
// stride per logical dimension.
//
// TiledLayouts are immutable once constructed; build them with NewTiledLayout
// or ParseTiledLayout.
type TiledLayout struct {
	tiles   []Tile
	strides []int64
}

// NewTiledLayout creates a TiledLayout from the given tiles and strides.
// The slices are copied.
func NewTiledLayout(tiles []Tile, strides []int64) TiledLayout {
	return TiledLayout{
		tiles:   append([]Tile(nil), tiles...),
		strides: append([]int64(nil), strides...),
	}
}

// Tiles returns the tiling levels, outermost first. The returned slice is
// owned by the layout and must not be modified.
func (l TiledLayout) Tiles() []Tile { return l.tiles }

// TileStrides returns the per-dimension strides. The returned slice is owned
// by the layout and must not be modified.
func (l TiledLayout) TileStrides() []int64 { return l.strides }

// Equal reports whether both layouts have the same tiles and strides.
func (l TiledLayout) Equal(other TiledLayout) bool {
	if len(l.tiles) != len(other.tiles) || len(l.strides) != len(other.strides) {
		return false
	}
	for i, tile := range l.tiles {
		if !tile.Equal(other.tiles[i]) {
			return false
		}
	}
	for i, stride := range l.strides {
		if stride != other.strides[i] {
			return false
		}
	}
	return true
}

// Hash returns a stable hash of the layout contents. Equal layouts hash equally.
func (l TiledLayout) Hash() uint64 {
	digest := xxhash.New()
	for _, tile := range l.tiles {
		hashInts(digest, tile.dims)
	}
	// A separator so ((8),()) and ((8)) with shifted strides don't collide trivially.
	_, _ = digest.Write([]byte{'|'})
	hashInts(digest, l.strides)
	return digest.Sum64()
}

// String returns the canonical text form, e.g. "<(8,128)(1,128),[1,8]>".
// ParseTiledLayout inverts it exactly.
func (l TiledLayout) String() string {
	var buf strings.Builder
	buf.WriteByte('<')
	for _, tile := range l.tiles {
		buf.WriteString(tile.String())
	}
	buf.WriteString(",[")
	for i, stride := range l.strides {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatInt(stride, 10))
	}
	buf.WriteString("]>")
	return buf.String()
}

// ToIR returns the layout with its dialect attribute marker.
func (l TiledLayout) ToIR() string {
	return "#tile.tiled" + l.String()
}

// AffineMap returns the coordinate transform from the layout's logical
// coordinates to the fully tiled physical coordinates.
//
// It starts from the identity over the stride count and composes one level per
// tile, outermost first: a tile of rank k turns the last k coordinates (c0..)
// into (c0 floordiv s0, ..) followed by (c0 mod s0, ..), passing the untiled
// prefix through unchanged. The result takes len(TileStrides()) coordinates
// and produces that plus the sum of all tile ranks.
//
// A tile whose rank exceeds the dimensions remaining at its level violates the
// layout invariants and panics: such a layout cannot come out of
// ParseTiledLayout-validated strides and indicates a builder bug.
func (l TiledLayout) AffineMap() affine.Map {
	m := affine.Identity(len(l.strides))
	for _, tile := range l.tiles {
		dims := tile.Dimensions()
		untiled := m.NumResults() - len(dims)
		if untiled < 0 {
			panic(errors.Errorf(
				"invalid tiled layout %s: tile %s has rank %d but only %d dimensions remain at its level",
				l, tile, len(dims), m.NumResults()))
		}
		exprs := make([]affine.Expr, 0, untiled+2*len(dims))
		for i := 0; i < untiled; i++ {
			exprs = append(exprs, affine.Dim(i))
		}
		for i, size := range dims {
			exprs = append(exprs, affine.FloorDiv(affine.Dim(untiled+i), size))
		}
		for i, size := range dims {
			exprs = append(exprs, affine.Mod(affine.Dim(untiled+i), size))
		}
		tileMap := affine.NewMap(m.NumResults(), exprs)
		m = tileMap.Compose(m)
	}
	return m
}

// VectorLayout is the flat single-value layout variant: an ordered sequence of
// non-negative integers with no strides. It shares the layout infrastructure
// but not the tiled grammar -- the host's type system selects which one a
// given attribute text belongs to.
type VectorLayout struct {
	values []int64
}

// NewVectorLayout creates a VectorLayout with the given values.
func NewVectorLayout(values ...int64) VectorLayout {
	for _, v := range values {
		if v < 0 {
			panic(errors.Errorf("vector layout values must be non-negative, got %v", values))
		}
	}
	return VectorLayout{values: append([]int64(nil), values...)}
}

// Values returns the layout values. The returned slice is owned by the layout
// and must not be modified.
func (l VectorLayout) Values() []int64 { return l.values }

// Equal reports whether both layouts carry the same value sequence.
func (l VectorLayout) Equal(other VectorLayout) bool {
	if len(l.values) != len(other.values) {
		return false
	}
	for i, v := range l.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}

// Hash returns a stable hash of the layout values.
func (l VectorLayout) Hash() uint64 {
	digest := xxhash.New()
	hashInts(digest, l.values)
	return digest.Sum64()
}

// String returns the text form: the values concatenated between angle brackets.
func (l VectorLayout) String() string {
	var buf strings.Builder
	buf.WriteByte('<')
	for _, v := range l.values {
		buf.WriteString(strconv.FormatInt(v, 10))
	}
	buf.WriteByte('>')
	return buf.String()
}

// ToIR returns the layout with its dialect attribute marker.
func (l VectorLayout) ToIR() string {
	return "#tile.vector" + l.String()
}

func hashInts(digest *xxhash.Digest, values []int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(values)))
	_, _ = digest.Write(buf[:])
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = digest.Write(buf[:])
	}
}
