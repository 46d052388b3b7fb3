// Package memrefs defines the structural type of layout-carrying array values:
// an element type, dimensions and an optional layout attribute.
package memrefs

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/tileir/internal/utils"
	"github.com/gomlx/tileir/types/layouts"
)

// MemRef is the structural type of an array value in the IR.
//
// A nil Layout means the default row-major layout. MemRefs are value types;
// the With* methods return modified copies.
type MemRef struct {
	DType      dtypes.DType
	Dimensions []int64

	// Layout attached to the type; nil for the default row-major layout.
	Layout layouts.Layout

	// MemorySpace is the optional memory space the value lives in, e.g. "vmem".
	MemorySpace string
}

// Make creates a MemRef with the given element type and dimensions and the
// default layout.
func Make(dtype dtypes.DType, dimensions ...int64) MemRef {
	return MemRef{DType: dtype, Dimensions: dimensions}
}

// WithLayout returns a copy of the MemRef with the given layout attached.
func (m MemRef) WithLayout(layout layouts.Layout) MemRef {
	m.Layout = layout
	return m
}

// WithMemorySpace returns a copy of the MemRef placed in the given memory space.
func (m MemRef) WithMemorySpace(space string) MemRef {
	m.MemorySpace = space
	return m
}

// Rank returns the number of dimensions.
func (m MemRef) Rank() int { return len(m.Dimensions) }

// Equal reports whether both types have the same element type, dimensions,
// layout and memory space.
func (m MemRef) Equal(other MemRef) bool {
	if m.DType != other.DType || len(m.Dimensions) != len(other.Dimensions) ||
		m.MemorySpace != other.MemorySpace {
		return false
	}
	for i, d := range m.Dimensions {
		if d != other.Dimensions[i] {
			return false
		}
	}
	if (m.Layout == nil) != (other.Layout == nil) {
		return false
	}
	if m.Layout != nil && m.Layout.Hash() != other.Layout.Hash() {
		return false
	}
	return m.Layout == nil || m.Layout.ToIR() == other.Layout.ToIR()
}

// Hash returns a stable hash of the type contents.
func (m MemRef) Hash() uint64 {
	digest := xxhash.New()
	_, _ = digest.WriteString(utils.DTypeToIR(m.DType))
	var buf [8]byte
	for _, d := range m.Dimensions {
		putInt64(&buf, d)
		_, _ = digest.Write(buf[:])
	}
	if m.Layout != nil {
		putInt64(&buf, int64(m.Layout.Hash()))
		_, _ = digest.Write(buf[:])
	}
	_, _ = digest.WriteString(m.MemorySpace)
	return digest.Sum64()
}

func putInt64(buf *[8]byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
}

// ToIR returns the type in textual IR form, e.g.
// "memref<8x128xf32, #tile.tiled<(8,128),[1]>, vmem>".
func (m MemRef) ToIR() string {
	var buf strings.Builder
	buf.WriteString("memref<")
	for _, d := range m.Dimensions {
		buf.WriteString(strconv.FormatInt(d, 10))
		buf.WriteByte('x')
	}
	buf.WriteString(utils.DTypeToIR(m.DType))
	if m.Layout != nil {
		buf.WriteString(", ")
		buf.WriteString(m.Layout.ToIR())
	}
	if m.MemorySpace != "" {
		buf.WriteString(", ")
		buf.WriteString(m.MemorySpace)
	}
	buf.WriteByte('>')
	return buf.String()
}

// String implements fmt.Stringer.
func (m MemRef) String() string { return m.ToIR() }
