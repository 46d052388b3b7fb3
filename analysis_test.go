package tileir

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/tileir/types/layouts"
	"github.com/gomlx/tileir/types/memrefs"
)

func TestIsGuaranteedDivisible(t *testing.T) {
	t.Run("constant factor", func(t *testing.T) {
		fn := New(t.Name()).Main()
		y := fn.Input(IndexType{})
		c6 := must.M1(fn.ConstantIndex(6))
		v := must.M1(fn.MulI(c6, y))

		for _, divisor := range []int64{1, 2, 3, 6} {
			assert.True(t, IsGuaranteedDivisible(v, divisor, 1), "divisor %d", divisor)
		}
		// y is opaque, so nothing beyond the factor 6 can be claimed.
		assert.False(t, IsGuaranteedDivisible(v, 4, 8))
		assert.False(t, IsGuaranteedDivisible(v, 5, 8))
		assert.False(t, IsGuaranteedDivisible(v, 12, 8))
	})

	t.Run("constant on either side", func(t *testing.T) {
		fn := New(t.Name()).Main()
		y := fn.Input(IndexType{})
		c6 := must.M1(fn.ConstantIndex(6))
		left := must.M1(fn.MulI(c6, y))
		right := must.M1(fn.MulI(y, c6))
		assert.True(t, IsGuaranteedDivisible(left, 6, 4))
		assert.True(t, IsGuaranteedDivisible(right, 6, 4))
	})

	t.Run("plain constants", func(t *testing.T) {
		fn := New(t.Name()).Main()
		c12 := must.M1(fn.ConstantIndex(12))
		c0 := must.M1(fn.ConstantIndex(0))
		cNeg := must.M1(fn.ConstantIndex(-8))
		cFloat := must.M1(fn.ConstantScalar(float32(4)))

		assert.True(t, IsGuaranteedDivisible(c12, 4, 1))
		assert.False(t, IsGuaranteedDivisible(c12, 5, 1))
		assert.True(t, IsGuaranteedDivisible(c0, 7, 1))
		assert.True(t, IsGuaranteedDivisible(cNeg, 4, 1))
		// Only integer constants carry divisibility information.
		assert.False(t, IsGuaranteedDivisible(cFloat, 2, 4))
	})

	t.Run("trusted assume-multiple annotation", func(t *testing.T) {
		fn := New(t.Name()).Main()
		x := fn.Input(IndexType{})
		annotated := must.M1(fn.AssumeMultiple(x, 256))
		assert.True(t, IsGuaranteedDivisible(annotated, 128, 1))
		assert.True(t, IsGuaranteedDivisible(annotated, 256, 1))
		assert.False(t, IsGuaranteedDivisible(annotated, 512, 8))
		assert.False(t, IsGuaranteedDivisible(annotated, 7, 8))
	})

	t.Run("nested multiplies through an index cast", func(t *testing.T) {
		fn := New(t.Name()).Main()
		y := fn.Input(ScalarType{DType: dtypes.S32})
		c3 := must.M1(fn.ConstantScalar(int32(3)))
		c4 := must.M1(fn.ConstantScalar(int32(4)))
		inner := must.M1(fn.MulI(c4, y))
		outer := must.M1(fn.MulI(c3, inner))
		v := must.M1(fn.IndexCast(outer, IndexType{}))

		// 3*(4*y) is a multiple of 12 for every y.
		assert.True(t, IsGuaranteedDivisible(v, 12, 4))
		assert.True(t, IsGuaranteedDivisible(v, 3, 4))
		assert.True(t, IsGuaranteedDivisible(v, 4, 4))
		// ...but 24 would need y to be even, which is unknown.
		assert.False(t, IsGuaranteedDivisible(v, 24, 4))
	})

	t.Run("fuel bounds the search", func(t *testing.T) {
		fn := New(t.Name()).Main()
		x := fn.Input(IndexType{})
		annotated := must.M1(fn.AssumeMultiple(x, 2))
		c6 := must.M1(fn.ConstantIndex(6))
		v := must.M1(fn.MulI(c6, annotated))

		// Proving 12 = 6*2 needs the constant split plus the annotation, which
		// costs two fuel units.
		assert.False(t, IsGuaranteedDivisible(v, 12, 1))
		assert.True(t, IsGuaranteedDivisible(v, 12, 2))

		// Zero or negative fuel proves nothing, not even constants.
		c4 := must.M1(fn.ConstantIndex(4))
		assert.False(t, IsGuaranteedDivisible(c4, 2, 0))
		assert.False(t, IsGuaranteedDivisible(c4, 2, -1))
	})

	t.Run("fuel monotonicity", func(t *testing.T) {
		fn := New(t.Name()).Main()
		x := fn.Input(IndexType{})
		annotated := must.M1(fn.AssumeMultiple(x, 2))
		c6 := must.M1(fn.ConstantIndex(6))
		v := must.M1(fn.MulI(c6, annotated))

		proven := false
		for fuel := int64(0); fuel <= 16; fuel++ {
			got := IsGuaranteedDivisible(v, 12, fuel)
			if proven {
				assert.True(t, got, "fuel %d lost a previously proven result", fuel)
			}
			proven = proven || got
		}
		assert.True(t, proven)
	})

	t.Run("opaque values are unknown", func(t *testing.T) {
		fn := New(t.Name()).Main()
		x := fn.Input(IndexType{})
		foreign := must.M1(fn.Opaque(IndexType{}, x))
		assert.False(t, IsGuaranteedDivisible(x, 2, 8))
		assert.False(t, IsGuaranteedDivisible(foreign, 2, 8))
	})

	t.Run("divisor must be positive", func(t *testing.T) {
		fn := New(t.Name()).Main()
		c := must.M1(fn.ConstantIndex(4))
		assert.Panics(t, func() { IsGuaranteedDivisible(c, 0, 4) })
		assert.Panics(t, func() { IsGuaranteedDivisible(c, -2, 4) })
	})
}

func TestMemRefTypeOf(t *testing.T) {
	b := New(t.Name())
	layout := b.InternTiledLayout(layouts.NewTiledLayout(
		[]layouts.Tile{layouts.NewTile(8, 128)}, []int64{1, 1}))
	withLayout := memrefs.Make(dtypes.F32, 8, 128).WithLayout(*layout)
	buf := NamedValue("buf", withLayout)
	fn := b.Main(buf)

	t.Run("plain memref value", func(t *testing.T) {
		mt, err := MemRefTypeOf(buf)
		require.NoError(t, err)
		assert.True(t, mt.Equal(withLayout))
	})

	t.Run("unwraps one erase-layout level", func(t *testing.T) {
		erased := must.M1(fn.EraseLayout(buf))
		// The erased value's own type dropped the layout, but resolving through
		// the erase op recovers the authoritative layout-carrying type.
		assert.Nil(t, erased.Type().(memrefs.MemRef).Layout)
		mt, err := MemRefTypeOf(erased)
		require.NoError(t, err)
		assert.True(t, mt.Equal(withLayout))
	})

	t.Run("non-memref is a type error", func(t *testing.T) {
		idx := must.M1(fn.ConstantIndex(1))
		_, err := MemRefTypeOf(idx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected a memref")
	})
}
