package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiledLayoutAffineMap(t *testing.T) {
	t.Run("single level", func(t *testing.T) {
		layout, err := ParseTiledLayoutString("<(8,128),[1,1]>")
		require.NoError(t, err)
		m := layout.AffineMap()
		assert.Equal(t, 2, m.NumDims())
		assert.Equal(t, 4, m.NumResults())

		out, err := m.Eval([]int64{13, 300})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 5, 44}, out)
	})

	t.Run("two nested levels", func(t *testing.T) {
		layout, err := ParseTiledLayoutString("<(8,128)(1,128),[1,8]>")
		require.NoError(t, err)
		m := layout.AffineMap()
		// Each tile level of rank k adds k dimensions: 2 -> 4 -> 6.
		assert.Equal(t, 2, m.NumDims())
		assert.Equal(t, 6, m.NumResults())

		// (13, 300) tiles to (13/8, 300/128, 13%8, 300%128) = (1, 2, 5, 44),
		// then the inner (1,128) level re-tiles the last two coordinates.
		out, err := m.Eval([]int64{13, 300})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 5, 0, 0, 44}, out)
	})

	t.Run("negative coordinates use floor semantics", func(t *testing.T) {
		layout, err := ParseTiledLayoutString("<(8),[1]>")
		require.NoError(t, err)
		out, err := layout.AffineMap().Eval([]int64{-13})
		require.NoError(t, err)
		assert.Equal(t, []int64{-2, 3}, out)
	})

	t.Run("untiled dimensions pass through", func(t *testing.T) {
		layout, err := ParseTiledLayoutString("<(128),[1,1,1]>")
		require.NoError(t, err)
		m := layout.AffineMap()
		assert.Equal(t, 3, m.NumDims())
		assert.Equal(t, 4, m.NumResults())
		out, err := m.Eval([]int64{5, 6, 300})
		require.NoError(t, err)
		assert.Equal(t, []int64{5, 6, 2, 44}, out)
	})

	t.Run("rank-0 tile is a no-op level", func(t *testing.T) {
		plain, err := ParseTiledLayoutString("<(8,128),[1,1]>")
		require.NoError(t, err)
		withEmpty, err := ParseTiledLayoutString("<(8,128)(),[1,1]>")
		require.NoError(t, err)

		m, me := plain.AffineMap(), withEmpty.AffineMap()
		assert.Equal(t, m.NumDims(), me.NumDims())
		assert.Equal(t, m.NumResults(), me.NumResults())
		for _, coords := range [][]int64{{0, 0}, {13, 300}, {-5, 129}} {
			want, err := m.Eval(coords)
			require.NoError(t, err)
			got, err := me.Eval(coords)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("no tiles yields the identity", func(t *testing.T) {
		layout, err := ParseTiledLayoutString("<,[1,1]>")
		require.NoError(t, err)
		m := layout.AffineMap()
		assert.Equal(t, 2, m.NumDims())
		assert.Equal(t, 2, m.NumResults())
	})

	t.Run("tile rank exceeding remaining dimensions panics", func(t *testing.T) {
		layout := NewTiledLayout([]Tile{NewTile(8, 128)}, []int64{1})
		assert.Panics(t, func() { layout.AffineMap() })
	})
}
