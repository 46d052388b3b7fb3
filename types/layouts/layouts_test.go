package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTile(t *testing.T) {
	tile := NewTile(8, 128)
	assert.Equal(t, 2, tile.Rank())
	assert.Equal(t, []int64{8, 128}, tile.Dimensions())
	assert.Equal(t, "(8,128)", tile.String())

	assert.True(t, tile.Equal(NewTile(8, 128)))
	assert.False(t, tile.Equal(NewTile(8, 128, 1)))
	assert.False(t, tile.Equal(NewTile(128, 8)))
	assert.Equal(t, tile.Hash(), NewTile(8, 128).Hash())
	assert.NotEqual(t, tile.Hash(), NewTile(128, 8).Hash())

	t.Run("rank-0 tile is legal", func(t *testing.T) {
		empty := NewTile()
		assert.Equal(t, 0, empty.Rank())
		assert.Equal(t, "()", empty.String())
	})

	t.Run("non-positive sizes panic", func(t *testing.T) {
		assert.Panics(t, func() { NewTile(8, 0) })
		assert.Panics(t, func() { NewTile(-8) })
	})
}

func TestTiledLayoutText(t *testing.T) {
	t.Run("concrete descriptor", func(t *testing.T) {
		text := "<(8,128)(1,128),[1,8]>"
		layout, err := ParseTiledLayoutString(text)
		require.NoError(t, err)
		require.Len(t, layout.Tiles(), 2)
		assert.Equal(t, []int64{8, 128}, layout.Tiles()[0].Dimensions())
		assert.Equal(t, []int64{1, 128}, layout.Tiles()[1].Dimensions())
		assert.Equal(t, []int64{1, 8}, layout.TileStrides())
		assert.Equal(t, text, layout.String())
	})

	t.Run("round trip", func(t *testing.T) {
		for _, text := range []string{
			"<(8,128)(1,128),[1,8]>",
			"<(8,128),[1]>",
			"<,[]>",
			"<,[3,2,1]>",
			"<(),[7]>",
			"<()(4),[-1,5]>",
			"<(1),[]>",
		} {
			layout, err := ParseTiledLayoutString(text)
			require.NoError(t, err, "parsing %q", text)
			assert.Equal(t, text, layout.String(), "printing %q", text)
			again, err := ParseTiledLayoutString(layout.String())
			require.NoError(t, err, "re-parsing %q", layout.String())
			assert.True(t, layout.Equal(again), "round trip of %q", text)
		}
	})

	t.Run("tolerates spaces", func(t *testing.T) {
		layout, err := ParseTiledLayoutString("< (8, 128) , [1, 8] >")
		require.NoError(t, err)
		assert.Equal(t, "<(8,128),[1,8]>", layout.String())
	})

	t.Run("malformed inputs are rejected", func(t *testing.T) {
		for _, text := range []string{
			"",
			"(8,128),[1,8]>",        // missing '<'
			"<(8,128)[1,8]>",        // missing separating comma
			"<(8,128),1,8]>",        // missing '['
			"<(8,128),[1,8>",        // unbalanced bracket
			"<(8,128),[1,8]",        // missing '>'
			"<(8,x),[1]>",           // non-integer token
			"<(8,128,),[1]>",        // trailing comma inside tile
			"<(8,128),[1,]>",        // trailing comma inside strides
			"<(8,128),[1]> trailer", // trailing garbage
			"<(0,128),[1]>",         // zero tile dimension
			"<(-8,128),[1]>",        // negative tile dimension
		} {
			layout, err := ParseTiledLayoutString(text)
			require.Error(t, err, "input %q", text)
			// No partial descriptor: failures return the zero layout.
			assert.True(t, layout.Equal(TiledLayout{}), "input %q", text)
		}
	})
}

func TestTiledLayoutEqualHash(t *testing.T) {
	a := NewTiledLayout([]Tile{NewTile(8, 128), NewTile(1, 128)}, []int64{1, 8})
	b := NewTiledLayout([]Tile{NewTile(8, 128), NewTile(1, 128)}, []int64{1, 8})
	c := NewTiledLayout([]Tile{NewTile(8, 128)}, []int64{1, 8})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())

	// Moving a value between the tile and stride sections must change the hash.
	d := NewTiledLayout([]Tile{NewTile(8)}, []int64{128})
	e := NewTiledLayout([]Tile{NewTile(8, 128)}, nil)
	assert.NotEqual(t, d.Hash(), e.Hash())
}

func TestVectorLayout(t *testing.T) {
	l := NewVectorLayout(2, 1)
	assert.Equal(t, "<21>", l.String())
	assert.Equal(t, "#tile.vector<21>", l.ToIR())
	assert.True(t, l.Equal(NewVectorLayout(2, 1)))
	assert.False(t, l.Equal(NewVectorLayout(2)))
	assert.Equal(t, l.Hash(), NewVectorLayout(2, 1).Hash())
	assert.Panics(t, func() { NewVectorLayout(-1) })
}

func TestInterner(t *testing.T) {
	it := NewInterner()
	a := it.InternTiled(NewTiledLayout([]Tile{NewTile(8, 128)}, []int64{1}))
	b := it.InternTiled(NewTiledLayout([]Tile{NewTile(8, 128)}, []int64{1}))
	c := it.InternTiled(NewTiledLayout([]Tile{NewTile(8, 128)}, []int64{2}))
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
