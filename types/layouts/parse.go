package layouts

import (
	"github.com/pkg/errors"

	"github.com/gomlx/tileir/asmparse"
)

// ParseTiledLayout parses the text form of a tiled layout, e.g.
// "<(8,128)(1,128),[1,8]>": zero or more parenthesized tiles, a comma, a
// bracketed stride list and the closing '>'.
//
// Zero tiles and zero strides are both legal. On malformed input it returns
// the zero TiledLayout and an error, never a partially filled layout. Parsing
// is greedy and order-preserving, so printing the result re-produces the
// canonical form of the input (see TiledLayout.String).
func ParseTiledLayout(p *asmparse.Parser) (TiledLayout, error) {
	if err := p.Parse('<'); err != nil {
		return TiledLayout{}, err
	}
	var tiles []Tile
	for p.ParseOptional('(') {
		var dims []int64
		first := true
		for !p.ParseOptional(')') {
			if !first {
				if err := p.Parse(','); err != nil {
					return TiledLayout{}, err
				}
			}
			first = false
			size, err := p.ParseInteger()
			if err != nil {
				return TiledLayout{}, err
			}
			if size <= 0 {
				return TiledLayout{}, errors.Errorf(
					"tile dimension sizes must be positive, got %d before offset %d", size, p.Pos())
			}
			dims = append(dims, size)
		}
		tiles = append(tiles, NewTile(dims...))
	}
	if err := p.Parse(','); err != nil {
		return TiledLayout{}, err
	}
	if !p.ParseOptional('[') {
		return TiledLayout{}, errors.Errorf("expected '[' starting the stride list at offset %d", p.Pos())
	}
	var strides []int64
	first := true
	for !p.ParseOptional(']') {
		if !first {
			if err := p.Parse(','); err != nil {
				return TiledLayout{}, err
			}
		}
		first = false
		stride, err := p.ParseInteger()
		if err != nil {
			return TiledLayout{}, err
		}
		strides = append(strides, stride)
	}
	if err := p.Parse('>'); err != nil {
		return TiledLayout{}, err
	}
	return NewTiledLayout(tiles, strides), nil
}

// ParseTiledLayoutString parses a complete tiled layout text, requiring the
// whole input to be consumed.
func ParseTiledLayoutString(text string) (TiledLayout, error) {
	p, err := asmparse.New(text)
	if err != nil {
		return TiledLayout{}, err
	}
	layout, err := ParseTiledLayout(p)
	if err != nil {
		return TiledLayout{}, err
	}
	if err := p.ExpectEOF(); err != nil {
		return TiledLayout{}, err
	}
	return layout, nil
}
