// Package asmparse implements the low-level character-stream parser used to read
// tileir textual attributes, like the tiled layout descriptor.
//
// It offers the three capabilities attribute grammars need: consume a literal
// (failing), probe an optional literal (non-failing) and consume an integer.
// Parsers for specific attributes are built on top of it -- see types/layouts.
package asmparse

import (
	"strconv"

	"fortio.org/safecast"
	"github.com/pkg/errors"
)

// Parser is a cursor over an attribute body in textual form.
//
// It is positioned at the start of the attribute body: the enclosing convention
// (e.g. the `#tile.tiled` attribute marker) is the caller's responsibility.
type Parser struct {
	src string
	off uint32

	// limit is the exclusive upper bound for off.
	limit uint32
}

// New creates a Parser over the given attribute text.
func New(src string) (*Parser, error) {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return nil, errors.Errorf("attribute text too large to parse: %v", err)
	}
	return &Parser{src: src, limit: limit}, nil
}

// Pos returns the current byte offset, for error reporting.
func (p *Parser) Pos() int {
	return int(p.off)
}

// EOF returns whether the whole input was consumed.
func (p *Parser) EOF() bool {
	return p.off >= p.limit
}

// peek returns the current byte, or 0 at EOF.
func (p *Parser) peek() byte {
	if p.EOF() {
		return 0
	}
	return p.src[p.off]
}

// skipSpaces advances over ASCII whitespace. The canonical printed form has no
// spaces, but hand-written attributes may.
func (p *Parser) skipSpaces() {
	for !p.EOF() {
		switch p.src[p.off] {
		case ' ', '\t', '\n', '\r':
			p.off++
		default:
			return
		}
	}
}

// ParseOptional consumes the next byte if it matches b and returns whether it did.
// It never fails: a mismatch leaves the parser where it was.
func (p *Parser) ParseOptional(b byte) bool {
	p.skipSpaces()
	if p.peek() == b {
		p.off++
		return true
	}
	return false
}

// Parse consumes the next byte, which must match b.
func (p *Parser) Parse(b byte) error {
	p.skipSpaces()
	if p.EOF() {
		return errors.Errorf("expected %q at offset %d, got end of input", string(b), p.off)
	}
	if got := p.src[p.off]; got != b {
		return errors.Errorf("expected %q at offset %d, got %q", string(b), p.off, string(got))
	}
	p.off++
	return nil
}

// ParseInteger consumes a (possibly negative) decimal integer.
func (p *Parser) ParseInteger() (int64, error) {
	p.skipSpaces()
	start := p.off
	if p.peek() == '-' {
		p.off++
	}
	for !p.EOF() && p.src[p.off] >= '0' && p.src[p.off] <= '9' {
		p.off++
	}
	text := p.src[start:p.off]
	if text == "" || text == "-" {
		p.off = start
		return 0, errors.Errorf("expected integer at offset %d", start)
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.off = start
		return 0, errors.Errorf("integer %q at offset %d out of range", text, start)
	}
	return value, nil
}

// ExpectEOF fails if there is unconsumed input left.
func (p *Parser) ExpectEOF() error {
	p.skipSpaces()
	if !p.EOF() {
		return errors.Errorf("unexpected trailing input at offset %d: %q", p.off, p.src[p.off:])
	}
	return nil
}
