// Package affine implements the integer coordinate-transform formulas tileir derives
// from tiled layouts.
//
// A Map takes a tuple of integer coordinates to another tuple, where each output is
// an Expr built from input dimensions, constants, floor division and modulo. Maps are
// immutable values and compose: Map.Compose substitutes one map's outputs into
// another's inputs, which is how nested tiling levels are stacked.
//
// All arithmetic is 64-bit signed with mathematical floor semantics, so negative
// coordinates divide and wrap consistently (divisors are always positive here).
package affine

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Expr is a single output expression of a Map, closed under composition.
type Expr interface {
	// Eval computes the expression given the input coordinates.
	Eval(coords []int64) int64

	// String returns the expression in textual IR form, e.g. "d0 floordiv 8".
	String() string

	// replaceDims substitutes input dimension di with dims[i].
	replaceDims(dims []Expr) Expr
}

type dimExpr int

// Dim returns the expression selecting input dimension i.
func Dim(i int) Expr {
	if i < 0 {
		panic(errors.Errorf("affine.Dim(%d): dimension must be non-negative", i))
	}
	return dimExpr(i)
}

func (d dimExpr) Eval(coords []int64) int64 {
	if int(d) >= len(coords) {
		panic(errors.Errorf("affine expression d%d evaluated with only %d coordinates", int(d), len(coords)))
	}
	return coords[d]
}

func (d dimExpr) String() string { return fmt.Sprintf("d%d", int(d)) }

func (d dimExpr) replaceDims(dims []Expr) Expr {
	if int(d) >= len(dims) {
		panic(errors.Errorf("affine expression d%d composed with a map of only %d results", int(d), len(dims)))
	}
	return dims[d]
}

type constExpr int64

// Constant returns the expression with the fixed value c.
func Constant(c int64) Expr { return constExpr(c) }

func (c constExpr) Eval([]int64) int64 { return int64(c) }

func (c constExpr) String() string { return fmt.Sprintf("%d", int64(c)) }

func (c constExpr) replaceDims([]Expr) Expr { return c }

type floorDivExpr struct {
	expr    Expr
	divisor int64
}

// FloorDiv returns expr floor-divided by the given positive divisor.
func FloorDiv(expr Expr, divisor int64) Expr {
	if divisor <= 0 {
		panic(errors.Errorf("affine.FloorDiv: divisor must be positive, got %d", divisor))
	}
	return floorDivExpr{expr: expr, divisor: divisor}
}

func (f floorDivExpr) Eval(coords []int64) int64 {
	return floorDiv(f.expr.Eval(coords), f.divisor)
}

func (f floorDivExpr) String() string {
	return fmt.Sprintf("%s floordiv %d", parenthesize(f.expr), f.divisor)
}

func (f floorDivExpr) replaceDims(dims []Expr) Expr {
	return floorDivExpr{expr: f.expr.replaceDims(dims), divisor: f.divisor}
}

type modExpr struct {
	expr    Expr
	modulus int64
}

// Mod returns expr modulo the given positive modulus, with a non-negative result.
func Mod(expr Expr, modulus int64) Expr {
	if modulus <= 0 {
		panic(errors.Errorf("affine.Mod: modulus must be positive, got %d", modulus))
	}
	return modExpr{expr: expr, modulus: modulus}
}

func (m modExpr) Eval(coords []int64) int64 {
	return floorMod(m.expr.Eval(coords), m.modulus)
}

func (m modExpr) String() string {
	return fmt.Sprintf("%s mod %d", parenthesize(m.expr), m.modulus)
}

func (m modExpr) replaceDims(dims []Expr) Expr {
	return modExpr{expr: m.expr.replaceDims(dims), modulus: m.modulus}
}

// parenthesize wraps compound sub-expressions so the printed form reads unambiguously.
func parenthesize(e Expr) string {
	switch e.(type) {
	case dimExpr, constExpr:
		return e.String()
	default:
		return "(" + e.String() + ")"
	}
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod wraps the remainder so its sign follows the divisor's.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// Map is an immutable affine transform from numDims input coordinates to
// len(exprs) output coordinates.
type Map struct {
	numDims int
	exprs   []Expr
}

// NewMap creates a Map over numDims input dimensions with the given output expressions.
func NewMap(numDims int, exprs []Expr) Map {
	if numDims < 0 {
		panic(errors.Errorf("affine.NewMap: negative number of dimensions %d", numDims))
	}
	return Map{numDims: numDims, exprs: append([]Expr(nil), exprs...)}
}

// Identity returns the identity Map over numDims dimensions.
func Identity(numDims int) Map {
	exprs := make([]Expr, numDims)
	for i := range exprs {
		exprs[i] = Dim(i)
	}
	return NewMap(numDims, exprs)
}

// NumDims returns the input arity of the map.
func (m Map) NumDims() int { return m.numDims }

// NumResults returns the output arity of the map.
func (m Map) NumResults() int { return len(m.exprs) }

// Expr returns the i-th output expression.
func (m Map) Expr(i int) Expr { return m.exprs[i] }

// Compose returns the map computing m(other(coords)).
//
// other's outputs feed m's inputs, so other.NumResults() must equal m.NumDims().
// A mismatch is a programming-invariant violation and panics.
func (m Map) Compose(other Map) Map {
	if other.NumResults() != m.numDims {
		panic(errors.Errorf(
			"affine.Map.Compose: inner map produces %d results but outer map takes %d dimensions",
			other.NumResults(), m.numDims))
	}
	exprs := make([]Expr, len(m.exprs))
	for i, e := range m.exprs {
		exprs[i] = e.replaceDims(other.exprs)
	}
	return NewMap(other.numDims, exprs)
}

// Eval applies the map to the given coordinates.
func (m Map) Eval(coords []int64) ([]int64, error) {
	if len(coords) != m.numDims {
		return nil, errors.Errorf("affine.Map.Eval: map takes %d coordinates, got %d", m.numDims, len(coords))
	}
	out := make([]int64, len(m.exprs))
	for i, e := range m.exprs {
		out[i] = e.Eval(coords)
	}
	return out, nil
}

// String returns the map in textual IR form, e.g. "(d0, d1) -> (d0 floordiv 8, d1 mod 128)".
func (m Map) String() string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i := 0; i < m.numDims; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "d%d", i)
	}
	buf.WriteString(") -> (")
	for i, e := range m.exprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(e.String())
	}
	buf.WriteByte(')')
	return buf.String()
}
