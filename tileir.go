// Package tileir builds and analyzes the memory-layout metadata an array IR attaches
// to its values.
//
// Among its features:
//
//   - Tiled layout descriptors (types/layouts): nested tiling plus per-level strides,
//     with a canonical text form that parses and prints bijectively.
//   - Lowering of a tiled layout to an affine coordinate transform (affine) mapping
//     logical coordinates to the tiled physical coordinates.
//   - A small arithmetic expression-graph builder rendered in human-readable IR text,
//     and analyses over it: a fuel-bounded divisibility prover and layout-erasure
//     unwrapping.
//
// Written purely in Go, no C/C++ external dependencies.
package tileir

import "github.com/gomlx/tileir/internal/utils"

// NormalizeIdentifier converts the name of an identifier (function name or function input
// parameter name, etc.) to a valid one: only letters, digits, and underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	return utils.NormalizeIdentifier(name)
}
