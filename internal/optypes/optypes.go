// Package optypes defines OpType and lists the operations the tileir expression graph supports.
package optypes

import (
	"fmt"

	"github.com/gomlx/tileir/internal/utils"
)

// OpType is an enum of the operations tileir can represent in its expression graph.
//
// The set is deliberately closed: analyses dispatch on it (see the divisibility
// prover) and treat anything they don't know as opaque.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota
	FuncReturn

	// Arithmetic ops, named after their `arith` dialect counterparts.
	Constant
	AddI
	SubI
	MulI
	IndexCast

	// Tile dialect ops.
	AssumeMultiple
	EraseLayout

	// Opaque stands for any operation outside the closed set above. Analyses
	// must not look through it.
	Opaque

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

var (
	// irMappings maps OpType to the corresponding IR operation name, when the
	// default "tile." dialect prefix plus snake case doesn't apply.
	irMappings = map[OpType]string{
		FuncReturn: "func.return",
		Constant:   "arith.constant",
		AddI:       "arith.addi",
		SubI:       "arith.subi",
		MulI:       "arith.muli",
		IndexCast:  "arith.index_cast",
	}
)

// ToIR returns the textual IR name of the operation.
func (op OpType) ToIR() string {
	name, ok := irMappings[op]
	if !ok {
		name = fmt.Sprintf("tile.%s", utils.ToSnakeCase(op.String()))
	}
	return name
}
