package tileir

import (
	"fmt"
	"io"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/gomlx/tileir/internal/utils"
)

// Type is the structural type of a Value.
//
// The implementations are IndexType and ScalarType here, plus memrefs.MemRef
// for layout-carrying array values.
type Type interface {
	// ToIR returns the textual IR name of the type, e.g. "index" or "memref<8x128xf32>".
	ToIR() string
}

// IndexType is the platform-width integer type used for indexing.
type IndexType struct{}

// ToIR returns the textual IR name of the type.
func (IndexType) ToIR() string { return "index" }

// ScalarType is a fixed-width scalar type, e.g. i32 or f32.
type ScalarType struct {
	DType dtypes.DType
}

// ToIR returns the textual IR name of the type.
func (t ScalarType) ToIR() string { return utils.DTypeToIR(t.DType) }

// Value represents a value in the expression graph, like `%0` or `%arg0`.
// It has a type, a name composed of letters, digits and underscores, and --
// unless it is a function input -- the statement that defines it.
type Value struct {
	fn   *Function
	name string
	typ  Type
	def  *Statement
}

// Type returns the structural type of the value.
func (v *Value) Type() Type {
	return v.typ
}

// DefiningStatement returns the statement that produced the value, or nil for
// function inputs. Analyses walk operand edges through it; use edges are never
// tracked.
func (v *Value) DefiningStatement() *Statement {
	return v.def
}

// Write writes the value in IR text form to the given writer.
func (v *Value) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%%%s", v.name)
	return err
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return "%" + v.name
}

// NamedValue creates a new named value with the given type.
// These are meant to be used as inputs for functions.
func NamedValue(name string, typ Type) *Value {
	return &Value{
		name: NormalizeIdentifier(name),
		typ:  typ,
	}
}
