package tileir

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/gomlx/tileir/internal/optypes"
	"github.com/gomlx/tileir/internal/utils"
	"github.com/gomlx/tileir/types/memrefs"
)

// isIntegerOrIndex reports whether t is an index or a fixed-width integer type.
func isIntegerOrIndex(t Type) bool {
	switch v := t.(type) {
	case IndexType:
		return true
	case ScalarType:
		return utils.IntegerDTypes.Has(v.DType)
	}
	return false
}

func (fn *Function) checkOpen() error {
	if fn.Returned {
		return errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	return nil
}

// ConstantIndex creates a constant of type index and returns the resulting value.
func (fn *Function) ConstantIndex(value int64) (*Value, error) {
	if err := fn.checkOpen(); err != nil {
		return nil, err
	}
	stmt := fn.addOp(optypes.Constant, IndexType{})
	stmt.Attributes = map[string]any{"value": IndexLiteral(value)}
	return stmt.Outputs[0], nil
}

// ConstantScalar creates a constant statement from the given Go scalar value
// (ints, floats, float16.Float16, bool) and returns the resulting value.
// Its type is inferred from the value.
func (fn *Function) ConstantScalar(value any) (*Value, error) {
	if err := fn.checkOpen(); err != nil {
		return nil, err
	}
	dtype := dtypes.FromAny(value)
	if dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("unsupported constant value type %T", value)
	}
	stmt := fn.addOp(optypes.Constant, ScalarType{DType: dtype})
	stmt.Attributes = map[string]any{"value": value}
	return stmt.Outputs[0], nil
}

// binaryIntOp implements the shared checks of the arith binary operations.
func (fn *Function) binaryIntOp(opType optypes.OpType, lhs, rhs *Value) (*Value, error) {
	if err := fn.checkOpen(); err != nil {
		return nil, err
	}
	if lhs.typ.ToIR() != rhs.typ.ToIR() {
		return nil, errors.Errorf("%s operands must have the same type, got %s and %s",
			opType.ToIR(), lhs.typ.ToIR(), rhs.typ.ToIR())
	}
	if !isIntegerOrIndex(lhs.typ) {
		return nil, errors.Errorf("%s operands must be integers or index, got %s",
			opType.ToIR(), lhs.typ.ToIR())
	}
	return fn.addOp(opType, lhs.typ, lhs, rhs).Outputs[0], nil
}

// AddI returns lhs+rhs for integer or index operands of the same type.
func (fn *Function) AddI(lhs, rhs *Value) (*Value, error) {
	return fn.binaryIntOp(optypes.AddI, lhs, rhs)
}

// SubI returns lhs-rhs for integer or index operands of the same type.
func (fn *Function) SubI(lhs, rhs *Value) (*Value, error) {
	return fn.binaryIntOp(optypes.SubI, lhs, rhs)
}

// MulI returns lhs*rhs for integer or index operands of the same type.
func (fn *Function) MulI(lhs, rhs *Value) (*Value, error) {
	return fn.binaryIntOp(optypes.MulI, lhs, rhs)
}

// IndexCast widens or narrows between index and a fixed-width integer type.
// Exactly one of the source and destination types must be index.
func (fn *Function) IndexCast(x *Value, to Type) (*Value, error) {
	if err := fn.checkOpen(); err != nil {
		return nil, err
	}
	_, fromIndex := x.typ.(IndexType)
	_, toIndex := to.(IndexType)
	if fromIndex == toIndex {
		return nil, errors.Errorf("IndexCast requires exactly one of the source and destination types to be index, got %s to %s",
			x.typ.ToIR(), to.ToIR())
	}
	if !isIntegerOrIndex(x.typ) || !isIntegerOrIndex(to) {
		return nil, errors.Errorf("IndexCast converts between index and integers, got %s to %s",
			x.typ.ToIR(), to.ToIR())
	}
	return fn.addOp(optypes.IndexCast, to, x).Outputs[0], nil
}

// AssumeMultiple annotates x with the trusted fact that it is always a
// multiple of the given positive integer. Analyses take the annotation at face
// value and never re-verify it.
func (fn *Function) AssumeMultiple(x *Value, multiple int64) (*Value, error) {
	if err := fn.checkOpen(); err != nil {
		return nil, err
	}
	if multiple <= 0 {
		return nil, errors.Errorf("AssumeMultiple requires a positive multiple, got %d", multiple)
	}
	if !isIntegerOrIndex(x.typ) {
		return nil, errors.Errorf("AssumeMultiple operand must be an integer or index, got %s", x.typ.ToIR())
	}
	stmt := fn.addOp(optypes.AssumeMultiple, x.typ, x)
	stmt.Attributes = map[string]any{"multiple": multiple}
	return stmt.Outputs[0], nil
}

// EraseLayout strips the layout attribute from a memref value without changing
// the underlying data. The operand keeps the authoritative layout-carrying
// type; see MemRefTypeOf to resolve back through it.
func (fn *Function) EraseLayout(x *Value) (*Value, error) {
	if err := fn.checkOpen(); err != nil {
		return nil, err
	}
	mt, ok := x.typ.(memrefs.MemRef)
	if !ok {
		return nil, errors.Errorf("EraseLayout operand must be a memref, got %s", x.typ.ToIR())
	}
	return fn.addOp(optypes.EraseLayout, mt.WithLayout(nil), x).Outputs[0], nil
}

// Opaque appends an operation outside the closed op set, producing a value of
// the given type. It models foreign computations feeding the graph; analyses
// never look through it.
func (fn *Function) Opaque(outputType Type, inputs ...*Value) (*Value, error) {
	if err := fn.checkOpen(); err != nil {
		return nil, err
	}
	return fn.addOp(optypes.Opaque, outputType, inputs...).Outputs[0], nil
}
