package tileir

import (
	"github.com/pkg/errors"

	"github.com/gomlx/tileir/internal/optypes"
	"github.com/gomlx/tileir/types/memrefs"
)

// IsGuaranteedDivisible reports whether value is provably always a multiple of
// divisor, walking backward through its defining statements with the given
// search budget.
//
// The proof is sound but incomplete: a true result means every concrete run
// yields a multiple of divisor (assuming AssumeMultiple annotations are
// honest), while false only means "not proven within fuel". Callers must treat
// false as "assume not divisible", never as a hard failure. Divisor must be
// positive; fuel bounds both recursion depth and total work, so a small
// single-digit budget is usually enough.
func IsGuaranteedDivisible(value *Value, divisor, fuel int64) bool {
	if divisor <= 0 {
		panic(errors.Errorf("IsGuaranteedDivisible requires a positive divisor, got %d", divisor))
	}
	return isGuaranteedDivisible(value, divisor, fuel)
}

func isGuaranteedDivisible(value *Value, divisor, fuel int64) bool {
	if fuel <= 0 {
		return false
	}
	def := value.def
	if def == nil {
		// Function inputs carry no local structure to reason from.
		return false
	}
	switch def.OpType {
	case optypes.AssumeMultiple:
		multiple, ok := def.Attributes["multiple"].(int64)
		return ok && multiple%divisor == 0
	case optypes.MulI:
		lhs, rhs := def.Inputs[0], def.Inputs[1]
		// We check RHS first, because canonicalization moves constants to the right.
		if isGuaranteedDivisible(rhs, divisor, fuel/2) ||
			isGuaranteedDivisible(lhs, divisor, (fuel+1)/2) {
			return true
		}
		// A constant factor c covers gcd(c, divisor) of the divisor; the other
		// factor then only needs to cover divisor/gcd(c, divisor).
		if c, ok := constantFactor(rhs); ok {
			if rest := divisor / gcd64(c, divisor); rest == 1 || isGuaranteedDivisible(lhs, rest, fuel-1) {
				return true
			}
		}
		if c, ok := constantFactor(lhs); ok {
			if rest := divisor / gcd64(c, divisor); rest == 1 || isGuaranteedDivisible(rhs, rest, fuel-1) {
				return true
			}
		}
		return false
	case optypes.Constant:
		c, ok := integerConstant(def)
		return ok && c%divisor == 0
	case optypes.IndexCast:
		return isGuaranteedDivisible(def.Inputs[0], divisor, fuel-1)
	default:
		return false
	}
}

// integerConstant extracts the integer value of a constant statement.
// Float constants (or anything else) report false.
func integerConstant(stmt *Statement) (int64, bool) {
	switch v := stmt.Attributes["value"].(type) {
	case IndexLiteral:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	}
	return 0, false
}

// constantFactor returns the integer value of v if v is defined by an integer
// constant statement.
func constantFactor(v *Value) (int64, bool) {
	def := v.def
	if def == nil || def.OpType != optypes.Constant {
		return 0, false
	}
	return integerConstant(def)
}

// gcd64 returns the greatest common divisor of |a| and b, where b is positive.
// gcd64(0, b) is b: a zero factor makes the product a multiple of anything.
func gcd64(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for a != 0 {
		a, b = b%a, a
	}
	return b
}

// MemRefTypeOf resolves value through a layout-erasing operation, if any, and
// returns its memref type. At most one level is unwrapped: an erase operation's
// operand already carries the authoritative layout-carrying type. It returns a
// type error if the resolved value is not a memref.
func MemRefTypeOf(value *Value) (memrefs.MemRef, error) {
	if def := value.def; def != nil && def.OpType == optypes.EraseLayout {
		value = def.Inputs[0]
	}
	mt, ok := value.typ.(memrefs.MemRef)
	if !ok {
		return memrefs.MemRef{}, errors.Errorf("value %s has type %s, expected a memref", value, value.typ.ToIR())
	}
	return mt, nil
}
