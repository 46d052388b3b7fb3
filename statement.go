package tileir

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"

	"github.com/gomlx/tileir/internal/optypes"
	"github.com/gomlx/tileir/internal/utils"
)

// Statement represents a single operation line in the IR text.
type Statement struct {
	Builder  *Builder
	Function *Function

	// OpType is the type of the operation.
	OpType optypes.OpType

	// Inputs to the operation.
	Inputs []*Value

	// Attributes of the operation.
	Attributes map[string]any

	// Outputs of the operation. It may be nil for operations like func.return.
	Outputs []*Value
}

// Write writes a string representation of the statement to the given writer.
func (s *Statement) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e *Value) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer)
	}

	// Output values are written first:
	w("%s", indentation)
	if len(s.Outputs) > 0 {
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			we(output)
		}
		w(" = ")
	}

	// Write op name and arguments:
	w("%q(", s.OpType.ToIR())
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		we(input)
	}
	w(")")

	// Write attributes, in deterministic key order:
	if len(s.Attributes) > 0 {
		w("{")
		for i, key := range slices.Sorted(maps.Keys(s.Attributes)) {
			if i > 0 {
				w(", ")
			}
			w("%s = %s", key, literalToIR(s.Attributes[key]))
		}
		w("}")
	}

	// Write signature:
	w(" : (")
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		w("%s", input.typ.ToIR())
	}
	w(")")
	w(" -> ")
	if len(s.Outputs) == 0 {
		w("()")
	} else {
		// There are outputs: we use "(" and ")" only if there are more than one.
		if len(s.Outputs) > 1 {
			w("(")
		}
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			w("%s", output.typ.ToIR())
		}
		if len(s.Outputs) > 1 {
			w(")")
		}
	}

	return err
}

type hasToIR interface {
	ToIR() string
}

// IndexLiteral is an integer literal of type index, used in statement attributes.
type IndexLiteral int64

// ToIR returns the literal in textual IR form.
func (l IndexLiteral) ToIR() string {
	return fmt.Sprintf("%d : index", int64(l))
}

// literalToIR converts a literal value, usually used in attributes, to its IR string representation.
func literalToIR(attr any) string {
	switch v := attr.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case float16.Float16:
		return fmt.Sprintf("%g : f16", v.Float32())
	case float32, float64:
		dtype := dtypes.FromAny(v)
		return fmt.Sprintf("%g : %s", v, utils.DTypeToIR(dtype))
	case int, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
		dtype := dtypes.FromAny(v)
		return fmt.Sprintf("%d : %s", v, utils.DTypeToIR(dtype))
	case bool:
		if v {
			return "true"
		}
		return "false"

	case hasToIR:
		// For types that implement their own conversion to IR text, use that.
		return v.ToIR()

	default:
		return fmt.Sprintf("unknown literal type: %T %#v", v, v)
	}
}
