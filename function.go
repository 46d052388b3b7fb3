package tileir

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/gomlx/tileir/internal/optypes"
)

// Function represents a `func.func` in the IR text.
type Function struct {
	Builder *Builder

	// Name of the function. It should not include the "@" prefix.
	Name string

	// Inputs to the function.
	Inputs []*Value

	// Outputs types of the function, set by Return.
	Outputs []Type

	// Statements in the function body.
	Statements []*Statement

	// values holds all the values (e.g., %0, %arg0) created in the function's scope.
	values []*Value

	// nextArgID is the next ID to be assigned to new input arguments.
	nextArgID int

	// nextTmpID is the next ID to be assigned to new intermediary values.
	nextTmpID int

	// Returned indicates if the function has a return statement, so it can no longer be changed.
	Returned bool
}

// newValue creates a new value with the given type and assigns it the next available id.
func (fn *Function) newValue(typ Type) *Value {
	v := &Value{
		fn:   fn,
		name: strconv.Itoa(fn.nextTmpID),
		typ:  typ,
	}
	fn.nextTmpID++
	fn.values = append(fn.values, v)
	return v
}

// addOp appends a statement computing one output of the given type and
// records it as the output's defining statement.
func (fn *Function) addOp(opType optypes.OpType, outputType Type, inputs ...*Value) *Statement {
	stmt := &Statement{
		Builder:  fn.Builder,
		Function: fn,
		OpType:   opType,
		Inputs:   inputs,
		Outputs:  []*Value{fn.newValue(outputType)},
	}
	stmt.Outputs[0].def = stmt
	fn.Statements = append(fn.Statements, stmt)
	return stmt
}

// Input creates a new input parameter for a function.
//
// If creating multiple inputs (one at a time), the order matters, since a
// compiled function takes its parameters in the order they were created.
//
// It picks a default unique name for the input parameter; you can also provide
// a name with NamedInput.
func (fn *Function) Input(typ Type) *Value {
	value := fn.NamedInput(fmt.Sprintf("arg%d", fn.nextArgID), typ)
	fn.nextArgID++
	return value
}

// NamedInput creates a new input parameter for a function with the given name -- it
// must be a unique input name.
//
// The name is passed through NormalizeIdentifier, which converts any non-digit or
// non-ASCII-letter to an underscore. Names are used in the IR text and may be
// helpful for debugging, but otherwise have no impact.
func (fn *Function) NamedInput(name string, typ Type) *Value {
	value := &Value{
		fn:   fn,
		name: NormalizeIdentifier(name),
		typ:  typ,
	}
	fn.Inputs = append(fn.Inputs, value)
	fn.values = append(fn.values, value)
	return value
}

// Return adds a return statement to the function with the given return values.
// There must be at least one return value.
//
// There can be only one return statement in a Function, and it must be the
// last operation of the function.
func (fn *Function) Return(firstValue *Value, otherValues ...*Value) error {
	if fn.Returned {
		return errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	fn.Returned = true
	allValues := make([]*Value, 1, len(otherValues)+1)
	allValues[0] = firstValue
	allValues = append(allValues, otherValues...)
	outputTypes := make([]Type, len(allValues))
	for i, value := range allValues {
		if value.fn != fn {
			return errors.New("Function.Return given values that are not owned by the function")
		}
		outputTypes[i] = value.typ
	}
	fn.Outputs = outputTypes

	stmt := &Statement{
		Builder:  fn.Builder,
		Function: fn,
		OpType:   optypes.FuncReturn,
		Inputs:   allValues,
	}
	fn.Statements = append(fn.Statements, stmt)
	return nil
}

// Write the function as IR text, with the given indentation.
func (fn *Function) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}

	nextIndent := indentation + IndentationStep
	w("%sfunc.func @%s(", indentation, fn.Name)
	for i, input := range fn.Inputs {
		if i > 0 {
			w(", ")
		}
		w("%s: %s", input, input.typ.ToIR())
	}
	w(") -> ")
	if len(fn.Outputs) > 1 {
		w("(")
	}
	for i, output := range fn.Outputs {
		if i > 0 {
			w(", ")
		}
		w("%s", output.ToIR())
	}
	if len(fn.Outputs) > 1 {
		w(")")
	}
	w(" {\n")

	for _, stmt := range fn.Statements {
		if err != nil {
			break
		}
		err = stmt.Write(writer, nextIndent)
		w("\n")
	}

	w("%s}", indentation)
	return err
}
