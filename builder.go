package tileir

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/gomlx/tileir/types/layouts"
)

// Builder is used to construct an expression-graph program ("module") carrying
// layout metadata. See details in New.
type Builder struct {
	name string

	// functions holds all the functions created in the builder's scope.
	functions []*Function

	// attrs interns layout attributes so structurally equal layouts share a pointer.
	attrs *layouts.Interner
}

// New creates a new Builder object holding a program in construction.
//
// From a builder you can create functions, and for each function you create
// operations (ops) one by one until you defined the desired computation. Every
// program needs a "main" function: use Builder.Main or
// Builder.NewFunction("main", ...), it's the same.
//
// Once you are all set, call Builder.Build and it will return the program in
// readable IR text as a []byte.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		attrs: layouts.NewInterner(),
	}
}

// elementWriter represents elements of the IR text that know how to write themselves.
type elementWriter interface {
	Write(w io.Writer, indentation string) error
}

// NewFunction creates a new function and adds it to the program.
// The function outputs are determined by the Return statement closing the body.
//
// The function name must be unique in the program.
//
// The inputs are the values that the function will receive as arguments. You
// can also add new inputs later by calling Function.Input.
func (b *Builder) NewFunction(name string, inputs ...*Value) *Function {
	fn := &Function{
		Builder: b,
		Name:    name,
		Inputs:  inputs,
	}
	for _, input := range inputs {
		input.fn = fn
	}
	fn.values = append(fn.values, inputs...)
	b.functions = append(b.functions, fn)
	return fn
}

const MainFunctionName = "main"

// Main creates the main function of the program.
// It is an alias to Builder.NewFunction("main", inputs...).
func (b *Builder) Main(inputs ...*Value) *Function {
	return b.NewFunction(MainFunctionName, inputs...)
}

const IndentationStep = "  "

// InternTiledLayout returns the canonical pointer for the given layout within
// this builder's attribute context: equal layouts intern to the same pointer.
func (b *Builder) InternTiledLayout(layout layouts.TiledLayout) *layouts.TiledLayout {
	return b.attrs.InternTiled(layout)
}

// Write the program (a readable string) to the given writer.
//
// It will write incomplete programs (without a main function or empty
// statements) without an error, to help debugging.
//
// See Builder.Build to check and output the program.
func (b *Builder) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter, indentation string) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}

	w("module @%s {\n", NormalizeIdentifier(b.name))
	for i, fn := range b.functions {
		if i > 0 {
			w("\n\n")
		}
		we(fn, IndentationStep) // Indent functions inside module
	}
	w("\n}\n") // Close module block
	return err
}

// Build checks the validity and builds the program in IR text form.
//
// If you want the output of an incomplete program (without the checking), use
// Builder.Write instead.
func (b *Builder) Build() ([]byte, error) {
	hasMain := false
	for _, fn := range b.functions {
		if fn.Name == MainFunctionName {
			hasMain = true
		}
		if len(fn.Statements) == 0 {
			return nil, errors.Errorf("function %q has no statements", fn.Name)
		}
	}
	if !hasMain {
		return nil, errors.New("program must have a main function")
	}

	var buf bytes.Buffer
	err := b.Write(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
