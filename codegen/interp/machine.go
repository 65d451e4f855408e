// Package interp implements a code generator that compiles function bodies
// into trees of Go closures and executes them.
package interp

import (
	"errors"
	"fmt"
	"io"

	"github.com/c-coh/dead-code-opt/ir"
)

var (
	// ErrNotCompiled is returned when running a function that was never
	// compiled.
	ErrNotCompiled = errors.New("function not compiled")
	// ErrNoImplementation is returned when calling a declaration that is
	// neither compiled nor a builtin.
	ErrNoImplementation = errors.New("function has no implementation")
	// ErrCallDepth is returned when calls nest deeper than the configured
	// limit.
	ErrCallDepth = errors.New("call depth exceeded")
	// ErrDivisionByZero is returned for integer divisions by zero.
	ErrDivisionByZero = errors.New("integer division by zero")
	// ErrBadArgs is returned for calls with unusable arguments.
	ErrBadArgs = errors.New("bad arguments")
)

// DefaultMaxCallDepth is the call depth limit of new machines.
const DefaultMaxCallDepth = 10000

// Value holds a run time value: int64, float64, bool, string, or nil for
// void.
type Value interface{}

// Builtin implements an external function in Go.
type Builtin func(m *Machine, args []Value) (Value, error)

type compiledFunc struct {
	f      *ir.Func
	slots  map[string]int
	params []int
	zeros  []Value
	body   stmtFunc
}

type frame struct {
	vars     []Value
	result   Value
	returned bool
	depth    int
}

type stmtFunc func(fr *frame) error
type exprFunc func(fr *frame) (Value, error)

// Machine compiles and runs functions of a program.
type Machine struct {
	program *ir.Program
	out     io.Writer

	maxCallDepth int

	funcs    map[string]*compiledFunc
	builtins map[string]Builtin
}

// NewMachine creates a machine for the given program that writes printf
// output to out. A nil writer discards all output.
func NewMachine(program *ir.Program, out io.Writer) *Machine {
	if program == nil {
		panic("tried to create Machine without program")
	}

	m := new(Machine)
	m.program = program
	m.out = out
	if out == nil {
		m.out = io.Discard
	}
	m.maxCallDepth = DefaultMaxCallDepth
	m.funcs = make(map[string]*compiledFunc)
	m.builtins = map[string]Builtin{
		"printf": printf,
	}

	return m
}

// SetMaxCallDepth sets the maximum call depth.
func (m *Machine) SetMaxCallDepth(depth int) {
	m.maxCallDepth = depth
}

// AddBuiltin registers a Go implementation for an external function.
func (m *Machine) AddBuiltin(name string, builtin Builtin) {
	m.builtins[name] = builtin
}

// Output returns the writer receiving printf output.
func (m *Machine) Output() io.Writer {
	return m.out
}

// Compile compiles the body of f. Declarations without body are accepted if
// a builtin implements them, and otherwise fail when called.
func (m *Machine) Compile(f *ir.Func) error {
	if !f.HasBody() {
		return nil
	}

	cf := new(compiledFunc)
	cf.f = f
	cf.slots = make(map[string]int)
	for _, p := range f.Params() {
		cf.params = append(cf.params, cf.slot(p))
	}
	for _, v := range f.Locals() {
		cf.slot(v)
	}

	c := &compiler{m: m, cf: cf}
	body, err := c.compileStmt(f.Body())
	if err != nil {
		return err
	}
	cf.body = body
	m.funcs[f.Name()] = cf

	return nil
}

func (cf *compiledFunc) slot(v *ir.Variable) int {
	if i, ok := cf.slots[v.Name()]; ok {
		return i
	}
	i := len(cf.zeros)
	cf.slots[v.Name()] = i
	cf.zeros = append(cf.zeros, zeroValue(v.Type()))
	return i
}

// Run calls the named function with the given arguments and returns its
// result.
func (m *Machine) Run(entry string, args ...Value) (Value, error) {
	return m.call(entry, args, 0)
}

func (m *Machine) call(name string, args []Value, depth int) (Value, error) {
	if depth > m.maxCallDepth {
		return nil, fmt.Errorf("%w (limit %d) calling %s", ErrCallDepth, m.maxCallDepth, name)
	}
	cf, ok := m.funcs[name]
	if !ok {
		if builtin, ok := m.builtins[name]; ok {
			return builtin(m, args)
		}
		if f, err := m.program.Func(name); err == nil && !f.HasBody() {
			return nil, fmt.Errorf("%w: %s", ErrNoImplementation, name)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotCompiled, name)
	}
	if len(args) < len(cf.params) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrBadArgs, name, len(cf.params), len(args))
	}

	fr := &frame{
		vars:  append([]Value(nil), cf.zeros...),
		depth: depth,
	}
	for i, slot := range cf.params {
		fr.vars[slot] = args[i]
	}
	if err := cf.body(fr); err != nil {
		return nil, err
	}
	if !fr.returned {
		return zeroValue(cf.f.ReturnType()), nil
	}
	return fr.result, nil
}

func zeroValue(t ir.VarType) Value {
	switch t {
	case ir.VoidType:
		return nil
	case ir.BoolType:
		return false
	case ir.IntType:
		return int64(0)
	case ir.FloatType:
		return float64(0)
	case ir.StringType:
		return ""
	default:
		panic(fmt.Errorf("unknown VarType: %v", t))
	}
}
