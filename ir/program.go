package ir

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFunctionNotFound is returned when looking up a function name that was
	// never added to the program.
	ErrFunctionNotFound = errors.New("function not found")
	// ErrDuplicateFunc is returned when adding a function whose name is
	// already taken.
	ErrDuplicateFunc = errors.New("duplicate function")
)

// Program represents an entire compilation unit: its functions in
// declaration order.
type Program struct {
	name           string
	funcNames      []string
	funcNameLookup map[string]*Func
}

// NewProgram creates a new program with the given module name.
func NewProgram(name string) *Program {
	p := new(Program)
	p.name = name
	p.funcNames = nil
	p.funcNameLookup = make(map[string]*Func)

	return p
}

// Name returns the module name of the program.
func (p *Program) Name() string {
	return p.name
}

// FuncNames returns the names of all functions in declaration order.
func (p *Program) FuncNames() []string {
	return p.funcNames
}

// Funcs returns all functions in the program in declaration order.
func (p *Program) Funcs() []*Func {
	funcs := make([]*Func, len(p.funcNames))
	for i, name := range p.funcNames {
		funcs[i] = p.funcNameLookup[name]
	}
	return funcs
}

// Func returns the function with the given name.
func (p *Program) Func(name string) (*Func, error) {
	f, ok := p.funcNameLookup[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}
	return f, nil
}

// AddFunc adds the given function to the program.
func (p *Program) AddFunc(f *Func) error {
	if _, ok := p.funcNameLookup[f.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFunc, f.name)
	}
	p.funcNames = append(p.funcNames, f.name)
	p.funcNameLookup[f.name] = f
	return nil
}

// ReplaceFunc swaps the registered function with the same name for f,
// keeping its position in the declaration order.
func (p *Program) ReplaceFunc(f *Func) error {
	if _, ok := p.funcNameLookup[f.name]; !ok {
		return fmt.Errorf("%w: %s", ErrFunctionNotFound, f.name)
	}
	p.funcNameLookup[f.name] = f
	return nil
}

// Tree returns the C like source form of the whole program.
func (p *Program) Tree() string {
	var b strings.Builder
	fmt.Fprintf(&b, "// module %s\n", p.name)
	for _, name := range p.funcNames {
		p.funcNameLookup[name].tree(&b, 0)
		b.WriteString("\n")
	}
	return b.String()
}

func (p *Program) String() string {
	str := "prog " + p.name + "{\n"
	for _, name := range p.funcNames {
		str += "  " + p.funcNameLookup[name].String() + "\n"
	}
	str += "}"
	return str
}
