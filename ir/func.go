package ir

import (
	"fmt"
	"strings"
)

// Func represents a function definition or an external declaration.
// Declarations have no body.
type Func struct {
	name       string
	returnType VarType
	params     []*Variable
	locals     []*Variable
	variadic   bool

	body *Block

	Node
}

// NewFunc creates a new function declaration without body.
func NewFunc(name string, returnType VarType, params []*Variable, variadic bool) *Func {
	if name == "" {
		panic("tried to create Func without name")
	}

	f := new(Func)
	f.name = name
	f.returnType = returnType
	f.params = params
	f.locals = nil
	f.variadic = variadic
	f.body = nil

	return f
}

// Name returns the name of the function.
func (f *Func) Name() string {
	return f.name
}

// ReturnType returns the result type of the function.
func (f *Func) ReturnType() VarType {
	return f.returnType
}

// Params returns the declared parameters in order.
func (f *Func) Params() []*Variable {
	return f.params
}

// IsVariadic returns whether the function accepts additional arguments
// after its declared parameters.
func (f *Func) IsVariadic() bool {
	return f.variadic
}

// Locals returns the local variables declared in the function body.
func (f *Func) Locals() []*Variable {
	return f.locals
}

// AddLocal declares a local variable of the function.
func (f *Func) AddLocal(v *Variable) {
	f.locals = append(f.locals, v)
}

// VarType looks up the type of a parameter or local variable.
func (f *Func) VarType(name string) (VarType, bool) {
	for _, v := range f.params {
		if v.name == name {
			return v.t, true
		}
	}
	for _, v := range f.locals {
		if v.name == name {
			return v.t, true
		}
	}
	return VoidType, false
}

// HasBody returns whether the function is defined rather than only
// declared.
func (f *Func) HasBody() bool {
	return f.body != nil
}

// Body returns the function body or nil for declarations.
func (f *Func) Body() *Block {
	return f.body
}

// SetBody sets the function body. Nil turns the function into a declaration.
func (f *Func) SetBody(body *Block) {
	f.body = body
}

// Clone returns a deep copy of the function, including its body.
func (f *Func) Clone() *Func {
	c := NewFunc(f.name, f.returnType, append([]*Variable(nil), f.params...), f.variadic)
	c.locals = append([]*Variable(nil), f.locals...)
	if f.body != nil {
		c.body = CloneStmt(f.body).(*Block)
	}
	c.pos = f.pos

	return c
}

// Signature returns the C like declaration of the function.
func (f *Func) Signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v %s(", f.returnType, f.name)
	for i, p := range f.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	if f.variadic {
		if len(f.params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString(")")
	return b.String()
}

func (f *Func) tree(b *strings.Builder, indent int) {
	writeIndent(b, indent)
	b.WriteString(f.Signature())
	if f.body == nil {
		b.WriteString(";")
		return
	}
	b.WriteString(" ")
	if len(f.locals) == 0 {
		f.body.tree(b, indent)
		return
	}
	b.WriteString("{\n")
	for _, v := range f.locals {
		writeIndent(b, indent+1)
		b.WriteString(v.String())
		b.WriteString(";\n")
	}
	for _, stmt := range f.body.stmts {
		writeIndent(b, indent+1)
		stmt.tree(b, indent+1)
		b.WriteString("\n")
	}
	writeIndent(b, indent)
	b.WriteString("}")
}

// Tree returns the C like source form of the function.
func (f *Func) Tree() string {
	var b strings.Builder
	f.tree(&b, 0)
	return b.String()
}

func (f *Func) String() string {
	return f.Signature()
}
