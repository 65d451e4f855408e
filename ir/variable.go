package ir

import (
	"fmt"
	"strings"
)

// Variable represents a declared parameter or local variable of a function.
type Variable struct {
	name string
	t    VarType
}

// NewVariable creates a new variable with the given name and type.
func NewVariable(name string, t VarType) *Variable {
	if name == "" {
		panic("tried to create Variable without name")
	}

	v := new(Variable)
	v.name = name
	v.t = t

	return v
}

// Name returns the name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Type returns the type of the variable.
func (v *Variable) Type() VarType {
	return v.t
}

func (v *Variable) String() string {
	return fmt.Sprintf("%v %s", v.t, v.name)
}

// VarExpr represents a read of a variable or, as the left side of an
// AssignExpr, the written location.
type VarExpr struct {
	name string

	Node
}

// NewVarExpr creates a new reference to the named variable.
func NewVarExpr(name string) *VarExpr {
	if name == "" {
		panic("tried to create VarExpr without name")
	}

	e := new(VarExpr)
	e.name = name

	return e
}

// Name returns the name of the referenced variable.
func (e *VarExpr) Name() string {
	return e.name
}

func (e *VarExpr) String() string {
	return e.name
}

func (e *VarExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}
