package ir

import (
	"errors"
	"fmt"
)

// VarType represents the type of a variable, parameter, or expression.
type VarType int

const (
	// VoidType is the return type of functions without result.
	VoidType VarType = iota
	// BoolType is the type of booleans.
	BoolType
	// IntType is the type of signed 64 bit integers.
	IntType
	// FloatType is the type of 64 bit floating point numbers.
	FloatType
	// StringType is the type of string constants.
	StringType
)

func (t VarType) String() string {
	switch t {
	case VoidType:
		return "void"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	default:
		panic(fmt.Errorf("unknown VarType: %d", int(t)))
	}
}

// ParseVarType returns the VarType with the given name.
func ParseVarType(name string) (VarType, error) {
	switch name {
	case "void":
		return VoidType, nil
	case "bool":
		return BoolType, nil
	case "int":
		return IntType, nil
	case "float":
		return FloatType, nil
	case "string":
		return StringType, nil
	default:
		return VoidType, fmt.Errorf("unknown type %q", name)
	}
}

// ErrUnknownVariable is returned by type queries for variables that are
// neither parameters nor locals of the function.
var ErrUnknownVariable = errors.New("unknown variable")

// TypeOf returns the type the given expression evaluates to inside f.
// Calls are resolved through the program.
func (p *Program) TypeOf(f *Func, e Expr) (VarType, error) {
	switch e := e.(type) {
	case *BoolLit:
		return BoolType, nil
	case *IntLit:
		return IntType, nil
	case *FloatLit:
		return FloatType, nil
	case *StringLit:
		return StringType, nil
	case *VarExpr:
		t, ok := f.VarType(e.Name())
		if !ok {
			return VoidType, fmt.Errorf("%v: %w %q in function %s", e.Pos(), ErrUnknownVariable, e.Name(), f.Name())
		}
		return t, nil
	case *AssignExpr:
		return p.TypeOf(f, e.Left())
	case *ArithExpr:
		x, err := p.TypeOf(f, e.X())
		if err != nil {
			return VoidType, err
		}
		y, err := p.TypeOf(f, e.Y())
		if err != nil {
			return VoidType, err
		}
		if x == FloatType || y == FloatType {
			return FloatType, nil
		}
		return x, nil
	case *LogicalExpr, *CompareExpr:
		return BoolType, nil
	case *ConvExpr:
		return e.Kind().Result(), nil
	case *NegExpr:
		return p.TypeOf(f, e.Operand())
	case *CallExpr:
		callee, err := p.Func(e.Callee())
		if err != nil {
			return VoidType, err
		}
		return callee.ReturnType(), nil
	default:
		panic(fmt.Errorf("unexpected expression type: %T", e))
	}
}
