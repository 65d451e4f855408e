package ir

import (
	"fmt"
	"strings"
)

// ArithOp represents the operation of an ArithExpr.
type ArithOp int

const (
	// Add is the ArithOp of an addition.
	Add ArithOp = iota
	// Sub is the ArithOp of a subtraction.
	Sub
	// Mul is the ArithOp of a multiplication.
	Mul
	// Div is the ArithOp of a division.
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		panic(fmt.Errorf("unknown ArithOp: %d", op))
	}
}

// LogicalOp represents the operation of a LogicalExpr.
type LogicalOp int

const (
	// And is the LogicalOp of a conjunction.
	And LogicalOp = iota
	// Or is the LogicalOp of a disjunction.
	Or
)

func (op LogicalOp) String() string {
	switch op {
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		panic(fmt.Errorf("unknown LogicalOp: %d", op))
	}
}

// CompareOp represents the operation of a CompareExpr.
type CompareOp int

const (
	// Eq compares for equality.
	Eq CompareOp = iota
	// Ne compares for inequality.
	Ne
	// Lt compares for less than.
	Lt
	// Le compares for less than or equal.
	Le
	// Gt compares for greater than.
	Gt
	// Ge compares for greater than or equal.
	Ge
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		panic(fmt.Errorf("unknown CompareOp: %d", op))
	}
}

// ConvKind represents the conversion performed by a ConvExpr.
type ConvKind int

const (
	// Float2Int truncates a float to an int.
	Float2Int ConvKind = iota
	// Int2Float converts an int to a float.
	Int2Float
	// Int2Bool converts an int to a bool (non-zero is true).
	Int2Bool
	// Bool2Int converts a bool to an int (true is 1).
	Bool2Int
)

func (k ConvKind) String() string {
	switch k {
	case Float2Int:
		return "float2int"
	case Int2Float:
		return "int2float"
	case Int2Bool:
		return "int2bool"
	case Bool2Int:
		return "bool2int"
	default:
		panic(fmt.Errorf("unknown ConvKind: %d", k))
	}
}

// Result returns the type produced by the conversion.
func (k ConvKind) Result() VarType {
	switch k {
	case Float2Int, Bool2Int:
		return IntType
	case Int2Float:
		return FloatType
	case Int2Bool:
		return BoolType
	default:
		panic(fmt.Errorf("unknown ConvKind: %d", k))
	}
}

type binaryOperands struct {
	x, y Expr
}

func (o *binaryOperands) init(x, y Expr) {
	if x == nil || y == nil {
		panic("tried to create binary expression with nil operand")
	}
	o.x = x
	o.y = y
}

// X returns the first operand.
func (o *binaryOperands) X() Expr {
	return o.x
}

// Y returns the second operand.
func (o *binaryOperands) Y() Expr {
	return o.y
}

// SetX replaces the first operand.
func (o *binaryOperands) SetX(x Expr) {
	if x == nil {
		panic("tried to set nil operand")
	}
	o.x = x
}

// SetY replaces the second operand.
func (o *binaryOperands) SetY(y Expr) {
	if y == nil {
		panic("tried to set nil operand")
	}
	o.y = y
}

func (o *binaryOperands) format(op fmt.Stringer) string {
	return operandString(o.x) + " " + op.String() + " " + operandString(o.y)
}

// ArithExpr represents an arithmetic operation on two ints or two floats.
type ArithExpr struct {
	op ArithOp
	binaryOperands

	Node
}

// NewArithExpr creates a new arithmetic expression.
func NewArithExpr(op ArithOp, x, y Expr) *ArithExpr {
	e := new(ArithExpr)
	e.op = op
	e.init(x, y)

	return e
}

// Op returns the arithmetic operation.
func (e *ArithExpr) Op() ArithOp {
	return e.op
}

func (e *ArithExpr) String() string {
	return e.format(e.op)
}

func (e *ArithExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// LogicalExpr represents a short-circuit conjunction or disjunction.
type LogicalExpr struct {
	op LogicalOp
	binaryOperands

	Node
}

// NewLogicalExpr creates a new logical expression.
func NewLogicalExpr(op LogicalOp, x, y Expr) *LogicalExpr {
	e := new(LogicalExpr)
	e.op = op
	e.init(x, y)

	return e
}

// Op returns the logical operation.
func (e *LogicalExpr) Op() LogicalOp {
	return e.op
}

func (e *LogicalExpr) String() string {
	return e.format(e.op)
}

func (e *LogicalExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// CompareExpr represents a comparison of two ints or two floats.
type CompareExpr struct {
	op CompareOp
	binaryOperands

	Node
}

// NewCompareExpr creates a new comparison.
func NewCompareExpr(op CompareOp, x, y Expr) *CompareExpr {
	e := new(CompareExpr)
	e.op = op
	e.init(x, y)

	return e
}

// Op returns the comparison operation.
func (e *CompareExpr) Op() CompareOp {
	return e.op
}

func (e *CompareExpr) String() string {
	return e.format(e.op)
}

func (e *CompareExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// ConvExpr represents a conversion between basic types.
type ConvExpr struct {
	kind    ConvKind
	operand Expr

	Node
}

// NewConvExpr creates a new conversion of the operand.
func NewConvExpr(kind ConvKind, operand Expr) *ConvExpr {
	if operand == nil {
		panic("tried to create ConvExpr with nil operand")
	}

	e := new(ConvExpr)
	e.kind = kind
	e.operand = operand

	return e
}

// Kind returns the performed conversion.
func (e *ConvExpr) Kind() ConvKind {
	return e.kind
}

// Operand returns the converted expression.
func (e *ConvExpr) Operand() Expr {
	return e.operand
}

// SetOperand replaces the converted expression.
func (e *ConvExpr) SetOperand(x Expr) {
	if x == nil {
		panic("tried to set nil operand")
	}
	e.operand = x
}

func (e *ConvExpr) String() string {
	return e.kind.String() + "(" + e.operand.String() + ")"
}

func (e *ConvExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// NegExpr represents a negation: arithmetic negation of an int or float,
// logical negation of a bool.
type NegExpr struct {
	operand Expr

	Node
}

// NewNegExpr creates a new negation of the operand.
func NewNegExpr(operand Expr) *NegExpr {
	if operand == nil {
		panic("tried to create NegExpr with nil operand")
	}

	e := new(NegExpr)
	e.operand = operand

	return e
}

// Operand returns the negated expression.
func (e *NegExpr) Operand() Expr {
	return e.operand
}

// SetOperand replaces the negated expression.
func (e *NegExpr) SetOperand(x Expr) {
	if x == nil {
		panic("tried to set nil operand")
	}
	e.operand = x
}

func (e *NegExpr) String() string {
	if isBoolShaped(e.operand) {
		return "!" + operandString(e.operand)
	}
	return "-" + operandString(e.operand)
}

func (e *NegExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// isBoolShaped reports whether e is syntactically a boolean expression. It
// only affects how negations are printed.
func isBoolShaped(e Expr) bool {
	switch e := e.(type) {
	case *BoolLit, *LogicalExpr, *CompareExpr:
		return true
	case *ConvExpr:
		return e.kind == Int2Bool
	case *NegExpr:
		return isBoolShaped(e.operand)
	default:
		return false
	}
}

func operandString(e Expr) string {
	switch e.(type) {
	case *AssignExpr, *ArithExpr, *LogicalExpr, *CompareExpr:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}
