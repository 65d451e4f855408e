package ir

import "strings"

// AssignExpr represents an assignment. The assignment evaluates to the
// assigned value, so it can be nested inside other expressions.
type AssignExpr struct {
	left  Expr
	right Expr

	Node
}

// NewAssignExpr creates a new assignment of right to left.
func NewAssignExpr(left, right Expr) *AssignExpr {
	if left == nil || right == nil {
		panic("tried to create AssignExpr with nil left or right side")
	}

	e := new(AssignExpr)
	e.left = left
	e.right = right

	return e
}

// Left returns the assigned location.
func (e *AssignExpr) Left() Expr {
	return e.left
}

// Right returns the assigned value.
func (e *AssignExpr) Right() Expr {
	return e.right
}

// SetRight replaces the assigned value.
func (e *AssignExpr) SetRight(right Expr) {
	if right == nil {
		panic("tried to set nil AssignExpr right side")
	}
	e.right = right
}

// IsLValue returns whether the expression denotes an assignable location.
func IsLValue(e Expr) bool {
	_, ok := e.(*VarExpr)
	return ok
}

func (e *AssignExpr) String() string {
	return e.left.String() + " = " + e.right.String()
}

func (e *AssignExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}
