package ir

import (
	"fmt"
	"strings"
)

// Stmt is the interface describing all statements. Every Expr is also a
// Stmt, used as an expression statement.
type Stmt interface {
	fmt.Stringer

	Pos() Pos
	SetPos(pos Pos)

	tree(b *strings.Builder, indent int)
	stmt()
}

func (s *Block) stmt()      {}
func (s *IfStmt) stmt()     {}
func (s *WhileStmt) stmt()  {}
func (s *ForStmt) stmt()    {}
func (s *ReturnStmt) stmt() {}

func (e *BoolLit) stmt()     {}
func (e *IntLit) stmt()      {}
func (e *FloatLit) stmt()    {}
func (e *StringLit) stmt()   {}
func (e *VarExpr) stmt()     {}
func (e *AssignExpr) stmt()  {}
func (e *ArithExpr) stmt()   {}
func (e *LogicalExpr) stmt() {}
func (e *CompareExpr) stmt() {}
func (e *ConvExpr) stmt()    {}
func (e *NegExpr) stmt()     {}
func (e *CallExpr) stmt()    {}

// Expr is the interface describing all expressions.
type Expr interface {
	Stmt

	expr()
}

func (e *BoolLit) expr()     {}
func (e *IntLit) expr()      {}
func (e *FloatLit) expr()    {}
func (e *StringLit) expr()   {}
func (e *VarExpr) expr()     {}
func (e *AssignExpr) expr()  {}
func (e *ArithExpr) expr()   {}
func (e *LogicalExpr) expr() {}
func (e *CompareExpr) expr() {}
func (e *ConvExpr) expr()    {}
func (e *NegExpr) expr()     {}
func (e *CallExpr) expr()    {}

// BinaryExpr is implemented by all expressions with exactly two operands:
// ArithExpr, LogicalExpr and CompareExpr.
type BinaryExpr interface {
	Expr

	X() Expr
	Y() Expr
	SetX(x Expr)
	SetY(y Expr)
}

// UnaryExpr is implemented by all expressions with exactly one operand:
// ConvExpr and NegExpr.
type UnaryExpr interface {
	Expr

	Operand() Expr
	SetOperand(x Expr)
}
