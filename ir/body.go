package ir

import (
	"fmt"
	"strings"
)

// Block represents an ordered sequence of statements, for example a function
// body or a braced branch body.
type Block struct {
	stmts []Stmt

	Node
}

// NewBlock creates a new block holding the given statements.
func NewBlock(stmts ...Stmt) *Block {
	for _, stmt := range stmts {
		if stmt == nil {
			panic("tried to create Block with nil statement")
		}
	}

	b := new(Block)
	b.stmts = stmts

	return b
}

// Stmts returns the statements inside the block.
func (b *Block) Stmts() []Stmt {
	return b.stmts
}

// AddStmt appends the given statement at the end of the block.
func (b *Block) AddStmt(stmt Stmt) {
	if stmt == nil {
		panic("tried to add nil statement to Block")
	}
	b.stmts = append(b.stmts, stmt)
}

// SetStmts replaces all statements in the block with the given, new
// statements.
func (b *Block) SetStmts(stmts []Stmt) {
	b.stmts = stmts
}

// SetStmt replaces the statement at the given index.
func (b *Block) SetStmt(index int, stmt Stmt) {
	if stmt == nil {
		panic("tried to set nil statement in Block")
	}
	b.stmts[index] = stmt
}

// RemoveStmt removes the statement at the given index, keeping the order of
// the remaining statements.
func (b *Block) RemoveStmt(index int) {
	b.stmts = append(b.stmts[:index], b.stmts[index+1:]...)
}

// Len returns the number of statements in the block.
func (b *Block) Len() int {
	return len(b.stmts)
}

// WalkStmts calls the given visitor function for every statement in the
// block, including statements contained in other statements, for example
// loops. Expressions are only visited in statement position.
func (b *Block) WalkStmts(visitFunc func(stmt Stmt)) {
	for _, stmt := range b.stmts {
		WalkStmt(stmt, visitFunc)
	}
}

// WalkStmt calls the given visitor function for stmt and every statement it
// contains. Nil statements are skipped.
func WalkStmt(stmt Stmt, visitFunc func(stmt Stmt)) {
	if stmt == nil {
		return
	}
	visitFunc(stmt)

	switch stmt := stmt.(type) {
	case Expr, *ReturnStmt:
		return
	case *Block:
		stmt.WalkStmts(visitFunc)
	case *IfStmt:
		WalkStmt(stmt.Then(), visitFunc)
		WalkStmt(stmt.Else(), visitFunc)
	case *WhileStmt:
		WalkStmt(stmt.Body(), visitFunc)
	case *ForStmt:
		WalkStmt(stmt.Init(), visitFunc)
		WalkStmt(stmt.Body(), visitFunc)
		WalkStmt(stmt.Increment(), visitFunc)
	default:
		panic(fmt.Errorf("WalkStmt encountered unknown Stmt: %T", stmt))
	}
}

func (b *Block) tree(sb *strings.Builder, indent int) {
	if len(b.stmts) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{\n")
	for _, stmt := range b.stmts {
		writeIndent(sb, indent+1)
		stmt.tree(sb, indent+1)
		sb.WriteString("\n")
	}
	writeIndent(sb, indent)
	sb.WriteString("}")
}

func (b *Block) String() string {
	return treeString(b)
}

// WalkExprs calls the given visitor function for every expression contained
// in stmt, including conditions, operands and arguments. Operands are visited
// after the expression containing them.
func WalkExprs(stmt Stmt, visitFunc func(expr Expr)) {
	WalkStmt(stmt, func(stmt Stmt) {
		switch stmt := stmt.(type) {
		case Expr:
			walkExpr(stmt, visitFunc)
		case *ReturnStmt:
			if stmt.Result() != nil {
				walkExpr(stmt.Result(), visitFunc)
			}
		case *IfStmt:
			walkExpr(stmt.Cond(), visitFunc)
		case *WhileStmt:
			walkExpr(stmt.Cond(), visitFunc)
		case *ForStmt:
			if stmt.Cond() != nil {
				walkExpr(stmt.Cond(), visitFunc)
			}
		}
	})
}

func walkExpr(expr Expr, visitFunc func(expr Expr)) {
	visitFunc(expr)

	switch expr := expr.(type) {
	case *BoolLit, *IntLit, *FloatLit, *StringLit, *VarExpr:
	case *AssignExpr:
		walkExpr(expr.Left(), visitFunc)
		walkExpr(expr.Right(), visitFunc)
	case *CallExpr:
		for _, arg := range expr.Args() {
			walkExpr(arg, visitFunc)
		}
	case BinaryExpr:
		walkExpr(expr.X(), visitFunc)
		walkExpr(expr.Y(), visitFunc)
	case UnaryExpr:
		walkExpr(expr.Operand(), visitFunc)
	default:
		panic(fmt.Errorf("walkExpr encountered unknown Expr: %T", expr))
	}
}
