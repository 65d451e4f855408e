package ir

import "fmt"

// CloneStmt returns a deep copy of the given statement. Nil is copied to nil.
func CloneStmt(s Stmt) Stmt {
	switch s := s.(type) {
	case nil:
		return nil
	case Expr:
		return CloneExpr(s)
	case *Block:
		stmts := make([]Stmt, len(s.stmts))
		for i, stmt := range s.stmts {
			stmts[i] = CloneStmt(stmt)
		}
		c := NewBlock(stmts...)
		c.pos = s.pos
		return c
	case *IfStmt:
		c := NewIfStmt(CloneExpr(s.cond), CloneStmt(s.thenBranch), CloneStmt(s.elseBranch))
		c.pos = s.pos
		return c
	case *WhileStmt:
		c := NewWhileStmt(CloneExpr(s.cond), CloneStmt(s.body))
		c.pos = s.pos
		return c
	case *ForStmt:
		c := NewForStmt(CloneStmt(s.init), CloneExpr(s.cond), CloneStmt(s.increment), CloneStmt(s.body))
		c.pos = s.pos
		return c
	case *ReturnStmt:
		c := NewReturnStmt(CloneExpr(s.result))
		c.pos = s.pos
		return c
	default:
		panic(fmt.Errorf("unexpected statement type: %T", s))
	}
}

// CloneExpr returns a deep copy of the given expression. Nil is copied to
// nil.
func CloneExpr(e Expr) Expr {
	var c Expr
	switch e := e.(type) {
	case nil:
		return nil
	case *BoolLit:
		c = NewBoolLit(e.value)
	case *IntLit:
		c = NewIntLit(e.value)
	case *FloatLit:
		c = NewFloatLit(e.value)
	case *StringLit:
		c = NewStringLit(e.value)
	case *VarExpr:
		c = NewVarExpr(e.name)
	case *AssignExpr:
		c = NewAssignExpr(CloneExpr(e.left), CloneExpr(e.right))
	case *ArithExpr:
		c = NewArithExpr(e.op, CloneExpr(e.x), CloneExpr(e.y))
	case *LogicalExpr:
		c = NewLogicalExpr(e.op, CloneExpr(e.x), CloneExpr(e.y))
	case *CompareExpr:
		c = NewCompareExpr(e.op, CloneExpr(e.x), CloneExpr(e.y))
	case *ConvExpr:
		c = NewConvExpr(e.kind, CloneExpr(e.operand))
	case *NegExpr:
		c = NewNegExpr(CloneExpr(e.operand))
	case *CallExpr:
		args := make([]Expr, len(e.args))
		for i, arg := range e.args {
			args[i] = CloneExpr(arg)
		}
		c = NewCallExpr(e.callee, args...)
	default:
		panic(fmt.Errorf("unexpected expression type: %T", e))
	}
	c.SetPos(e.Pos())
	return c
}
