package optimizer

import (
	"github.com/c-coh/dead-code-opt/ir"
)

func v(name string) *ir.VarExpr {
	return ir.NewVarExpr(name)
}

func num(n int64) *ir.IntLit {
	return ir.NewIntLit(n)
}

func boolean(b bool) *ir.BoolLit {
	return ir.NewBoolLit(b)
}

func set(name string, value ir.Expr) *ir.AssignExpr {
	return ir.NewAssignExpr(v(name), value)
}

func not(e ir.Expr) *ir.NegExpr {
	return ir.NewNegExpr(e)
}

func and(x, y ir.Expr) *ir.LogicalExpr {
	return ir.NewLogicalExpr(ir.And, x, y)
}

func or(x, y ir.Expr) *ir.LogicalExpr {
	return ir.NewLogicalExpr(ir.Or, x, y)
}

func lt(x, y ir.Expr) *ir.CompareExpr {
	return ir.NewCompareExpr(ir.Lt, x, y)
}

func add(x, y ir.Expr) *ir.ArithExpr {
	return ir.NewArithExpr(ir.Add, x, y)
}

func printf(args ...ir.Expr) *ir.CallExpr {
	return ir.NewCallExpr("printf", append([]ir.Expr{ir.NewStringLit("%d")}, args...)...)
}

func block(stmts ...ir.Stmt) *ir.Block {
	return ir.NewBlock(stmts...)
}

// countingLoop returns for (i = 0; i < x; i = i + 1) body.
func countingLoop(body ir.Stmt) *ir.ForStmt {
	return ir.NewForStmt(set("i", num(0)), lt(v("i"), v("x")), set("i", add(v("i"), num(1))), body)
}

// nest returns a block nested depth times around a single assignment.
func nest(depth int) *ir.Block {
	b := block(set("a", num(1)))
	for i := 0; i < depth; i++ {
		b = block(b)
	}
	return b
}
