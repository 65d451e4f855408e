package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c-coh/dead-code-opt/ir"
)

func TestTruthTables(t *testing.T) {
	values := []Truth{Unknown, True, False}
	for _, x := range values {
		for _, y := range values {
			and := x.And(y)
			or := x.Or(y)
			switch {
			case x == False || y == False:
				assert.Equal(t, False, and, "%v && %v", x, y)
			case x == True && y == True:
				assert.Equal(t, True, and, "%v && %v", x, y)
			default:
				assert.Equal(t, Unknown, and, "%v && %v", x, y)
			}
			switch {
			case x == True || y == True:
				assert.Equal(t, True, or, "%v || %v", x, y)
			case x == False && y == False:
				assert.Equal(t, False, or, "%v || %v", x, y)
			default:
				assert.Equal(t, Unknown, or, "%v || %v", x, y)
			}
			assert.Equal(t, and, y.And(x))
			assert.Equal(t, or, y.Or(x))
		}
		assert.Equal(t, x, x.Not().Not())
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		expr ir.Expr
		want Truth
	}{
		{boolean(true), True},
		{boolean(false), False},
		{v("a"), Unknown},
		{not(boolean(false)), True},
		{not(v("a")), Unknown},
		{or(not(boolean(false)), not(boolean(false))), True},
		{and(boolean(false), boolean(false)), False},
		{or(boolean(false), boolean(false)), False},
		{and(not(boolean(false)), boolean(false)), False},
		{or(not(boolean(false)), boolean(false)), True},
		{or(v("a"), boolean(false)), Unknown},
		{and(v("a"), not(boolean(false))), Unknown},
		{and(v("a"), boolean(false)), False},
		{or(v("a"), boolean(true)), True},
		{lt(num(1), num(2)), Unknown},
		{ir.NewCallExpr("f"), Unknown},
		{set("a", boolean(true)), Unknown},
		{ir.NewConvExpr(ir.Int2Bool, num(1)), Unknown},
	}
	for _, test := range tests {
		got, err := Eval(test.expr, 10)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, test.expr.String())
	}
}

func TestEvalTooDeep(t *testing.T) {
	var e ir.Expr = boolean(false)
	for i := 0; i < 10; i++ {
		e = not(e)
	}
	got, err := Eval(e, 10)
	require.NoError(t, err)
	assert.Equal(t, False, got)

	got, err = Eval(e, 9)
	assert.ErrorIs(t, err, ErrTreeTooDeep)
	assert.Equal(t, Unknown, got)
}

func fold(t *testing.T, body *ir.Block) FolderStats {
	t.Helper()
	f := NewFolder(100)
	require.NoError(t, f.FoldUnreachable(body))
	return f.Stats()
}

func TestFoldUnreachable(t *testing.T) {
	reachable := func() ir.Stmt { return block(ir.NewCallExpr("reachable")) }
	unreachable := func() ir.Stmt { return block(ir.NewCallExpr("unreachable")) }

	body := block(
		ir.NewIfStmt(or(not(boolean(false)), not(boolean(false))), reachable(), unreachable()),
		ir.NewIfStmt(and(boolean(false), boolean(false)), unreachable(), reachable()),
		ir.NewIfStmt(v("a"), reachable(), reachable()),
		ir.NewWhileStmt(or(not(boolean(false)), boolean(false)), reachable()),
		ir.NewWhileStmt(and(not(boolean(false)), boolean(false)), unreachable()),
		ir.NewWhileStmt(or(v("a"), boolean(false)), reachable()),
		ir.NewForStmt(set("i", num(0)), and(not(boolean(false)), not(boolean(false))), set("i", add(v("i"), num(1))), reachable()),
		ir.NewForStmt(set("i", num(0)), or(boolean(false), boolean(false)), set("i", add(v("i"), num(1))), unreachable()),
		ir.NewForStmt(set("i", num(0)), and(v("a"), not(boolean(false))), set("i", add(v("i"), num(1))), reachable()),
		ir.NewReturnStmt(num(0)),
	)
	stats := fold(t, body)
	assert.Equal(t, FolderStats{PrunedBranches: 2, PrunedLoops: 2}, stats)

	want := `{
  if (!false || !false) {
    reachable();
  }
  if (false && false) ; else {
    reachable();
  }
  if (a) {
    reachable();
  } else {
    reachable();
  }
  while (!false || false) {
    reachable();
  }
  while (!false && false) ;
  while (a || false) {
    reachable();
  }
  for (i = 0; !false && !false; i = i + 1) {
    reachable();
  }
  for (i = 0; false || false; ) ;
  for (i = 0; a && !false; i = i + 1) {
    reachable();
  }
  return 0;
}`
	assert.Equal(t, want, ir.Tree(body))

	// A second pass finds nothing left to prune.
	assert.Equal(t, FolderStats{}, fold(t, body))
}

func TestFoldNestedStatements(t *testing.T) {
	inner := ir.NewIfStmt(boolean(false), block(ir.NewCallExpr("unreachable")), nil)
	body := block(
		ir.NewIfStmt(v("a"), block(inner), nil),
		ir.NewForStmt(ir.NewIfStmt(boolean(true), nil, set("i", num(1))), nil, nil,
			ir.NewWhileStmt(boolean(false), block())),
	)
	stats := fold(t, body)
	assert.Equal(t, FolderStats{PrunedBranches: 2, PrunedLoops: 1}, stats)
	assert.Nil(t, inner.Then())
}

func TestFoldTreeTooDeep(t *testing.T) {
	err := NewFolder(3).FoldUnreachable(nest(10))
	assert.ErrorIs(t, err, ErrTreeTooDeep)

	assert.NoError(t, NewFolder(3).FoldUnreachable(nil))
}
