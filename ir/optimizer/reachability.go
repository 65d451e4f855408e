package optimizer

import (
	"fmt"

	"github.com/c-coh/dead-code-opt/ir"
)

// Truth is the result of statically evaluating a boolean condition.
type Truth int

const (
	// Unknown indicates that the value depends on run time state.
	Unknown Truth = iota
	// True indicates that the condition always holds.
	True
	// False indicates that the condition never holds.
	False
)

func (t Truth) String() string {
	switch t {
	case Unknown:
		return "unknown"
	case True:
		return "true"
	case False:
		return "false"
	default:
		panic(fmt.Errorf("unknown Truth: %d", int(t)))
	}
}

func truthOf(b bool) Truth {
	if b {
		return True
	}
	return False
}

// Not returns the logical negation; Unknown stays Unknown.
func (t Truth) Not() Truth {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// And is the three valued conjunction: False if either side is False, True
// if both are True, Unknown otherwise.
func (t Truth) And(u Truth) Truth {
	switch {
	case t == False || u == False:
		return False
	case t == True && u == True:
		return True
	default:
		return Unknown
	}
}

// Or is the three valued disjunction: True if either side is True, False if
// both are False, Unknown otherwise.
func (t Truth) Or(u Truth) Truth {
	switch {
	case t == True || u == True:
		return True
	case t == False && u == False:
		return False
	default:
		return Unknown
	}
}

// Eval statically evaluates a boolean expression. Only literals, negations
// and logical operators are folded; variables, comparisons and calls are
// Unknown. Expressions nested deeper than maxDepth fail with ErrTreeTooDeep.
func Eval(e ir.Expr, maxDepth int) (Truth, error) {
	return evalTruth(e, 0, maxDepth)
}

func evalTruth(e ir.Expr, depth, maxDepth int) (Truth, error) {
	if depth > maxDepth {
		return Unknown, fmt.Errorf("%v: %w (limit %d)", e.Pos(), ErrTreeTooDeep, maxDepth)
	}
	switch e := e.(type) {
	case *ir.BoolLit:
		return truthOf(e.Value()), nil
	case *ir.NegExpr:
		t, err := evalTruth(e.Operand(), depth+1, maxDepth)
		return t.Not(), err
	case *ir.LogicalExpr:
		x, err := evalTruth(e.X(), depth+1, maxDepth)
		if err != nil {
			return Unknown, err
		}
		y, err := evalTruth(e.Y(), depth+1, maxDepth)
		if err != nil {
			return Unknown, err
		}
		switch e.Op() {
		case ir.And:
			return x.And(y), nil
		case ir.Or:
			return x.Or(y), nil
		default:
			panic(fmt.Errorf("unknown LogicalOp: %v", e.Op()))
		}
	case *ir.VarExpr, *ir.CompareExpr, *ir.AssignExpr, *ir.CallExpr,
		*ir.IntLit, *ir.FloatLit, *ir.StringLit, *ir.ArithExpr, *ir.ConvExpr:
		return Unknown, nil
	default:
		panic(fmt.Errorf("unexpected expression type: %T", e))
	}
}

// FolderStats counts the changes made by a Folder.
type FolderStats struct {
	PrunedBranches int
	PrunedLoops    int
}

// Folder prunes branches and loop bodies whose condition is statically
// known never to hold.
type Folder struct {
	maxDepth int
	stats    FolderStats
}

// NewFolder creates a new folder that fails with ErrTreeTooDeep on trees
// nested deeper than maxDepth.
func NewFolder(maxDepth int) *Folder {
	f := new(Folder)
	f.maxDepth = maxDepth

	return f
}

// Stats returns the changes made so far.
func (f *Folder) Stats() FolderStats {
	return f.stats
}

// FoldUnreachable removes unreachable children of all if statements and
// loops in s.
func (f *Folder) FoldUnreachable(s ir.Stmt) error {
	return f.fold(s, 0)
}

func (f *Folder) fold(s ir.Stmt, depth int) error {
	if s == nil {
		return nil
	}
	if depth > f.maxDepth {
		return fmt.Errorf("%v: %w (limit %d)", s.Pos(), ErrTreeTooDeep, f.maxDepth)
	}

	switch s := s.(type) {
	case ir.Expr, *ir.ReturnStmt:
		return nil
	case *ir.Block:
		for _, stmt := range s.Stmts() {
			if err := f.fold(stmt, depth+1); err != nil {
				return err
			}
		}
		return nil
	case *ir.IfStmt:
		cond, err := evalTruth(s.Cond(), depth+1, f.maxDepth)
		if err != nil {
			return err
		}
		switch cond {
		case True:
			if s.Else() != nil {
				s.SetElse(nil)
				f.stats.PrunedBranches++
			}
			return f.fold(s.Then(), depth+1)
		case False:
			if s.Then() != nil {
				s.SetThen(nil)
				f.stats.PrunedBranches++
			}
			return f.fold(s.Else(), depth+1)
		default:
			if err := f.fold(s.Then(), depth+1); err != nil {
				return err
			}
			return f.fold(s.Else(), depth+1)
		}
	case *ir.WhileStmt:
		cond, err := evalTruth(s.Cond(), depth+1, f.maxDepth)
		if err != nil {
			return err
		}
		if cond == False {
			if s.Body() != nil {
				s.SetBody(nil)
				f.stats.PrunedLoops++
			}
			return nil
		}
		return f.fold(s.Body(), depth+1)
	case *ir.ForStmt:
		cond := True
		if s.Cond() != nil {
			var err error
			cond, err = evalTruth(s.Cond(), depth+1, f.maxDepth)
			if err != nil {
				return err
			}
		}
		if err := f.fold(s.Init(), depth+1); err != nil {
			return err
		}
		if cond == False {
			if s.Body() != nil || s.Increment() != nil {
				s.SetBody(nil)
				s.SetIncrement(nil)
				f.stats.PrunedLoops++
			}
			return nil
		}
		if err := f.fold(s.Body(), depth+1); err != nil {
			return err
		}
		return f.fold(s.Increment(), depth+1)
	default:
		panic(fmt.Errorf("unexpected statement type: %T", s))
	}
}
