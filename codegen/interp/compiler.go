package interp

import (
	"fmt"

	"github.com/c-coh/dead-code-opt/ir"
)

type compiler struct {
	m  *Machine
	cf *compiledFunc
}

func (c *compiler) errorf(pos ir.Pos, format string, args ...interface{}) error {
	return fmt.Errorf("%v: %s: %s", pos, c.cf.f.Name(), fmt.Sprintf(format, args...))
}

func noop(fr *frame) error {
	return nil
}

func (c *compiler) compileStmt(stmt ir.Stmt) (stmtFunc, error) {
	if stmt == nil {
		return noop, nil
	}

	switch stmt := stmt.(type) {
	case *ir.Block:
		stmts := make([]stmtFunc, 0, stmt.Len())
		for _, s := range stmt.Stmts() {
			fn, err := c.compileStmt(s)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, fn)
		}
		return func(fr *frame) error {
			for _, fn := range stmts {
				if err := fn(fr); err != nil || fr.returned {
					return err
				}
			}
			return nil
		}, nil

	case *ir.IfStmt:
		cond, err := c.compileCond(stmt.Cond())
		if err != nil {
			return nil, err
		}
		thenBranch, err := c.compileStmt(stmt.Then())
		if err != nil {
			return nil, err
		}
		elseBranch, err := c.compileStmt(stmt.Else())
		if err != nil {
			return nil, err
		}
		return func(fr *frame) error {
			ok, err := cond(fr)
			if err != nil {
				return err
			}
			if ok {
				return thenBranch(fr)
			}
			return elseBranch(fr)
		}, nil

	case *ir.WhileStmt:
		cond, err := c.compileCond(stmt.Cond())
		if err != nil {
			return nil, err
		}
		body, err := c.compileStmt(stmt.Body())
		if err != nil {
			return nil, err
		}
		return loop(noop, cond, noop, body), nil

	case *ir.ForStmt:
		init, err := c.compileStmt(stmt.Init())
		if err != nil {
			return nil, err
		}
		cond := func(fr *frame) (bool, error) { return true, nil }
		if stmt.Cond() != nil {
			cond, err = c.compileCond(stmt.Cond())
			if err != nil {
				return nil, err
			}
		}
		increment, err := c.compileStmt(stmt.Increment())
		if err != nil {
			return nil, err
		}
		body, err := c.compileStmt(stmt.Body())
		if err != nil {
			return nil, err
		}
		return loop(init, cond, increment, body), nil

	case *ir.ReturnStmt:
		if stmt.Result() == nil {
			return func(fr *frame) error {
				fr.returned = true
				return nil
			}, nil
		}
		result, err := c.compileExpr(stmt.Result())
		if err != nil {
			return nil, err
		}
		return func(fr *frame) error {
			v, err := result(fr)
			if err != nil {
				return err
			}
			fr.result = v
			fr.returned = true
			return nil
		}, nil

	case ir.Expr:
		expr, err := c.compileExpr(stmt)
		if err != nil {
			return nil, err
		}
		return func(fr *frame) error {
			_, err := expr(fr)
			return err
		}, nil

	default:
		panic(fmt.Errorf("unexpected statement type: %T", stmt))
	}
}

func loop(init stmtFunc, cond func(fr *frame) (bool, error), increment, body stmtFunc) stmtFunc {
	return func(fr *frame) error {
		if err := init(fr); err != nil {
			return err
		}
		for {
			ok, err := cond(fr)
			if err != nil || !ok {
				return err
			}
			if err := body(fr); err != nil || fr.returned {
				return err
			}
			if err := increment(fr); err != nil {
				return err
			}
		}
	}
}

func (c *compiler) compileCond(e ir.Expr) (func(fr *frame) (bool, error), error) {
	expr, err := c.compileExpr(e)
	if err != nil {
		return nil, err
	}
	pos := e.Pos()
	return func(fr *frame) (bool, error) {
		v, err := expr(fr)
		if err != nil {
			return false, err
		}
		return truthy(v, pos)
	}, nil
}

func (c *compiler) compileExpr(e ir.Expr) (exprFunc, error) {
	switch e := e.(type) {
	case *ir.BoolLit:
		v := e.Value()
		return func(fr *frame) (Value, error) { return v, nil }, nil
	case *ir.IntLit:
		v := e.Value()
		return func(fr *frame) (Value, error) { return v, nil }, nil
	case *ir.FloatLit:
		v := e.Value()
		return func(fr *frame) (Value, error) { return v, nil }, nil
	case *ir.StringLit:
		v := e.Value()
		return func(fr *frame) (Value, error) { return v, nil }, nil

	case *ir.VarExpr:
		slot, ok := c.cf.slots[e.Name()]
		if !ok {
			return nil, c.errorf(e.Pos(), "undeclared variable %s", e.Name())
		}
		return func(fr *frame) (Value, error) { return fr.vars[slot], nil }, nil

	case *ir.AssignExpr:
		left, ok := e.Left().(*ir.VarExpr)
		if !ok {
			return nil, c.errorf(e.Pos(), "cannot assign to %s", e.Left())
		}
		slot, ok := c.cf.slots[left.Name()]
		if !ok {
			return nil, c.errorf(e.Pos(), "undeclared variable %s", left.Name())
		}
		right, err := c.compileExpr(e.Right())
		if err != nil {
			return nil, err
		}
		return func(fr *frame) (Value, error) {
			v, err := right(fr)
			if err != nil {
				return nil, err
			}
			fr.vars[slot] = v
			return v, nil
		}, nil

	case *ir.ArithExpr, *ir.LogicalExpr, *ir.CompareExpr:
		binary := e.(ir.BinaryExpr)
		x, err := c.compileExpr(binary.X())
		if err != nil {
			return nil, err
		}
		y, err := c.compileExpr(binary.Y())
		if err != nil {
			return nil, err
		}
		op := binaryOp(e)
		pos := e.Pos()
		// Both operands are always evaluated, left to right.
		return func(fr *frame) (Value, error) {
			a, err := x(fr)
			if err != nil {
				return nil, err
			}
			b, err := y(fr)
			if err != nil {
				return nil, err
			}
			return op(a, b, pos)
		}, nil

	case *ir.ConvExpr:
		operand, err := c.compileExpr(e.Operand())
		if err != nil {
			return nil, err
		}
		kind := e.Kind()
		pos := e.Pos()
		return func(fr *frame) (Value, error) {
			v, err := operand(fr)
			if err != nil {
				return nil, err
			}
			return convert(kind, v, pos)
		}, nil

	case *ir.NegExpr:
		operand, err := c.compileExpr(e.Operand())
		if err != nil {
			return nil, err
		}
		pos := e.Pos()
		return func(fr *frame) (Value, error) {
			v, err := operand(fr)
			if err != nil {
				return nil, err
			}
			return negate(v, pos)
		}, nil

	case *ir.CallExpr:
		args := make([]exprFunc, 0, len(e.Args()))
		for _, arg := range e.Args() {
			fn, err := c.compileExpr(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, fn)
		}
		callee := e.Callee()
		m := c.m
		return func(fr *frame) (Value, error) {
			values := make([]Value, len(args))
			for i, arg := range args {
				v, err := arg(fr)
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
			return m.call(callee, values, fr.depth+1)
		}, nil

	default:
		panic(fmt.Errorf("unexpected expression type: %T", e))
	}
}
