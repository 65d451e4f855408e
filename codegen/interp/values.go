package interp

import (
	"fmt"

	"github.com/c-coh/dead-code-opt/ir"
)

// TypeError is returned when an operation is applied to values it does not
// support.
type TypeError struct {
	Pos ir.Pos
	Op  string
	X   Value
	Y   Value
}

func (e *TypeError) Error() string {
	if e.Y == nil {
		return fmt.Sprintf("%v: invalid operand for %s: %T", e.Pos, e.Op, e.X)
	}
	return fmt.Sprintf("%v: invalid operands for %s: %T, %T", e.Pos, e.Op, e.X, e.Y)
}

type binaryFunc func(x, y Value, pos ir.Pos) (Value, error)

func binaryOp(e ir.Expr) binaryFunc {
	switch e := e.(type) {
	case *ir.ArithExpr:
		op := e.Op()
		return func(x, y Value, pos ir.Pos) (Value, error) {
			return arith(op, x, y, pos)
		}
	case *ir.LogicalExpr:
		op := e.Op()
		return func(x, y Value, pos ir.Pos) (Value, error) {
			a, ok1 := x.(bool)
			b, ok2 := y.(bool)
			if !ok1 || !ok2 {
				return nil, &TypeError{Pos: pos, Op: op.String(), X: x, Y: y}
			}
			if op == ir.And {
				return a && b, nil
			}
			return a || b, nil
		}
	case *ir.CompareExpr:
		op := e.Op()
		return func(x, y Value, pos ir.Pos) (Value, error) {
			return compare(op, x, y, pos)
		}
	default:
		panic(fmt.Errorf("unexpected binary expression type: %T", e))
	}
}

// numbers returns both operands as int64 or, if either is a float, both as
// float64.
func numbers(x, y Value) (isFloat bool, a, b int64, fa, fb float64, ok bool) {
	switch x := x.(type) {
	case int64:
		switch y := y.(type) {
		case int64:
			return false, x, y, 0, 0, true
		case float64:
			return true, 0, 0, float64(x), y, true
		}
	case float64:
		switch y := y.(type) {
		case int64:
			return true, 0, 0, x, float64(y), true
		case float64:
			return true, 0, 0, x, y, true
		}
	}
	return false, 0, 0, 0, 0, false
}

func arith(op ir.ArithOp, x, y Value, pos ir.Pos) (Value, error) {
	isFloat, a, b, fa, fb, ok := numbers(x, y)
	if !ok {
		return nil, &TypeError{Pos: pos, Op: op.String(), X: x, Y: y}
	}
	if isFloat {
		switch op {
		case ir.Add:
			return fa + fb, nil
		case ir.Sub:
			return fa - fb, nil
		case ir.Mul:
			return fa * fb, nil
		case ir.Div:
			return fa / fb, nil
		}
	} else {
		switch op {
		case ir.Add:
			return a + b, nil
		case ir.Sub:
			return a - b, nil
		case ir.Mul:
			return a * b, nil
		case ir.Div:
			if b == 0 {
				return nil, fmt.Errorf("%v: %w", pos, ErrDivisionByZero)
			}
			return a / b, nil
		}
	}
	panic(fmt.Errorf("unknown ArithOp: %v", op))
}

func compare(op ir.CompareOp, x, y Value, pos ir.Pos) (Value, error) {
	var c int
	if isFloat, a, b, fa, fb, ok := numbers(x, y); ok {
		if isFloat {
			c = order(fa, fb)
		} else {
			c = order(a, b)
		}
	} else if a, ok := x.(string); ok {
		b, ok := y.(string)
		if !ok {
			return nil, &TypeError{Pos: pos, Op: op.String(), X: x, Y: y}
		}
		c = order(a, b)
	} else if a, ok := x.(bool); ok {
		b, ok := y.(bool)
		if !ok || (op != ir.Eq && op != ir.Ne) {
			return nil, &TypeError{Pos: pos, Op: op.String(), X: x, Y: y}
		}
		if a != b {
			c = 1
		}
	} else {
		return nil, &TypeError{Pos: pos, Op: op.String(), X: x, Y: y}
	}

	switch op {
	case ir.Eq:
		return c == 0, nil
	case ir.Ne:
		return c != 0, nil
	case ir.Lt:
		return c < 0, nil
	case ir.Le:
		return c <= 0, nil
	case ir.Gt:
		return c > 0, nil
	case ir.Ge:
		return c >= 0, nil
	default:
		panic(fmt.Errorf("unknown CompareOp: %v", op))
	}
}

func order[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func convert(kind ir.ConvKind, v Value, pos ir.Pos) (Value, error) {
	switch kind {
	case ir.Float2Int:
		if f, ok := v.(float64); ok {
			return int64(f), nil
		}
	case ir.Int2Float:
		if i, ok := v.(int64); ok {
			return float64(i), nil
		}
	case ir.Int2Bool:
		if i, ok := v.(int64); ok {
			return i != 0, nil
		}
	case ir.Bool2Int:
		if b, ok := v.(bool); ok {
			if b {
				return int64(1), nil
			}
			return int64(0), nil
		}
	default:
		panic(fmt.Errorf("unknown ConvKind: %v", kind))
	}
	return nil, &TypeError{Pos: pos, Op: kind.String(), X: v}
}

func negate(v Value, pos ir.Pos) (Value, error) {
	switch v := v.(type) {
	case int64:
		return -v, nil
	case float64:
		return -v, nil
	case bool:
		return !v, nil
	default:
		return nil, &TypeError{Pos: pos, Op: "negation", X: v}
	}
}

func truthy(v Value, pos ir.Pos) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	default:
		return false, &TypeError{Pos: pos, Op: "condition", X: v}
	}
}
