package optimizer

import (
	"fmt"

	"github.com/c-coh/dead-code-opt/ir"
)

// EliminatorStats counts the changes made by an Eliminator.
type EliminatorStats struct {
	// RemovedStores counts dead assignments removed from blocks or branches.
	RemovedStores int
	// SplicedStores counts dead assignments replaced by their right side.
	SplicedStores int
}

// Eliminator removes dead stores: assignments whose value is never read
// before the variable gets overwritten or the function returns. It walks
// statements backwards, tracking which variables are live.
type Eliminator struct {
	maxDepth int

	// discovery mode computes liveness without changing the tree. Loops use
	// it to find variables read by later iterations.
	discovery bool

	stats EliminatorStats
}

// NewEliminator creates a new eliminator that fails with ErrTreeTooDeep on
// trees nested deeper than maxDepth.
func NewEliminator(maxDepth int) *Eliminator {
	e := new(Eliminator)
	e.maxDepth = maxDepth
	e.discovery = false

	return e
}

// Stats returns the changes made so far.
func (e *Eliminator) Stats() EliminatorStats {
	return e.stats
}

// EliminateDeadStores removes all dead stores from a function body.
// Variables are considered dead at the end of the body. Every called
// function gets recorded in functions. The body gets processed repeatedly
// until a round changes nothing, so running it again is a no-op.
func (e *Eliminator) EliminateDeadStores(body *ir.Block, functions Liveness) error {
	for {
		before := e.stats
		if _, err := e.Eliminate(body, NewLiveness(), functions); err != nil {
			return err
		}
		// Reads inside a removed store no longer keep other stores alive.
		if e.stats == before {
			return nil
		}
	}
}

// Eliminate processes node given the variables live after it. On return,
// variables holds the variables live before node and functions contains all
// functions called inside node. The result is true if node itself is a dead
// assignment that the caller has to remove, or replace by its right side
// where an expression is required.
func (e *Eliminator) Eliminate(node ir.Stmt, variables, functions Liveness) (bool, error) {
	return e.eliminate(node, variables, functions, 0)
}

func (e *Eliminator) eliminate(node ir.Stmt, vars, funcs Liveness, depth int) (bool, error) {
	if depth > e.maxDepth {
		return false, fmt.Errorf("%v: %w (limit %d)", node.Pos(), ErrTreeTooDeep, e.maxDepth)
	}
	depth++

	switch node := node.(type) {
	case *ir.BoolLit, *ir.IntLit, *ir.FloatLit, *ir.StringLit:
		return false, nil

	case *ir.VarExpr:
		vars.MarkLive(node.Name())
		return false, nil

	case *ir.AssignExpr:
		left, ok := node.Left().(*ir.VarExpr)
		if !ok {
			return false, fmt.Errorf("%v: %w: %s", node.Pos(), ErrInvalidLValue, node.Left())
		}
		key := left.String()
		if !vars.IsLive(key) {
			return true, nil
		}
		vars.MarkDead(key)
		right, err := e.operand(node.Right(), vars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetRight(right)
		return false, nil

	case *ir.CallExpr:
		funcs.MarkLive(node.Callee())
		args := node.Args()
		for i := len(args) - 1; i >= 0; i-- {
			arg, err := e.operand(args[i], vars, funcs, depth)
			if err != nil {
				return false, err
			}
			node.SetArg(i, arg)
		}
		return false, nil

	case ir.BinaryExpr:
		y, err := e.operand(node.Y(), vars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetY(y)
		x, err := e.operand(node.X(), vars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetX(x)
		return false, nil

	case ir.UnaryExpr:
		x, err := e.operand(node.Operand(), vars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetOperand(x)
		return false, nil

	case *ir.ReturnStmt:
		// Nothing after a return executes.
		vars.Reset()
		if node.Result() == nil {
			return false, nil
		}
		result, err := e.operand(node.Result(), vars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetResult(result)
		return false, nil

	case *ir.Block:
		for i := node.Len() - 1; i >= 0; i-- {
			stmt, err := e.statement(node.Stmts()[i], vars, funcs, depth)
			if err != nil {
				return false, err
			}
			if stmt == nil {
				node.RemoveStmt(i)
			} else {
				node.SetStmt(i, stmt)
			}
		}
		return false, nil

	case *ir.IfStmt:
		elseVars := vars.Clone()
		elseBranch, err := e.statement(node.Else(), elseVars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetElse(elseBranch)
		thenBranch, err := e.statement(node.Then(), vars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetThen(thenBranch)
		Merge(vars, elseVars)
		cond, err := e.operand(node.Cond(), vars, funcs, depth)
		if err != nil {
			return false, err
		}
		node.SetCond(cond)
		return false, nil

	case *ir.WhileStmt:
		return false, e.eliminateWhile(node, vars, funcs, depth)

	case *ir.ForStmt:
		return false, e.eliminateFor(node, vars, funcs, depth)

	default:
		panic(fmt.Errorf("unexpected node type: %T", node))
	}
}

func (e *Eliminator) eliminateWhile(node *ir.WhileStmt, vars, funcs Liveness, depth int) error {
	exit := vars.Clone()
	iteration := func(live Liveness) error {
		body, err := e.statement(node.Body(), live, funcs, depth)
		if err != nil {
			return err
		}
		node.SetBody(body)
		// The condition runs after the body and when the loop is entered
		// or left.
		Merge(live, exit)
		cond, err := e.operand(node.Cond(), live, funcs, depth)
		if err != nil {
			return err
		}
		node.SetCond(cond)
		return nil
	}

	head, err := e.loopHead(exit, iteration)
	if err != nil {
		return err
	}
	if err := iteration(head); err != nil {
		return err
	}
	vars.Set(head)
	return nil
}

func (e *Eliminator) eliminateFor(node *ir.ForStmt, vars, funcs Liveness, depth int) error {
	exit := vars.Clone()
	iteration := func(live Liveness) error {
		increment, err := e.statement(node.Increment(), live, funcs, depth)
		if err != nil {
			return err
		}
		node.SetIncrement(increment)
		body, err := e.statement(node.Body(), live, funcs, depth)
		if err != nil {
			return err
		}
		node.SetBody(body)
		Merge(live, exit)
		if node.Cond() == nil {
			return nil
		}
		cond, err := e.operand(node.Cond(), live, funcs, depth)
		if err != nil {
			return err
		}
		node.SetCond(cond)
		return nil
	}

	head, err := e.loopHead(exit, iteration)
	if err != nil {
		return err
	}
	if err := iteration(head); err != nil {
		return err
	}
	init, err := e.statement(node.Init(), head, funcs, depth)
	if err != nil {
		return err
	}
	node.SetInit(init)
	vars.Set(head)
	return nil
}

// loopHead returns the variables live at the head of a loop, right before
// its condition gets evaluated. It repeats the iteration in discovery mode,
// starting from the variables live at loop exit, until no more variables
// become live. The result accounts for reads in all later iterations.
func (e *Eliminator) loopHead(exit Liveness, iteration func(live Liveness) error) (Liveness, error) {
	discovery := e.discovery
	e.discovery = true
	defer func() { e.discovery = discovery }()

	head := exit.Clone()
	for {
		live := head.Clone()
		if err := iteration(live); err != nil {
			return nil, err
		}
		if !Merge(head, live) {
			return head, nil
		}
	}
}

// statement processes a statement in a position where it can be removed
// entirely. It returns the statement to keep in its place or nil. A dead
// assignment disappears unless its right side has side effects, in which
// case the right side stays as an expression statement. If splicing inside
// the right side removed all of its side effects, nothing stays.
func (e *Eliminator) statement(stmt ir.Stmt, vars, funcs Liveness, depth int) (ir.Stmt, error) {
	if stmt == nil {
		return nil, nil
	}
	dead, err := e.eliminate(stmt, vars, funcs, depth)
	if err != nil || !dead {
		return stmt, err
	}
	assign := deadAssignment(stmt)
	if !hasSideEffects(assign.Right()) {
		if e.discovery {
			return stmt, nil
		}
		e.stats.RemovedStores++
		return nil, nil
	}
	replacement, err := e.statement(assign.Right(), vars, funcs, depth)
	if err != nil || e.discovery {
		return stmt, err
	}
	if expr, ok := replacement.(ir.Expr); ok && !hasSideEffects(expr) {
		e.stats.RemovedStores++
		return nil, nil
	}
	e.stats.SplicedStores++
	return replacement, nil
}

// operand processes an expression in a position that requires a value, like
// a condition or an argument. A dead assignment gets replaced by its right
// side.
func (e *Eliminator) operand(expr ir.Expr, vars, funcs Liveness, depth int) (ir.Expr, error) {
	dead, err := e.eliminate(expr, vars, funcs, depth)
	if err != nil || !dead {
		return expr, err
	}
	assign := deadAssignment(expr)
	replacement, err := e.operand(assign.Right(), vars, funcs, depth)
	if err != nil || e.discovery {
		return expr, err
	}
	e.stats.SplicedStores++
	return replacement, nil
}

func deadAssignment(stmt ir.Stmt) *ir.AssignExpr {
	assign, ok := stmt.(*ir.AssignExpr)
	if !ok {
		panic(fmt.Errorf("%T signaled removal, only assignments can be dead", stmt))
	}
	return assign
}

// hasSideEffects returns whether evaluating e can do more than produce a
// value: call a function or assign a variable.
func hasSideEffects(e ir.Expr) bool {
	switch e := e.(type) {
	case *ir.BoolLit, *ir.IntLit, *ir.FloatLit, *ir.StringLit, *ir.VarExpr:
		return false
	case *ir.AssignExpr, *ir.CallExpr:
		return true
	case ir.BinaryExpr:
		return hasSideEffects(e.X()) || hasSideEffects(e.Y())
	case ir.UnaryExpr:
		return hasSideEffects(e.Operand())
	default:
		panic(fmt.Errorf("unexpected expression type: %T", e))
	}
}
