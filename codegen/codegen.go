// Package codegen defines the boundary between the optimizer and code
// generators.
package codegen

import (
	"errors"
	"fmt"

	"github.com/c-coh/dead-code-opt/ir"
)

// ErrMalformedTree is returned for functions that violate the tree
// invariants code generators rely on.
var ErrMalformedTree = errors.New("malformed tree")

// Backend compiles functions, one at a time.
type Backend interface {
	Compile(f *ir.Func) error
}

// CompileProgram checks and compiles all functions of the program in
// declaration order. Declarations without body are handed to the backend as
// well. The first failing function stops compilation.
func CompileProgram(program *ir.Program, backend Backend) error {
	for _, f := range program.Funcs() {
		if err := Check(program, f); err != nil {
			return err
		}
		if err := backend.Compile(f); err != nil {
			return fmt.Errorf("compiling %s: %w", f.Name(), err)
		}
	}
	return nil
}

// Check verifies that f can be handed to a backend: all assignments store to
// declared variables, all variables are declared, all called functions exist
// with fitting argument counts, and return statements match the result type.
func Check(program *ir.Program, f *ir.Func) error {
	if !f.HasBody() {
		return nil
	}
	var errs []error
	malformed := func(pos ir.Pos, format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%v: %w in %s: %s", pos, ErrMalformedTree, f.Name(), fmt.Sprintf(format, args...)))
	}

	ir.WalkStmt(f.Body(), func(stmt ir.Stmt) {
		ret, ok := stmt.(*ir.ReturnStmt)
		if !ok {
			return
		}
		if f.ReturnType() == ir.VoidType && ret.Result() != nil {
			malformed(ret.Pos(), "void function returns a value")
		} else if f.ReturnType() != ir.VoidType && ret.Result() == nil {
			malformed(ret.Pos(), "missing return value")
		}
	})
	ir.WalkExprs(f.Body(), func(expr ir.Expr) {
		switch expr := expr.(type) {
		case *ir.AssignExpr:
			if !ir.IsLValue(expr.Left()) {
				malformed(expr.Pos(), "cannot assign to %s", expr.Left())
			}
		case *ir.VarExpr:
			if _, ok := f.VarType(expr.Name()); !ok {
				malformed(expr.Pos(), "undeclared variable %s", expr.Name())
			}
		case *ir.CallExpr:
			callee, err := program.Func(expr.Callee())
			if err != nil {
				malformed(expr.Pos(), "%v", err)
				return
			}
			n, want := len(expr.Args()), len(callee.Params())
			if n < want || (n > want && !callee.IsVariadic()) {
				malformed(expr.Pos(), "%s called with %d arguments, want %d", callee.Name(), n, want)
			}
		}
	})
	return errors.Join(errs...)
}
