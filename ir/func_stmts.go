package ir

import "strings"

// CallExpr represents a call of a named function.
type CallExpr struct {
	callee string
	args   []Expr

	Node
}

// NewCallExpr creates a new call of the named function with the given
// arguments.
func NewCallExpr(callee string, args ...Expr) *CallExpr {
	if callee == "" {
		panic("tried to create CallExpr without callee")
	}
	for _, arg := range args {
		if arg == nil {
			panic("tried to create CallExpr with nil argument")
		}
	}

	e := new(CallExpr)
	e.callee = callee
	e.args = args

	return e
}

// Callee returns the name of the called function.
func (e *CallExpr) Callee() string {
	return e.callee
}

// Args returns the call arguments in source order.
func (e *CallExpr) Args() []Expr {
	return e.args
}

// SetArg replaces the argument at the given index.
func (e *CallExpr) SetArg(index int, arg Expr) {
	if arg == nil {
		panic("tried to set nil CallExpr argument")
	}
	e.args[index] = arg
}

func (e *CallExpr) String() string {
	var b strings.Builder
	b.WriteString(e.callee)
	b.WriteString("(")
	for i, arg := range e.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteString(")")
	return b.String()
}

func (e *CallExpr) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// ReturnStmt represents a return statement with an optional result.
type ReturnStmt struct {
	result Expr

	Node
}

// NewReturnStmt creates a new return statement. The result may be nil.
func NewReturnStmt(result Expr) *ReturnStmt {
	s := new(ReturnStmt)
	s.result = result

	return s
}

// Result returns the returned expression, or nil.
func (s *ReturnStmt) Result() Expr {
	return s.result
}

// SetResult replaces the returned expression.
func (s *ReturnStmt) SetResult(result Expr) {
	s.result = result
}

func (s *ReturnStmt) tree(b *strings.Builder, indent int) {
	if s.result == nil {
		b.WriteString("return;")
		return
	}
	b.WriteString("return ")
	b.WriteString(s.result.String())
	b.WriteString(";")
}

func (s *ReturnStmt) String() string {
	return treeString(s)
}
