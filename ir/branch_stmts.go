package ir

import "strings"

// IfStmt represents an if statement with optional then and else branches.
// A nil branch does nothing.
type IfStmt struct {
	cond       Expr
	thenBranch Stmt
	elseBranch Stmt

	Node
}

// NewIfStmt creates a new if statement. The condition is required, both
// branches may be nil.
func NewIfStmt(cond Expr, thenBranch, elseBranch Stmt) *IfStmt {
	if cond == nil {
		panic("tried to create IfStmt with nil condition")
	}

	s := new(IfStmt)
	s.cond = cond
	s.thenBranch = thenBranch
	s.elseBranch = elseBranch

	return s
}

// Cond returns the condition of the if statement.
func (s *IfStmt) Cond() Expr {
	return s.cond
}

// SetCond replaces the condition of the if statement.
func (s *IfStmt) SetCond(cond Expr) {
	if cond == nil {
		panic("tried to remove IfStmt condition")
	}
	s.cond = cond
}

// Then returns the statement executed if the condition holds, or nil.
func (s *IfStmt) Then() Stmt {
	return s.thenBranch
}

// SetThen replaces the then branch. Nil removes the branch.
func (s *IfStmt) SetThen(thenBranch Stmt) {
	s.thenBranch = thenBranch
}

// Else returns the statement executed if the condition does not hold, or
// nil.
func (s *IfStmt) Else() Stmt {
	return s.elseBranch
}

// SetElse replaces the else branch. Nil removes the branch.
func (s *IfStmt) SetElse(elseBranch Stmt) {
	s.elseBranch = elseBranch
}

func (s *IfStmt) tree(b *strings.Builder, indent int) {
	b.WriteString("if (")
	b.WriteString(s.cond.String())
	b.WriteString(") ")
	writeChild(b, s.thenBranch, indent)
	if s.elseBranch != nil {
		b.WriteString(" else ")
		writeChild(b, s.elseBranch, indent)
	}
}

func (s *IfStmt) String() string {
	return treeString(s)
}

// WhileStmt represents a conditional loop checking its condition before
// every iteration.
type WhileStmt struct {
	cond Expr
	body Stmt

	Node
}

// NewWhileStmt creates a new while loop. The condition is required, the
// body may be nil.
func NewWhileStmt(cond Expr, body Stmt) *WhileStmt {
	if cond == nil {
		panic("tried to create WhileStmt with nil condition")
	}

	s := new(WhileStmt)
	s.cond = cond
	s.body = body

	return s
}

// Cond returns the loop condition.
func (s *WhileStmt) Cond() Expr {
	return s.cond
}

// SetCond replaces the loop condition.
func (s *WhileStmt) SetCond(cond Expr) {
	if cond == nil {
		panic("tried to remove WhileStmt condition")
	}
	s.cond = cond
}

// Body returns the loop body, or nil.
func (s *WhileStmt) Body() Stmt {
	return s.body
}

// SetBody replaces the loop body. Nil removes the body.
func (s *WhileStmt) SetBody(body Stmt) {
	s.body = body
}

func (s *WhileStmt) tree(b *strings.Builder, indent int) {
	b.WriteString("while (")
	b.WriteString(s.cond.String())
	b.WriteString(") ")
	writeChild(b, s.body, indent)
}

func (s *WhileStmt) String() string {
	return treeString(s)
}

// ForStmt represents a C style for loop. All four parts are optional; a
// missing condition makes the loop run until it returns.
type ForStmt struct {
	init      Stmt
	cond      Expr
	increment Stmt
	body      Stmt

	Node
}

// NewForStmt creates a new for loop.
func NewForStmt(init Stmt, cond Expr, increment Stmt, body Stmt) *ForStmt {
	s := new(ForStmt)
	s.init = init
	s.cond = cond
	s.increment = increment
	s.body = body

	return s
}

// Init returns the statement executed once before the loop, or nil.
func (s *ForStmt) Init() Stmt {
	return s.init
}

// SetInit replaces the init statement. Nil removes it.
func (s *ForStmt) SetInit(init Stmt) {
	s.init = init
}

// Cond returns the loop condition, or nil for an unconditional loop.
func (s *ForStmt) Cond() Expr {
	return s.cond
}

// SetCond replaces the loop condition.
func (s *ForStmt) SetCond(cond Expr) {
	s.cond = cond
}

// Increment returns the statement executed after every iteration, or nil.
func (s *ForStmt) Increment() Stmt {
	return s.increment
}

// SetIncrement replaces the increment statement. Nil removes it.
func (s *ForStmt) SetIncrement(increment Stmt) {
	s.increment = increment
}

// Body returns the loop body, or nil.
func (s *ForStmt) Body() Stmt {
	return s.body
}

// SetBody replaces the loop body. Nil removes the body.
func (s *ForStmt) SetBody(body Stmt) {
	s.body = body
}

// IsInfinite returns whether the loop has no condition.
func (s *ForStmt) IsInfinite() bool {
	return s.cond == nil
}

func (s *ForStmt) tree(b *strings.Builder, indent int) {
	b.WriteString("for (")
	b.WriteString(clauseString(s.init, indent))
	b.WriteString("; ")
	if s.cond != nil {
		b.WriteString(s.cond.String())
	}
	b.WriteString("; ")
	b.WriteString(clauseString(s.increment, indent))
	b.WriteString(") ")
	writeChild(b, s.body, indent)
}

func (s *ForStmt) String() string {
	return treeString(s)
}
