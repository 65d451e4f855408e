package ir

import "strings"

const indentUnit = "  "

func writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteString(indentUnit)
	}
}

func treeString(s Stmt) string {
	var b strings.Builder
	s.tree(&b, 0)
	return b.String()
}

// Tree returns the indented, C like source form of the given statement. Nil
// statements are written as an empty statement.
func Tree(s Stmt) string {
	if s == nil {
		return ";"
	}
	return treeString(s)
}

func writeExprStmt(b *strings.Builder, e Expr) {
	b.WriteString(e.String())
	b.WriteString(";")
}

// writeChild writes a branch or loop body following its header line.
func writeChild(b *strings.Builder, s Stmt, indent int) {
	if s == nil {
		b.WriteString(";")
		return
	}
	s.tree(b, indent)
}

// clauseString returns the form of a for loop init or increment clause.
func clauseString(s Stmt, indent int) string {
	switch s := s.(type) {
	case nil:
		return ""
	case Expr:
		return s.String()
	default:
		var b strings.Builder
		s.tree(&b, indent)
		return strings.TrimSuffix(b.String(), ";")
	}
}
