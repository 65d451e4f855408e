package ir

import "fmt"

// Pos represents a position in the source file the tree was built from.
// The zero value means the position is unknown.
type Pos struct {
	Line int
	Col  int
}

// IsValid returns whether the position is known.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node represents an IR entity with a corresponding source position.
type Node struct {
	pos Pos
}

// Pos returns the source position of the node.
func (n *Node) Pos() Pos {
	return n.pos
}

// SetPos sets the source position of the node.
func (n *Node) SetPos(pos Pos) {
	n.pos = pos
}
