package builder

import (
	"gopkg.in/yaml.v3"

	"github.com/c-coh/dead-code-opt/ir"
)

// kindOf splits a node of the form {kind: value} into its parts.
func (b *builder) kindOf(n *yaml.Node) (string, *yaml.Node, error) {
	if n.Kind == yaml.AliasNode {
		return b.kindOf(n.Alias)
	}
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, b.errorf(n, "expected a mapping with exactly one kind key")
	}
	return n.Content[0].Value, n.Content[1], nil
}

// fields decodes the mapping n into its keys. Unknown keys are reported.
func (b *builder) fields(n *yaml.Node, kind string, allowed ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, b.errorf(n, "%s expects a mapping", kind)
	}
	fields := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return nil, b.errorf(key, "%s has no field %q", kind, key.Value)
		}
		fields[key.Value] = value
	}
	return fields, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func (b *builder) processStmt(n *yaml.Node) (ir.Stmt, error) {
	kind, value, err := b.kindOf(n)
	if err != nil {
		return nil, err
	}

	var stmt ir.Stmt
	switch kind {
	case "block":
		stmt, err = b.processBlock(value)
	case "if":
		stmt, err = b.processIf(value)
	case "while":
		stmt, err = b.processWhile(value)
	case "for":
		stmt, err = b.processFor(value)
	case "return":
		stmt, err = b.processReturn(value)
	case "expr":
		stmt, err = b.processExpr(value)
	default:
		// Expressions can be used as statements directly.
		stmt, err = b.processExpr(n)
	}
	if err != nil {
		return nil, err
	}
	stmt.SetPos(pos(n))
	return stmt, nil
}

// processOptionalStmt returns nil for absent or null children.
func (b *builder) processOptionalStmt(n *yaml.Node) (ir.Stmt, error) {
	if isNull(n) {
		return nil, nil
	}
	return b.processStmt(n)
}

func (b *builder) processBlock(n *yaml.Node) (*ir.Block, error) {
	if isNull(n) {
		return ir.NewBlock(), nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, b.errorf(n, "block expects a list of statements")
	}
	stmts := make([]ir.Stmt, 0, len(n.Content))
	for _, child := range n.Content {
		stmt, err := b.processStmt(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ir.NewBlock(stmts...), nil
}

func (b *builder) processIf(n *yaml.Node) (*ir.IfStmt, error) {
	fields, err := b.fields(n, "if", "cond", "then", "else")
	if err != nil {
		return nil, err
	}
	cond, err := b.requiredExpr(n, fields, "if", "cond")
	if err != nil {
		return nil, err
	}
	thenBranch, err := b.processOptionalStmt(fields["then"])
	if err != nil {
		return nil, err
	}
	elseBranch, err := b.processOptionalStmt(fields["else"])
	if err != nil {
		return nil, err
	}
	return ir.NewIfStmt(cond, thenBranch, elseBranch), nil
}

func (b *builder) processWhile(n *yaml.Node) (*ir.WhileStmt, error) {
	fields, err := b.fields(n, "while", "cond", "body")
	if err != nil {
		return nil, err
	}
	cond, err := b.requiredExpr(n, fields, "while", "cond")
	if err != nil {
		return nil, err
	}
	body, err := b.processOptionalStmt(fields["body"])
	if err != nil {
		return nil, err
	}
	return ir.NewWhileStmt(cond, body), nil
}

func (b *builder) processFor(n *yaml.Node) (*ir.ForStmt, error) {
	fields, err := b.fields(n, "for", "init", "cond", "inc", "body")
	if err != nil {
		return nil, err
	}
	init, err := b.processOptionalStmt(fields["init"])
	if err != nil {
		return nil, err
	}
	var cond ir.Expr
	if !isNull(fields["cond"]) {
		cond, err = b.processExpr(fields["cond"])
		if err != nil {
			return nil, err
		}
	}
	increment, err := b.processOptionalStmt(fields["inc"])
	if err != nil {
		return nil, err
	}
	body, err := b.processOptionalStmt(fields["body"])
	if err != nil {
		return nil, err
	}
	return ir.NewForStmt(init, cond, increment, body), nil
}

func (b *builder) processReturn(n *yaml.Node) (*ir.ReturnStmt, error) {
	if isNull(n) {
		return ir.NewReturnStmt(nil), nil
	}
	result, err := b.processExpr(n)
	if err != nil {
		return nil, err
	}
	return ir.NewReturnStmt(result), nil
}

func (b *builder) requiredExpr(n *yaml.Node, fields map[string]*yaml.Node, kind, field string) (ir.Expr, error) {
	child, ok := fields[field]
	if !ok || isNull(child) {
		return nil, b.errorf(n, "%s requires %s", kind, field)
	}
	return b.processExpr(child)
}
