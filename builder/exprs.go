package builder

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/c-coh/dead-code-opt/ir"
)

var arithOps = map[string]ir.ArithOp{
	"add": ir.Add,
	"sub": ir.Sub,
	"mul": ir.Mul,
	"div": ir.Div,
}

var logicalOps = map[string]ir.LogicalOp{
	"and": ir.And,
	"or":  ir.Or,
}

var compareOps = map[string]ir.CompareOp{
	"eq": ir.Eq,
	"ne": ir.Ne,
	"lt": ir.Lt,
	"le": ir.Le,
	"gt": ir.Gt,
	"ge": ir.Ge,
}

var convKinds = map[string]ir.ConvKind{
	"float2int": ir.Float2Int,
	"int2float": ir.Int2Float,
	"int2bool":  ir.Int2Bool,
	"bool2int":  ir.Bool2Int,
}

func (b *builder) processExpr(n *yaml.Node) (ir.Expr, error) {
	kind, value, err := b.kindOf(n)
	if err != nil {
		return nil, err
	}

	var expr ir.Expr
	if op, ok := arithOps[kind]; ok {
		x, y, err := b.processOperands(value, kind)
		if err != nil {
			return nil, err
		}
		expr = ir.NewArithExpr(op, x, y)
	} else if op, ok := logicalOps[kind]; ok {
		x, y, err := b.processOperands(value, kind)
		if err != nil {
			return nil, err
		}
		expr = ir.NewLogicalExpr(op, x, y)
	} else if op, ok := compareOps[kind]; ok {
		x, y, err := b.processOperands(value, kind)
		if err != nil {
			return nil, err
		}
		expr = ir.NewCompareExpr(op, x, y)
	} else if conv, ok := convKinds[kind]; ok {
		operand, err := b.processExpr(value)
		if err != nil {
			return nil, err
		}
		expr = ir.NewConvExpr(conv, operand)
	} else {
		expr, err = b.processLeafExpr(kind, value)
		if err != nil {
			return nil, err
		}
	}
	expr.SetPos(pos(n))
	return expr, nil
}

func (b *builder) processLeafExpr(kind string, value *yaml.Node) (ir.Expr, error) {
	switch kind {
	case "bool":
		var v bool
		if err := value.Decode(&v); err != nil {
			return nil, b.errorf(value, "bool literal: %v", err)
		}
		return ir.NewBoolLit(v), nil
	case "int":
		v, err := strconv.ParseInt(value.Value, 0, 64)
		if err != nil || value.Kind != yaml.ScalarNode {
			return nil, b.errorf(value, "invalid int literal %q", value.Value)
		}
		return ir.NewIntLit(v), nil
	case "float":
		v, err := strconv.ParseFloat(value.Value, 64)
		if err != nil || value.Kind != yaml.ScalarNode {
			return nil, b.errorf(value, "invalid float literal %q", value.Value)
		}
		return ir.NewFloatLit(v), nil
	case "string":
		if value.Kind != yaml.ScalarNode {
			return nil, b.errorf(value, "string literal expects a scalar")
		}
		return ir.NewStringLit(value.Value), nil
	case "var":
		if value.Kind != yaml.ScalarNode || value.Value == "" {
			return nil, b.errorf(value, "var expects a variable name")
		}
		return ir.NewVarExpr(value.Value), nil
	case "assign":
		left, right, err := b.processOperands(value, kind)
		if err != nil {
			return nil, err
		}
		if !ir.IsLValue(left) {
			return nil, b.errorf(value, "cannot assign to %s", left)
		}
		return ir.NewAssignExpr(left, right), nil
	case "neg", "not":
		operand, err := b.processExpr(value)
		if err != nil {
			return nil, err
		}
		return ir.NewNegExpr(operand), nil
	case "call":
		return b.processCall(value)
	default:
		return nil, b.errorf(value, "unknown node kind %q", kind)
	}
}

func (b *builder) processOperands(n *yaml.Node, kind string) (ir.Expr, ir.Expr, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return nil, nil, b.errorf(n, "%s expects a list of two operands", kind)
	}
	x, err := b.processExpr(n.Content[0])
	if err != nil {
		return nil, nil, err
	}
	y, err := b.processExpr(n.Content[1])
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func (b *builder) processCall(n *yaml.Node) (*ir.CallExpr, error) {
	fields, err := b.fields(n, "call", "name", "args")
	if err != nil {
		return nil, err
	}
	name, ok := fields["name"]
	if !ok || name.Kind != yaml.ScalarNode || name.Value == "" {
		return nil, b.errorf(n, "call requires name")
	}
	var args []ir.Expr
	if argsNode, ok := fields["args"]; ok && !isNull(argsNode) {
		if argsNode.Kind != yaml.SequenceNode {
			return nil, b.errorf(argsNode, "call args must be a list")
		}
		for _, argNode := range argsNode.Content {
			arg, err := b.processExpr(argNode)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	return ir.NewCallExpr(name.Value, args...), nil
}

func (b *builder) undeclared(f *ir.Func, v *ir.VarExpr) error {
	return fmt.Errorf("%s:%v: variable %s is not declared in function %s", b.name, v.Pos(), v.Name(), f.Name())
}
