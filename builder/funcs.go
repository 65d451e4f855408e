package builder

import (
	"gopkg.in/yaml.v3"

	"github.com/c-coh/dead-code-opt/ir"
)

type funcSpec struct {
	Name     string    `yaml:"name"`
	Returns  string    `yaml:"returns"`
	Params   []varSpec `yaml:"params"`
	Locals   []varSpec `yaml:"locals"`
	Variadic bool      `yaml:"variadic"`
	Body     yaml.Node `yaml:"body"`
}

type varSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func (b *builder) processFunc(n *yaml.Node) (*ir.Func, error) {
	var spec funcSpec
	if err := n.Decode(&spec); err != nil {
		return nil, b.errorf(n, "%v", err)
	}
	if spec.Name == "" {
		return nil, b.errorf(n, "function without name")
	}

	returnType := ir.VoidType
	if spec.Returns != "" {
		t, err := ir.ParseVarType(spec.Returns)
		if err != nil {
			return nil, b.errorf(n, "function %s: %v", spec.Name, err)
		}
		returnType = t
	}
	params, err := b.processVars(n, spec.Params)
	if err != nil {
		return nil, err
	}
	locals, err := b.processVars(n, spec.Locals)
	if err != nil {
		return nil, err
	}

	f := ir.NewFunc(spec.Name, returnType, params, spec.Variadic)
	f.SetPos(pos(n))
	for _, local := range locals {
		if _, ok := f.VarType(local.Name()); ok {
			b.warnf(n, "function %s: local %s shadows another variable", spec.Name, local.Name())
		}
		f.AddLocal(local)
	}

	if spec.Body.Kind == 0 {
		return f, nil
	}
	stmt, err := b.processStmt(&spec.Body)
	if err != nil {
		return nil, err
	}
	body, ok := stmt.(*ir.Block)
	if !ok {
		body = ir.NewBlock(stmt)
		body.SetPos(stmt.Pos())
	}
	f.SetBody(body)
	b.checkVars(f)

	return f, nil
}

func (b *builder) processVars(n *yaml.Node, specs []varSpec) ([]*ir.Variable, error) {
	vars := make([]*ir.Variable, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, b.errorf(n, "variable without name")
		}
		t, err := ir.ParseVarType(spec.Type)
		if err != nil {
			return nil, b.errorf(n, "variable %s: %v", spec.Name, err)
		}
		if t == ir.VoidType {
			return nil, b.errorf(n, "variable %s has void type", spec.Name)
		}
		vars = append(vars, ir.NewVariable(spec.Name, t))
	}
	return vars, nil
}

// checkVars warns about variables used in the body of f that are neither
// parameters nor locals.
func (b *builder) checkVars(f *ir.Func) {
	reported := make(map[string]bool)
	ir.WalkExprs(f.Body(), func(expr ir.Expr) {
		v, ok := expr.(*ir.VarExpr)
		if !ok || reported[v.Name()] {
			return
		}
		if _, ok := f.VarType(v.Name()); !ok {
			reported[v.Name()] = true
			b.addWarning(b.undeclared(f, v))
		}
	})
}
