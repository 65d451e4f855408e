package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c-coh/dead-code-opt/ir"
)

type recordingBackend struct {
	compiled []string
	failOn   string
}

func (b *recordingBackend) Compile(f *ir.Func) error {
	if f.Name() == b.failOn {
		return errors.New("backend failure")
	}
	b.compiled = append(b.compiled, f.Name())
	return nil
}

func newProgram(t *testing.T, funcs ...*ir.Func) *ir.Program {
	t.Helper()
	p := ir.NewProgram("test")
	for _, f := range funcs {
		require.NoError(t, p.AddFunc(f))
	}
	return p
}

func printfDecl() *ir.Func {
	return ir.NewFunc("printf", ir.IntType, []*ir.Variable{ir.NewVariable("fmt", ir.StringType)}, true)
}

func mainFunc(returnType ir.VarType, stmts ...ir.Stmt) *ir.Func {
	f := ir.NewFunc("main", returnType, []*ir.Variable{ir.NewVariable("n", ir.IntType)}, false)
	f.AddLocal(ir.NewVariable("a", ir.IntType))
	f.SetBody(ir.NewBlock(stmts...))
	return f
}

func TestCompileProgram(t *testing.T) {
	main := mainFunc(ir.IntType,
		ir.NewAssignExpr(ir.NewVarExpr("a"), ir.NewVarExpr("n")),
		ir.NewCallExpr("printf", ir.NewStringLit("%d %d\n"), ir.NewVarExpr("a"), ir.NewVarExpr("n")),
		ir.NewReturnStmt(ir.NewVarExpr("a")))
	p := newProgram(t, printfDecl(), main)

	backend := new(recordingBackend)
	require.NoError(t, CompileProgram(p, backend))
	assert.Equal(t, []string{"printf", "main"}, backend.compiled)

	backend = &recordingBackend{failOn: "main"}
	err := CompileProgram(p, backend)
	assert.EqualError(t, err, "compiling main: backend failure")
	assert.Equal(t, []string{"printf"}, backend.compiled)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		f    *ir.Func
		want []string
	}{
		{
			name: "assign to literal",
			f:    mainFunc(ir.VoidType, ir.NewAssignExpr(ir.NewIntLit(1), ir.NewIntLit(2))),
			want: []string{"cannot assign to 1"},
		},
		{
			name: "undeclared variable",
			f:    mainFunc(ir.VoidType, ir.NewAssignExpr(ir.NewVarExpr("b"), ir.NewVarExpr("a"))),
			want: []string{"undeclared variable b"},
		},
		{
			name: "unknown function",
			f:    mainFunc(ir.VoidType, ir.NewCallExpr("puts")),
			want: []string{"function not found: puts"},
		},
		{
			name: "too few arguments",
			f:    mainFunc(ir.VoidType, ir.NewCallExpr("printf")),
			want: []string{"printf called with 0 arguments, want 1"},
		},
		{
			name: "too many arguments",
			f:    mainFunc(ir.VoidType, ir.NewCallExpr("main", ir.NewIntLit(1), ir.NewIntLit(2))),
			want: []string{"main called with 2 arguments, want 1"},
		},
		{
			name: "void function returns value",
			f:    mainFunc(ir.VoidType, ir.NewReturnStmt(ir.NewIntLit(0))),
			want: []string{"void function returns a value"},
		},
		{
			name: "missing return value",
			f: mainFunc(ir.IntType,
				ir.NewIfStmt(ir.NewVarExpr("c"), ir.NewReturnStmt(nil), nil)),
			want: []string{"missing return value", "undeclared variable c"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := newProgram(t, printfDecl(), test.f)
			err := Check(p, test.f)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedTree)
			for _, want := range test.want {
				assert.Contains(t, err.Error(), want)
			}

			err = CompileProgram(p, new(recordingBackend))
			assert.ErrorIs(t, err, ErrMalformedTree)
		})
	}
}

func TestCheckAcceptsDeclarations(t *testing.T) {
	p := newProgram(t, printfDecl())
	f, err := p.Func("printf")
	require.NoError(t, err)
	assert.NoError(t, Check(p, f))
}
