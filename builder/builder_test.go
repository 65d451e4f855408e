package builder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c-coh/dead-code-opt/ir"
)

const demoYAML = `module: demo
funcs:
  - name: printf
    returns: int
    params: [{name: fmt, type: string}]
    variadic: true
  - name: main
    returns: int
    params: [{name: c, type: bool}]
    locals: [{name: i, type: int}, {name: x, type: float}]
    body:
      block:
        - assign: [{var: i}, {int: 0}]
        - for:
            cond: {lt: [{var: i}, {int: 3}]}
            inc: {assign: [{var: i}, {add: [{var: i}, {int: 1}]}]}
            body: {call: {name: printf, args: [{string: "%d\n"}, {var: i}]}}
        - while:
            cond: {and: [{var: c}, {not: {bool: false}}]}
        - if:
            cond: {var: c}
            then: {block: []}
            else: {assign: [{var: x}, {int2float: {var: i}}]}
        - return: {int: 0}
`

func TestBuild(t *testing.T) {
	program, errs := Build("demo.yaml", []byte(demoYAML))
	require.Empty(t, errs)
	require.NotNil(t, program)

	assert.Equal(t, "demo", program.Name())
	assert.Equal(t, []string{"printf", "main"}, program.FuncNames())

	printf, err := program.Func("printf")
	require.NoError(t, err)
	assert.False(t, printf.HasBody())
	assert.True(t, printf.IsVariadic())

	main, err := program.Func("main")
	require.NoError(t, err)
	want := `int main(bool c) {
  int i;
  float x;
  i = 0;
  for (; i < 3; i = i + 1) printf("%d\n", i);
  while (c && !false) ;
  if (c) {} else x = int2float(i);
  return 0;
}`
	assert.Equal(t, want, main.Tree())

	assert.Equal(t, ir.Pos{Line: 7, Col: 5}, main.Pos())
	forStmt, ok := main.Body().Stmts()[1].(*ir.ForStmt)
	require.True(t, ok)
	assert.Equal(t, 14, forStmt.Pos().Line)
	assert.Equal(t, 15, forStmt.Cond().Pos().Line)
}

func TestBuildProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoYAML), 0644))

	program, errs := BuildProgram(path)
	require.Empty(t, errs)
	assert.Len(t, program.Funcs(), 2)

	program, errs = BuildProgram(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Nil(t, program)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}

func TestBuildBodyWithoutBlock(t *testing.T) {
	program, errs := Build("t.yaml", []byte(`
funcs:
  - name: f
    params: [{name: n, type: int}]
    body: {return: null}
`))
	require.Empty(t, errs)
	f, err := program.Func("f")
	require.NoError(t, err)
	assert.Equal(t, "main", program.Name())
	assert.Equal(t, "void f(int n) {\n  return;\n}", f.Tree())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "invalid yaml",
			input: "funcs: [",
			want:  "t.yaml: malformed input",
		},
		{
			name:  "no mapping",
			input: "- 1",
			want:  "expected mapping at top level",
		},
		{
			name:  "funcs not a list",
			input: "funcs: 1",
			want:  "funcs must be a list",
		},
		{
			name: "unknown node kind",
			input: `funcs:
  - name: main
    body:
      block:
        - foo: 1
`,
			want: `t.yaml:5:16: malformed input: unknown node kind "foo"`,
		},
		{
			name: "assign to literal",
			input: `funcs:
  - name: main
    body: {assign: [{int: 1}, {int: 2}]}
`,
			want: "cannot assign to 1",
		},
		{
			name: "if without cond",
			input: `funcs:
  - name: main
    body: {if: {then: {block: []}}}
`,
			want: "if requires cond",
		},
		{
			name: "unknown field",
			input: `funcs:
  - name: main
    body: {while: {cond: {bool: true}, step: {int: 1}}}
`,
			want: `while has no field "step"`,
		},
		{
			name: "two kinds in one node",
			input: `funcs:
  - name: main
    body: {int: 1, bool: true}
`,
			want: "expected a mapping with exactly one kind key",
		},
		{
			name: "bad int literal",
			input: `funcs:
  - name: main
    body: {int: x}
`,
			want: `invalid int literal "x"`,
		},
		{
			name: "unknown type",
			input: `funcs:
  - name: main
    params: [{name: c, type: char}]
`,
			want: "variable c",
		},
		{
			name: "void variable",
			input: `funcs:
  - name: main
    locals: [{name: c, type: void}]
`,
			want: "variable c has void type",
		},
		{
			name: "missing name",
			input: `funcs:
  - returns: int
`,
			want: "function without name",
		},
		{
			name: "duplicate function",
			input: `funcs:
  - name: main
  - name: main
`,
			want: "duplicate function",
		},
		{
			name: "call without name",
			input: `funcs:
  - name: main
    body: {call: {args: []}}
`,
			want: "call requires name",
		},
		{
			name: "wrong operand count",
			input: `funcs:
  - name: main
    body: {add: [{int: 1}]}
`,
			want: "add expects a list of two operands",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			program, errs := Build("t.yaml", []byte(test.input))
			assert.Nil(t, program)
			require.NotEmpty(t, errs)

			found := false
			for _, err := range errs {
				if assert.Error(t, err) && strings.Contains(err.Error(), test.want) {
					found = true
				}
			}
			assert.True(t, found, "no error contains %q: %v", test.want, errs)
		})
	}
}

func TestBuildErrorsWrapMalformedInput(t *testing.T) {
	_, errs := Build("t.yaml", []byte("funcs: [{name: main, body: {foo: 1}}]"))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrMalformedInput)
}

func TestBuildWarnings(t *testing.T) {
	program, errs := Build("t.yaml", []byte(`
version: 2
funcs:
  - name: main
    params: [{name: a, type: int}]
    locals: [{name: a, type: float}]
    body:
      block:
        - assign: [{var: b}, {var: a}]
        - return: {var: b}
`))
	require.NotNil(t, program, "warnings must not fail the build")
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), `ignoring unknown key "version"`)
	assert.Contains(t, errs[1].Error(), "local a shadows another variable")
	assert.Contains(t, errs[2].Error(), "variable b is not declared in function main")
	assert.Contains(t, errs[2].Error(), "t.yaml:9:")
	for _, err := range errs {
		assert.NotErrorIs(t, err, ErrMalformedInput)
	}

	_, errs = Build("t.yaml", []byte("module: empty\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "program has no functions")
}
