package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c-coh/dead-code-opt/builder"
	"github.com/c-coh/dead-code-opt/ir"
	"github.com/c-coh/dead-code-opt/ir/optimizer"
)

const callsYAML = `
module: calls
funcs:
  - name: printf
    returns: int
    params: [{name: fmt, type: string}]
    variadic: true
  - name: ping
    params: [{name: n, type: int}]
    body:
      if:
        cond: {gt: [{var: n}, {int: 0}]}
        then: {call: {name: pong, args: [{sub: [{var: n}, {int: 1}]}]}}
  - name: pong
    params: [{name: n, type: int}]
    body:
      block:
        - call: {name: printf, args: [{string: "%d\n"}, {var: n}]}
        - call: {name: puts, args: [{string: "pong"}]}
        - call: {name: ping, args: [{var: n}]}
  - name: fact
    returns: int
    params: [{name: n, type: int}]
    body:
      block:
        - if:
            cond: {le: [{var: n}, {int: 1}]}
            then: {return: {int: 1}}
        - return: {mul: [{var: n}, {call: {name: fact, args: [{sub: [{var: n}, {int: 1}]}]}}]}
  - name: unused
    body:
      call: {name: printf, args: [{string: "unused\n"}]}
  - name: main
    returns: int
    body:
      block:
        - call: {name: ping, args: [{int: 3}]}
        - call: {name: fact, args: [{call: {name: fact, args: [{int: 3}]}}]}
        - return: {int: 0}
`

func buildCalls(t *testing.T) *ir.Program {
	t.Helper()
	program, errs := builder.Build("calls.yaml", []byte(callsYAML))
	require.Empty(t, errs)
	require.NotNil(t, program)
	return program
}

func funcs(t *testing.T, program *ir.Program, names ...string) []*ir.Func {
	t.Helper()
	result := make([]*ir.Func, len(names))
	for i, name := range names {
		f, err := program.Func(name)
		require.NoError(t, err)
		result[i] = f
	}
	return result
}

func names(funcs []*ir.Func) []string {
	result := make([]string, len(funcs))
	for i, f := range funcs {
		result[i] = f.Name()
	}
	return result
}

func TestFuncCallGraphEdges(t *testing.T) {
	program := buildCalls(t)
	fcg := BuildFuncCallGraph(program, nil)
	fs := funcs(t, program, "printf", "ping", "pong", "fact", "unused", "main")
	printf, ping, pong, fact, unused, main := fs[0], fs[1], fs[2], fs[3], fs[4], fs[5]

	assert.True(t, fcg.ContainsEdge(main, ping))
	assert.True(t, fcg.ContainsEdge(ping, pong))
	assert.True(t, fcg.ContainsEdge(pong, ping))
	assert.True(t, fcg.ContainsEdge(fact, fact))
	assert.False(t, fcg.ContainsEdge(ping, main))

	assert.Equal(t, []string{"fact", "ping"}, names(fcg.AllCallees(main)))
	assert.Equal(t, []string{"ping", "printf"}, names(fcg.AllCallees(pong)))
	assert.Equal(t, []string{"pong", "unused"}, names(fcg.AllCallers(printf)))
	assert.Empty(t, fcg.AllCallees(printf))

	assert.Equal(t, []string{"puts"}, fcg.ExternalCallees(pong))
	assert.Empty(t, fcg.ExternalCallees(main))

	assert.Equal(t, 3, fcg.CallerCount(main))
	assert.Equal(t, 3, fcg.CallerCount(pong))
	assert.Equal(t, 3, fcg.CalleeCount(fact))
	assert.Equal(t, 2, fcg.CalleeCount(printf))
	assert.Equal(t, 0, fcg.CalleeCount(unused))
}

func TestFuncCallGraphSCCs(t *testing.T) {
	program := buildCalls(t)
	fcg := BuildFuncCallGraph(program, nil)
	fs := funcs(t, program, "printf", "ping", "pong", "fact", "unused", "main")
	printf, ping, pong, fact, unused, main := fs[0], fs[1], fs[2], fs[3], fs[4], fs[5]

	assert.Equal(t, fcg.SCCOfFunc(ping), fcg.SCCOfFunc(pong))
	assert.NotEqual(t, fcg.SCCOfFunc(ping), fcg.SCCOfFunc(main))
	assert.NotEqual(t, FuncNotCalled, fcg.SCCOfFunc(printf))
	assert.ElementsMatch(t, []*ir.Func{ping, pong}, fcg.FuncsInSCC(fcg.SCCOfFunc(ping)))
	// ping and pong share one component, every other function has its own.
	assert.Equal(t, 6, fcg.SCCCount())

	assert.True(t, fcg.IsRecursive(ping))
	assert.True(t, fcg.IsRecursive(pong))
	assert.True(t, fcg.IsRecursive(fact))
	assert.False(t, fcg.IsRecursive(main))
	assert.False(t, fcg.IsRecursive(unused))
}

func TestUncalledFuncs(t *testing.T) {
	program := buildCalls(t)
	fcg := BuildFuncCallGraph(program, nil)
	fs := funcs(t, program, "main", "ping")

	assert.Equal(t, []string{"unused"}, names(fcg.UncalledFuncs(fs[0])))
	assert.Equal(t, []string{"fact", "unused", "main"}, names(fcg.UncalledFuncs(fs[1])))
}

func TestFuncCallGraphUsesReport(t *testing.T) {
	program := buildCalls(t)
	report := &optimizer.Report{
		Funcs: []optimizer.FuncReport{
			{Name: "main", Optimized: true, Calls: []string{"fact"}},
			{Name: "pong", Optimized: false, Calls: []string{"unused"}},
		},
	}
	fcg := BuildFuncCallGraph(program, report)
	fs := funcs(t, program, "main", "ping", "pong", "unused")
	main, ping, pong, unused := fs[0], fs[1], fs[2], fs[3]

	assert.Equal(t, []string{"fact"}, names(fcg.AllCallees(main)))
	assert.False(t, fcg.ContainsEdge(main, ping))
	// Unoptimized functions get their bodies walked.
	assert.True(t, fcg.ContainsEdge(pong, ping))
	assert.False(t, fcg.ContainsEdge(pong, unused))
}

func TestFuncCallGraphOutput(t *testing.T) {
	program := buildCalls(t)
	fcg := BuildFuncCallGraph(program, nil)

	g, err := fcg.Graph()
	require.NoError(t, err)
	dot := g.String()
	assert.Contains(t, dot, `"main"->"ping"`)
	assert.Contains(t, dot, `"pong"->"puts"`)
	assert.Contains(t, dot, "shape=box")

	s := fcg.String()
	assert.Contains(t, s, "main (")
	assert.Contains(t, s, "\t-> ping\n")
	assert.Contains(t, s, "\t-> puts (external)\n")
	assert.Contains(t, s, "fact\n\tcaller: 1\n\tcallee: 3\n")
}
