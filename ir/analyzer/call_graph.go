package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c-coh/dead-code-opt/ir"

	gv "github.com/awalterschulze/gographviz"
)

// MaxCallCounts defines the maximum number of calls to a function that get counted.
const MaxCallCounts = 500

// SCC represents the strongly connected component an ir.Func belongs to.
type SCC int

// FuncNotCalled is the SCC value of all functions not part of the function
// call graph.
const FuncNotCalled SCC = 0

// FuncCallGraph represents a directed call graph of functions. Calls to names
// not declared in the program are kept as external callees.
type FuncCallGraph struct {
	program *ir.Program

	callerToCallees map[*ir.Func]map[*ir.Func]struct{}
	calleeToCallers map[*ir.Func]map[*ir.Func]struct{}
	externalCallees map[*ir.Func]map[string]struct{}

	isCallerCounts map[*ir.Func]int
	isCalleeCounts map[*ir.Func]int

	// Strongly connected components:
	sccsOk     bool
	sccCount   int
	funcToSCCs map[*ir.Func]SCC
	sccToFuncs map[SCC][]*ir.Func
}

func newFuncCallGraph(program *ir.Program) *FuncCallGraph {
	fcg := new(FuncCallGraph)
	fcg.program = program
	fcg.callerToCallees = make(map[*ir.Func]map[*ir.Func]struct{})
	fcg.calleeToCallers = make(map[*ir.Func]map[*ir.Func]struct{})
	fcg.externalCallees = make(map[*ir.Func]map[string]struct{})
	fcg.isCallerCounts = make(map[*ir.Func]int)
	fcg.isCalleeCounts = make(map[*ir.Func]int)
	fcg.sccsOk = false

	return fcg
}

// ContainsEdge returns if the function call graph has an edge from the given
// caller to the given callee.
func (fcg *FuncCallGraph) ContainsEdge(caller, callee *ir.Func) bool {
	_, ok := fcg.callerToCallees[caller][callee]
	return ok
}

// AllCallees returns all callees of the given caller, sorted by name.
func (fcg *FuncCallGraph) AllCallees(caller *ir.Func) []*ir.Func {
	return sortedFuncs(fcg.callerToCallees[caller])
}

// AllCallers returns all callers of the given callee, sorted by name.
func (fcg *FuncCallGraph) AllCallers(callee *ir.Func) []*ir.Func {
	return sortedFuncs(fcg.calleeToCallers[callee])
}

// ExternalCallees returns the sorted names called by caller that do not
// belong to any function of the program.
func (fcg *FuncCallGraph) ExternalCallees(caller *ir.Func) []string {
	var names []string
	for name := range fcg.externalCallees[caller] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CallerCount returns how many call sites a function contains.
func (fcg *FuncCallGraph) CallerCount(caller *ir.Func) int {
	return fcg.isCallerCounts[caller]
}

// CalleeCount returns how many call sites call a function.
func (fcg *FuncCallGraph) CalleeCount(callee *ir.Func) int {
	return fcg.isCalleeCounts[callee]
}

// SCCCount returns the number of strongly connected components in the
// function graph, including FuncNotCalled.
func (fcg *FuncCallGraph) SCCCount() int {
	fcg.updateSCCs()
	return fcg.sccCount
}

// SCCOfFunc returns the strongly connected component of the given function in the
// function call graph.
func (fcg *FuncCallGraph) SCCOfFunc(f *ir.Func) SCC {
	fcg.updateSCCs()
	return fcg.funcToSCCs[f]
}

// FuncsInSCC returns all functions that are part of the given strongly
// connected component in the function call graph.
func (fcg *FuncCallGraph) FuncsInSCC(scc SCC) []*ir.Func {
	fcg.updateSCCs()
	return fcg.sccToFuncs[scc]
}

// IsRecursive returns if f can call itself, directly or through other
// functions.
func (fcg *FuncCallGraph) IsRecursive(f *ir.Func) bool {
	if fcg.ContainsEdge(f, f) {
		return true
	}
	return len(fcg.FuncsInSCC(fcg.SCCOfFunc(f))) > 1
}

// UncalledFuncs returns all functions with body that can not be reached from
// the entry function, in declaration order.
func (fcg *FuncCallGraph) UncalledFuncs(entry *ir.Func) []*ir.Func {
	reached := map[*ir.Func]bool{entry: true}
	queue := []*ir.Func{entry}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		for callee := range fcg.callerToCallees[f] {
			if !reached[callee] {
				reached[callee] = true
				queue = append(queue, callee)
			}
		}
	}

	var uncalled []*ir.Func
	for _, f := range fcg.program.Funcs() {
		if f.HasBody() && !reached[f] {
			uncalled = append(uncalled, f)
		}
	}
	return uncalled
}

func (fcg *FuncCallGraph) addFunc(f *ir.Func) {
	if _, ok := fcg.callerToCallees[f]; ok {
		return
	}

	fcg.callerToCallees[f] = make(map[*ir.Func]struct{})
	fcg.calleeToCallers[f] = make(map[*ir.Func]struct{})
	fcg.externalCallees[f] = make(map[string]struct{})

	fcg.sccsOk = false
}

func (fcg *FuncCallGraph) addStaticCall(caller, callee *ir.Func) {
	callees := fcg.callerToCallees[caller]
	callees[callee] = struct{}{}
	callers := fcg.calleeToCallers[callee]
	callers[caller] = struct{}{}

	fcg.sccsOk = false
}

func (fcg *FuncCallGraph) addExternalCall(caller *ir.Func, name string) {
	fcg.externalCallees[caller][name] = struct{}{}
}

func (fcg *FuncCallGraph) addCallerCount(caller *ir.Func, count int) {
	fcg.isCallerCounts[caller] += count
	if fcg.isCallerCounts[caller] > MaxCallCounts {
		fcg.isCallerCounts[caller] = MaxCallCounts
	}
}

func (fcg *FuncCallGraph) addCalleeCount(callee *ir.Func, count int) {
	fcg.isCalleeCounts[callee] += count
	if fcg.isCalleeCounts[callee] > MaxCallCounts {
		fcg.isCalleeCounts[callee] = MaxCallCounts
	}
}

func (fcg *FuncCallGraph) updateSCCs() {
	if fcg.sccsOk {
		return
	}
	fcg.sccsOk = true
	fcg.funcToSCCs = make(map[*ir.Func]SCC)
	fcg.sccToFuncs = make(map[SCC][]*ir.Func)

	fcg.sccCount = 1 // FuncNotCalled has value 0

	index := 0
	indices := make(map[*ir.Func]int)
	lowLinks := make(map[*ir.Func]int)
	stack := make([]*ir.Func, 0)
	stackSet := make(map[*ir.Func]bool)

	var strongConnect func(*ir.Func)
	strongConnect = func(v *ir.Func) {
		indices[v] = index
		lowLinks[v] = index
		index++
		stack = append(stack, v)
		stackSet[v] = true

		for _, w := range sortedFuncs(fcg.callerToCallees[v]) {
			if _, ok := indices[w]; !ok {
				strongConnect(w)
				if lowLinks[v] > lowLinks[w] {
					lowLinks[v] = lowLinks[w]
				}

			} else if stackSet[w] {
				// Compared against the index of w, not its low link.
				if lowLinks[v] > indices[w] {
					lowLinks[v] = indices[w]
				}
			}
		}

		if lowLinks[v] == indices[v] {
			scc := SCC(fcg.sccCount)
			fcg.sccCount++

			var w *ir.Func
			for v != w {
				i := len(stack) - 1
				w = stack[i]
				stack = stack[:i]
				stackSet[w] = false

				fcg.funcToSCCs[w] = scc
				fcg.sccToFuncs[scc] = append(fcg.sccToFuncs[scc], w)
			}
		}
	}

	for _, f := range fcg.program.Funcs() {
		if _, ok := fcg.callerToCallees[f]; !ok {
			continue
		}
		if _, ok := indices[f]; !ok {
			strongConnect(f)
		}
	}
}

// Graph returns a graphviz graph representation of the function call graph.
// External callees are drawn as boxes.
func (fcg *FuncCallGraph) Graph() (*gv.Graph, error) {
	g := gv.NewGraph()
	if err := g.SetName("fcg"); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}
	funcs := fcg.program.Funcs()
	for _, f := range funcs {
		if err := g.AddNode("fcg", quote(f.Name()), nil); err != nil {
			return nil, err
		}
	}
	external := make(map[string]bool)
	for _, caller := range funcs {
		for _, callee := range fcg.AllCallees(caller) {
			if err := g.AddEdge(quote(caller.Name()), quote(callee.Name()), true, nil); err != nil {
				return nil, err
			}
		}
		for _, name := range fcg.ExternalCallees(caller) {
			if !external[name] {
				external[name] = true
				if err := g.AddNode("fcg", quote(name), map[string]string{"shape": "box"}); err != nil {
					return nil, err
				}
			}
			if err := g.AddEdge(quote(caller.Name()), quote(name), true, nil); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func (fcg *FuncCallGraph) String() string {
	fcg.updateSCCs()

	var b strings.Builder

	b.WriteString("Call Graph (with SCCs):\n")
	for _, caller := range fcg.program.Funcs() {
		fmt.Fprintf(&b, "%s (%d)\n", caller.Name(), fcg.funcToSCCs[caller])
		callees := fcg.AllCallees(caller)
		i := 0
		for _, callee := range callees {
			fmt.Fprintf(&b, "\t-> %s\n", callee.Name())
			i++
			if i == 10 {
				break
			}
		}
		if i < len(callees) {
			fmt.Fprintf(&b, "\t... (%d more)\n", len(callees)-i)
		}
		for _, name := range fcg.ExternalCallees(caller) {
			fmt.Fprintf(&b, "\t-> %s (external)\n", name)
		}
	}
	b.WriteString("\n")

	b.WriteString("Call Counts:\n")
	for _, f := range fcg.program.Funcs() {
		b.WriteString(f.Name() + "\n")
		fmt.Fprintf(&b, "\tcaller: %d\n", fcg.isCallerCounts[f])
		fmt.Fprintf(&b, "\tcallee: %d\n", fcg.isCalleeCounts[f])
	}
	b.WriteString("\n")

	return b.String()
}

func sortedFuncs(set map[*ir.Func]struct{}) []*ir.Func {
	funcs := make([]*ir.Func, 0, len(set))
	for f := range set {
		funcs = append(funcs, f)
	}
	sort.Slice(funcs, func(i, j int) bool {
		return funcs[i].Name() < funcs[j].Name()
	})
	return funcs
}

func quote(name string) string {
	return `"` + name + `"`
}
