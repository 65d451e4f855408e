package analyzer

import (
	"github.com/c-coh/dead-code-opt/ir"
	"github.com/c-coh/dead-code-opt/ir/optimizer"
)

// BuildFuncCallGraph returns a new function call graph for the given program.
// Edges of optimized functions come from the calls the optimizer recorded in
// report; all other functions get their bodies walked. The report may be nil.
func BuildFuncCallGraph(program *ir.Program, report *optimizer.Report) *FuncCallGraph {
	fcg := newFuncCallGraph(program)

	addFuncsToFuncCallGraph(program, fcg)
	addCallsToFuncCallGraph(program, report, fcg)
	addCallCountsToFuncCallGraph(program, fcg)

	return fcg
}

func addFuncsToFuncCallGraph(program *ir.Program, fcg *FuncCallGraph) {
	for _, f := range program.Funcs() {
		fcg.addFunc(f)
	}
}

func addCallsToFuncCallGraph(program *ir.Program, report *optimizer.Report, fcg *FuncCallGraph) {
	for _, caller := range program.Funcs() {
		if !caller.HasBody() {
			continue
		}
		var callees []string
		if info := funcReport(report, caller.Name()); info != nil && info.Optimized {
			callees = info.Calls
		} else {
			callees = calleesOfBody(caller.Body())
		}
		for _, name := range callees {
			addCall(program, fcg, caller, name)
		}
	}
}

func addCall(program *ir.Program, fcg *FuncCallGraph, caller *ir.Func, name string) {
	callee, err := program.Func(name)
	if err != nil {
		fcg.addExternalCall(caller, name)
		return
	}
	fcg.addStaticCall(caller, callee)
}

func addCallCountsToFuncCallGraph(program *ir.Program, fcg *FuncCallGraph) {
	for _, caller := range program.Funcs() {
		if !caller.HasBody() {
			continue
		}
		ir.WalkExprs(caller.Body(), func(expr ir.Expr) {
			call, ok := expr.(*ir.CallExpr)
			if !ok {
				return
			}
			fcg.addCallerCount(caller, 1)
			if callee, err := program.Func(call.Callee()); err == nil {
				fcg.addCalleeCount(callee, 1)
			}
		})
	}
}

func calleesOfBody(body *ir.Block) []string {
	seen := make(map[string]bool)
	var callees []string
	ir.WalkExprs(body, func(expr ir.Expr) {
		call, ok := expr.(*ir.CallExpr)
		if !ok || seen[call.Callee()] {
			return
		}
		seen[call.Callee()] = true
		callees = append(callees, call.Callee())
	})
	return callees
}

func funcReport(report *optimizer.Report, name string) *optimizer.FuncReport {
	if report == nil {
		return nil
	}
	return report.Func(name)
}
