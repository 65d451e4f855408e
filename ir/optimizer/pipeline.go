package optimizer

import (
	"fmt"

	c "github.com/c-coh/dead-code-opt/config"
	"github.com/c-coh/dead-code-opt/ir"
)

// Stats counts the changes the passes made to one function.
type Stats struct {
	FolderStats
	EliminatorStats
}

// Changed returns whether any pass changed the function.
func (s Stats) Changed() bool {
	return s.PrunedBranches+s.PrunedLoops+s.RemovedStores+s.SplicedStores > 0
}

// FuncState is the state shared by the passes optimizing one function.
type FuncState struct {
	Func *ir.Func
	// Calls records every function called by Func.
	Calls Liveness
	Stats Stats

	MaxDepth int
}

// NewFuncState creates the state for optimizing f.
func NewFuncState(f *ir.Func, maxDepth int) *FuncState {
	return &FuncState{
		Func:     f,
		Calls:    NewLiveness(),
		MaxDepth: maxDepth,
	}
}

// Pass is a single optimization applied to one function body at a time.
type Pass interface {
	Name() string
	Run(st *FuncState) error
}

// ReachabilityPass prunes statically unreachable branches and loop bodies.
type ReachabilityPass struct{}

// Name returns the name of the pass.
func (ReachabilityPass) Name() string {
	return c.ReachabilityPass
}

// Run runs the pass on st.Func.
func (ReachabilityPass) Run(st *FuncState) error {
	folder := NewFolder(st.MaxDepth)
	err := folder.FoldUnreachable(st.Func.Body())
	stats := folder.Stats()
	st.Stats.PrunedBranches += stats.PrunedBranches
	st.Stats.PrunedLoops += stats.PrunedLoops
	return err
}

// LivenessPass removes dead stores.
type LivenessPass struct{}

// Name returns the name of the pass.
func (LivenessPass) Name() string {
	return c.LivenessPass
}

// Run runs the pass on st.Func.
func (LivenessPass) Run(st *FuncState) error {
	eliminator := NewEliminator(st.MaxDepth)
	err := eliminator.EliminateDeadStores(st.Func.Body(), st.Calls)
	stats := eliminator.Stats()
	st.Stats.RemovedStores += stats.RemovedStores
	st.Stats.SplicedStores += stats.SplicedStores
	return err
}

// Pipeline is an ordered list of passes.
type Pipeline []Pass

// DefaultPipeline returns the reachability pass followed by the liveness
// pass.
func DefaultPipeline() Pipeline {
	return Pipeline{ReachabilityPass{}, LivenessPass{}}
}

// NewPipeline builds a pipeline from pass names.
func NewPipeline(names []string) (Pipeline, error) {
	pipeline := make(Pipeline, 0, len(names))
	for _, name := range names {
		switch name {
		case c.ReachabilityPass:
			pipeline = append(pipeline, ReachabilityPass{})
		case c.LivenessPass:
			pipeline = append(pipeline, LivenessPass{})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPass, name)
		}
	}
	return pipeline, nil
}

// Run applies all passes in order. Functions without body are left alone.
func (p Pipeline) Run(st *FuncState) error {
	if !st.Func.HasBody() {
		return nil
	}
	for _, pass := range p {
		if err := pass.Run(st); err != nil {
			return fmt.Errorf("%s pass on %s: %w", pass.Name(), st.Func.Name(), err)
		}
	}
	return nil
}
