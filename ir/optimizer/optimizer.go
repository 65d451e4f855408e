package optimizer

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	c "github.com/c-coh/dead-code-opt/config"
	"github.com/c-coh/dead-code-opt/ir"
)

// FuncReport describes what the optimizer did to one function.
type FuncReport struct {
	Name string
	// Optimized is false for declarations and skipped functions.
	Optimized bool
	// Skipped holds the reason a defined function was left unoptimized.
	Skipped error
	Stats   Stats
	// Calls lists the functions called by the function.
	Calls []string
}

// Report describes a whole optimizer run.
type Report struct {
	// Funcs holds one entry per function in declaration order.
	Funcs []FuncReport
	// Calls records every function called anywhere in the program.
	Calls Liveness
}

// Func returns the report of the named function, or nil.
func (r *Report) Func(name string) *FuncReport {
	for i := range r.Funcs {
		if r.Funcs[i].Name == name {
			return &r.Funcs[i]
		}
	}
	return nil
}

// Optimize runs the configured passes on every function with a body. Each
// function is optimized on a copy that only replaces the original once all
// passes succeeded. Functions exceeding the depth limit are skipped or fail
// the run, depending on config.OnTooDeep; all other errors fail the run.
// A worker count below one runs the functions one at a time.
func Optimize(program *ir.Program, config *c.Config, logger zerolog.Logger) (*Report, error) {
	pipeline, err := NewPipeline(config.Passes)
	if err != nil {
		return nil, err
	}

	funcs := program.Funcs()
	report := &Report{
		Funcs: make([]FuncReport, len(funcs)),
		Calls: NewLiveness(),
	}
	optimized := make([]*ir.Func, len(funcs))
	var callsMu sync.Mutex

	var g errgroup.Group
	g.SetLimit(max(config.Workers, 1))
	for i, f := range funcs {
		report.Funcs[i].Name = f.Name()
		if !f.HasBody() {
			continue
		}

		g.Go(func() error {
			st := NewFuncState(f.Clone(), config.MaxTreeDepth)
			err := pipeline.Run(st)
			if errors.Is(err, ErrTreeTooDeep) && config.OnTooDeep == c.SkipFunc {
				logger.Warn().Err(err).Str("func", f.Name()).Msg("emitting function unoptimized")
				report.Funcs[i].Skipped = err
				return nil
			} else if err != nil {
				return err
			}

			optimized[i] = st.Func
			report.Funcs[i].Optimized = true
			report.Funcs[i].Stats = st.Stats
			report.Funcs[i].Calls = st.Calls.Live()

			callsMu.Lock()
			Merge(report.Calls, st.Calls)
			callsMu.Unlock()

			logger.Debug().
				Str("func", f.Name()).
				Int("prunedBranches", st.Stats.PrunedBranches).
				Int("prunedLoops", st.Stats.PrunedLoops).
				Int("removedStores", st.Stats.RemovedStores).
				Int("splicedStores", st.Stats.SplicedStores).
				Strs("calls", report.Funcs[i].Calls).
				Msg("optimized function")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range optimized {
		if f == nil {
			continue
		}
		if err := program.ReplaceFunc(f); err != nil {
			return nil, err
		}
	}
	return report, nil
}
