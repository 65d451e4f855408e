package api

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/c-coh/dead-code-opt/builder"
	"github.com/c-coh/dead-code-opt/codegen"
	"github.com/c-coh/dead-code-opt/codegen/interp"
	c "github.com/c-coh/dead-code-opt/config"
	"github.com/c-coh/dead-code-opt/ir"
	irAnalyzer "github.com/c-coh/dead-code-opt/ir/analyzer"
	irOptimizer "github.com/c-coh/dead-code-opt/ir/optimizer"
)

// Result indicates if the Run function was successful or how it failed.
type Result int

const (
	// RunSuccessful indicates that the Run function completed successfully
	// without wanring.
	RunSuccessful Result = iota
	// RunSuccessfulButWithWarnings indicates that the Run function completed
	// successfully but generated errors.
	RunSuccessfulButWithWarnings
	// RunFailedWithConfig indicates that the configuration was invalid.
	RunFailedWithConfig
	// RunFailedWithBuilder indicates that the Run function failed while the
	// builder was working.
	RunFailedWithBuilder
	// RunFailedWithOptimizer indicates that the Run function failed while the
	// optimizer was working.
	RunFailedWithOptimizer
	// RunFailedWithCodegen indicates that the Run function failed while
	// compiling the program.
	RunFailedWithCodegen
	// RunFailedWritingOutputFiles indicates that the Run function failed
	// writing the generated files to disk.
	RunFailedWritingOutputFiles
	// RunFailedExecuting indicates that the compiled program failed at run
	// time.
	RunFailedExecuting
)

func (r Result) String() string {
	switch r {
	case RunSuccessful:
		return "successful"
	case RunSuccessfulButWithWarnings:
		return "successful with warnings"
	case RunFailedWithConfig:
		return "failed with config"
	case RunFailedWithBuilder:
		return "failed with builder"
	case RunFailedWithOptimizer:
		return "failed with optimizer"
	case RunFailedWithCodegen:
		return "failed with codegen"
	case RunFailedWritingOutputFiles:
		return "failed writing output files"
	case RunFailedExecuting:
		return "failed executing"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Run builds, optimizes and compiles the tree file at the given path and
// returns whether it was successful or failed. Program output goes to
// stdout, logs go to stderr.
func Run(path string, config *c.Config) Result {
	return RunWithOutput(path, config, os.Stdout, os.Stderr)
}

// RunWithOutput is like Run but writes program output to out and logs to
// logOut.
func RunWithOutput(path string, config *c.Config, out, logOut io.Writer) Result {
	logger := config.NewLogger(logOut).With().
		Str("run", uuid.NewString()).
		Str("input", path).
		Logger()

	if err := config.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return RunFailedWithConfig
	}

	warnings := false

	// Builder
	program, errs := builder.BuildProgram(path)
	warnings = warnings || len(errs) > 0
	for _, err := range errs {
		logger.Warn().Err(err).Msg("builder")
	}
	if program == nil {
		logger.Error().Msg("could not build program")
		return RunFailedWithBuilder
	}
	logger.Info().Str("module", program.Name()).Int("funcs", len(program.FuncNames())).Msg("built program")

	if config.Debug {
		if err := outputIRProgram(program, nil, config.OutName, "init"); err != nil {
			logger.Error().Err(err).Msg("could not write debug output")
			return RunFailedWritingOutputFiles
		}
	}

	// Optimizer
	var report *irOptimizer.Report
	if config.OptimizeIR {
		var err error
		report, err = irOptimizer.Optimize(program, config, logger)
		if err != nil {
			logger.Error().Err(err).Msg("optimizer failed")
			return RunFailedWithOptimizer
		}
		var total irOptimizer.Stats
		for _, f := range report.Funcs {
			if f.Skipped != nil {
				warnings = true
			}
			total.PrunedBranches += f.Stats.PrunedBranches
			total.PrunedLoops += f.Stats.PrunedLoops
			total.RemovedStores += f.Stats.RemovedStores
			total.SplicedStores += f.Stats.SplicedStores
		}
		logger.Info().
			Int("prunedBranches", total.PrunedBranches).
			Int("prunedLoops", total.PrunedLoops).
			Int("removedStores", total.RemovedStores).
			Int("splicedStores", total.SplicedStores).
			Msg("optimized program")

		if config.Debug {
			if err := outputIRProgram(program, report, config.OutName, "opt"); err != nil {
				logger.Error().Err(err).Msg("could not write debug output")
				return RunFailedWritingOutputFiles
			}
		}
	}

	fcg := irAnalyzer.BuildFuncCallGraph(program, report)
	if entry, err := program.Func(config.Entry); err == nil {
		for _, f := range fcg.UncalledFuncs(entry) {
			logger.Info().Str("func", f.Name()).Msg("function is never called")
		}
	} else if config.Run {
		logger.Error().Err(err).Msg("missing entry function")
		return RunFailedWithBuilder
	}

	if err := outputProgram(program, fcg, config.OutName, config.OutFormats); err != nil {
		logger.Error().Err(err).Msg("could not write output")
		return RunFailedWritingOutputFiles
	}

	// Codegen
	machine := interp.NewMachine(program, out)
	if err := codegen.CompileProgram(program, machine); err != nil {
		logger.Error().Err(err).Msg("codegen failed")
		return RunFailedWithCodegen
	}

	if config.Run {
		result, err := machine.Run(config.Entry)
		if err != nil {
			logger.Error().Err(err).Msg("program failed")
			return RunFailedExecuting
		}
		logEvent(logger, result).Msg("program finished")
	}

	if warnings {
		return RunSuccessfulButWithWarnings
	}
	return RunSuccessful
}

func logEvent(logger zerolog.Logger, result interp.Value) *zerolog.Event {
	if result == nil {
		return logger.Info()
	}
	return logger.Info().Interface("result", result)
}

func outputIRProgram(program *ir.Program, report *irOptimizer.Report, outName string, stepName string) error {
	fcg := irAnalyzer.BuildFuncCallGraph(program, report)

	// IR file
	programPath := fmt.Sprintf("%s.%s.ir.txt", outName, stepName)
	if err := writeFile(programPath, program.Tree()); err != nil {
		return err
	}

	// FCG file
	fcgPath := fmt.Sprintf("%s.%s.fcg.txt", outName, stepName)
	return writeFile(fcgPath, fcg.String())
}

func outputProgram(program *ir.Program, fcg *irAnalyzer.FuncCallGraph, outName string, outFormats map[string]bool) error {
	for _, ffmt := range []string{"ir", "dot"} {
		if !outFormats[ffmt] {
			continue
		}

		var content string
		switch ffmt {
		case "ir":
			content = program.Tree()
		case "dot":
			g, err := fcg.Graph()
			if err != nil {
				return fmt.Errorf("could not build call graph: %w", err)
			}
			content = g.String()
		}
		if err := writeFile(outName+"."+ffmt, content); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, content); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}
