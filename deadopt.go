package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/c-coh/dead-code-opt/api"
	c "github.com/c-coh/dead-code-opt/config"
)

var envFile = flag.String("env", "", "load settings from the given .env file")
var entryFuncName = flag.String("entry", "", "name of program entry function")
var debug = flag.Bool("debug", false, "generate debug output files")
var optimize = flag.Bool("optimize", true, "optimize program")
var run = flag.Bool("run", false, "execute the entry function after compilation")
var workers = flag.Int("workers", 0, "number of functions optimized concurrently")
var maxTreeDepth = flag.Int("max-depth", 0, "maximum tree depth the optimizer recurses into")
var passes = flag.String("passes", "", "comma separated optimizer passes (reachability, liveness)")
var onTooDeep = flag.String("on-too-deep", "", "skip or fail functions nested deeper than max-depth")
var outName = flag.String("out", "", "set name out output files")
var outFormats = flag.String("outfmts", "", "comma separated output formats (ir, dot)")
var logLevel = flag.String("log", "", "log level (debug, info, warn, error)")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deadopt [flags] [tree file]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		return
	}
	path := flag.Arg(0)

	config := c.Default()
	if err := config.LoadEnv(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(api.RunFailedWithConfig))
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "entry":
			config.Entry = *entryFuncName
		case "debug":
			config.Debug = *debug
		case "optimize":
			config.OptimizeIR = *optimize
		case "run":
			config.Run = *run
		case "workers":
			config.Workers = *workers
		case "max-depth":
			config.MaxTreeDepth = *maxTreeDepth
		case "passes":
			config.Passes = c.SplitList(*passes)
		case "on-too-deep":
			config.OnTooDeep = c.TooDeepPolicy(*onTooDeep)
		case "out":
			config.OutName = *outName
		case "outfmts":
			config.OutFormats = c.ParseFormats(*outFormats)
		case "log":
			config.LogLevel = *logLevel
		}
	})

	result := api.Run(path, config)

	os.Exit(int(result))
}
