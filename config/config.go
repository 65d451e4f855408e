package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/xyproto/env/v2"
)

// TooDeepPolicy defines what the optimizer does with a function whose tree
// exceeds MaxTreeDepth.
type TooDeepPolicy string

const (
	// SkipFunc leaves the function unoptimized and continues.
	SkipFunc TooDeepPolicy = "skip"
	// FailRun aborts the whole run.
	FailRun TooDeepPolicy = "fail"
)

// Pass names understood by the optimizer.
const (
	ReachabilityPass = "reachability"
	LivenessPass     = "liveness"
)

// EnvPrefix is the prefix of all environment variables read by LoadEnv.
const EnvPrefix = "DEADOPT_"

// Config holds paramters for the Run function.
type Config struct {
	// MaxTreeDepth bounds the nesting depth of statements and expressions
	// the optimizer recurses into.
	MaxTreeDepth int
	// Workers is the number of functions optimized concurrently.
	Workers int
	// Passes lists the optimizer passes in the order they run.
	Passes []string
	// OnTooDeep decides what happens to functions exceeding MaxTreeDepth.
	OnTooDeep TooDeepPolicy

	// OptimizeIR indicates if the optimizer should run at all.
	OptimizeIR bool

	// Entry is the name of the program entry function.
	Entry string
	// Run indicates if the entry function should be executed after
	// compilation.
	Run bool

	// Debug indicates if debug output files should be generated.
	Debug bool
	// OutName is the file name of all output files.
	OutName string
	// OutFormats lists the generated output file formats (supports ir, dot)
	OutFormats map[string]bool

	// LogLevel is the minimum zerolog level that gets logged.
	LogLevel string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MaxTreeDepth: 10000,
		Workers:      1,
		Passes:       []string{ReachabilityPass, LivenessPass},
		OnTooDeep:    SkipFunc,
		OptimizeIR:   true,
		Entry:        "main",
		Run:          false,
		Debug:        false,
		OutName:      "a",
		OutFormats:   map[string]bool{"ir": true},
		LogLevel:     "info",
	}
}

// LoadEnv applies settings from the environment. If envFile is not empty it
// gets loaded first; variables already set in the environment take
// precedence over the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("could not load %s: %w", envFile, err)
		}
	}

	c.MaxTreeDepth = env.Int(EnvPrefix+"MAX_TREE_DEPTH", c.MaxTreeDepth)
	c.Workers = env.Int(EnvPrefix+"WORKERS", c.Workers)
	if env.Has(EnvPrefix + "PASSES") {
		c.Passes = SplitList(env.Str(EnvPrefix + "PASSES"))
	}
	c.OnTooDeep = TooDeepPolicy(env.Str(EnvPrefix+"ON_TOO_DEEP", string(c.OnTooDeep)))
	if env.Has(EnvPrefix + "OPTIMIZE") {
		c.OptimizeIR = env.Bool(EnvPrefix + "OPTIMIZE")
	}
	c.Entry = env.Str(EnvPrefix+"ENTRY", c.Entry)
	if env.Has(EnvPrefix + "DEBUG") {
		c.Debug = env.Bool(EnvPrefix + "DEBUG")
	}
	c.OutName = env.Str(EnvPrefix+"OUT", c.OutName)
	if env.Has(EnvPrefix + "OUT_FORMATS") {
		c.OutFormats = ParseFormats(env.Str(EnvPrefix + "OUT_FORMATS"))
	}
	c.LogLevel = env.Str(EnvPrefix+"LOG_LEVEL", c.LogLevel)

	return nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxTreeDepth <= 0 {
		errs = append(errs, fmt.Errorf("max tree depth must be positive, got %d", c.MaxTreeDepth))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	switch c.OnTooDeep {
	case SkipFunc, FailRun:
	default:
		errs = append(errs, fmt.Errorf("unknown too deep policy %q", c.OnTooDeep))
	}
	for _, pass := range c.Passes {
		switch pass {
		case ReachabilityPass, LivenessPass:
		default:
			errs = append(errs, fmt.Errorf("unknown pass %q", pass))
		}
	}
	for format := range c.OutFormats {
		switch format {
		case "ir", "dot":
		default:
			errs = append(errs, fmt.Errorf("unknown output format %q", format))
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SplitList splits a comma separated list, dropping empty entries.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseFormats turns a comma separated list of output formats into a set.
func ParseFormats(s string) map[string]bool {
	formats := make(map[string]bool)
	for _, format := range SplitList(s) {
		formats[format] = true
	}
	return formats
}

// NewLogger creates the console logger writing to out. Colors are only used
// if out is a terminal.
func (c *Config) NewLogger(out io.Writer) zerolog.Logger {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
	}

	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
