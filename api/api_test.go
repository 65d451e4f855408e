package api

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/c-coh/dead-code-opt/config"
)

const progYAML = `module: api
funcs:
  - name: printf
    returns: int
    params: [{name: fmt, type: string}]
    variadic: true
  - name: unused
    body: {call: {name: printf, args: [{string: "unused\n"}]}}
  - name: main
    returns: int
    locals: [{name: a, type: int}]
    body:
      block:
        - assign: [{var: a}, {int: 1}]
        - if:
            cond: {bool: false}
            then: {call: {name: printf, args: [{string: "never\n"}]}}
        - assign: [{var: a}, {int: 2}]
        - call: {name: printf, args: [{string: "a=%d\n"}, {var: a}]}
        - return: {int: 0}
`

func setup(t *testing.T, src string) (string, *c.Config) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	config := c.Default()
	config.Run = true
	config.OutName = filepath.Join(dir, "out")
	config.LogLevel = "debug"
	return path, config
}

func TestRunWithOutput(t *testing.T) {
	path, config := setup(t, progYAML)
	config.Debug = true
	config.OutFormats = map[string]bool{"ir": true, "dot": true}

	var out, logs bytes.Buffer
	result := RunWithOutput(path, config, &out, &logs)
	require.Equal(t, RunSuccessful, result, logs.String())
	assert.Equal(t, "a=2\n", out.String())

	ir, err := os.ReadFile(config.OutName + ".ir")
	require.NoError(t, err)
	assert.Contains(t, string(ir), "// module api")
	assert.Contains(t, string(ir), "  if (false) ;\n  a = 2;\n")
	assert.NotContains(t, string(ir), "a = 1;")

	dot, err := os.ReadFile(config.OutName + ".dot")
	require.NoError(t, err)
	assert.Contains(t, string(dot), `"main"->"printf"`)

	for _, suffix := range []string{".init.ir.txt", ".init.fcg.txt", ".opt.ir.txt", ".opt.fcg.txt"} {
		assert.FileExists(t, config.OutName+suffix)
	}
	initIR, err := os.ReadFile(config.OutName + ".init.ir.txt")
	require.NoError(t, err)
	assert.Contains(t, string(initIR), "a = 1;")

	assert.Contains(t, logs.String(), "optimized program")
	assert.Contains(t, logs.String(), "removedStores=1")
	assert.Contains(t, logs.String(), "function is never called")
	assert.Contains(t, logs.String(), "func=unused")
}

func TestRunWithoutOptimizer(t *testing.T) {
	path, config := setup(t, progYAML)
	config.OptimizeIR = false

	var out, logs bytes.Buffer
	result := RunWithOutput(path, config, &out, &logs)
	require.Equal(t, RunSuccessful, result, logs.String())
	assert.Equal(t, "a=2\n", out.String())
	assert.NotContains(t, logs.String(), "optimized program")

	ir, err := os.ReadFile(config.OutName + ".ir")
	require.NoError(t, err)
	assert.Contains(t, string(ir), "a = 1;")
	assert.NoFileExists(t, config.OutName+".dot")
}

func TestRunResults(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		modify func(config *c.Config)
		want   Result
	}{
		{
			name:   "invalid config",
			src:    progYAML,
			modify: func(config *c.Config) { config.Workers = 0 },
			want:   RunFailedWithConfig,
		},
		{
			name: "malformed input",
			src:  "funcs: [{name: main, body: {foo: 1}}]",
			want: RunFailedWithBuilder,
		},
		{
			name:   "missing entry",
			src:    progYAML,
			modify: func(config *c.Config) { config.Entry = "start" },
			want:   RunFailedWithBuilder,
		},
		{
			name: "too deep for optimizer",
			src:  progYAML,
			modify: func(config *c.Config) {
				config.MaxTreeDepth = 1
				config.OnTooDeep = c.FailRun
			},
			want: RunFailedWithOptimizer,
		},
		{
			name: "too deep but skipped",
			src:  progYAML,
			modify: func(config *c.Config) {
				config.MaxTreeDepth = 1
			},
			want: RunSuccessfulButWithWarnings,
		},
		{
			name: "builder warnings",
			src:  progYAML + "version: 1\n",
			want: RunSuccessfulButWithWarnings,
		},
		{
			name: "call to undeclared function",
			src: `funcs:
  - name: main
    body: {call: {name: puts}}
`,
			want: RunFailedWithCodegen,
		},
		{
			name: "division by zero",
			src: `funcs:
  - name: main
    returns: int
    body: {return: {div: [{int: 1}, {int: 0}]}}
`,
			want: RunFailedExecuting,
		},
		{
			name: "unwritable output",
			src:  progYAML,
			modify: func(config *c.Config) {
				config.OutName = filepath.Join(config.OutName, "missing", "out")
			},
			want: RunFailedWritingOutputFiles,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path, config := setup(t, test.src)
			if test.modify != nil {
				test.modify(config)
			}
			var out, logs bytes.Buffer
			result := RunWithOutput(path, config, &out, &logs)
			assert.Equal(t, test.want, result, logs.String())
		})
	}

	path, config := setup(t, progYAML)
	assert.Equal(t, RunFailedWithBuilder, RunWithOutput(path+".missing", config, nil, new(bytes.Buffer)))
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "successful", RunSuccessful.String())
	assert.Equal(t, "failed with optimizer", RunFailedWithOptimizer.String())
	assert.Equal(t, "Result(42)", Result(42).String())
}
