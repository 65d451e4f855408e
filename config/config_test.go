package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, []string{ReachabilityPass, LivenessPass}, c.Passes)
	assert.Equal(t, SkipFunc, c.OnTooDeep)
	assert.True(t, c.OptimizeIR)
	assert.Equal(t, "main", c.Entry)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.MaxTreeDepth = 0
	c.Workers = -1
	c.OnTooDeep = "ignore"
	c.Passes = []string{LivenessPass, "inline"}
	c.OutFormats = map[string]bool{"ir": true, "svg": true}
	c.LogLevel = "loud"

	err := c.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"max tree depth must be positive, got 0",
		"workers must be positive, got -1",
		`unknown too deep policy "ignore"`,
		`unknown pass "inline"`,
		`unknown output format "svg"`,
		"loud",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"MAX_TREE_DEPTH", "WORKERS", "PASSES", "ON_TOO_DEEP", "OPTIMIZE",
		"ENTRY", "DEBUG", "OUT", "OUT_FORMATS", "LOG_LEVEL",
	} {
		// Registers the variable for restoring after the test.
		t.Setenv(EnvPrefix+name, "")
		os.Unsetenv(EnvPrefix + name)
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"WORKERS", "4")
	t.Setenv(EnvPrefix+"PASSES", "liveness, ,reachability")
	t.Setenv(EnvPrefix+"OPTIMIZE", "false")
	t.Setenv(EnvPrefix+"OUT_FORMATS", "dot")

	c := Default()
	require.NoError(t, c.LoadEnv(""))
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, []string{LivenessPass, ReachabilityPass}, c.Passes)
	assert.False(t, c.OptimizeIR)
	assert.Equal(t, map[string]bool{"dot": true}, c.OutFormats)
	assert.Equal(t, Default().MaxTreeDepth, c.MaxTreeDepth)
	assert.Equal(t, "main", c.Entry)
	assert.NoError(t, c.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"ENTRY", "start")

	path := filepath.Join(t.TempDir(), ".env")
	content := "DEADOPT_ENTRY=ignored\nDEADOPT_MAX_TREE_DEPTH=64\nDEADOPT_ON_TOO_DEEP=fail\nDEADOPT_DEBUG=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c := Default()
	require.NoError(t, c.LoadEnv(path))
	// The environment takes precedence over the file.
	assert.Equal(t, "start", c.Entry)
	assert.Equal(t, 64, c.MaxTreeDepth)
	assert.Equal(t, FailRun, c.OnTooDeep)
	assert.True(t, c.Debug)

	err := Default().LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b,"))
	assert.Equal(t, map[string]bool{"ir": true, "dot": true}, ParseFormats("ir,dot,ir"))
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer
	c := Default()
	c.LogLevel = "warn"
	logger := c.NewLogger(&out)

	logger.Info().Msg("hidden")
	logger.Warn().Str("func", "main").Msg("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "| WARN  |")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, out.String(), "func=main")
}
