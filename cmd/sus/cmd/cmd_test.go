package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/ssargent/sus/pkg/api"
	"github.com/ssargent/sus/pkg/arrayio"
	"github.com/ssargent/sus/pkg/catalog"
	"github.com/ssargent/sus/pkg/config"
	"github.com/ssargent/sus/pkg/pipeline"
	"github.com/ssargent/sus/pkg/suffix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeConfig saves a default config, adjusted by mutate, in a temporary
// directory and returns its path.
func writeConfig(t *testing.T, mutate func(*config.Config)) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Logging.Level = "error"
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, path))
	return path
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

var runIDPattern = regexp.MustCompile(`RUN = (\S+)`)

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "conf", "sus.yaml")
	catalogDir := filepath.Join(dir, "catalog")

	out, err := execute("--config", configPath, "init", "--catalog-dir", catalogDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to "+configPath)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, catalogDir, cfg.CatalogDir)
	assert.Equal(t, 32, cfg.IntWidth)

	_, err = execute("--config", configPath, "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute("--config", configPath, "init", "--force")
	require.NoError(t, err)
	cfg, err = config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.CatalogDir)
}

func TestRunCommand(t *testing.T) {
	catalogDir := filepath.Join(t.TempDir(), "catalog")
	configPath := writeConfig(t, func(c *config.Config) { c.CatalogDir = catalogDir })
	input := writeInput(t, "reads.fasta", ">r1\nACGT\nAC\n>r2\nGGA\n")

	out, err := execute("--config", configPath, "run", input, "-o", "-c", "-A", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "k=unbounded")
	assert.Contains(t, out, "## HTX_LSUS ##")
	assert.Contains(t, out, "OK!")

	lsus, err := arrayio.ReadTyped[uint32](filepath.Join(filepath.Dir(input), "reads.4"), "lsus")
	require.NoError(t, err)
	assert.Len(t, lsus, 6+1+3+1+1)

	match := runIDPattern.FindStringSubmatch(out)
	require.Len(t, match, 2)
	id := match[1]

	out, err = execute("--config", configPath, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "HTX_LSUS")

	out, err = execute("--config", configPath, "runs", "show", id, "--format", "json")
	require.NoError(t, err)
	var m catalog.Manifest
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, id, m.ID)
	assert.Equal(t, input, m.Input)
	assert.Equal(t, "fasta", m.Format)
	assert.Equal(t, 2, m.Records)
	assert.Equal(t, 32, m.IntWidth)
	assert.True(t, m.Checked)
	path, ok := m.Output("lsus")
	assert.True(t, ok)
	assert.FileExists(t, path)

	out, err = execute("--config", configPath, "runs", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Records:")
	assert.Contains(t, out, "32 bits")

	out, err = execute("--config", configPath, "runs", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed run "+id)

	_, err = execute("--config", configPath, "runs", "show", id)
	assert.ErrorIs(t, err, catalog.ErrRunNotFound)

	out, err = execute("--config", configPath, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs found")
}

func TestRunCommand_FlagsOverrideConfig(t *testing.T) {
	configPath := writeConfig(t, func(c *config.Config) {
		c.IntWidth = 64
		c.MaxRecords = 1
	})
	input := writeInput(t, "lines.txt", "abc\nabd\nabe\n")
	metricsFile := filepath.Join(t.TempDir(), "sus.prom")

	out, err := execute("--config", configPath, "run", input, "-o", "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "k=1")
	assert.Contains(t, out, "sizeof(int) = 8 bytes")
	assert.Contains(t, out, "N = 5 bytes")
	assert.FileExists(t, filepath.Join(filepath.Dir(input), "lines.8.lsus"))
	assert.NotContains(t, out, "RUN =")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sus_runs_total{status="success"} 1`)

	out, err = execute("--config", configPath, "run", input, "-k", "2", "--int-width", "32", "-p")
	require.NoError(t, err)
	assert.Contains(t, out, "k=2")
	assert.Contains(t, out, "sizeof(int) = 4 bytes")
	assert.Contains(t, out, "N = 9 bytes")
	assert.Contains(t, out, "LSUS[0]:")
}

func TestRunCommand_Errors(t *testing.T) {
	configPath := writeConfig(t, nil)
	input := writeInput(t, "x.txt", "acgt\n")

	_, err := execute("--config", configPath, "run", input, "-A", "9")
	assert.ErrorIs(t, err, suffix.ErrUnknownVariant)

	_, err = execute("--config", configPath, "run", input, "--int-width", "16")
	assert.ErrorIs(t, err, pipeline.ErrUnsupportedWidth)

	_, err = execute("--config", configPath, "run", input, "-k", "-1")
	assert.Error(t, err)

	_, err = execute("--config", configPath, "run")
	assert.Error(t, err)

	_, err = execute("--config", filepath.Join(t.TempDir(), "missing.yaml"), "run", input)
	assert.ErrorContains(t, err, "does not exist")
}

func TestRunsCommand_NoCatalog(t *testing.T) {
	configPath := writeConfig(t, nil)

	_, err := execute("--config", configPath, "runs", "list")
	assert.ErrorIs(t, err, ErrNoCatalog)

	_, err = execute("--config", configPath, "runs", "list", "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")

	out, err := execute("--config", configPath, "runs", "list", "--catalog-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No runs found")
}

func TestServeCommand(t *testing.T) {
	catalogDir := t.TempDir()
	configPath := writeConfig(t, func(c *config.Config) { c.Server.Port = 9999 })

	original := serve
	defer func() { serve = original }()

	var got api.ServerConfig
	serve = func(ctx context.Context, runs api.RunStore, cfg api.ServerConfig, a *app) error {
		got = cfg
		_, err := runs.List()
		return err
	}

	_, err := execute("--config", configPath, "serve", "--catalog-dir", catalogDir, "--api-key", "k")
	require.NoError(t, err)
	assert.Equal(t, api.ServerConfig{Bind: "127.0.0.1", Port: 9999, APIKey: "k"}, got)

	_, err = execute("--config", configPath, "serve", "--catalog-dir", catalogDir, "--port", "9300", "--bind", "0.0.0.0")
	require.NoError(t, err)
	assert.Equal(t, api.ServerConfig{Bind: "0.0.0.0", Port: 9300}, got)

	_, err = execute("--config", configPath, "serve")
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.Logging{Level: "debug", Format: "json"})
	require.NoError(t, err)
	logger.Debug("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLogger(&buf, config.Logging{Level: "loud"})
	assert.Error(t, err)
}
