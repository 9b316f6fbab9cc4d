package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopecli/internal/config"
	"scopecli/internal/shared/testutil"
)

// workspace switches into a temp dir holding a small-render config
func workspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	logger := slog.Default()
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		slog.SetDefault(logger)
	})

	cfgPath := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
logging:
  level: error
render:
  width_in: 3
  height_in: 2
  dpi: 40
`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "in"), 0755))
	return dir, cfgPath
}

func TestRunBatch(t *testing.T) {
	dir, cfgPath := workspace(t)
	in := filepath.Join(dir, "in")
	testutil.WriteCapture(t, in, "SINE_10kHz.csv", testutil.DirectCapture(testutil.DirectRows(10)...))
	testutil.WriteCapture(t, in, "SINE_10kHz_HPF.csv", testutil.DirectCapture(testutil.DirectRows(10)...))
	testutil.WriteCapture(t, in, "broken.csv", testutil.HeaderlessCapture(testutil.DirectRows(3)...))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-config", cfgPath,
		"-in", "in",
		"-out", "out",
		"-workers", "2",
		"-filter-sets",
		"-metrics", "scope.prom",
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "Found 3 capture files")
	assert.Contains(t, out, "Total files: 3")
	assert.Contains(t, out, "Succeeded:   2")
	assert.Contains(t, out, "Failed:      1")
	assert.Contains(t, out, "  - broken.csv (FORMAT)")
	assert.Contains(t, out, "Comparison chart: sine_waves_comparison.png")
	assert.Contains(t, out, "Comparison chart: SINE_10kHz_filter_comparison.png")

	for _, name := range []string{
		"10kHz_Original_characteristic.png",
		"10kHz_HPF_characteristic.png",
		"sine_waves_comparison.png",
		"SINE_10kHz_filter_comparison.png",
		config.DefaultSummaryWorkbook,
	} {
		assert.FileExists(t, filepath.Join(dir, "out", name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "out", "broken_Original_characteristic.png"))
	assert.FileExists(t, filepath.Join(dir, "scope.prom"))
}

func TestRunNoFiles(t *testing.T) {
	_, cfgPath := workspace(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", cfgPath, "-in", "in", "-out", "out"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "No capture files")
}

func TestRunSetupErrors(t *testing.T) {
	tests := []struct {
		name string
		args func(cfgPath string) []string
		code int
	}{
		{
			name: "missing config file",
			args: func(string) []string { return []string{"-config", "nope.yaml"} },
			code: 1,
		},
		{
			name: "invalid workers",
			args: func(cfgPath string) []string { return []string{"-config", cfgPath, "-workers", "0"} },
			code: 1,
		},
		{
			name: "missing input dir",
			args: func(cfgPath string) []string { return []string{"-config", cfgPath, "-in", "absent"} },
			code: 1,
		},
		{
			name: "unknown flag",
			args: func(string) []string { return []string{"-bogus"} },
			code: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cfgPath := workspace(t)
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(context.Background(), tt.args(cfgPath), &stdout, &stderr))
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{"-version"}, &stdout, &bytes.Buffer{}))
	assert.Equal(t, config.AppName+" "+config.AppVersion, strings.TrimSpace(stdout.String()))
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	flags := &cliFlags{workers: 9, groups: false, summary: "", strict: true}
	applyFlags(cfg, flags, map[string]bool{"workers": true, "groups": true, "summary": true, "strict": true})

	assert.Equal(t, 9, cfg.Batch.Workers)
	assert.False(t, cfg.Batch.Groups)
	assert.True(t, cfg.Batch.StrictChannelField)
	assert.Empty(t, cfg.Export.SummaryWorkbook)
	assert.Equal(t, config.DefaultInputDir, cfg.Paths.InputDir)
}
