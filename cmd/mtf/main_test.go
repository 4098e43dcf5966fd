package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

// TestCLI_SynthConvertInspect drives the three commands end to end.
func TestCLI_SynthConvertInspect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "act.csv")
	out := filepath.Join(dir, "mtf_images.npy")

	run(t, "synth", "--kind", "chirp", "--rows", "6", "--len", "40", "--seed", "3", "-o", in)
	run(t, "convert", in, out, "--bins", "4", "--image-size", "8", "--workers", "2", "--log-format", "json", "--log-level", "error")

	summary := run(t, "inspect", out)
	assert.True(t, strings.HasPrefix(summary, "shape=[6 8 8]"), summary)
}

func TestCLI_Version(t *testing.T) {
	assert.Contains(t, run(t, "version"), "mtf version ")
}
