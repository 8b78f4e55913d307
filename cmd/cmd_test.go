package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DIR_DIFF_LOG_LEVEL", "error")
	t.Setenv("DIR_DIFF_LOG_FILE", filepath.Join(t.TempDir(), "dd.log"))
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() {
		out = prev
		flagDiffJSON, flagListJSON, flagExportOutput = false, false, ""
	})

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mkdir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	return dir
}

func TestDiffCommand(t *testing.T) {
	left := mkdir(t, "a", "b", "c")
	right := mkdir(t, "b", "c", "d")

	got, err := run(t, "diff", left, right)
	require.NoError(t, err)

	assert.Equal(t,
		"only in "+left+" (1):\n  a\nonly in "+right+" (1):\n  d\n",
		got)
}

func TestDiffCommandJSON(t *testing.T) {
	left := mkdir(t, "a", "b")
	right := mkdir(t, "b")

	got, err := run(t, "diff", "--json", left, right)
	require.NoError(t, err)

	var sides []diffSide
	require.NoError(t, json.Unmarshal([]byte(got), &sides))
	require.Len(t, sides, 2)
	assert.Equal(t, left, sides[0].Origin)
	assert.Equal(t, []string{"a"}, sides[0].Only)
	assert.Empty(t, sides[1].Only)
}

func TestDiffCommandAgainstExportedListing(t *testing.T) {
	dir := mkdir(t, "a", "b")
	listing := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(listing, []byte(`["a","z"]`), 0o644))

	got, err := run(t, "diff", dir, listing)
	require.NoError(t, err)

	assert.Contains(t, got, "only in "+dir+" (1):\n  b\n")
	assert.Contains(t, got, "only in "+listing+" (1):\n  z\n")
}

func TestListCommand(t *testing.T) {
	dir := mkdir(t, "b", "a")

	got, err := run(t, "list", dir)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", got)
}

func TestExportCommandRoundTrip(t *testing.T) {
	dir := mkdir(t, "x", "y")
	dest := filepath.Join(t.TempDir(), "listing.json")

	got, err := run(t, "export", dir, "-o", dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "wrote 2 entries"), got)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"x\",\n  \"y\"\n]\n", string(data))

	listed, err := run(t, "list", dest)
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", listed)
}

func TestExportCommandWriteFailure(t *testing.T) {
	dir := mkdir(t, "x")
	dest := filepath.Join(dir, "x", "nested.json") // parent is a regular file

	_, err := run(t, "export", dir, "-o", dest)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	got, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", got)
}
