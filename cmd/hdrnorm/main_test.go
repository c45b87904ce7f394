package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdrnorm/internal/header"
	"hdrnorm/internal/keyword"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func testInput() string {
	return filepath.Join("testdata", "observation.yaml")
}

func TestNormalize(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.yaml")

	_, err := execute(t, testInput(), output,
		"--shorten",
		"--column", "OBJECT",
		"--column", "INSTR/CCD/GAIN:e/ADU",
		"--epochs",
		"--catalog", filepath.Join("testdata", "catalog.yaml"))
	require.NoError(t, err)

	doc, err := header.LoadFile(output)
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Rows)
	assert.True(t, doc.Meta.IsFlat())

	for k := range doc.Meta.All() {
		if len(k) > 8 {
			assert.Contains(t, k, "SUBS_", "only substitution records may exceed the limit")
		}
	}

	r, err := keyword.Resolve(doc.Meta, keyword.Single("XPSR_TM"), "_")
	require.NoError(t, err)
	assert.Equal(t, header.Int(30), r.Value)

	assert.True(t, doc.Meta.Has("RA"))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: INSTR_CCD_GAIN")
	assert.Contains(t, string(data), "unit: e/ADU")
	assert.Contains(t, string(data), "name: epoch_end")
}

func TestNormalize_Arrow(t *testing.T) {
	dir := t.TempDir()
	arrowPath := filepath.Join(dir, "columns.arrow")

	_, err := execute(t, testInput(), filepath.Join(dir, "out.yaml"), "--epochs", "--arrow", arrowPath)
	require.NoError(t, err)

	f, err := os.Open(arrowPath)
	require.NoError(t, err)
	defer f.Close()

	rdr, err := ipc.NewReader(f)
	require.NoError(t, err)
	defer rdr.Release()

	require.True(t, rdr.Next())
	assert.Equal(t, int64(2), rdr.Record().NumRows())
	assert.Equal(t, "epoch_ini", rdr.Schema().Field(0).Name)
}

func TestNormalize_ConfigAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hdrnorm.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("separator: \".\"\nshorten:\n  enabled: true\n"), 0o644))

	t.Setenv("HDRNORM_SEPARATOR", ":")

	output := filepath.Join(dir, "out.yaml")

	_, err := execute(t, testInput(), output, "--config", cfgPath, "--shorten=false")
	require.NoError(t, err)

	doc, err := header.LoadFile(output)
	require.NoError(t, err)

	assert.True(t, doc.Meta.Has("INSTR:CCD:GAIN"), "env overrides file, flag disables shortening")
	assert.True(t, doc.Meta.Has("EXPOSURE_TIME"))
}

func TestNormalize_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"wrong arity", []string{testInput()}, "accepts 2 arg(s)"},
		{"missing input", []string{filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "out.yaml")}, "failed to read header file"},
		{"bad policy", []string{testInput(), filepath.Join(dir, "out.yaml"), "--policy", "lossy"}, "unknown collision policy"},
		{"bad column", []string{testInput(), filepath.Join(dir, "out.yaml"), "--column", "MJD/"}, "invalid keyword specification"},
		{"missing keyword", []string{testInput(), filepath.Join(dir, "out.yaml"), "--column", "AIRMASS"}, `keyword "AIRMASS" not found`},
		{"collision", []string{testInput(), filepath.Join(dir, "out.yaml"), "--shorten", "--limit", "3"}, "collide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNormalize_UsageOnArityError(t *testing.T) {
	out, err := execute(t, "only-one")
	require.Error(t, err)
	assert.Contains(t, out, "Usage:")

	out, err = execute(t, testInput(), filepath.Join(t.TempDir(), "out.yaml"), "--column", "AIRMASS")
	require.Error(t, err)
	assert.NotContains(t, out, "Usage:")
}

func TestResolve(t *testing.T) {
	out, err := execute(t, "resolve", testInput(), "OBJECT", "MJD/END", "INSTR/CCD")
	require.NoError(t, err)

	assert.Equal(t, "OBJECT = M31\nMJD_END = 59001.5 [day]\nINSTR_CCD = {1 keys}\n", out)
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	shortened := filepath.Join(dir, "short.yaml")
	restored := filepath.Join(dir, "restored.yaml")

	_, err := execute(t, testInput(), shortened, "--shorten")
	require.NoError(t, err)

	_, err = execute(t, "restore", shortened, restored)
	require.NoError(t, err)

	flat := filepath.Join(dir, "flat.yaml")
	_, err = execute(t, testInput(), flat)
	require.NoError(t, err)

	want, err := header.LoadFile(flat)
	require.NoError(t, err)

	got, err := header.LoadFile(restored)
	require.NoError(t, err)

	assert.True(t, want.Meta.Equal(got.Meta))
	assert.Equal(t, want.Rows, got.Rows)
}
