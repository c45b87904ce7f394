package header

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `
meta:
  OBJECT: M31
  EXPTIME: 30
  AIRMASS: 1.0
  CALIBRATED: true
  COMMENT: null
  MJD:
    START(day): 59000.0
    END(day): 59001.5
rows: 3
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Rows)
	assert.Equal(t, []string{"OBJECT", "EXPTIME", "AIRMASS", "CALIBRATED", "COMMENT", "MJD"}, doc.Meta.Keys())

	want := map[string]Kind{
		"OBJECT":     KindString,
		"EXPTIME":    KindInt,
		"AIRMASS":    KindFloat,
		"CALIBRATED": KindBool,
		"COMMENT":    KindNull,
		"MJD":        KindNested,
	}

	for k, v := range doc.Meta.All() {
		assert.Equal(t, want[k], v.Kind(), "key %s", k)
	}

	mjd, _ := doc.Meta.Get("MJD")
	assert.Equal(t, []string{"START(day)", "END(day)"}, mjd.Header().Keys())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing meta", "rows: 2\n", "no meta block"},
		{"sequence value", "meta:\n  A: [1, 2]\n", "expected scalar or mapping"},
		{"meta not mapping", "meta: 5\n", "expected mapping"},
		{"negative rows", "meta: {A: 1}\nrows: -1\n", "negative row count"},
		{"bad int tag", "meta:\n  A: !!int abc\n", `key "A"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_Alias(t *testing.T) {
	doc, err := Parse([]byte("base: &b\n  X: 1\nmeta:\n  A: *b\n"))
	require.NoError(t, err)

	a, _ := doc.Meta.Get("A")
	require.True(t, a.IsNested())
	assert.Equal(t, Int(1), mustGet(t, a.Header(), "X"))
}

func TestMarshal_RoundTripPreservesOrder(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	data, err := Marshal(doc)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)

	if diff := cmp.Diff(doc.Meta.Keys(), again.Meta.Keys()); diff != "" {
		t.Errorf("key order changed (-want +got):\n%s", diff)
	}

	assert.True(t, doc.Meta.Equal(again.Meta), "round trip changed header:\n%s", spew.Sdump(again.Meta))
}

func TestMarshal_FloatsStayFloats(t *testing.T) {
	h := New()
	h.Set("F", Float(5))
	h.Set("S", String("42"))

	data, err := Marshal(&Document{Meta: h})
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, Float(5), mustGet(t, again.Meta, "F"))
	assert.Equal(t, String("42"), mustGet(t, again.Meta, "S"))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "5.0", formatFloat(5))
	assert.Equal(t, "59000.5", formatFloat(59000.5))
	assert.Equal(t, "1e+21", formatFloat(1e21))
	assert.Equal(t, ".nan", formatFloat(math.NaN()))
}

func TestWriteFileLoadFile(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(doc, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, doc.Meta.Equal(loaded.Meta))
	assert.Equal(t, doc.Rows, loaded.Rows)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func mustGet(t *testing.T, h *Header, key string) Value {
	t.Helper()

	v, ok := h.Get(key)
	require.True(t, ok, "missing key %s", key)

	return v
}
