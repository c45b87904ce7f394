package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdrnorm/internal/header"
	"hdrnorm/internal/keyword"
)

func testHeader(t *testing.T) *header.Header {
	t.Helper()

	h, err := header.FromMap(map[string]any{
		"OBJECT":  "M31",
		"EXPTIME": 30,
		"AIRMASS": 1.2,
		"FLAT":    true,
		"FILTER":  nil,
		"MJD": map[string]any{
			"START(day)": 59000.0,
			"END(day)":   59001.5,
		},
	})
	require.NoError(t, err)

	return h
}

func TestProject_Broadcast(t *testing.T) {
	h := testHeader(t)

	col, err := Project(h, keyword.Single("OBJECT"), 5, "")
	require.NoError(t, err)

	assert.Equal(t, "OBJECT", col.Name)
	assert.Empty(t, col.Unit)
	assert.Equal(t, header.KindString, col.Kind)
	require.Equal(t, 5, col.Len())

	want, _ := h.Get("OBJECT")
	for i := range col.Len() {
		assert.Equal(t, want, col.At(i))
	}
}

func TestProject_Units(t *testing.T) {
	h := testHeader(t)

	tests := []struct {
		name     string
		unit     string
		wantName string
		wantUnit string
	}{
		{"resolved unit", "", "MJD_START", "day"},
		{"override", "d", "MJD_START", "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := Project(h, keyword.Sequence("MJD", "START"), 2, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, col.Name)
			assert.Equal(t, tt.wantUnit, col.Unit)
			assert.Equal(t, header.KindFloat, col.Kind)
		})
	}
}

func TestProject_JoinSeparator(t *testing.T) {
	col, err := Project(testHeader(t), keyword.Sequence("MJD", "END"), 1, "", WithJoinSeparator("."))
	require.NoError(t, err)
	assert.Equal(t, "MJD.END", col.Name)
}

func TestProject_ZeroRows(t *testing.T) {
	col, err := Project(testHeader(t), keyword.Single("EXPTIME"), 0, "s")
	require.NoError(t, err)
	assert.Zero(t, col.Len())
	assert.Equal(t, "s", col.Unit)
}

func TestProject_Errors(t *testing.T) {
	h := testHeader(t)
	before := h.Clone()

	_, err := Project(h, keyword.Single("NOPE"), 3, "")
	assert.ErrorIs(t, err, keyword.ErrNotFound)

	var nf *keyword.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = Project(h, keyword.Single("OBJECT"), -1, "")
	assert.ErrorIs(t, err, ErrInvalidRows)

	_, err = Project(h, keyword.Sequence("MJD"), 3, "")
	assert.ErrorIs(t, err, ErrNotScalar)

	_, err = Project(h, keyword.Sequence(), 3, "")
	assert.ErrorIs(t, err, keyword.ErrInvalidSpec)

	assert.True(t, before.Equal(h))
}

func TestAddEpochColumns(t *testing.T) {
	h := testHeader(t)

	tbl, err := NewTable(4)
	require.NoError(t, err)

	require.NoError(t, AddHeaderColumn(tbl, h, keyword.Single("OBJECT"), ""))
	require.NoError(t, AddEpochColumns(tbl, h))

	assert.Equal(t, []string{"OBJECT", EpochStart, EpochEnd}, tbl.Names())

	start, ok := tbl.Column(EpochStart)
	require.True(t, ok)
	assert.Equal(t, EpochUnit, start.Unit)
	assert.Equal(t, header.Float(59000), start.At(3))

	end, ok := tbl.Column(EpochEnd)
	require.True(t, ok)
	assert.Equal(t, header.Float(59001.5), end.At(0))

	_, ok = tbl.Column("MJD_START")
	assert.False(t, ok)
}

func TestAddEpochColumns_Missing(t *testing.T) {
	h := header.New()
	inner := header.New()
	inner.Set("START", header.Float(1))
	h.Set("MJD", header.Nested(inner))

	tbl, err := NewTable(1)
	require.NoError(t, err)

	err = AddEpochColumns(tbl, h)
	assert.ErrorIs(t, err, keyword.ErrNotFound)
	assert.Zero(t, tbl.Len())
}

func TestAddEpochColumns_AlreadyPresent(t *testing.T) {
	h := testHeader(t)

	tbl, err := NewTable(1)
	require.NoError(t, err)
	require.NoError(t, tbl.Add(&Column{Name: EpochEnd, Kind: header.KindInt, Values: []header.Value{header.Int(0)}}))

	err = AddEpochColumns(tbl, h)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
	assert.Equal(t, []string{EpochEnd}, tbl.Names())
}
