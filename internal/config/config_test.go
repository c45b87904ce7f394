package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"hdrnorm/internal/keyword"
	"hdrnorm/internal/shorten"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "-", cfg.Separator)
	assert.Equal(t, "_", cfg.JoinSeparator)
	assert.False(t, cfg.Shorten.Enabled)
	assert.Equal(t, 8, cfg.Shorten.Limit)
	assert.Equal(t, "SUBS_", cfg.Shorten.Prefix)
	assert.Equal(t, shorten.PolicyError, cfg.Shorten.Policy)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "hdrnorm.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Separator)
	assert.Equal(t, "_", cfg.JoinSeparator, "absent keys keep defaults")
	assert.True(t, cfg.Shorten.Enabled)
	assert.Equal(t, 6, cfg.Shorten.Limit)
	assert.Equal(t, "aeiou", cfg.Shorten.Vowels)
	assert.Equal(t, shorten.PolicySuffix, cfg.Shorten.Policy)
	assert.True(t, cfg.Epochs)

	require.Len(t, cfg.Columns, 3)
	assert.Equal(t, ColumnConfig{Keyword: keyword.Single("OBJECT")}, cfg.Columns[0])
	assert.Equal(t, ColumnConfig{Keyword: keyword.Sequence("MJD", "START"), Unit: "d"}, cfg.Columns[1])
	assert.Equal(t, ColumnConfig{Keyword: keyword.Sequence("MJD", "END"), Unit: "day"}, cfg.Columns[2])
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HDRNORM_SEPARATOR", "__")
	t.Setenv("HDRNORM_SHORTEN_LIMIT", "10")
	t.Setenv("HDRNORM_SHORTEN_POLICY", "overwrite")
	t.Setenv("HDRNORM_COLUMNS", "EXPTIME:s,DATE")
	t.Setenv("HDRNORM_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join("testdata", "hdrnorm.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "__", cfg.Separator)
	assert.Equal(t, 10, cfg.Shorten.Limit)
	assert.True(t, cfg.Shorten.Enabled, "file value survives")
	assert.Equal(t, shorten.PolicyOverwrite, cfg.Shorten.Policy)
	assert.Equal(t, []ColumnConfig{
		{Keyword: keyword.Single("EXPTIME"), Unit: "s"},
		{Keyword: keyword.Single("DATE")},
	}, cfg.Columns)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("HDRNORM_EPOCHS", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Epochs)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "unknown.yaml"))
		assert.ErrorContains(t, err, "lenght")
	})

	t.Run("bad env policy", func(t *testing.T) {
		t.Setenv("HDRNORM_SHORTEN_POLICY", "lossy")

		_, err := Load("")
		assert.ErrorContains(t, err, "parse env")
		assert.ErrorContains(t, err, "lossy")
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("HDRNORM_SHORTEN_LIMIT", "0")
		t.Setenv("HDRNORM_LOG_LEVEL", "loud")

		_, err := Load("")
		assert.ErrorContains(t, err, "shorten.limit")
		assert.ErrorContains(t, err, "log_level")
	})
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in      string
		want    ColumnConfig
		wantErr bool
	}{
		{in: "OBJECT", want: ColumnConfig{Keyword: keyword.Single("OBJECT")}},
		{in: "EXPTIME:s", want: ColumnConfig{Keyword: keyword.Single("EXPTIME"), Unit: "s"}},
		{in: "MJD/START:day", want: ColumnConfig{Keyword: keyword.Sequence("MJD", "START"), Unit: "day"}},
		{in: ":day", wantErr: true},
		{in: "", wantErr: true},
		{in: "MJD/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColumn(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, keyword.ErrInvalidSpec)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()

	assert.Len(t, cfg.FlattenOptions(), 1)
	assert.Len(t, cfg.ShortenOptions(), 4)
}
