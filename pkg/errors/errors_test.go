package errors_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	pkgerrors "github.com/agentstation/revcheck/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "concurrency",
			Message: "must be positive",
		}
		assert.Equal(t, "validation failed for field concurrency: must be positive", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "nil table"}
		assert.Equal(t, "validation failed: nil table", err.Error())
		assert.True(t, pkgerrors.IsValidationError(fmt.Errorf("reconcile: %w", err)))
	})
}

func TestSchemaError(t *testing.T) {
	t.Run("with stage", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("home", "deduplication", "Call Number", "Revision Description")
		assert.Equal(t, "home table is missing column(s) Call Number, Revision Description; skipping deduplication", err.Error())
	})

	t.Run("without stage", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("client", "", "Revision No.")
		assert.Equal(t, "client table is missing column(s) Revision No.", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad yaml")
	err := pkgerrors.WrapConfig("viper", "could not read config", base)
	assert.Equal(t, "configuration error in viper: could not read config: bad yaml", err.Error())
	assert.ErrorIs(t, err, base)

	noComponent := &pkgerrors.ConfigError{Message: "empty"}
	assert.Equal(t, "configuration error: empty", noComponent.Error())
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := pkgerrors.WrapIO("open", "/tmp/client.csv", fs.ErrNotExist)
		assert.Contains(t, err.Error(), "IO error during open of /tmp/client.csv")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("without path", func(t *testing.T) {
		err := pkgerrors.WrapIO("write", "", errors.New("disk full"))
		assert.Equal(t, "IO error during write: disk full", err.Error())
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "file and line",
			err:  &pkgerrors.ParseError{Format: "csv", File: "home.csv", Line: 12, Message: "bare quote"},
			want: "parse error in csv at home.csv:12: bare quote",
		},
		{
			name: "file only",
			err:  &pkgerrors.ParseError{Format: "xlsx", File: "home.xlsx", Message: "zip: not a valid zip file"},
			want: "parse error in xlsx file home.xlsx: zip: not a valid zip file",
		},
		{
			name: "no file",
			err:  &pkgerrors.ParseError{Format: "yaml", Message: "unexpected key"},
			want: "yaml parse error: unexpected key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestResourceError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapResource("write", "workbook", "out.xlsx", base)
	assert.Equal(t, "failed to write workbook out.xlsx: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
		assert.NoError(t, pkgerrors.WrapParse("csv", "x", nil))
		assert.NoError(t, pkgerrors.WrapResource("load", "client table", "", nil))
		assert.NoError(t, pkgerrors.WrapConfig("viper", "read", nil))
	})

	t.Run("wraps", func(t *testing.T) {
		base := errors.New("boom")

		var ioErr *pkgerrors.IOError
		require.ErrorAs(t, pkgerrors.WrapIO("read", "client.csv", base), &ioErr)
		assert.Equal(t, "client.csv", ioErr.Path)

		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, pkgerrors.WrapParse("csv", "client.csv", base), &parseErr)
		assert.ErrorIs(t, parseErr, base)

		var cfgErr *pkgerrors.ConfigError
		require.ErrorAs(t, pkgerrors.WrapConfig("viper", "read", base), &cfgErr)
		assert.Equal(t, "viper", cfgErr.Component)
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.False(t, errors.Is(pkgerrors.ErrInvalidInput, pkgerrors.ErrUnsupportedFormat))
	assert.True(t, pkgerrors.IsUnsupportedFormat(fmt.Errorf("reader: %w", pkgerrors.ErrUnsupportedFormat)))
	assert.False(t, pkgerrors.IsValidationError(pkgerrors.ErrUnsupportedFormat))
}
