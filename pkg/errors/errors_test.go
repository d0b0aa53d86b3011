package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mosaic-etl/salesledger/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "sheet",
			ID:       "OZ",
		}
		assert.Equal(t, "sheet OZ not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("alias file", "mappings/columns_aliases_OZ.yaml")
		assert.Contains(t, err.Error(), "alias file")
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("sheet", "WB")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "end",
			Message: "must not precede start",
		}
		assert.Equal(t, "validation failed for field end: must not precede start", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "no platforms configured",
		}
		assert.Equal(t, "validation failed: no platforms configured", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("week", "20253", "must be YYYYWW")
		assert.Contains(t, err.Error(), "week")
		assert.Contains(t, err.Error(), "must be YYYYWW")
	})
}

func TestInvalidArticulsError(t *testing.T) {
	t.Run("with samples", func(t *testing.T) {
		err := pkgerrors.NewInvalidArticulsError("in/OZ/report.xlsx", 3, []string{"abc", "12"})
		assert.Contains(t, err.Error(), "3 invalid articuls")
		assert.Contains(t, err.Error(), "in/OZ/report.xlsx")
		assert.Contains(t, err.Error(), "abc")
		assert.True(t, pkgerrors.IsInvalidArticuls(err))
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without samples", func(t *testing.T) {
		err := pkgerrors.NewInvalidArticulsError("x.csv", 1, nil)
		assert.Equal(t, "1 invalid articuls in file x.csv", err.Error())
	})

	t.Run("plain errors are not articul failures", func(t *testing.T) {
		assert.False(t, pkgerrors.IsInvalidArticuls(errors.New("boom")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "aliases",
			Message:   "spelling claimed twice",
		}
		assert.Contains(t, err.Error(), "aliases")
		assert.Contains(t, err.Error(), "spelling claimed twice")
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewConfigError("paths", "input_dir cannot be empty", nil)
		assert.Contains(t, err.Error(), "paths")
		assert.Contains(t, err.Error(), "input_dir")
	})
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "read",
			Path:      "/tmp/base.xlsx",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/base.xlsx")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/report.xlsx", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		baseErr := errors.New("corrupt zip")
		err := pkgerrors.WrapIO("open", "registry.xlsx", baseErr)
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "open", ioErr.Operation)
		assert.Equal(t, "registry.xlsx", ioErr.Path)
	})

	t.Run("wrap nil is nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	})
}

func TestParseError(t *testing.T) {
	err := pkgerrors.WrapParse("yaml", "columns_aliases_OZ.yaml", errors.New("bad indent"))
	parseErr, ok := err.(*pkgerrors.ParseError)
	require.True(t, ok)
	assert.Equal(t, "yaml", parseErr.Format)
	assert.Contains(t, err.Error(), "columns_aliases_OZ.yaml")
	assert.Contains(t, err.Error(), "bad indent")
}

func TestResourceError(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		err := pkgerrors.NewResourceError("flush", "registry", "columns_registry.xlsx", errors.New("locked"))
		assert.Contains(t, err.Error(), "flush")
		assert.Contains(t, err.Error(), "registry")
		assert.Contains(t, err.Error(), "locked")
	})

	t.Run("wrap helper passes nil through", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapResource("load", "history", "", nil))
	})
}
