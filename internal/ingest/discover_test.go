package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-etl/salesledger/internal/ingest"
)

func TestDiscover(t *testing.T) {
	t.Run("sorted xlsx and csv", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, "OZ")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for _, name := range []string{"week2.xlsx", "week1.csv", "notes.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
		}

		files := ingest.Discover(root, "OZ")

		assert.Equal(t, []string{
			filepath.Join(dir, "week1.csv"),
			filepath.Join(dir, "week2.xlsx"),
		}, files)
	})

	t.Run("missing platform directory", func(t *testing.T) {
		files := ingest.Discover(t.TempDir(), "WB")
		assert.Empty(t, files)
	})

	t.Run("empty platform directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "YM"), 0o755))

		files := ingest.Discover(root, "YM")
		assert.Empty(t, files)
	})
}
