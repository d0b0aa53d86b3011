package canonical_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-etl/salesledger/pkg/canonical"
	"github.com/mosaic-etl/salesledger/pkg/errors"
)

func TestLoadAliasFile(t *testing.T) {
	t.Run("lists and scalars", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "columns_aliases_OZ.yaml")
		doc := `articul_product:
  - Артикул товара
  - SKU
ordered: Количество заказов
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		at, err := canonical.LoadAliasFile(path)
		require.NoError(t, err)

		name, ok := at.Lookup("Количество заказов")
		assert.True(t, ok)
		assert.Equal(t, "ordered", name)

		name, ok = at.Lookup("sku")
		assert.True(t, ok)
		assert.Equal(t, "articul_product", name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := canonical.LoadAliasFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{[broken"), 0o644))
		_, err := canonical.LoadAliasFile(path)
		assert.Error(t, err)
	})

	t.Run("cross-field collision surfaces as config error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clash.yaml")
		doc := `ordered:
  - Кол-во
returned:
  - кол во
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
		_, err := canonical.LoadAliasFile(path)
		require.Error(t, err)
		var cfgErr *errors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}
