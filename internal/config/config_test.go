package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosaic-etl/salesledger/internal/config"
	"github.com/mosaic-etl/salesledger/pkg/errors"
)

const minimalConfig = `paths:
  data_dir: data
  base_file: data/base.xlsx
  input_dir: data/input
  output_dir: data/output
  logs_dir: logs
  lookup_product: data/lookup_product.xlsx
  columns_registry: data/columns_registry.xlsx
mappings:
  core: mappings/columns_core.yaml
  aliases:
    OZ: mappings/columns_aliases_OZ.yaml
    WB: /etc/salesledger/columns_aliases_WB.yaml
processing:
  default_platforms: [OZ, WB, YM]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("resolves relative paths", func(t *testing.T) {
		path := writeConfig(t, minimalConfig)
		root := filepath.Dir(path)

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(root, "data"), cfg.Paths.DataDir)
		assert.Equal(t, filepath.Join(root, "data", "base.xlsx"), cfg.Paths.BaseFile)
		assert.Equal(t, filepath.Join(root, "mappings", "columns_aliases_OZ.yaml"), cfg.Mappings.Aliases["OZ"])
		assert.Equal(t, "/etc/salesledger/columns_aliases_WB.yaml", cfg.Mappings.Aliases["WB"])
		assert.Equal(t, path, cfg.ConfigFile)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)

		assert.True(t, cfg.Processing.EnableParquet)
		assert.Equal(t, "id_key", cfg.Processing.IDColumn)
		assert.False(t, cfg.Processing.DropInvalid)
		assert.Equal(t, []string{"OZ", "WB", "YM"}, cfg.Processing.DefaultPlatforms)
	})

	t.Run("environment overrides document", func(t *testing.T) {
		t.Setenv("SALESLEDGER_PROCESSING_ENABLE_PARQUET", "false")

		cfg, err := config.Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)

		assert.False(t, cfg.Processing.EnableParquet)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing required path", func(t *testing.T) {
		content := `paths:
  data_dir: data
mappings:
  core: mappings/columns_core.yaml
  aliases: {}
processing:
  default_platforms: [OZ]
`
		_, err := config.Load(writeConfig(t, content))
		require.Error(t, err)

		var cerr *errors.ConfigError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("missing default platforms", func(t *testing.T) {
		content := `paths:
  data_dir: data
  base_file: base.xlsx
  input_dir: input
  output_dir: output
  logs_dir: logs
  lookup_product: lookup.xlsx
  columns_registry: registry.xlsx
mappings:
  core: core.yaml
  aliases: {}
processing:
  default_platforms: []
`
		_, err := config.Load(writeConfig(t, content))
		assert.Error(t, err)
	})
}
