// Package config loads the pipeline configuration document.
//
// Configuration is sourced in order of precedence: command-line flags
// (applied by the caller), SALESLEDGER_* environment variables, .env
// files, the YAML document itself, and built-in defaults. Relative
// paths inside the document resolve against the document's directory,
// so a checked-in config can describe a whole data tree portably.
package config

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mosaic-etl/salesledger/pkg/errors"
)

// DefaultPath is where the configuration document is looked up when no
// explicit path is given.
const DefaultPath = "config.yaml"

// Config is the parsed configuration document for a pipeline run.
type Config struct {
	Paths      Paths      `mapstructure:"paths"`
	Mappings   Mappings   `mapstructure:"mappings"`
	Processing Processing `mapstructure:"processing"`

	// ConfigFile is the path of the loaded document.
	ConfigFile string `mapstructure:"-"`
}

// Paths locates every file and directory the pipeline touches.
type Paths struct {
	DataDir         string `mapstructure:"data_dir"`
	BaseFile        string `mapstructure:"base_file"`
	InputDir        string `mapstructure:"input_dir"`
	OutputDir       string `mapstructure:"output_dir"`
	LogsDir         string `mapstructure:"logs_dir"`
	LookupProduct   string `mapstructure:"lookup_product"`
	ColumnsRegistry string `mapstructure:"columns_registry"`
}

// Mappings locates the header alias documents, one per platform, plus
// the core column mapping.
type Mappings struct {
	Core    string            `mapstructure:"core"`
	Aliases map[string]string `mapstructure:"aliases"`
}

// Processing holds run behavior switches.
type Processing struct {
	EnableParquet    bool     `mapstructure:"enable_parquet"`
	DefaultPlatforms []string `mapstructure:"default_platforms"`
	IDColumn         string   `mapstructure:"id_column"`
	DropInvalid      bool     `mapstructure:"drop_invalid"`
}

// Load reads the configuration document at path, applies environment
// overrides, resolves relative paths against the document's directory,
// and validates the result.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SALESLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("processing.enable_parquet", true)
	v.SetDefault("processing.id_column", "id_key")
	v.SetDefault("processing.drop_invalid", false)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError("config", "failed to read configuration file", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError("config", "failed to parse configuration file", err)
	}
	cfg.ConfigFile = path

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapIO("resolve", path, err)
	}
	cfg.resolveAgainst(filepath.Dir(abs))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every required setting is present.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"paths.data_dir", c.Paths.DataDir},
		{"paths.base_file", c.Paths.BaseFile},
		{"paths.input_dir", c.Paths.InputDir},
		{"paths.output_dir", c.Paths.OutputDir},
		{"paths.logs_dir", c.Paths.LogsDir},
		{"paths.lookup_product", c.Paths.LookupProduct},
		{"paths.columns_registry", c.Paths.ColumnsRegistry},
		{"mappings.core", c.Mappings.Core},
		{"processing.id_column", c.Processing.IDColumn},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.NewConfigError("config", r.key+" is required", nil)
		}
	}
	if c.Mappings.Aliases == nil {
		return errors.NewConfigError("config", "mappings.aliases is required", nil)
	}
	if len(c.Processing.DefaultPlatforms) == 0 {
		return errors.NewConfigError("config", "processing.default_platforms is required", nil)
	}
	return nil
}

// resolveAgainst rewrites every relative path in the document to be
// relative to root.
func (c *Config) resolveAgainst(root string) {
	for _, p := range []*string{
		&c.Paths.DataDir,
		&c.Paths.BaseFile,
		&c.Paths.InputDir,
		&c.Paths.OutputDir,
		&c.Paths.LogsDir,
		&c.Paths.LookupProduct,
		&c.Paths.ColumnsRegistry,
		&c.Mappings.Core,
	} {
		*p = resolvePath(root, *p)
	}
	for platform, p := range c.Mappings.Aliases {
		c.Mappings.Aliases[platform] = resolvePath(root, p)
	}
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
