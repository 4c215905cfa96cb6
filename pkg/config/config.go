package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. SVDREGRESS_CATALOG_PATH.
const EnvPrefix = "SVDREGRESS"

// FileName is the config file base name searched for in SearchPaths.
const FileName = ".svdregress"

// ErrUnsupportedFormat reports an output.format outside text, json, yaml and toml.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Config holds harness settings.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Run     RunConfig     `mapstructure:"run"`
	Output  OutputConfig  `mapstructure:"output"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// CatalogConfig locates the test-case catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// RunConfig holds run-mode settings.
type RunConfig struct {
	Short bool `mapstructure:"short"`
}

// OutputConfig controls how commands print selected cases.
type OutputConfig struct {
	Format   string `mapstructure:"format"` // text, json, yaml, toml
	Template string `mapstructure:"template"`
}

var defaultConfig = Config{
	Output: OutputConfig{Format: "text"},
}

// flagBindings maps config keys to the CLI flags that override them.
var flagBindings = map[string]string{
	"catalog.path":    "catalog",
	"run.short":       "short",
	"output.format":   "format",
	"output.template": "template",
}

// Options tune where Load looks for settings.
type Options struct {
	// ConfigFile, when set, is read instead of searching and must exist.
	ConfigFile string
	// SearchPaths default to the current directory and $HOME.
	SearchPaths []string
	// Flags, when set, are bound per flagBindings; only flags present are bound.
	Flags *pflag.FlagSet
}

// Load resolves configuration from defaults, config file, environment and
// flags, in increasing priority.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("catalog.path", defaultConfig.Catalog.Path)
	v.SetDefault("run.short", defaultConfig.Run.Short)
	v.SetDefault("output.format", defaultConfig.Output.Format)
	v.SetDefault("output.template", defaultConfig.Output.Template)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(FileName)
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{".", "$HOME"}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range flagBindings {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	// A relative catalog path from a config file is relative to that file,
	// unless a flag or the environment supplied it.
	if cfg.File != "" && cfg.Catalog.Path != "" && !filepath.IsAbs(cfg.Catalog.Path) && v.InConfig("catalog.path") && !overridden(v, opts.Flags, "catalog.path") {
		cfg.Catalog.Path = filepath.Join(filepath.Dir(cfg.File), cfg.Catalog.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "text", "json", "yaml", "yml", "toml":
	default:
		return fmt.Errorf("invalid output.format %q (expected text, json, yaml or toml): %w", c.Output.Format, ErrUnsupportedFormat)
	}
	return nil
}

func overridden(v *viper.Viper, flags *pflag.FlagSet, key string) bool {
	if flags != nil {
		if f := flags.Lookup(flagBindings[key]); f != nil && f.Changed {
			return true
		}
	}
	envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	_, ok := os.LookupEnv(envKey)
	return ok
}
