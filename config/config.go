// Package config holds the generator settings that used to be implicit
// builder defaults (author line, generated package name, API base path).
// The resolved Config value is threaded explicitly into every builder call;
// nothing reads it from global state.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full set of knobs the generation engine accepts.
type Config struct {
	// Author appears in the doc header of every generated artifact.
	Author string `mapstructure:"author"`
	// Package is the Go package name generated source declares.
	Package string `mapstructure:"package"`
	// BaseURL prefixes every generated controller route.
	BaseURL string `mapstructure:"base_url"`
	// TemplateDir optionally points at user templates that shadow the
	// bundled ones.
	TemplateDir string `mapstructure:"template_dir"`
	// OutputDir is where the CLI writes generated artifacts.
	OutputDir string `mapstructure:"output_dir"`
	// MigrationDir is where the CLI writes migration scripts and where the
	// runner looks for them.
	MigrationDir string `mapstructure:"migration_dir"`
}

// Default returns the built-in settings, matching what the engine assumes
// when no config file is present.
func Default() Config {
	return Config{
		Author:       "schemagen",
		Package:      "generated",
		BaseURL:      "/api/v1",
		OutputDir:    "generated",
		MigrationDir: "migrations",
	}
}

// Load resolves configuration in precedence order: defaults, then a
// schemagen.yaml in the working directory, then SCHEMAGEN_* environment
// variables.
func Load() (Config, error) {
	v := viper.New()
	cfg := Default()

	v.SetDefault("author", cfg.Author)
	v.SetDefault("package", cfg.Package)
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("template_dir", cfg.TemplateDir)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("migration_dir", cfg.MigrationDir)

	v.SetConfigName("schemagen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SCHEMAGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}
