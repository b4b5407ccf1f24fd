// Package config loads the docnav configuration file.
//
// Load reads docnav.yaml, expands ${VAR} references from the environment
// (seeded from .env files), then normalizes, defaults and validates the
// result in that order.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "docnav.yaml"

// Config is the complete docnav configuration.
type Config struct {
	Content    ContentConfig    `yaml:"content"`
	Versions   *VersionsConfig  `yaml:"versions,omitempty"`
	Output     OutputConfig     `yaml:"output"`
	Build      BuildConfig      `yaml:"build"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// ContentConfig locates the inputs of a build.
type ContentConfig struct {
	Root    string `yaml:"root"`    // Content tree holding documents and _category_ descriptors
	Catalog string `yaml:"catalog"` // Document catalog snapshot (YAML or JSON)
	// Rendered is an optional directory of rendered HTML pages whose links
	// are rewritten alongside the Markdown sources.
	Rendered      string   `yaml:"rendered,omitempty"`
	RouteBasePath string   `yaml:"route_base_path"` // Docs mount point, e.g. "docs"
	Locales       []string `yaml:"locales,omitempty"`
}

// VersionsConfig is the version vocabulary plus docnav-specific switches.
type VersionsConfig struct {
	versioning.VersionConfig `yaml:",inline"`
	// Strict turns unknown current/stable/deprecated references into errors.
	Strict bool `yaml:"strict,omitempty"`
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Remove the directory before writing
	// RewriteLinks enables the link rewrite phase. Nil means enabled.
	RewriteLinks *bool `yaml:"rewrite_links,omitempty"`
}

// RewriteEnabled reports whether the link rewrite phase runs.
func (o OutputConfig) RewriteEnabled() bool {
	return o.RewriteLinks == nil || *o.RewriteLinks
}

// BuildConfig tunes the build pipeline.
type BuildConfig struct {
	Concurrency int `yaml:"concurrency"` // Workers for pagination and link rewriting
}

// MonitoringConfig represents logging and metrics configuration.
type MonitoringConfig struct {
	Logging MonitoringLogging `yaml:"logging"`
	Metrics MonitoringMetrics `yaml:"metrics"`
}

// MonitoringLogging represents logging configuration.
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MonitoringMetrics represents metrics configuration.
type MonitoringMetrics struct {
	// Textfile receives Prometheus metrics after each build when set.
	Textfile string `yaml:"textfile,omitempty"`
}

// VersionConfig returns the version vocabulary or nil when unversioned.
func (c *Config) VersionConfig() *versioning.VersionConfig {
	if c == nil || c.Versions == nil {
		return nil
	}
	return &c.Versions.VersionConfig
}

// Default returns a configuration with every default applied, for runs
// without a configuration file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, normalizes, defaults and validates the configuration at path.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loadEnvFiles(logger)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}

	for _, w := range normalize(cfg) {
		logger.Warn("Config normalization", slog.String("detail", w), logfields.Path(path))
	}
	applyDefaults(cfg)

	warnings, err := Validate(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("Config validation", slog.String("detail", w), logfields.Path(path))
	}
	return cfg, nil
}

// Parse decodes configuration YAML without normalization or defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").Build()
	}
	return &cfg, nil
}
