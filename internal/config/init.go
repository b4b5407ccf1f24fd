package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

const exampleHeader = `# docnav configuration
# ${VAR} references are expanded from the environment and .env files.
`

// Example returns the configuration written by Init.
func Example() *Config {
	rewrite := true
	return &Config{
		Content: ContentConfig{
			Root:          "docs",
			Catalog:       "catalog.yaml",
			RouteBasePath: "docs",
			Locales:       []string{"en"},
		},
		Versions: &VersionsConfig{
			VersionConfig: versioning.VersionConfig{
				Current: "v2",
				Available: []versioning.AvailableVersion{
					{ID: "v2", Label: "2.x"},
					{ID: "v1", Label: "1.x", Banner: versioning.BannerUnmaintained},
					{ID: "next", Label: "Next", Banner: versioning.BannerUnreleased},
				},
				Deprecated: []string{"v1"},
			},
		},
		Output: OutputConfig{Directory: defaultOutputDir, Clean: true, RewriteLinks: &rewrite},
		Build:  BuildConfig{Concurrency: defaultConcurrency},
		Monitoring: MonitoringConfig{
			Logging: MonitoringLogging{Level: LogLevelInfo, Format: LogFormatText},
			Metrics: MonitoringMetrics{Textfile: "${DOCNAV_METRICS_FILE}"},
		},
	}
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration").
			WithContext("path", path).
			Build()
	}
	return nil
}
