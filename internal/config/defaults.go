package config

const (
	defaultContentRoot   = "docs"
	defaultCatalog       = "catalog.yaml"
	defaultRouteBasePath = "docs"
	defaultOutputDir     = "build/docnav"
	defaultConcurrency   = 4
)

func applyDefaults(cfg *Config) {
	if cfg.Content.Root == "" {
		cfg.Content.Root = defaultContentRoot
	}
	if cfg.Content.Catalog == "" {
		cfg.Content.Catalog = defaultCatalog
	}
	if cfg.Content.RouteBasePath == "" {
		cfg.Content.RouteBasePath = defaultRouteBasePath
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	if cfg.Build.Concurrency <= 0 {
		cfg.Build.Concurrency = defaultConcurrency
	}
	if cfg.Monitoring.Logging.Level == "" {
		cfg.Monitoring.Logging.Level = LogLevelInfo
	}
	if cfg.Monitoring.Logging.Format == "" {
		cfg.Monitoring.Logging.Format = LogFormatText
	}
}
