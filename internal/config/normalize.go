package config

import (
	"fmt"
	"strings"
)

// normalize case-folds enumerations and trims paths. It returns a warning
// for every value it had to replace.
func normalize(cfg *Config) []string {
	var warnings []string

	logging := &cfg.Monitoring.Logging
	if raw := string(logging.Level); raw != "" {
		v, err := logLevelNormalizer.NormalizeWithError(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("monitoring.logging.level: %v", err))
			v = LogLevelInfo
		}
		logging.Level = v
	}
	if raw := string(logging.Format); raw != "" {
		v, err := logFormatNormalizer.NormalizeWithError(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("monitoring.logging.format: %v", err))
			v = LogFormatText
		}
		logging.Format = v
	}

	cfg.Content.RouteBasePath = strings.Trim(strings.TrimSpace(cfg.Content.RouteBasePath), "/")
	cfg.Content.Root = strings.TrimSpace(cfg.Content.Root)
	cfg.Content.Catalog = strings.TrimSpace(cfg.Content.Catalog)
	cfg.Output.Directory = strings.TrimSpace(cfg.Output.Directory)

	locales := cfg.Content.Locales[:0]
	for _, l := range cfg.Content.Locales {
		if l = strings.TrimSpace(l); l != "" {
			locales = append(locales, l)
		}
	}
	cfg.Content.Locales = locales

	return warnings
}
