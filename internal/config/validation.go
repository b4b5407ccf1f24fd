package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Validate checks a defaulted configuration. Non-fatal findings are
// returned as warnings.
func Validate(cfg *Config) ([]string, error) {
	if cfg == nil {
		return nil, errors.ValidationError("configuration is nil").Build()
	}
	if cfg.Content.Catalog == "" {
		return nil, errors.ValidationError("content.catalog is required").Build()
	}
	if cfg.Output.Directory == "" {
		return nil, errors.ValidationError("output.directory is required").Build()
	}
	if cfg.Build.Concurrency < 1 {
		return nil, errors.ValidationError("build.concurrency must be positive").
			WithContext("concurrency", cfg.Build.Concurrency).
			Build()
	}

	if err := ValidateOutput(cfg); err != nil {
		return nil, err
	}

	if cfg.Versions == nil {
		return nil, nil
	}
	return cfg.Versions.Validate(cfg.Versions.Strict)
}

// ValidateOutput keeps output.directory apart from the inputs. A clean build
// removes the output directory, so it must not hold an input, and a walk over
// an input directory must not reach the output.
func ValidateOutput(cfg *Config) error {
	out, err := filepath.Abs(cfg.Output.Directory)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "cannot resolve output.directory").
			WithContext("directory", cfg.Output.Directory).
			Build()
	}
	inputs := []struct {
		field string
		path  string
		dir   bool
	}{
		{"content.root", cfg.Content.Root, true},
		{"content.rendered", cfg.Content.Rendered, true},
		{"content.catalog", cfg.Content.Catalog, false},
	}
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		p, err := filepath.Abs(in.path)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "cannot resolve "+in.field).
				WithContext("path", in.path).
				Build()
		}
		if within(p, out) {
			return errors.ValidationError("output.directory must not contain "+in.field).
				WithContext("directory", cfg.Output.Directory).
				WithContext(in.field, in.path).
				Build()
		}
		if in.dir && within(out, p) {
			return errors.ValidationError("output.directory must not be inside "+in.field).
				WithContext("directory", cfg.Output.Directory).
				WithContext(in.field, in.path).
				Build()
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
