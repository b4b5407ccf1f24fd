package versioning

import (
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// BannerState selects the notice a theme shows above a version's pages.
type BannerState string

const (
	BannerNone         BannerState = "none"
	BannerUnreleased   BannerState = "unreleased"
	BannerUnmaintained BannerState = "unmaintained"
)

// AvailableVersion describes one published version.
type AvailableVersion struct {
	ID string `yaml:"id" json:"id"`
	// Label is the display label; defaults to ID.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
	// Segment is the URL segment when it differs from ID.
	Segment string      `yaml:"segment,omitempty" json:"segment,omitempty"`
	Banner  BannerState `yaml:"banner,omitempty" json:"banner,omitempty"`
}

// DisplayLabel returns Label or the ID.
func (a AvailableVersion) DisplayLabel() string {
	if a.Label != "" {
		return a.Label
	}
	return a.ID
}

// URLSegment returns Segment or the ID.
func (a AvailableVersion) URLSegment() string {
	if a.Segment != "" {
		return a.Segment
	}
	return a.ID
}

// VersionConfig is the site's version vocabulary.
type VersionConfig struct {
	Current    string             `yaml:"current" json:"current"`
	Available  []AvailableVersion `yaml:"available" json:"available"`
	Deprecated []string           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	// Stable defaults to Current.
	Stable string `yaml:"stable,omitempty" json:"stable,omitempty"`
}

// StableVersion returns Stable, falling back to Current.
func (c *VersionConfig) StableVersion() string {
	if c.Stable != "" {
		return c.Stable
	}
	return c.Current
}

// Lookup finds an available version by ID or URL segment.
func (c *VersionConfig) Lookup(v string) (AvailableVersion, bool) {
	if c == nil || v == "" {
		return AvailableVersion{}, false
	}
	for _, a := range c.Available {
		if a.ID == v || a.URLSegment() == v {
			return a, true
		}
	}
	return AvailableVersion{}, false
}

// Registered reports whether v names an available version.
func (c *VersionConfig) Registered(v string) bool {
	_, ok := c.Lookup(v)
	return ok
}

// SegmentFor returns the URL segment for v, or v itself when unknown.
func (c *VersionConfig) SegmentFor(v string) string {
	if a, ok := c.Lookup(v); ok {
		return a.URLSegment()
	}
	return v
}

// IsDeprecated reports whether v is listed as deprecated.
func (c *VersionConfig) IsDeprecated(v string) bool {
	if c == nil {
		return false
	}
	for _, d := range c.Deprecated {
		if d == v {
			return true
		}
	}
	return false
}

// Validate checks the configuration. Available must be non-empty. Cross
// references from Current, Stable and Deprecated into Available are reported
// as warnings, or as a validation error when strict is set.
func (c *VersionConfig) Validate(strict bool) (warnings []string, err error) {
	if c == nil || len(c.Available) == 0 {
		return nil, errors.ValidationError("versions.available must list at least one version").Build()
	}
	seen := make(map[string]struct{}, len(c.Available))
	for i, a := range c.Available {
		if strings.TrimSpace(a.ID) == "" {
			return nil, errors.ValidationError("available version id is empty").WithContext("index", i).Build()
		}
		if _, dup := seen[a.ID]; dup {
			return nil, errors.ValidationError("duplicate available version").WithContext("version", a.ID).Build()
		}
		seen[a.ID] = struct{}{}
	}

	check := func(field, v string) {
		if v != "" && !c.Registered(v) {
			warnings = append(warnings, field+" version "+v+" is not listed in versions.available")
		}
	}
	check("current", c.Current)
	check("stable", c.Stable)
	for _, d := range c.Deprecated {
		check("deprecated", d)
	}

	if strict && len(warnings) > 0 {
		return nil, errors.ValidationError("version configuration references unknown versions").
			WithContext("problems", strings.Join(warnings, "; ")).
			Build()
	}
	return warnings, nil
}
