// Package linkrewrite makes hyperlinks in rendered content version-aware.
//
// Each href is classified in order:
//
//  1. external, protocol and fragment links pass through;
//  2. cross-version links "@<version>:<path>" become /<base>/<version>/<path>;
//  3. absolute links under /<base>/ without a version segment get the current
//     version spliced in after the base;
//  4. everything else (versioned, relative, outside the base) is untouched.
//
// The transform is pure and idempotent for recognized or registered versions.
package linkrewrite

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// Rule names the classification an href fell into.
type Rule string

const (
	RuleExternal     Rule = "external"
	RuleCrossVersion Rule = "cross_version"
	RuleAutoVersion  Rule = "auto_version"
	RuleVersioned    Rule = "versioned"
	RuleUntouched    Rule = "untouched"
)

// WarningUnregisteredVersion is the metrics kind of cross-version diagnostics.
const WarningUnregisteredVersion = "unregistered_version"

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// Result is the outcome of rewriting one href.
type Result struct {
	Href    string
	Changed bool
	Rule    Rule
	// Diagnostic is set when the rewrite was applied best-effort.
	Diagnostic *errors.ClassifiedError
}

// Rewriter rewrites hrefs for one version of the site. It holds no mutable
// state and is safe for concurrent use.
type Rewriter struct {
	// RouteBasePath is the docs mount point, with or without slashes
	// ("docs", "/docs/"). Empty mounts the docs at the site root.
	RouteBasePath string
	// CurrentVersion is the version of the page being rewritten. Empty
	// disables auto-versioning.
	CurrentVersion string
	// Versions is the registered vocabulary. When nil every recognized
	// version token counts as registered.
	Versions *versioning.VersionConfig
	Logger   *slog.Logger
	Metrics  metrics.Recorder
}

func (r *Rewriter) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Rewriter) base() string {
	return strings.Trim(r.RouteBasePath, "/")
}

// prefix is the absolute path every docs link starts with: "/docs/" or "/".
func (r *Rewriter) prefix() string {
	if b := r.base(); b != "" {
		return "/" + b + "/"
	}
	return "/"
}

// registered reports whether v is a known version ID or URL segment.
func (r *Rewriter) registered(v string) bool {
	if r.Versions == nil {
		return versioning.IsVersion(v)
	}
	return r.Versions.Registered(v)
}

func (r *Rewriter) segment(v string) string {
	if r.Versions == nil {
		return v
	}
	return r.Versions.SegmentFor(v)
}

// Rewrite classifies href and returns its rewritten form.
func (r *Rewriter) Rewrite(href string) Result {
	res := r.classify(href)
	if res.Changed {
		metrics.OrNoop(r.Metrics).IncRewrittenLink(string(res.Rule))
	}
	if res.Diagnostic != nil {
		metrics.OrNoop(r.Metrics).IncWarning(WarningUnregisteredVersion)
		attrs := append(res.Diagnostic.LogAttrs(), logfields.Target(res.Href))
		r.logger().LogAttrs(context.Background(), slog.LevelWarn, "Cross-version link targets an unregistered version", attrs...)
	}
	return res
}

func (r *Rewriter) classify(href string) Result {
	unchanged := func(rule Rule) Result { return Result{Href: href, Rule: rule} }

	switch {
	case href == "":
		return unchanged(RuleUntouched)
	case strings.HasPrefix(href, "#"), strings.HasPrefix(href, "//"), schemePattern.MatchString(href):
		return unchanged(RuleExternal)
	case strings.HasPrefix(href, "@"):
		if res, ok := r.crossVersion(href); ok {
			return res
		}
		return unchanged(RuleUntouched)
	}

	prefix := r.prefix()
	if !strings.HasPrefix(href, prefix) {
		return unchanged(RuleUntouched)
	}
	rest := href[len(prefix):]
	next := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		next = rest[:i]
	}
	if next != "" && (versioning.IsVersion(next) || next == r.CurrentVersion || r.registered(next)) {
		return unchanged(RuleVersioned)
	}
	if r.CurrentVersion == "" {
		return unchanged(RuleUntouched)
	}
	out := prefix + r.segment(r.CurrentVersion) + "/" + strings.TrimPrefix(rest, "/")
	return Result{Href: out, Changed: true, Rule: RuleAutoVersion}
}

// crossVersion handles "@<version>:<path>"; the slash before path is optional.
func (r *Rewriter) crossVersion(href string) (Result, bool) {
	version, target, ok := strings.Cut(href[1:], ":")
	if !ok || version == "" || strings.ContainsAny(version, "/?# ") {
		return Result{}, false
	}

	var b strings.Builder
	b.WriteString(r.prefix())
	b.WriteString(r.segment(version))
	b.WriteByte('/')
	b.WriteString(strings.TrimPrefix(target, "/"))
	res := Result{Href: b.String(), Changed: true, Rule: RuleCrossVersion}

	if version != versioning.Latest && !r.registered(version) {
		res.Diagnostic = errors.LinkWarning("cross-version link targets an unregistered version").
			WithContext("href", href).
			WithContext("version", version).
			Build()
	}
	return res, true
}
