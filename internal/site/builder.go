package site

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/linkrewrite"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pagination"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Phase names used for logs and metrics.
const (
	PhaseTree       = "tree"
	PhasePagination = "pagination"
	PhaseRewrite    = "rewrite"
	PhaseWrite      = "write"
)

// Options narrows a build.
type Options struct {
	// Versions restricts the build to these versions. Empty builds all.
	Versions []string
	// DryRun computes every artifact without writing to disk.
	DryRun bool
}

// Navigation is the tree and pagination compiled for one scope.
type Navigation struct {
	Scope      Scope
	Documents  []docmodel.Document
	Tree       *sidebar.Tree
	Pagination map[string]pagination.Info
}

// Artifacts is the result of a build.
type Artifacts struct {
	BuildID    string
	Navigation []Navigation
	Links      linkrewrite.Report
	// RewrittenFiles are output-relative paths of files written by the
	// rewrite phase.
	RewrittenFiles []string
	Manifest       *manifest.BuildManifest
	Warnings       []string

	rewritten []rewriteResult
}

// Builder runs the build phases over one Context.
type Builder struct {
	ctx  *Context
	opts Options
}

// NewBuilder returns a Builder for c.
func NewBuilder(c *Context, opts Options) *Builder {
	return &Builder{ctx: c, opts: opts}
}

// Compile builds the navigation tree and pagination of every scope without
// touching the filesystem.
func (b *Builder) Compile(ctx context.Context) ([]Navigation, error) {
	scoped := Partition(b.ctx.Documents, b.ctx.Versions, b.ctx.Config.Content.Locales, b.opts.Versions)

	navs := make([]Navigation, 0, len(scoped))
	err := b.phase(PhaseTree, func() error {
		for _, s := range scoped {
			if err := ctx.Err(); err != nil {
				return err
			}
			tree := sidebar.Build(s.Documents, sidebar.Options{
				Categories: b.ctx.Categories,
				DirPrefix:  s.Scope.Key(),
				Logger:     b.ctx.Logger,
			})
			b.ctx.Metrics.SetTreeNodes(s.Scope.Key(), tree.Count())
			b.ctx.Logger.Info("Navigation tree built",
				logfields.Version(s.Scope.Version), logfields.Locale(s.Scope.Locale), logfields.Count(tree.Count()))
			navs = append(navs, Navigation{Scope: s.Scope, Documents: s.Documents, Tree: tree})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = b.phase(PhasePagination, func() error {
		for i := range navs {
			p, err := b.paginate(ctx, navs[i])
			if err != nil {
				return err
			}
			navs[i].Pagination = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return navs, nil
}

func (b *Builder) paginate(ctx context.Context, nav Navigation) (map[string]pagination.Info, error) {
	plan := pagination.Sequencer{
		Locales: b.ctx.Config.Content.Locales,
		Catalog: b.ctx.Documents,
		Logger:  b.ctx.Logger,
	}.Prepare(nav.Tree, nav.Documents)

	pages := make([]string, 0, len(nav.Documents))
	seen := make(map[string]struct{}, len(nav.Documents))
	for _, d := range nav.Documents {
		if d.Unlisted || d.Path == "" {
			continue
		}
		key := pagination.NormalizePath(d.Path)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pages = append(pages, key)
	}

	results := runOrdered(ctx, pages, b.ctx.Config.Build.Concurrency, func(p string) (pagination.Info, error) {
		return plan.Resolve(p), nil
	})
	if err := firstError(results); err != nil {
		return nil, err
	}

	out := make(map[string]pagination.Info, len(pages))
	for i, p := range pages {
		info := results[i].Value
		b.ctx.Metrics.IncPagination(!info.Empty())
		out[p] = info
	}
	return out, nil
}

// Build compiles navigation, rewrites links and writes every artifact.
func (b *Builder) Build(ctx context.Context) (*Artifacts, error) {
	start := time.Now()
	art, err := b.build(ctx, start)

	d := time.Since(start)
	b.ctx.Metrics.ObserveBuildDuration(d)
	switch {
	case err != nil:
		b.ctx.Metrics.IncBuildOutcome(metrics.OutcomeFailed)
		b.ctx.Logger.Error("Build failed", logfields.Error(err), logfields.DurationMS(ms(d)))
	case len(art.Warnings) > 0:
		b.ctx.Metrics.IncBuildOutcome(metrics.OutcomeWarning)
		b.ctx.Logger.Warn("Build completed with warnings", logfields.Count(len(art.Warnings)), logfields.DurationMS(ms(d)))
	default:
		b.ctx.Metrics.IncBuildOutcome(metrics.OutcomeSuccess)
		b.ctx.Logger.Info("Build completed", logfields.DurationMS(ms(d)))
	}
	return art, err
}

func (b *Builder) build(ctx context.Context, start time.Time) (*Artifacts, error) {
	navs, err := b.Compile(ctx)
	if err != nil {
		return nil, err
	}
	art := &Artifacts{
		BuildID:    b.ctx.BuildID,
		Navigation: navs,
		Warnings:   append([]string(nil), b.ctx.Warnings...),
	}

	if b.ctx.Config.Output.RewriteEnabled() {
		err = b.phase(PhaseRewrite, func() error { return b.rewrite(ctx, art) })
		if err != nil {
			return nil, err
		}
	}

	art.Manifest = b.manifest(art, start)
	if b.opts.DryRun {
		return art, nil
	}
	err = b.phase(PhaseWrite, func() error { return b.write(art) })
	if err != nil {
		return nil, err
	}
	return art, nil
}

func (b *Builder) manifest(art *Artifacts, start time.Time) *manifest.BuildManifest {
	m := &manifest.BuildManifest{
		ID:        art.BuildID,
		Timestamp: start.UTC(),
		Inputs: manifest.Inputs{
			Catalog:     b.ctx.Config.Content.Catalog,
			CatalogHash: b.ctx.CatalogHash,
			ContentRoot: b.ctx.Config.Content.Root,
			Documents:   len(b.ctx.Documents),
			Categories:  b.ctx.Categories.Len(),
		},
		Outputs: manifest.Outputs{
			RewrittenFiles: len(art.RewrittenFiles),
			RewrittenLinks: art.Links.Rewritten,
		},
		Warnings: len(art.Warnings),
		Duration: time.Since(start).Milliseconds(),
	}
	for _, n := range art.Navigation {
		m.Scopes = append(m.Scopes, manifest.ScopeSummary{
			Key:     n.Scope.Key(),
			Version: n.Scope.Version,
			Locale:  n.Scope.Locale,
			Nodes:   n.Tree.Count(),
			Pages:   len(n.Pagination),
		})
	}
	m.Status = string(metrics.OutcomeSuccess)
	if len(art.Warnings) > 0 {
		m.Status = string(metrics.OutcomeWarning)
	}
	return m
}

func (b *Builder) phase(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)
	b.ctx.Metrics.ObservePhaseDuration(name, d)
	b.ctx.Logger.Debug("Phase finished", logfields.Phase(name), logfields.DurationMS(ms(d)))
	return err
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
