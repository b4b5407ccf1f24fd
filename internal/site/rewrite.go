package site

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/linkrewrite"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Output subdirectories of rewritten files.
const (
	ContentDir  = "content"
	RenderedDir = "rendered"
)

type fileKind int

const (
	kindMarkdown fileKind = iota
	kindHTML
)

type rewriteJob struct {
	src     string
	rel     string // slash-separated, relative to its source root
	out     string // output-relative path
	kind    fileKind
	version string
}

type rewriteResult struct {
	job    rewriteJob
	data   []byte
	report linkrewrite.Report
}

// Rewriter returns the link rewriter for pages of version.
func (c *Context) Rewriter(version string) *linkrewrite.Rewriter {
	return &linkrewrite.Rewriter{
		RouteBasePath:  c.Config.Content.RouteBasePath,
		CurrentVersion: version,
		Versions:       c.Versions,
		Logger:         c.Logger,
		Metrics:        c.Metrics,
	}
}

// VersionForFile returns the version a content file belongs to: its leading
// directory when that names a version, else the configured current version.
func (c *Context) VersionForFile(rel string) string {
	rel = filepath.ToSlash(rel)
	if seg := leadingSegment(rel); strings.Contains(rel, "/") && isVersionSegment(seg, c.Versions) {
		return seg
	}
	if c.Versions != nil {
		return c.Versions.Current
	}
	return ""
}

func (b *Builder) rewrite(ctx context.Context, art *Artifacts) error {
	jobs, err := b.collectJobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	rewriters := make(map[string]*linkrewrite.Rewriter)
	for _, j := range jobs {
		if _, ok := rewriters[j.version]; !ok {
			rewriters[j.version] = b.ctx.Rewriter(j.version)
		}
	}

	results := runOrdered(ctx, jobs, b.ctx.Config.Build.Concurrency, func(j rewriteJob) (rewriteResult, error) {
		return rewriteFile(rewriters[j.version], j)
	})
	if err := firstError(results); err != nil {
		return err
	}

	pending := make([]rewriteResult, 0, len(results))
	for _, r := range results {
		art.Links.Merge(r.Value.report)
		pending = append(pending, r.Value)
		art.RewrittenFiles = append(art.RewrittenFiles, r.Value.job.out)
	}
	for _, d := range art.Links.Diagnostics {
		art.Warnings = append(art.Warnings, d.Error())
	}
	art.rewritten = pending

	b.ctx.Logger.Info("Links rewritten",
		logfields.Count(art.Links.Rewritten), slog.Int("files", len(pending)), slog.Int("links", art.Links.Links))
	return nil
}

func rewriteFile(r *linkrewrite.Rewriter, j rewriteJob) (rewriteResult, error) {
	data, err := os.ReadFile(j.src)
	if err != nil {
		return rewriteResult{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read content file").
			WithContext("path", j.src).
			Build()
	}

	var out []byte
	var rep linkrewrite.Report
	switch j.kind {
	case kindHTML:
		out, rep, err = r.RewriteHTML(data)
	default:
		out, rep, err = r.RewriteMarkdown(data)
	}
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return rewriteResult{}, classified.WithContext("path", j.src)
		}
		return rewriteResult{}, err
	}
	return rewriteResult{job: j, data: out, report: rep}, nil
}

var (
	markdownExts = map[string]struct{}{".md": {}, ".mdx": {}, ".markdown": {}}
	htmlExts     = map[string]struct{}{".html": {}, ".htm": {}}
)

func (b *Builder) collectJobs() ([]rewriteJob, error) {
	cfg := b.ctx.Config.Content
	jobs, err := b.walk(cfg.Root, ContentDir, kindMarkdown, markdownExts)
	if err != nil {
		return nil, err
	}
	if cfg.Rendered != "" {
		rendered, err := b.walk(cfg.Rendered, RenderedDir, kindHTML, htmlExts)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, rendered...)
	}
	return jobs, nil
}

func (b *Builder) walk(root, outDir string, kind fileKind, exts map[string]struct{}) ([]rewriteJob, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		b.ctx.Logger.Debug("Rewrite source missing", logfields.Path(root))
		return nil, nil
	}

	var jobs []rewriteJob
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := exts[strings.ToLower(filepath.Ext(p))]; !ok {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if len(b.opts.Versions) > 0 && !slices.Contains(b.opts.Versions, b.ctx.VersionForFile(rel)) {
			return nil
		}
		jobs = append(jobs, rewriteJob{
			src:     p,
			rel:     rel,
			out:     path.Join(outDir, rel),
			kind:    kind,
			version: b.ctx.VersionForFile(rel),
		})
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk content").
			WithContext("path", root).
			Build()
	}
	return jobs, nil
}
