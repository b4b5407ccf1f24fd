package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/linkrewrite"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// RewriteCmd implements the 'rewrite' command.
type RewriteCmd struct {
	File    string `arg:"" optional:"" help:"File to rewrite; '-' or empty reads stdin"`
	Format  string `enum:"auto,markdown,html" default:"auto" help:"Input format (auto|markdown|html)"`
	Version string `help:"Version of the page (default: derived from the file path, else versions.current)"`
}

func (r *RewriteCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	sc := site.NewContextFrom(cfg, nil, nil, g.Logger, metrics.NoopRecorder{})

	stdin := r.File == "" || r.File == "-"
	var data []byte
	if stdin {
		data, err = io.ReadAll(g.in())
	} else {
		data, err = os.ReadFile(r.File)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read input").
			WithContext("path", r.File).
			Build()
	}

	version := r.Version
	if version == "" {
		version = sc.VersionForFile(r.contentRelative(cfg.Content.Root))
	}

	rw := sc.Rewriter(version)
	var out []byte
	var rep linkrewrite.Report
	if r.isHTML() {
		out, rep, err = rw.RewriteHTML(data)
	} else {
		out, rep, err = rw.RewriteMarkdown(data)
	}
	if err != nil {
		return err
	}
	g.Logger.Info("Links rewritten", logfields.Version(version), logfields.Count(rep.Rewritten))
	_, err = g.out().Write(out)
	return err
}

func (r *RewriteCmd) isHTML() bool {
	switch r.Format {
	case "html":
		return true
	case "markdown":
		return false
	}
	ext := strings.ToLower(filepath.Ext(r.File))
	return ext == ".html" || ext == ".htm"
}

// contentRelative returns the file path relative to the content root, or ""
// for stdin and files outside the root.
func (r *RewriteCmd) contentRelative(contentRoot string) string {
	if r.File == "" || r.File == "-" {
		return ""
	}
	absFile, err := filepath.Abs(r.File)
	if err != nil {
		return ""
	}
	absRoot, err := filepath.Abs(contentRoot)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return rel
}
