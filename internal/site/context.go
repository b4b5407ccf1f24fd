// Package site compiles the navigation artifacts of a documentation site.
//
// A build starts from one Context holding every input snapshot; phases
// receive it by pointer and never consult global state.
package site

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docnav/internal/category"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// Context is the explicit build context. It is constructed once per build
// and read-only afterwards.
type Context struct {
	BuildID    string
	Config     *config.Config
	Documents  []docmodel.Document
	Categories *category.Index
	Versions   *versioning.VersionConfig
	// CatalogHash identifies the catalog snapshot.
	CatalogHash string
	// Warnings collected while loading inputs.
	Warnings []string

	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// NewContext loads the catalog and category descriptors named by cfg.
func NewContext(cfg *config.Config, logger *slog.Logger, rec metrics.Recorder) (*Context, error) {
	buildID := uuid.NewString()
	logger = withBuildID(logger, buildID)

	data, err := os.ReadFile(cfg.Content.Catalog)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read catalog").
			WithContext("path", cfg.Content.Catalog).
			Build()
	}
	docs, err := docmodel.ParseCatalog(data)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("file", cfg.Content.Catalog)
		}
		return nil, err
	}
	logger.Info("Catalog loaded", logfields.File(cfg.Content.Catalog), logfields.Count(len(docs)))

	cats := category.Load(cfg.Content.Root, logger)
	return assemble(buildID, cfg, docs, cats, manifest.HashBytes(data), logger, rec), nil
}

// NewContextFrom assembles a Context from already-loaded snapshots.
func NewContextFrom(cfg *config.Config, docs []docmodel.Document, cats *category.Index, logger *slog.Logger, rec metrics.Recorder) *Context {
	buildID := uuid.NewString()
	return assemble(buildID, cfg, docs, cats, "", withBuildID(logger, buildID), rec)
}

func withBuildID(logger *slog.Logger, id string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(logfields.BuildID(id))
}

func assemble(buildID string, cfg *config.Config, docs []docmodel.Document, cats *category.Index, catalogHash string, logger *slog.Logger, rec metrics.Recorder) *Context {
	c := &Context{
		BuildID:     buildID,
		Config:      cfg,
		Documents:   docs,
		Categories:  cats,
		Versions:    cfg.VersionConfig(),
		CatalogHash: catalogHash,
		Logger:      logger,
		Metrics:     metrics.OrNoop(rec),
	}
	for _, w := range cats.Warnings() {
		c.Warnings = append(c.Warnings, w.Error())
		c.Metrics.IncWarning("category")
	}
	return c
}
