package site

import (
	"bytes"
	"encoding/json"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/manifest"
)

// Artifact file names inside a scope directory.
const (
	SidebarFile    = "sidebar.json"
	PaginationFile = "pagination.json"
)

func (b *Builder) write(art *Artifacts) error {
	out := b.ctx.Config.Output.Directory
	if err := config.ValidateOutput(b.ctx.Config); err != nil {
		return err
	}
	if b.ctx.Config.Output.Clean {
		if err := cleanDir(out); err != nil {
			return err
		}
	}

	hashes := make(map[string]string)
	put := func(rel string, data []byte) error {
		if err := writeFile(filepath.Join(out, filepath.FromSlash(rel)), data); err != nil {
			return err
		}
		hashes[rel] = manifest.HashBytes(data)
		return nil
	}

	for _, n := range art.Navigation {
		tree, err := MarshalTree(n)
		if err != nil {
			return err
		}
		if err := put(path.Join(n.Scope.Key(), SidebarFile), tree); err != nil {
			return err
		}
		pages, err := MarshalPagination(n)
		if err != nil {
			return err
		}
		if err := put(path.Join(n.Scope.Key(), PaginationFile), pages); err != nil {
			return err
		}
	}

	for _, r := range art.rewritten {
		if err := writeFile(filepath.Join(out, filepath.FromSlash(r.job.out)), r.data); err != nil {
			return err
		}
	}

	art.Manifest.Outputs.ArtifactHashes = hashes
	data, err := art.Manifest.ToJSON()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode manifest").Build()
	}
	if err := writeFile(filepath.Join(out, manifest.FileName), data); err != nil {
		return err
	}

	b.ctx.Logger.Info("Artifacts written", logfields.Path(out), logfields.Count(len(hashes)+len(art.rewritten)+1))
	return nil
}

// MarshalTree renders a scope's tree as indented JSON, keeping sibling order.
func MarshalTree(n Navigation) ([]byte, error) {
	raw, err := json.Marshal(n.Tree)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNavigation, "failed to encode navigation tree").
			WithContext("scope", n.Scope.String()).
			Build()
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to indent navigation tree").Build()
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalPagination renders a scope's pagination keyed by page path.
func MarshalPagination(n Navigation) ([]byte, error) {
	data, err := json.MarshalIndent(n.Pagination, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNavigation, "failed to encode pagination").
			WithContext("scope", n.Scope.String()).
			Build()
	}
	return append(data, '\n'), nil
}

func cleanDir(dir string) error {
	clean := filepath.Clean(dir)
	if clean == "." || clean == string(filepath.Separator) || clean == "" {
		return errors.ValidationError("refusing to clean output directory").WithContext("path", dir).Build()
	}
	if err := os.RemoveAll(clean); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to clean output directory").
			WithContext("path", dir).
			Build()
	}
	return nil
}

func writeFile(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", filepath.Dir(p)).
			Build()
	}
	// #nosec G306 -- navigation artifacts are served publicly.
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write artifact").
			WithContext("path", p).
			Build()
	}
	return nil
}
