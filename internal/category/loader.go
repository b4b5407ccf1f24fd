package category

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Load walks root and returns every descriptor it can parse. Unparsable
// descriptors are logged, recorded as warnings and skipped. A missing root
// yields an empty index with a warning; Load never fails the build.
func Load(root string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{entries: make(map[string]Metadata)}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			idx.warn(logger, errors.WrapError(err, errors.CategoryCategory, "content tree not readable").
				Warning().
				WithContext("path", p).
				Build())
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		key := filepath.ToSlash(rel)
		if key == "." {
			key = ""
		}

		file, ok := findDescriptor(p)
		if !ok {
			return nil
		}
		meta, parseErr := ParseFile(file)
		if parseErr != nil {
			idx.warn(logger, errors.WrapError(parseErr, errors.CategoryCategory, "skipping unparsable category descriptor").
				Warning().
				WithContext("file", file).
				WithContext("dir", key).
				Build())
			return nil
		}
		idx.entries[key] = meta
		logger.Debug("Loaded category descriptor", logfields.Dir(key), logfields.File(path.Base(filepath.ToSlash(file))))
		return nil
	})
	if err != nil {
		idx.warn(logger, errors.WrapError(err, errors.CategoryCategory, "category discovery aborted").Warning().Build())
	}

	logger.Info("Category descriptors discovered", logfields.Path(root), logfields.Count(len(idx.entries)))
	return idx
}

func (i *Index) warn(logger *slog.Logger, err *errors.ClassifiedError) {
	i.warnings = append(i.warnings, err)
	attrs := err.LogAttrs()
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.Warn(err.Message(), args...)
}

func skipDir(name string) bool {
	if _, ok := skippedDirs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".")
}

func findDescriptor(dir string) (string, bool) {
	for _, name := range descriptorNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

// ParseFile parses one descriptor, choosing the decoder by extension.
func ParseFile(file string) (Metadata, error) {
	// #nosec G304 -- descriptor paths come from walking the configured content root.
	data, err := os.ReadFile(file)
	if err != nil {
		return Metadata{}, err
	}
	if strings.EqualFold(filepath.Ext(file), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// ParseJSON decodes a JSON descriptor. Whole-line // and # comments are
// tolerated and removed before decoding.
func ParseJSON(data []byte) (Metadata, error) {
	stripped, err := stripCommentLines(data)
	if err != nil {
		return Metadata{}, err
	}
	var m Metadata
	if err := json.Unmarshal(stripped, &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// ParseYAML decodes a YAML descriptor.
func ParseYAML(data []byte) (Metadata, error) {
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func stripCommentLines(data []byte) ([]byte, error) {
	var out bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	// A single line may span the whole descriptor.
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)
	for sc.Scan() {
		line := sc.Bytes()
		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte("//")) || bytes.HasPrefix(trimmed, []byte("#")) {
			continue
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
