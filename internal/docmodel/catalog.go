package docmodel

import (
	stderrors "errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

var (
	// ErrMissingID indicates a catalog entry without an id.
	ErrMissingID = stderrors.New("document id is required")
	// ErrInvalidOverride indicates a pagination override that is neither null nor a string.
	ErrInvalidOverride = stderrors.New("pagination override must be null or a string")
)

// Catalog is the on-disk snapshot shape. JSON snapshots decode through the
// same path since yaml.v3 accepts JSON documents.
type Catalog struct {
	Documents []Document `yaml:"documents"`
}

// UnmarshalYAML decodes a document and the tri-state pagination overrides,
// which need the raw node to tell a missing key from an explicit null.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	type plain Document
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = Document(p)

	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "paginationLabel", "pagination_label":
			if val.Tag != "!!null" {
				d.PaginationLabel = val.Value
			}
		case "paginationNext", "pagination_next":
			ref, err := decodeRef(val)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			d.PaginationNext = ref
		case "paginationPrev", "pagination_prev":
			ref, err := decodeRef(val)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			d.PaginationPrev = ref
		}
	}
	return nil
}

func decodeRef(n *yaml.Node) (Ref, error) {
	if n.Kind != yaml.ScalarNode {
		return Ref{}, ErrInvalidOverride
	}
	if n.Tag == "!!null" {
		return Disabled(), nil
	}
	return Target(n.Value), nil
}

// ParseCatalog decodes a catalog snapshot.
func ParseCatalog(data []byte) ([]Document, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.WrapError(err, errors.CategoryCatalog, "failed to decode catalog").Build()
	}
	for i, d := range c.Documents {
		if d.ID == "" {
			return nil, errors.WrapError(ErrMissingID, errors.CategoryCatalog, "invalid catalog entry").
				WithContext("index", i).
				WithContext("path", d.Path).
				Build()
		}
	}
	return c.Documents, nil
}

// LoadCatalog reads and decodes a catalog snapshot file.
func LoadCatalog(path string) ([]Document, error) {
	// #nosec G304 -- catalog path comes from configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read catalog").
			WithContext("path", path).
			Build()
	}
	docs, err := ParseCatalog(data)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("file", path)
		}
		return nil, err
	}
	return docs, nil
}
