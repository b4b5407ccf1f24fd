// Package manifest records what a docnav build read and wrote.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// FileName is the manifest's name inside the output directory.
const FileName = "manifest.json"

// BuildManifest is a complete record of one build's inputs and outputs.
type BuildManifest struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Inputs    Inputs         `json:"inputs"`
	Scopes    []ScopeSummary `json:"scopes"`
	Outputs   Outputs        `json:"outputs"`
	Status    string         `json:"status"`
	Duration  int64          `json:"duration_ms"`
	Warnings  int            `json:"warnings"`
}

// Inputs captures the snapshots a build was computed from.
type Inputs struct {
	Catalog     string `json:"catalog"`
	CatalogHash string `json:"catalog_hash"`
	ContentRoot string `json:"content_root"`
	Documents   int    `json:"documents"`
	Categories  int    `json:"categories"`
}

// ScopeSummary describes the navigation built for one version/locale.
type ScopeSummary struct {
	Key     string `json:"key"`
	Version string `json:"version,omitempty"`
	Locale  string `json:"locale,omitempty"`
	Nodes   int    `json:"nodes"`
	Pages   int    `json:"pages"`
}

// Outputs captures the artifacts written, keyed by path relative to the
// output directory.
type Outputs struct {
	ArtifactHashes map[string]string `json:"artifact_hashes,omitempty"`
	RewrittenFiles int               `json:"rewritten_files"`
	RewrittenLinks int               `json:"rewritten_links"`
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash of the manifest's inputs and outputs.
// Two builds of identical snapshots hash the same regardless of ID and time.
func (m *BuildManifest) Hash() (string, error) {
	hashInput := struct {
		Inputs  Inputs         `json:"inputs"`
		Scopes  []ScopeSummary `json:"scopes"`
		Outputs Outputs        `json:"outputs"`
	}{
		Inputs:  m.Inputs,
		Scopes:  m.Scopes,
		Outputs: m.Outputs,
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	return HashBytes(data), nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
