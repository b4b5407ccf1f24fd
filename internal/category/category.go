// Package category discovers per-directory sidebar overrides in a content tree.
//
// A directory may carry a descriptor named _category_.json, _category_.yml or
// _category_.yaml. JSON wins when more than one exists. Descriptors never
// create navigation nodes; they only override attributes of directories that
// documents already imply.
package category

import (
	"maps"
	"math"
	"sort"
)

// DescriptorStem is the base name shared by all descriptor files.
const DescriptorStem = "_category_"

// descriptorNames lists candidates in lookup order.
var descriptorNames = []string{
	DescriptorStem + ".json",
	DescriptorStem + ".yml",
	DescriptorStem + ".yaml",
}

// skippedDirs are tooling directories that never hold content.
var skippedDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"vendor":       {},
	".cache":       {},
	".docusaurus":  {},
	"build":        {},
	"dist":         {},
}

// Metadata is one directory's override descriptor.
type Metadata struct {
	Label       string         `json:"label" yaml:"label"`
	Position    *float64       `json:"position" yaml:"position"`
	ClassName   string         `json:"className" yaml:"className"`
	CustomProps map[string]any `json:"customProps" yaml:"customProps"`
	Collapsible *bool          `json:"collapsible" yaml:"collapsible"`
	Collapsed   *bool          `json:"collapsed" yaml:"collapsed"`
}

// SidebarPosition returns the explicit position or +Inf.
func (m Metadata) SidebarPosition() float64 {
	if m.Position == nil {
		return math.Inf(1)
	}
	return *m.Position
}

func (m Metadata) clone() Metadata {
	out := m
	out.CustomProps = maps.Clone(m.CustomProps)
	if m.Position != nil {
		p := *m.Position
		out.Position = &p
	}
	if m.Collapsible != nil {
		v := *m.Collapsible
		out.Collapsible = &v
	}
	if m.Collapsed != nil {
		v := *m.Collapsed
		out.Collapsed = &v
	}
	return out
}

// Index is a read-only view of discovered descriptors keyed by slash-separated
// directory path relative to the content root. The root directory is "".
type Index struct {
	entries  map[string]Metadata
	warnings []error
}

// NewIndex builds an Index from literal entries.
func NewIndex(entries map[string]Metadata) *Index {
	idx := &Index{entries: make(map[string]Metadata, len(entries))}
	for k, v := range entries {
		idx.entries[k] = v.clone()
	}
	return idx
}

// Get returns a copy of the descriptor for dir.
func (i *Index) Get(dir string) (Metadata, bool) {
	if i == nil {
		return Metadata{}, false
	}
	m, ok := i.entries[dir]
	if !ok {
		return Metadata{}, false
	}
	return m.clone(), true
}

// Len returns the number of descriptors.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Dirs returns the directories that carry a descriptor, sorted.
func (i *Index) Dirs() []string {
	if i == nil {
		return nil
	}
	out := make([]string, 0, len(i.entries))
	for k := range i.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Warnings returns the descriptors that were skipped, as classified warnings.
func (i *Index) Warnings() []error {
	if i == nil {
		return nil
	}
	out := make([]error, len(i.warnings))
	copy(out, i.warnings)
	return out
}
