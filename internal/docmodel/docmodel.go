// Package docmodel defines the document records navigation is compiled from.
//
// A Document is a read-only snapshot supplied by a content-loading
// collaborator. Components never mutate a Document; functions that need an
// adjusted record (for example a version-stripped ID) work on a Clone.
package docmodel

import (
	"maps"
	"math"
	"path"
	"strings"
)

// Extensions lists the source file extensions stripped from document IDs.
var Extensions = []string{".md", ".mdx", ".markdown", ".mdown", ".mkd", ".html"}

// Document is one catalog entry.
type Document struct {
	// ID is the slash-separated source path, optionally prefixed by a locale
	// and/or version segment, ending in a filename segment.
	ID string `yaml:"id" json:"id"`
	// Path is the permalink used for hrefs. It stays fully versioned even when
	// ID has been stripped for tree building.
	Path     string `yaml:"path" json:"path"`
	Title    string `yaml:"title" json:"title"`
	CustomID string `yaml:"customId,omitempty" json:"customId,omitempty"`

	Sidebar  SidebarOverrides `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`
	Unlisted bool             `yaml:"unlisted,omitempty" json:"unlisted,omitempty"`
	// Link set to false keeps the node in the tree but not clickable.
	Link *bool `yaml:"link,omitempty" json:"link,omitempty"`
	// Index marks the document as a section index explicitly. When nil the
	// pagination sequencer falls back to ID-shape heuristics.
	Index *bool `yaml:"index,omitempty" json:"index,omitempty"`

	PaginationLabel string `yaml:"-" json:"-"`
	PaginationNext  Ref    `yaml:"-" json:"-"`
	PaginationPrev  Ref    `yaml:"-" json:"-"`
}

// SidebarOverrides are the per-document sidebar attributes.
type SidebarOverrides struct {
	Position    *float64       `yaml:"position,omitempty" json:"position,omitempty"`
	Label       string         `yaml:"label,omitempty" json:"label,omitempty"`
	ClassName   string         `yaml:"className,omitempty" json:"className,omitempty"`
	CustomProps map[string]any `yaml:"customProps,omitempty" json:"customProps,omitempty"`
	Collapsible *bool          `yaml:"collapsible,omitempty" json:"collapsible,omitempty"`
	Collapsed   *bool          `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

// SidebarPosition returns the explicit position or +Inf.
func (d Document) SidebarPosition() float64 {
	if d.Sidebar.Position == nil {
		return math.Inf(1)
	}
	return *d.Sidebar.Position
}

// Clickable reports whether the document may supply an href.
func (d Document) Clickable() bool {
	return d.Link == nil || *d.Link
}

// SidebarLabel returns the label shown in the navigation tree: sidebar label, then title.
func (d Document) SidebarLabel() string {
	if d.Sidebar.Label != "" {
		return d.Sidebar.Label
	}
	return d.Title
}

// PaginationTitle returns the title shown on prev/next links:
// pagination label, then sidebar label, then title.
func (d Document) PaginationTitle() string {
	if d.PaginationLabel != "" {
		return d.PaginationLabel
	}
	return d.SidebarLabel()
}

// MatchesTarget reports whether target names this document by ID, by
// extension-less ID or by custom ID.
func (d Document) MatchesTarget(target string) bool {
	if target == "" {
		return false
	}
	if d.ID == target || (d.CustomID != "" && d.CustomID == target) {
		return true
	}
	return StripExtension(d.ID) == target
}

// Clone returns a copy that shares no mutable state with d.
func (d Document) Clone() Document {
	out := d
	if d.Sidebar.Position != nil {
		p := *d.Sidebar.Position
		out.Sidebar.Position = &p
	}
	out.Sidebar.CustomProps = maps.Clone(d.Sidebar.CustomProps)
	out.Sidebar.Collapsible = cloneBool(d.Sidebar.Collapsible)
	out.Sidebar.Collapsed = cloneBool(d.Sidebar.Collapsed)
	out.Link = cloneBool(d.Link)
	out.Index = cloneBool(d.Index)
	return out
}

// StripExtension removes one recognized source extension from id.
func StripExtension(id string) string {
	ext := path.Ext(id)
	if ext == "" {
		return id
	}
	lower := strings.ToLower(ext)
	for _, known := range Extensions {
		if lower == known {
			return strings.TrimSuffix(id, ext)
		}
	}
	return id
}

// Segments splits an ID into its navigation path: extension stripped, split on
// "/", empty segments dropped and a trailing literal "index" removed.
func Segments(id string) []string {
	trimmed := StripExtension(id)
	parts := strings.Split(trimmed, "/")
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if n := len(out); n > 0 && out[n-1] == "index" {
		out = out[:n-1]
	}
	return out
}

// Bool returns a pointer to b, for literal overrides.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f, for literal positions.
func Float(f float64) *float64 { return &f }

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// FilterByLeadingSegment keeps documents whose ID starts with segment and
// returns clones with that segment stripped from ID. Path is untouched.
func FilterByLeadingSegment(docs []Document, segment string) []Document {
	out := make([]Document, 0, len(docs))
	prefix := segment + "/"
	for _, d := range docs {
		if !strings.HasPrefix(d.ID, prefix) {
			continue
		}
		c := d.Clone()
		c.ID = strings.TrimPrefix(d.ID, prefix)
		out = append(out, c)
	}
	return out
}
