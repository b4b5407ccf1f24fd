package site

import (
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// Scope identifies the slice of the catalog one navigation tree covers.
// Empty fields mean the catalog is not split along that axis.
type Scope struct {
	Version string
	Locale  string
}

// Key is the slash-joined scope path used for output directories and
// category lookups; "" for the unscoped catalog.
func (s Scope) Key() string {
	return path.Join(s.Version, s.Locale)
}

func (s Scope) String() string {
	if k := s.Key(); k != "" {
		return k
	}
	return "default"
}

// ScopedDocuments are the documents of one scope with the scope segments
// stripped from their IDs.
type ScopedDocuments struct {
	Scope     Scope
	Documents []docmodel.Document
}

// isVersionSegment reports whether seg names a version, either by the fixed
// recognizer or by the registered vocabulary.
func isVersionSegment(seg string, vc *versioning.VersionConfig) bool {
	return versioning.IsVersion(seg) || vc.Registered(seg)
}

func leadingSegment(id string) string {
	first, _, _ := strings.Cut(id, "/")
	return first
}

// Partition splits docs by version, then by locale. Versions follow the
// order of the registered vocabulary, then any unregistered versions found
// newest first; documents without a version segment form the unversioned
// scope. When only is non-empty just those versions are kept.
func Partition(docs []docmodel.Document, vc *versioning.VersionConfig, locales []string, only []string) []ScopedDocuments {
	found := sets.New[string]()
	unversioned := make([]docmodel.Document, 0)
	for _, d := range docs {
		seg := leadingSegment(d.ID)
		if strings.Contains(d.ID, "/") && isVersionSegment(seg, vc) {
			found.Add(seg)
			continue
		}
		unversioned = append(unversioned, d)
	}

	var order []string
	if vc != nil {
		for _, a := range vc.Available {
			for _, seg := range []string{a.ID, a.URLSegment()} {
				if found.Has(seg) && !slices.Contains(order, seg) {
					order = append(order, seg)
				}
			}
		}
	}
	var rest []string
	for _, v := range sets.Sorted(found) {
		if !slices.Contains(order, v) {
			rest = append(rest, v)
		}
	}
	versioning.SortVersions(rest)
	order = append(order, rest...)

	var out []ScopedDocuments
	if len(unversioned) > 0 && len(only) == 0 {
		out = append(out, splitLocales("", cloneAll(unversioned), locales)...)
	}
	for _, v := range order {
		if len(only) > 0 && !slices.Contains(only, v) {
			continue
		}
		out = append(out, splitLocales(v, docmodel.FilterByLeadingSegment(docs, v), locales)...)
	}
	return out
}

func splitLocales(version string, docs []docmodel.Document, locales []string) []ScopedDocuments {
	if len(locales) == 0 {
		return []ScopedDocuments{{Scope: Scope{Version: version}, Documents: docs}}
	}

	known := sets.New(locales...)
	var neutral []docmodel.Document
	for _, d := range docs {
		if !(strings.Contains(d.ID, "/") && known.Has(leadingSegment(d.ID))) {
			neutral = append(neutral, d)
		}
	}

	var out []ScopedDocuments
	if len(neutral) > 0 {
		out = append(out, ScopedDocuments{Scope: Scope{Version: version}, Documents: neutral})
	}
	for _, l := range locales {
		if scoped := docmodel.FilterByLeadingSegment(docs, l); len(scoped) > 0 {
			out = append(out, ScopedDocuments{Scope: Scope{Version: version, Locale: l}, Documents: scoped})
		}
	}
	return out
}

func cloneAll(docs []docmodel.Document) []docmodel.Document {
	out := make([]docmodel.Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out
}
