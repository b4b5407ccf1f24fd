// Package versioning recognizes version segments in document IDs and links
// and describes which documentation versions a site publishes.
package versioning

import (
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// Latest is the reserved alias that always resolves to the newest version.
const Latest = "latest"

var versionPattern = regexp.MustCompile(`^(v\d+(\.\d+)*|latest|next|main|master|canary|beta|alpha|stable|rc\d+)$`)

// IsVersion reports whether token is a recognized version segment.
func IsVersion(token string) bool {
	return versionPattern.MatchString(token)
}

// VersionOf returns the leading segment of id when it is a recognized version.
func VersionOf(id string) (string, bool) {
	first, _, _ := strings.Cut(id, "/")
	if IsVersion(first) {
		return first, true
	}
	return "", false
}

// StripVersion removes a leading recognized version segment and its slash.
func StripVersion(id string) string {
	first, rest, found := strings.Cut(id, "/")
	if !IsVersion(first) {
		return id
	}
	if !found {
		return ""
	}
	return rest
}

// FilterForVersion keeps the documents whose leading segment equals version
// and returns copies with that segment stripped from ID. Path is left as-is
// so hrefs stay fully versioned.
func FilterForVersion(docs []docmodel.Document, version string) []docmodel.Document {
	return docmodel.FilterByLeadingSegment(docs, version)
}

// Versions lists the distinct version segments present in docs, sorted.
func Versions(docs []docmodel.Document) []string {
	found := sets.New[string]()
	for _, d := range docs {
		if v, ok := VersionOf(d.ID); ok {
			found.Add(v)
		}
	}
	return sets.Sorted(found)
}

// SortVersions orders numeric versions newest first, then named versions alphabetically.
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		a, aok := numeric(versions[i])
		b, bok := numeric(versions[j])
		switch {
		case aok && bok:
			for k := 0; k < len(a) || k < len(b); k++ {
				var x, y int
				if k < len(a) {
					x = a[k]
				}
				if k < len(b) {
					y = b[k]
				}
				if x != y {
					return x > y
				}
			}
			return false
		case aok != bok:
			return aok
		default:
			return versions[i] < versions[j]
		}
	})
}

func numeric(v string) ([]int, bool) {
	if !strings.HasPrefix(v, "v") || !IsVersion(v) {
		return nil, false
	}
	parts := strings.Split(v[1:], ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n := 0
		for _, c := range p {
			n = n*10 + int(c-'0')
		}
		out[i] = n
	}
	return out, true
}
