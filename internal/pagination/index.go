package pagination

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// languageTag accepts two-letter codes with optional script and region
// subtags: en, pt-BR, zh-Hans, es-419.
var languageTag = regexp.MustCompile(`^[a-z]{2}(-[A-Z][a-z]{3})?(-([A-Z]{2}|[0-9]{3}))?$`)

type localeMatcher struct {
	known sets.Set[string]
}

func newLocaleMatcher(locales []string) *localeMatcher {
	if len(locales) == 0 {
		return &localeMatcher{}
	}
	known := sets.New[string]()
	for _, l := range locales {
		known.Add(strings.ToLower(l))
	}
	return &localeMatcher{known: known}
}

func (m *localeMatcher) match(s string) bool {
	if m.known != nil {
		return m.known.Has(strings.ToLower(s))
	}
	return languageTag.MatchString(s)
}

// isIndex reports whether d is a section index page. An explicit Index flag
// wins; otherwise the ID shape decides: a locale-only ID, a trailing "index"
// segment or a trailing empty segment.
func (p *Plan) isIndex(d docmodel.Document) bool {
	if d.Index != nil {
		return *d.Index
	}
	id := docmodel.StripExtension(d.ID)
	if id == "" || strings.HasSuffix(id, "/") {
		return true
	}
	segs := strings.Split(id, "/")
	if segs[len(segs)-1] == "index" {
		return true
	}
	return len(segs) == 1 && p.locales.match(segs[0])
}
