// Package pagination resolves previous/next links from a navigation tree.
//
// The reading order is the depth-first, sibling-ordered sequence of tree
// nodes that carry an href. Per-document overrides take precedence over that
// order; see Plan.Resolve.
package pagination

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// Link is one pagination target.
type Link struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Info is the pagination of one page. A nil side means no link.
type Info struct {
	Prev *Link `json:"prev,omitempty"`
	Next *Link `json:"next,omitempty"`
}

// Empty reports whether neither direction has a link.
func (i Info) Empty() bool {
	return i.Prev == nil && i.Next == nil
}

// Entry is one position in the reading order.
type Entry struct {
	Href  string
	Label string
}

// Flatten returns the reading order of tree.
func Flatten(tree *sidebar.Tree) []Entry {
	var out []Entry
	tree.Walk(func(_ []string, n *sidebar.Node) bool {
		if n.Href != "" {
			out = append(out, Entry{Href: n.Href, Label: n.Label})
		}
		return true
	})
	return out
}

// NormalizePath strips one trailing slash, except from the root path.
func NormalizePath(p string) string {
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return p[:len(p)-1]
	}
	return p
}

// Sequencer resolves pagination for the pages of one tree.
type Sequencer struct {
	// Locales lists the configured locale codes used to recognize
	// locale-only index IDs. When empty a language-tag pattern is used.
	Locales []string
	// Catalog is the full document list override targets are also looked
	// up in, so a target may name a document by its unscoped catalog ID.
	// Documents passed to Prepare are searched first.
	Catalog []docmodel.Document
	Logger  *slog.Logger
}

// Plan is the prepared reading order of one tree together with the lookup
// tables needed to resolve any of its pages. It is read-only once built and
// safe for concurrent use.
type Plan struct {
	seq     []Entry
	pos     map[string]int
	byPath  map[string]*docmodel.Document
	docs    []docmodel.Document
	catalog []docmodel.Document
	locales *localeMatcher
	logger  *slog.Logger
}

// Prepare flattens tree and indexes docs by path.
func (s Sequencer) Prepare(tree *sidebar.Tree, docs []docmodel.Document) *Plan {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := &Plan{
		seq:     Flatten(tree),
		byPath:  make(map[string]*docmodel.Document, len(docs)),
		docs:    docs,
		catalog: s.Catalog,
		locales: newLocaleMatcher(s.Locales),
		logger:  logger,
	}
	p.pos = make(map[string]int, len(p.seq))
	for i, e := range p.seq {
		key := NormalizePath(e.Href)
		if _, dup := p.pos[key]; !dup {
			p.pos[key] = i
		}
	}
	for i := range docs {
		key := NormalizePath(docs[i].Path)
		if _, dup := p.byPath[key]; !dup {
			p.byPath[key] = &docs[i]
		}
	}
	return p
}

// Resolve is Prepare followed by Plan.Resolve, for one-off lookups.
func (s Sequencer) Resolve(currentPath string, tree *sidebar.Tree, docs []docmodel.Document) Info {
	return s.Prepare(tree, docs).Resolve(currentPath)
}

// ResolveAll returns the pagination of every listed document keyed by its
// normalized path.
func (s Sequencer) ResolveAll(tree *sidebar.Tree, docs []docmodel.Document) map[string]Info {
	return s.Prepare(tree, docs).ResolveAll()
}

// Sequence returns the reading order.
func (p *Plan) Sequence() []Entry {
	return p.seq
}

// ResolveAll resolves every listed document of the plan.
func (p *Plan) ResolveAll() map[string]Info {
	out := make(map[string]Info, len(p.docs))
	for _, d := range p.docs {
		if d.Unlisted || d.Path == "" {
			continue
		}
		key := NormalizePath(d.Path)
		if _, done := out[key]; done {
			continue
		}
		out[key] = p.Resolve(d.Path)
	}
	return out
}

// Resolve returns the pagination of the page at currentPath.
//
// Overrides on the page's document come first: a target reference resolves
// by ID, extension-less ID or custom ID (first match wins, unknown or
// unlisted targets give no link), an explicit null disables that direction.
// Without an override the sequence neighbor is used. A page missing from the
// sequence only paginates when it is a section index: no prev, the first
// sequence entry as next.
func (p *Plan) Resolve(currentPath string) Info {
	cur := NormalizePath(currentPath)
	doc := p.byPath[cur]
	if doc != nil && doc.Unlisted {
		return Info{}
	}

	var prev, next *Link
	if i, ok := p.pos[cur]; ok {
		if i > 0 {
			prev = p.entryLink(p.seq[i-1])
		}
		if i+1 < len(p.seq) {
			next = p.entryLink(p.seq[i+1])
		}
	} else {
		if doc == nil || !p.isIndex(*doc) {
			return Info{}
		}
		if len(p.seq) > 0 {
			next = p.entryLink(p.seq[0])
		}
	}

	if doc != nil {
		prev = p.override(doc, "prev", doc.PaginationPrev, prev)
		next = p.override(doc, "next", doc.PaginationNext, next)
	}
	return Info{Prev: prev, Next: next}
}

func (p *Plan) override(doc *docmodel.Document, dir string, ref docmodel.Ref, fallback *Link) *Link {
	if ref.IsAbsent() {
		return fallback
	}
	if ref.IsDisabled() {
		return nil
	}
	target, _ := ref.TargetID()
	d := findTarget(p.docs, target)
	if d == nil {
		d = findTarget(p.catalog, target)
	}
	switch {
	case d == nil:
		p.logger.Debug("Pagination target not found",
			logfields.DocID(doc.ID), logfields.Target(target), slog.String("direction", dir))
		return nil
	case d.Unlisted:
		p.logger.Debug("Pagination target is unlisted",
			logfields.DocID(doc.ID), logfields.Target(target), slog.String("direction", dir))
		return nil
	}
	return docLink(d)
}

func findTarget(docs []docmodel.Document, target string) *docmodel.Document {
	for i := range docs {
		if docs[i].MatchesTarget(target) {
			return &docs[i]
		}
	}
	return nil
}

func (p *Plan) entryLink(e Entry) *Link {
	if d := p.byPath[NormalizePath(e.Href)]; d != nil {
		return &Link{Title: titleOr(d.PaginationTitle(), e.Label), Href: e.Href}
	}
	return &Link{Title: e.Label, Href: e.Href}
}

func docLink(d *docmodel.Document) *Link {
	return &Link{Title: titleOr(d.PaginationTitle(), d.ID), Href: d.Path}
}

func titleOr(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
