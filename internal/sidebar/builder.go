package sidebar

import (
	"log/slog"
	"maps"
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/category"
	"git.home.luguber.info/inful/docnav/internal/docmodel"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Options configures Build.
type Options struct {
	// Categories supplies per-directory overrides. Nil means none.
	Categories *category.Index
	// DirPrefix is the content directory the documents were filtered from
	// (a version and/or locale segment). Category lookups try the prefixed
	// directory first, then the bare one.
	DirPrefix string
	Logger    *slog.Logger
}

// Build compiles docs into a navigation tree. Inputs are not modified.
//
// Documents are inserted in ID order so colliding documents resolve the same
// way on every build; the later document's fields win. Unlisted documents are
// dropped before insertion.
func Build(docs []docmodel.Document, opts Options) *Tree {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	listed := make([]docmodel.Document, 0, len(docs))
	for _, d := range docs {
		if d.Unlisted {
			logger.Debug("Skipping unlisted document", logfields.DocID(d.ID))
			continue
		}
		listed = append(listed, d)
	}
	sort.SliceStable(listed, func(i, j int) bool { return listed[i].ID < listed[j].ID })

	t := newTree()
	for _, d := range listed {
		segs := docmodel.Segments(d.ID)
		if len(segs) == 0 {
			logger.Debug("Root index document has no sidebar entry", logfields.DocID(d.ID))
			continue
		}
		insert(t.root, segs, d, isIndexID(d.ID))
	}

	if opts.Categories.Len() > 0 {
		applyCategories(t.root.Children, "", opts)
	}
	sortNodes(t.root.Children)
	finalize(t.root.Children)

	logger.Debug("Built navigation tree", logfields.Count(t.Count()), slog.Int("documents", len(listed)))
	return t
}

// insert walks segs below parent, materializing placeholders for
// intermediate segments, and applies d to the final node.
func insert(parent *Node, segs []string, d docmodel.Document, index bool) {
	n := parent
	last := len(segs) - 1
	for i, seg := range segs {
		next := n.child(seg)
		if next == nil {
			next = newPlaceholder(seg)
			next.dir = i < last
			n.addChild(next)
		} else if i < last {
			next.dir = true
		}
		n = next
	}
	applyDocument(n, d)
	if index {
		n.dir = true
	}
}

func applyDocument(n *Node, d docmodel.Document) {
	if d.Clickable() {
		n.Href = d.Path
	} else {
		n.Href = ""
	}
	n.Label = d.SidebarLabel()
	if n.Label == "" {
		n.Label = n.Key
	}
	n.Position = d.SidebarPosition()
	n.positionSet = d.Sidebar.Position != nil
	n.ClassName = d.Sidebar.ClassName
	n.CustomProps = maps.Clone(d.Sidebar.CustomProps)
	n.Collapsible = copyBool(d.Sidebar.Collapsible)
	n.Collapsed = copyBool(d.Sidebar.Collapsed)
}

// applyCategories overwrites attributes on directory nodes that have a
// descriptor. It only visits existing nodes.
func applyCategories(nodes []*Node, parentDir string, opts Options) {
	for _, n := range nodes {
		dir := path.Join(parentDir, n.Key)
		if n.dir {
			if meta, ok := lookupCategory(opts, dir); ok {
				mergeCategory(n, meta)
			}
		}
		applyCategories(n.Children, dir, opts)
	}
}

func lookupCategory(opts Options, dir string) (category.Metadata, bool) {
	if opts.DirPrefix != "" {
		if m, ok := opts.Categories.Get(path.Join(opts.DirPrefix, dir)); ok {
			return m, true
		}
	}
	return opts.Categories.Get(dir)
}

func mergeCategory(n *Node, m category.Metadata) {
	if m.Label != "" {
		n.Label = m.Label
	}
	if m.ClassName != "" {
		n.ClassName = m.ClassName
	}
	if m.CustomProps != nil {
		n.CustomProps = m.CustomProps
	}
	if m.Collapsible != nil {
		n.Collapsible = m.Collapsible
	}
	if m.Collapsed != nil {
		n.Collapsed = m.Collapsed
	}
	if m.Position != nil && !n.positionSet {
		n.Position = *m.Position
	}
}

// less orders siblings by position, then label, then key.
func less(a, b *Node) bool {
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	if a.Label != b.Label {
		return a.Label < b.Label
	}
	return a.Key < b.Key
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool { return less(nodes[i], nodes[j]) })
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// finalize drops build-only state and collapse flags on leaves.
func finalize(nodes []*Node) {
	for _, n := range nodes {
		if !n.HasChildren() {
			n.Collapsible = nil
			n.Collapsed = nil
		}
		n.byKey = nil
		finalize(n.Children)
	}
}

func isIndexID(id string) bool {
	if strings.HasSuffix(id, "/") {
		return true
	}
	return path.Base(docmodel.StripExtension(id)) == "index"
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
