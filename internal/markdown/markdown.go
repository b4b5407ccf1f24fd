// Package markdown locates link destinations in Markdown sources and applies
// minimal byte-range edits to them, so links can be rewritten without
// re-rendering the document.
package markdown

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte, _ Options) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// Destinations returns the rewritable link destinations of body in source
// order: inline link destinations and reference definition destinations.
// Images, autolinks and links whose destination cannot be located exactly
// in the source are not reported.
func Destinations(body []byte, opts Options) ([]Destination, error) {
	root := ParseBody(body, opts)

	out := make([]Destination, 0)
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if d, found := locateInline(body, link); found {
			out = append(out, d)
		}
		return gmast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}

	out = append(out, referenceDefinitions(body)...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// locateInline finds the destination of an inline link "[label](dest)".
// Goldmark does not record link offsets, so the opening bracket is searched
// after the content that precedes the link in its block and the label is
// closed by bracket matching. Reference-style links have no "(" after the
// label and are skipped; their definitions are found separately.
func locateInline(source []byte, link *gmast.Link) (Destination, bool) {
	dest := link.Destination
	if len(dest) == 0 {
		return Destination{}, false
	}
	start, end := blockBounds(source, link)

	if open, ok := openingBracket(source, precedingStop(link, start), end); ok {
		if closer, ok := matchBracket(source, open, end); ok {
			return destinationAt(source, closer+1, dest)
		}
	}

	// The label could not be delimited. Fall back to the first "](dest"
	// after the last label content.
	from, ok := lastSegmentStop(link)
	if !ok {
		return Destination{}, false
	}
	for from < end {
		j := bytes.Index(source[from:end], []byte("]("))
		if j < 0 {
			break
		}
		if d, ok := destinationAt(source, from+j+1, dest); ok {
			return d, true
		}
		from += j + 2
	}
	return Destination{}, false
}

// destinationAt reports dest when source[at] opens a link destination that
// starts with dest.
func destinationAt(source []byte, at int, dest []byte) (Destination, bool) {
	if at >= len(source) || source[at] != '(' {
		return Destination{}, false
	}
	i := at + 1
	for i < len(source) && isSpace(source[i]) {
		i++
	}
	if i < len(source) && source[i] == '<' {
		i++
	}
	if !bytes.HasPrefix(source[i:], dest) {
		return Destination{}, false
	}
	return Destination{Kind: LinkKindInline, Value: string(dest), Start: i, End: i + len(dest)}, true
}

// blockBounds returns the source range of the nearest block holding n.
func blockBounds(source []byte, n gmast.Node) (int, int) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() != gmast.TypeBlock {
			continue
		}
		lines := p.Lines()
		if lines == nil || lines.Len() == 0 {
			continue
		}
		return lines.At(0).Start, lines.At(lines.Len() - 1).Stop
	}
	return 0, len(source)
}

// precedingStop returns the end of the last source segment that comes before
// link within its block, or start when nothing precedes it.
func precedingStop(link gmast.Node, start int) int {
	var block gmast.Node
	for p := link.Parent(); p != nil; p = p.Parent() {
		if p.Type() == gmast.TypeBlock {
			block = p
			break
		}
	}
	if block == nil {
		return start
	}
	stop := start
	_ = gmast.Walk(block, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if c == link {
			return gmast.WalkStop, nil
		}
		if entering {
			if s, ok := segmentStop(c); ok && s > stop {
				stop = s
			}
		}
		return gmast.WalkContinue, nil
	})
	return stop
}

// lastSegmentStop returns the end of the last source segment under n.
func lastSegmentStop(n gmast.Node) (int, bool) {
	stop, found := 0, false
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if s, ok := segmentStop(c); ok && s >= stop {
			stop, found = s, true
		}
		return gmast.WalkContinue, nil
	})
	return stop, found
}

func segmentStop(n gmast.Node) (int, bool) {
	switch v := n.(type) {
	case *gmast.Text:
		return v.Segment.Stop, true
	case *gmast.RawHTML:
		if v.Segments == nil || v.Segments.Len() == 0 {
			return 0, false
		}
		return v.Segments.At(v.Segments.Len() - 1).Stop, true
	}
	return 0, false
}

// openingBracket returns the first unescaped "[" in source[from:end].
func openingBracket(source []byte, from, end int) (int, bool) {
	for i := from; i < end && i < len(source); i++ {
		switch source[i] {
		case '\\':
			i++
		case '[':
			return i, true
		}
	}
	return 0, false
}

// matchBracket returns the "]" closing the "[" at open. Escaped brackets and
// brackets inside code spans do not count.
func matchBracket(source []byte, open, end int) (int, bool) {
	depth := 0
	for i := open; i < end && i < len(source); i++ {
		switch source[i] {
		case '\\':
			i++
		case '`':
			i = skipCodeSpan(source, i, end)
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// skipCodeSpan returns the index of the last backtick of the code span that
// opens at i, or the end of the opening run when the span is not closed.
func skipCodeSpan(source []byte, i, end int) int {
	n := 0
	for i+n < end && source[i+n] == '`' {
		n++
	}
	run := source[i : i+n]
	for j := i + n; j < end; {
		k := bytes.Index(source[j:end], run)
		if k < 0 {
			break
		}
		k += j
		m := k + n
		if m >= end || source[m] != '`' {
			return m - 1
		}
		for m < end && source[m] == '`' {
			m++
		}
		j = m
	}
	return i + n - 1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
