package linkrewrite

import (
	"bytes"
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

var documentPattern = regexp.MustCompile(`(?i)^\s*(<!doctype|<html)`)

// RewriteNode rewrites the href of every a and area element below n in place.
func (r *Rewriter) RewriteNode(n *html.Node) Report {
	var rep Report
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.A || n.DataAtom == atom.Area) {
			for i := range n.Attr {
				if n.Attr[i].Namespace != "" || n.Attr[i].Key != "href" {
					continue
				}
				res := r.Rewrite(n.Attr[i].Val)
				rep.record(res)
				n.Attr[i].Val = res.Href
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return rep
}

// RewriteHTML rewrites the links of a rendered HTML page or fragment.
// Content without rewritten links is returned unchanged.
func (r *Rewriter) RewriteHTML(src []byte) ([]byte, Report, error) {
	if documentPattern.Match(src) {
		return r.rewriteDocument(src)
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, Report{}, parseError(err)
	}
	var rep Report
	for _, n := range nodes {
		rep.Merge(r.RewriteNode(n))
	}
	if rep.Rewritten == 0 {
		return src, rep, nil
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, rep, renderError(err)
		}
	}
	return buf.Bytes(), rep, nil
}

func (r *Rewriter) rewriteDocument(src []byte) ([]byte, Report, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, Report{}, parseError(err)
	}
	rep := r.RewriteNode(doc)
	if rep.Rewritten == 0 {
		return src, rep, nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, rep, renderError(err)
	}
	return buf.Bytes(), rep, nil
}

func parseError(err error) error {
	return errors.WrapError(err, errors.CategoryLinks, "failed to parse HTML").Build()
}

func renderError(err error) error {
	return errors.WrapError(err, errors.CategoryLinks, "failed to render HTML").Build()
}
