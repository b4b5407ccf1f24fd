package linkrewrite

import (
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/markdown"
)

// RewriteMarkdown rewrites inline link destinations and reference
// definitions in a Markdown source with byte-range edits; the rest of the
// document is preserved byte for byte.
func (r *Rewriter) RewriteMarkdown(src []byte) ([]byte, Report, error) {
	var rep Report
	out, _, err := markdown.RewriteDestinations(src, markdown.Options{}, func(d markdown.Destination) (string, bool) {
		res := r.Rewrite(d.Value)
		rep.record(res)
		return res.Href, res.Changed
	})
	if err != nil {
		return nil, rep, errors.WrapError(err, errors.CategoryLinks, "failed to rewrite markdown links").Build()
	}
	return out, rep, nil
}
