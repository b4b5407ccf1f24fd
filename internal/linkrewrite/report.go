package linkrewrite

import "git.home.luguber.info/inful/docnav/internal/foundation/errors"

// Report summarizes a rewrite pass over one piece of content.
type Report struct {
	Links       int
	Rewritten   int
	ByRule      map[Rule]int
	Diagnostics []*errors.ClassifiedError
}

func (r *Report) record(res Result) {
	r.Links++
	if r.ByRule == nil {
		r.ByRule = make(map[Rule]int)
	}
	r.ByRule[res.Rule]++
	if res.Changed {
		r.Rewritten++
	}
	if res.Diagnostic != nil {
		r.Diagnostics = append(r.Diagnostics, res.Diagnostic)
	}
}

// Merge adds other's counts to r.
func (r *Report) Merge(other Report) {
	r.Links += other.Links
	r.Rewritten += other.Rewritten
	for rule, n := range other.ByRule {
		if r.ByRule == nil {
			r.ByRule = make(map[Rule]int)
		}
		r.ByRule[rule] += n
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}
