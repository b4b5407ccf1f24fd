package commands

import (
	"context"
	"encoding/json"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/pagination"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// PaginateCmd implements the 'paginate' command.
type PaginateCmd struct {
	Path  string `arg:"" help:"Page permalink, e.g. /docs/v2/guide/setup"`
	Scope string `help:"Restrict the lookup to one scope key"`
}

func (p *PaginateCmd) Run(g *Global, root *CLI) error {
	navs, err := compile(context.Background(), g, root, site.Options{})
	if err != nil {
		return err
	}
	if p.Scope != "" {
		nav, err := findScope(navs, p.Scope)
		if err != nil {
			return err
		}
		navs = []site.Navigation{nav}
	}

	key := pagination.NormalizePath(p.Path)
	var info pagination.Info
	found := false
	for _, n := range navs {
		if i, ok := n.Pagination[key]; ok {
			info, found = i, true
			break
		}
	}
	if !found {
		g.Logger.Debug("Page is not part of any reading order", logfields.Path(key))
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode pagination").Build()
	}
	_, err = g.out().Write(append(data, '\n'))
	return err
}
