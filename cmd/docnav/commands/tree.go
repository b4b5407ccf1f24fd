package commands

import (
	"context"

	"git.home.luguber.info/inful/docnav/internal/site"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Scope string `arg:"" optional:"" help:"Scope key such as v2 or v2/fr (default: first scope)"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	navs, err := compile(context.Background(), g, root, site.Options{})
	if err != nil {
		return err
	}
	nav, err := findScope(navs, t.Scope)
	if err != nil {
		return err
	}
	data, err := site.MarshalTree(nav)
	if err != nil {
		return err
	}
	_, err = g.out().Write(data)
	return err
}
