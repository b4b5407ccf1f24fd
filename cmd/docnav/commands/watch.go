package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docnav/internal/site"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `default:"300ms" help:"Quiet period after the last change before rebuilding"`
	Interval time.Duration `help:"Also rebuild on this fixed interval (0 disables)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}

	dirs := []string{cfg.Content.Root}
	if cfg.Content.Rendered != "" {
		dirs = append(dirs, cfg.Content.Rendered)
	}
	watcher := &watch.Watcher{
		Dirs:     dirs,
		Files:    []string{cfg.Content.Catalog, root.Config},
		Debounce: w.Debounce,
		Interval: w.Interval,
		Logger:   g.Logger,
	}
	return watcher.Run(ctx, func(ctx context.Context) error {
		// Configuration is reloaded so edits to it take effect.
		current, err := loadConfig(g, root)
		if err != nil {
			return err
		}
		_, err = RunBuild(ctx, g, current, site.Options{})
		return err
	})
}
