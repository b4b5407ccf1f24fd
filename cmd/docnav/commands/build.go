package commands

import (
	"context"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string   `short:"o" help:"Override output.directory"`
	Versions    []string `name:"versions" sep:"," help:"Build only these versions (comma separated)"`
	DryRun      bool     `name:"dry-run" help:"Compile everything but write nothing"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics in textfile format (overrides monitoring.metrics.textfile)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.MetricsFile != "" {
		cfg.Monitoring.Metrics.Textfile = b.MetricsFile
	}

	art, err := RunBuild(context.Background(), g, cfg, site.Options{Versions: b.Versions, DryRun: b.DryRun})
	if err != nil {
		return err
	}

	if b.DryRun {
		_, _ = fmt.Fprintf(g.out(), "Dry run: %d scopes, %d links rewritten in %d files\n",
			len(art.Navigation), art.Links.Rewritten, len(art.RewrittenFiles))
		return nil
	}
	_, _ = fmt.Fprintf(g.out(), "Built %d scopes into %s (%d links rewritten, %d warnings)\n",
		len(art.Navigation), cfg.Output.Directory, art.Links.Rewritten, len(art.Warnings))
	return nil
}

// RunBuild performs one build and exports metrics when a textfile is
// configured.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, opts site.Options) (*site.Artifacts, error) {
	var rec metrics.Recorder = metrics.NoopRecorder{}
	var reg *prom.Registry
	if cfg.Monitoring.Metrics.Textfile != "" {
		reg = prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
	}

	sc, err := site.NewContext(cfg, g.Logger, rec)
	if err != nil {
		return nil, err
	}
	art, buildErr := site.NewBuilder(sc, opts).Build(ctx)

	if reg != nil {
		if err := metrics.WriteTextfile(reg, cfg.Monitoring.Metrics.Textfile); err != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Monitoring.Metrics.Textfile), logfields.Error(err))
		}
	}
	return art, buildErr
}
