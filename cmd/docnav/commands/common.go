package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/site"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Logger *slog.Logger
	// In feeds commands reading stdin. Out receives command output; logs go
	// to LogOut.
	In     io.Reader
	Out    io.Writer
	LogOut io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docnav.yaml" env:"DOCNAV_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogLevel  string           `name:"log-level" help:"Override monitoring.logging.level (debug|info|warn|error)"`
	LogFormat string           `name:"log-format" help:"Override monitoring.logging.format (text|json)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Compile navigation trees, pagination and version-aware links"`
	Tree     TreeCmd     `cmd:"" help:"Print the navigation tree of one scope as JSON"`
	Paginate PaginateCmd `cmd:"" help:"Print the previous/next links of one page"`
	Rewrite  RewriteCmd  `cmd:"" help:"Rewrite the links of one Markdown or HTML file"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever content, catalog or configuration changes"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up the bootstrap logger from
// the flags alone. Commands that load a configuration refine it.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	g.Logger = c.newLogger(g.logOut(), nil)
	slog.SetDefault(g.Logger)
	return nil
}

func (g *Global) in() io.Reader {
	if g.In == nil {
		return os.Stdin
	}
	return g.In
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logOut() io.Writer {
	if g.LogOut == nil {
		return os.Stderr
	}
	return g.LogOut
}

// newLogger builds the logger. Flags win over cfg; cfg may be nil.
func (c *CLI) newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := config.LogLevelInfo
	format := config.LogFormatText
	if cfg != nil {
		level = cfg.Monitoring.Logging.Level
		format = cfg.Monitoring.Logging.Format
	}
	if c.LogLevel != "" {
		level = config.NormalizeLogLevel(c.LogLevel)
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	if c.Verbose {
		level = config.LogLevelDebug
	}

	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the configuration and switches g to its logging settings.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config, g.Logger)
	if err != nil {
		return nil, err
	}
	g.Logger = root.newLogger(g.logOut(), cfg)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

// compile loads every input and compiles navigation without writing.
func compile(ctx context.Context, g *Global, root *CLI, opts site.Options) ([]site.Navigation, error) {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return nil, err
	}
	sc, err := site.NewContext(cfg, g.Logger, metrics.NoopRecorder{})
	if err != nil {
		return nil, err
	}
	return site.NewBuilder(sc, opts).Compile(ctx)
}

// findScope returns the navigation for key, or the first scope when key is
// empty.
func findScope(navs []site.Navigation, key string) (site.Navigation, error) {
	if len(navs) == 0 {
		return site.Navigation{}, errors.NewError(errors.CategoryNavigation, "catalog has no documents").Build()
	}
	if key == "" {
		return navs[0], nil
	}
	available := make([]string, 0, len(navs))
	for _, n := range navs {
		if n.Scope.Key() == key {
			return n, nil
		}
		available = append(available, n.Scope.String())
	}
	return site.Navigation{}, errors.ValidationError("unknown scope").
		WithContext("scope", key).
		WithContext("available", available).
		Build()
}
