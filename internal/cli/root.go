// Package cli implements the tzclock command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzclock/catalog"
	"github.com/ngrash/go-tzclock/internal/config"
	"github.com/ngrash/go-tzclock/internal/logger"
	"github.com/ngrash/go-tzclock/localtime"
)

// app is the state shared by all subcommands, set up before any of them runs.
type app struct {
	configFile string
	now        func() time.Time

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
	cat      *catalog.Catalog
}

// NewCommand returns the tzclock root command.
func NewCommand() *cobra.Command {
	return newRootCommand(&app{now: time.Now})
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tzclock",
		Short: "Project UTC instants to local time with an embedded zone table",
		Long: `tzclock converts UTC instants to local wall clock time for a selected timezone.

Settings are read from tzclock.yaml (in the working directory, $HOME/.config/tzclock
or /etc/tzclock), from TZCLOCK_* environment variables and from flags.`,
		SilenceUsage:      true,
		PersistentPreRunE:  a.init,
		PersistentPostRunE: a.close,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "config file (default: search for tzclock.yaml)")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-format", "", "log format (console, json)")
	f.String("catalog", "", "tzdata source file to use instead of the embedded zone table")
	f.StringP("zone", "z", "", "timezone or alias name")
	f.Bool("12h", false, "use a 12-hour clock")
	f.Bool("dmy", false, "print dates as day/month/year")

	cmd.AddCommand(
		a.newNowCommand(),
		a.newConvertCommand(),
		a.newTransitionsCommand(),
		a.newListCommand(),
		a.newGenCommand(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if strings.EqualFold(cfg.Logger.OutputPath, "stderr") {
		a.logger = logger.New(cmd.ErrOrStderr(), &cfg.Logger)
		slog.SetDefault(a.logger)
	} else if a.logger, a.closeLog, err = logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cat, err = a.loadCatalog()
	return err
}

// close releases the log file after a successful command. On failure the
// process exits right after and the file is closed with it.
func (a *app) close(_ *cobra.Command, _ []string) error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	path := a.cfg.Catalog.Path
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := catalog.Load(f, a.now().UTC().Year())
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	a.logger.Debug("loaded catalog", "path", path, "zones", cat.Len(), "aliases", len(cat.Aliases()))
	return cat, nil
}

// clock returns a Clock with the configured zone selected.
func (a *app) clock() *localtime.Clock {
	c := localtime.New(a.cat, localtime.WithLogger(a.logger))
	if zone := a.cfg.Clock.Zone; !c.SetTimezone(zone) {
		a.logger.Warn("unknown timezone", "zone", zone, "using", c.Zone())
	}
	return c
}

// formatOffset renders seconds east of UTC as ±hh:mm, with seconds if nonzero.
func formatOffset(sec int64) string {
	sign := '+'
	if sec < 0 {
		sign, sec = '-', -sec
	}
	h, m, s := sec/3600, sec/60%60, sec%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
