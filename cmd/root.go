package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ftahirops/xinfo/collector"
	"github.com/ftahirops/xinfo/collector/flavor"
	"github.com/ftahirops/xinfo/collector/udisks2"
	"github.com/ftahirops/xinfo/config"
	"github.com/ftahirops/xinfo/engine"
	"github.com/ftahirops/xinfo/model"
	"github.com/ftahirops/xinfo/ui"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// Options holds global CLI flags. Zero values fall back to the config file.
type Options struct {
	Timeout   time.Duration
	SysfsDir  string
	LogLevel  string
	LogFile   string
	NoFlavors bool
}

// app wires config, logging, the UDisks2 client and the collectors.
type app struct {
	cfg     config.Config
	log     *logrus.Logger
	entry   *logrus.Entry
	logFile *os.File
	client  *udisks2.Client
	engine  *engine.Engine
}

// Run parses flags and starts the application.
func Run() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:   "xinfo",
		Short: "Storage drive inventory, SMART health and desktop flavor detection",
		Long: `xinfo reads drive inventory and SMART health from UDisks2 over the system bus
and detects installed Ubuntu desktop flavors with apt-cache.

Without a subcommand it starts the interactive TUI.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, true, runTUI)
		},
	}

	pf := root.PersistentFlags()
	pf.DurationVar(&opts.Timeout, "timeout", 0, "Deadline for each D-Bus call (0 = config or none)")
	pf.StringVar(&opts.SysfsDir, "sysfs-dir", "", "Block device directory listed when UDisks2 cannot enumerate")
	pf.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	pf.BoolVar(&opts.NoFlavors, "no-flavors", false, "Skip desktop flavor detection")

	root.AddCommand(
		newDrivesCommand(&opts),
		newTempsCommand(&opts),
		newFlavorsCommand(&opts),
		newWatchCommand(&opts),
		newServeCommand(&opts),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "xinfo v%s\n", Version)
		},
	}
}

// withApp builds the app, connects to UDisks2 and runs fn. The connection is
// always released afterwards.
func withApp(ctx context.Context, opts Options, tui bool, fn func(context.Context, *app) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(opts, tui)
	if err != nil {
		return err
	}
	defer a.close()

	// A missing service is not fatal: queries just come back empty.
	if err := a.client.Init(ctx); err != nil {
		a.log.WithError(err).Info("udisks2 unavailable, drive data will be empty")
	}
	return fn(ctx, a)
}

func newApp(opts Options, tui bool) (*app, error) {
	cfg := config.Load()
	if opts.SysfsDir != "" {
		cfg.SysfsBlockDir = opts.SysfsDir
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.NoFlavors {
		cfg.Flavors.Enabled = false
	}

	log, logFile, err := newLogger(cfg.LogLevel, opts.LogFile, tui)
	if err != nil {
		return nil, err
	}
	entry := logrus.NewEntry(log)

	timeout := cfg.CallTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	client := udisks2.NewClient(udisks2.Options{
		CallTimeout:   timeout,
		SysfsBlockDir: cfg.SysfsBlockDir,
		Log:           entry,
	})

	reg := collector.NewRegistry(
		&collector.SysInfoCollector{},
		collector.NewDriveCollector(client, cfg.CacheTTL()),
		collector.NewTemperatureCollector(client),
	)
	if cfg.Flavors.Enabled {
		reg.Add(collector.NewFlavorCollector(flavor.NewScanner(cfg.Flavors.AptCache, entry)))
	}

	return &app{
		cfg:     cfg,
		log:     log,
		entry:   entry,
		logFile: logFile,
		client:  client,
		engine:  engine.NewEngine(reg, entry),
	}, nil
}

func (a *app) close() {
	a.client.Shutdown()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// newLogger logs to stderr, to path when given, or nowhere in TUI mode so the
// screen is not corrupted.
func newLogger(level, path string, tui bool) (*logrus.Logger, *os.File, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return log, f, nil
	case tui:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return log, nil, nil
}

// tuiSource feeds the TUI and, when metrics are enabled, the metrics store.
type tuiSource struct {
	*engine.Engine
	ticker engine.Ticker
}

func (s tuiSource) Tick(ctx context.Context) *model.Snapshot {
	return s.ticker.Tick(ctx)
}

func runTUI(ctx context.Context, a *app) error {
	src := tuiSource{Engine: a.engine, ticker: a.engine}
	if a.cfg.Metrics.Enabled {
		store := engine.NewMetricsStore()
		src.ticker = engine.NewInstrumentedTicker(a.engine, store)
		go func() {
			if err := serveMetrics(ctx, a, store, a.cfg.Metrics.Addr); err != nil {
				a.log.WithError(err).Warn("metrics server stopped")
			}
		}()
	}

	m := ui.NewModel(ctx, src, a.cfg.Interval())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
