// Package main provides the CLI entrypoint for pinenotectl.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pinenotectl/internal/config"
	"github.com/jmylchreest/pinenotectl/internal/pinenote"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// app holds the state of one invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	globalOpts struct {
		verbose    bool
		configPath string
		bus        string
		output     string
	}

	// openDevice connects to the PineNote services; replaced in tests.
	openDevice func(ctx context.Context) (*pinenote.Device, error)
}

func newApp() *app {
	a := &app{
		cfg:    config.DefaultConfig(),
		logger: slog.Default(),
	}
	a.openDevice = func(ctx context.Context) (*pinenote.Device, error) {
		return pinenote.Open(ctx, a.cfg.BusOptions(), a.cfg.ServiceNames(), a.logger)
	}
	return a
}

// run executes one command line and returns the process exit code.
func (a *app) run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		// SIGINT/SIGTERM is the normal way to end a blocking command.
		if errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintln(stderr, errorLine(stderr, err, a.cfg.Output.Color))
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pinenotectl",
		Short: "Control the PineNote e-ink display and hardware settings",
		Long: `pinenotectl controls the PineNote's e-ink display controller and
miscellaneous hardware settings over D-Bus.

Every command opens one connection to the bus, talks to the PineNote helper
service and exits. Values are always read fresh from the service.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	root.PersistentFlags().StringVar(&a.globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/pinenotectl/config.toml)")
	root.PersistentFlags().StringVar(&a.globalOpts.bus, "bus", "",
		"Message bus to use: system or session (overrides config, including bus.address)")
	root.PersistentFlags().StringVarP(&a.globalOpts.output, "output", "o", "",
		"Output format: plain, json, yaml or table (overrides config)")

	root.AddCommand(
		newAwaitCommand(a),
		newFullRefreshCommand(a),
		newInfoCommand(a),
		newPerformanceModeCommand(a),
		newTravelModeCommand(a),
		newWaveformCommand(a),
		newTUICommand(a),
		newConfigCommand(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Annotations[annotationSkipConfig] == "" {
		cfg, err := config.LoadConfig(a.globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
	}

	// An explicit --bus also drops any configured address, which would
	// otherwise take precedence over the type.
	if a.globalOpts.bus != "" {
		a.cfg.Bus.Type = a.globalOpts.bus
		a.cfg.Bus.Address = ""
	}
	if a.globalOpts.output != "" {
		a.cfg.Output.Format = a.globalOpts.output
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, err := a.cfg.LogLevel()
	if err != nil {
		return err
	}
	if a.globalOpts.verbose {
		level = slog.LevelDebug
	}
	a.setupLogger(cmd.ErrOrStderr(), level)
	return nil
}

// setupLogger configures the global slog logger.
func (a *app) setupLogger(w io.Writer, level slog.Level) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(w, opts)
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
}

// withDevice opens the bus, builds the proxies and runs fn with them.
func (a *app) withDevice(cmd *cobra.Command, fn func(ctx context.Context, dev *pinenote.Device) error) error {
	ctx := cmd.Context()

	dev, err := a.openDevice(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.Close(); err != nil {
			a.logger.Debug("failed to close bus connection", "error", err)
		}
	}()

	return fn(ctx, dev)
}
