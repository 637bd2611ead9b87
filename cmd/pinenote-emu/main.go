// Package main is the entry point for pinenote-emu, an in-memory stand-in
// for the PineNote helper service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmylchreest/pinenotectl/internal/config"
	"github.com/jmylchreest/pinenotectl/internal/dbus"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	// Parse command line flags
	systemBus := flag.Bool("system", false, "Export on the system bus instead of the session bus")
	address := flag.String("address", "", "Explicit bus address (overrides -system)")
	configPath := flag.String("config", "", "Path to pinenotectl config file for service names")
	verbose := flag.Bool("verbose", false, "Log every method call")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("pinenote-emu version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := dbus.Options{Type: dbus.BusSession, Address: *address}
	if *systemBus {
		opts.Type = dbus.BusSystem
	}

	if err := run(logger, opts, cfg.ServiceNames()); err != nil {
		logger.Error("emulator failed", "error", err)
		os.Exit(1)
	}
}

// run exports the emulated service and blocks until SIGINT/SIGTERM.
func run(logger *slog.Logger, opts dbus.Options, names dbus.ServiceNames) error {
	logger.Info("starting pinenote-emu", "version", version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	emu := dbus.NewEmulator(logger)
	emu.SetNames(names)
	if err := emu.Start(ctx, opts); err != nil {
		return err
	}

	logger.Info("pinenote-emu ready", "name", names.Name,
		"ebc", names.EBCPath, "misc", names.MiscPath)

	<-ctx.Done()
	logger.Info("received signal, shutting down")

	st := emu.State()
	if err := emu.Stop(); err != nil {
		logger.Warn("error stopping emulator", "error", err)
	}

	logger.Info("pinenote-emu stopped", "refreshes", st.Refreshes)
	return nil
}
