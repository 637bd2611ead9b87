package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pinenotectl/internal/pinenote"
)

// Await targets.
const (
	targetPerformanceModeChanged = "performance-mode-changed"
	targetTravelModeChanged      = "travel-mode-changed"
	targetWaveformChanged        = "waveform-changed"
)

type awaitTarget struct {
	wait func(ctx context.Context, dev *pinenote.Device) error
	read reader
}

var awaitTargets = map[string]awaitTarget{
	targetPerformanceModeChanged: {
		wait: func(ctx context.Context, dev *pinenote.Device) error { return dev.EBC.AwaitPerformanceModeChange(ctx) },
		read: readPerformanceMode,
	},
	targetTravelModeChanged: {
		wait: func(ctx context.Context, dev *pinenote.Device) error { return dev.Misc.AwaitTravelModeChange(ctx) },
		read: readTravelMode,
	},
	targetWaveformChanged: {
		wait: func(ctx context.Context, dev *pinenote.Device) error { return dev.EBC.AwaitWaveformChange(ctx) },
		read: readWaveform,
	},
}

func newAwaitCommand(a *app) *cobra.Command {
	var loop bool

	cmd := &cobra.Command{
		Use:   "await <target>",
		Short: "Wait for a certain event",
		Long: `Block until the given setting changes, then print its new value.

Targets:
  performance-mode-changed
  travel-mode-changed
  waveform-changed

With --loop the command keeps waiting and prints a new line for every change
until it is interrupted.`,
		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{
			targetPerformanceModeChanged,
			targetTravelModeChanged,
			targetWaveformChanged,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := awaitTargets[args[0]]
			return a.withDevice(cmd, func(ctx context.Context, dev *pinenote.Device) error {
				for {
					if err := target.wait(ctx, dev); err != nil {
						return err
					}
					if err := a.printReadings(cmd, dev, target.read); err != nil {
						return err
					}
					if !loop {
						return nil
					}
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&loop, "loop", "l", false,
		"Wait in a loop, outputting a new line at every event")
	return cmd
}
