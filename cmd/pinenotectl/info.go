package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pinenotectl/internal/pinenote"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print information on all available parameters",
		Long: `Print travel mode, waveform and performance mode, in that order.

  $ pinenotectl info
  travel-mode: off
  waveform: gc16
  performance-mode: off`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDevice(cmd, func(ctx context.Context, dev *pinenote.Device) error {
				return a.printReadings(cmd, dev, readTravelMode, readWaveform, readPerformanceMode)
			})
		},
	}
}

func newFullRefreshCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "full-refresh",
		Short: "Do a full refresh of the eink screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDevice(cmd, func(ctx context.Context, dev *pinenote.Device) error {
				return dev.EBC.FullRefresh(ctx)
			})
		},
	}
}
