package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pinenotectl/internal/model"
	"github.com/jmylchreest/pinenotectl/internal/pinenote"
)

func newPerformanceModeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "performance-mode [" + strings.Join(model.ToggleRequestNames, "|") + "]",
		Short: "Manage eink panel performance mode",
		Long: `Manage eink panel performance mode.

Performance mode brings faster refreshes, but may be prone to fragments
and a lower image quality overall.

Without an argument the current setting is printed. With on, off or toggle
the setting is changed first and then read back.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: model.ToggleRequestNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, ok, err := toggleArg(args)
			if err != nil {
				return err
			}
			return a.withDevice(cmd, func(ctx context.Context, dev *pinenote.Device) error {
				if ok {
					if err := dev.EBC.ChangePerformanceMode(ctx, req); err != nil {
						return err
					}
				}
				return a.printReadings(cmd, dev, readPerformanceMode)
			})
		},
	}
}

func newTravelModeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "travel-mode [" + strings.Join(model.ToggleRequestNames, "|") + "]",
		Short: "Manage travel mode (disables lid wakeup)",
		Long: `Manage travel mode. While travel mode is on, opening the lid does not
wake the device.

Without an argument the current setting is printed. With on, off or toggle
the setting is changed first and then read back.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: model.ToggleRequestNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, ok, err := toggleArg(args)
			if err != nil {
				return err
			}
			return a.withDevice(cmd, func(ctx context.Context, dev *pinenote.Device) error {
				if ok {
					if err := dev.Misc.ChangeTravelMode(ctx, req); err != nil {
						return err
					}
				}
				return a.printReadings(cmd, dev, readTravelMode)
			})
		},
	}
}

func newWaveformCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "waveform [" + strings.Join(model.WaveformNames(), "|") + "]",
		Short: "Manage eink panel waveform",
		Long: `Manage the default waveform used by the eink panel.

Without an argument the current waveform is printed. With a waveform name the
default is changed first and then read back.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: model.WaveformNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				wf  model.Waveform
				set bool
			)
			if len(args) == 1 {
				var err error
				if wf, err = model.ParseWaveform(args[0]); err != nil {
					return err
				}
				set = true
			}
			return a.withDevice(cmd, func(ctx context.Context, dev *pinenote.Device) error {
				if set {
					if err := dev.EBC.SetWaveform(ctx, wf); err != nil {
						return err
					}
				}
				return a.printReadings(cmd, dev, readWaveform)
			})
		},
	}
}

// toggleArg parses the optional on/off/toggle argument.
func toggleArg(args []string) (model.ToggleRequest, bool, error) {
	if len(args) == 0 {
		return model.RequestOff, false, nil
	}
	req, err := model.ParseToggleRequest(args[0])
	if err != nil {
		return model.RequestOff, false, err
	}
	return req, true, nil
}
