package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pinenotectl/internal/pinenote"
	"github.com/jmylchreest/pinenotectl/internal/tui"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive settings panel",
		Long: `Launch a terminal panel showing performance mode, travel mode and the
default waveform. Values are re-read whenever the service reports a change.

Key bindings:
  j/k, ↑/↓    Select setting
  enter       Toggle the selected setting
  h/l, ←/→    Previous/next waveform
  f           Full refresh of the screen
  r           Re-read all settings
  ?           Show help
  q           Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDevice(cmd, func(ctx context.Context, dev *pinenote.Device) error {
				return tui.Run(ctx, dev)
			})
		},
	}
}
