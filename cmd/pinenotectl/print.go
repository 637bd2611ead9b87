package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pinenotectl/internal/adapter/output"
	"github.com/jmylchreest/pinenotectl/internal/model"
	"github.com/jmylchreest/pinenotectl/internal/pinenote"
)

// reader reads one property from the device.
type reader func(ctx context.Context, dev *pinenote.Device) (output.Property, error)

func readPerformanceMode(ctx context.Context, dev *pinenote.Device) (output.Property, error) {
	s, err := dev.EBC.PerformanceMode(ctx)
	if err != nil {
		return output.Property{}, err
	}
	return output.Property{Name: model.PropertyPerformanceMode, Value: s.String()}, nil
}

func readTravelMode(ctx context.Context, dev *pinenote.Device) (output.Property, error) {
	s, err := dev.Misc.TravelMode(ctx)
	if err != nil {
		return output.Property{}, err
	}
	return output.Property{Name: model.PropertyTravelMode, Value: s.String()}, nil
}

func readWaveform(ctx context.Context, dev *pinenote.Device) (output.Property, error) {
	w, err := dev.EBC.Waveform(ctx)
	if err != nil {
		return output.Property{}, err
	}
	return output.Property{Name: model.PropertyWaveform, Value: w.String()}, nil
}

// printReadings reads each property in order and prints them. Plain output
// is written line by line as each read completes; structured formats are
// written once all reads have succeeded.
func (a *app) printReadings(cmd *cobra.Command, dev *pinenote.Device, readers ...reader) error {
	formatter, err := output.NewFormatter(output.FormatType(a.cfg.Output.Format))
	if err != nil {
		return err
	}
	streaming := output.FormatType(a.cfg.Output.Format) == output.FormatPlain

	var props []output.Property
	for _, read := range readers {
		p, err := read(cmd.Context(), dev)
		if err != nil {
			return err
		}
		if streaming {
			if err := formatter.Format(cmd.OutOrStdout(), []output.Property{p}); err != nil {
				return err
			}
			continue
		}
		props = append(props, p)
	}

	if streaming {
		return nil
	}
	return formatter.Format(cmd.OutOrStdout(), props)
}
