package pinenote

import (
	"context"

	"github.com/jmylchreest/pinenotectl/internal/dbus"
	"github.com/jmylchreest/pinenotectl/internal/model"
)

// EBC is the display controller proxy.
type EBC struct {
	remote Remote
}

// NewEBC wraps a remote bound to the org.pinenote.Ebc1 interface.
func NewEBC(remote Remote) *EBC {
	return &EBC{remote: remote}
}

// FullRefresh triggers a global refresh of the panel.
func (e *EBC) FullRefresh(ctx context.Context) error {
	return e.remote.Invoke(ctx, dbus.MethodTriggerGlobalRefresh)
}

// PerformanceMode reads the clock select value: 1 is on, 0 is off.
func (e *EBC) PerformanceMode(ctx context.Context) (model.OnOffState, error) {
	var v byte
	if err := e.remote.Get(ctx, dbus.MethodGetDclkSelect, &v); err != nil {
		return model.Off, err
	}
	return decodeOnOff("performance mode", v)
}

// SetPerformanceMode writes the clock select value and then the companion
// quality-or-performance request: (1, 0) for on, (0, 1) for off. If the
// second write fails the first is not undone.
func (e *EBC) SetPerformanceMode(ctx context.Context, state model.OnOffState) error {
	dclk, qop := byte(0), byte(1)
	if state == model.On {
		dclk, qop = 1, 0
	}

	if err := e.remote.Invoke(ctx, dbus.MethodSetDclkSelect, dclk); err != nil {
		return err
	}
	return e.remote.Invoke(ctx, dbus.MethodRequestQualityOrPerformanceMode, qop)
}

// ChangePerformanceMode applies req. Toggle reads the current value first.
func (e *EBC) ChangePerformanceMode(ctx context.Context, req model.ToggleRequest) error {
	state, err := resolve(ctx, req, e.PerformanceMode)
	if err != nil {
		return err
	}
	return e.SetPerformanceMode(ctx, state)
}

// AwaitPerformanceModeChange blocks until the clock select value changes.
// The new value is not read.
func (e *EBC) AwaitPerformanceModeChange(ctx context.Context) error {
	return e.remote.AwaitSignal(ctx, dbus.SignalDclkSelectChanged)
}

// Waveform reads the default waveform.
func (e *EBC) Waveform(ctx context.Context) (model.Waveform, error) {
	var code byte
	if err := e.remote.Get(ctx, dbus.MethodGetDefaultWaveform, &code); err != nil {
		return 0, err
	}
	return model.WaveformFromCode(code)
}

// SetWaveform writes the default waveform.
func (e *EBC) SetWaveform(ctx context.Context, w model.Waveform) error {
	return e.remote.Invoke(ctx, dbus.MethodSetDefaultWaveform, w.Code())
}

// AwaitWaveformChange blocks until the default waveform changes.
func (e *EBC) AwaitWaveformChange(ctx context.Context) error {
	return e.remote.AwaitSignal(ctx, dbus.SignalWaveformChanged)
}
