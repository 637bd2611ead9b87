package pinenote

import (
	"context"

	"github.com/jmylchreest/pinenotectl/internal/dbus"
	"github.com/jmylchreest/pinenotectl/internal/model"
)

// Misc is the miscellaneous settings proxy.
type Misc struct {
	remote Remote
}

// NewMisc wraps a remote bound to the org.pinenote.Misc1 interface.
func NewMisc(remote Remote) *Misc {
	return &Misc{remote: remote}
}

// TravelMode reads travel mode: 1 is on, 0 is off.
func (m *Misc) TravelMode(ctx context.Context) (model.OnOffState, error) {
	var v byte
	if err := m.remote.Get(ctx, dbus.MethodGetTravelMode, &v); err != nil {
		return model.Off, err
	}
	return decodeOnOff("travel mode", v)
}

// SetTravelMode enables or disables travel mode with a single call.
func (m *Misc) SetTravelMode(ctx context.Context, state model.OnOffState) error {
	if state == model.On {
		return m.remote.Invoke(ctx, dbus.MethodEnableTravelMode)
	}
	return m.remote.Invoke(ctx, dbus.MethodDisableTravelMode)
}

// ChangeTravelMode applies req. Toggle reads the current value first.
func (m *Misc) ChangeTravelMode(ctx context.Context, req model.ToggleRequest) error {
	state, err := resolve(ctx, req, m.TravelMode)
	if err != nil {
		return err
	}
	return m.SetTravelMode(ctx, state)
}

// AwaitTravelModeChange blocks until travel mode changes.
func (m *Misc) AwaitTravelModeChange(ctx context.Context) error {
	return m.remote.AwaitSignal(ctx, dbus.SignalTravelModeChanged)
}
