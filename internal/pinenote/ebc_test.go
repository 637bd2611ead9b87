package pinenote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pinenotectl/internal/dbus"
	"github.com/jmylchreest/pinenotectl/internal/model"
	"github.com/jmylchreest/pinenotectl/internal/pinenote/pinenotetest"
)

func newTestEBC(values map[string]byte) (*EBC, *pinenotetest.Remote) {
	remote := pinenotetest.NewRemote(values)
	return NewEBC(remote), remote
}

func TestEBC_FullRefresh(t *testing.T) {
	ebc, remote := newTestEBC(nil)

	require.NoError(t, ebc.FullRefresh(context.Background()))
	assert.Equal(t, []pinenotetest.Call{
		{Kind: pinenotetest.KindInvoke, Method: dbus.MethodTriggerGlobalRefresh},
	}, remote.Calls())
}

func TestEBC_FullRefresh_Error(t *testing.T) {
	ebc, remote := newTestEBC(nil)
	remote.FailOn(dbus.MethodTriggerGlobalRefresh, errors.New("refresh failed"))

	assert.EqualError(t, ebc.FullRefresh(context.Background()), "refresh failed")
}

func TestEBC_PerformanceMode(t *testing.T) {
	tests := []struct {
		name    string
		raw     byte
		want    model.OnOffState
		wantErr string
	}{
		{name: "on", raw: 1, want: model.On},
		{name: "off", raw: 0, want: model.Off},
		{name: "unexpected", raw: 7, wantErr: "Unable to parse performance mode '7'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ebc, _ := newTestEBC(map[string]byte{dbus.MethodGetDclkSelect: tt.raw})

			got, err := ebc.PerformanceMode(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())

				var decodeErr *model.DecodeError
				assert.True(t, errors.As(err, &decodeErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEBC_SetPerformanceMode(t *testing.T) {
	tests := []struct {
		state model.OnOffState
		dclk  byte
		qop   byte
	}{
		{model.On, 1, 0},
		{model.Off, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			ebc, remote := newTestEBC(nil)

			require.NoError(t, ebc.SetPerformanceMode(context.Background(), tt.state))
			assert.Equal(t, []pinenotetest.Call{
				{Kind: pinenotetest.KindInvoke, Method: dbus.MethodSetDclkSelect, Args: []any{tt.dclk}},
				{Kind: pinenotetest.KindInvoke, Method: dbus.MethodRequestQualityOrPerformanceMode, Args: []any{tt.qop}},
			}, remote.Calls())
		})
	}
}

func TestEBC_SetPerformanceMode_SecondWriteFails(t *testing.T) {
	ebc, remote := newTestEBC(nil)
	remote.FailOn(dbus.MethodRequestQualityOrPerformanceMode, errors.New("denied"))

	err := ebc.SetPerformanceMode(context.Background(), model.On)
	require.EqualError(t, err, "denied")

	// The first write stays applied; nothing tries to undo it.
	calls := remote.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, dbus.MethodSetDclkSelect, calls[0].Method)
	assert.Equal(t, dbus.MethodRequestQualityOrPerformanceMode, calls[1].Method)
}

func TestEBC_SetPerformanceMode_FirstWriteFails(t *testing.T) {
	ebc, remote := newTestEBC(nil)
	remote.FailOn(dbus.MethodSetDclkSelect, errors.New("denied"))

	require.Error(t, ebc.SetPerformanceMode(context.Background(), model.Off))
	assert.Len(t, remote.Calls(), 1)
}

func TestEBC_ChangePerformanceMode_Toggle(t *testing.T) {
	for _, current := range []byte{0, 1} {
		ebc, remote := newTestEBC(map[string]byte{dbus.MethodGetDclkSelect: current})

		require.NoError(t, ebc.ChangePerformanceMode(context.Background(), model.RequestToggle))

		calls := remote.Calls()
		require.Len(t, calls, 3)
		assert.Equal(t, pinenotetest.Call{Kind: pinenotetest.KindGet, Method: dbus.MethodGetDclkSelect}, calls[0])
		assert.Equal(t, []any{1 - current}, calls[1].Args, "toggled clock select")
		assert.Equal(t, []any{current}, calls[2].Args, "toggled quality-or-performance request")
	}
}

func TestEBC_ChangePerformanceMode_Explicit(t *testing.T) {
	for _, req := range []model.ToggleRequest{model.RequestOn, model.RequestOff} {
		ebc, remote := newTestEBC(nil)

		require.NoError(t, ebc.ChangePerformanceMode(context.Background(), req))
		assert.Empty(t, remote.CallsOf(pinenotetest.KindGet), "explicit %s must not read", req)
		assert.Len(t, remote.CallsOf(pinenotetest.KindInvoke), 2)
	}
}

func TestEBC_ChangePerformanceMode_ToggleReadFails(t *testing.T) {
	ebc, remote := newTestEBC(map[string]byte{dbus.MethodGetDclkSelect: 3})

	err := ebc.ChangePerformanceMode(context.Background(), model.RequestToggle)
	require.Error(t, err)
	assert.Empty(t, remote.CallsOf(pinenotetest.KindInvoke))
}

func TestEBC_Waveform(t *testing.T) {
	ebc, remote := newTestEBC(map[string]byte{dbus.MethodGetDefaultWaveform: 4})

	w, err := ebc.Waveform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.WaveformGC16, w)

	remote.SetValue(dbus.MethodGetDefaultWaveform, 0)
	_, err = ebc.Waveform(context.Background())
	assert.EqualError(t, err, "Unable to parse waveform '0'")
}

func TestEBC_SetWaveform(t *testing.T) {
	ebc, remote := newTestEBC(nil)

	require.NoError(t, ebc.SetWaveform(context.Background(), model.WaveformGLR16))
	assert.Equal(t, []pinenotetest.Call{
		{Kind: pinenotetest.KindInvoke, Method: dbus.MethodSetDefaultWaveform, Args: []any{byte(7)}},
	}, remote.Calls())
}

func TestEBC_Await(t *testing.T) {
	ebc, remote := newTestEBC(nil)
	remote.QueueSignals(
		pinenotetest.Signal{Member: dbus.SignalWaveformChanged},
		pinenotetest.Signal{Member: dbus.SignalDclkSelectChanged},
	)

	require.NoError(t, ebc.AwaitPerformanceModeChange(context.Background()))
	require.NoError(t, ebc.AwaitWaveformChange(context.Background()))

	// Waiting never re-reads the value.
	assert.Empty(t, remote.CallsOf(pinenotetest.KindGet))
	assert.ErrorIs(t, ebc.AwaitWaveformChange(context.Background()), pinenotetest.ErrNoSignals)
}
