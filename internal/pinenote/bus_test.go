package pinenote

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
	"time"

	godbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pinenotectl/internal/dbus"
	"github.com/jmylchreest/pinenotectl/internal/model"
)

// startBus runs a private session bus for the duration of the test and
// returns its address.
func startBus(t *testing.T) string {
	t.Helper()

	path, err := exec.LookPath("dbus-daemon")
	if err != nil {
		t.Skip("dbus-daemon not installed")
	}

	cmd := exec.Command(path, "--session", "--nofork", "--print-address")
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	line, err := bufio.NewReader(stdout).ReadString('\n')
	require.NoError(t, err)
	addr := strings.TrimSpace(line)
	require.NotEmpty(t, addr)
	return addr
}

type busFixture struct {
	addr string
	emu  *dbus.Emulator
	dev  *Device
}

func newBusFixture(t *testing.T) *busFixture {
	t.Helper()

	addr := startBus(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := dbus.Options{Address: addr}

	emu := dbus.NewEmulator(logger)
	require.NoError(t, emu.Start(context.Background(), opts))
	t.Cleanup(func() { _ = emu.Stop() })

	dev, err := Open(context.Background(), opts, dbus.DefaultServiceNames(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dev.Close() })

	return &busFixture{addr: addr, emu: emu, dev: dev}
}

// writeUntilDone repeats write until the await running in done returns. The
// await registers its match rule asynchronously, so a single write could be
// sent before it is listening.
func writeUntilDone(t *testing.T, done <-chan error, write func() error) error {
	t.Helper()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)

	for {
		select {
		case err := <-done:
			return err
		case <-ticker.C:
			require.NoError(t, write())
		case <-timeout:
			t.Fatal("await did not return")
			return nil
		}
	}
}

func TestBus_ReadsAndWrites(t *testing.T) {
	f := newBusFixture(t)
	ctx := context.Background()

	require.NoError(t, f.dev.EBC.ChangePerformanceMode(ctx, model.RequestToggle))
	state, err := f.dev.EBC.PerformanceMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.On, state)
	assert.Equal(t, byte(0), f.emu.State().QualityOrPerformance)

	require.NoError(t, f.dev.EBC.SetWaveform(ctx, model.WaveformGLR16))
	wf, err := f.dev.EBC.Waveform(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.WaveformGLR16, wf)

	require.NoError(t, f.dev.Misc.ChangeTravelMode(ctx, model.RequestOn))
	travel, err := f.dev.Misc.TravelMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.On, travel)

	require.NoError(t, f.dev.EBC.FullRefresh(ctx))
	assert.Equal(t, 1, f.emu.State().Refreshes)
}

func TestBus_RemoteErrorVerbatim(t *testing.T) {
	f := newBusFixture(t)

	err := f.dev.EBC.SetWaveform(context.Background(), model.Waveform(12))
	require.Error(t, err)

	var callErr *dbus.RemoteCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, "Unable to parse waveform '12'", err.Error())
}

func TestBus_AwaitConsumesOneSignal(t *testing.T) {
	f := newBusFixture(t)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- f.dev.EBC.AwaitWaveformChange(ctx) }()
	require.NoError(t, writeUntilDone(t, done, func() error {
		return f.dev.EBC.SetWaveform(ctx, model.WaveformA2)
	}))

	// Signals emitted while nobody waits are not queued for the next await.
	// The pause lets signals from the repeated writes above drain first.
	time.Sleep(100 * time.Millisecond)
	short, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.dev.EBC.AwaitWaveformChange(short), context.DeadlineExceeded)

	go func() { done <- f.dev.EBC.AwaitWaveformChange(ctx) }()
	require.NoError(t, writeUntilDone(t, done, func() error {
		return f.dev.EBC.SetWaveform(ctx, model.WaveformDU)
	}))
}

func TestBus_AwaitIgnoresOtherMembers(t *testing.T) {
	f := newBusFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- f.dev.EBC.AwaitPerformanceModeChange(ctx) }()

	// WaveformChanged arrives on the same object but must not wake the wait.
	for ctx.Err() == nil {
		require.NoError(t, f.dev.EBC.SetWaveform(context.Background(), model.WaveformGC16))
		time.Sleep(20 * time.Millisecond)
	}
	assert.ErrorIs(t, <-done, context.DeadlineExceeded)
}

func TestBus_AwaitIgnoresOtherSenders(t *testing.T) {
	f := newBusFixture(t)

	other, err := godbus.Connect(f.addr)
	require.NoError(t, err)
	defer other.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- f.dev.Misc.AwaitTravelModeChange(ctx) }()

	for ctx.Err() == nil {
		require.NoError(t, other.Emit(dbus.MiscPath, dbus.MiscInterface+"."+dbus.SignalTravelModeChanged))
		time.Sleep(20 * time.Millisecond)
	}
	assert.ErrorIs(t, <-done, context.DeadlineExceeded)
}

func TestBus_AwaitConnectionClosed(t *testing.T) {
	f := newBusFixture(t)

	done := make(chan error, 1)
	go func() { done <- f.dev.Misc.AwaitTravelModeChange(context.Background()) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, f.dev.Close())

	select {
	case err := <-done:
		var callErr *dbus.RemoteCallError
		assert.True(t, errors.As(err, &callErr), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("await did not return after the connection closed")
	}
}
