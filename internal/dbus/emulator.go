package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/pinenotectl/internal/model"
)

const errInvalidArgs = "org.freedesktop.DBus.Error.InvalidArgs"

// EmulatorState is a snapshot of the emulated hardware settings.
type EmulatorState struct {
	DclkSelect           byte
	QualityOrPerformance byte
	Waveform             byte
	TravelMode           byte
	Refreshes            int
}

// Emulator exports the display controller and miscellaneous interfaces with
// in-memory state. Every write emits the matching change signal.
type Emulator struct {
	conn   *dbus.Conn
	bus    *Bus
	logger *slog.Logger
	names  ServiceNames

	// emit sends a signal; replaced in tests.
	emit func(path dbus.ObjectPath, name string) error

	mu      sync.Mutex
	state   EmulatorState
	running bool
}

// NewEmulator creates an Emulator with the default service names and a
// quality-mode, GC16, travel-mode-off starting state.
func NewEmulator(logger *slog.Logger) *Emulator {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Emulator{
		logger: logger,
		names:  DefaultServiceNames(),
		state: EmulatorState{
			DclkSelect:           0,
			QualityOrPerformance: 1,
			Waveform:             model.WaveformGC16.Code(),
			TravelMode:           0,
		},
	}
	e.emit = e.emitSignal
	return e
}

// SetNames overrides the exported service names. Must be called before Start.
func (e *Emulator) SetNames(names ServiceNames) {
	e.names = names
}

// State returns a copy of the current emulated state.
func (e *Emulator) State() EmulatorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Start connects to the bus, exports both objects and claims the service name.
func (e *Emulator) Start(ctx context.Context, opts Options) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("emulator already running")
	}
	e.mu.Unlock()

	bus, err := Open(ctx, opts, e.logger)
	if err != nil {
		return err
	}
	e.bus = bus
	e.conn = bus.Conn()

	if err := e.export(e.names.EBCPath, e.names.EBCInterface, &ebcObject{e: e}, ebcMethods(), ebcSignals()); err != nil {
		bus.Close()
		return err
	}
	if err := e.export(e.names.MiscPath, e.names.MiscInterface, &miscObject{e: e}, miscMethods(), miscSignals()); err != nil {
		bus.Close()
		return err
	}

	reply, err := e.conn.RequestName(e.names.Name, dbus.NameFlagDoNotQueue)
	if err != nil {
		bus.Close()
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		bus.Close()
		return fmt.Errorf("bus name %s already taken", e.names.Name)
	}

	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.logger.Info("emulator started", "name", e.names.Name, "bus", opts.label())
	return nil
}

func (e *Emulator) export(path dbus.ObjectPath, iface string, v any, methods []introspect.Method, signals []introspect.Signal) error {
	if err := e.conn.Export(v, path, iface); err != nil {
		return fmt.Errorf("failed to export %s: %w", path, err)
	}

	node := &introspect.Node{
		Name: string(path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    iface,
				Methods: methods,
				Signals: signals,
			},
		},
	}
	if err := e.conn.Export(introspect.NewIntrospectable(node), path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable for %s: %w", path, err)
	}
	return nil
}

// Stop releases the bus name and closes the connection.
func (e *Emulator) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}
	e.running = false

	if _, err := e.conn.ReleaseName(e.names.Name); err != nil {
		e.logger.Warn("failed to release bus name", "error", err)
	}

	e.logger.Info("emulator stopped")
	return e.bus.Close()
}

// ebcObject carries the exported org.pinenote.Ebc1 methods.
type ebcObject struct {
	e *Emulator
}

// TriggerGlobalRefresh records a full refresh.
// D-Bus method: TriggerGlobalRefresh()
func (o *ebcObject) TriggerGlobalRefresh() *dbus.Error {
	o.e.mu.Lock()
	o.e.state.Refreshes++
	n := o.e.state.Refreshes
	o.e.mu.Unlock()

	o.e.logger.Debug("TriggerGlobalRefresh called", "count", n)
	return nil
}

// GetDclkSelect returns the clock select value.
// D-Bus method: GetDclkSelect() -> y
func (o *ebcObject) GetDclkSelect() (byte, *dbus.Error) {
	o.e.mu.Lock()
	defer o.e.mu.Unlock()
	return o.e.state.DclkSelect, nil
}

// SetDclkSelect sets the clock select value (0 or 1).
// D-Bus method: SetDclkSelect(y)
func (o *ebcObject) SetDclkSelect(value byte) *dbus.Error {
	if value > 1 {
		return dbus.NewError(errInvalidArgs, []any{fmt.Sprintf("invalid dclk select value %d", value)})
	}

	o.e.mu.Lock()
	o.e.state.DclkSelect = value
	o.e.mu.Unlock()

	o.e.logger.Debug("SetDclkSelect called", "value", value)
	o.e.signal(o.e.names.EBCPath, o.e.names.EBCInterface, SignalDclkSelectChanged)
	return nil
}

// RequestQualityOrPerformanceMode records the companion request written
// alongside the clock select value.
// D-Bus method: RequestQualityOrPerformanceMode(y)
func (o *ebcObject) RequestQualityOrPerformanceMode(mode byte) *dbus.Error {
	if mode > 1 {
		return dbus.NewError(errInvalidArgs, []any{fmt.Sprintf("invalid quality or performance mode %d", mode)})
	}

	o.e.mu.Lock()
	o.e.state.QualityOrPerformance = mode
	o.e.mu.Unlock()

	o.e.logger.Debug("RequestQualityOrPerformanceMode called", "mode", mode)
	return nil
}

// GetDefaultWaveform returns the default waveform code.
// D-Bus method: GetDefaultWaveform() -> y
func (o *ebcObject) GetDefaultWaveform() (byte, *dbus.Error) {
	o.e.mu.Lock()
	defer o.e.mu.Unlock()
	return o.e.state.Waveform, nil
}

// SetDefaultWaveform sets the default waveform code (1-8).
// D-Bus method: SetDefaultWaveform(y)
func (o *ebcObject) SetDefaultWaveform(code byte) *dbus.Error {
	if _, err := model.WaveformFromCode(code); err != nil {
		return dbus.NewError(errInvalidArgs, []any{err.Error()})
	}

	o.e.mu.Lock()
	o.e.state.Waveform = code
	o.e.mu.Unlock()

	o.e.logger.Debug("SetDefaultWaveform called", "waveform", code)
	o.e.signal(o.e.names.EBCPath, o.e.names.EBCInterface, SignalWaveformChanged)
	return nil
}

// miscObject carries the exported org.pinenote.Misc1 methods.
type miscObject struct {
	e *Emulator
}

// GetTravelMode returns 1 when travel mode is enabled, 0 otherwise.
// D-Bus method: GetTravelMode() -> y
func (o *miscObject) GetTravelMode() (byte, *dbus.Error) {
	o.e.mu.Lock()
	defer o.e.mu.Unlock()
	return o.e.state.TravelMode, nil
}

// EnableTravelMode turns travel mode on.
// D-Bus method: EnableTravelMode()
func (o *miscObject) EnableTravelMode() *dbus.Error {
	o.setTravelMode(1)
	return nil
}

// DisableTravelMode turns travel mode off.
// D-Bus method: DisableTravelMode()
func (o *miscObject) DisableTravelMode() *dbus.Error {
	o.setTravelMode(0)
	return nil
}

func (o *miscObject) setTravelMode(value byte) {
	o.e.mu.Lock()
	o.e.state.TravelMode = value
	o.e.mu.Unlock()

	o.e.logger.Debug("travel mode changed", "value", value)
	o.e.signal(o.e.names.MiscPath, o.e.names.MiscInterface, SignalTravelModeChanged)
}
