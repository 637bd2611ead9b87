package pinenote

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/pinenotectl/internal/dbus"
)

// Device bundles the two proxies that make up the PineNote's controllable
// surface. Both share one bus connection.
type Device struct {
	EBC  *EBC
	Misc *Misc

	bus *dbus.Bus
}

// NewDevice builds a Device from already bound remotes.
func NewDevice(ebc, misc Remote) *Device {
	return &Device{
		EBC:  NewEBC(ebc),
		Misc: NewMisc(misc),
	}
}

// Open connects to the bus and binds both proxies to the named services.
func Open(ctx context.Context, opts dbus.Options, names dbus.ServiceNames, logger *slog.Logger) (*Device, error) {
	bus, err := dbus.Open(ctx, opts, logger)
	if err != nil {
		return nil, err
	}

	d := NewDevice(
		bus.Object(names.Name, names.EBCPath, names.EBCInterface),
		bus.Object(names.Name, names.MiscPath, names.MiscInterface),
	)
	d.bus = bus
	return d, nil
}

// Close releases the bus connection, if the Device owns one.
func (d *Device) Close() error {
	if d.bus == nil {
		return nil
	}
	return d.bus.Close()
}
