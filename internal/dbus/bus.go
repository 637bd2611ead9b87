package dbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// BusType selects which message bus to connect to.
type BusType string

const (
	BusSystem  BusType = "system"
	BusSession BusType = "session"
)

// Options controls how Open connects.
type Options struct {
	Type    BusType
	Address string // explicit bus address; overrides Type when set
}

func (o Options) label() string {
	if o.Address != "" {
		return o.Address
	}
	if o.Type == "" {
		return string(BusSystem)
	}
	return string(o.Type)
}

// Bus is the single connection a process holds to the message bus. It is
// created once at startup and handed to every proxy.
type Bus struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// Open connects to the bus described by opts. No retry is attempted; any
// failure is returned as a *TransportError.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		conn *dbus.Conn
		err  error
	)
	switch {
	case opts.Address != "":
		conn, err = dbus.Connect(opts.Address, dbus.WithContext(ctx))
	case opts.Type == BusSession:
		conn, err = dbus.ConnectSessionBus(dbus.WithContext(ctx))
	case opts.Type == BusSystem || opts.Type == "":
		conn, err = dbus.ConnectSystemBus(dbus.WithContext(ctx))
	default:
		err = fmt.Errorf("unknown bus type %q", opts.Type)
	}
	if err != nil {
		return nil, &TransportError{Bus: opts.label(), Err: err}
	}

	logger.Debug("connected to message bus", "bus", opts.label())
	return &Bus{conn: conn, logger: logger}, nil
}

// Object binds a remote object so its methods and signals can be used
// without repeating the destination, path and interface.
func (b *Bus) Object(dest string, path dbus.ObjectPath, iface string) *Object {
	return &Object{
		conn:   b.conn,
		obj:    b.conn.Object(dest, path),
		dest:   dest,
		path:   path,
		iface:  iface,
		logger: b.logger,
	}
}

// Conn returns the underlying D-Bus connection.
func (b *Bus) Conn() *dbus.Conn {
	return b.conn
}

// Close closes the connection.
func (b *Bus) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}
