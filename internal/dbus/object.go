package dbus

import (
	"context"
	"errors"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// Object is a remote object bound to one interface.
type Object struct {
	conn   *dbus.Conn
	obj    dbus.BusObject
	dest   string
	path   dbus.ObjectPath
	iface  string
	logger *slog.Logger
}

func (o *Object) member(name string) string {
	return o.iface + "." + name
}

// Invoke calls method with args and discards any reply values.
func (o *Object) Invoke(ctx context.Context, method string, args ...any) error {
	name := o.member(method)
	o.logger.Debug("calling remote method", "dest", o.dest, "path", o.path, "method", name, "args", args)

	if err := o.obj.CallWithContext(ctx, name, 0, args...).Err; err != nil {
		return &RemoteCallError{Method: name, Err: err}
	}
	return nil
}

// Get calls a method that takes no arguments and stores its single reply
// value in out.
func (o *Object) Get(ctx context.Context, method string, out any) error {
	name := o.member(method)
	o.logger.Debug("calling remote method", "dest", o.dest, "path", o.path, "method", name)

	if err := o.obj.CallWithContext(ctx, name, 0).Store(out); err != nil {
		return &RemoteCallError{Method: name, Err: err}
	}
	return nil
}

// AwaitSignal subscribes to member on the bound object, blocks until exactly
// one matching signal arrives, then unsubscribes. Only signals sent by the
// owner of the destination name are delivered. It does not time out; only
// ctx ends the wait early.
func (o *Object) AwaitSignal(ctx context.Context, member string) error {
	name := o.member(member)
	match := []dbus.MatchOption{
		dbus.WithMatchSender(o.dest),
		dbus.WithMatchObjectPath(o.path),
		dbus.WithMatchInterface(o.iface),
		dbus.WithMatchMember(member),
	}

	// The channel is registered before the match rule so no signal routed
	// in between is lost.
	ch := make(chan *dbus.Signal, 8)
	o.conn.Signal(ch)
	defer o.conn.RemoveSignal(ch)

	if err := o.conn.AddMatchSignalContext(ctx, match...); err != nil {
		return &RemoteCallError{Method: name, Err: err}
	}
	defer func() {
		if err := o.conn.RemoveMatchSignal(match...); err != nil {
			o.logger.Debug("failed to remove match rule", "signal", name, "error", err)
		}
	}()

	o.logger.Debug("waiting for signal", "path", o.path, "signal", name)
	for {
		select {
		case sig, ok := <-ch:
			if !ok {
				return &RemoteCallError{Method: name, Err: errors.New("connection closed while waiting for signal")}
			}
			if sig.Path != o.path || sig.Name != name {
				continue
			}
			o.logger.Debug("received signal", "path", sig.Path, "signal", sig.Name, "sender", sig.Sender)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
