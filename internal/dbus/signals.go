package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// signal emits iface.member on path, logging instead of failing the method
// call that triggered it.
func (e *Emulator) signal(path dbus.ObjectPath, iface, member string) {
	name := iface + "." + member
	if err := e.emit(path, name); err != nil {
		e.logger.Warn("failed to emit signal", "signal", name, "error", err)
		return
	}
	e.logger.Debug("emitted signal", "path", path, "signal", name)
}

// emitSignal is the default emitter, sending an argument-less signal.
func (e *Emulator) emitSignal(path dbus.ObjectPath, name string) error {
	if e.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}
	return e.conn.Emit(path, name)
}
