package dbus

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsLabel(t *testing.T) {
	assert.Equal(t, "system", Options{}.label())
	assert.Equal(t, "session", Options{Type: BusSession}.label())
	assert.Equal(t, "unix:path=/tmp/bus", Options{Type: BusSession, Address: "unix:path=/tmp/bus"}.label())
}

func TestOpen_UnknownBusType(t *testing.T) {
	_, err := Open(context.Background(), Options{Type: "bogus"}, nil)
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "bogus", transportErr.Bus)
	assert.Contains(t, err.Error(), "failed to connect to bogus bus")
}

func TestOpen_UnreachableAddress(t *testing.T) {
	_, err := Open(context.Background(), Options{Address: "unix:path=" + t.TempDir() + "/missing"}, nil)
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestRemoteCallError_Verbatim(t *testing.T) {
	remote := dbus.NewError("org.freedesktop.DBus.Error.ServiceUnknown", []any{"The name org.pinenote.PineNoteCtl was not provided by any .service files"})
	err := &RemoteCallError{Method: EBCInterface + "." + MethodGetDclkSelect, Err: remote}

	assert.Equal(t, "The name org.pinenote.PineNoteCtl was not provided by any .service files", err.Error())

	var unwrapped *dbus.Error
	assert.True(t, errors.As(err, &unwrapped))
}

func TestDefaultServiceNames(t *testing.T) {
	names := DefaultServiceNames()
	assert.Equal(t, "org.pinenote.PineNoteCtl", names.Name)
	assert.Equal(t, dbus.ObjectPath("/ebc"), names.EBCPath)
	assert.Equal(t, "org.pinenote.Ebc1", names.EBCInterface)
	assert.Equal(t, dbus.ObjectPath("/misc"), names.MiscPath)
	assert.Equal(t, "org.pinenote.Misc1", names.MiscInterface)
}
