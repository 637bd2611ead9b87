package dbus

import "fmt"

// TransportError reports that the bus itself could not be reached or
// authenticated against.
type TransportError struct {
	Bus string // "system", "session" or the explicit address
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to connect to %s bus: %v", e.Bus, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteCallError reports a failed method call or signal subscription on a
// remote service. The message is the remote error, unchanged.
type RemoteCallError struct {
	Method string // fully qualified member, e.g. org.pinenote.Ebc1.GetDclkSelect
	Err    error
}

func (e *RemoteCallError) Error() string {
	return e.Err.Error()
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
