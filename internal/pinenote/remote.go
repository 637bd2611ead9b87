package pinenote

import "context"

// Remote is a remote object bound to one interface.
// *dbus.Object from internal/dbus is the production implementation.
type Remote interface {
	// Invoke calls method with args, discarding any reply.
	Invoke(ctx context.Context, method string, args ...any) error
	// Get calls a method without arguments and stores its single reply in out.
	Get(ctx context.Context, method string, out any) error
	// AwaitSignal blocks until one instance of the named signal arrives.
	AwaitSignal(ctx context.Context, member string) error
}
