// Package pinenotetest provides a scripted in-memory Remote for tests of
// code built on the pinenote proxies.
package pinenotetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoSignals is returned by AwaitSignal once the scripted signals are used up.
var ErrNoSignals = errors.New("no more scripted signals")

// CallKind distinguishes the three Remote operations.
type CallKind string

const (
	KindInvoke CallKind = "invoke"
	KindGet    CallKind = "get"
	KindAwait  CallKind = "await"
)

// Call is one recorded operation.
type Call struct {
	Kind   CallKind
	Method string
	Args   []any
}

// Signal is a scripted signal. Set is applied to the remote's values when
// the signal is consumed, modelling the change that caused it.
type Signal struct {
	Member string
	Set    map[string]byte
}

// Remote records every call and answers Get from Values.
type Remote struct {
	mu      sync.Mutex
	values  map[string]byte
	errs    map[string]error
	signals []Signal
	calls   []Call

	// OnInvoke, if set, runs for every Invoke after it is recorded and may
	// update values, as a real service would.
	OnInvoke func(r *Remote, method string, args []any)
}

// NewRemote returns a Remote answering Get calls from values.
func NewRemote(values map[string]byte) *Remote {
	v := make(map[string]byte, len(values))
	for k, b := range values {
		v[k] = b
	}
	return &Remote{values: v, errs: make(map[string]error)}
}

// SetValue sets the reply for a Get of method.
func (r *Remote) SetValue(method string, v byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[method] = v
}

// Value returns the current reply for method.
func (r *Remote) Value(method string) byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[method]
}

// FailOn makes every call of method return err.
func (r *Remote) FailOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[method] = err
}

// QueueSignals scripts the signals AwaitSignal will deliver, in order.
func (r *Remote) QueueSignals(signals ...Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, signals...)
}

// Calls returns a copy of the recorded calls.
func (r *Remote) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsOf returns the recorded calls of the given kind.
func (r *Remote) CallsOf(kind CallKind) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets the recorded calls.
func (r *Remote) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Remote) Invoke(ctx context.Context, method string, args ...any) error {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Kind: KindInvoke, Method: method, Args: args})
	err := r.errs[method]
	hook := r.OnInvoke
	r.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		hook(r, method, args)
	}
	return nil
}

func (r *Remote) Get(ctx context.Context, method string, out any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Kind: KindGet, Method: method})
	if err := r.errs[method]; err != nil {
		return err
	}
	v, ok := r.values[method]
	if !ok {
		return fmt.Errorf("no scripted value for %s", method)
	}
	p, ok := out.(*byte)
	if !ok {
		return fmt.Errorf("unsupported reply type %T for %s", out, method)
	}
	*p = v
	return nil
}

func (r *Remote) AwaitSignal(ctx context.Context, member string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Kind: KindAwait, Method: member})
	if err := r.errs[member]; err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, s := range r.signals {
		if s.Member != member {
			continue
		}
		r.signals = append(r.signals[:i], r.signals[i+1:]...)
		for k, v := range s.Set {
			r.values[k] = v
		}
		return nil
	}
	return ErrNoSignals
}
