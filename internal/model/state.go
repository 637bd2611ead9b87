// Package model defines the small closed value types shared by the
// proxies and the CLI: on/off states, toggle requests and waveforms.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// OnOffState is the binary value of a remote on/off property.
type OnOffState int

const (
	Off OnOffState = iota
	On
)

// ErrInvalidConversion is returned when a Toggle request is converted into a
// binary state without first reading the current value.
var ErrInvalidConversion = errors.New("attempting to convert 'toggle' into an on/off state")

// Not returns the opposite state.
func (s OnOffState) Not() OnOffState {
	if s == On {
		return Off
	}
	return On
}

// String returns "on" or "off".
func (s OnOffState) String() string {
	if s == On {
		return "on"
	}
	return "off"
}

// ToggleRequest is the tri-state value a user may ask for. Toggle is not a
// storable state; it is resolved against the current remote value.
type ToggleRequest int

const (
	RequestOff ToggleRequest = iota
	RequestOn
	RequestToggle
)

// ToggleRequestNames lists the accepted request spellings, in display order.
var ToggleRequestNames = []string{"on", "off", "toggle"}

// String returns "on", "off" or "toggle".
func (r ToggleRequest) String() string {
	switch r {
	case RequestOn:
		return "on"
	case RequestOff:
		return "off"
	case RequestToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// State converts an explicit request into a binary state.
// Toggle yields ErrInvalidConversion.
func (r ToggleRequest) State() (OnOffState, error) {
	switch r {
	case RequestOn:
		return On, nil
	case RequestOff:
		return Off, nil
	default:
		return Off, ErrInvalidConversion
	}
}

// ParseToggleRequest parses "on", "off" or "toggle" (case-insensitive).
func ParseToggleRequest(s string) (ToggleRequest, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on":
		return RequestOn, nil
	case "off":
		return RequestOff, nil
	case "toggle":
		return RequestToggle, nil
	default:
		return RequestOff, fmt.Errorf("invalid value %q (expected one of %s)", s, strings.Join(ToggleRequestNames, ", "))
	}
}
