package model

import "fmt"

// DecodeError reports a value received from a remote service that does not
// map onto any known variant.
type DecodeError struct {
	Property string // human name, e.g. "performance mode"
	Value    int64  // raw value as received
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Unable to parse %s '%d'", e.Property, e.Value)
}
