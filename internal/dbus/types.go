package dbus

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// ServiceName is the bus name owned by the PineNote helper service.
	ServiceName = "org.pinenote.PineNoteCtl"

	// EBCPath is the display controller object path.
	EBCPath = "/ebc"
	// EBCInterface is the display controller interface name.
	EBCInterface = "org.pinenote.Ebc1"

	// MiscPath is the miscellaneous settings object path.
	MiscPath = "/misc"
	// MiscInterface is the miscellaneous settings interface name.
	MiscInterface = "org.pinenote.Misc1"
)

// Display controller members.
const (
	MethodTriggerGlobalRefresh            = "TriggerGlobalRefresh"
	MethodGetDclkSelect                   = "GetDclkSelect"
	MethodSetDclkSelect                   = "SetDclkSelect"
	MethodRequestQualityOrPerformanceMode = "RequestQualityOrPerformanceMode"
	MethodGetDefaultWaveform              = "GetDefaultWaveform"
	MethodSetDefaultWaveform              = "SetDefaultWaveform"

	SignalDclkSelectChanged = "DclkSelectChanged"
	SignalWaveformChanged   = "WaveformChanged"
)

// Miscellaneous service members.
const (
	MethodGetTravelMode     = "GetTravelMode"
	MethodEnableTravelMode  = "EnableTravelMode"
	MethodDisableTravelMode = "DisableTravelMode"

	SignalTravelModeChanged = "TravelModeChanged"
)

// ObjectPath is a D-Bus object path.
type ObjectPath = dbus.ObjectPath

// ServiceNames locates the two remote objects. The defaults match the
// PineNote helper service; they are overridable so the CLI can be pointed at
// an emulator or a renamed service.
type ServiceNames struct {
	Name          string
	EBCPath       dbus.ObjectPath
	EBCInterface  string
	MiscPath      dbus.ObjectPath
	MiscInterface string
}

// DefaultServiceNames returns the well-known PineNote names.
func DefaultServiceNames() ServiceNames {
	return ServiceNames{
		Name:          ServiceName,
		EBCPath:       EBCPath,
		EBCInterface:  EBCInterface,
		MiscPath:      MiscPath,
		MiscInterface: MiscInterface,
	}
}

// ebcMethods returns the display controller method introspection data.
func ebcMethods() []introspect.Method {
	return []introspect.Method{
		{Name: MethodTriggerGlobalRefresh},
		{
			Name: MethodGetDclkSelect,
			Args: []introspect.Arg{
				{Name: "value", Type: "y", Direction: "out"},
			},
		},
		{
			Name: MethodSetDclkSelect,
			Args: []introspect.Arg{
				{Name: "value", Type: "y", Direction: "in"},
			},
		},
		{
			Name: MethodRequestQualityOrPerformanceMode,
			Args: []introspect.Arg{
				{Name: "mode", Type: "y", Direction: "in"},
			},
		},
		{
			Name: MethodGetDefaultWaveform,
			Args: []introspect.Arg{
				{Name: "waveform", Type: "y", Direction: "out"},
			},
		},
		{
			Name: MethodSetDefaultWaveform,
			Args: []introspect.Arg{
				{Name: "waveform", Type: "y", Direction: "in"},
			},
		},
	}
}

// ebcSignals returns the display controller signal introspection data.
func ebcSignals() []introspect.Signal {
	return []introspect.Signal{
		{Name: SignalDclkSelectChanged},
		{Name: SignalWaveformChanged},
	}
}

// miscMethods returns the miscellaneous service method introspection data.
func miscMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: MethodGetTravelMode,
			Args: []introspect.Arg{
				{Name: "value", Type: "y", Direction: "out"},
			},
		},
		{Name: MethodEnableTravelMode},
		{Name: MethodDisableTravelMode},
	}
}

// miscSignals returns the miscellaneous service signal introspection data.
func miscSignals() []introspect.Signal {
	return []introspect.Signal{
		{Name: SignalTravelModeChanged},
	}
}
