package model

// Names under which properties are printed.
const (
	PropertyPerformanceMode = "performance-mode"
	PropertyTravelMode      = "travel-mode"
	PropertyWaveform        = "waveform"
)
