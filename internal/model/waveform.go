package model

import (
	"fmt"
	"strings"
)

// Waveform selects the e-ink refresh algorithm. The numeric values are the
// codes used by the display controller.
type Waveform byte

const (
	WaveformA2    Waveform = 1
	WaveformDU    Waveform = 2
	WaveformDU4   Waveform = 3
	WaveformGC16  Waveform = 4
	WaveformGCC16 Waveform = 5
	WaveformGL16  Waveform = 6
	WaveformGLR16 Waveform = 7
	WaveformGLD16 Waveform = 8
)

var waveformNames = map[Waveform]string{
	WaveformA2:    "a2",
	WaveformDU:    "du",
	WaveformDU4:   "du4",
	WaveformGC16:  "gc16",
	WaveformGCC16: "gcc16",
	WaveformGL16:  "gl16",
	WaveformGLR16: "glr16",
	WaveformGLD16: "gld16",
}

// Waveforms returns every waveform in code order.
func Waveforms() []Waveform {
	return []Waveform{
		WaveformA2, WaveformDU, WaveformDU4, WaveformGC16,
		WaveformGCC16, WaveformGL16, WaveformGLR16, WaveformGLD16,
	}
}

// WaveformNames returns the lowercase names of all waveforms in code order.
func WaveformNames() []string {
	all := Waveforms()
	names := make([]string, len(all))
	for i, w := range all {
		names[i] = w.String()
	}
	return names
}

// WaveformFromCode decodes a code received from the display controller.
// Codes outside 1-8 yield a DecodeError.
func WaveformFromCode(code byte) (Waveform, error) {
	w := Waveform(code)
	if _, ok := waveformNames[w]; !ok {
		return 0, &DecodeError{Property: "waveform", Value: int64(code)}
	}
	return w, nil
}

// ParseWaveform parses a waveform name such as "gc16" (case-insensitive).
func ParseWaveform(s string) (Waveform, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for w, n := range waveformNames {
		if n == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("invalid waveform %q (expected one of %s)", s, strings.Join(WaveformNames(), ", "))
}

// Code returns the wire code of the waveform.
func (w Waveform) Code() byte {
	return byte(w)
}

// Next returns the waveform with the following code, wrapping to A2 after GLD16.
func (w Waveform) Next() Waveform {
	if w >= WaveformGLD16 || w < WaveformA2 {
		return WaveformA2
	}
	return w + 1
}

// Prev returns the waveform with the preceding code, wrapping to GLD16 before A2.
func (w Waveform) Prev() Waveform {
	if w <= WaveformA2 || w > WaveformGLD16 {
		return WaveformGLD16
	}
	return w - 1
}

func (w Waveform) String() string {
	if n, ok := waveformNames[w]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", byte(w))
}
