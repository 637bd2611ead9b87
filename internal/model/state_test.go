package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnOffState_Not(t *testing.T) {
	assert.Equal(t, Off, On.Not())
	assert.Equal(t, On, Off.Not())

	for _, s := range []OnOffState{On, Off} {
		assert.Equal(t, s, s.Not().Not(), "double negation of %s", s)
	}
}

func TestOnOffState_String(t *testing.T) {
	assert.Equal(t, "on", On.String())
	assert.Equal(t, "off", Off.String())
}

func TestParseToggleRequest(t *testing.T) {
	tests := []struct {
		input   string
		want    ToggleRequest
		wantErr bool
	}{
		{"on", RequestOn, false},
		{"off", RequestOff, false},
		{"toggle", RequestToggle, false},
		{"Toggle", RequestToggle, false},
		{"flip", RequestOff, true},
		{"", RequestOff, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseToggleRequest(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleRequest_State(t *testing.T) {
	s, err := RequestOn.State()
	require.NoError(t, err)
	assert.Equal(t, On, s)

	s, err = RequestOff.State()
	require.NoError(t, err)
	assert.Equal(t, Off, s)

	_, err = RequestToggle.State()
	assert.ErrorIs(t, err, ErrInvalidConversion)
}
