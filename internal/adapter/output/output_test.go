package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testProperties() []Property {
	return []Property{
		{Name: "travel-mode", Value: "off"},
		{Name: "waveform", Value: "gc16"},
		{Name: "performance-mode", Value: "on"},
	}
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewPlainFormatter().Format(&buf, testProperties()))
	assert.Equal(t, "travel-mode: off\nwaveform: gc16\nperformance-mode: on\n", buf.String())
}

func TestPlainFormatter_Single(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewPlainFormatter().Format(&buf, []Property{{Name: "waveform", Value: "a2"}}))
	assert.Equal(t, "waveform: a2\n", buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONFormatter().Format(&buf, testProperties()))

	var decoded []Property
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testProperties(), decoded)
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONFormatter().Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_KeepsOrder(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewYAMLFormatter().Format(&buf, testProperties()))

	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, map[string]string{
		"travel-mode":      "off",
		"waveform":         "gc16",
		"performance-mode": "on",
	}, decoded)

	out := buf.String()
	assert.Less(t, strings.Index(out, "travel-mode"), strings.Index(out, "waveform"))
	assert.Less(t, strings.Index(out, "waveform"), strings.Index(out, "performance-mode"))
}

func TestTableFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewTableFormatter().Format(&buf, testProperties()))

	out := buf.String()
	assert.Contains(t, out, "PROPERTY")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "performance-mode")
	assert.Contains(t, out, "gc16")
	assert.True(t, strings.HasPrefix(out, "╭"), "rounded style")
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format FormatType
		want   Formatter
	}{
		{FormatPlain, &PlainFormatter{}},
		{"", &PlainFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{FormatTable, &TableFormatter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := NewFormatter(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}
