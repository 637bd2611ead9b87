package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats properties as a JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes properties as a JSON array of {name, value} objects.
func (f *JSONFormatter) Format(w io.Writer, props []Property) error {
	if props == nil {
		props = []Property{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(props)
}
