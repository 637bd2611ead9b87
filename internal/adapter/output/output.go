// Package output renders property readings in the supported output formats.
package output

import (
	"fmt"
	"io"
)

// Property is one named reading, e.g. performance-mode: on.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Formatter writes properties in order.
type Formatter interface {
	Format(w io.Writer, props []Property) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatTable FormatType = "table"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType) (Formatter, error) {
	switch format {
	case FormatPlain, "":
		return NewPlainFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	case FormatTable:
		return NewTableFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
