package output

import (
	"fmt"
	"io"
)

// PlainFormatter writes one "<name>: <value>" line per property.
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// Format writes properties as plain text.
func (f *PlainFormatter) Format(w io.Writer, props []Property) error {
	for _, p := range props {
		if _, err := fmt.Fprintf(w, "%s: %s\n", p.Name, p.Value); err != nil {
			return err
		}
	}
	return nil
}
