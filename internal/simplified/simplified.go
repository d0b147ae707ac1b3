// Package simplified converts traditional Han characters to simplified
// ones. Conversion is modeled as a capability: callers check
// IsAvailable and fall back to the unconverted text, so a missing or
// failing converter never propagates an error into normalization.
package simplified

import "github.com/siongui/gojianfan"

// Converter converts traditional-script text to simplified script.
type Converter interface {
	// Convert returns the simplified form of text.
	Convert(text string) (string, error)

	// IsAvailable reports whether the converter can be used.
	IsAvailable() bool
}

// TableConverter performs traditional-to-simplified conversion using an
// embedded character table. It holds no state and is safe for
// concurrent use.
type TableConverter struct{}

// NewTableConverter returns the built-in table-based converter.
func NewTableConverter() *TableConverter {
	return &TableConverter{}
}

// Convert maps traditional characters to their simplified equivalents.
// Characters without a mapping pass through unchanged.
func (c *TableConverter) Convert(text string) (string, error) {
	return gojianfan.T2S(text), nil
}

// IsAvailable always returns true; the table is compiled in.
func (c *TableConverter) IsAvailable() bool {
	return true
}

// Disabled is a no-op converter for deployments that want normalization
// without script conversion.
type Disabled struct{}

// NewDisabled returns a converter that leaves text untouched.
func NewDisabled() *Disabled {
	return &Disabled{}
}

// Convert returns the input unchanged.
func (c *Disabled) Convert(text string) (string, error) {
	return text, nil
}

// IsAvailable always returns false.
func (c *Disabled) IsAvailable() bool {
	return false
}
