package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/hermes/internal/boundary"
	"github.com/jmylchreest/hermes/internal/bus"
)

// YAMLFormatter formats envelopes and symbols as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatEnvelopes writes one YAML document per envelope.
func (f *YAMLFormatter) FormatEnvelopes(w io.Writer, envs []bus.Envelope) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	for _, env := range envs {
		if err := encoder.Encode(NewEnvelopeView(env)); err != nil {
			return err
		}
	}
	return encoder.Close()
}

// FormatSymbols writes symbols as a YAML sequence.
func (f *YAMLFormatter) FormatSymbols(w io.Writer, symbols []boundary.Symbol) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(symbols); err != nil {
		return err
	}
	return encoder.Close()
}
