package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/hermes/internal/boundary"
	"github.com/jmylchreest/hermes/internal/bus"
)

// JSONFormatter formats envelopes and symbols as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatEnvelopes writes one JSON document per envelope, so the output can
// be streamed.
func (f *JSONFormatter) FormatEnvelopes(w io.Writer, envs []bus.Envelope) error {
	encoder := json.NewEncoder(w)
	for _, env := range envs {
		if err := encoder.Encode(NewEnvelopeView(env)); err != nil {
			return err
		}
	}
	return nil
}

// FormatSymbols writes symbols as a JSON array.
func (f *JSONFormatter) FormatSymbols(w io.Writer, symbols []boundary.Symbol) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(symbols)
}
