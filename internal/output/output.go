// Package output provides formatters for bus envelopes and the exported
// symbol table.
package output

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/hermes/internal/boundary"
	"github.com/jmylchreest/hermes/internal/bus"
)

// Formatter formats envelopes and symbols for output.
type Formatter interface {
	// FormatEnvelopes writes formatted envelopes to the writer.
	FormatEnvelopes(w io.Writer, envs []bus.Envelope) error
	// FormatSymbols writes formatted symbols to the writer.
	FormatSymbols(w io.Writer, symbols []boundary.Symbol) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(s); f {
	case FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want plain, json or yaml)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template      string // Custom template for plain format
	ShowTime      bool   // Show relative time
	ShowSize      bool   // Show payload size
	PayloadMaxLen int    // Maximum payload length in plain format (0 = unlimited)
}

// DefaultFormatterOptions returns sensible defaults for terminal output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowTime:      true,
		ShowSize:      true,
		PayloadMaxLen: 120,
	}
}

// EnvelopeView is the structured form of an envelope. JSON payloads are
// embedded as values, text as a string and anything else as base64.
type EnvelopeView struct {
	ID      string    `json:"id" yaml:"id"`
	Topic   string    `json:"topic" yaml:"topic"`
	Time    time.Time `json:"time" yaml:"time"`
	Size    int       `json:"size" yaml:"size"`
	Payload any       `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewEnvelopeView converts env for structured output.
func NewEnvelopeView(env bus.Envelope) EnvelopeView {
	v := EnvelopeView{
		ID:    env.ID,
		Topic: env.Topic,
		Time:  env.Time,
		Size:  len(env.Payload),
	}
	if len(env.Payload) == 0 {
		return v
	}

	var decoded any
	switch {
	case json.Unmarshal(env.Payload, &decoded) == nil:
		v.Payload = decoded
	case utf8.Valid(env.Payload):
		v.Payload = string(env.Payload)
	default:
		v.Payload = base64.StdEncoding.EncodeToString(env.Payload)
	}
	return v
}

// RelativeTime returns a human-readable age such as "3 minutes ago".
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}

// Size returns a human-readable payload size.
func Size(n int) string {
	return humanize.Bytes(uint64(n))
}
