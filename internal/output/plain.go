package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/hermes/internal/boundary"
	"github.com/jmylchreest/hermes/internal/bus"
)

// PlainFormatter formats envelopes as one line each and symbols as C
// declarations.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// FormatEnvelopes writes envelopes as plain text.
func (f *PlainFormatter) FormatEnvelopes(w io.Writer, envs []bus.Envelope) error {
	for i := range envs {
		if err := f.formatEnvelope(w, &envs[i]); err != nil {
			return err
		}
	}
	return nil
}

// formatEnvelope formats a single envelope.
func (f *PlainFormatter) formatEnvelope(w io.Writer, env *bus.Envelope) error {
	// Use custom template if available
	if f.template != nil {
		data := templateData{
			Envelope:     env,
			Payload:      string(env.Payload),
			RelativeTime: RelativeTime(env.Time),
			Size:         Size(len(env.Payload)),
		}
		return f.template.Execute(w, data)
	}

	var sb strings.Builder

	if f.opts.ShowTime {
		sb.WriteString(env.Time.Format("15:04:05.000") + " ")
	}

	sb.WriteString(env.Topic)

	if f.opts.ShowSize {
		sb.WriteString(fmt.Sprintf(" (%s)", Size(len(env.Payload))))
	}

	if len(env.Payload) > 0 {
		sb.WriteString(" " + sanitizePayload(string(env.Payload), f.opts.PayloadMaxLen))
	}

	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatSymbols writes one C declaration per symbol.
func (f *PlainFormatter) FormatSymbols(w io.Writer, symbols []boundary.Symbol) error {
	for _, s := range symbols {
		if _, err := fmt.Fprintf(w, "%s;\n", s.Signature); err != nil {
			return err
		}
	}
	return nil
}

// templateData provides data for custom templates.
type templateData struct {
	Envelope     *bus.Envelope
	Payload      string
	RelativeTime string
	Size         string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": truncate,
	}
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// sanitizePayload cleans up payload text for single-line display.
func sanitizePayload(payload string, maxLen int) string {
	payload = strings.ReplaceAll(payload, "\n", " ")
	payload = strings.ReplaceAll(payload, "\r", "")
	payload = strings.TrimSpace(payload)
	return truncate(payload, maxLen)
}
