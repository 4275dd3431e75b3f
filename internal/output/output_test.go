package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/hermes/internal/boundary"
	"github.com/jmylchreest/hermes/internal/bus"
)

func testEnvelopes() []bus.Envelope {
	ts := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	return []bus.Envelope{
		{
			ID:      "01HWQZ5V2X0000000000000000",
			Topic:   "hermes/dialogueManager/sessionStarted",
			Payload: []byte(`{"sessionId":"abc","siteId":"kitchen"}`),
			Time:    ts,
		},
		{
			ID:    "01HWQZ5V2X0000000000000001",
			Topic: "hermes/injection/statusRequest",
			Time:  ts.Add(time.Second),
		},
		{
			ID:      "01HWQZ5V2X0000000000000002",
			Topic:   "hermes/audioServer/den/audioFrame",
			Payload: []byte{0x52, 0x49, 0xff, 0x00},
			Time:    ts.Add(2 * time.Second),
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"plain", "json", "yaml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, FormatType(s), f)
	}

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, f)

	_, err = ParseFormat("dmenu")
	assert.Error(t, err)
}

func TestNewEnvelopeView(t *testing.T) {
	envs := testEnvelopes()

	v := NewEnvelopeView(envs[0])
	assert.Equal(t, map[string]any{"sessionId": "abc", "siteId": "kitchen"}, v.Payload)
	assert.Equal(t, 38, v.Size)

	v = NewEnvelopeView(envs[1])
	assert.Nil(t, v.Payload)
	assert.Zero(t, v.Size)

	v = NewEnvelopeView(envs[2])
	assert.Equal(t, "Ukn/AA==", v.Payload)

	v = NewEnvelopeView(bus.Envelope{Topic: "t", Payload: []byte("hello")})
	assert.Equal(t, "hello", v.Payload)
}

func TestPlainFormatter_FormatEnvelopes(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, f.FormatEnvelopes(&buf, testEnvelopes()[:2]))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `12:30:45.000 hermes/dialogueManager/sessionStarted (38 B) {"sessionId":"abc","siteId":"kitchen"}`, lines[0])
	assert.Equal(t, "12:30:46.000 hermes/injection/statusRequest (0 B)", lines[1])
}

func TestPlainFormatter_Truncates(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(FormatterOptions{PayloadMaxLen: 10})
	require.NoError(t, f.FormatEnvelopes(&buf, testEnvelopes()[:1]))
	assert.Equal(t, `hermes/dialogueManager/sessionStarted {"sessi...`+"\n", buf.String())
}

func TestPlainFormatter_Template(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(FormatterOptions{Template: "{{.Envelope.Topic}}|{{truncate .Payload 5}}|{{.Size}}\n"})
	require.NoError(t, f.FormatEnvelopes(&buf, testEnvelopes()[:1]))
	assert.Equal(t, "hermes/dialogueManager/sessionStarted|{\"...|38 B\n", buf.String())
}

func TestPlainFormatter_InvalidTemplateFallsBack(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainFormatter(FormatterOptions{Template: "{{.Broken"})
	require.NoError(t, f.FormatEnvelopes(&buf, testEnvelopes()[1:2]))
	assert.Equal(t, "hermes/injection/statusRequest\n", buf.String())
}

func TestJSONFormatter_FormatEnvelopes(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(DefaultFormatterOptions())
	require.NoError(t, f.FormatEnvelopes(&buf, testEnvelopes()))

	dec := json.NewDecoder(&buf)
	var views []map[string]any
	for dec.More() {
		var v map[string]any
		require.NoError(t, dec.Decode(&v))
		views = append(views, v)
	}
	require.Len(t, views, 3)
	assert.Equal(t, "hermes/dialogueManager/sessionStarted", views[0]["topic"])
	assert.Equal(t, "abc", views[0]["payload"].(map[string]any)["sessionId"])
	assert.NotContains(t, views[1], "payload")
}

func TestYAMLFormatter_FormatEnvelopes(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(DefaultFormatterOptions())
	require.NoError(t, f.FormatEnvelopes(&buf, testEnvelopes()[:1]))

	var v struct {
		Topic   string         `yaml:"topic"`
		Payload map[string]any `yaml:"payload"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "hermes/dialogueManager/sessionStarted", v.Topic)
	assert.Equal(t, "kitchen", v.Payload["siteId"])
}

func TestFormatSymbols(t *testing.T) {
	symbols := []boundary.Symbol{
		{Name: "hermes_enable_debug_logs", Kind: boundary.KindAdmin, Signature: "HERMES_RESULT hermes_enable_debug_logs(void)"},
		{Name: "hermes_drop_intent_message", Kind: boundary.KindMessageDrop, Message: "intent", Signature: "HERMES_RESULT hermes_drop_intent_message(const char *message)"},
	}

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatPlain, DefaultFormatterOptions()).FormatSymbols(&buf, symbols))
		assert.Equal(t, "HERMES_RESULT hermes_enable_debug_logs(void);\nHERMES_RESULT hermes_drop_intent_message(const char *message);\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON, DefaultFormatterOptions()).FormatSymbols(&buf, symbols))
		var got []boundary.Symbol
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, symbols, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML, DefaultFormatterOptions()).FormatSymbols(&buf, symbols))
		assert.Contains(t, buf.String(), "kind: message_drop")
		assert.Contains(t, buf.String(), "message: intent")
		assert.NotContains(t, buf.String(), "domain:")
	})
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "unknown", RelativeTime(time.Time{}))
	assert.Equal(t, "now", RelativeTime(time.Now()))
	assert.Equal(t, "5 minutes ago", RelativeTime(time.Now().Add(-5*time.Minute)))
}
