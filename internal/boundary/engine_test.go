package boundary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/hermes/internal/config"
	"github.com/jmylchreest/hermes/internal/hermes"
	"github.com/jmylchreest/hermes/internal/ontology"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
	quiet   = 100 * time.Millisecond
)

// peer opens an independent handler on the test's bus, standing in for
// another process connected to the same broker.
func peer(t *testing.T) *hermes.Handler {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Bus.URL = busURL(t)
	h, err := hermes.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHandler_CreateDestroy(t *testing.T) {
	e, alloc, _ := newTestEngine(t)

	root := newRoot(t, e, 0x1)
	assert.Equal(t, UserData(0x1), root.UserData)
	assert.Equal(t, 1, alloc.Live())

	assert.Equal(t, StatusOK, e.DestroyHandler(root))
	assert.Equal(t, 0, alloc.Live())
}

func TestHandler_DefaultBus(t *testing.T) {
	e, _, _ := newTestEngine(t)

	var root *Record
	require.Equal(t, StatusOK, e.NewHandler(&root, nil, 0))
	assert.Equal(t, StatusOK, e.DestroyHandler(root))
}

func TestHandler_Errors(t *testing.T) {
	e, alloc, _ := newTestEngine(t)

	tests := []struct {
		name string
		run  func() Status
		want string
	}{
		{
			name: "nil out",
			run:  func() Status { return e.NewHandler(nil, cstr("mem://x"), 0) },
			want: "null pointer",
		},
		{
			name: "unknown scheme",
			run: func() Status {
				var r *Record
				return e.NewHandler(&r, cstr("carrier-pigeon://coop"), 0)
			},
			want: "bus_url",
		},
		{
			name: "invalid UTF-8",
			run: func() Status {
				var r *Record
				b := []byte{'m', 0xff, 0xfe, 0}
				return e.NewHandler(&r, unsafe.Pointer(&b[0]), 0)
			},
			want: "invalid UTF-8",
		},
		{
			name: "invalid TOML options",
			run: func() Status {
				var r *Record
				return e.NewHandlerWithOptions(&r, cstr("[bus\nurl ="), 0)
			},
			want: "toml_options",
		},
		{
			name: "nil options",
			run: func() Status {
				var r *Record
				return e.NewHandlerWithOptions(&r, nil, 0)
			},
			want: "null pointer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, StatusKO, tt.run())
			assert.Contains(t, lastErr(e), tt.want)
			assert.Contains(t, lastErr(e), "hermes_protocol_handler_new")
		})
	}
	assert.Equal(t, 0, alloc.Live())
}

func TestHandler_WithOptions(t *testing.T) {
	e, _, level := newTestEngine(t)

	opts := fmt.Sprintf("[bus]\nurl = %q\nworkers = 2\n\n[log]\nlevel = \"info\"\n", busURL(t))
	var root *Record
	require.Equal(t, StatusOK, e.NewHandlerWithOptions(&root, cstr(opts), 0x2), lastErr(e))
	assert.Equal(t, slog.LevelInfo, level.Level())
	assert.Equal(t, UserData(0x2), root.UserData)

	assert.Equal(t, StatusOK, e.DestroyHandler(root))
}

func TestHandler_FromConfigReloadsLogLevel(t *testing.T) {
	e, _, level := newTestEngine(t)

	path := filepath.Join(t.TempDir(), "hermes.toml")
	write := func(lv string) {
		doc := fmt.Sprintf("[bus]\nurl = %q\n\n[log]\nlevel = %q\n", busURL(t), lv)
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	}
	write("error")

	var root *Record
	require.Equal(t, StatusOK, e.NewHandlerFromConfig(&root, cstr(path), 0), lastErr(e))
	assert.Equal(t, slog.LevelError, level.Level())

	write("debug")
	require.Eventually(t, func() bool {
		return level.Level() == slog.LevelDebug
	}, waitFor, tick)

	assert.Equal(t, StatusOK, e.DestroyHandler(root))
}

func TestHandler_FromMissingConfigUsesDefaults(t *testing.T) {
	e, _, _ := newTestEngine(t)

	var root *Record
	path := filepath.Join(t.TempDir(), "absent.toml")
	require.Equal(t, StatusOK, e.NewHandlerFromConfig(&root, cstr(path), 0), lastErr(e))
	assert.Equal(t, StatusOK, e.DestroyHandler(root))
}

func TestFacade_IndependentHandles(t *testing.T) {
	e, alloc, _ := newTestEngine(t)
	root := newRoot(t, e, 0xBEEF)

	for _, d := range Domains() {
		t.Run(d.Name, func(t *testing.T) {
			a := newFacade(t, e, d.Name, root)
			b := newFacade(t, e, d.Name, root)
			assert.NotEqual(t, a.Handle, b.Handle)
			assert.Equal(t, UserData(0xBEEF), a.UserData)
			assert.Equal(t, UserData(0xBEEF), b.UserData)

			require.Equal(t, StatusOK, e.DestroyFacade(d.Name, a))

			// b and the root stay usable.
			c := newFacade(t, e, d.Name, root)
			require.Equal(t, StatusOK, e.DestroyFacade(d.Name, c))
			require.Equal(t, StatusOK, e.DestroyFacade(d.Name, b))
		})
	}

	require.Equal(t, StatusOK, e.DestroyHandler(root))
	assert.Equal(t, 0, alloc.Live())
}

func TestFacade_OutlivesRoot(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	dialogue := newFacade(t, e, "dialogue", root)
	require.Equal(t, StatusOK, e.DestroyHandler(root))

	rec := &recorder{}
	require.Equal(t, StatusOK, e.Subscribe("hermes_dialogue_subscribe_session_ended", dialogue, rec.fn()))

	require.NoError(t, peer(t).DialogueBackendFacade().PublishSessionEnded(&ontology.SessionEndedMessage{
		SessionID:   "s1",
		SiteID:      "kitchen",
		Termination: ontology.SessionTermination{Reason: ontology.TerminationNominal},
	}))
	require.Eventually(t, func() bool { return rec.Count() == 1 }, waitFor, tick)

	assert.Equal(t, StatusOK, e.DestroyFacade("dialogue", dialogue))
}

func TestFacade_Errors(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	defer e.DestroyHandler(root)

	var f *Record
	assert.Equal(t, StatusKO, e.Facade("weather", root, &f))
	assert.Contains(t, lastErr(e), ErrUnknownDomain.Error())

	assert.Equal(t, StatusKO, e.Facade("dialogue", nil, &f))
	assert.Contains(t, lastErr(e), "hermes_protocol_handler_dialogue_facade")

	assert.Equal(t, StatusKO, e.Facade("dialogue", root, nil))

	tts := newFacade(t, e, "tts", root)

	// Handle kinds are not interchangeable.
	assert.Equal(t, StatusKO, e.Facade("dialogue", tts, &f))
	assert.Contains(t, lastErr(e), ErrWrongHandle.Error())

	assert.Equal(t, StatusOK, e.DestroyFacade("tts", tts))
}

func TestDestroy_WrongHandleSucceedsAndLeavesItAlone(t *testing.T) {
	e, alloc, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	tts := newFacade(t, e, "tts", root)
	live := alloc.Live()

	assert.Equal(t, StatusOK, e.DestroyFacade("dialogue", tts))
	assert.Equal(t, StatusOK, e.DestroyFacade("tts", root))
	assert.Equal(t, StatusOK, e.DestroyHandler(tts))
	assert.Equal(t, live, alloc.Live())

	// Both handles are still usable.
	var f *Record
	require.Equal(t, StatusOK, e.Facade("dialogue", root, &f), lastErr(e))
	assert.Equal(t, StatusOK, e.DestroyFacade("dialogue", f))
	assert.Equal(t, StatusOK, e.Publish("hermes_tts_publish_say", tts, cstr(`{"text":"hi","siteId":"a"}`)), lastErr(e))

	assert.Equal(t, StatusOK, e.DestroyFacade("tts", tts))
	assert.Equal(t, StatusOK, e.DestroyHandler(root))
	assert.Equal(t, 0, alloc.Live())
}

func TestPublish_MalformedMessage(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	defer e.DestroyHandler(root)

	tts := newFacade(t, e, "tts", root)
	defer e.DestroyFacade("tts", tts)

	received := make(chan *ontology.SayMessage, 8)
	require.NoError(t, peer(t).TtsBackendFacade().SubscribeSay(func(m *ontology.SayMessage) {
		received <- m
	}))

	tests := []struct {
		name string
		msg  unsafe.Pointer
		want string
	}{
		{name: "null", msg: nil, want: "null pointer"},
		{name: "not json", msg: cstr("say hello"), want: "could not convert message"},
		{name: "unknown field", msg: cstr(`{"text":"hi","siteId":"a","volume":11}`), want: "volume"},
		{name: "trailing data", msg: cstr(`{"text":"hi","siteId":"a"} {}`), want: "trailing data"},
		{name: "wrong type", msg: cstr(`{"text":42,"siteId":"a"}`), want: "could not convert message"},
		{name: "missing field", msg: cstr(`{"text":"hi"}`), want: "siteId"},
		{name: "invalid UTF-8", msg: unsafe.Pointer(&[]byte{'{', 0xc3, 0x28, '}', 0}[0]), want: "invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, StatusKO, e.Publish("hermes_tts_publish_say", tts, tt.msg))
			assert.Contains(t, lastErr(e), "hermes_tts_publish_say")
			assert.Contains(t, lastErr(e), tt.want)
		})
	}

	select {
	case m := <-received:
		t.Fatalf("malformed publish reached the bus: %+v", m)
	case <-time.After(quiet):
	}
}

func TestPublish_Dispatch(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	defer e.DestroyHandler(root)

	tests := []struct {
		name      string
		domain    string
		symbol    string
		args      []string
		subscribe func(h *hermes.Handler, got chan<- any) error
		check     func(t *testing.T, got any)
	}{
		{
			name:   "filtered hotword detection",
			domain: "hotword_backend",
			symbol: "hermes_hotword_backend_publish_detected",
			args:   []string{"alexa", `{"siteId":"kitchen","modelId":"alexa"}`},
			subscribe: func(h *hermes.Handler, got chan<- any) error {
				return h.HotwordFacade().SubscribeDetected("alexa", func(m *ontology.HotwordDetectedMessage) { got <- m })
			},
			check: func(t *testing.T, got any) {
				m := got.(*ontology.HotwordDetectedMessage)
				assert.Equal(t, "kitchen", m.SiteID)
			},
		},
		{
			name:   "message without payload",
			domain: "injection",
			symbol: "hermes_injection_publish_injection_status_request",
			subscribe: func(h *hermes.Handler, got chan<- any) error {
				return h.InjectionBackendFacade().SubscribeInjectionStatusRequest(func() { got <- struct{}{} })
			},
			check: func(t *testing.T, got any) {},
		},
		{
			name:   "play bytes",
			domain: "audio_server",
			symbol: "hermes_audio_server_publish_play_bytes",
			args:   []string{`{"id":"p1","wavBytes":"UklGRg==","siteId":"den"}`},
			subscribe: func(h *hermes.Handler, got chan<- any) error {
				return h.AudioServerBackendFacade().SubscribePlayBytes("den", func(m *ontology.PlayBytesMessage) { got <- m })
			},
			check: func(t *testing.T, got any) {
				m := got.(*ontology.PlayBytesMessage)
				assert.Equal(t, []byte("RIFF"), m.WavBytes)
			},
		},
		{
			name:   "component version request",
			domain: "nlu",
			symbol: "hermes_nlu_publish_version_request",
			subscribe: func(h *hermes.Handler, got chan<- any) error {
				return h.NluBackendFacade().SubscribeVersionRequest(func() { got <- struct{}{} })
			},
			check: func(t *testing.T, got any) {},
		},
	}

	p := peer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make(chan any, 1)
			require.NoError(t, tt.subscribe(p, got))

			f := newFacade(t, e, tt.domain, root)
			defer e.DestroyFacade(tt.domain, f)

			args := make([]unsafe.Pointer, len(tt.args))
			for i, a := range tt.args {
				args[i] = cstr(a)
			}
			require.Equal(t, StatusOK, e.Publish(tt.symbol, f, args...), lastErr(e))

			select {
			case m := <-got:
				tt.check(t, m)
			case <-time.After(waitFor):
				t.Fatal("message not delivered")
			}
		})
	}
}

func TestPublish_CallErrors(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	defer e.DestroyHandler(root)

	tts := newFacade(t, e, "tts", root)
	defer e.DestroyFacade("tts", tts)
	msg := cstr(`{"sessionId":"s","siteId":"a"}`)

	assert.Equal(t, StatusKO, e.Publish("hermes_dialogue_publish_end_session", tts, msg))
	assert.Contains(t, lastErr(e), ErrWrongHandle.Error())

	assert.Equal(t, StatusKO, e.Publish("hermes_tts_publish_shout", tts, msg))
	assert.Contains(t, lastErr(e), ErrUnknownSymbol.Error())

	assert.Equal(t, StatusKO, e.Publish("hermes_tts_subscribe_say_finished", tts, msg))
	assert.Contains(t, lastErr(e), ErrUnknownSymbol.Error())

	assert.Equal(t, StatusKO, e.Publish("hermes_tts_publish_say", tts))
	assert.Contains(t, lastErr(e), ErrArgumentCount.Error())

	assert.Equal(t, StatusKO, e.Publish("hermes_tts_publish_say", nil, msg))
	assert.Contains(t, lastErr(e), ErrNullPointer.Error())

	backend := newFacade(t, e, "hotword_backend", root)
	defer e.DestroyFacade("hotword_backend", backend)
	assert.Equal(t, StatusKO, e.Publish("hermes_hotword_backend_publish_detected", backend, nil, cstr(`{"siteId":"a","modelId":"m"}`)))
	assert.Contains(t, lastErr(e), "hotword_id")
}

func TestPublish_FilterMustNameOneTopic(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	defer e.DestroyHandler(root)

	backend := newFacade(t, e, "hotword_backend", root)
	defer e.DestroyFacade("hotword_backend", backend)

	received := make(chan *ontology.HotwordDetectedMessage, 8)
	require.NoError(t, peer(t).HotwordFacade().SubscribeAllDetected(func(m *ontology.HotwordDetectedMessage) {
		received <- m
	}))

	msg := cstr(`{"siteId":"kitchen","modelId":"alexa"}`)
	for _, id := range []string{"", "a/b", "+", "#", "alexa/#"} {
		t.Run(fmt.Sprintf("%q", id), func(t *testing.T) {
			assert.Equal(t, StatusKO, e.Publish("hermes_hotword_backend_publish_detected", backend, cstr(id), msg))
			assert.Contains(t, lastErr(e), "could not convert hotword_id")
		})
	}

	select {
	case m := <-received:
		t.Fatalf("publish with an invalid hotword id reached the bus: %+v", m)
	case <-time.After(quiet):
	}

	require.Equal(t, StatusOK, e.Publish("hermes_hotword_backend_publish_detected", backend, cstr("alexa"), msg), lastErr(e))
	select {
	case m := <-received:
		assert.Equal(t, "kitchen", m.SiteID)
	case <-time.After(waitFor):
		t.Fatal("message not delivered")
	}
}

func TestSubscribe_NullCallbackRegistersNothing(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	defer e.DestroyHandler(root)

	dialogue := newFacade(t, e, "dialogue", root)
	defer e.DestroyFacade("dialogue", dialogue)

	box, err := extract[handlerBox](root.Handle)
	require.NoError(t, err)
	before := box.handler.Bus().SubscriptionCount()

	assert.Equal(t, StatusKO, e.Subscribe("hermes_dialogue_subscribe_session_started", dialogue, nil))
	assert.Contains(t, lastErr(e), ErrMissingCallback.Error())
	assert.Equal(t, before, box.handler.Bus().SubscriptionCount())

	// The same holds for filtered operations and bad symbols.
	assert.Equal(t, StatusKO, e.Subscribe("hermes_dialogue_subscribe_intent", dialogue, nil, cstr("lights")))
	assert.Contains(t, lastErr(e), ErrMissingCallback.Error())
	assert.Equal(t, StatusKO, e.Subscribe("hermes_dialogue_publish_end_session", dialogue, (&recorder{}).fn()))
	assert.Contains(t, lastErr(e), ErrUnknownSymbol.Error())
	assert.Equal(t, before, box.handler.Bus().SubscriptionCount())
}

func TestSubscribe_EveryEventIsAFreshPayload(t *testing.T) {
	const n = 20

	e, alloc, _ := newTestEngine(t)
	root := newRoot(t, e, 0x5EED)
	defer e.DestroyHandler(root)

	asr := newFacade(t, e, "asr", root)
	defer e.DestroyFacade("asr", asr)

	rec := &recorder{}
	require.Equal(t, StatusOK, e.Subscribe("hermes_asr_subscribe_text_captured", asr, rec.fn()), lastErr(e))

	backend := peer(t).AsrBackendFacade()
	for i := range n {
		require.NoError(t, backend.PublishTextCaptured(&ontology.TextCapturedMessage{
			Text:   fmt.Sprintf("utterance %d", i),
			SiteID: "kitchen",
		}))
	}
	require.Eventually(t, func() bool { return rec.Count() == n }, waitFor, tick)
	time.Sleep(quiet)

	calls := rec.Calls()
	require.Len(t, calls, n)

	seen := make(map[unsafe.Pointer]bool, n)
	texts := make(map[string]bool, n)
	for _, c := range calls {
		assert.Equal(t, UserData(0x5EED), c.ud)
		assert.False(t, seen[c.ptr], "payload pointer reused")
		seen[c.ptr] = true

		var m ontology.TextCapturedMessage
		require.NoError(t, json.Unmarshal([]byte(c.payload), &m))
		texts[m.Text] = true
	}
	assert.Len(t, texts, n)

	// Dropping one payload leaves the others intact.
	live := alloc.Live()
	require.Equal(t, StatusOK, e.DropMessage("text_captured", calls[0].ptr))
	assert.Equal(t, live-1, alloc.Live())
	for _, c := range calls[1:] {
		s, err := GoString(c.ptr, "payload")
		require.NoError(t, err)
		assert.Equal(t, c.payload, s)
		require.Equal(t, StatusOK, e.DropMessage("text_captured", c.ptr))
	}
}

func TestSubscribe_FilteredIntent(t *testing.T) {
	e, _, _ := newTestEngine(t)
	root := newRoot(t, e, 0)
	defer e.DestroyHandler(root)

	dialogue := newFacade(t, e, "dialogue", root)
	defer e.DestroyFacade("dialogue", dialogue)

	rec := &recorder{}
	require.Equal(t, StatusOK, e.Subscribe("hermes_dialogue_subscribe_intent", dialogue, rec.fn(), cstr("lightsOn")), lastErr(e))

	backend := peer(t).DialogueBackendFacade()
	for _, name := range []string{"lightsOff", "lightsOn"} {
		require.NoError(t, backend.PublishIntent(&ontology.IntentMessage{
			SessionID: "s",
			SiteID:    "den",
			Intent:    ontology.IntentClassifierResult{IntentName: name, ConfidenceScore: 0.9},
		}))
	}

	require.Eventually(t, func() bool { return rec.Count() == 1 }, waitFor, tick)
	time.Sleep(quiet)
	require.Equal(t, 1, rec.Count())
	assert.Contains(t, rec.Calls()[0].payload, `"intentName":"lightsOn"`)
}

func TestEndToEnd_DialogueSession(t *testing.T) {
	e, alloc, _ := newTestEngine(t)

	root := newRoot(t, e, 0xCAFE)
	dialogue := newFacade(t, e, "dialogue", root)

	start := cstr(`{"init":{"type":"action","canBeEnqueued":true},"customData":"abc","siteId":"default"}`)
	require.Equal(t, StatusOK, e.Publish("hermes_dialogue_publish_start_session", dialogue, start), lastErr(e))

	rec := &recorder{}
	require.Equal(t, StatusOK, e.Subscribe("hermes_dialogue_subscribe_session_started", dialogue, rec.fn()), lastErr(e))

	backend := peer(t).DialogueBackendFacade()
	require.NoError(t, backend.PublishSessionStarted(&ontology.SessionStartedMessage{
		SessionID: "abc",
		SiteID:    "default",
	}))

	require.Eventually(t, func() bool { return rec.Count() == 1 }, waitFor, tick)
	time.Sleep(quiet)
	require.Equal(t, 1, rec.Count())

	got := rec.Calls()[0]
	assert.Equal(t, UserData(0xCAFE), got.ud)
	var m ontology.SessionStartedMessage
	require.NoError(t, json.Unmarshal([]byte(got.payload), &m))
	assert.Equal(t, "abc", m.SessionID)

	assert.Equal(t, StatusOK, e.DropMessage("session_started", got.ptr))
	assert.Equal(t, StatusOK, e.DestroyFacade("dialogue", dialogue))
	assert.Equal(t, StatusOK, e.DestroyHandler(root))
	assert.Equal(t, 0, alloc.Live())

	require.NoError(t, backend.PublishSessionStarted(&ontology.SessionStartedMessage{
		SessionID: "abc",
		SiteID:    "default",
	}))
	time.Sleep(quiet)
	assert.Equal(t, 1, rec.Count())
}

func TestLastError(t *testing.T) {
	e, alloc, _ := newTestEngine(t)

	var p unsafe.Pointer
	require.Equal(t, StatusOK, e.LastError(&p))
	s, err := GoString(p, "error")
	require.NoError(t, err)
	assert.Empty(t, s)
	require.Equal(t, StatusOK, e.DestroyString(p))

	var f *Record
	require.Equal(t, StatusKO, e.Facade("weather", nil, &f))

	require.Equal(t, StatusOK, e.LastError(&p))
	s, err = GoString(p, "error")
	require.NoError(t, err)
	assert.Equal(t, "hermes_protocol_handler_weather_facade: unknown domain", s)
	require.Equal(t, StatusOK, e.DestroyString(p))

	assert.Equal(t, StatusKO, e.LastError(nil))
	assert.Equal(t, 0, alloc.Live())
}

func TestEnableDebugLogs(t *testing.T) {
	e, _, level := newTestEngine(t)
	require.Equal(t, slog.LevelWarn, level.Level())

	assert.Equal(t, StatusOK, e.EnableDebugLogs())
	assert.Equal(t, slog.LevelDebug, level.Level())
}

func TestDestroy_NilIsNoop(t *testing.T) {
	e, _, _ := newTestEngine(t)

	assert.Equal(t, StatusOK, e.DestroyHandler(nil))
	assert.Equal(t, StatusOK, e.DestroyFacade("dialogue", nil))
	assert.Equal(t, StatusOK, e.DropMessage("intent", nil))
	assert.Equal(t, StatusOK, e.DestroyString(nil))
}
