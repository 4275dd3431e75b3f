package audio

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/hermes/internal/config"
	"github.com/jmylchreest/hermes/internal/hermes"
	"github.com/jmylchreest/hermes/internal/ontology"
)

// fakeOutput drains every streamer on its own goroutine, like the speaker.
type fakeOutput struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	inits   int
	samples int
	peak    float64
	closed  bool
	stall   bool
}

func (o *fakeOutput) Init(sampleRate beep.SampleRate, _ int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rate = sampleRate
	o.inits++
	return nil
}

func (o *fakeOutput) Play(s beep.Streamer) {
	if o.stall {
		return
	}
	go func() {
		buf := make([][2]float64, 256)
		for {
			n, ok := s.Stream(buf)
			o.mu.Lock()
			o.samples += n
			for _, frame := range buf[:n] {
				o.peak = math.Max(o.peak, math.Abs(frame[0]))
			}
			o.mu.Unlock()
			if !ok {
				return
			}
		}
	}()
}

func (o *fakeOutput) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
}

func (o *fakeOutput) Peak() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.peak
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testWAV encodes n samples of a full-scale 440 Hz tone at 8 kHz.
func testWAV(t *testing.T, n int) []byte {
	t.Helper()
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	tone, err := generators.SineTone(format.SampleRate, 440)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, beep.Take(n, tone), format))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestPlayer_PlayWAV(t *testing.T) {
	out := &fakeOutput{}
	p := NewPlayer(out, testLogger())

	length, err := p.PlayWAV(context.Background(), testWAV(t, 800))
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, length)
	assert.Equal(t, beep.SampleRate(8000), out.rate)
	assert.Greater(t, out.Peak(), 0.9)

	// The output is initialized once.
	_, err = p.PlayWAV(context.Background(), testWAV(t, 80))
	require.NoError(t, err)
	assert.Equal(t, 1, out.inits)

	p.Close()
	assert.True(t, out.closed)
}

func TestPlayer_Volume(t *testing.T) {
	tests := []struct {
		name    string
		volume  float64
		muted   bool
		maxPeak float64
	}{
		{name: "half", volume: 0.5, maxPeak: 0.51},
		{name: "zero", volume: 0, maxPeak: 0},
		{name: "muted", volume: 1, muted: true, maxPeak: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &fakeOutput{}
			p := NewPlayer(out, testLogger())
			p.SetVolume(tt.volume)
			p.SetMuted(tt.muted)

			_, err := p.PlayWAV(context.Background(), testWAV(t, 400))
			require.NoError(t, err)
			assert.LessOrEqual(t, out.Peak(), tt.maxPeak)
		})
	}
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer(&fakeOutput{}, testLogger())
	p.SetVolume(3)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
}

func TestPlayer_InvalidWAV(t *testing.T) {
	p := NewPlayer(&fakeOutput{}, testLogger())
	_, err := p.PlayWAV(context.Background(), []byte("not a wav file"))
	assert.ErrorContains(t, err, "failed to decode wav")
}

func TestPlayer_Cancel(t *testing.T) {
	p := NewPlayer(&fakeOutput{stall: true}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.PlayWAV(ctx, testWAV(t, 800))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func openHandler(t *testing.T) *hermes.Handler {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Bus.URL = "mem://" + t.Name()
	h, err := hermes.Open(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestServer(t *testing.T) {
	h := openHandler(t)
	player := NewPlayer(&fakeOutput{}, testLogger())
	srv := NewServer(h, player, ServerOptions{SiteID: "den", Version: "1.2.3"}, testLogger())
	require.NoError(t, srv.Start())
	defer srv.Close()

	client := h.AudioServerFacade()
	defer client.Close()

	finished := make(chan *ontology.PlayFinishedMessage, 4)
	require.NoError(t, client.SubscribeAllPlayFinished(func(m *ontology.PlayFinishedMessage) { finished <- m }))
	errs := make(chan *ontology.ErrorMessage, 4)
	require.NoError(t, client.SubscribeError(func(m *ontology.ErrorMessage) { errs <- m }))
	versions := make(chan *ontology.VersionMessage, 1)
	require.NoError(t, client.SubscribeVersion(func(m *ontology.VersionMessage) { versions <- m }))

	t.Run("plays and reports", func(t *testing.T) {
		require.NoError(t, client.PublishPlayBytes(&ontology.PlayBytesMessage{ID: "p1", SiteID: "den", WavBytes: testWAV(t, 80)}))
		select {
		case m := <-finished:
			assert.Equal(t, "p1", m.ID)
			assert.Equal(t, "den", m.SiteID)
		case <-time.After(2 * time.Second):
			t.Fatal("no play finished")
		}
	})

	t.Run("ignores other sites", func(t *testing.T) {
		require.NoError(t, client.PublishPlayBytes(&ontology.PlayBytesMessage{ID: "p2", SiteID: "kitchen", WavBytes: testWAV(t, 80)}))
		select {
		case m := <-finished:
			t.Fatalf("unexpected play finished for %s", m.ID)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("reports undecodable sounds", func(t *testing.T) {
		require.NoError(t, client.PublishPlayBytes(&ontology.PlayBytesMessage{ID: "p3", SiteID: "den", WavBytes: []byte("noise")}))
		select {
		case m := <-errs:
			assert.Equal(t, "p3", m.Context)
			assert.Contains(t, m.Error, "decode")
		case <-time.After(2 * time.Second):
			t.Fatal("no error reported")
		}
		select {
		case m := <-finished:
			assert.Equal(t, "p3", m.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("no play finished")
		}
	})

	t.Run("sound feedback toggles", func(t *testing.T) {
		feedback := h.SoundFeedbackFacade()
		defer feedback.Close()

		require.NoError(t, feedback.PublishToggleOff(&ontology.SiteMessage{SiteID: "kitchen"}))
		require.NoError(t, feedback.PublishToggleOff(&ontology.SiteMessage{SiteID: "den"}))
		require.Eventually(t, player.Muted, 2*time.Second, 5*time.Millisecond)

		require.NoError(t, feedback.PublishToggleOn(&ontology.SiteMessage{SiteID: "den"}))
		require.Eventually(t, func() bool { return !player.Muted() }, 2*time.Second, 5*time.Millisecond)
	})

	t.Run("answers version requests", func(t *testing.T) {
		require.NoError(t, client.PublishVersionRequest())
		select {
		case m := <-versions:
			assert.Equal(t, "1.2.3", m.Version)
		case <-time.After(2 * time.Second):
			t.Fatal("no version")
		}
	})
}
