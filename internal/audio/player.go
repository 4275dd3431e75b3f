package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Output is where decoded audio goes. The default is the system speaker.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (speakerOutput) Close() {
	speaker.Close()
}

// Player plays WAV payloads.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger
	output Output

	// Volume control (0.0 to 1.0)
	volume float64
	muted  bool

	// Whether the output has been initialized
	initialized bool

	// Sample rate of the output
	sampleRate beep.SampleRate
}

// NewPlayer creates a player writing to output, or to the speaker when
// output is nil.
func NewPlayer(output Output, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	if output == nil {
		output = speakerOutput{}
	}

	return &Player{
		logger: logger,
		output: output,
		volume: 1.0,
	}
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = min(max(volume, 0), 1)
	p.logger.Debug("volume set", "volume", p.volume)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetMuted silences playback without skipping it.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	p.logger.Debug("mute set", "muted", muted)
}

// Muted reports whether playback is silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// PlayWAV plays a WAV document and blocks until it has been played or ctx
// is done. It returns the length of the sound.
func (p *Player) PlayWAV(ctx context.Context, data []byte) (time.Duration, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to decode wav: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureInitialized(format.SampleRate); err != nil {
		return 0, err
	}
	length := format.SampleRate.D(streamer.Len())

	p.mu.Lock()
	volume, muted, sampleRate := p.volume, p.muted, p.sampleRate
	p.mu.Unlock()

	var s beep.Streamer = streamer

	// Resample if necessary
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}

	// Apply volume
	if volume < 1.0 || muted {
		s = &effects.Volume{
			Streamer: s,
			Base:     2,
			Volume:   volumeExponent(volume),
			Silent:   muted || volume == 0,
		}
	}

	var stopped atomic.Bool
	done := make(chan struct{})
	guarded := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if stopped.Load() {
			return 0, false
		}
		return s.Stream(samples)
	})
	p.output.Play(beep.Seq(guarded, beep.Callback(func() { close(done) })))

	select {
	case <-done:
		return length, nil
	case <-ctx.Done():
		stopped.Store(true)
		return length, ctx.Err()
	}
}

// ensureInitialized initializes the output if not already done.
func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	// Use a reasonable buffer size for low latency
	bufferSize := sampleRate.N(100 * time.Millisecond)

	if err := p.output.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

// Close stops all playback and releases the output.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		p.output.Close()
		p.initialized = false
	}
	p.logger.Debug("audio player closed")
}

// volumeExponent converts a linear volume (0-1) to the exponent used by
// effects.Volume with base 2.
func volumeExponent(volume float64) float64 {
	if volume <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(volume)
}
