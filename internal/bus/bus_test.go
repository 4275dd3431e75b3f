package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/hermes/internal/config"
)

func newMemoryBus(t *testing.T, name string) *Bus {
	t.Helper()
	b, err := New(context.Background(), NewMemoryTransport(name, 16), Options{
		Workers:        2,
		QueueSize:      16,
		PublishTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestMatch(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		want   bool
	}{
		{"hermes/tts/say", "hermes/tts/say", true},
		{"hermes/tts/say", "hermes/tts/sayFinished", false},
		{"hermes/hotword/+/detected", "hermes/hotword/default/detected", true},
		{"hermes/hotword/+/detected", "hermes/hotword/a/b/detected", false},
		{"hermes/intent/#", "hermes/intent/lights", true},
		{"hermes/intent/#", "hermes/intent", true},
		{"hermes/#", "hermes/audioServer/kitchen/playBytes/1", true},
		{"#", "anything/at/all", true},
		{"hermes/+", "hermes", false},
		{"hermes/#/x", "hermes/a/x", false},
		{"hermes/audioServer/+/playBytes/+", "hermes/audioServer/kitchen/playBytes/42", true},
		{"hermes/audioServer/kitchen/playBytes/+", "hermes/audioServer/bedroom/playBytes/42", false},
	}

	for _, tt := range tests {
		t.Run(tt.filter+" "+tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.filter, tt.topic))
		})
	}
}

func TestIsFilter(t *testing.T) {
	assert.True(t, IsFilter("hermes/intent/#"))
	assert.True(t, IsFilter("hermes/+/detected"))
	assert.False(t, IsFilter("hermes/tts/say"))
}

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope("hermes/tts/say", []byte(`{}`))
	require.NoError(t, err)
	assert.Len(t, env.ID, 26)
	assert.Equal(t, "hermes/tts/say", env.Topic)
	assert.False(t, env.Time.IsZero())

	_, err = NewEnvelope("", nil)
	assert.ErrorIs(t, err, ErrEmptyTopic)
}

func TestBus_PublishSubscribe(t *testing.T) {
	b := newMemoryBus(t, t.Name())

	got := make(chan Envelope, 4)
	_, err := b.Subscribe("hermes/intent/#", func(env Envelope) { got <- env })
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), "hermes/intent/lightsOn", []byte(`{"a":1}`)))
	require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", []byte(`{}`)))

	select {
	case env := <-got:
		assert.Equal(t, "hermes/intent/lightsOn", env.Topic)
		assert.Equal(t, `{"a":1}`, string(env.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery")
	}

	select {
	case env := <-got:
		t.Fatalf("unexpected delivery on %s", env.Topic)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_SharedHub(t *testing.T) {
	a := newMemoryBus(t, t.Name())
	b := newMemoryBus(t, t.Name())
	other := newMemoryBus(t, t.Name()+"-other")

	var fromA, fromOther atomic.Int32
	_, err := b.Subscribe("#", func(Envelope) { fromA.Add(1) })
	require.NoError(t, err)
	_, err = other.Subscribe("#", func(Envelope) { fromOther.Add(1) })
	require.NoError(t, err)

	require.NoError(t, a.Publish(context.Background(), "hermes/tts/say", nil))

	require.Eventually(t, func() bool { return fromA.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), fromOther.Load())
}

func TestBus_EveryEventDelivered(t *testing.T) {
	b := newMemoryBus(t, t.Name())

	var count atomic.Int32
	_, err := b.Subscribe("hermes/asr/textCaptured", func(Envelope) { count.Add(1) })
	require.NoError(t, err)

	const n = 100
	for i := 0; i < n; i++ {
		require.NoError(t, b.Publish(context.Background(), "hermes/asr/textCaptured", []byte(fmt.Sprint(i))))
	}

	require.Eventually(t, func() bool { return count.Load() == n }, 5*time.Second, 5*time.Millisecond)
}

func TestBus_HandlerRepliesUnderBurst(t *testing.T) {
	opts := Options{Workers: 1, QueueSize: 1, PublishTimeout: 5 * time.Second}
	skill, err := New(context.Background(), NewMemoryTransport(t.Name(), 1), opts)
	require.NoError(t, err)
	defer skill.Close()
	peer, err := New(context.Background(), NewMemoryTransport(t.Name(), 1), opts)
	require.NoError(t, err)
	defer peer.Close()

	var failed atomic.Int32
	_, err = skill.Subscribe("hermes/intent/#", func(env Envelope) {
		if err := skill.Publish(context.Background(), "hermes/dialogueManager/endSession", env.Payload); err != nil {
			failed.Add(1)
		}
	})
	require.NoError(t, err)

	var replies atomic.Int32
	_, err = peer.Subscribe("hermes/dialogueManager/endSession", func(Envelope) { replies.Add(1) })
	require.NoError(t, err)

	const n = 500
	for i := 0; i < n; i++ {
		require.NoError(t, peer.Publish(context.Background(), "hermes/intent/lights", []byte(fmt.Sprint(i))))
	}

	require.Eventually(t, func() bool { return replies.Load() == n }, 10*time.Second, 5*time.Millisecond)
	assert.Zero(t, failed.Load())
}

func TestBus_SlowHandlerDoesNotBlockPublish(t *testing.T) {
	b, err := New(context.Background(), NewMemoryTransport(t.Name(), 4), Options{
		Workers:        1,
		QueueSize:      4,
		PublishTimeout: time.Second,
	})
	require.NoError(t, err)
	defer b.Close()

	release := make(chan struct{})
	var count atomic.Int32
	_, err = b.Subscribe("hermes/tts/say", func(Envelope) {
		<-release
		count.Add(1)
	})
	require.NoError(t, err)

	const n = 100
	for i := 0; i < n; i++ {
		require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))
	}
	require.Eventually(t, func() bool { return b.Pending() == n-1 }, 2*time.Second, 5*time.Millisecond)

	close(release)
	require.Eventually(t, func() bool { return count.Load() == n }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, b.Pending())
}

func TestBus_Unsubscribe(t *testing.T) {
	b := newMemoryBus(t, t.Name())

	var count atomic.Int32
	sub, err := b.Subscribe("hermes/tts/say", func(Envelope) { count.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, "hermes/tts/say", sub.Filter())
	assert.Equal(t, 1, b.SubscriptionCount())

	sub.Unsubscribe()
	assert.Equal(t, 0, b.SubscriptionCount())

	require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load())
}

func TestBus_UnsubscribeWaitsForRunningHandler(t *testing.T) {
	b := newMemoryBus(t, t.Name())

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	sub, err := b.Subscribe("hermes/tts/say", func(Envelope) {
		close(started)
		<-release
		finished.Store(true)
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))
	<-started

	done := make(chan struct{})
	go func() {
		sub.Unsubscribe()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("unsubscribe returned while handler was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-done
	assert.True(t, finished.Load())
}

func TestBus_HandlerPanicIsContained(t *testing.T) {
	b := newMemoryBus(t, t.Name())

	var count atomic.Int32
	_, err := b.Subscribe("hermes/tts/say", func(Envelope) {
		count.Add(1)
		panic("boom")
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))
	require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))

	require.Eventually(t, func() bool { return count.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestBus_Close(t *testing.T) {
	b, err := New(context.Background(), NewMemoryTransport(t.Name(), 4), Options{})
	require.NoError(t, err)

	var mu sync.Mutex
	var afterClose bool
	closed := false
	_, err = b.Subscribe("#", func(Envelope) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			afterClose = true
		}
	})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))
	}
	require.NoError(t, b.Close())
	mu.Lock()
	closed = true
	mu.Unlock()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.False(t, afterClose)
	mu.Unlock()

	assert.ErrorIs(t, b.Publish(context.Background(), "hermes/tts/say", nil), ErrClosed)
	_, err = b.Subscribe("#", func(Envelope) {})
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, b.Close())
}

func TestBus_SubscribeValidation(t *testing.T) {
	b := newMemoryBus(t, t.Name())

	_, err := b.Subscribe("", func(Envelope) {})
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = b.Subscribe("hermes/tts/say", nil)
	assert.Error(t, err)
}

func TestBus_PublishTimeout(t *testing.T) {
	// A member that never starts fills its inbox and blocks publishers
	stalled := NewMemoryTransport(t.Name(), 1)
	defer stalled.Close()

	b, err := New(context.Background(), NewMemoryTransport(t.Name(), 8), Options{
		PublishTimeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))
	err = b.Publish(context.Background(), "hermes/tts/say", nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestOpen_Memory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bus.URL = "mem://" + t.Name()

	b, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer b.Close()

	got := make(chan struct{}, 1)
	_, err = b.Subscribe("hermes/tts/say", func(Envelope) { got <- struct{}{} })
	require.NoError(t, err)
	require.NoError(t, b.Publish(context.Background(), "hermes/tts/say", nil))

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery")
	}
}

func TestNewTransport_UnknownScheme(t *testing.T) {
	cfg := config.DefaultConfig()

	for _, url := range []string{"amqp://localhost", "localhost:1883"} {
		cfg.Bus.URL = url
		_, err := NewTransport(context.Background(), cfg, nil)
		assert.ErrorIs(t, err, ErrUnknownScheme, url)
	}
}

func TestNewTransport_KafkaNeedsBroker(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bus.URL = "kafka:///voice"

	_, err := NewTransport(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestNewTransport_Kafka(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bus.URL = "kafka://broker1:9092, broker2:9092"

	tr, err := NewTransport(context.Background(), cfg, nil)
	require.NoError(t, err)

	kt, ok := tr.(*KafkaTransport)
	require.True(t, ok)
	assert.Equal(t, config.DefaultKafkaTopic, kt.topic)
	assert.Equal(t, config.DefaultKafkaTopic, kt.writer.Topic)
}

func TestKafkaTransport_GroupReader(t *testing.T) {
	kt, err := NewKafkaTransport([]string{"broker1:9092"}, "hermes", "skills", nil)
	require.NoError(t, err)
	defer kt.Close()

	readers, err := kt.openReaders(context.Background())
	require.NoError(t, err)
	require.Len(t, readers, 1)
	kt.readers = readers

	cfg := readers[0].Config()
	assert.Equal(t, "skills", cfg.GroupID)
	assert.Equal(t, "hermes", cfg.Topic)
	assert.Equal(t, kafka.LastOffset, cfg.StartOffset)
}

func TestKafkaTransport_StartWithoutBroker(t *testing.T) {
	kt, err := NewKafkaTransport([]string{"127.0.0.1:1"}, "hermes", "", nil)
	require.NoError(t, err)
	defer kt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = kt.Start(ctx, func(Envelope) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach kafka")
	assert.Empty(t, kt.readers)
}

func TestEnvelopeFromSignal(t *testing.T) {
	now := time.Now()
	sig := &dbus.Signal{
		Path: "/ai/snips/Hermes",
		Name: "ai.snips.Hermes.Message",
		Body: []any{"01J", "hermes/tts/say", []byte(`{}`), now.UnixNano()},
	}

	env, err := envelopeFromSignal(sig)
	require.NoError(t, err)
	assert.Equal(t, "01J", env.ID)
	assert.Equal(t, "hermes/tts/say", env.Topic)
	assert.Equal(t, []byte(`{}`), env.Payload)
	assert.True(t, env.Time.Equal(time.Unix(0, now.UnixNano())))

	_, err = envelopeFromSignal(&dbus.Signal{Body: []any{"id", "topic"}})
	assert.Error(t, err)

	_, err = envelopeFromSignal(&dbus.Signal{Body: []any{"id", 7, []byte{}, int64(0)}})
	assert.Error(t, err)
}
