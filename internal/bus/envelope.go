// Package bus is the message bus the hermes facades publish on and
// subscribe to. A Bus owns a Transport that moves envelopes between
// processes, a registry of topic subscriptions and a worker pool that runs
// subscription handlers off the publishing goroutine.
package bus

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Errors returned by the bus.
var (
	ErrClosed        = errors.New("bus is closed")
	ErrUnknownScheme = errors.New("unknown bus url scheme")
	ErrEmptyTopic    = errors.New("topic cannot be empty")
)

// Envelope is one message on the bus.
type Envelope struct {
	ID      string    `json:"id"`
	Topic   string    `json:"topic"`
	Payload []byte    `json:"payload"`
	Time    time.Time `json:"time"`
}

// NewEnvelope creates an envelope with a fresh ULID.
func NewEnvelope(topic string, payload []byte) (Envelope, error) {
	if topic == "" {
		return Envelope{}, ErrEmptyTopic
	}

	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return Envelope{
		ID:      id.String(),
		Topic:   topic,
		Payload: payload,
		Time:    now,
	}, nil
}
