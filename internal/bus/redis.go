package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisTransport publishes envelopes as JSON on Redis pub/sub channels named
// prefix + topic and pattern-subscribes to prefix*.
type RedisTransport struct {
	client *redis.Client
	prefix string
	logger *slog.Logger

	pubsub *redis.PubSub
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewRedisTransport connects to the server at rawURL.
func NewRedisTransport(ctx context.Context, rawURL, prefix string, logger *slog.Logger) (*RedisTransport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opt.Addr, err)
	}

	return &RedisTransport{
		client: client,
		prefix: prefix,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// Send publishes env on its channel.
func (t *RedisTransport) Send(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	return t.client.Publish(ctx, t.prefix+env.Topic, data).Err()
}

// Start subscribes to every channel under the prefix.
func (t *RedisTransport) Start(ctx context.Context, deliver func(Envelope)) error {
	t.pubsub = t.client.PSubscribe(ctx, t.prefix+"*")
	// Wait for the subscription to be confirmed so no early publish is lost
	if _, err := t.pubsub.Receive(ctx); err != nil {
		_ = t.pubsub.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	ch := t.pubsub.Channel()
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					t.logger.Warn("malformed envelope", "channel", msg.Channel, "error", err)
					continue
				}
				if env.Topic == "" {
					env.Topic = strings.TrimPrefix(msg.Channel, t.prefix)
				}
				deliver(env)
			case <-t.done:
				return
			}
		}
	}()

	t.logger.Info("started redis transport", "pattern", t.prefix+"*")
	return nil
}

// Close unsubscribes and closes the client.
func (t *RedisTransport) Close() error {
	var err error
	t.once.Do(func() {
		close(t.done)
		if t.pubsub != nil {
			_ = t.pubsub.Close()
		}
		t.wg.Wait()
		err = t.client.Close()
	})
	return err
}
