package bus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmylchreest/hermes/internal/config"
)

// Open creates the transport named by cfg.Bus.URL and starts a bus on it.
//
//	mem://name                      in-process hub
//	dbus://session, dbus://system   D-Bus signals
//	redis://host:port/db            Redis pub/sub
//	kafka://host:port,host:port/t   Kafka topic t
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t, err := NewTransport(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	b, err := New(ctx, t, Options{
		Workers:        cfg.Bus.Workers,
		QueueSize:      cfg.Bus.QueueSize,
		PublishTimeout: cfg.Bus.PublishTimeout.Duration(),
		Logger:         logger,
	})
	if err != nil {
		_ = t.Close()
		return nil, err
	}
	return b, nil
}

// NewTransport creates the transport named by cfg.Bus.URL without starting it.
func NewTransport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Transport, error) {
	raw := cfg.Bus.URL
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, raw)
	}

	switch strings.ToLower(scheme) {
	case "mem":
		name := strings.Trim(rest, "/")
		if name == "" {
			name = "default"
		}
		return NewMemoryTransport(name, cfg.Bus.QueueSize), nil

	case "dbus":
		return NewDBusTransport(strings.Trim(rest, "/"), cfg.DBus.Path, cfg.DBus.Interface, logger)

	case "redis", "rediss":
		return NewRedisTransport(ctx, raw, cfg.Redis.Prefix, logger)

	case "kafka":
		hosts, topic, _ := strings.Cut(rest, "/")
		topic = strings.Trim(topic, "/")
		if topic == "" {
			topic = cfg.Kafka.Topic
		}
		var brokers []string
		for _, h := range strings.Split(hosts, ",") {
			if h = strings.TrimSpace(h); h != "" {
				brokers = append(brokers, h)
			}
		}
		return NewKafkaTransport(brokers, topic, cfg.Kafka.GroupID, logger)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}
