package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaTransport carries every hermes topic on one Kafka topic, keyed by
// the hermes topic so messages of one topic stay ordered on one partition.
//
// Without a consumer group each bus reads every partition itself, starting
// at the end offsets found by Start, so everything sent after Start returns
// is delivered. With a group the partitions are shared between the group's
// buses and envelopes sent before the group first joins are not seen.
type KafkaTransport struct {
	brokers []string
	topic   string
	groupID string
	dialer  *kafka.Dialer
	writer  *kafka.Writer
	logger  *slog.Logger

	readers []*kafka.Reader
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
}

// NewKafkaTransport creates the writer for topic on brokers. Nothing is
// dialled until Start.
func NewKafkaTransport(brokers []string, topic, groupID string, logger *slog.Logger) (*KafkaTransport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(brokers) == 0 {
		return nil, errors.New("kafka transport requires at least one broker")
	}
	if topic == "" {
		return nil, errors.New("kafka transport requires a topic")
	}

	clientID := "hermes-" + uuid.NewString()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireOne,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		Transport:    &kafka.Transport{ClientID: clientID},
	}

	return &KafkaTransport{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		dialer:  &kafka.Dialer{ClientID: clientID, Timeout: 10 * time.Second},
		writer:  writer,
		logger:  logger.With("client_id", clientID),
	}, nil
}

// Send writes env keyed by its topic.
func (t *KafkaTransport) Send(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	return t.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(env.Topic),
		Value: data,
		Time:  env.Time.UTC(),
	})
}

// Start opens the readers and pumps their messages until Close.
func (t *KafkaTransport) Start(ctx context.Context, deliver func(Envelope)) error {
	readers, err := t.openReaders(ctx)
	if err != nil {
		return err
	}
	t.readers = readers

	pumpCtx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	for _, r := range readers {
		t.wg.Add(1)
		go t.pump(pumpCtx, r, deliver)
	}

	t.logger.Info("started kafka transport", "topic", t.topic, "group_id", t.groupID, "readers", len(readers))
	return nil
}

func (t *KafkaTransport) readerConfig() kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:  t.brokers,
		Topic:    t.topic,
		Dialer:   t.dialer,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	}
}

func (t *KafkaTransport) openReaders(ctx context.Context) ([]*kafka.Reader, error) {
	if t.groupID != "" {
		cfg := t.readerConfig()
		cfg.GroupID = t.groupID
		cfg.StartOffset = kafka.LastOffset
		return []*kafka.Reader{kafka.NewReader(cfg)}, nil
	}

	conn, err := t.dialer.DialContext(ctx, "tcp", t.brokers[0])
	if err != nil {
		return nil, fmt.Errorf("failed to reach kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(t.topic)
	if err != nil {
		return nil, fmt.Errorf("failed to read partitions of %s: %w", t.topic, err)
	}

	readers := make([]*kafka.Reader, 0, len(partitions))
	closeAll := func() {
		for _, r := range readers {
			_ = r.Close()
		}
	}
	for _, p := range partitions {
		last, err := t.lastOffset(ctx, p.ID)
		if err != nil {
			closeAll()
			return nil, err
		}

		cfg := t.readerConfig()
		cfg.Partition = p.ID
		r := kafka.NewReader(cfg)
		if err := r.SetOffset(last); err != nil {
			_ = r.Close()
			closeAll()
			return nil, fmt.Errorf("failed to seek partition %d: %w", p.ID, err)
		}
		readers = append(readers, r)
	}
	return readers, nil
}

func (t *KafkaTransport) lastOffset(ctx context.Context, partition int) (int64, error) {
	leader, err := t.dialer.DialLeader(ctx, "tcp", t.brokers[0], t.topic, partition)
	if err != nil {
		return 0, fmt.Errorf("failed to reach leader of partition %d: %w", partition, err)
	}
	defer leader.Close()

	last, err := leader.ReadLastOffset()
	if err != nil {
		return 0, fmt.Errorf("failed to read end of partition %d: %w", partition, err)
	}
	return last, nil
}

func (t *KafkaTransport) pump(ctx context.Context, r *kafka.Reader, deliver func(Envelope)) {
	defer t.wg.Done()
	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			t.logger.Warn("kafka read failed", "topic", t.topic, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		var env Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			t.logger.Warn("malformed envelope", "key", string(msg.Key), "partition", msg.Partition, "offset", msg.Offset, "error", err)
			continue
		}
		deliver(env)
	}
}

// Close stops the readers and flushes the writer.
func (t *KafkaTransport) Close() error {
	var err error
	t.once.Do(func() {
		if t.cancel != nil {
			t.cancel()
		}
		t.wg.Wait()

		errs := make([]error, 0, len(t.readers)+1)
		for _, r := range t.readers {
			errs = append(errs, r.Close())
		}
		errs = append(errs, t.writer.Close())
		err = errors.Join(errs...)
	})
	return err
}
