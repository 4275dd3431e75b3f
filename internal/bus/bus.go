package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Transport moves envelopes between buses. Send returns once the envelope
// is accepted; Start hands every inbound envelope, including the bus's own
// publications, to deliver until Close returns.
type Transport interface {
	Send(ctx context.Context, env Envelope) error
	Start(ctx context.Context, deliver func(Envelope)) error
	Close() error
}

// Handler processes one envelope on a worker goroutine.
type Handler func(Envelope)

// Options sizes the dispatcher. QueueSize is the backlog past which a warning
// is logged; the backlog itself is unbounded so that the transport never
// waits for handlers.
type Options struct {
	Workers        int
	QueueSize      int
	PublishTimeout time.Duration
	Logger         *slog.Logger
}

type job struct {
	sub *Subscription
	env Envelope
}

// Bus dispatches envelopes from a transport to topic subscriptions.
type Bus struct {
	transport      Transport
	logger         *slog.Logger
	publishTimeout time.Duration

	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool

	qmu       sync.Mutex
	qcond     *sync.Cond
	pending   []job
	queueWarn int
	backlog   bool
	draining  bool
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// New starts a bus on top of t.
func New(ctx context.Context, t Transport, opts Options) (*Bus, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}

	b := &Bus{
		transport:      t,
		logger:         logger,
		publishTimeout: opts.PublishTimeout,
		subs:           make(map[uint64]*Subscription),
		queueWarn:      opts.QueueSize,
	}
	b.qcond = sync.NewCond(&b.qmu)

	for i := 0; i < opts.Workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}

	if err := t.Start(ctx, b.deliver); err != nil {
		b.stopWorkers()
		return nil, fmt.Errorf("failed to start transport: %w", err)
	}

	logger.Debug("bus started", "workers", opts.Workers, "queue_size", opts.QueueSize)
	return b, nil
}

// Publish sends payload on topic. It returns once the transport accepted
// the envelope, not once subscribers ran.
func (b *Bus) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	env, err := NewEnvelope(topic, payload)
	if err != nil {
		return err
	}

	if b.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.publishTimeout)
		defer cancel()
	}

	if err := b.transport.Send(ctx, env); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", topic, err)
	}
	b.logger.Debug("published", "topic", topic, "id", env.ID, "bytes", len(payload))
	return nil
}

// Subscribe registers handler for every envelope whose topic matches filter.
func (b *Bus) Subscribe(filter string, handler Handler) (*Subscription, error) {
	if filter == "" {
		return nil, ErrEmptyTopic
	}
	if handler == nil {
		return nil, fmt.Errorf("nil handler for %s", filter)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	b.nextID++
	sub := &Subscription{
		id:      b.nextID,
		filter:  filter,
		handler: handler,
		bus:     b,
		active:  true,
	}
	b.subs[sub.id] = sub

	b.logger.Debug("subscribed", "filter", filter, "subscription", sub.id)
	return sub, nil
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close stops the transport and waits for queued deliveries to finish.
// No handler runs after Close returns.
func (b *Bus) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()

		// Stops deliver being called
		b.closeErr = b.transport.Close()

		b.stopWorkers()

		b.mu.Lock()
		b.subs = make(map[uint64]*Subscription)
		b.mu.Unlock()

		b.logger.Debug("bus closed")
	})
	return b.closeErr
}

func (b *Bus) deliver(env Envelope) {
	b.mu.RLock()
	var matched []*Subscription
	for _, sub := range b.subs {
		if Match(sub.filter, env.Topic) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	if len(matched) == 0 {
		return
	}

	b.qmu.Lock()
	for _, sub := range matched {
		b.pending = append(b.pending, job{sub: sub, env: env})
	}
	n := len(b.pending)
	warn := n > b.queueWarn && !b.backlog
	if warn {
		b.backlog = true
	}
	b.qmu.Unlock()

	if warn {
		b.logger.Warn("dispatch backlog", "pending", n, "queue_size", b.queueWarn)
	}
	for range matched {
		b.qcond.Signal()
	}
}

// Pending returns the number of deliveries waiting for a worker.
func (b *Bus) Pending() int {
	b.qmu.Lock()
	defer b.qmu.Unlock()
	return len(b.pending)
}

func (b *Bus) worker() {
	defer b.wg.Done()
	for {
		b.qmu.Lock()
		for len(b.pending) == 0 && !b.draining {
			b.qcond.Wait()
		}
		if len(b.pending) == 0 {
			b.qmu.Unlock()
			return
		}
		j := b.pending[0]
		b.pending[0] = job{}
		b.pending = b.pending[1:]
		if len(b.pending) == 0 {
			b.pending = nil
			b.backlog = false
		}
		b.qmu.Unlock()

		j.sub.run(j.env, b.logger)
	}
}

// stopWorkers lets the workers finish what is queued and waits for them.
func (b *Bus) stopWorkers() {
	b.qmu.Lock()
	b.draining = true
	b.qmu.Unlock()
	b.qcond.Broadcast()
	b.wg.Wait()
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Subscription is a registered handler.
type Subscription struct {
	id      uint64
	filter  string
	handler Handler
	bus     *Bus

	// Held for reading while the handler runs
	mu     sync.RWMutex
	active bool
}

// Filter returns the topic filter of the subscription.
func (s *Subscription) Filter() string {
	return s.filter
}

// Unsubscribe removes the subscription and waits for running invocations
// of its handler. It must not be called from that handler.
func (s *Subscription) Unsubscribe() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()

	s.bus.remove(s.id)
}

func (s *Subscription) run(env Envelope, logger *slog.Logger) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.active {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("subscription handler panicked", "filter", s.filter, "topic", env.Topic, "panic", r)
		}
	}()
	s.handler(env)
}
