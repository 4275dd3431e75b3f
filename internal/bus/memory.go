package bus

import (
	"context"
	"errors"
	"sync"
)

// Memory transports with the same name share one hub, so buses opened in
// one process on mem://name see each other's traffic.
var hubs = struct {
	sync.Mutex
	m map[string]*hub
}{m: make(map[string]*hub)}

type hub struct {
	name    string
	mu      sync.RWMutex
	members map[*MemoryTransport]struct{}
}

// MemoryTransport is an in-process transport.
type MemoryTransport struct {
	hub   *hub
	inbox chan Envelope
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewMemoryTransport joins the named hub. queueSize bounds the envelopes
// waiting to be dispatched by this member.
func NewMemoryTransport(name string, queueSize int) *MemoryTransport {
	if queueSize <= 0 {
		queueSize = 1
	}

	t := &MemoryTransport{
		inbox: make(chan Envelope, queueSize),
		done:  make(chan struct{}),
	}

	hubs.Lock()
	defer hubs.Unlock()

	h, ok := hubs.m[name]
	if !ok {
		h = &hub{name: name, members: make(map[*MemoryTransport]struct{})}
		hubs.m[name] = h
	}
	h.mu.Lock()
	h.members[t] = struct{}{}
	h.mu.Unlock()
	t.hub = h

	return t
}

// Send queues env on every member of the hub.
func (t *MemoryTransport) Send(ctx context.Context, env Envelope) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}

	t.hub.mu.RLock()
	members := make([]*MemoryTransport, 0, len(t.hub.members))
	for m := range t.hub.members {
		members = append(members, m)
	}
	t.hub.mu.RUnlock()

	for _, m := range members {
		select {
		case m.inbox <- env:
		case <-m.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Start pumps inbound envelopes to deliver.
func (t *MemoryTransport) Start(_ context.Context, deliver func(Envelope)) error {
	select {
	case <-t.done:
		return errors.New("memory transport already closed")
	default:
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case env := <-t.inbox:
				deliver(env)
			case <-t.done:
				return
			}
		}
	}()
	return nil
}

// Close leaves the hub and stops the pump.
func (t *MemoryTransport) Close() error {
	t.once.Do(func() {
		hubs.Lock()
		t.hub.mu.Lock()
		delete(t.hub.members, t)
		if len(t.hub.members) == 0 {
			delete(hubs.m, t.hub.name)
		}
		t.hub.mu.Unlock()
		hubs.Unlock()

		close(t.done)
		t.wg.Wait()
	})
	return nil
}
