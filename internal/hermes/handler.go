// Package hermes is the client library of the hermes protocol. A Handler
// wraps a bus connection and hands out one facade per domain; facades
// publish ontology messages on their topics and subscribe callbacks to
// them.
package hermes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/hermes/internal/bus"
	"github.com/jmylchreest/hermes/internal/config"
)

// Errors returned by handlers and facades.
var (
	ErrNilCallback   = errors.New("callback cannot be nil")
	ErrFacadeClosed  = errors.New("facade is closed")
	ErrHandlerClosed = errors.New("handler is closed")
	ErrWildcardTopic = errors.New("cannot publish on a topic filter")
)

// Callback is invoked once per received message. It may run concurrently
// on any bus worker goroutine.
type Callback[T any] func(msg *T)

// Handler is the root of a hermes connection. The handler and every facade
// obtained from it share the bus; the bus closes once the handler and all
// its facades are closed.
type Handler struct {
	bus    *bus.Bus
	logger *slog.Logger

	mu         sync.Mutex
	refs       int
	rootClosed bool
	onClose    []func()
}

// Open connects to the bus configured in cfg.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	b, err := bus.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open bus %s: %w", cfg.Bus.URL, err)
	}
	return New(b, logger), nil
}

// New creates a handler owning b.
func New(b *bus.Bus, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		bus:    b,
		logger: logger,
		refs:   1,
	}
}

// Bus returns the underlying bus.
func (h *Handler) Bus() *bus.Bus {
	return h.bus
}

// OnClose registers fn to run after the bus has been closed.
func (h *Handler) OnClose(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClose = append(h.onClose, fn)
}

// Close releases the handler's own reference. Facades obtained earlier stay
// usable until they are closed too.
func (h *Handler) Close() error {
	h.mu.Lock()
	if h.rootClosed {
		h.mu.Unlock()
		return nil
	}
	h.rootClosed = true
	h.mu.Unlock()

	return h.release()
}

func (h *Handler) retain() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refs++
}

func (h *Handler) release() error {
	h.mu.Lock()
	h.refs--
	last := h.refs == 0
	hooks := h.onClose
	if last {
		h.onClose = nil
	}
	h.mu.Unlock()

	if !last {
		return nil
	}

	h.logger.Debug("last reference released, closing bus")
	err := h.bus.Close()
	for _, fn := range hooks {
		fn()
	}
	return err
}
