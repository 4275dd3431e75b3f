package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jmylchreest/hermes/internal/bus"
	"github.com/jmylchreest/hermes/internal/ontology"
)

// facade is the state shared by every domain facade: a handler reference
// and the subscriptions made through the facade.
type facade struct {
	h    *Handler
	name string

	mu     sync.Mutex
	subs   []*bus.Subscription
	closed bool
}

func newFacade(h *Handler, name string) *facade {
	h.retain()
	return &facade{h: h, name: name}
}

// Close ends the facade's subscriptions and releases its handler
// reference. It waits for callbacks of the facade that are running and
// must not be called from one of them.
func (f *facade) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	subs := f.subs
	f.subs = nil
	f.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	f.h.logger.Debug("facade closed", "facade", f.name, "subscriptions", len(subs))
	return f.h.release()
}

func (f *facade) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *facade) publishRaw(topic string, payload []byte) error {
	if f.isClosed() {
		return ErrFacadeClosed
	}
	return f.h.bus.Publish(context.Background(), topic, payload)
}

func (f *facade) subscribeRaw(filter string, handler bus.Handler) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFacadeClosed
	}

	sub, err := f.h.bus.Subscribe(filter, handler)
	if err != nil {
		return err
	}
	f.subs = append(f.subs, sub)
	return nil
}

// publish validates msg and publishes its JSON encoding on topic.
func publish[M any](f *facade, topic string, msg *M) error {
	if msg == nil {
		return fmt.Errorf("%s: nil message", topic)
	}
	if err := ontology.Validate(msg); err != nil {
		return fmt.Errorf("invalid message for %s: %w", topic, err)
	}
	if bus.IsFilter(topic) {
		return fmt.Errorf("%w: %s", ErrWildcardTopic, topic)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message for %s: %w", topic, err)
	}
	return f.publishRaw(topic, data)
}

// subscribe decodes every envelope matching filter into M and passes it to
// cb. Envelopes that do not decode are logged and skipped.
func subscribe[M any](f *facade, filter string, cb Callback[M]) error {
	if cb == nil {
		return ErrNilCallback
	}

	logger := f.h.logger
	return f.subscribeRaw(filter, func(env bus.Envelope) {
		msg := new(M)
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, msg); err != nil {
				logger.Warn("dropping undecodable message", "topic", env.Topic, "id", env.ID, "error", err)
				return
			}
		}
		cb(msg)
	})
}

// subscribeEmpty subscribes a callback to a topic whose messages carry no
// payload.
func subscribeEmpty(f *facade, filter string, cb func()) error {
	if cb == nil {
		return ErrNilCallback
	}
	return f.subscribeRaw(filter, func(bus.Envelope) { cb() })
}

// componentFacade adds the version and error topics every component has.
type componentFacade struct {
	*facade
	component ontology.Component
}

// PublishVersionRequest asks the component for its version.
func (c componentFacade) PublishVersionRequest() error {
	return c.publishRaw(ontology.VersionRequestTopic(c.component), nil)
}

// SubscribeVersion receives the component's version answers.
func (c componentFacade) SubscribeVersion(cb Callback[ontology.VersionMessage]) error {
	return subscribe(c.facade, ontology.VersionTopic(c.component), cb)
}

// SubscribeError receives the errors reported by the component.
func (c componentFacade) SubscribeError(cb Callback[ontology.ErrorMessage]) error {
	return subscribe(c.facade, ontology.ErrorTopic(c.component), cb)
}

// componentBackendFacade is the component side of componentFacade.
type componentBackendFacade struct {
	*facade
	component ontology.Component
}

// SubscribeVersionRequest is called for every version request.
func (c componentBackendFacade) SubscribeVersionRequest(cb func()) error {
	return subscribeEmpty(c.facade, ontology.VersionRequestTopic(c.component), cb)
}

// PublishVersion answers a version request.
func (c componentBackendFacade) PublishVersion(msg *ontology.VersionMessage) error {
	return publish(c.facade, ontology.VersionTopic(c.component), msg)
}

// PublishError reports an error of the component.
func (c componentBackendFacade) PublishError(msg *ontology.ErrorMessage) error {
	return publish(c.facade, ontology.ErrorTopic(c.component), msg)
}

func newComponent(h *Handler, name string, c ontology.Component) componentFacade {
	return componentFacade{facade: newFacade(h, name), component: c}
}

func newComponentBackend(h *Handler, name string, c ontology.Component) componentBackendFacade {
	return componentBackendFacade{facade: newFacade(h, name), component: c}
}
