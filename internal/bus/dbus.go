package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// DBusMember is the signal member carrying envelopes.
const DBusMember = "Message"

// DBusTransport broadcasts envelopes as D-Bus signals. Every bus connected
// to the same message bus with a match on the same path and interface
// receives them, including the sender.
type DBusTransport struct {
	conn   *dbus.Conn
	path   dbus.ObjectPath
	iface  string
	logger *slog.Logger

	signals chan *dbus.Signal
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewDBusTransport opens a private connection to the session or system bus.
func NewDBusTransport(busName, path, iface string, logger *slog.Logger) (*DBusTransport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !dbus.ObjectPath(path).IsValid() {
		return nil, fmt.Errorf("invalid D-Bus object path %q", path)
	}

	var (
		conn *dbus.Conn
		err  error
	)
	switch busName {
	case "", "session":
		conn, err = dbus.ConnectSessionBus()
	case "system":
		conn, err = dbus.ConnectSystemBus()
	default:
		return nil, fmt.Errorf("unknown D-Bus bus %q: must be session or system", busName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s bus: %w", busName, err)
	}

	return &DBusTransport{
		conn:    conn,
		path:    dbus.ObjectPath(path),
		iface:   iface,
		logger:  logger,
		signals: make(chan *dbus.Signal, 100),
		done:    make(chan struct{}),
	}, nil
}

// Send emits env as a signal.
func (t *DBusTransport) Send(_ context.Context, env Envelope) error {
	err := t.conn.Emit(t.path, t.iface+"."+DBusMember, env.ID, env.Topic, env.Payload, env.Time.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to emit signal: %w", err)
	}
	return nil
}

// Start adds the match rule and forwards matching signals to deliver.
func (t *DBusTransport) Start(_ context.Context, deliver func(Envelope)) error {
	err := t.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(t.path),
		dbus.WithMatchInterface(t.iface),
		dbus.WithMatchMember(DBusMember),
	)
	if err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}
	t.conn.Signal(t.signals)

	t.wg.Add(1)
	go t.processSignals(deliver)

	t.logger.Info("started D-Bus transport", "path", t.path, "interface", t.iface)
	return nil
}

func (t *DBusTransport) processSignals(deliver func(Envelope)) {
	defer t.wg.Done()
	name := t.iface + "." + DBusMember

	for {
		select {
		case sig, ok := <-t.signals:
			if !ok {
				return
			}
			if sig.Path != t.path || sig.Name != name {
				continue
			}
			env, err := envelopeFromSignal(sig)
			if err != nil {
				t.logger.Warn("malformed hermes signal", "sender", sig.Sender, "error", err)
				continue
			}
			deliver(env)
		case <-t.done:
			return
		}
	}
}

// envelopeFromSignal parses Message(id, topic, payload, unix_nanos).
func envelopeFromSignal(sig *dbus.Signal) (Envelope, error) {
	if len(sig.Body) < 4 {
		return Envelope{}, fmt.Errorf("expected 4 arguments, got %d", len(sig.Body))
	}

	var (
		env Envelope
		ok  bool
	)
	if env.ID, ok = sig.Body[0].(string); !ok {
		return Envelope{}, fmt.Errorf("invalid id type %T", sig.Body[0])
	}
	if env.Topic, ok = sig.Body[1].(string); !ok {
		return Envelope{}, fmt.Errorf("invalid topic type %T", sig.Body[1])
	}
	if env.Payload, ok = sig.Body[2].([]byte); !ok {
		return Envelope{}, fmt.Errorf("invalid payload type %T", sig.Body[2])
	}
	nanos, ok := sig.Body[3].(int64)
	if !ok {
		return Envelope{}, fmt.Errorf("invalid time type %T", sig.Body[3])
	}
	env.Time = time.Unix(0, nanos)
	return env, nil
}

// Close removes the signal channel and closes the connection.
func (t *DBusTransport) Close() error {
	var err error
	t.once.Do(func() {
		t.conn.RemoveSignal(t.signals)
		close(t.done)
		t.wg.Wait()
		err = t.conn.Close()
	})
	return err
}
