package remote

import (
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/acme-bot/remote-core/internal/infrastructure/config"
)

// ConnState is the connection lifecycle state of a Client.
//
// A session is either fully connected or it is not; whether a
// subscription is active is tracked separately, because every reconnect
// briefly leaves the session connected but unsubscribed until Bootstrap
// runs.
type ConnState int

const (
	// ConnDisconnected is the initial state, before Activate or after Close.
	ConnDisconnected ConnState = iota

	// ConnConnecting means Activate has handed off to the transport but no
	// connection has been established yet.
	ConnConnecting

	// ConnConnected means the transport session is established and
	// publish/subscribe may proceed.
	ConnConnected
)

// String returns a human-readable name for the state.
func (s ConnState) String() string {
	switch s {
	case ConnConnecting:
		return "connecting"
	case ConnConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// MessageHandler is invoked once per inbound message body delivered on a
// subscribed topic. Handlers run on a transport-controlled goroutine and
// may re-enter the session they were registered on.
type MessageHandler func(payload []byte)

// Broker is the minimal transport surface consumed by the Player.
// *Client satisfies it; tests substitute a fake.
type Broker interface {
	Publish(topic string, payload []byte) error
	Subscribe(topic string, handler MessageHandler) error
}

// Logger interface for connection and handler logging.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

// subscription is the single live subscription held by a Client. The
// generation counter lets deliveries racing a replacement or teardown be
// dropped instead of invoking a stale handler.
type subscription struct {
	topic   string
	handler MessageHandler
	gen     uint64
}

// Client owns the broker transport handle for one remote control session.
//
// It re-expresses the transport's event callbacks as an explicit state
// machine (disconnected → connecting → connected) guarded by a single
// mutex. The on-connect callback, inbound-message handlers, and
// command-issuing callers all funnel through that mutex, and callbacks
// are always invoked with the mutex released so they can re-enter the
// session without deadlocking.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client pahomqtt.Client

	mu     sync.Mutex
	state  ConnState
	sub    *subscription
	subGen uint64
	closed bool

	onConnect func()

	logger Logger
}

const (
	// defaultConnectTimeout bounds a single transport connection attempt.
	defaultConnectTimeout = 10 * time.Second

	// defaultKeepAlive is the transport keepalive interval.
	defaultKeepAlive = 60 * time.Second

	// defaultDisconnectQuiesce is the time in milliseconds to wait for
	// in-flight operations on Close.
	defaultDisconnectQuiesce = 250
)

// NewClient builds a session client for the given broker credentials.
//
// The client starts disconnected; call Activate to begin connecting.
// Auto-reconnect is handled by the transport, and the on-connect callback
// (see SetOnConnect) fires once per physical connection, including every
// reconnection after a transport-level drop.
func NewClient(creds Credentials, cfg config.SessionConfig, logger Logger) *Client {
	c := &Client{logger: logger}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(creds.BrokerURL)
	opts.SetClientID("acme-remote-" + uuid.NewString())

	if creds.Login != "" {
		opts.SetUsername(creds.Login)
		opts.SetPassword(creds.Password)
	}

	// Commands and snapshots are only meaningful live; never resume a
	// stale broker session.
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	if cfg.Reconnect.InitialDelay > 0 {
		opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	}
	if cfg.Reconnect.MaxDelay > 0 {
		opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)
	}

	connectTimeout := defaultConnectTimeout
	if cfg.ConnectTimeout > 0 {
		connectTimeout = time.Duration(cfg.ConnectTimeout) * time.Second
	}
	opts.SetConnectTimeout(connectTimeout)

	keepAlive := defaultKeepAlive
	if cfg.KeepAlive > 0 {
		keepAlive = time.Duration(cfg.KeepAlive) * time.Second
	}
	opts.SetKeepAlive(keepAlive)

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnect()
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.handleConnectionLost(err)
	})

	c.client = pahomqtt.NewClient(opts)

	return c
}

// Activate begins connecting to the broker. It is idempotent: calling it
// while already connecting or connected has no additional effect.
//
// Activate does not block on the network; connection progress is reported
// through the on-connect callback.
func (c *Client) Activate() {
	c.mu.Lock()
	if c.closed || c.state != ConnDisconnected {
		c.mu.Unlock()
		return
	}
	c.state = ConnConnecting
	c.mu.Unlock()

	token := c.client.Connect()
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			if c.logger != nil {
				c.logger.Warn("broker connection failed", "error", err)
			}
			c.mu.Lock()
			if c.state == ConnConnecting {
				c.state = ConnDisconnected
			}
			c.mu.Unlock()
		}
	}()
}

// handleConnect runs once per established connection, initial or re-established.
func (c *Client) handleConnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = ConnConnected
	callback := c.onConnect
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("broker connection established")
	}

	// Invoked without the session lock held: the callback subscribes and
	// publishes through this same client.
	if callback != nil {
		callback()
	}
}

// handleConnectionLost runs when an established connection drops. The
// transport keeps reconnecting in the background.
func (c *Client) handleConnectionLost(err error) {
	c.mu.Lock()
	if !c.closed {
		c.state = ConnConnecting
	}
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Warn("broker connection lost", "error", err)
	}
}

// Connected reports whether the session is currently connected.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == ConnConnected
}

// State returns the current connection lifecycle state.
func (c *Client) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetOnConnect registers a callback invoked once per successful
// connection establishment, including every reconnect.
func (c *Client) SetOnConnect(callback func()) {
	c.mu.Lock()
	c.onConnect = callback
	c.mu.Unlock()
}

// Publish sends a message body to the given topic.
//
// It fails immediately with ErrNotConnected when the session is not
// connected; it never queues or retries. The message is handed off to the
// transport without waiting for delivery: no acknowledgement is observed,
// matching the one-way command channel.
func (c *Client) Publish(topic string, payload []byte) error {
	c.mu.Lock()
	if c.closed || c.state != ConnConnected {
		c.mu.Unlock()
		return ErrNotConnected
	}
	c.mu.Unlock()

	c.client.Publish(topic, 0, false, payload)
	return nil
}

// Subscribe registers handler for messages delivered on topic.
//
// A session holds at most one live subscription: subscribing again
// replaces the previous one and silently drops delivery from the old
// topic. Fails with ErrNotConnected when the session is not connected.
func (c *Client) Subscribe(topic string, handler MessageHandler) error {
	c.mu.Lock()
	if c.closed || c.state != ConnConnected {
		c.mu.Unlock()
		return ErrNotConnected
	}
	prev := c.sub
	c.subGen++
	sub := &subscription{topic: topic, handler: handler, gen: c.subGen}
	c.sub = sub
	c.mu.Unlock()

	if prev != nil && prev.topic != topic {
		// Best effort: the generation check below already gates delivery.
		c.client.Unsubscribe(prev.topic)
	}

	c.client.Subscribe(topic, 0, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		c.dispatch(sub.gen, msg.Payload())
	})

	return nil
}

// dispatch routes an inbound message to the live subscription handler.
// Deliveries tagged with a superseded generation, or arriving after
// Close, are dropped.
func (c *Client) dispatch(gen uint64, payload []byte) {
	c.mu.Lock()
	if c.closed || c.sub == nil || c.sub.gen != gen {
		c.mu.Unlock()
		return
	}
	handler := c.sub.handler
	c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			if c.logger != nil {
				c.logger.Error("message handler panic recovered", "panic", r)
			}
		}
	}()

	handler(payload)
}

// Close tears the session down. The transport is disconnected if
// currently connected and no callbacks fire afterward. Safe to call more
// than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.state = ConnDisconnected
	c.sub = nil
	c.mu.Unlock()

	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(defaultDisconnectQuiesce)
	}

	return nil
}
