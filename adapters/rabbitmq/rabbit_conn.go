package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
)

// Concrete AMQP connection-backed constructor and publisher wrapper with auto-reconnect.

const exchangeKind = "topic"

type Config struct {
	URL             string
	ConnTimeout     time.Duration
	CommandExchange string
	EventExchange   string
	// Product is reported to the broker in the connection properties.
	Product string
	Logger  *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.CommandExchange == "" {
		c.CommandExchange = DefaultCommandExchange
	}

	if c.EventExchange == "" {
		c.EventExchange = DefaultEventExchange
	}

	if c.Product == "" {
		c.Product = "scg-message-catalog"
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	return c
}

// amqpConn and amqpChannel are the parts of *amqp.Connection and *amqp.Channel the publisher uses.
type amqpConn interface {
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	Close() error
}

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type reconnectingPublisher struct {
	cfg    Config
	dial   func() (amqpConn, amqpChannel, error)
	mu     sync.RWMutex
	conn   amqpConn
	ch     amqpChannel
	closed chan struct{}
	ready  chan struct{} // closed once a channel is available; replaced on disconnect
}

func newReconnectingPublisher(cfg Config) (*reconnectingPublisher, func()) {
	rp := &reconnectingPublisher{
		cfg:    cfg,
		closed: make(chan struct{}),
		ready:  make(chan struct{}),
	}
	rp.dial = rp.dialAMQP
	go rp.run()

	cleanup := func() { rp.close() }

	return rp, cleanup
}

func (rp *reconnectingPublisher) Publish(ctx context.Context, m PubMsg) error {
	// Fast path: ensure channel available
	rp.mu.RLock()
	ch, ready := rp.ch, rp.ready
	rp.mu.RUnlock()

	if ch == nil {
		// Wait for readiness or context cancellation
		select {
		case <-ready:
		case <-rp.closed:
			return fmt.Errorf("%w: rabbitmq publisher closed", cerr.ErrPublishFailed)
		case <-ctx.Done():
			return ctx.Err()
		}

		rp.mu.RLock()
		ch = rp.ch
		rp.mu.RUnlock()

		if ch == nil {
			return fmt.Errorf("%w: rabbitmq not connected", cerr.ErrPublishFailed)
		}
	}

	return ch.PublishWithContext(ctx, m.Exchange, m.RoutingKey, false, false, publishing(m, amqp.Persistent))
}

func (rp *reconnectingPublisher) dialAMQP() (amqpConn, amqpChannel, error) {
	conn, err := amqp.DialConfig(rp.cfg.URL, amqp.Config{
		Locale:     "en_US",
		Properties: amqp.Table{"product": rp.cfg.Product},
		Dial:       amqp.DefaultDial(rp.cfg.ConnTimeout),
	})
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	for _, name := range []string{rp.cfg.CommandExchange, rp.cfg.EventExchange} {
		if err := ch.ExchangeDeclare(name, exchangeKind, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()

			return nil, nil, err
		}
	}

	return conn, ch, nil
}

func (rp *reconnectingPublisher) run() {
	// #nosec G404 -- non-crypto RNG is acceptable for backoff jitter
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // non-crypto RNG is acceptable for backoff jitter
	bo := backoff{next: time.Second, max: 30 * time.Second}

	for {
		select {
		case <-rp.closed:
			return
		default:
		}

		conn, ch, err := rp.dial()
		if err != nil {
			sleep := bo.step(rng)
			rp.cfg.Logger.Warn("rabbitmq: connect failed", "error", err, "retry_in", sleep)

			t := time.NewTimer(sleep)
			select {
			case <-rp.closed:
				t.Stop()
				return
			case <-t.C:
			}

			continue
		}

		bo.reset()

		if !rp.adopt(conn, ch) {
			_ = ch.Close()
			_ = conn.Close()

			return
		}

		rp.cfg.Logger.Info("rabbitmq: connected", "commands", rp.cfg.CommandExchange, "events", rp.cfg.EventExchange)

		// Block on connection close notifications to trigger reconnect
		notify := conn.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-rp.closed:
			return
		case amqpErr := <-notify:
			rp.cfg.Logger.Warn("rabbitmq: connection lost", "error", amqpErr)

			rp.mu.Lock()
			rp.ch = nil
			rp.conn = nil
			rp.ready = make(chan struct{})
			rp.mu.Unlock()

			_ = ch.Close()
			_ = conn.Close()
		}
	}
}

// adopt installs a freshly dialed connection. It reports false when the publisher was closed while
// dialing, leaving conn and ch with the caller.
func (rp *reconnectingPublisher) adopt(conn amqpConn, ch amqpChannel) bool {
	rp.mu.Lock()
	defer rp.mu.Unlock()

	select {
	case <-rp.closed:
		return false
	default:
	}

	rp.conn = conn
	rp.ch = ch
	close(rp.ready)

	return true
}

func (rp *reconnectingPublisher) close() {
	rp.mu.Lock()
	defer rp.mu.Unlock()

	select {
	case <-rp.closed:
		// already closed
		return
	default:
		close(rp.closed)
	}

	if rp.ch != nil {
		_ = rp.ch.Close()
		rp.ch = nil
	}

	if rp.conn != nil {
		_ = rp.conn.Close()
		rp.conn = nil
	}
}

// backoff is an exponential schedule with jitter, capped at max.
type backoff struct {
	next time.Duration
	max  time.Duration
}

func (b *backoff) step(rng *rand.Rand) time.Duration {
	jitter := time.Duration(rng.Int63n(int64(b.next/2) + 1))

	sleep := b.next + jitter/2
	if sleep > b.max {
		sleep = b.max
	}

	if b.next < b.max {
		b.next *= 2
		if b.next > b.max {
			b.next = b.max
		}
	}

	return sleep
}

func (b *backoff) reset() { b.next = time.Second }

// NewWithAMQPConn dials RabbitMQ with auto-reconnect, declares the command and event exchanges, and
// returns an Adapter and cleanup. Publishing blocks until the first connection succeeds or the
// caller's context ends.
func NewWithAMQPConn(cfg Config) (*Adapter, func(), error) {
	if cfg.URL == "" {
		return nil, nil, fmt.Errorf("%w: rabbitmq url required", cerr.ErrTransportNotConfigured)
	}

	cfg = cfg.withDefaults()
	pub, cleanup := newReconnectingPublisher(cfg)

	ad := New(pub)
	ad.CommandExchange = cfg.CommandExchange
	ad.EventExchange = cfg.EventExchange

	return ad, cleanup, nil
}
