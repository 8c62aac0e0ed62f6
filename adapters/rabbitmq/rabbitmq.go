package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/contract/message"
)

const (
	cmdPrefix = "cmd."

	// DefaultCommandExchange and DefaultEventExchange are the topic exchanges envelopes are routed
	// through unless configured otherwise.
	DefaultCommandExchange = "catalog.commands"
	DefaultEventExchange   = "catalog.events"
)

type PubMsg struct {
	Exchange   string
	RoutingKey string
	MessageID  string
	Type       string
	Timestamp  time.Time
	Body       []byte
	Headers    map[string]string
}

type Publisher interface {
	Publish(ctx context.Context, m PubMsg) error
}

type Adapter struct {
	Publisher       Publisher
	Propagator      message.HeaderPropagator // optional, for context propagation into headers
	CommandExchange string
	EventExchange   string
}

var _ message.Adapter = (*Adapter)(nil)

func New(p Publisher) *Adapter {
	return &Adapter{Publisher: p, CommandExchange: DefaultCommandExchange, EventExchange: DefaultEventExchange}
}

// NewWithPropagator allows configuring a HeaderPropagator for context propagation.
func NewWithPropagator(p Publisher, hp message.HeaderPropagator) *Adapter {
	a := New(p)
	a.Propagator = hp

	return a
}

func (a *Adapter) SendCommand(ctx context.Context, env message.Envelope, opts message.SendOptions) error {
	if err := a.ready(ctx, "send"); err != nil {
		return err
	}

	sa := &serializeArgs{
		exchange:   a.CommandExchange,
		routingKey: routingForCommand(env, opts),
		env:        env,
		headers:    sendHeaders(env, opts),
		wrap:       cerr.ErrSendFailed,
		label:      "send",
	}

	return a.serializeAndPublish(ctx, sa)
}

func (a *Adapter) AppendEvent(ctx context.Context, env message.Envelope, opts message.AppendOptions) error {
	if err := a.ready(ctx, "append"); err != nil {
		return err
	}

	sa := &serializeArgs{
		exchange:   a.EventExchange,
		routingKey: routingForEvent(env, opts),
		env:        env,
		headers:    appendHeaders(env, opts),
		wrap:       cerr.ErrPublishFailed,
		label:      "append",
	}

	return a.serializeAndPublish(ctx, sa)
}

func routingForCommand(env message.Envelope, o message.SendOptions) string {
	if o.Queue != "" {
		return cmdPrefix + o.Queue
	}

	return env.Subject()
}

func routingForEvent(env message.Envelope, o message.AppendOptions) string {
	if o.TopicOverride != "" {
		return o.TopicOverride
	}

	return env.Subject()
}

func sendHeaders(env message.Envelope, o message.SendOptions) map[string]string {
	h := env.TransportHeaders(o.Headers)
	if o.DelaySeconds > 0 {
		h["x-delay"] = fmt.Sprint(o.DelaySeconds)
	}

	return h
}

func appendHeaders(env message.Envelope, o message.AppendOptions) map[string]string {
	h := env.TransportHeaders(o.Headers)
	if o.Key != "" {
		h["key"] = o.Key
	}

	return h
}

// internal helpers (serialization + publishing)

type serializeArgs struct {
	exchange   string
	routingKey string
	env        message.Envelope
	headers    map[string]string
	wrap       error
	label      string
}

type publishArgs struct {
	exchange   string
	routingKey string
	env        message.Envelope
	body       []byte
	headers    map[string]string
	wrap       error
	label      string
}

func (a *Adapter) ready(ctx context.Context, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if a.Publisher == nil {
		return fmt.Errorf("rabbitmq %s: %w", label, cerr.ErrTransportNotConfigured)
	}

	return nil
}

func (a *Adapter) serializeAndPublish(ctx context.Context, sa *serializeArgs) error {
	body, err := sa.env.Body()
	if err != nil {
		return fmt.Errorf("rabbitmq %s serialize: %w", sa.label, errors.Join(cerr.ErrSerializationFailed, err))
	}

	args := &publishArgs{
		exchange:   sa.exchange,
		routingKey: sa.routingKey,
		env:        sa.env,
		body:       body,
		headers:    sa.headers,
		wrap:       sa.wrap,
		label:      sa.label,
	}

	return a.publish(ctx, args)
}

func (a *Adapter) publish(ctx context.Context, args *publishArgs) error {
	// Inject tracing context via configured propagator (keeps adapter decoupled)
	if ctx != nil && a.Propagator != nil {
		a.Propagator.Inject(ctx, args.headers)
	}

	msg := PubMsg{
		Exchange:   args.exchange,
		RoutingKey: args.routingKey,
		MessageID:  args.env.ID.String(),
		Type:       args.env.Namespace + "." + args.env.Name,
		Timestamp:  args.env.OccurredAt,
		Body:       args.body,
		Headers:    args.headers,
	}
	if err := a.Publisher.Publish(ctx, msg); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("rabbitmq %s publish: %w", args.label, errors.Join(args.wrap, err))
	}

	return nil
}

// publishing converts a PubMsg into an AMQP publishing.
func publishing(m PubMsg, mode uint8) amqp.Publishing {
	var h amqp.Table
	if len(m.Headers) > 0 {
		h = amqp.Table{}
		for k, v := range m.Headers {
			h[k] = v
		}
	}

	return amqp.Publishing{
		DeliveryMode: mode,
		Headers:      h,
		ContentType:  message.ContentTypeJSON,
		MessageId:    m.MessageID,
		Type:         m.Type,
		Timestamp:    m.Timestamp,
		Body:         m.Body,
	}
}

type amqpChannelPublisher struct{ ch *amqp.Channel }

func (p amqpChannelPublisher) Publish(ctx context.Context, m PubMsg) error {
	return p.ch.PublishWithContext(ctx, m.Exchange, m.RoutingKey, false, false, publishing(m, amqp.Transient))
}

// NewWithAMQPChannel wraps an existing channel. The caller owns the channel and the exchanges.
func NewWithAMQPChannel(ch *amqp.Channel) *Adapter {
	return New(amqpChannelPublisher{ch: ch})
}
