package nats

import (
	"context"
	"errors"
	"fmt"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/contract/message"
)

const cmdPrefix = "cmd."

// Client is a minimal NATS-like publisher interface decoupled from any concrete library.
// Users can provide a wrapper around their NATS connection to satisfy this.
type Client interface {
	// Publish publishes a message to a subject with optional headers.
	Publish(subject string, data []byte, headers map[string]string) error
}

// Adapter implements message.Adapter using an injected NATS-like Client.
type Adapter struct {
	Client Client
}

// Ensure Adapter implements the combined contract.
var _ message.Adapter = (*Adapter)(nil)

// New creates a new NATS adapter instance with the provided client.
func New(c Client) *Adapter { return &Adapter{Client: c} }

func (a *Adapter) SendCommand(ctx context.Context, env message.Envelope, opts message.SendOptions) error {
	sa := &serializeArgs{
		subject: subjectForCommand(env, opts),
		env:     env,
		headers: sendHeaders(env, opts),
		wrap:    cerr.ErrSendFailed,
		label:   "send",
	}

	return a.buildAndSend(ctx, sa)
}

func (a *Adapter) AppendEvent(ctx context.Context, env message.Envelope, opts message.AppendOptions) error {
	sa := &serializeArgs{
		subject: subjectForEvent(env, opts),
		env:     env,
		headers: appendHeaders(env, opts),
		wrap:    cerr.ErrPublishFailed,
		label:   "append",
	}

	return a.buildAndSend(ctx, sa)
}

func (a *Adapter) buildAndSend(ctx context.Context, sa *serializeArgs) error {
	if err := a.ready(ctx, sa.label); err != nil {
		return err
	}

	return a.serializeAndPublish(ctx, sa)
}

type publishArgs struct {
	subject string
	body    []byte
	headers map[string]string
	wrap    error
	label   string
}

func (a *Adapter) publish(_ context.Context, args *publishArgs) error {
	if err := a.Client.Publish(args.subject, args.body, args.headers); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("nats %s publish: %w", args.label, errors.Join(args.wrap, err))
	}

	return nil
}

func (a *Adapter) ready(ctx context.Context, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if a.Client == nil {
		return fmt.Errorf("nats %s: %w", label, cerr.ErrTransportNotConfigured)
	}

	return nil
}

type serializeArgs struct {
	subject string
	env     message.Envelope
	headers map[string]string
	wrap    error
	label   string
}

func (a *Adapter) serializeAndPublish(ctx context.Context, sa *serializeArgs) error {
	body, err := sa.env.Body()
	if err != nil {
		return fmt.Errorf("nats %s serialize: %w", sa.label, errors.Join(cerr.ErrSerializationFailed, err))
	}

	args := &publishArgs{
		subject: sa.subject,
		body:    body,
		headers: sa.headers,
		wrap:    sa.wrap,
		label:   sa.label,
	}

	return a.publish(ctx, args)
}

// helpers

func subjectForCommand(env message.Envelope, o message.SendOptions) string {
	if o.Queue != "" {
		return cmdPrefix + o.Queue
	}

	return env.Subject()
}

func subjectForEvent(env message.Envelope, o message.AppendOptions) string {
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
