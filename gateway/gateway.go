package gateway

// revive:disable:max-public-structs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/next-trace/scg-message-catalog/catalog"
	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/failure"
	"github.com/next-trace/scg-message-catalog/identity"
	"github.com/next-trace/scg-message-catalog/record"
)

// Handler receives a prepared envelope.
type Handler func(ctx context.Context, env message.Envelope) error

// Middleware wraps envelope delivery. Middlewares are executed in registration order.
type Middleware func(next Handler) Handler

// Option configures a Gateway instance.
type Option func(*Gateway)

// WithMiddleware registers global middleware, run for every send and append.
func WithMiddleware(mw ...Middleware) Option {
	return func(g *Gateway) { g.mw = append(g.mw, mw...) }
}

// WithHeaderPropagator injects tracing headers into every envelope before delivery.
func WithHeaderPropagator(p message.HeaderPropagator) Option {
	return func(g *Gateway) { g.prop = p }
}

// WithClock overrides the clock used for OccurredAt.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// WithIDGenerator overrides envelope ID generation.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(g *Gateway) { g.newID = gen }
}

// Gateway turns registered records into envelopes and hands them to a transport.
// It is concurrency-safe and contains no global state.
type Gateway struct {
	cat *catalog.Catalog
	snd message.Sender
	app message.Appender

	// global middleware executed in registration order
	mw []Middleware

	prop   message.HeaderPropagator
	now    func() time.Time
	newID  func() uuid.UUID
	logger *slog.Logger
}

// New constructs a Gateway. sender and appender may be nil; the matching operations then fail with
// ErrTransportNotConfigured.
func New(
	cat *catalog.Catalog,
	sender message.Sender,
	appender message.Appender,
	logger *slog.Logger,
	opts ...Option,
) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		cat:    cat,
		snd:    sender,
		app:    appender,
		prop:   message.NopHeaderPropagator{},
		now:    time.Now,
		newID:  uuid.New,
		logger: logger,
	}

	for _, o := range opts {
		o(g)
	}

	return g
}

// Catalog returns the catalog the gateway resolves descriptors from.
func (g *Gateway) Catalog() *catalog.Catalog { return g.cat }

// Envelope builds the envelope of any registered record without delivering it.
func (g *Gateway) Envelope(v any) (message.Envelope, error) {
	d, ok := g.cat.DescriptorOf(v)
	if !ok {
		return message.Envelope{}, fmt.Errorf("envelope %T: %w", v, cerr.ErrDescriptorNotFound)
	}

	return g.envelope(d, v)
}

func (g *Gateway) envelope(d catalog.Descriptor, v any) (message.Envelope, error) {
	if err := record.Validate(v, d.Identity...); err != nil {
		return message.Envelope{}, fmt.Errorf("envelope %s: %w", d.Key(), err)
	}

	id, err := resolveIdentity(d, v)
	if err != nil {
		return message.Envelope{}, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return message.Envelope{}, fmt.Errorf("envelope %s: %w", d.Key(), errors.Join(cerr.ErrSerializationFailed, err))
	}

	return message.Envelope{
		ID:         g.newID(),
		Name:       d.Name,
		Namespace:  d.Namespace,
		Role:       d.Role,
		Identity:   id.String(),
		Tags:       d.Tags(v),
		Payload:    payload,
		OccurredAt: g.now().UTC(),
		Headers:    map[string]string{},
		Record:     v,
	}, nil
}

// resolveIdentity prefers an identity the record exposes itself over the declared field list.
// Every part of a resolved identity must carry a value: no empty strings, nils or absent optionals.
func resolveIdentity(d catalog.Descriptor, v any) (identity.Identity, error) {
	var id identity.Identity

	if ti, ok := v.(identity.TargetIdentifier); ok {
		id = ti.TargetIdentity()
		if id.IsZero() {
			return id, fmt.Errorf("envelope %s: empty target identity: %w", d.Key(), cerr.ErrMalformedIdentity)
		}
	} else {
		if !d.HasIdentity() {
			return identity.Identity{}, nil
		}

		id = d.Resolve(v)
	}

	if i := id.Blank(); i >= 0 {
		return id, fmt.Errorf("envelope %s: identity part %d is empty: %w", d.Key(), i, cerr.ErrMalformedIdentity)
	}

	return id, nil
}

func (g *Gateway) prepare(op string, v any, want message.Role) (message.Envelope, error) {
	d, ok := g.cat.DescriptorOf(v)
	if !ok {
		return message.Envelope{}, fmt.Errorf("%s %T: %w", op, v, cerr.ErrDescriptorNotFound)
	}

	if d.Role != want {
		return message.Envelope{}, fmt.Errorf("%s %s: registered as %s: %w", op, d.Key(), d.Role, cerr.ErrRoleMismatch)
	}

	return g.envelope(d, v)
}

// Send delivers a command to the configured Sender. If the command implements message.Queueable its
// queue and delay override the default subject.
func (g *Gateway) Send(ctx context.Context, cmd message.Command) error {
	return g.send(ctx, cmd)
}

// SendWithMiddleware sends a command with additional per-call middleware.
func (g *Gateway) SendWithMiddleware(ctx context.Context, cmd message.Command, mws ...Middleware) error {
	return g.send(ctx, cmd, mws...)
}

func (g *Gateway) send(ctx context.Context, cmd message.Command, mws ...Middleware) error {
	env, err := g.prepare("send", cmd, message.RoleCommand)
	if err != nil {
		return err
	}

	if g.snd == nil {
		return fmt.Errorf("send %s.%s: %w", env.Namespace, env.Name, cerr.ErrTransportNotConfigured)
	}

	var so message.SendOptions
	if q, ok := cmd.(message.Queueable); ok {
		so = message.SendOptions{Queue: q.QueueName(), DelaySeconds: int(q.Delay().Seconds())}
	}

	final := func(ctx context.Context, env message.Envelope) error {
		so.Headers = env.Headers
		return g.snd.SendCommand(ctx, env, so)
	}

	return g.deliver(ctx, env, final, mws)
}

// Append delivers an event to the configured Appender. If the event implements message.Topical its
// topic overrides the default subject.
func (g *Gateway) Append(ctx context.Context, evt message.Event) error {
	return g.AppendWithOptions(ctx, evt, message.AppendOptions{})
}

// AppendWithOptions appends an event with explicit options.
func (g *Gateway) AppendWithOptions(ctx context.Context, evt message.Event, opts message.AppendOptions) error {
	env, err := g.prepare("append", evt, message.RoleEvent)
	if err != nil {
		return err
	}

	if g.app == nil {
		return fmt.Errorf("append %s.%s: %w", env.Namespace, env.Name, cerr.ErrTransportNotConfigured)
	}

	if tp, ok := evt.(message.Topical); ok && opts.TopicOverride == "" {
		opts.TopicOverride = tp.Topic()
	}

	for k, v := range opts.Headers {
		env.Headers[k] = v
	}

	final := func(ctx context.Context, env message.Envelope) error {
		opts.Headers = env.Headers
		return g.app.AppendEvent(ctx, env, opts)
	}

	return g.deliver(ctx, env, final, nil)
}

func (g *Gateway) deliver(ctx context.Context, env message.Envelope, final Handler, mws []Middleware) error {
	g.prop.Inject(ctx, env.Headers)

	// Combine global and per-call middleware
	chain := make([]Middleware, 0, len(g.mw)+len(mws))
	chain = append(chain, g.mw...)
	chain = append(chain, mws...)

	// Build chain so the first registered middleware runs first
	h := final
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}

	err := h(ctx, env)
	if err == nil {
		g.logger.DebugContext(ctx, "gateway: delivered", "subject", env.Subject(), "id", env.ID.String(),
			"identity", env.Identity)

		return nil
	}

	if sig, ok := failure.As(err); ok {
		g.logger.WarnContext(ctx, "gateway: rejected", "subject", env.Subject(), "kind", string(sig.Kind()),
			"category", sig.Category().String(), "message", sig.Message())
	} else {
		g.logger.ErrorContext(ctx, "gateway: delivery failed", "subject", env.Subject(), "error", err)
	}

	return err
}

// Chain sends commands in order and stops on the first error.
func (g *Gateway) Chain(ctx context.Context, cmds ...message.Command) error {
	for _, c := range cmds {
		if err := g.send(ctx, c); err != nil {
			return err
		}
	}

	return nil
}

// BatchOptions controls Batch execution behavior.
// OnProgress is called after each command completes (success or failure) with done and total.
// OnError is called when a command returns an error with its index, the command value, and the error.
type BatchOptions struct {
	OnProgress func(done, total int)
	OnError    func(index int, cmd message.Command, err error)
}

// BatchOpt configures BatchOptions.
type BatchOpt func(*BatchOptions)

// WithBatchProgress sets the progress callback.
func WithBatchProgress(fn func(done, total int)) BatchOpt {
	return func(o *BatchOptions) { o.OnProgress = fn }
}

// WithBatchOnError sets the error callback.
func WithBatchOnError(fn func(index int, cmd message.Command, err error)) BatchOpt {
	return func(o *BatchOptions) { o.OnError = fn }
}

// Batch sends the provided commands sequentially.
// It respects context cancellation, reports progress, and aggregates errors.
func (g *Gateway) Batch(ctx context.Context, cmds []message.Command, opts ...BatchOpt) error {
	var o BatchOptions
	for _, f := range opts {
		f(&o)
	}

	total := len(cmds)

	var errs []error

	for i, c := range cmds {
		if err := ctx.Err(); err != nil { // canceled or deadline exceeded
			return errors.Join(append(errs, err)...)
		}

		err := g.send(ctx, c)
		if err != nil {
			if o.OnError != nil {
				o.OnError(i, c, err)
			}

			errs = append(errs, err)
		}

		if o.OnProgress != nil {
			o.OnProgress(i+1, total)
		}
	}

	return errors.Join(errs...)
}
