package inmemory

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/next-trace/scg-message-catalog/contract/message"
)

// Sent is one recorded command delivery.
type Sent struct {
	Envelope message.Envelope
	Options  message.SendOptions
}

// Appended is one recorded event delivery.
type Appended struct {
	Envelope message.Envelope
	Options  message.AppendOptions
}

// Sender is a thread-safe in-memory implementation of message.Sender.
// It records sent commands for testing and examples.
type Sender struct {
	mu   sync.Mutex
	sent []Sent
}

func (s *Sender) SendCommand(ctx context.Context, env message.Envelope, opts message.SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.sent = append(s.sent, Sent{Envelope: env, Options: opts})
	s.mu.Unlock()

	return nil
}

// Commands returns a snapshot of the recorded commands in send order.
func (s *Sender) Commands() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Sent(nil), s.sent...)
}

// Appender is a thread-safe in-memory implementation of message.Appender.
// Recorded events can be read back by correlation tag, the way an event store indexes them.
type Appender struct {
	mu     sync.Mutex
	events []Appended
}

func (a *Appender) AppendEvent(ctx context.Context, env message.Envelope, opts message.AppendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	a.events = append(a.events, Appended{Envelope: env, Options: opts})
	a.mu.Unlock()

	return nil
}

// Events returns a snapshot of the recorded events in append order.
func (a *Appender) Events() []Appended {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]Appended(nil), a.events...)
}

// Tagged returns the recorded events carrying the correlation tag key=value, in append order.
func (a *Appender) Tagged(key, value string) []Appended {
	return lo.Filter(a.Events(), func(e Appended, _ int) bool {
		return e.Envelope.Tags.Has(key, value)
	})
}

// Adapter combines Sender and Appender to satisfy both interfaces.
// Use with gateway.New(cat, ad, ad, logger).
type Adapter struct {
	Sender
	Appender
}

// Ensure Adapter implements the combined contract.
var _ message.Adapter = (*Adapter)(nil)

// New creates a new in-memory adapter instance.
func New() *Adapter { return &Adapter{} }
