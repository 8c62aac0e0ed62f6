package message

import "context"

// Sender hands command envelopes to a transport.
// Library users provide an implementation backed by their queue/broker.
type Sender interface {
	SendCommand(ctx context.Context, env Envelope, opts SendOptions) error
}

// Appender hands event envelopes to an event store or broker.
type Appender interface {
	AppendEvent(ctx context.Context, env Envelope, opts AppendOptions) error
}

// Adapter combines sending and appending. Any adapter implementing both can back a gateway.
type Adapter interface {
	Sender
	Appender
}
