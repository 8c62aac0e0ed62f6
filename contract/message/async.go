package message

import "time"

// Queueable lets a command choose the queue it is sent to, overriding the default subject.
type Queueable interface {
	QueueName() string
	Delay() time.Duration
}

// Topical lets an event choose the topic it is appended to, overriding the default subject.
type Topical interface {
	Topic() string
}
