package nats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/next-trace/scg-message-catalog/adapters/nats"
	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/tags"
)

type fakeClient struct {
	calls []struct {
		subject string
		data    []byte
		headers map[string]string
	}
	err error
}

func (f *fakeClient) Publish(subject string, data []byte, headers map[string]string) error {
	f.calls = append(f.calls, struct {
		subject string
		data    []byte
		headers map[string]string
	}{subject, data, headers})

	return f.err
}

func commandEnv() message.Envelope {
	return message.Envelope{
		Name:      "RequestBikeRental",
		Namespace: "jupiter-wheels",
		Role:      message.RoleCommand,
		Identity:  "(u-1,b-1)",
		Payload:   []byte(`{"userId":"u-1","bikeId":"b-1"}`),
	}
}

func eventEnv() message.Envelope {
	return message.Envelope{
		Name:      "BikeRentalRequested",
		Namespace: "jupiter-wheels",
		Role:      message.RoleEvent,
		Tags:      tags.New(tags.Tag{Key: "Bike", Value: "b-1"}, tags.Tag{Key: "Rental", Value: "r-1"}),
		Payload:   []byte(`{"userId":"u-1","rentalId":"r-1","bikeId":"b-1"}`),
	}
}

func TestNATS_SendCommand_And_AppendEvent(t *testing.T) {
	fc := &fakeClient{}
	ad := nats.New(fc)

	if err := ad.SendCommand(t.Context(), commandEnv(), message.SendOptions{}); err != nil {
		t.Fatalf("send: %v", err)
	}

	c := fc.calls[0]
	if c.subject != "cmd.jupiter-wheels.RequestBikeRental" {
		t.Fatalf("subject mismatch: %s", c.subject)
	}

	if string(c.data) != `{"userId":"u-1","bikeId":"b-1"}` {
		t.Fatalf("body mismatch: %s", c.data)
	}

	if c.headers[message.HeaderIdentity] != "(u-1,b-1)" || c.headers[message.HeaderRole] != "command" {
		t.Fatalf("descriptor headers missing: %+v", c.headers)
	}

	// Queue override with delay and caller headers
	so := message.SendOptions{Queue: "rentals", DelaySeconds: 3, Headers: map[string]string{"h1": "v1"}}
	if err := ad.SendCommand(t.Context(), commandEnv(), so); err != nil {
		t.Fatalf("send: %v", err)
	}

	c = fc.calls[1]
	if c.subject != "cmd.rentals" {
		t.Fatalf("subject mismatch: %s", c.subject)
	}

	if c.headers["h1"] != "v1" || c.headers["x-delay"] != "3" {
		t.Fatalf("headers missing or wrong: %+v", c.headers)
	}

	if err := ad.AppendEvent(t.Context(), eventEnv(), message.AppendOptions{}); err != nil {
		t.Fatalf("append: %v", err)
	}

	p := fc.calls[2]
	if p.subject != "evt.jupiter-wheels.BikeRentalRequested" {
		t.Fatalf("subject mismatch: %s", p.subject)
	}

	if p.headers["x-tag-Bike"] != "b-1" || p.headers["x-tag-Rental"] != "r-1" {
		t.Fatalf("tag headers missing: %+v", p.headers)
	}

	ao := message.AppendOptions{TopicOverride: "rentals.audit", Key: "k", Headers: map[string]string{"ph": "pv"}}
	if err := ad.AppendEvent(t.Context(), eventEnv(), ao); err != nil {
		t.Fatalf("append: %v", err)
	}

	p = fc.calls[3]
	if p.subject != "rentals.audit" {
		t.Fatalf("topic mismatch: %s", p.subject)
	}

	if p.headers["key"] != "k" || p.headers["ph"] != "pv" {
		t.Fatalf("append headers mismatch: %+v", p.headers)
	}
}

func TestNATS_NilClientError(t *testing.T) {
	ad := nats.New(nil)

	if err := ad.SendCommand(t.Context(), commandEnv(), message.SendOptions{}); !errors.Is(err, cerr.ErrTransportNotConfigured) {
		t.Fatalf("want ErrTransportNotConfigured, got %v", err)
	}

	if err := ad.AppendEvent(t.Context(), eventEnv(), message.AppendOptions{}); !errors.Is(err, cerr.ErrTransportNotConfigured) {
		t.Fatalf("want ErrTransportNotConfigured, got %v", err)
	}
}

func TestNATS_Publish_ErrorWrapping_And_ContextCancel(t *testing.T) {
	// client returns generic error -> should wrap
	fc := &fakeClient{err: errors.New("boom")}
	ad := nats.New(fc)

	err := ad.SendCommand(t.Context(), commandEnv(), message.SendOptions{})
	if !errors.Is(err, cerr.ErrSendFailed) {
		t.Fatalf("want ErrSendFailed, got %v", err)
	}

	if err := ad.AppendEvent(t.Context(), eventEnv(), message.AppendOptions{}); !errors.Is(err, cerr.ErrPublishFailed) {
		t.Fatalf("want ErrPublishFailed, got %v", err)
	}

	// client returns context.Canceled -> propagate as-is
	fc2 := &fakeClient{err: context.Canceled}
	ad2 := nats.New(fc2)

	err = ad2.AppendEvent(t.Context(), eventEnv(), message.AppendOptions{})
	if !errors.Is(err, context.Canceled) || errors.Is(err, cerr.ErrPublishFailed) {
		t.Fatalf("want bare context.Canceled, got %v", err)
	}

	// canceled caller context -> nothing published
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	fc3 := &fakeClient{}
	if err := nats.New(fc3).SendCommand(ctx, commandEnv(), message.SendOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	if len(fc3.calls) != 0 {
		t.Fatalf("expected no publish after cancel")
	}
}

func TestNATS_SerializationFailure(t *testing.T) {
	fc := &fakeClient{}
	ad := nats.New(fc)

	env := commandEnv()
	env.Payload = nil
	env.Record = map[string]any{"bad": make(chan int)}

	if err := ad.SendCommand(t.Context(), env, message.SendOptions{}); !errors.Is(err, cerr.ErrSerializationFailed) {
		t.Fatalf("want ErrSerializationFailed, got %v", err)
	}

	if len(fc.calls) != 0 {
		t.Fatalf("expected no publish for an unserializable record")
	}
}
