package inmemory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/next-trace/scg-message-catalog/adapters/inmemory"
	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/tags"
)

func cmdEnv(id string) message.Envelope {
	return message.Envelope{Name: "RequestBikeRental", Namespace: "jupiter-wheels", Role: message.RoleCommand, Identity: id}
}

func evtEnv(bike, rental string) message.Envelope {
	return message.Envelope{
		Name:      "BikeRentalRequested",
		Namespace: "jupiter-wheels",
		Role:      message.RoleEvent,
		Tags:      tags.New(tags.Tag{Key: "Bike", Value: bike}, tags.Tag{Key: "Rental", Value: rental}),
	}
}

func TestInmemory_SendAndAppend_Recordings(t *testing.T) {
	ad := inmemory.New()

	if err := ad.SendCommand(t.Context(), cmdEnv("(u-1,b-1)"), message.SendOptions{Queue: "q"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := ad.AppendEvent(t.Context(), evtEnv("b-1", "r-1"), message.AppendOptions{Key: "b-1"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := ad.AppendEvent(t.Context(), evtEnv("b-2", "r-2"), message.AppendOptions{}); err != nil {
		t.Fatalf("append: %v", err)
	}

	cmds := ad.Commands()
	if n := len(cmds); n != 1 {
		t.Fatalf("want 1 command, got %d", n)
	}

	if cmds[0].Options.Queue != "q" || cmds[0].Envelope.Identity != "(u-1,b-1)" {
		t.Fatalf("unexpected recording: %+v", cmds[0])
	}

	if n := len(ad.Events()); n != 2 {
		t.Fatalf("want 2 events, got %d", n)
	}

	byBike := ad.Tagged("Bike", "b-2")
	if len(byBike) != 1 {
		t.Fatalf("want 1 event tagged Bike=b-2, got %d", len(byBike))
	}

	if v, _ := byBike[0].Envelope.Tags.Get("Rental"); v != "r-2" {
		t.Fatalf("wrong event returned: %v", byBike[0].Envelope.Tags)
	}

	if len(ad.Tagged("User", "u-1")) != 0 {
		t.Fatalf("unexpected events for an absent tag")
	}
}

func TestInmemory_Tagged_RepeatedKey(t *testing.T) {
	ad := inmemory.New()
	env := message.Envelope{
		Name:      "RaceCreated",
		Namespace: "apex-racing-labs",
		Role:      message.RoleEvent,
		Tags:      tags.New(tags.Tag{Key: "Driver", Value: "d1"}, tags.Tag{Key: "Driver", Value: "d2"}),
	}

	if err := ad.AppendEvent(t.Context(), env, message.AppendOptions{}); err != nil {
		t.Fatalf("append: %v", err)
	}

	for _, driver := range []string{"d1", "d2"} {
		if n := len(ad.Tagged("Driver", driver)); n != 1 {
			t.Fatalf("want 1 event tagged Driver=%s, got %d", driver, n)
		}
	}

	if n := len(ad.Tagged("Driver", "d3")); n != 0 {
		t.Fatalf("want no event tagged Driver=d3, got %d", n)
	}
}

func TestInmemory_CanceledContext(t *testing.T) {
	ad := inmemory.New()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if err := ad.SendCommand(ctx, cmdEnv("x"), message.SendOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	if err := ad.AppendEvent(ctx, evtEnv("b", "r"), message.AppendOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	if len(ad.Commands()) != 0 || len(ad.Events()) != 0 {
		t.Fatalf("canceled deliveries must not be recorded")
	}
}

func TestInmemory_ConcurrentSafety(t *testing.T) {
	ad := inmemory.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		send := func(_ int) {
			defer wg.Done()

			_ = ad.SendCommand(t.Context(), cmdEnv("c"), message.SendOptions{})
		}

		appendEvt := func(_ int) {
			defer wg.Done()

			_ = ad.AppendEvent(t.Context(), evtEnv("b", "r"), message.AppendOptions{})
		}

		go send(i)
		go appendEvt(i)
	}

	wg.Wait()

	if len(ad.Commands()) != 50 {
		t.Fatalf("commands=%d", len(ad.Commands()))
	}

	if len(ad.Tagged("Bike", "b")) != 50 {
		t.Fatalf("events=%d", len(ad.Events()))
	}
}
