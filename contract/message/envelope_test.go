package message_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/tags"
)

func TestEnvelope_SubjectPerRole(t *testing.T) {
	cases := map[message.Role]string{
		message.RoleCommand:     "cmd.sleep-on-time.InitiateCheckOut",
		message.RoleEvent:       "evt.sleep-on-time.InitiateCheckOut",
		message.RoleQuery:       "qry.sleep-on-time.InitiateCheckOut",
		message.RoleQueryResult: "res.sleep-on-time.InitiateCheckOut",
	}

	for role, want := range cases {
		env := message.Envelope{Name: "InitiateCheckOut", Namespace: "sleep-on-time", Role: role}
		if got := env.Subject(); got != want {
			t.Fatalf("role %s: expected %q, got %q", role, want, got)
		}
	}
}

func TestEnvelope_TransportHeaders(t *testing.T) {
	id := uuid.MustParse("7b0c5d1e-4c1f-4c63-9f0e-1d2a3b4c5d6e")
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	env := message.Envelope{
		ID:         id,
		Name:       "GuestCheckedIn",
		Namespace:  "sleep-on-time",
		Role:       message.RoleEvent,
		Tags:       tags.New(tags.Tag{Key: "Guest", Value: "G1"}, tags.Tag{Key: "Booking", Value: "B1"}),
		OccurredAt: at,
		Headers:    map[string]string{"trace": "t-1"},
	}

	h := env.TransportHeaders(map[string]string{"trace": "t-2", "extra": "1"})

	want := map[string]string{
		message.HeaderMessageID:             id.String(),
		message.HeaderName:                  "GuestCheckedIn",
		message.HeaderNamespace:             "sleep-on-time",
		message.HeaderRole:                  "event",
		message.HeaderOccurredAt:            "2024-01-15T14:30:00Z",
		message.HeaderContentType:           message.ContentTypeJSON,
		message.HeaderTagPrefix + "Booking": "B1",
		message.HeaderTagPrefix + "Guest":   "G1",
		"trace":                             "t-2",
		"extra":                             "1",
	}

	if len(h) != len(want) {
		t.Fatalf("expected %d headers, got %d: %v", len(want), len(h), h)
	}

	for k, v := range want {
		if h[k] != v {
			t.Fatalf("header %s: expected %q, got %q", k, v, h[k])
		}
	}

	if _, ok := h[message.HeaderIdentity]; ok {
		t.Fatalf("identity header must be omitted when empty")
	}
}

func TestRole_TextRoundTrip(t *testing.T) {
	for _, r := range []message.Role{message.RoleCommand, message.RoleEvent, message.RoleQuery, message.RoleQueryResult} {
		b, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %s: %v", r, err)
		}

		var got message.Role
		if err := json.Unmarshal(b, &got); err != nil || got != r {
			t.Fatalf("round trip %s: got %s err %v", r, got, err)
		}
	}

	if _, err := message.ParseRole("saga"); err == nil {
		t.Fatalf("expected error for unknown role")
	}

	if message.Role(0).Valid() {
		t.Fatalf("zero role must be invalid")
	}
}
