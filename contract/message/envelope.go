/*
Package message holds the transport-facing contracts of the catalog: message roles, marker
interfaces, the Envelope handed to brokers, and the Sender/Appender interfaces adapters implement.
*/
package message

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/next-trace/scg-message-catalog/tags"
)

// Transport header keys set on every published envelope.
const (
	HeaderMessageID   = "x-message-id"
	HeaderName        = "x-message-name"
	HeaderNamespace   = "x-message-namespace"
	HeaderRole        = "x-message-role"
	HeaderIdentity    = "x-target-identity"
	HeaderOccurredAt  = "x-occurred-at"
	HeaderTagPrefix   = "x-tag-"
	HeaderContentType = "content-type"

	ContentTypeJSON = "application/json"
)

// Envelope is a registered record prepared for transport.
type Envelope struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Namespace  string            `json:"namespace"`
	Role       Role              `json:"role"`
	Identity   string            `json:"identity,omitempty"`
	Tags       tags.Set          `json:"tags"`
	Payload    json.RawMessage   `json:"payload"`
	OccurredAt time.Time         `json:"occurredAt"`
	Headers    map[string]string `json:"headers,omitempty"`

	// Record is the original record value. It never leaves the process.
	Record any `json:"-"`
}

// Subject is the default routing key: <prefix>.<namespace>.<name>, where prefix is cmd, evt, qry or res.
func (e Envelope) Subject() string {
	return e.Role.subjectPrefix() + "." + e.Namespace + "." + e.Name
}

// TransportHeaders merges the descriptor headers, one x-tag-<Key> header per correlation tag, the
// envelope's own headers and extra, later sources winning.
func (e Envelope) TransportHeaders(extra map[string]string) map[string]string {
	h := make(map[string]string, 8+e.Tags.Len()+len(e.Headers)+len(extra))
	h[HeaderMessageID] = e.ID.String()
	h[HeaderName] = e.Name
	h[HeaderNamespace] = e.Namespace
	h[HeaderRole] = e.Role.String()
	h[HeaderContentType] = ContentTypeJSON

	if e.Identity != "" {
		h[HeaderIdentity] = e.Identity
	}

	if !e.OccurredAt.IsZero() {
		h[HeaderOccurredAt] = e.OccurredAt.UTC().Format(time.RFC3339Nano)
	}

	for k, v := range e.Tags.Headers(HeaderTagPrefix) {
		h[k] = v
	}

	for k, v := range e.Headers {
		h[k] = v
	}

	for k, v := range extra {
		h[k] = v
	}

	return h
}

// Body returns the JSON payload, encoding Record when the payload was not prepared yet.
func (e Envelope) Body() ([]byte, error) {
	if len(e.Payload) > 0 {
		return e.Payload, nil
	}

	if e.Record == nil {
		return []byte("null"), nil
	}

	return json.Marshal(e.Record)
}
