/*
Package gateway hands registered records to a transport.

The gateway looks a record up in a sealed catalog, checks its role, validates it, resolves its target
identity and correlation tags, and wraps it in a message.Envelope. The envelope then runs through the
configured middleware and reaches a message.Sender (commands) or message.Appender (events). The gateway
does not route to in-process handlers; delivery belongs to the transport behind the adapter.
*/
package gateway
