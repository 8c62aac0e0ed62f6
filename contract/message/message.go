package message

// Command is a marker interface for commands (intent to change the state of one target entity).
type Command interface{}

// Event is a marker interface for events (immutable facts, persisted and tagged).
type Event interface{}

// Query is a marker interface for queries. Queries are answered by projections and change nothing.
type Query interface{}

// QueryResult is a marker interface for records returned by queries.
type QueryResult interface{}
