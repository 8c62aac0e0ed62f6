package message

// SendOptions represents send parameters for commands.
// DelaySeconds is preferred over time units for transport-agnostic mapping.
type SendOptions struct {
	Queue        string
	DelaySeconds int
	Headers      map[string]string
}

// AppendOptions controls event appending.
type AppendOptions struct {
	TopicOverride string
	Key           string
	Headers       map[string]string
}
