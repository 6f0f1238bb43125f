// Package message defines the value that flows through a route's pipeline.
package message

// Metadata is a string-keyed bag of side information attached to a Message.
// Field falls back to it when the body lacks a key, and Fields merges it
// into the template/expression environment, where body fields of the same
// name take precedence.
type Metadata map[string]any

// Message is the opaque payload the engine moves between connectors and
// processors. Body holds the structured content (a scalar, a map, or a
// slice decoded from JSON/YAML/plain text depending on the connector).
// Messages are treated as immutable by convention: a processor that wants
// to mutate a message clones it via With* helpers and returns the clone.
type Message struct {
	Body     any
	Metadata Metadata
}

// New creates a Message with the given body and no metadata.
func New(body any) Message {
	return Message{Body: body, Metadata: Metadata{}}
}

// WithMetadata returns a copy of the message with a metadata key set.
func (m Message) WithMetadata(key string, value any) Message {
	meta := make(Metadata, len(m.Metadata)+1)
	for k, v := range m.Metadata {
		meta[k] = v
	}
	meta[key] = value
	return Message{Body: m.Body, Metadata: meta}
}

// WithBody returns a copy of the message with a replaced body, preserving metadata.
func (m Message) WithBody(body any) Message {
	return Message{Body: body, Metadata: m.Metadata}
}

// Field returns a named scalar field of the message for template/filter/condition
// use. It looks at the body (if it is a map[string]any) and falls back to
// metadata. Non-scalar values are returned as-is; callers that require a
// scalar must check the type themselves.
func (m Message) Field(name string) (any, bool) {
	if body, ok := m.Body.(map[string]any); ok {
		if v, ok := body[name]; ok {
			return v, true
		}
	}
	if v, ok := m.Metadata[name]; ok {
		return v, true
	}
	return nil, false
}

// Fields flattens the message into a single map of scalar-ish values for use
// as a template or expression environment. Metadata is shadowed by body
// fields of the same name.
func (m Message) Fields() map[string]any {
	out := make(map[string]any, len(m.Metadata)+4)
	for k, v := range m.Metadata {
		out[k] = v
	}
	if body, ok := m.Body.(map[string]any); ok {
		for k, v := range body {
			out[k] = v
		}
	}
	return out
}

// dropSentinel is the unexported type of Drop, ensuring no caller can
// construct an equivalent value by accident.
type dropSentinel struct{}

// Drop is a sentinel meaning "this message does not continue downstream."
// Processor.Process does not return it: a drop is reported through
// Result.Dropped (see Dropped), so a zero Message is never mistaken for a
// drop.
var Drop = dropSentinel{}

// Result is what a processor or a chain application yields: either a
// replacement message to continue with, or Dropped=true meaning stop.
type Result struct {
	Message Message
	Dropped bool
}

// Keep wraps a message as a non-dropped Result.
func Keep(m Message) Result { return Result{Message: m} }

// Dropped constructs a dropped Result.
func Dropped() Result { return Result{Dropped: true} }
