package events

import (
	"context"
	"time"
)

const (
	TypeFileIndexed      = "file.indexed"
	TypeFileFailed       = "file.failed"
	TypeQueryDeferred    = "query.deferred"
	TypeWebQueryAnswered = "webquery.answered"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted code for this event (e.g., "query.deferred").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher is implemented by the NATS publisher and by test doubles.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewFileIndexed(fileID, indexID string, chunks int) BaseEvent {
	return BaseEvent{
		Type: TypeFileIndexed,
		Data: map[string]interface{}{
			"file_id":  fileID,
			"index_id": indexID,
			"chunks":   chunks,
		},
		OccurredAt: time.Now(),
	}
}

func NewFileFailed(fileID, reason string) BaseEvent {
	return BaseEvent{
		Type: TypeFileFailed,
		Data: map[string]interface{}{
			"file_id": fileID,
			"reason":  reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewQueryDeferred reports a query parked in the curation namespace.
func NewQueryDeferred(namespace, query string) BaseEvent {
	return BaseEvent{
		Type: TypeQueryDeferred,
		Data: map[string]interface{}{
			"namespace": namespace,
			"query":     query,
		},
		OccurredAt: time.Now(),
	}
}

func NewWebQueryAnswered(namespace, record string) BaseEvent {
	return BaseEvent{
		Type: TypeWebQueryAnswered,
		Data: map[string]interface{}{
			"namespace": namespace,
			"record":    record,
		},
		OccurredAt: time.Now(),
	}
}
