package events

import "time"

// Event is anything published on the event bus
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
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

// Envelope is the wire shape: type and time travel with the payload so
// consumers do not have to parse them out of the subject
func Envelope(e Event) map[string]interface{} {
	return map[string]interface{}{
		"type":        e.EventType(),
		"occurred_at": e.Timestamp().UTC().Format(time.RFC3339Nano),
		"data":        e.Payload(),
	}
}
