package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// ChangeMessage announces a guest store mutation. It carries identifiers
// only; consumers read the data they need from their own session.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Revision  uint64    `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage converts a change event, stamping it now when the event
// has no timestamp.
func NewChangeMessage(ev core.ChangeEvent) *ChangeMessage {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &ChangeMessage{
		Entity:    ev.Entity,
		Op:        ev.Op,
		ID:        ev.ID,
		Revision:  ev.Revision,
		Timestamp: ts,
	}
}

// RoutingKey is entity.op, e.g. "expense.created".
func (m *ChangeMessage) RoutingKey() string {
	return m.Entity + "." + m.Op
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
