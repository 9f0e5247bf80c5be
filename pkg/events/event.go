package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CRISIS_DETECTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
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

// Event type codes.
const (
	TypeCrisisDetected  = "CRISIS_DETECTED"
	TypeCheckinRecorded = "CHECKIN_RECORDED"
)

// NewCrisisDetected builds the safety-escalation event published when a
// check-in lands on the crisis profile.
func NewCrisisDetected(userID, sessionID, presetID string, profile int) Event {
	return BaseEvent{
		Type: TypeCrisisDetected,
		Data: map[string]interface{}{
			"user_id":    userID,
			"session_id": sessionID,
			"preset_id":  presetID,
			"profile":    profile,
		},
		OccurredAt: time.Now().UTC(),
	}
}
