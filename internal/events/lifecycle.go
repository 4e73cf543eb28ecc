package events

import (
	"encoding/json"
	"time"
)

// ActivityTopic carries every domain lifecycle event. The activity consumer
// is its only reader.
const ActivityTopic = "gemtrack.activity.v1"

const (
	AggregateClient     = "client"
	AggregateEmployee   = "employee"
	AggregateProcess    = "process"
	AggregatePacket     = "diamond_packet"
	AggregateAssignment = "assignment"
	AggregateReport     = "report"
)

const (
	ClientCreated   = "client.created"
	ClientUpdated   = "client.updated"
	ClientDeleted   = "client.deleted"
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
	ProcessCreated  = "process.created"
	ProcessUpdated  = "process.updated"
	ProcessDeleted  = "process.deleted"
	PacketCreated   = "diamond_packet.created"
	PacketUpdated   = "diamond_packet.updated"
	PacketDeleted   = "diamond_packet.deleted"

	AssignmentCreated   = "assignment.created"
	AssignmentUpdated   = "assignment.updated"
	AssignmentCompleted = "assignment.completed"
	AssignmentDeleted   = "assignment.deleted"

	ReportCreated = "report.created"
	ReportDeleted = "report.deleted"
)

// LifecycleEvent is the payload written to the outbox and published to
// ActivityTopic.
type LifecycleEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	RequestID     string          `json:"request_id,omitempty"`
	UserID        string          `json:"user_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	Data          json.RawMessage `json:"data,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Decode parses a published payload.
func Decode(payload []byte) (LifecycleEvent, error) {
	var e LifecycleEvent
	err := json.Unmarshal(payload, &e)
	return e, err
}
