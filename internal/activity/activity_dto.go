package activity

import (
	"encoding/json"
	"time"
)

type ActivityResponse struct {
	ID            string          `json:"id"`
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	AggregateType string          `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	RequestID     string          `json:"requestId,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func ToResponse(a Activity) ActivityResponse {
	resp := ActivityResponse{
		ID:            a.ID.String(),
		EventID:       a.EventID,
		EventType:     a.EventType,
		AggregateType: a.AggregateType,
		AggregateID:   a.AggregateID,
		RequestID:     a.RequestID,
		OccurredAt:    a.OccurredAt,
		CreatedAt:     a.CreatedAt,
	}
	if a.Payload != "" && json.Valid([]byte(a.Payload)) {
		resp.Data = json.RawMessage(a.Payload)
	}
	return resp
}
