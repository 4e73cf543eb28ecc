package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one lifecycle event as seen by its owner. EventID makes the
// consumer's inserts idempotent across redeliveries.
type Activity struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EventID       string    `gorm:"column:event_id;type:varchar(36);not null;uniqueIndex:uq_activities_event_id"`
	EventType     string    `gorm:"column:event_type;type:varchar(64);not null;index"`
	AggregateType string    `gorm:"column:aggregate_type;type:varchar(64);not null"`
	AggregateID   string    `gorm:"column:aggregate_id;type:varchar(36);not null"`
	RequestID     string    `gorm:"column:request_id;type:varchar(64)"`
	Payload       string    `gorm:"column:payload;type:text"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	OccurredAt    time.Time `gorm:"column:occurred_at;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
