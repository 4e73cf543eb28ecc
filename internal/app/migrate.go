package app

import (
	"go-gemtrack/internal/activity"
	"go-gemtrack/internal/address"
	"go-gemtrack/internal/assignment"
	"go-gemtrack/internal/client"
	"go-gemtrack/internal/employee"
	"go-gemtrack/internal/packet"
	"go-gemtrack/internal/process"
	"go-gemtrack/internal/report"
	"go-gemtrack/internal/shared/counter"
	"go-gemtrack/internal/user"

	"gorm.io/gorm"
)

// Parents come before children so foreign keys resolve.
var models = []any{
	&address.Address{},
	&user.User{},
	&client.Client{},
	&employee.Employee{},
	&process.Process{},
	&packet.DiamondPacket{},
	&assignment.DiamondPacketProcess{},
	&report.Report{},
	&report.ReportItem{},
	&activity.Activity{},
	&counter.UserCounter{},
}

const outboxSchemaSQL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             uuid PRIMARY KEY,
	request_id     varchar(64),
	aggregate_type varchar(64)  NOT NULL,
	aggregate_id   varchar(64)  NOT NULL,
	event_type     varchar(64)  NOT NULL,
	topic          varchar(128) NOT NULL,
	payload        jsonb        NOT NULL,
	status         varchar(16)  NOT NULL DEFAULT 'pending',
	retry_count    integer      NOT NULL DEFAULT 0,
	next_retry_at  timestamptz,
	error_message  varchar(500),
	processed_at   timestamptz,
	created_at     timestamptz  NOT NULL DEFAULT NOW(),
	updated_at     timestamptz  NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
	ON outbox_events (status, created_at);
`

// Migrate brings the schema up to date. The outbox table is plain SQL because
// its repository uses database/sql directly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	return db.Exec(outboxSchemaSQL).Error
}
