package employee

import (
	"time"

	"go-gemtrack/internal/address"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code;type:varchar(50);not null;uniqueIndex:uq_employees_user_employee_code,priority:2"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);not null"`
	PhoneNo      string    `gorm:"column:phone_no;type:varchar(20);not null"`
	PanNo        string    `gorm:"column:pan_no;type:varchar(10);not null"`
	AddressID    uuid.UUID `gorm:"column:address_id;type:uuid;not null"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_employees_user_employee_code,priority:1"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Address *address.Address `gorm:"foreignKey:AddressID;references:ID;constraint:OnDelete:RESTRICT"`
}
