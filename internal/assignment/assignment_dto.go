package assignment

import (
	"time"

	"go-gemtrack/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentRequest is shared by assign and update. The packet comes from the
// path and cannot be moved by an update.
type AssignmentRequest struct {
	ProcessID     string           `json:"processId" binding:"required,uuid"`
	EmployeeID    string           `json:"employeeId" binding:"required,uuid"`
	Status        string           `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	StartDateTime time.Time        `json:"startDateTime" binding:"required"`
	EndDateTime   *time.Time       `json:"endDateTime" binding:"omitempty"`
	BeforeWeight  *decimal.Decimal `json:"beforeWeight" binding:"required,dgt0,dstep=0.0001"`
	AfterWeight   *decimal.Decimal `json:"afterWeight" binding:"omitempty,dgt0,dstep=0.0001"`
	Remarks       *string          `json:"remarks" binding:"omitempty,max=1000"`
}

type ProcessSummary struct {
	ID        string          `json:"id"`
	ProcessID string          `json:"processId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

type EmployeeSummary struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

type AssignmentResponse struct {
	ID              string           `json:"id"`
	DiamondPacketID string           `json:"diamondPacketId"`
	ProcessID       string           `json:"processId"`
	EmployeeID      string           `json:"employeeId"`
	Status          string           `json:"status"`
	StartDateTime   time.Time        `json:"startDateTime"`
	EndDateTime     *time.Time       `json:"endDateTime"`
	BeforeWeight    decimal.Decimal  `json:"beforeWeight"`
	AfterWeight     *decimal.Decimal `json:"afterWeight"`
	Remarks         *string          `json:"remarks"`
	Process         *ProcessSummary  `json:"process,omitempty"`
	Employee        *EmployeeSummary `json:"employee,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func ToResponse(a DiamondPacketProcess) AssignmentResponse {
	res := AssignmentResponse{
		ID:              a.ID.String(),
		DiamondPacketID: a.DiamondPacketID.String(),
		ProcessID:       a.ProcessID.String(),
		EmployeeID:      a.EmployeeID.String(),
		Status:          a.Status,
		StartDateTime:   a.StartDateTime,
		EndDateTime:     a.EndDateTime,
		BeforeWeight:    a.BeforeWeight,
		AfterWeight:     a.AfterWeight,
		Remarks:         a.Remarks,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Process != nil {
		res.Process = &ProcessSummary{
			ID:        a.Process.ID.String(),
			ProcessID: a.Process.ProcessCode,
			Name:      a.Process.Name,
			Price:     a.Process.Price,
		}
	}
	if a.Employee != nil {
		res.Employee = &EmployeeSummary{
			ID:         a.Employee.ID.String(),
			EmployeeID: a.Employee.EmployeeCode,
			Name:       a.Employee.Name,
		}
	}
	return res
}

func (r AssignmentRequest) applyTo(a *DiamondPacketProcess) {
	a.ProcessID = uuid.MustParse(r.ProcessID)
	a.EmployeeID = uuid.MustParse(r.EmployeeID)
	a.Status = r.Status
	if a.Status == "" {
		a.Status = domain.DefaultProcessStatus
	}
	a.StartDateTime = r.StartDateTime
	a.EndDateTime = r.EndDateTime
	a.BeforeWeight = *r.BeforeWeight
	a.AfterWeight = r.AfterWeight
	a.Remarks = r.Remarks
}
