package employee

import (
	"time"

	"go-gemtrack/internal/address"
)

type CreateEmployeeRequest struct {
	EmployeeID string                 `json:"employeeId" binding:"required,max=50"`
	Name       string                 `json:"name" binding:"required,max=255"`
	Email      string                 `json:"email" binding:"required,email,max=255"`
	PhoneNo    string                 `json:"phoneNo" binding:"required,max=20"`
	PanNo      string                 `json:"panNo" binding:"required,pan"`
	Address    address.AddressRequest `json:"address"`
}

// UpdateEmployeeRequest replaces the employee's own fields. A non-nil Address is
// applied to the linked address in the same transaction.
type UpdateEmployeeRequest struct {
	EmployeeID string                  `json:"employeeId" binding:"required,max=50"`
	Name       string                  `json:"name" binding:"required,max=255"`
	Email      string                  `json:"email" binding:"required,email,max=255"`
	PhoneNo    string                  `json:"phoneNo" binding:"required,max=20"`
	PanNo      string                  `json:"panNo" binding:"required,pan"`
	Address    *address.AddressRequest `json:"address,omitempty"`
}

type EmployeeResponse struct {
	ID         string                   `json:"id"`
	EmployeeID string                   `json:"employeeId"`
	Name       string                   `json:"name"`
	Email      string                   `json:"email"`
	PhoneNo    string                   `json:"phoneNo"`
	PanNo      string                   `json:"panNo"`
	AddressID  string                   `json:"addressId"`
	Address    *address.AddressResponse `json:"address,omitempty"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}

type EmployeeOptionResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

func ToResponse(c Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         c.ID.String(),
		EmployeeID: c.EmployeeCode,
		Name:       c.Name,
		Email:      c.Email,
		PhoneNo:    c.PhoneNo,
		PanNo:      c.PanNo,
		AddressID:  c.AddressID.String(),
		Address:    address.ToResponsePtr(c.Address),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toOptions(employees []Employee) []EmployeeOptionResponse {
	res := make([]EmployeeOptionResponse, len(employees))
	for i, c := range employees {
		res[i] = EmployeeOptionResponse{ID: c.ID.String(), EmployeeID: c.EmployeeCode, Name: c.Name}
	}
	return res
}

func (r UpdateEmployeeRequest) applyTo(c *Employee) {
	c.EmployeeCode = r.EmployeeID
	c.Name = r.Name
	c.Email = r.Email
	c.PhoneNo = r.PhoneNo
	c.PanNo = r.PanNo
}
