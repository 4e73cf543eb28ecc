package user

import (
	"time"

	"go-gemtrack/internal/address"
)

type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email,max=255"`
	PhoneNo string `json:"phoneNo" binding:"required,max=20"`
	GstInNo string `json:"gstInNo" binding:"required,gstin"`
}

// ProfileResponse never carries the password hash.
type ProfileResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	PhoneNo   string                   `json:"phoneNo"`
	GstInNo   string                   `json:"gstInNo"`
	AddressID string                   `json:"addressId"`
	Address   *address.AddressResponse `json:"address,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

func ToProfileResponse(u User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		PhoneNo:   u.PhoneNo,
		GstInNo:   u.GstInNo,
		AddressID: u.AddressID.String(),
		Address:   address.ToResponsePtr(u.Address),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
