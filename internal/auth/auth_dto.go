package auth

import (
	"go-gemtrack/internal/address"
	"go-gemtrack/internal/user"
)

type RegisterRequest struct {
	Name     string                 `json:"name" binding:"required,max=255"`
	Email    string                 `json:"email" binding:"required,email,max=255"`
	Password string                 `json:"password" binding:"required,min=8,max=72"`
	PhoneNo  string                 `json:"phoneNo" binding:"required,max=20"`
	GstInNo  string                 `json:"gstInNo" binding:"required,gstin"`
	Address  address.AddressRequest `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	User      user.ProfileResponse `json:"user"`
	ExpiresAt string               `json:"expiresAt"`
}
