package client

import (
	"time"

	"go-gemtrack/internal/address"
)

type CreateClientRequest struct {
	ClientID string                 `json:"clientId" binding:"required,max=50"`
	Name     string                 `json:"name" binding:"required,max=255"`
	Email    string                 `json:"email" binding:"required,email,max=255"`
	PhoneNo  string                 `json:"phoneNo" binding:"required,max=20"`
	GstInNo  string                 `json:"gstInNo" binding:"required,gstin"`
	Address  address.AddressRequest `json:"address"`
}

// UpdateClientRequest replaces the client's own fields. A non-nil Address is
// applied to the linked address in the same transaction.
type UpdateClientRequest struct {
	ClientID string                  `json:"clientId" binding:"required,max=50"`
	Name     string                  `json:"name" binding:"required,max=255"`
	Email    string                  `json:"email" binding:"required,email,max=255"`
	PhoneNo  string                  `json:"phoneNo" binding:"required,max=20"`
	GstInNo  string                  `json:"gstInNo" binding:"required,gstin"`
	Address  *address.AddressRequest `json:"address,omitempty"`
}

type ClientResponse struct {
	ID        string                   `json:"id"`
	ClientID  string                   `json:"clientId"`
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	PhoneNo   string                   `json:"phoneNo"`
	GstInNo   string                   `json:"gstInNo"`
	AddressID string                   `json:"addressId"`
	Address   *address.AddressResponse `json:"address,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

type ClientOptionResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
}

func ToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID.String(),
		ClientID:  c.ClientCode,
		Name:      c.Name,
		Email:     c.Email,
		PhoneNo:   c.PhoneNo,
		GstInNo:   c.GstInNo,
		AddressID: c.AddressID.String(),
		Address:   address.ToResponsePtr(c.Address),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toOptions(clients []Client) []ClientOptionResponse {
	res := make([]ClientOptionResponse, len(clients))
	for i, c := range clients {
		res[i] = ClientOptionResponse{ID: c.ID.String(), ClientID: c.ClientCode, Name: c.Name}
	}
	return res
}

func (r UpdateClientRequest) applyTo(c *Client) {
	c.ClientCode = r.ClientID
	c.Name = r.Name
	c.Email = r.Email
	c.PhoneNo = r.PhoneNo
	c.GstInNo = r.GstInNo
}
