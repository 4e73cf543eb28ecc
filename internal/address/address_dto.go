package address

import "github.com/google/uuid"

type AddressRequest struct {
	Line1      string  `json:"line1" binding:"required,max=255"`
	Line2      *string `json:"line2" binding:"omitempty,max=255"`
	City       string  `json:"city" binding:"required,max=100"`
	State      string  `json:"state" binding:"required,max=100"`
	Country    string  `json:"country" binding:"required,max=100"`
	PostalCode string  `json:"postalCode" binding:"required,max=20"`
}

type AddressResponse struct {
	ID         string  `json:"id"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postalCode"`
}

// NewAddress builds a fresh row from a nested address payload.
func NewAddress(req AddressRequest) *Address {
	a := &Address{ID: uuid.New()}
	req.ApplyTo(a)
	return a
}

func (r AddressRequest) ApplyTo(a *Address) {
	a.Line1 = r.Line1
	a.Line2 = r.Line2
	a.City = r.City
	a.State = r.State
	a.Country = r.Country
	a.PostalCode = r.PostalCode
}

func ToResponse(a Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID.String(),
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// ToResponsePtr maps an optional preloaded association.
func ToResponsePtr(a *Address) *AddressResponse {
	if a == nil {
		return nil
	}
	resp := ToResponse(*a)
	return &resp
}
