package process

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProcessRequest struct {
	ProcessID   string           `json:"processId" binding:"required,max=50"`
	Name        string           `json:"name" binding:"required,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price" binding:"required,dgte0,dstep=0.01"`
	Cost        *decimal.Decimal `json:"cost" binding:"required,dgte0,dstep=0.01"`
}

type ProcessResponse struct {
	ID          string          `json:"id"`
	ProcessID   string          `json:"processId"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ProcessOptionResponse struct {
	ID        string          `json:"id"`
	ProcessID string          `json:"processId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

func ToResponse(p Process) ProcessResponse {
	return ProcessResponse{
		ID:          p.ID.String(),
		ProcessID:   p.ProcessCode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toOptions(processes []Process) []ProcessOptionResponse {
	res := make([]ProcessOptionResponse, len(processes))
	for i, p := range processes {
		res[i] = ProcessOptionResponse{ID: p.ID.String(), ProcessID: p.ProcessCode, Name: p.Name, Price: p.Price}
	}
	return res
}

func (r ProcessRequest) applyTo(p *Process) {
	p.ProcessCode = r.ProcessID
	p.Name = r.Name
	p.Description = r.Description
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Cost != nil {
		p.Cost = *r.Cost
	}
}
