package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	LotNumber         string          `json:"numeroLote" validate:"required,number,max=15"`
	Name              string          `json:"nombre" validate:"required,max=50"`
	Price             decimal.Decimal `json:"precio" validate:"required,gte=1,lte=9999999999999.99"`
	AvailableQuantity *int            `json:"cantidadDisponible" validate:"required,gte=0"`
	IntakeDate        string          `json:"fechaIngreso" validate:"required,datetime=2006-01-02"`
}

// UpdateProductRequest carries only the fields to change.
type UpdateProductRequest struct {
	LotNumber         *string          `json:"numeroLote" validate:"omitempty,number,max=15"`
	Name              *string          `json:"nombre" validate:"omitempty,min=1,max=50"`
	Price             *decimal.Decimal `json:"precio" validate:"omitempty,gte=1,lte=9999999999999.99"`
	AvailableQuantity *int             `json:"cantidadDisponible" validate:"omitempty,gte=0"`
	IntakeDate        *string          `json:"fechaIngreso" validate:"omitempty,datetime=2006-01-02"`
}

func (r UpdateProductRequest) Empty() bool {
	return r.LotNumber == nil && r.Name == nil && r.Price == nil &&
		r.AvailableQuantity == nil && r.IntakeDate == nil
}

type ProductDTO struct {
	ID                int             `json:"id"`
	LotNumber         string          `json:"numeroLote"`
	Name              string          `json:"nombre"`
	Price             decimal.Decimal `json:"precio"`
	AvailableQuantity int             `json:"cantidadDisponible"`
	IntakeDate        string          `json:"fechaIngreso"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type ProductListResponse struct {
	Products []ProductDTO `json:"productos"`
}

type ProductResponse struct {
	Product ProductDTO `json:"producto"`
}

type ProductMutationResponse struct {
	TraceID string `json:"traceId"`
	Message string `json:"message"`
	ID      int    `json:"id"`
}
