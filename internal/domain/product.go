package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                int
	LotNumber         string
	Name              string
	Price             decimal.Decimal
	AvailableQuantity int
	IntakeDate        time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanSupply reports whether units can be taken without driving the
// available quantity below zero.
func (p Product) CanSupply(units int) bool {
	return units > 0 && units <= p.AvailableQuantity
}
