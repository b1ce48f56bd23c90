package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPurchaseLine_Subtotal(t *testing.T) {
	line := PurchaseLine{
		PurchaseID: 1,
		ProductID:  1,
		Units:      5,
		UnitPrice:  decimal.NewFromInt(2000),
	}

	assert.True(t, decimal.NewFromInt(10000).Equal(line.Subtotal()))
}

func TestPurchaseLine_Subtotal_Fractional(t *testing.T) {
	line := PurchaseLine{Units: 3, UnitPrice: decimal.RequireFromString("0.10")}

	assert.Equal(t, "0.3", line.Subtotal().String())
}

func TestPurchase_TotalUnsetByDefault(t *testing.T) {
	p := Purchase{ID: 1, CustomerID: 7}
	assert.False(t, p.TotalPrice.Valid)
}
