package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPurchaseTotal is the largest total the Purchase.totalPrice column stores.
var MaxPurchaseTotal = decimal.RequireFromString("999999999999999999.99")

// Purchase is the header of one checkout. TotalPrice stays NULL until the
// purchase transaction has written every line.
type Purchase struct {
	ID         uint
	CustomerID uint
	TotalPrice decimal.NullDecimal
	CreatedAt  time.Time
}

// PurchaseLine records one product of a purchase. UnitPrice is the product
// price at the moment of the purchase and is never rewritten.
type PurchaseLine struct {
	ID         uint
	PurchaseID uint
	ProductID  int
	Units      int
	UnitPrice  decimal.Decimal
}

func (l PurchaseLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Units)))
}

// PurchaseLineDetail is a purchase line joined with its header timestamp and
// the product name, as shown on receipts and histories.
type PurchaseLineDetail struct {
	PurchaseID  uint
	PurchasedAt time.Time
	ProductID   int
	ProductName string
	Units       int
	UnitPrice   decimal.Decimal
}

// PurchaseWithCustomer is a purchase header joined with its owner.
type PurchaseWithCustomer struct {
	Purchase
	Customer Customer
}

type Customer struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
}
