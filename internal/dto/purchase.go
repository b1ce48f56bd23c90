package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest is the body of POST /api/purchases/buy.
type PurchaseRequest struct {
	Products []CartItemRequest `json:"productos" validate:"required,min=1,max=100,dive"`
}

type CartItemRequest struct {
	ID    int `json:"id" validate:"required,gt=0"`
	Units int `json:"unidades" validate:"required,gt=0"`
}

// CartItem is one validated cart entry handed to the purchase transaction.
type CartItem struct {
	ProductID int
	Units     int
}

func (r PurchaseRequest) Cart() []CartItem {
	cart := make([]CartItem, len(r.Products))
	for i, p := range r.Products {
		cart[i] = CartItem{ProductID: p.ID, Units: p.Units}
	}
	return cart
}

type PurchaseResult struct {
	PurchaseID uint
	TotalPrice decimal.Decimal
	Lines      []PurchasedLine
}

type PurchasedLine struct {
	ProductID int
	Units     int
	UnitPrice decimal.Decimal
}

type PurchaseResponse struct {
	TraceID    string          `json:"traceId"`
	Message    string          `json:"message"`
	PurchaseID uint            `json:"idCompra"`
	TotalPrice decimal.Decimal `json:"precioTotal"`
}

type PurchaseErrorResponse struct {
	TraceID   string `json:"traceId"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	ProductID int    `json:"idProducto"`
}

type ReceiptLine struct {
	ProductID   int             `json:"idProducto"`
	ProductName string          `json:"nombre"`
	Units       int             `json:"unidades"`
	UnitPrice   decimal.Decimal `json:"precioUnidad"`
}

type PurchaseReceipt struct {
	PurchaseID  uint             `json:"id"`
	TotalPrice  *decimal.Decimal `json:"precioTotal"`
	PurchasedAt time.Time        `json:"fechaCompra"`
	Lines       []ReceiptLine    `json:"productos"`
}

type HistoryEntry struct {
	PurchaseID  uint            `json:"idCompra"`
	PurchasedAt time.Time       `json:"fechaCompra"`
	Units       int             `json:"unidades"`
	UnitPrice   decimal.Decimal `json:"precioUnidad"`
}

// ProductPurchaseHistory groups every purchase of one product by a customer.
type ProductPurchaseHistory struct {
	ProductID   int            `json:"idProducto"`
	ProductName string         `json:"nombre"`
	Purchases   []HistoryEntry `json:"compras"`
}

type CustomerDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"primerNombre"`
	LastName  string `json:"primerApellido"`
	Email     string `json:"email"`
}

type PurchaseSummary struct {
	PurchaseID  uint             `json:"id"`
	TotalPrice  *decimal.Decimal `json:"precioTotal"`
	PurchasedAt time.Time        `json:"fechaCompra"`
	Customer    CustomerDTO      `json:"cliente"`
	Lines       []ReceiptLine    `json:"productos"`
}

type PurchaseReceiptResponse struct {
	Purchase PurchaseReceipt `json:"compra"`
}

type PurchaseHistoryResponse struct {
	Products []ProductPurchaseHistory `json:"productos"`
}

type PurchaseListResponse struct {
	Purchases []PurchaseSummary `json:"compras"`
}
