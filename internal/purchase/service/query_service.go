package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tienda/internal/domain"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
)

type PurchaseReader interface {
	FindByIDAndCustomer(ctx context.Context, id uint, customerID uint) (*domain.Purchase, error)
	FindAllWithCustomer(ctx context.Context) ([]domain.PurchaseWithCustomer, error)
	FindLinesByPurchaseID(ctx context.Context, purchaseID uint) ([]domain.PurchaseLineDetail, error)
	FindLinesByCustomer(ctx context.Context, customerID uint) ([]domain.PurchaseLineDetail, error)
	FindAllLines(ctx context.Context) ([]domain.PurchaseLineDetail, error)
}

// QueryService serves the read side of purchases: receipts, a customer's
// history and the administrator listing.
type QueryService struct {
	repo   PurchaseReader
	logger *zap.Logger
}

func NewQueryService(repo PurchaseReader, logger *zap.Logger) *QueryService {
	return &QueryService{repo: repo, logger: logger}
}

// GetPurchaseReceipt returns a purchase owned by customerID with its lines.
func (s *QueryService) GetPurchaseReceipt(ctx context.Context, purchaseID uint, customerID uint) (*dto.PurchaseReceipt, error) {
	purchase, err := s.repo.FindByIDAndCustomer(ctx, purchaseID, customerID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewInternalError("get purchase", err)
	}

	lines, err := s.repo.FindLinesByPurchaseID(ctx, purchaseID)
	if err != nil {
		return nil, apperrors.NewInternalError("get purchase lines", err)
	}

	return &dto.PurchaseReceipt{
		PurchaseID:  purchase.ID,
		TotalPrice:  nullableTotal(purchase.TotalPrice),
		PurchasedAt: purchase.CreatedAt,
		Lines:       toReceiptLines(lines),
	}, nil
}

// ListPurchaseHistory groups the customer's purchase lines by product. An
// empty slice means the customer has not bought anything yet.
func (s *QueryService) ListPurchaseHistory(ctx context.Context, customerID uint) ([]dto.ProductPurchaseHistory, error) {
	lines, err := s.repo.FindLinesByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperrors.NewInternalError("list purchase history", err)
	}

	history := []dto.ProductPurchaseHistory{}
	index := make(map[int]int)
	for _, l := range lines {
		i, ok := index[l.ProductID]
		if !ok {
			i = len(history)
			index[l.ProductID] = i
			history = append(history, dto.ProductPurchaseHistory{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
			})
		}
		history[i].Purchases = append(history[i].Purchases, dto.HistoryEntry{
			PurchaseID:  l.PurchaseID,
			PurchasedAt: l.PurchasedAt,
			Units:       l.Units,
			UnitPrice:   l.UnitPrice,
		})
	}

	s.logger.Debug("purchase history loaded", zap.Uint("customerId", customerID), zap.Int("productCount", len(history)))
	return history, nil
}

// ListAllPurchases returns every purchase with its customer and lines.
func (s *QueryService) ListAllPurchases(ctx context.Context) ([]dto.PurchaseSummary, error) {
	purchases, err := s.repo.FindAllWithCustomer(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("list purchases", err)
	}

	lines, err := s.repo.FindAllLines(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("list purchase lines", err)
	}

	byPurchase := make(map[uint][]domain.PurchaseLineDetail)
	for _, l := range lines {
		byPurchase[l.PurchaseID] = append(byPurchase[l.PurchaseID], l)
	}

	out := make([]dto.PurchaseSummary, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, dto.PurchaseSummary{
			PurchaseID:  p.ID,
			TotalPrice:  nullableTotal(p.TotalPrice),
			PurchasedAt: p.CreatedAt,
			Customer: dto.CustomerDTO{
				ID:        p.Customer.ID,
				FirstName: p.Customer.FirstName,
				LastName:  p.Customer.LastName,
				Email:     p.Customer.Email,
			},
			Lines: toReceiptLines(byPurchase[p.ID]),
		})
	}

	return out, nil
}

func nullableTotal(total decimal.NullDecimal) *decimal.Decimal {
	if !total.Valid {
		return nil
	}
	d := total.Decimal
	return &d
}

func toReceiptLines(lines []domain.PurchaseLineDetail) []dto.ReceiptLine {
	out := make([]dto.ReceiptLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ReceiptLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Units:       l.Units,
			UnitPrice:   l.UnitPrice,
		})
	}
	return out
}
