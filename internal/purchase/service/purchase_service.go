package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tienda/internal/commons"
	"tienda/internal/domain"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
	"tienda/internal/infrastructure/mysql"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type ProductRepository interface {
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error)
	DecrementAvailableQuantity(ctx context.Context, tx *sql.Tx, id int, units int) error
}

type PurchaseLineRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, line domain.PurchaseLine) (uint, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, tx *sql.Tx, customerID uint) (uint, error)
	UpdateTotalPrice(ctx context.Context, tx *sql.Tx, id uint, totalPrice decimal.Decimal) error
}

// PurchaseService runs a checkout as a single all-or-nothing transaction.
type PurchaseService struct {
	db           TransactionManager
	productRepo  ProductRepository
	lineRepo     PurchaseLineRepository
	purchaseRepo PurchaseRepository
	logger       *zap.Logger
	txTimeout    time.Duration
}

func NewPurchaseService(
	db TransactionManager,
	productRepo ProductRepository,
	lineRepo PurchaseLineRepository,
	purchaseRepo PurchaseRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *PurchaseService {
	return &PurchaseService{
		db:           db,
		productRepo:  productRepo,
		lineRepo:     lineRepo,
		purchaseRepo: purchaseRepo,
		logger:       logger,
		txTimeout:    txTimeout,
	}
}

// ExecutePurchase validates stock, records the purchase with one line per
// cart entry at the current product price, decrements stock and stores the
// total. Entries are processed in cart order and the first failing entry
// aborts the whole purchase; nothing is persisted unless every entry
// succeeds.
func (s *PurchaseService) ExecutePurchase(ctx context.Context, customerID uint, cart []dto.CartItem) (*dto.PurchaseResult, error) {
	if len(cart) == 0 {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "productos",
			Message: "productos must contain at least 1 item",
		})
	}

	// Bloque 1: Iniciar transacción con timeout
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, s.persistenceFailure(ctx, "begin transaction", customerID, err)
	}
	// Rollback after Commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	purchaseID, err := s.purchaseRepo.Create(txCtx, tx, customerID)
	if err != nil {
		return nil, s.persistenceFailure(ctx, "create purchase", customerID, err)
	}

	// Bloque 2: Procesar items
	total := decimal.Zero
	lines := make([]dto.PurchasedLine, 0, len(cart))

	for _, item := range cart {
		line, err := s.purchaseSingleItem(txCtx, tx, customerID, purchaseID, item)
		if err != nil {
			if pe, ok := apperrors.IsPurchaseError(err); ok {
				s.logger.Warn("purchase rejected",
					zap.Uint("customerId", customerID),
					zap.Int("productId", pe.ProductID),
					zap.String("reason", string(pe.Code)),
				)
			}
			return nil, err
		}

		total = total.Add(line.Subtotal())
		lines = append(lines, dto.PurchasedLine{
			ProductID: line.ProductID,
			Units:     line.Units,
			UnitPrice: line.UnitPrice,
		})
	}

	// Bloque 3: Total y commit
	if total.GreaterThan(domain.MaxPurchaseTotal) {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "productos",
			Message: "the purchase total exceeds the maximum amount that can be recorded",
		})
	}

	if err := s.purchaseRepo.UpdateTotalPrice(txCtx, tx, purchaseID, total); err != nil {
		return nil, s.persistenceFailure(ctx, "update purchase total", customerID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.persistenceFailure(ctx, "commit transaction", customerID, err)
	}

	s.logger.Info("purchase committed",
		zap.Uint("purchaseId", purchaseID),
		zap.Uint("customerId", customerID),
		zap.Int("lineCount", len(lines)),
		zap.String("totalPrice", total.StringFixed(2)),
	)

	return &dto.PurchaseResult{
		PurchaseID: purchaseID,
		TotalPrice: total,
		Lines:      lines,
	}, nil
}

func (s *PurchaseService) purchaseSingleItem(ctx context.Context, tx *sql.Tx, customerID uint, purchaseID uint, item dto.CartItem) (*domain.PurchaseLine, error) {
	// 1. Fetch product with lock
	product, err := s.productRepo.FindByIDForUpdate(ctx, tx, item.ProductID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewInvalidProductError(item.ProductID)
		}
		return nil, s.persistenceFailure(ctx, "lock product", customerID, err)
	}

	// 2. Check stock
	if !product.CanSupply(item.Units) {
		return nil, apperrors.NewInsufficientStockError(item.ProductID)
	}

	// 3. Record line with the current price
	line := domain.PurchaseLine{
		PurchaseID: purchaseID,
		ProductID:  product.ID,
		Units:      item.Units,
		UnitPrice:  product.Price,
	}

	line.ID, err = s.lineRepo.Insert(ctx, tx, line)
	if err != nil {
		return nil, s.persistenceFailure(ctx, "insert purchase line", customerID, err)
	}

	// 4. Decrement stock
	err = s.productRepo.DecrementAvailableQuantity(ctx, tx, item.ProductID, item.Units)
	if err != nil {
		if _, ok := apperrors.IsConflictError(err); ok {
			return nil, apperrors.NewInsufficientStockError(item.ProductID)
		}
		return nil, s.persistenceFailure(ctx, "decrement stock", customerID, err)
	}

	return &line, nil
}

// persistenceFailure logs a storage failure once, with the request trace,
// and turns it into the InternalError returned to the handler.
func (s *PurchaseService) persistenceFailure(ctx context.Context, operation string, customerID uint, err error) error {
	s.logger.Error("purchase transaction failed",
		zap.String("traceId", commons.TraceIDFromContext(ctx)),
		zap.String("operation", operation),
		zap.Uint("customerId", customerID),
		zap.Bool("lockContention", mysql.IsLockFailure(err)),
		zap.Error(err),
	)
	return apperrors.NewInternalError(operation, err)
}
