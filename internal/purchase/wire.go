package purchase

import (
	"database/sql"

	"go.uber.org/zap"

	"tienda/internal/config"
	"tienda/internal/infrastructure/logger"
	productrepo "tienda/internal/product/repository"
	"tienda/internal/purchase/controller"
	purchaserepo "tienda/internal/purchase/repository"
	"tienda/internal/purchase/service"
)

func NewModule(db *sql.DB, cfg config.PurchaseConfig, base *zap.Logger) *controller.PurchaseController {
	log := logger.ForService(base, "purchase")

	productRepo := productrepo.NewMySQLRepository(db)
	purchaseRepo := purchaserepo.NewMySQLPurchaseRepository(db)
	lineRepo := purchaserepo.NewMySQLPurchaseLineRepository(db)

	executor := service.NewPurchaseService(db, productRepo, lineRepo, purchaseRepo, log, cfg.TxTimeout)
	queries := service.NewQueryService(purchaseRepo, log)

	return controller.NewPurchaseController(executor, queries, log)
}
