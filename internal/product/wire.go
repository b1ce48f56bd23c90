package product

import (
	"database/sql"

	"go.uber.org/zap"

	"tienda/internal/infrastructure/logger"
	"tienda/internal/product/controller"
	"tienda/internal/product/repository"
	"tienda/internal/product/service"
)

func NewModule(db *sql.DB, base *zap.Logger) *controller.ProductController {
	log := logger.ForService(base, "product")
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo, log)
	return controller.NewProductController(svc, log)
}
