package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"tienda/internal/auth/controller"
	"tienda/internal/auth/repository"
	"tienda/internal/auth/service"
	"tienda/internal/auth/token"
	"tienda/internal/config"
	"tienda/internal/infrastructure/logger"
)

type Module struct {
	Controller *controller.AuthController
	Tokens     *token.Manager
}

func NewModule(db *sql.DB, cfg config.AuthConfig, base *zap.Logger) *Module {
	log := logger.ForService(base, "auth")

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	users := repository.NewMySQLUserRepository(db)
	svc := service.NewAuthService(users, tokens, log)

	return &Module{
		Controller: controller.NewAuthController(svc, cfg.TokenTTL, log),
		Tokens:     tokens,
	}
}
