package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tienda/internal/auth"
	authmw "tienda/internal/auth/middleware"
	"tienda/internal/commons"
	"tienda/internal/config"
	"tienda/internal/domain"
	productctrl "tienda/internal/product/controller"
	purchasectrl "tienda/internal/purchase/controller"
)

type Modules struct {
	Auth     *auth.Module
	Product  *productctrl.ProductController
	Purchase *purchasectrl.PurchaseController
}

// NewRouter mounts every route. limiter may be nil, which disables rate
// limiting on the auth endpoints.
func NewRouter(m Modules, limiter goredis.Cmdable, cfg config.AuthConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(commons.TraceMiddleware)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		commons.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})

	authenticate := authmw.Authenticate(m.Auth.Tokens, logger)
	adminOnly := authmw.RequireRole(logger, domain.RoleAdministrator)
	customerOnly := authmw.RequireRole(logger, domain.RoleCustomer)

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authmw.RateLimiter(limiter, cfg.RateLimitCount, cfg.RateLimitWindow, logger))
			r.Post("/signup", m.Auth.Controller.Signup)
			r.Post("/signin", m.Auth.Controller.Signin)
		})
		r.Post("/signout", m.Auth.Controller.Signout)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", m.Product.List)
		r.Get("/{id}", m.Product.Get)
		r.With(adminOnly).Post("/", m.Product.Create)
		r.With(adminOnly).Put("/{id}", m.Product.Update)
		r.With(adminOnly).Delete("/{id}", m.Product.Delete)
	})

	r.Route("/api/purchases", func(r chi.Router) {
		r.Use(authenticate)
		r.With(customerOnly).Post("/buy", m.Purchase.Buy)
		r.With(customerOnly).Get("/", m.Purchase.History)
		r.With(customerOnly).Get("/details/{id}", m.Purchase.Receipt)
		r.With(adminOnly).Get("/all", m.Purchase.All)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				zap.String("traceId", commons.TraceIDFromContext(r.Context())),
				zap.String("requestId", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
