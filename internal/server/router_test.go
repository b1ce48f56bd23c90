package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tienda/internal/auth"
	authctrl "tienda/internal/auth/controller"
	"tienda/internal/auth/token"
	"tienda/internal/commons"
	"tienda/internal/config"
	"tienda/internal/domain"
	"tienda/internal/dto"
	productctrl "tienda/internal/product/controller"
	purchasectrl "tienda/internal/purchase/controller"
)

type stubProducts struct{}

func (stubProducts) List(ctx context.Context) ([]dto.ProductDTO, error) {
	return []dto.ProductDTO{}, nil
}

func (stubProducts) Get(ctx context.Context, id int) (*dto.ProductDTO, error) {
	return &dto.ProductDTO{ID: id}, nil
}

func (stubProducts) Create(ctx context.Context, req dto.CreateProductRequest) (int, error) {
	return 1, nil
}

func (stubProducts) Update(ctx context.Context, id int, req dto.UpdateProductRequest) error {
	return nil
}

func (stubProducts) Delete(ctx context.Context, id int) error {
	return nil
}

type stubPurchases struct{}

func (stubPurchases) ExecutePurchase(ctx context.Context, customerID uint, cart []dto.CartItem) (*dto.PurchaseResult, error) {
	return &dto.PurchaseResult{PurchaseID: 1, TotalPrice: decimal.NewFromInt(2000)}, nil
}

func (stubPurchases) GetPurchaseReceipt(ctx context.Context, purchaseID uint, customerID uint) (*dto.PurchaseReceipt, error) {
	return &dto.PurchaseReceipt{PurchaseID: purchaseID}, nil
}

func (stubPurchases) ListPurchaseHistory(ctx context.Context, customerID uint) ([]dto.ProductPurchaseHistory, error) {
	return []dto.ProductPurchaseHistory{{ProductID: 1}}, nil
}

func (stubPurchases) ListAllPurchases(ctx context.Context) ([]dto.PurchaseSummary, error) {
	return []dto.PurchaseSummary{{PurchaseID: 1}}, nil
}

type stubAuth struct{}

func (stubAuth) Signup(ctx context.Context, req dto.SignupRequest) (uint, error) {
	return 1, nil
}

func (stubAuth) Signin(ctx context.Context, req dto.SigninRequest) (*dto.SigninResult, error) {
	return &dto.SigninResult{UserID: 1, RoleID: domain.RoleCustomer, Token: "t"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *token.Manager) {
	t.Helper()
	tokens := token.NewManager("secret", time.Hour)
	logger := zap.NewNop()

	modules := Modules{
		Auth: &auth.Module{
			Controller: authctrl.NewAuthController(stubAuth{}, time.Hour, logger),
			Tokens:     tokens,
		},
		Product:  productctrl.NewProductController(stubProducts{}, logger),
		Purchase: purchasectrl.NewPurchaseController(stubPurchases{}, stubPurchases{}, logger),
	}

	cfg := config.AuthConfig{RateLimitCount: 5, RateLimitWindow: time.Minute}
	return NewRouter(modules, nil, cfg, logger), tokens
}

func bearer(t *testing.T, tokens *token.Manager, userID uint, roleID int) string {
	t.Helper()
	raw, err := tokens.Issue(userID, roleID)
	require.NoError(t, err)
	return "Bearer " + raw
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(commons.TraceIDHeader))
}

func TestRouter_Guards(t *testing.T) {
	router, tokens := newTestRouter(t)
	admin := bearer(t, tokens, 1, domain.RoleAdministrator)
	customer := bearer(t, tokens, 7, domain.RoleCustomer)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		body   string
		want   int
	}{
		{"products need a session", http.MethodGet, "/api/products", "", "", http.StatusBadRequest},
		{"customer lists products", http.MethodGet, "/api/products", customer, "", http.StatusOK},
		{"customer cannot create products", http.MethodPost, "/api/products", customer, "{}", http.StatusForbidden},
		{"admin deletes product", http.MethodDelete, "/api/products/3", admin, "", http.StatusOK},
		{"customer buys", http.MethodPost, "/api/purchases/buy", customer, `{"productos":[{"id":1,"unidades":1}]}`, http.StatusOK},
		{"admin cannot buy", http.MethodPost, "/api/purchases/buy", admin, `{"productos":[{"id":1,"unidades":1}]}`, http.StatusForbidden},
		{"customer history", http.MethodGet, "/api/purchases", customer, "", http.StatusOK},
		{"customer receipt", http.MethodGet, "/api/purchases/details/1", customer, "", http.StatusOK},
		{"customer cannot list all", http.MethodGet, "/api/purchases/all", customer, "", http.StatusForbidden},
		{"admin lists all", http.MethodGet, "/api/purchases/all", admin, "", http.StatusOK},
		{"invalid token", http.MethodGet, "/api/purchases", "Bearer nope", "", http.StatusUnauthorized},
		{"signout is public", http.MethodPost, "/api/auth/signout", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
