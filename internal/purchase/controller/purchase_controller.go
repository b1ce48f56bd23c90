package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tienda/internal/commons"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
	"tienda/internal/validation"
)

// Label logged for every failed purchase read.
const readFailureLabel = "ErrorAlConsultarCompras"

type PurchaseExecutor interface {
	ExecutePurchase(ctx context.Context, customerID uint, cart []dto.CartItem) (*dto.PurchaseResult, error)
}

type PurchaseQueries interface {
	GetPurchaseReceipt(ctx context.Context, purchaseID uint, customerID uint) (*dto.PurchaseReceipt, error)
	ListPurchaseHistory(ctx context.Context, customerID uint) ([]dto.ProductPurchaseHistory, error)
	ListAllPurchases(ctx context.Context) ([]dto.PurchaseSummary, error)
}

type PurchaseController struct {
	executor PurchaseExecutor
	queries  PurchaseQueries
	logger   *zap.Logger
}

func NewPurchaseController(executor PurchaseExecutor, queries PurchaseQueries, logger *zap.Logger) *PurchaseController {
	return &PurchaseController{
		executor: executor,
		queries:  queries,
		logger:   logger,
	}
}

func (c *PurchaseController) Buy(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceIDFromContext(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	identity, ok := c.identity(w, r)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		ve, _ := apperrors.IsValidationError(err)
		commons.WriteValidationError(w, r, ve.Message, ve.Details, c.logger)
		return
	}

	if err := validation.Struct(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		commons.WriteValidationError(w, r, ve.Message, ve.Details, c.logger)
		return
	}

	result, err := c.executor.ExecutePurchase(r.Context(), identity.UserID, req.Cart())
	if err != nil {
		c.handleBuyError(w, r, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.PurchaseResponse{
		TraceID:    traceID,
		Message:    "Compra realizada correctamente.",
		PurchaseID: result.PurchaseID,
		TotalPrice: result.TotalPrice,
	}, c.logger)
}

func (c *PurchaseController) Receipt(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.identity(w, r)
	if !ok {
		return
	}

	purchaseID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || purchaseID == 0 {
		commons.WriteValidationError(w, r, "invalid purchase id", []apperrors.ValidationDetail{{
			Field:   "id",
			Message: "id must be a positive integer",
		}}, c.logger)
		return
	}

	receipt, err := c.queries.GetPurchaseReceipt(r.Context(), uint(purchaseID), identity.UserID)
	if err != nil {
		c.handleReadError(w, r, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.PurchaseReceiptResponse{Purchase: *receipt}, c.logger)
}

func (c *PurchaseController) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.identity(w, r)
	if !ok {
		return
	}

	history, err := c.queries.ListPurchaseHistory(r.Context(), identity.UserID)
	if err != nil {
		c.handleReadError(w, r, err)
		return
	}

	if len(history) == 0 {
		commons.WriteError(w, r, http.StatusNotFound, "NO_PURCHASES", "no purchases found for this customer", c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.PurchaseHistoryResponse{Products: history}, c.logger)
}

func (c *PurchaseController) All(w http.ResponseWriter, r *http.Request) {
	purchases, err := c.queries.ListAllPurchases(r.Context())
	if err != nil {
		c.handleReadError(w, r, err)
		return
	}

	if len(purchases) == 0 {
		commons.WriteError(w, r, http.StatusNotFound, "NO_PURCHASES", "no purchases have been recorded", c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.PurchaseListResponse{Purchases: purchases}, c.logger)
}

func (c *PurchaseController) identity(w http.ResponseWriter, r *http.Request) (commons.Identity, bool) {
	identity, ok := commons.IdentityFromContext(r.Context())
	if !ok {
		commons.WriteError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", c.logger)
	}
	return identity, ok
}

func (c *PurchaseController) handleBuyError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	if pe, ok := apperrors.IsPurchaseError(err); ok {
		commons.WriteJSON(w, http.StatusBadRequest, dto.PurchaseErrorResponse{
			TraceID:   commons.TraceIDFromContext(r.Context()),
			Error:     string(pe.Code),
			Message:   pe.Error(),
			ProductID: pe.ProductID,
		}, c.logger)
		return
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		commons.WriteValidationError(w, r, ve.Message, ve.Details, c.logger)
		return
	}

	// Storage failures were already logged by the purchase service.
	if _, ok := apperrors.IsInternalError(err); !ok {
		logger.Error("unexpected error", zap.Error(err))
	}
	commons.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "the purchase could not be completed", c.logger)
}

func (c *PurchaseController) handleReadError(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		commons.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), c.logger)
		return
	}

	c.logger.Error(readFailureLabel,
		zap.String("traceId", commons.TraceIDFromContext(r.Context())),
		zap.Error(err),
	)
	commons.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", c.logger)
}
