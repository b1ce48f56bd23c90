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

type ProductService interface {
	List(ctx context.Context) ([]dto.ProductDTO, error)
	Get(ctx context.Context, id int) (*dto.ProductDTO, error)
	Create(ctx context.Context, req dto.CreateProductRequest) (int, error)
	Update(ctx context.Context, id int, req dto.UpdateProductRequest) error
	Delete(ctx context.Context, id int) error
}

type ProductController struct {
	service ProductService
	logger  *zap.Logger
}

func NewProductController(service ProductService, logger *zap.Logger) *ProductController {
	return &ProductController{
		service: service,
		logger:  logger,
	}
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.ProductListResponse{Products: products}, c.logger)
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.ProductResponse{Product: *product}, c.logger)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	id, err := c.service.Create(r.Context(), req)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.ProductMutationResponse{
		TraceID: commons.TraceIDFromContext(r.Context()),
		Message: "Producto creado correctamente.",
		ID:      id,
	}, c.logger)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	if err := c.service.Update(r.Context(), id, req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.ProductMutationResponse{
		TraceID: commons.TraceIDFromContext(r.Context()),
		Message: "Producto actualizado correctamente.",
		ID:      id,
	}, c.logger)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.ProductMutationResponse{
		TraceID: commons.TraceIDFromContext(r.Context()),
		Message: "Producto eliminado correctamente.",
		ID:      id,
	}, c.logger)
}

func (c *ProductController) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		commons.WriteValidationError(w, r, "invalid product id", []apperrors.ValidationDetail{{
			Field:   "id",
			Message: "id must be a positive integer",
		}}, c.logger)
		return 0, false
	}
	return id, true
}

func (c *ProductController) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		commons.WriteValidationError(w, r, ve.Message, ve.Details, c.logger)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		commons.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), c.logger)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		commons.WriteError(w, r, http.StatusConflict, "CONFLICT", err.Error(), c.logger)
		return
	}

	logger := c.logger.With(zap.String("traceId", commons.TraceIDFromContext(r.Context())))
	if ie, ok := apperrors.IsInternalError(err); ok {
		logger.Error("product operation failed", zap.String("operation", ie.Message), zap.Error(ie.Cause))
	} else {
		logger.Error("unexpected error", zap.Error(err))
	}
	commons.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", c.logger)
}
