package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tienda/internal/domain"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
	"tienda/internal/product/repository"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (int, error)
	Update(ctx context.Context, id int, changes repository.ProductChanges) error
	Delete(ctx context.Context, id int) error
}

type ProductService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]dto.ProductDTO, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("list products", err)
	}

	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toDTO(p))
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*dto.ProductDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, err
		}
		return nil, apperrors.NewInternalError("get product", err)
	}

	out := toDTO(*p)
	return &out, nil
}

func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (int, error) {
	intake, err := time.Parse(time.DateOnly, req.IntakeDate)
	if err != nil {
		return 0, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "fechaIngreso",
			Message: "fechaIngreso must be a date in YYYY-MM-DD format",
		})
	}

	id, err := s.repo.Create(ctx, domain.Product{
		LotNumber:         req.LotNumber,
		Name:              req.Name,
		Price:             req.Price,
		AvailableQuantity: *req.AvailableQuantity,
		IntakeDate:        intake,
	})
	if err != nil {
		return 0, apperrors.NewInternalError("create product", err)
	}

	s.logger.Info("product created", zap.Int("productId", id))
	return id, nil
}

func (s *ProductService) Update(ctx context.Context, id int, req dto.UpdateProductRequest) error {
	changes := repository.ProductChanges{
		LotNumber:         req.LotNumber,
		Name:              req.Name,
		Price:             req.Price,
		AvailableQuantity: req.AvailableQuantity,
	}
	if req.IntakeDate != nil {
		intake, err := time.Parse(time.DateOnly, *req.IntakeDate)
		if err != nil {
			return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "fechaIngreso",
				Message: "fechaIngreso must be a date in YYYY-MM-DD format",
			})
		}
		changes.IntakeDate = &intake
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return err
		}
		return apperrors.NewInternalError("update product", err)
	}

	s.logger.Info("product updated", zap.Int("productId", id))
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return err
		}
		if _, ok := apperrors.IsConflictError(err); ok {
			return err
		}
		return apperrors.NewInternalError("delete product", err)
	}

	s.logger.Info("product deleted", zap.Int("productId", id))
	return nil
}

func toDTO(p domain.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:                p.ID,
		LotNumber:         p.LotNumber,
		Name:              p.Name,
		Price:             p.Price,
		AvailableQuantity: p.AvailableQuantity,
		IntakeDate:        p.IntakeDate.Format(time.DateOnly),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
