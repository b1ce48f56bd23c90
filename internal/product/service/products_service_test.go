package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tienda/internal/domain"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
	"tienda/internal/product/repository"
)

type mockRepository struct {
	FindAllFunc  func(ctx context.Context) ([]domain.Product, error)
	FindByIDFunc func(ctx context.Context, id int) (*domain.Product, error)
	CreateFunc   func(ctx context.Context, p domain.Product) (int, error)
	UpdateFunc   func(ctx context.Context, id int, changes repository.ProductChanges) error
	DeleteFunc   func(ctx context.Context, id int) error
}

func (m *mockRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) Create(ctx context.Context, p domain.Product) (int, error) {
	return m.CreateFunc(ctx, p)
}

func (m *mockRepository) Update(ctx context.Context, id int, changes repository.ProductChanges) error {
	return m.UpdateFunc(ctx, id, changes)
}

func (m *mockRepository) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func intPtr(i int) *int {
	return &i
}

func TestList_MapsProducts(t *testing.T) {
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{{
				ID:                1,
				LotNumber:         "100",
				Name:              "Cafe",
				Price:             decimal.NewFromInt(2000),
				AvailableQuantity: 15,
				IntakeDate:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			}}, nil
		},
	}

	products, err := NewService(repo, zap.NewNop()).List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cafe", products[0].Name)
	assert.Equal(t, "2024-01-15", products[0].IntakeDate)
}

func TestList_StorageFailure(t *testing.T) {
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Product, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := NewService(repo, zap.NewNop()).List(context.Background())
	ie, ok := apperrors.IsInternalError(err)
	require.True(t, ok)
	assert.Equal(t, "list products", ie.Message)
}

func TestGet_NotFoundPassesThrough(t *testing.T) {
	repo := &mockRepository{
		FindByIDFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			return nil, apperrors.NewNotFoundError("product with id 9 not found")
		},
	}

	_, err := NewService(repo, zap.NewNop()).Get(context.Background(), 9)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCreate_ParsesIntakeDate(t *testing.T) {
	var stored domain.Product
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, p domain.Product) (int, error) {
			stored = p
			return 42, nil
		},
	}

	id, err := NewService(repo, zap.NewNop()).Create(context.Background(), dto.CreateProductRequest{
		LotNumber:         "100200300",
		Name:              "Cafe",
		Price:             decimal.NewFromInt(2000),
		AvailableQuantity: intPtr(15),
		IntakeDate:        "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, 15, stored.AvailableQuantity)
	assert.Equal(t, 2024, stored.IntakeDate.Year())
	assert.Equal(t, time.January, stored.IntakeDate.Month())
}

func TestUpdate_PassesOnlyGivenFields(t *testing.T) {
	var got repository.ProductChanges
	repo := &mockRepository{
		UpdateFunc: func(ctx context.Context, id int, changes repository.ProductChanges) error {
			got = changes
			return nil
		},
	}

	date := "2024-03-01"
	err := NewService(repo, zap.NewNop()).Update(context.Background(), 1, dto.UpdateProductRequest{
		AvailableQuantity: intPtr(3),
		IntakeDate:        &date,
	})
	require.NoError(t, err)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.Price)
	require.NotNil(t, got.AvailableQuantity)
	assert.Equal(t, 3, *got.AvailableQuantity)
	require.NotNil(t, got.IntakeDate)
	assert.Equal(t, time.March, got.IntakeDate.Month())
}

func TestDelete_ConflictPassesThrough(t *testing.T) {
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id int) error {
			return apperrors.NewConflictError("product 1 appears in recorded purchases")
		},
	}

	err := NewService(repo, zap.NewNop()).Delete(context.Background(), 1)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestDelete_StorageFailure(t *testing.T) {
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id int) error {
			return errors.New("timeout")
		},
	}

	err := NewService(repo, zap.NewNop()).Delete(context.Background(), 1)
	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
}
