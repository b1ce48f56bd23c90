package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tienda/internal/domain"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
	productrepo "tienda/internal/product/repository"
	purchaserepo "tienda/internal/purchase/repository"
	"tienda/internal/testutil"
)

func TestExecutePurchase_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	products := productrepo.NewMySQLRepository(db)
	purchases := purchaserepo.NewMySQLPurchaseRepository(db)
	svc := NewPurchaseService(db, products, purchaserepo.NewMySQLPurchaseLineRepository(db), purchases, zap.NewNop(), 5*time.Second)
	queries := NewQueryService(purchases, zap.NewNop())

	customerID := testutil.InsertUser(t, db, "cliente1", domain.RoleCustomer)
	productID := testutil.InsertProduct(t, db, "Cafe", "2000", 15)

	t.Run("single item", func(t *testing.T) {
		result, err := svc.ExecutePurchase(ctx, customerID, []dto.CartItem{{ProductID: productID, Units: 5}})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10000).Equal(result.TotalPrice))
		assert.Equal(t, 10, testutil.AvailableQuantity(t, db, productID))

		receipt, err := queries.GetPurchaseReceipt(ctx, result.PurchaseID, customerID)
		require.NoError(t, err)
		require.NotNil(t, receipt.TotalPrice)
		assert.True(t, decimal.NewFromInt(10000).Equal(*receipt.TotalPrice))
		require.Len(t, receipt.Lines, 1)
		assert.Equal(t, "Cafe", receipt.Lines[0].ProductName)

		again, err := queries.GetPurchaseReceipt(ctx, result.PurchaseID, customerID)
		require.NoError(t, err)
		assert.Equal(t, receipt, again)
	})

	t.Run("insufficient stock leaves no trace", func(t *testing.T) {
		before := testutil.CountRows(t, db, "Purchase")

		_, err := svc.ExecutePurchase(ctx, customerID, []dto.CartItem{{ProductID: productID, Units: 999}})
		pe, ok := apperrors.IsPurchaseError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.InsufficientStock, pe.Code)
		assert.Equal(t, productID, pe.ProductID)

		assert.Equal(t, before, testutil.CountRows(t, db, "Purchase"))
		assert.Equal(t, 10, testutil.AvailableQuantity(t, db, productID))
	})

	t.Run("invalid product after valid one rolls back everything", func(t *testing.T) {
		purchasesBefore := testutil.CountRows(t, db, "Purchase")
		linesBefore := testutil.CountRows(t, db, "PurchaseLine")

		_, err := svc.ExecutePurchase(ctx, customerID, []dto.CartItem{
			{ProductID: productID, Units: 1},
			{ProductID: 999999, Units: 1},
		})
		pe, ok := apperrors.IsPurchaseError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.InvalidProduct, pe.Code)
		assert.Equal(t, 999999, pe.ProductID)

		assert.Equal(t, purchasesBefore, testutil.CountRows(t, db, "Purchase"))
		assert.Equal(t, linesBefore, testutil.CountRows(t, db, "PurchaseLine"))
		assert.Equal(t, 10, testutil.AvailableQuantity(t, db, productID))
	})

	t.Run("duplicate entries decrement cumulatively", func(t *testing.T) {
		result, err := svc.ExecutePurchase(ctx, customerID, []dto.CartItem{
			{ProductID: productID, Units: 2},
			{ProductID: productID, Units: 3},
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10000).Equal(result.TotalPrice))
		assert.Equal(t, 5, testutil.AvailableQuantity(t, db, productID))

		receipt, err := queries.GetPurchaseReceipt(ctx, result.PurchaseID, customerID)
		require.NoError(t, err)
		assert.Len(t, receipt.Lines, 2)
	})

	t.Run("price change does not alter recorded lines", func(t *testing.T) {
		newPrice := decimal.NewFromInt(9999)
		require.NoError(t, products.Update(ctx, productID, productrepo.ProductChanges{Price: &newPrice}))

		history, err := queries.ListPurchaseHistory(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		for _, entry := range history[0].Purchases {
			assert.True(t, decimal.NewFromInt(2000).Equal(entry.UnitPrice))
		}
	})
}

func TestExecutePurchase_ConcurrentBuyersNeverOversell(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	products := productrepo.NewMySQLRepository(db)
	purchases := purchaserepo.NewMySQLPurchaseRepository(db)
	svc := NewPurchaseService(db, products, purchaserepo.NewMySQLPurchaseLineRepository(db), purchases, zap.NewNop(), 10*time.Second)

	customerID := testutil.InsertUser(t, db, "cliente2", domain.RoleCustomer)
	productID := testutil.InsertProduct(t, db, "Cafe", "2000", 5)

	const buyers = 8
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		go func() {
			_, err := svc.ExecutePurchase(context.Background(), customerID, []dto.CartItem{{ProductID: productID, Units: 1}})
			errs <- err
		}()
	}

	succeeded := 0
	for i := 0; i < buyers; i++ {
		err := <-errs
		if err == nil {
			succeeded++
			continue
		}
		pe, ok := apperrors.IsPurchaseError(err)
		require.True(t, ok, "unexpected error: %v", err)
		assert.Equal(t, apperrors.InsufficientStock, pe.Code)
	}

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, testutil.AvailableQuantity(t, db, productID))
	assert.Equal(t, 5, testutil.CountRows(t, db, "PurchaseLine"))
}
