package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tienda/internal/domain"
)

type MySQLPurchaseLineRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseLineRepository(db *sql.DB) *MySQLPurchaseLineRepository {
	return &MySQLPurchaseLineRepository{db: db}
}

func (r *MySQLPurchaseLineRepository) Insert(ctx context.Context, tx *sql.Tx, line domain.PurchaseLine) (uint, error) {
	query := `INSERT INTO PurchaseLine (purchaseId, productId, units, unitPrice) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, line.PurchaseID, line.ProductID, line.Units, line.UnitPrice)
	if err != nil {
		return 0, fmt.Errorf("inserting purchase line: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}
