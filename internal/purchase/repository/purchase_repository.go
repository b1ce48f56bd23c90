package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"tienda/internal/domain"
	apperrors "tienda/internal/errors"
)

type MySQLPurchaseRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseRepository(db *sql.DB) *MySQLPurchaseRepository {
	return &MySQLPurchaseRepository{db: db}
}

// Create inserts the purchase header inside tx. The total stays NULL until
// UpdateTotalPrice runs.
func (r *MySQLPurchaseRepository) Create(ctx context.Context, tx *sql.Tx, customerID uint) (uint, error) {
	query := `INSERT INTO Purchase (customerId, totalPrice) VALUES (?, NULL)`

	result, err := tx.ExecContext(ctx, query, customerID)
	if err != nil {
		return 0, fmt.Errorf("inserting purchase: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLPurchaseRepository) UpdateTotalPrice(ctx context.Context, tx *sql.Tx, id uint, totalPrice decimal.Decimal) error {
	query := `UPDATE Purchase SET totalPrice = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, totalPrice, id)
	if err != nil {
		return fmt.Errorf("updating purchase total price: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("purchase with id %d not found", id))
	}

	return nil
}

// FindByIDAndCustomer only returns the purchase when customerID owns it.
func (r *MySQLPurchaseRepository) FindByIDAndCustomer(ctx context.Context, id uint, customerID uint) (*domain.Purchase, error) {
	query := `
		SELECT id, customerId, totalPrice, createdAt
		FROM Purchase
		WHERE id = ? AND customerId = ?
	`

	var p domain.Purchase
	err := r.db.QueryRowContext(ctx, query, id, customerID).Scan(&p.ID, &p.CustomerID, &p.TotalPrice, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("purchase with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying purchase by id: %w", err)
	}

	return &p, nil
}

// FindAllWithCustomer lists every purchase header with its owner, newest first.
func (r *MySQLPurchaseRepository) FindAllWithCustomer(ctx context.Context) ([]domain.PurchaseWithCustomer, error) {
	query := `
		SELECT p.id, p.customerId, p.totalPrice, p.createdAt,
		       u.id, u.firstName, u.lastName, u.email
		FROM Purchase p
		JOIN User u ON u.id = p.customerId
		ORDER BY p.createdAt DESC, p.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.PurchaseWithCustomer{}
	for rows.Next() {
		var p domain.PurchaseWithCustomer
		if err := rows.Scan(
			&p.ID, &p.CustomerID, &p.TotalPrice, &p.CreatedAt,
			&p.Customer.ID, &p.Customer.FirstName, &p.Customer.LastName, &p.Customer.Email,
		); err != nil {
			return nil, fmt.Errorf("scanning purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	return purchases, nil
}

const lineDetailQuery = `
		SELECT pl.purchaseId, p.createdAt, pl.productId, pr.name, pl.units, pl.unitPrice
		FROM PurchaseLine pl
		JOIN Purchase p ON p.id = pl.purchaseId
		JOIN Product pr ON pr.id = pl.productId
	`

// FindLinesByPurchaseID returns the lines of one purchase in insertion order.
func (r *MySQLPurchaseRepository) FindLinesByPurchaseID(ctx context.Context, purchaseID uint) ([]domain.PurchaseLineDetail, error) {
	return r.queryLines(ctx, lineDetailQuery+`WHERE pl.purchaseId = ? ORDER BY pl.id`, purchaseID)
}

// FindLinesByCustomer returns every line bought by customerID, ordered by
// product and then by purchase time.
func (r *MySQLPurchaseRepository) FindLinesByCustomer(ctx context.Context, customerID uint) ([]domain.PurchaseLineDetail, error) {
	return r.queryLines(ctx, lineDetailQuery+`WHERE p.customerId = ? ORDER BY pl.productId, p.createdAt, pl.id`, customerID)
}

// FindAllLines returns every purchase line ordered by purchase.
func (r *MySQLPurchaseRepository) FindAllLines(ctx context.Context) ([]domain.PurchaseLineDetail, error) {
	return r.queryLines(ctx, lineDetailQuery+`ORDER BY pl.purchaseId, pl.id`)
}

func (r *MySQLPurchaseRepository) queryLines(ctx context.Context, query string, args ...interface{}) ([]domain.PurchaseLineDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying purchase lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.PurchaseLineDetail{}
	for rows.Next() {
		var l domain.PurchaseLineDetail
		if err := rows.Scan(&l.PurchaseID, &l.PurchasedAt, &l.ProductID, &l.ProductName, &l.Units, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning purchase line row: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase line rows: %w", err)
	}

	return lines, nil
}
