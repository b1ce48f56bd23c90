package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tienda/internal/domain"
	apperrors "tienda/internal/errors"
	"tienda/internal/infrastructure/mysql"
)

const productColumns = `id, lotNumber, name, price, availableQuantity, intakeDate, createdAt, updatedAt`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.LotNumber, &p.Name, &p.Price, &p.AvailableQuantity,
		&p.IntakeDate, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *MySQLRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM Product ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	var p domain.Product
	err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM Product WHERE id = ?`, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

// FindByIDForUpdate reads the product inside tx and locks its row until the
// transaction ends, so concurrent purchases of the same product serialize.
func (r *MySQLRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Product, error) {
	var p domain.Product
	err := scanProduct(tx.QueryRowContext(ctx, `SELECT `+productColumns+` FROM Product WHERE id = ? FOR UPDATE`, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking product by id: %w", err)
	}

	return &p, nil
}

// DecrementAvailableQuantity takes units from the product inside tx. The
// update only matches while enough units remain; otherwise a ConflictError
// is returned and nothing is written.
func (r *MySQLRepository) DecrementAvailableQuantity(ctx context.Context, tx *sql.Tx, id int, units int) error {
	query := `
		UPDATE Product
		SET availableQuantity = availableQuantity - ?
		WHERE id = ? AND availableQuantity >= ?`

	result, err := tx.ExecContext(ctx, query, units, id, units)
	if err != nil {
		return fmt.Errorf("decrementing product quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewConflictError(fmt.Sprintf("product %d has fewer than %d units available", id, units))
	}

	return nil
}

func (r *MySQLRepository) Create(ctx context.Context, p domain.Product) (int, error) {
	query := `
		INSERT INTO Product (lotNumber, name, price, availableQuantity, intakeDate)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, p.LotNumber, p.Name, p.Price, p.AvailableQuantity, p.IntakeDate)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

// ProductChanges holds the columns to update; nil fields are left as they are.
type ProductChanges struct {
	LotNumber         *string
	Name              *string
	Price             *decimal.Decimal
	AvailableQuantity *int
	IntakeDate        *time.Time
}

func (r *MySQLRepository) Update(ctx context.Context, id int, changes ProductChanges) error {
	var sets []string
	var args []interface{}

	if changes.LotNumber != nil {
		sets = append(sets, "lotNumber = ?")
		args = append(args, *changes.LotNumber)
	}
	if changes.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *changes.Name)
	}
	if changes.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *changes.Price)
	}
	if changes.AvailableQuantity != nil {
		sets = append(sets, "availableQuantity = ?")
		args = append(args, *changes.AvailableQuantity)
	}
	if changes.IntakeDate != nil {
		sets = append(sets, "intakeDate = ?")
		args = append(args, *changes.IntakeDate)
	}

	if len(sets) == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product %d does not exist or no fields to update were given", id))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE Product SET %s WHERE id = ?`, strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Product WHERE id = ?`, id)
	if mysql.IsRowReferenced(err) {
		return apperrors.NewConflictError(fmt.Sprintf("product %d appears in recorded purchases", id))
	}
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}
