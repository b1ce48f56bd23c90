package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tienda/internal/commons"
)

// PasswordHasher turns a plain password into the stored hash.
type PasswordHasher func(password string) (string, error)

// ApplySeed writes the seed in a single transaction. Roles are upserted so
// the call is safe on a database that already has them.
func ApplySeed(ctx context.Context, db *sql.DB, seed *commons.Seed, hash PasswordHasher) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	for _, r := range seed.Roles {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO Role (id, name) VALUES (?, ?) ON DUPLICATE KEY UPDATE name = VALUES(name)`,
			r.ID, r.Name,
		)
		if err != nil {
			return fmt.Errorf("seeding role %d: %w", r.ID, err)
		}
	}

	for _, u := range seed.Users {
		passwordHash, err := hash(u.Password)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.Username, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO User (firstName, lastName, username, email, passwordHash, roleId)
			VALUES (?, ?, ?, ?, ?, ?)`,
			u.FirstName, u.LastName, u.Username, u.Email, passwordHash, u.RoleID,
		)
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Username, err)
		}
	}

	for _, p := range seed.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return fmt.Errorf("parsing price of %s: %w", p.Name, err)
		}
		intake, err := time.Parse(time.DateOnly, p.IntakeDate)
		if err != nil {
			return fmt.Errorf("parsing intake date of %s: %w", p.Name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO Product (lotNumber, name, price, availableQuantity, intakeDate)
			VALUES (?, ?, ?, ?, ?)`,
			p.LotNumber, p.Name, price, p.AvailableQuantity, intake,
		)
		if err != nil {
			return fmt.Errorf("seeding product %s: %w", p.Name, err)
		}
	}

	return tx.Commit()
}
