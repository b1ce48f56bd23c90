package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tienda/internal/domain"
	apperrors "tienda/internal/errors"
	"tienda/internal/infrastructure/mysql"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, firstName, lastName, username, email, passwordHash, roleId, createdAt, updatedAt
		FROM User
		WHERE username = ?
	`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
		&u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %q not found", username))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	return &u, nil
}

// FindTakenFields reports which of username and email already belong to a user.
func (r *MySQLUserRepository) FindTakenFields(ctx context.Context, username, email string) (usernameTaken bool, emailTaken bool, err error) {
	query := `
		SELECT
			EXISTS(SELECT 1 FROM User WHERE username = ?),
			EXISTS(SELECT 1 FROM User WHERE email = ?)
	`

	if err := r.db.QueryRowContext(ctx, query, username, email).Scan(&usernameTaken, &emailTaken); err != nil {
		return false, false, fmt.Errorf("checking taken user fields: %w", err)
	}
	return usernameTaken, emailTaken, nil
}

func (r *MySQLUserRepository) RoleExists(ctx context.Context, roleID int) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM Role WHERE id = ?)`, roleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking role: %w", err)
	}
	return exists, nil
}

func (r *MySQLUserRepository) Create(ctx context.Context, u domain.User) (uint, error) {
	query := `
		INSERT INTO User (firstName, lastName, username, email, passwordHash, roleId)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, u.FirstName, u.LastName, u.Username, u.Email, u.PasswordHash, u.RoleID)
	if mysql.IsDuplicateEntry(err) {
		return 0, apperrors.NewConflictError("username or email already in use")
	}
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}
