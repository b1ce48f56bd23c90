package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"tienda/internal/domain"
	"tienda/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/tienda_test?parseTime=true&clientFoundRows=true"

// SetupTestDB configura una base de datos de prueba.
// Usa TEST_MYSQL_DSN o, por defecto, una BD 'tienda_test' en localhost:3306.
// El test se omite si la BD no responde.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables crea el esquema y los roles base.
func SetupTestTables(t *testing.T, db *sql.DB) {
	ctx := context.Background()
	if err := mysql.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO Role (id, name) VALUES (?, 'Administrador'), (?, 'Cliente')
		ON DUPLICATE KEY UPDATE name = VALUES(name)`,
		domain.RoleAdministrator, domain.RoleCustomer,
	)
	if err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}
}

// CleanupTestDB limpia la BD de prueba y cierra la conexión.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := mysql.TableNames()
	for i := len(tables) - 1; i >= 0; i-- {
		if tables[i] == "Role" {
			continue
		}
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", tables[i])); err != nil {
			t.Logf("failed to clean table %s: %v", tables[i], err)
		}
	}

	db.Close()
}

// InsertProduct crea un producto y devuelve su id.
func InsertProduct(t *testing.T, db *sql.DB, name string, price string, quantity int) int {
	result, err := db.Exec(`
		INSERT INTO Product (lotNumber, name, price, availableQuantity, intakeDate)
		VALUES ('100200300', ?, ?, ?, '2024-01-15')`,
		name, price, quantity,
	)
	if err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read product id: %v", err)
	}
	return int(id)
}

// InsertUser crea un usuario con el rol indicado y devuelve su id.
func InsertUser(t *testing.T, db *sql.DB, username string, roleID int) uint {
	result, err := db.Exec(`
		INSERT INTO User (firstName, lastName, username, email, passwordHash, roleId)
		VALUES ('Test', 'User', ?, ?, 'x', ?)`,
		username, username+"@tienda.test", roleID,
	)
	if err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read user id: %v", err)
	}
	return uint(id)
}

// AvailableQuantity lee la cantidad disponible actual de un producto.
func AvailableQuantity(t *testing.T, db *sql.DB, productID int) int {
	var qty int
	if err := db.QueryRow(`SELECT availableQuantity FROM Product WHERE id = ?`, productID).Scan(&qty); err != nil {
		t.Fatalf("failed to read product quantity: %v", err)
	}
	return qty
}

// CountRows cuenta las filas de una tabla.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	var count int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}
