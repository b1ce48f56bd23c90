package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

type table struct {
	name  string
	query string
}

// Tables in dependency order; Reset drops them in reverse.
var schema = []table{
	{"Role", `
	CREATE TABLE IF NOT EXISTS Role (
		id INT NOT NULL PRIMARY KEY,
		name VARCHAR(50) NOT NULL
	)`},
	{"User", `
	CREATE TABLE IF NOT EXISTS User (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		firstName VARCHAR(100) NOT NULL,
		lastName VARCHAR(100) NOT NULL,
		username VARCHAR(15) NOT NULL UNIQUE,
		email VARCHAR(40) NOT NULL UNIQUE,
		passwordHash VARCHAR(255) NOT NULL,
		roleId INT NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (roleId) REFERENCES Role(id)
	)`},
	{"Product", `
	CREATE TABLE IF NOT EXISTS Product (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		lotNumber VARCHAR(15) NOT NULL,
		name VARCHAR(50) NOT NULL,
		price DECIMAL(15,2) NOT NULL,
		availableQuantity INT NOT NULL,
		intakeDate DATE NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT chk_available_quantity CHECK (availableQuantity >= 0)
	)`},
	{"Purchase", `
	CREATE TABLE IF NOT EXISTS Purchase (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customerId INT UNSIGNED NOT NULL,
		totalPrice DECIMAL(20,2) NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (customerId) REFERENCES User(id),
		INDEX idx_customer (customerId)
	)`},
	{"PurchaseLine", `
	CREATE TABLE IF NOT EXISTS PurchaseLine (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		purchaseId INT UNSIGNED NOT NULL,
		productId INT NOT NULL,
		units INT NOT NULL,
		unitPrice DECIMAL(15,2) NOT NULL,
		FOREIGN KEY (purchaseId) REFERENCES Purchase(id) ON DELETE CASCADE,
		FOREIGN KEY (productId) REFERENCES Product(id),
		INDEX idx_purchase (purchaseId),
		INDEX idx_product (productId)
	)`},
}

// TableNames lists the schema tables in creation order.
func TableNames() []string {
	names := make([]string, len(schema))
	for i, t := range schema {
		names[i] = t.name
	}
	return names
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, t := range schema {
		if _, err := db.ExecContext(ctx, t.query); err != nil {
			return fmt.Errorf("creating table %s: %w", t.name, err)
		}
	}
	return nil
}

// Reset drops every table and creates the schema again.
func Reset(ctx context.Context, db *sql.DB) error {
	for i := len(schema) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+schema[i].name); err != nil {
			return fmt.Errorf("dropping table %s: %w", schema[i].name, err)
		}
	}
	return Migrate(ctx, db)
}
