package db

import (
	"database/sql"
	"fmt"

	"papa-pizza/internal/account"
)

var defaultMenu = []struct {
	Name  string
	Price float64
}{
	{"Pepperoni", 21.00},
	{"Chicken Supreme", 23.50},
	{"BBQ Meatlovers", 25.50},
	{"Veg Supreme", 22.50},
	{"Hawaiian", 19.00},
	{"Margherita", 18.50},
}

// Seed inserts the default menu and admin account. Safe to run repeatedly.
func Seed(db *sql.DB) error {
	for _, p := range defaultMenu {
		if _, err := db.Exec(
			`INSERT INTO menu (name, price) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			p.Name, p.Price,
		); err != nil {
			return fmt.Errorf("failed to seed menu item %q: %w", p.Name, err)
		}
	}

	hashed, err := account.HashPassword("admin")
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	if _, err := db.Exec(
		`INSERT INTO accounts (username, password, privilege_level)
		 SELECT $1, $2, $3
		 WHERE NOT EXISTS (SELECT 1 FROM accounts WHERE lower(username) = lower($1))`,
		"admin", hashed, int(account.PrivilegeAdmin),
	); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	return nil
}

// Reset drops every application table and the migration history.
// The caller is responsible for confirming with the user first.
func Reset(db *sql.DB) error {
	stmts := []string{
		`DROP VIEW IF EXISTS order_totals`,
		`DROP TABLE IF EXISTS order_items`,
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS menu`,
		`DROP TABLE IF EXISTS accounts`,
		`DROP TABLE IF EXISTS schema_migrations`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
	}
	return nil
}
