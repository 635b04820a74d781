package main

import (
	"database/sql"
	"log"

	"shopcore-be/internal/config"
	"shopcore-be/internal/db"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the admin account and a small sample catalog. Safe to run more than
// once: existing data is left alone.
func main() {
	cfg := config.LoadConfig()
	database := db.InitDB(cfg)
	defer database.Close()

	if err := seedAdmin(database, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	if err := seedCatalog(database); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	log.Println("Seeding complete.")
}

func seedAdmin(database *sql.DB, password string) error {
	if password == "" {
		password = "admin123"
	}

	var exists bool
	err := database.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = 'admin')`,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		log.Println("Admin user already present, skipping.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := database.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var adminID int64
	err = tx.QueryRow(`
		INSERT INTO users (username, email, password_hash, first_name, last_name, role, enabled)
		VALUES ('admin', 'admin@shopcore.local', $1, 'Admin', 'User', 'ADMIN', TRUE)
		RETURNING id
	`, string(hash)).Scan(&adminID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT INTO carts (user_id) VALUES ($1)`, adminID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Println("Admin user created: username=admin")
	return nil
}

type sampleProduct struct {
	name        string
	description string
	price       decimal.Decimal
	stock       int
	category    string
}

func seedCatalog(database *sql.DB) error {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already present, skipping.")
		return nil
	}

	categories := map[string]string{
		"Electronics": "Electronic devices and accessories",
		"Clothing":    "Fashion and apparel",
		"Books":       "Books and literature",
	}

	categoryIDs := make(map[string]int64, len(categories))
	for name, description := range categories {
		var id int64
		err := database.QueryRow(`
			INSERT INTO categories (name, description)
			VALUES ($1, $2)
			RETURNING id
		`, name, description).Scan(&id)
		if err != nil {
			return err
		}
		categoryIDs[name] = id
	}

	products := []sampleProduct{
		{"MacBook Pro", "Apple MacBook Pro 14-inch with M3 chip", decimal.RequireFromString("1999.99"), 15, "Electronics"},
		{"Wireless Headphones", "Noise-cancelling over-ear headphones", decimal.RequireFromString("249.50"), 40, "Electronics"},
		{"Denim Jacket", "Classic fit denim jacket", decimal.RequireFromString("89.90"), 25, "Clothing"},
		{"Cotton T-Shirt", "Plain crew-neck cotton t-shirt", decimal.RequireFromString("19.99"), 100, "Clothing"},
		{"The Go Programming Language", "Donovan & Kernighan", decimal.RequireFromString("44.95"), 30, "Books"},
	}

	for _, p := range products {
		_, err := database.Exec(`
			INSERT INTO products (name, description, price, stock_quantity, active, category_id)
			VALUES ($1, $2, $3, $4, TRUE, $5)
		`, p.name, p.description, p.price, p.stock, categoryIDs[p.category])
		if err != nil {
			return err
		}
	}

	log.Println("Sample catalog created.")
	return nil
}
