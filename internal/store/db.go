package store

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// InitSchema creates the tables directly, for the CLI and tests which run
// without the migrations directory.
func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		price INTEGER NOT NULL,
		original_price INTEGER DEFAULT 0,
		image_url TEXT,
		images TEXT DEFAULT '[]',
		category TEXT,
		rating REAL DEFAULT 0,
		review_count INTEGER DEFAULT 0,
		features TEXT DEFAULT '[]',
		status TEXT DEFAULT 'available',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id TEXT NOT NULL,
		product_id INTEGER,
		product_name TEXT,
		quantity INTEGER DEFAULT 1,
		unit_price INTEGER DEFAULT 0,
		total_amount INTEGER DEFAULT 0,
		customer_name TEXT,
		customer_mobile TEXT,
		customer_email TEXT,
		street TEXT,
		city TEXT,
		state TEXT,
		pincode TEXT,
		payment_method TEXT DEFAULT 'Online',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
