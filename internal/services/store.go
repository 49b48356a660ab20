package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodRecipesWebsite/internal/models"

	"github.com/mattn/go-sqlite3"
)

// MemoryDatabase opens a private in-memory database.
const MemoryDatabase = ":memory:"

var seedCountries = []string{
	"Australia", "Brazil", "Canada", "China", "Egypt", "France", "Germany",
	"Ghana", "India", "Indonesia", "Italy", "Japan", "Kenya", "Mexico",
	"Nigeria", "Philippines", "South Africa", "Spain", "United Kingdom",
	"United States",
}

// Store is the sqlite database of the recipes API.
type Store struct {
	DB *sql.DB
}

// OpenStore opens the database at path and applies the schema.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == MemoryDatabase {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	store := &Store{DB: db}
	if err := store.initDatabase(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) initDatabase() error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			country TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			food_name TEXT NOT NULL,
			food_recipe TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_recipes_user ON recipes(user_id);

		CREATE TABLE IF NOT EXISTS countries (
			name TEXT PRIMARY KEY
		);
	`
	if _, err := s.DB.Exec(query); err != nil {
		return err
	}

	return s.WithTransaction(context.Background(), func(tx *sql.Tx) error {
		for _, name := range seedCountries {
			if _, err := tx.Exec("INSERT OR IGNORE INTO countries (name) VALUES (?)", name); err != nil {
				return fmt.Errorf("seed country %q: %w", name, err)
			}
		}
		return nil
	})
}

// TransactionFunc represents a function that operates within a database transaction
type TransactionFunc func(*sql.Tx) error

// WithTransaction executes fn within a transaction, committing when it
// returns nil and rolling back otherwise
func (s *Store) WithTransaction(ctx context.Context, fn TransactionFunc) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Countries lists the known countries by name.
func (s *Store) Countries(ctx context.Context) ([]models.Country, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT name FROM countries ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query countries: %w", err)
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.Name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func countryExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM countries WHERE name = ?", name).Scan(&n)
	return n > 0, err
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
