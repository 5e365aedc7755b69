package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const ProductsTableSchema = `
	CREATE TABLE IF NOT EXISTS products (
		seq INTEGER NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		sale_price TEXT NOT NULL DEFAULT '',
		mrp TEXT NOT NULL DEFAULT '',
		discount_percentage TEXT NOT NULL DEFAULT '',
		number_of_ratings TEXT NOT NULL DEFAULT '',
		star_rating TEXT NOT NULL DEFAULT '',
		ram TEXT NOT NULL DEFAULT '',
		sale_price_value REAL NULL,
		star_rating_value REAL NULL
	);
`

const FlipkartTableSchema = `
	CREATE TABLE IF NOT EXISTS flipkart_models (
		brand TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT ''
	);
`

const RevenueTableSchema = `
	CREATE TABLE IF NOT EXISTS annual_revenue (
		seq INTEGER NOT NULL PRIMARY KEY,
		revenue TEXT NOT NULL DEFAULT ''
	);
`

const MarketTableSchema = `
	CREATE TABLE IF NOT EXISTS market_penetration (
		units_sold TEXT NOT NULL DEFAULT '',
		active_users TEXT NOT NULL DEFAULT ''
	);
`

var bootQueries = []string{
	ProductsTableSchema,
	FlipkartTableSchema,
	RevenueTableSchema,
	MarketTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the SQLite database and creates the catalog tables
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", settings.DbPath))
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
