package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/models/domain"
	"github.com/de-tools/irevolution/pkg/store/catalog"
	"github.com/rs/zerolog"
)

const (
	SelectProductsQuery = `SELECT name, sale_price, mrp, discount_percentage, number_of_ratings, star_rating, ram FROM products ORDER BY seq`

	SelectProductStatsQuery = `SELECT COUNT(*), AVG(sale_price_value), AVG(star_rating_value) FROM products`

	SelectFlipkartStatsQuery = `SELECT COUNT(DISTINCT NULLIF(brand, '')), COUNT(DISTINCT NULLIF(model, '')) FROM flipkart_models`

	SelectLatestRevenueQuery = `SELECT CAST(revenue AS REAL) FROM annual_revenue WHERE revenue <> '' ORDER BY seq DESC LIMIT 1`

	SelectMarketStatsQuery = `SELECT
		MAX(CASE WHEN units_sold <> '' THEN CAST(units_sold AS REAL) END),
		MAX(CASE WHEN active_users <> '' THEN CAST(active_users AS REAL) END)
		FROM market_penetration`

	InsertProductQuery = `INSERT INTO products (seq, name, sale_price, mrp, discount_percentage,
		number_of_ratings, star_rating, ram, sale_price_value, star_rating_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	InsertFlipkartQuery = `INSERT INTO flipkart_models (brand, model) VALUES (?, ?)`
	InsertRevenueQuery  = `INSERT INTO annual_revenue (seq, revenue) VALUES (?, ?)`
	InsertMarketQuery   = `INSERT INTO market_penetration (units_sold, active_users) VALUES (?, ?)`
)

var truncateQueries = []string{
	`DELETE FROM products`,
	`DELETE FROM flipkart_models`,
	`DELETE FROM annual_revenue`,
	`DELETE FROM market_penetration`,
}

// Store is a catalog backed by SQLite. Cells are kept as text so missing
// values survive the round trip; aggregates cast them in SQL.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db}, nil
}

// Import replaces the stored dataset with tables in one transaction
func (s *Store) Import(ctx context.Context, tables catalog.Tables) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}

	ctxWithTx := WithTransaction(ctx, tx)
	if err := s.importTables(ctxWithTx, tables); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int("products", len(tables.Products)).
		Int("flipkart", len(tables.Flipkart)).
		Msg("dataset imported into sqlite")
	return nil
}

func (s *Store) importTables(ctx context.Context, t catalog.Tables) error {
	c := conn(ctx, s.db)

	for _, query := range truncateQueries {
		if _, err := c.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	}

	for i, row := range t.Products {
		_, err := c.ExecContext(ctx, InsertProductQuery, i+1,
			row[catalog.ColProductName],
			row[catalog.ColSalePrice],
			row[catalog.ColMrp],
			row[catalog.ColDiscountPercentage],
			row[catalog.ColNumberOfRatings],
			row[catalog.ColStarRating],
			row[catalog.ColRam],
			nullFloat(row, catalog.ColSalePrice),
			nullFloat(row, catalog.ColStarRating),
		)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
	}

	for _, row := range t.Flipkart {
		if _, err := c.ExecContext(ctx, InsertFlipkartQuery, row[catalog.ColBrand], row[catalog.ColModel]); err != nil {
			return fmt.Errorf("insert flipkart model: %w", err)
		}
	}

	for i, row := range t.Revenue {
		if _, err := c.ExecContext(ctx, InsertRevenueQuery, i+1, numericCell(row, catalog.ColRevenue)); err != nil {
			return fmt.Errorf("insert revenue: %w", err)
		}
	}

	for _, row := range t.MarketPenetration {
		_, err := c.ExecContext(ctx, InsertMarketQuery,
			numericCell(row, catalog.ColUnitsSold),
			numericCell(row, catalog.ColActiveUsers),
		)
		if err != nil {
			return fmt.Errorf("insert market penetration: %w", err)
		}
	}
	return nil
}

// numericCell blanks cells that are not numbers so the SQL casts only see
// numeric text.
func numericCell(row dataset.Row, column string) string {
	if _, ok := row.Float(column); !ok {
		return ""
	}
	return row[column]
}

func nullFloat(row dataset.Row, column string) sql.NullFloat64 {
	v, ok := row.Float(column)
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func (s *Store) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, SelectProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var name, sale, mrp, discount, ratings, stars, ram string
		if err := rows.Scan(&name, &sale, &mrp, &discount, &ratings, &stars, &ram); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, catalog.ProductFromRow(dataset.Row{
			catalog.ColProductName:        name,
			catalog.ColSalePrice:          sale,
			catalog.ColMrp:                mrp,
			catalog.ColDiscountPercentage: discount,
			catalog.ColNumberOfRatings:    ratings,
			catalog.ColStarRating:         stars,
			catalog.ColRam:                ram,
		}))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *Store) KPIs(ctx context.Context) (domain.KPIs, error) {
	var kpis domain.KPIs

	var avgPrice, avgRating sql.NullFloat64
	err := s.db.QueryRowContext(ctx, SelectProductStatsQuery).Scan(&kpis.TotalProducts, &avgPrice, &avgRating)
	if err != nil {
		return kpis, fmt.Errorf("query product stats: %w", err)
	}
	kpis.AvgPrice = math.Trunc(avgPrice.Float64)
	kpis.AvgRating = math.Round(avgRating.Float64*10) / 10

	err = s.db.QueryRowContext(ctx, SelectFlipkartStatsQuery).Scan(&kpis.TotalBrands, &kpis.TotalModelsFlipkart)
	if err != nil {
		return kpis, fmt.Errorf("query flipkart stats: %w", err)
	}

	var revenue sql.NullFloat64
	err = s.db.QueryRowContext(ctx, SelectLatestRevenueQuery).Scan(&revenue)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return kpis, fmt.Errorf("query latest revenue: %w", err)
	}
	kpis.LatestRevenue = revenue.Float64

	var units, users sql.NullFloat64
	err = s.db.QueryRowContext(ctx, SelectMarketStatsQuery).Scan(&units, &users)
	if err != nil {
		return kpis, fmt.Errorf("query market stats: %w", err)
	}
	kpis.MaxUnitsSold = units.Float64
	kpis.MaxActiveUsers = users.Float64

	return kpis, nil
}
