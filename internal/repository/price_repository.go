package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
	"github.com/bwillems/portfolio-tracker/internal/model"
)

// PriceRepository provides data access methods for the price_cache and
// symbol_info tables. It stores closes fetched from the quote provider and
// the symbol names resolved through search.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided
// database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPrice retrieves the cached close for a symbol on a specific day.
// Returns apperrors.ErrPriceNotFound when no row exists.
func (r *PriceRepository) GetPrice(symbol string, date time.Time) (model.CachedPrice, error) {
	day := date.UTC().Truncate(24 * time.Hour)

	var price model.CachedPrice
	err := r.db.QueryRow(
		`SELECT id, symbol, date, close FROM price_cache WHERE symbol = ? AND date = ?`,
		symbol, day,
	).Scan(&price.ID, &price.Symbol, &price.Date, &price.Close)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CachedPrice{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.CachedPrice{}, fmt.Errorf("failed to query price_cache: %w", err)
	}

	return price, nil
}

// GetLatestPrice retrieves the most recent cached close for a symbol.
// Returns apperrors.ErrPriceNotFound when the symbol has no cached prices.
func (r *PriceRepository) GetLatestPrice(symbol string) (model.CachedPrice, error) {
	var price model.CachedPrice
	err := r.db.QueryRow(
		`SELECT id, symbol, date, close FROM price_cache WHERE symbol = ? ORDER BY date DESC LIMIT 1`,
		symbol,
	).Scan(&price.ID, &price.Symbol, &price.Date, &price.Close)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CachedPrice{}, apperrors.ErrPriceNotFound
	}
	if err != nil {
		return model.CachedPrice{}, fmt.Errorf("failed to query price_cache: %w", err)
	}

	return price, nil
}

// GetPrices retrieves cached closes for a symbol within the given inclusive
// date range, ordered oldest first.
func (r *PriceRepository) GetPrices(symbol string, startDate, endDate time.Time) ([]model.CachedPrice, error) {
	rows, err := r.db.Query(
		`SELECT id, symbol, date, close
		 FROM price_cache
		 WHERE symbol = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		symbol,
		startDate.UTC().Truncate(24*time.Hour),
		endDate.UTC().Truncate(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_cache: %w", err)
	}
	defer rows.Close()

	prices := []model.CachedPrice{}
	for rows.Next() {
		var price model.CachedPrice
		if err := rows.Scan(&price.ID, &price.Symbol, &price.Date, &price.Close); err != nil {
			return nil, fmt.Errorf("failed to scan price_cache results: %w", err)
		}
		prices = append(prices, price)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_cache: %w", err)
	}

	return prices, nil
}

// InsertPrices stores a batch of closes, assigning a fresh ID per row.
// Rows that already exist for their symbol/date are left untouched, so the
// same chart can be cached repeatedly without duplicates.
func (r *PriceRepository) InsertPrices(ctx context.Context, symbol string, prices []model.CachedPrice) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO price_cache (id, symbol, date, close) VALUES (?, ?, ?, ?)
		 ON CONFLICT(symbol, date) DO NOTHING`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare price_cache insert: %w", err)
	}
	defer stmt.Close()

	for _, price := range prices {
		day := price.Date.UTC().Truncate(24 * time.Hour)
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), symbol, day, price.Close); err != nil {
			return fmt.Errorf("failed to insert price_cache row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price_cache insert: %w", err)
	}

	return nil
}

// GetSymbolInfo retrieves resolved metadata for a symbol.
// Returns apperrors.ErrSymbolNotFound when the symbol was never resolved.
func (r *PriceRepository) GetSymbolInfo(symbol string) (model.SymbolInfo, error) {
	var info model.SymbolInfo
	var exchange, currency sql.NullString
	err := r.db.QueryRow(
		`SELECT id, symbol, name, exchange, currency, last_updated FROM symbol_info WHERE symbol = ?`,
		symbol,
	).Scan(&info.ID, &info.Symbol, &info.Name, &exchange, &currency, &info.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SymbolInfo{}, apperrors.ErrSymbolNotFound
	}
	if err != nil {
		return model.SymbolInfo{}, fmt.Errorf("failed to query symbol_info: %w", err)
	}

	info.Exchange = exchange.String
	info.Currency = currency.String
	return info, nil
}

// UpsertSymbolInfo stores or refreshes resolved metadata for a symbol.
func (r *PriceRepository) UpsertSymbolInfo(ctx context.Context, info model.SymbolInfo) error {
	if info.ID == "" {
		info.ID = uuid.New().String()
	}
	if info.LastUpdated.IsZero() {
		info.LastUpdated = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO symbol_info (id, symbol, name, exchange, currency, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(symbol) DO UPDATE SET
		   name = excluded.name,
		   exchange = excluded.exchange,
		   currency = excluded.currency,
		   last_updated = excluded.last_updated`,
		info.ID, info.Symbol, info.Name, info.Exchange, info.Currency, info.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert symbol_info: %w", err)
	}

	return nil
}
