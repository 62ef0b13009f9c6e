package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
	"github.com/bwillems/portfolio-tracker/internal/model"
	"github.com/bwillems/portfolio-tracker/internal/repository"
	"github.com/bwillems/portfolio-tracker/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestPriceRepository_InsertAndGet tests storing and retrieving cached
// closes.
//
// WHY: The cache is written on every sync; re-caching the same chart must
// not create duplicate rows, and lookups must be keyed by calendar day.
func TestPriceRepository_InsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)
	ctx := context.Background()

	prices := []model.CachedPrice{
		{Date: day(2025, time.June, 2), Close: 100.0},
		{Date: day(2025, time.June, 3), Close: 101.5},
		{Date: day(2025, time.June, 4), Close: 102.25},
	}

	if err := repo.InsertPrices(ctx, "AAPL", prices); err != nil {
		t.Fatalf("InsertPrices() returned unexpected error: %v", err)
	}
	testutil.AssertRowCount(t, db, "price_cache", 3)

	t.Run("re-inserting the same rows is a no-op", func(t *testing.T) {
		if err := repo.InsertPrices(ctx, "AAPL", prices); err != nil {
			t.Fatalf("InsertPrices() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "price_cache", 3)
	})

	t.Run("GetPrice finds a day", func(t *testing.T) {
		price, err := repo.GetPrice("AAPL", day(2025, time.June, 3))
		if err != nil {
			t.Fatalf("GetPrice() returned unexpected error: %v", err)
		}
		if price.Close != 101.5 {
			t.Errorf("Expected close 101.5, got %v", price.Close)
		}
		if price.ID == "" {
			t.Error("Expected a generated row ID")
		}
	})

	t.Run("GetPrice misses cleanly", func(t *testing.T) {
		_, err := repo.GetPrice("AAPL", day(2025, time.July, 1))
		if !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Errorf("Expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("GetLatestPrice returns the newest close", func(t *testing.T) {
		price, err := repo.GetLatestPrice("AAPL")
		if err != nil {
			t.Fatalf("GetLatestPrice() returned unexpected error: %v", err)
		}
		if price.Close != 102.25 {
			t.Errorf("Expected close 102.25, got %v", price.Close)
		}
	})

	t.Run("GetLatestPrice for an unknown symbol", func(t *testing.T) {
		_, err := repo.GetLatestPrice("MSFT")
		if !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Errorf("Expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("GetPrices returns the range oldest first", func(t *testing.T) {
		got, err := repo.GetPrices("AAPL", day(2025, time.June, 2), day(2025, time.June, 3))
		if err != nil {
			t.Fatalf("GetPrices() returned unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 prices, got %d", len(got))
		}
		if got[0].Close != 100.0 || got[1].Close != 101.5 {
			t.Errorf("Expected ascending closes [100.0 101.5], got %+v", got)
		}
	})

	t.Run("empty insert is a no-op", func(t *testing.T) {
		if err := repo.InsertPrices(ctx, "AAPL", nil); err != nil {
			t.Fatalf("InsertPrices() returned unexpected error: %v", err)
		}
	})
}

// TestPriceRepository_SymbolInfo tests resolved-name storage.
func TestPriceRepository_SymbolInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)
	ctx := context.Background()

	t.Run("unknown symbol misses cleanly", func(t *testing.T) {
		_, err := repo.GetSymbolInfo("AAPL")
		if !errors.Is(err, apperrors.ErrSymbolNotFound) {
			t.Errorf("Expected ErrSymbolNotFound, got %v", err)
		}
	})

	t.Run("upsert stores and refreshes", func(t *testing.T) {
		err := repo.UpsertSymbolInfo(ctx, model.SymbolInfo{
			Symbol:   "AAPL",
			Name:     "Apple Inc.",
			Exchange: "NMS",
			Currency: "USD",
		})
		if err != nil {
			t.Fatalf("UpsertSymbolInfo() returned unexpected error: %v", err)
		}

		info, err := repo.GetSymbolInfo("AAPL")
		if err != nil {
			t.Fatalf("GetSymbolInfo() returned unexpected error: %v", err)
		}
		if info.Name != "Apple Inc." || info.Exchange != "NMS" || info.Currency != "USD" {
			t.Errorf("Unexpected symbol info: %+v", info)
		}
		if info.LastUpdated.IsZero() {
			t.Error("Expected last_updated to be populated")
		}

		// Second upsert for the same symbol replaces the name in place.
		err = repo.UpsertSymbolInfo(ctx, model.SymbolInfo{Symbol: "AAPL", Name: "Apple Incorporated"})
		if err != nil {
			t.Fatalf("UpsertSymbolInfo() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "symbol_info", 1)

		info, err = repo.GetSymbolInfo("AAPL")
		if err != nil {
			t.Fatalf("GetSymbolInfo() returned unexpected error: %v", err)
		}
		if info.Name != "Apple Incorporated" {
			t.Errorf("Expected refreshed name, got %s", info.Name)
		}
	})
}
