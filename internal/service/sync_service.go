package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
	"github.com/bwillems/portfolio-tracker/internal/model"
	"github.com/bwillems/portfolio-tracker/internal/repository"
	"github.com/bwillems/portfolio-tracker/internal/yahoo"
)

// historicWindowDays is the lookahead applied to historical price lookups so
// that a requested date falling on a closed-market day (weekend, holiday)
// still yields a quote. Kept as a fixed constant; no market-calendar logic.
const historicWindowDays = 3

// maxConcurrentSyncs bounds the provider fan-out of a batch sync.
const maxConcurrentSyncs = 4

// SyncService brings ticker-bearing positions' market data current. It
// orchestrates calls into the quote provider, mutates the position, and
// writes fetched closes through to the local price cache.
type SyncService struct {
	yahooClient yahoo.Client
	priceRepo   *repository.PriceRepository
}

// NewSyncService creates a new SyncService. The price repository may be nil,
// in which case fetched prices are not cached.
func NewSyncService(yahooClient yahoo.Client, priceRepo *repository.PriceRepository) *SyncService {
	return &SyncService{
		yahooClient: yahooClient,
		priceRepo:   priceRepo,
	}
}

// SyncPosition updates a single position's market price and, when the
// position has no display name, resolves one through the provider's symbol
// search. Positions without a ticker are returned unchanged.
//
// Price resolution: the live market quote wins; when the market is closed
// the most recent close of the returned historical series is used; when the
// series is empty too, the previous LastSpot is left as-is.
//
// A failed name search is a hard error for the whole call. Any provider
// failure aborts synchronization for this position and surfaces to the
// caller; there is no retry or partial success.
func (s *SyncService) SyncPosition(ctx context.Context, position *model.PortfolioPosition) (model.PortfolioPosition, error) {
	if position.Ticker == "" {
		return *position, nil
	}

	raw, err := s.yahooClient.QueryYahooFiveDaySymbol(position.Ticker)
	if err != nil {
		return model.PortfolioPosition{}, err
	}
	chart, err := s.yahooClient.ParseChart(raw)
	if err != nil {
		return model.PortfolioPosition{}, err
	}

	if live, ok := chart.LiveQuote(); ok {
		position.UpdatePrice(live)
	} else if last, ok := chart.LastIndicator(); ok {
		// Market closed: fall back to the last available close.
		position.UpdatePrice(last.PriceClose)
	}

	if position.Name == "" {
		name, err := s.resolveName(ctx, position.Ticker)
		if err != nil {
			return model.PortfolioPosition{}, err
		}
		position.Name = name
	}

	s.cacheChart(ctx, position.Ticker, chart)

	return *position, nil
}

// SyncAll synchronizes a batch of positions with bounded parallelism. Each
// position is fetched independently; one provider failure does not affect
// the others. Failed positions keep their previous state and are reported in
// the summary instead of aborting the batch.
func (s *SyncService) SyncAll(ctx context.Context, positions []model.PortfolioPosition) ([]model.PortfolioPosition, model.SyncSummary) {
	updated := make([]model.PortfolioPosition, len(positions))
	syncErrs := make([]error, len(positions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSyncs)
	for i := range positions {
		g.Go(func() error {
			position := positions[i]
			result, err := s.SyncPosition(ctx, &position)
			if err != nil {
				syncErrs[i] = err
				updated[i] = positions[i]
				return nil
			}
			updated[i] = result
			return nil
		})
	}
	_ = g.Wait() // per-position errors are collected, never returned

	summary := model.SyncSummary{Updated: []model.SyncedTicker{}, Errors: []model.SyncError{}}
	for i := range positions {
		if positions[i].Ticker == "" {
			continue
		}
		if syncErrs[i] != nil {
			summary.Errors = append(summary.Errors, model.SyncError{
				Name:   positions[i].DisplayName(),
				Ticker: positions[i].Ticker,
				Error:  syncErrs[i].Error(),
			})
			continue
		}
		summary.Updated = append(summary.Updated, model.SyncedTicker{
			Name:     updated[i].DisplayName(),
			Ticker:   updated[i].Ticker,
			LastSpot: updated[i].LastSpot,
		})
	}
	summary.TotalUpdated = len(summary.Updated)
	summary.TotalErrors = len(summary.Errors)
	summary.Success = summary.TotalUpdated > 0

	return updated, summary
}

// HistoricPrice looks up the price of a ticker on a given date. The request
// window extends historicWindowDays beyond the date to tolerate the date
// falling on a closed-market day; the earliest usable quote of the returned
// series wins.
func (s *SyncService) HistoricPrice(ctx context.Context, ticker string, date time.Time) (model.HistoricPrice, error) {
	start := date.UTC()
	end := start.AddDate(0, 0, historicWindowDays)

	raw, err := s.yahooClient.QueryYahooSymbolByDateRange(ticker, start, end)
	if err != nil {
		return model.HistoricPrice{}, err
	}
	chart, err := s.yahooClient.ParseChart(raw)
	if err != nil {
		return model.HistoricPrice{}, err
	}

	first, ok := chart.FirstIndicator()
	if !ok {
		return model.HistoricPrice{}, fmt.Errorf("%w: %s on %s", apperrors.ErrNoQuoteData, ticker, start.Format(model.DateFormat))
	}

	s.cacheChart(ctx, ticker, chart)

	return model.HistoricPrice{
		Symbol: ticker,
		Date:   first.Date,
		Close:  first.PriceClose,
	}, nil
}

// ResolvedSymbol returns the stored metadata for a previously synchronized
// symbol.
func (s *SyncService) ResolvedSymbol(symbol string) (model.SymbolInfo, error) {
	if s.priceRepo == nil {
		return model.SymbolInfo{}, apperrors.ErrSymbolNotFound
	}
	return s.priceRepo.GetSymbolInfo(symbol)
}

// CachedPrices returns the locally cached closes for a symbol within the
// given inclusive date range.
func (s *SyncService) CachedPrices(symbol string, startDate, endDate time.Time) ([]model.CachedPrice, error) {
	if s.priceRepo == nil {
		return []model.CachedPrice{}, nil
	}
	return s.priceRepo.GetPrices(symbol, startDate, endDate)
}

// resolveName asks the provider's search endpoint for the ticker and takes
// the first match's short display name. No match is a hard error.
func (s *SyncService) resolveName(ctx context.Context, ticker string) (string, error) {
	resp, err := s.yahooClient.SearchSymbol(ticker)
	if err != nil {
		return "", err
	}
	if len(resp.Quotes) == 0 {
		return "", fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, ticker)
	}

	match := resp.Quotes[0]
	name := match.Shortname
	if name == "" {
		name = match.Longname
	}
	if name == "" {
		return "", fmt.Errorf("%w: %s has no display name", apperrors.ErrSymbolNotFound, ticker)
	}

	if s.priceRepo != nil {
		info := model.SymbolInfo{
			Symbol:   ticker,
			Name:     name,
			Exchange: match.Exchange,
		}
		if err := s.priceRepo.UpsertSymbolInfo(ctx, info); err != nil {
			log.Printf("failed to store symbol info for %s: %v", ticker, err)
		}
	}

	return name, nil
}

// cacheChart writes the chart's closes through to the price cache. Caching
// is best effort: a storage failure is logged, not surfaced, so it can never
// fail a synchronization that already has its price.
func (s *SyncService) cacheChart(ctx context.Context, symbol string, chart yahoo.PriceChart) {
	if s.priceRepo == nil || len(chart.Indicators) == 0 {
		return
	}

	prices := make([]model.CachedPrice, 0, len(chart.Indicators))
	for _, ind := range chart.Indicators {
		prices = append(prices, model.CachedPrice{
			Symbol: symbol,
			Date:   ind.Date,
			Close:  ind.PriceClose,
		})
	}

	if err := s.priceRepo.InsertPrices(ctx, symbol, prices); err != nil {
		log.Printf("failed to cache prices for %s: %v", symbol, err)
	}
}
