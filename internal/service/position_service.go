package service

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bwillems/portfolio-tracker/internal/model"
	"github.com/bwillems/portfolio-tracker/internal/validation"
)

// PositionService owns the in-memory position set and the accrual
// orchestration over it. The set is loaded once from a positions document
// and then mutated by price synchronization and interest accrual.
//
// The service serves a single reporting caller; the mutex only guards the
// HTTP surface and the scheduler against each other.
type PositionService struct {
	mu        sync.RWMutex
	positions []model.PortfolioPosition
}

// NewPositionService creates an empty PositionService.
func NewPositionService() *PositionService {
	return &PositionService{}
}

// ParsePositions decodes a positions document. Any structurally invalid
// record fails the whole load; there is no partial list. Decoded positions
// always start with a zero LastSpot.
func ParsePositions(data []byte) ([]model.PortfolioPosition, error) {
	var positions []model.PortfolioPosition
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to parse positions: %w", err)
	}
	if err := validation.ValidatePositions(positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// LoadFromFile reads and parses a positions document from disk, replacing
// the current set. Returns the number of loaded positions.
func (s *PositionService) LoadFromFile(path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return 0, fmt.Errorf("failed to read positions file: %w", err)
	}

	positions, err := ParsePositions(data)
	if err != nil {
		return 0, err
	}

	s.SetPositions(positions)
	return len(positions), nil
}

// Positions returns a copy of the current position set.
func (s *PositionService) Positions() []model.PortfolioPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := make([]model.PortfolioPosition, len(s.positions))
	copy(positions, s.positions)
	return positions
}

// SetPositions replaces the current position set.
func (s *PositionService) SetPositions(positions []model.PortfolioPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = positions
}

// ApplyMarketData merges refreshed market state back into the current set.
// A price refresh runs on a snapshot while the provider is queried, so an
// accrual (or another write) may land in between; only the market-derived
// fields are written back, never the principal or the payment schedule.
// A slot whose ticker no longer matches the snapshot (the set was replaced
// mid-refresh) is skipped.
func (s *PositionService) ApplyMarketData(updated []model.PortfolioPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range updated {
		if i >= len(s.positions) {
			break
		}
		p := &s.positions[i]
		if p.Ticker != updated[i].Ticker {
			continue
		}
		p.LastSpot = updated[i].LastSpot
		if p.Name == "" {
			p.Name = updated[i].Name
		}
	}
}

// Report returns the balance view of every position plus the portfolio
// total.
func (s *PositionService) Report() model.PortfolioReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := model.PortfolioReport{Positions: make([]model.PositionBalance, 0, len(s.positions))}
	for i := range s.positions {
		p := &s.positions[i]
		balance := p.Balance()
		report.Positions = append(report.Positions, model.PositionBalance{
			Name:       p.DisplayName(),
			Ticker:     p.Ticker,
			AssetClass: p.AssetClass,
			Amount:     p.Amount,
			LastSpot:   p.LastSpot,
			Balance:    balance,
		})
		report.Total += balance
	}
	return report
}

// ApplyInterest runs a single accrual step on every position. Positions that
// are not cash-with-interest, or not yet due, are skipped; accrual itself
// never fails.
func (s *PositionService) ApplyInterest(currentDate time.Time) []model.AccrualResult {
	return s.accrue(currentDate, false)
}

// CatchUpInterest repeatedly applies accrual until no position is due
// anymore, settling every missed payment period one step at a time. The
// "due" check re-derives against the advancing next payment date on each
// iteration, so each period accrues on the principal as of that period.
func (s *PositionService) CatchUpInterest(currentDate time.Time) []model.AccrualResult {
	return s.accrue(currentDate, true)
}

func (s *PositionService) accrue(currentDate time.Time, catchUp bool) []model.AccrualResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := []model.AccrualResult{}
	for i := range s.positions {
		p := &s.positions[i]

		total := 0.0
		periods := 0
		for {
			interest, ok := p.ApplyInterestIfDue(currentDate)
			if !ok {
				break
			}
			total += interest
			periods++
			if !catchUp {
				break
			}
		}

		if periods == 0 {
			continue
		}
		results = append(results, model.AccrualResult{
			Position:    p.DisplayName(),
			Interest:    total,
			Periods:     periods,
			NewAmount:   p.Amount,
			NextPayment: p.NextInterestPayment,
		})
	}
	return results
}
