package testutil

import (
	"database/sql"
	"testing"

	"github.com/bwillems/portfolio-tracker/internal/model"
	"github.com/bwillems/portfolio-tracker/internal/repository"
	"github.com/bwillems/portfolio-tracker/internal/service"
)

// NewTestPositionService creates a PositionService pre-loaded with the given
// positions.
func NewTestPositionService(t *testing.T, positions ...model.PortfolioPosition) *service.PositionService {
	t.Helper()

	svc := service.NewPositionService()
	svc.SetPositions(positions)
	return svc
}

// NewTestSyncService creates a SyncService backed by the given mock Yahoo
// client and a price repository on the test database. A nil db disables
// caching.
func NewTestSyncService(t *testing.T, db *sql.DB, mockYahoo *MockYahooClient) *service.SyncService {
	t.Helper()

	var priceRepo *repository.PriceRepository
	if db != nil {
		priceRepo = repository.NewPriceRepository(db)
	}
	return service.NewSyncService(mockYahoo, priceRepo)
}
