package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bwillems/portfolio-tracker/internal/config"
	"github.com/bwillems/portfolio-tracker/internal/service"
)

// Scheduler runs the recurring background jobs: the daily price refresh and
// the interest accrual sweep over the position set.
type Scheduler struct {
	cron            *cron.Cron
	positionService *service.PositionService
	syncService     *service.SyncService
}

// New creates a Scheduler wired to the given services.
func New(positionService *service.PositionService, syncService *service.SyncService) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		positionService: positionService,
		syncService:     syncService,
	}
}

// Start registers the jobs under the configured cron specs and starts the
// scheduler in its own goroutine.
func (s *Scheduler) Start(cfg config.SchedulerConfig) error {
	if _, err := s.cron.AddFunc(cfg.PriceRefreshSpec, s.RunPriceRefresh); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(cfg.AccrualSpec, s.RunAccrual); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started (price refresh %q, accrual %q)", cfg.PriceRefreshSpec, cfg.AccrualSpec)
	return nil
}

// Stop stops the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunPriceRefresh synchronizes every position's market data and merges the
// refreshed prices back in. Per-position provider failures are logged and
// skipped.
func (s *Scheduler) RunPriceRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	positions := s.positionService.Positions()
	updated, summary := s.syncService.SyncAll(ctx, positions)
	s.positionService.ApplyMarketData(updated)

	for _, e := range summary.Errors {
		log.Printf("price refresh failed for %s: %s", e.Ticker, e.Error)
	}
	log.Printf("price refresh done: %d updated, %d errors", summary.TotalUpdated, summary.TotalErrors)
}

// RunAccrual settles due interest payments on all cash positions, catching
// up missed periods.
func (s *Scheduler) RunAccrual() {
	results := s.positionService.CatchUpInterest(time.Now().UTC())
	for _, r := range results {
		log.Printf("accrued %.2f interest on %s (new balance %.2f)", r.Interest, r.Position, r.NewAmount)
	}
	log.Printf("accrual done: %d positions credited", len(results))
}
