package testutil

import (
	"time"

	"github.com/bwillems/portfolio-tracker/internal/model"
)

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// A plain stock holding
//	pos := testutil.NewPosition().WithTicker("AAPL").WithAmount(10).Build()
//
//	// A cash position with complete interest terms, payment overdue
//	pos := testutil.NewPosition().
//	    AsCash(1000).
//	    WithInterest(5.0, 30).
//	    WithNextPayment(time.Now().AddDate(0, 0, -1)).
//	    Build()
type PositionBuilder struct {
	position model.PortfolioPosition
}

// NewPosition creates a PositionBuilder with sensible defaults: a nameless,
// tickerless stock position.
func NewPosition() *PositionBuilder {
	return &PositionBuilder{
		position: model.PortfolioPosition{
			AssetClass: "Stock",
			Amount:     1.0,
		},
	}
}

// WithName sets the display name.
func (b *PositionBuilder) WithName(name string) *PositionBuilder {
	b.position.Name = name
	return b
}

// WithTicker sets the market symbol, marking the position as priced.
func (b *PositionBuilder) WithTicker(ticker string) *PositionBuilder {
	b.position.Ticker = ticker
	return b
}

// WithAssetClass sets the asset class.
func (b *PositionBuilder) WithAssetClass(class string) *PositionBuilder {
	b.position.AssetClass = class
	return b
}

// WithAmount sets the quantity or principal balance.
func (b *PositionBuilder) WithAmount(amount float64) *PositionBuilder {
	b.position.Amount = amount
	return b
}

// AsCash marks the position as a cash balance with the given principal.
func (b *PositionBuilder) AsCash(amount float64) *PositionBuilder {
	b.position.AssetClass = "Cash"
	b.position.Amount = amount
	b.position.Ticker = ""
	return b
}

// WithInterest sets the annual rate (percent) and payment frequency (days).
func (b *PositionBuilder) WithInterest(rate float64, frequencyDays int) *PositionBuilder {
	b.position.InterestRate = &rate
	b.position.PaymentFrequencyDays = &frequencyDays
	return b
}

// WithLastPayment sets the date interest was last posted.
func (b *PositionBuilder) WithLastPayment(t time.Time) *PositionBuilder {
	d := model.DateOf(t)
	b.position.LastInterestPayment = &d
	return b
}

// WithNextPayment sets the date the next interest posting is due.
func (b *PositionBuilder) WithNextPayment(t time.Time) *PositionBuilder {
	d := model.DateOf(t)
	b.position.NextInterestPayment = &d
	return b
}

// WithLastSpot sets the last observed market price.
func (b *PositionBuilder) WithLastSpot(price float64) *PositionBuilder {
	b.position.LastSpot = price
	return b
}

// Build returns the constructed position.
func (b *PositionBuilder) Build() model.PortfolioPosition {
	return b.position
}
