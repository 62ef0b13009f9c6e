package model

import (
	"encoding/json"
	"strings"
	"time"
)

// UnknownName is the display name for positions that carry neither a name
// nor a ticker.
const UnknownName = "Unknown"

// defaultPaymentFrequencyDays is used when an interest-bearing position does
// not configure its own payment interval.
const defaultPaymentFrequencyDays = 30

// daysPerYear is the day-count convention for simple interest.
const daysPerYear = 365.0

// PortfolioPosition is one line item in a portfolio: either a quantity of a
// ticker-identified instrument or a cash balance with optional interest
// terms. A non-empty Ticker marks the position as a priced instrument.
//
// LastSpot is derived runtime state. It is excluded from the JSON schema and
// only ever written by price synchronization, so decoded positions always
// start with an unknown (zero) price.
type PortfolioPosition struct {
	Name                 string   `json:"Name,omitempty"`
	Ticker               string   `json:"Ticker,omitempty"`
	AssetClass           string   `json:"AssetClass"`
	Amount               float64  `json:"Amount"`
	InterestRate         *float64 `json:"InterestRate,omitempty"`
	PaymentFrequencyDays *int     `json:"PaymentFrequencyDays,omitempty"`
	LastInterestPayment  *Date    `json:"LastInterestPayment,omitempty"`
	NextInterestPayment  *Date    `json:"NextInterestPayment,omitempty"`

	LastSpot float64 `json:"-"`
}

// UnmarshalJSON decodes a position record. Date fields given as empty
// strings normalize to absent, and LastSpot is reset to zero regardless of
// input.
func (p *PortfolioPosition) UnmarshalJSON(data []byte) error {
	type plain PortfolioPosition
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.LastInterestPayment != nil && decoded.LastInterestPayment.IsZero() {
		decoded.LastInterestPayment = nil
	}
	if decoded.NextInterestPayment != nil && decoded.NextInterestPayment.IsZero() {
		decoded.NextInterestPayment = nil
	}
	decoded.LastSpot = 0
	*p = PortfolioPosition(decoded)
	return nil
}

// DisplayName returns the position's name, falling back to the ticker and
// finally to UnknownName.
func (p *PortfolioPosition) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Ticker != "" {
		return p.Ticker
	}
	return UnknownName
}

// Balance returns the position's monetary value: the last observed price
// times the quantity for ticker positions, or the amount itself for cash and
// fixed holdings.
func (p *PortfolioPosition) Balance() float64 {
	if p.Ticker != "" {
		return p.LastSpot * p.Amount
	}
	return p.Amount
}

// UpdatePrice records a newly observed market price.
func (p *PortfolioPosition) UpdatePrice(lastSpot float64) {
	p.LastSpot = lastSpot
}

// IsCashWithInterest reports whether this position is a cash balance
// carrying complete interest terms: a "cash" asset class (case-insensitive)
// plus rate, payment frequency and a next payment date. LastInterestPayment
// may be absent; the first accrual then uses NextInterestPayment as its
// baseline.
func (p *PortfolioPosition) IsCashWithInterest() bool {
	return strings.EqualFold(p.AssetClass, "cash") &&
		p.InterestRate != nil &&
		p.PaymentFrequencyDays != nil &&
		p.NextInterestPayment != nil
}

// DailyInterestAmount returns the simple daily interest on the current
// principal over a 365-day year, or 0 when no rate is configured.
func (p *PortfolioPosition) DailyInterestAmount() float64 {
	if p.InterestRate == nil {
		return 0
	}
	return p.Amount * (*p.InterestRate / 100) / daysPerYear
}

// CalculateInterest returns the simple interest earned on the current
// principal between two dates, using the whole-day difference. The current
// Amount is the principal for the entire span; there is no intra-period
// compounding.
func (p *PortfolioPosition) CalculateInterest(fromDate, toDate time.Time) float64 {
	if p.InterestRate == nil {
		return 0
	}
	days := float64(int(toDate.Sub(fromDate).Hours() / 24))
	return p.Amount * (*p.InterestRate / 100) * (days / daysPerYear)
}

// ApplyInterestIfDue advances the accrual schedule by exactly one step.
//
// When the position is not cash-with-interest, or the next payment date is
// still in the future, nothing happens and ok is false. Otherwise the
// interest earned since the last payment (or since the next payment date,
// when no payment was ever made) is added to the principal, the last payment
// is set to currentDate's day, and the next payment is scheduled one
// frequency interval after it.
//
// A single call settles a single period even when several payment intervals
// have elapsed. Catching up N missed periods takes N calls; see
// PositionService.CatchUpInterest for the loop.
func (p *PortfolioPosition) ApplyInterestIfDue(currentDate time.Time) (float64, bool) {
	if !p.IsCashWithInterest() {
		return 0, false
	}
	if currentDate.Before(p.NextInterestPayment.Time) {
		return 0, false
	}

	baseline := p.NextInterestPayment.Time
	if p.LastInterestPayment != nil {
		baseline = p.LastInterestPayment.Time
	}
	interest := p.CalculateInterest(baseline, currentDate)
	p.Amount += interest

	paid := DateOf(currentDate)
	next := p.nextPaymentDate(paid)
	p.LastInterestPayment = &paid
	p.NextInterestPayment = &next

	return interest, true
}

// nextPaymentDate schedules the payment after the given one, falling back to
// a 30-day interval when no frequency is configured.
func (p *PortfolioPosition) nextPaymentDate(paid Date) Date {
	frequency := defaultPaymentFrequencyDays
	if p.PaymentFrequencyDays != nil {
		frequency = *p.PaymentFrequencyDays
	}
	return paid.AddDays(frequency)
}
