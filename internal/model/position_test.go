package model_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/bwillems/portfolio-tracker/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func datePtr(d model.Date) *model.Date {
	return &d
}

// TestPortfolioPosition_Balance tests balance derivation for both position
// kinds.
//
// WHY: The balance rule is the core valuation invariant: ticker positions
// are priced quantity, everything else is a direct monetary amount.
func TestPortfolioPosition_Balance(t *testing.T) {
	t.Run("ticker position multiplies amount by last spot", func(t *testing.T) {
		p := model.PortfolioPosition{Ticker: "AAPL", AssetClass: "Stock", Amount: 4}
		p.UpdatePrice(150.25)

		if got := p.Balance(); got != 601.0 {
			t.Errorf("Expected balance 601.0, got %v", got)
		}
	})

	t.Run("cash position ignores last spot", func(t *testing.T) {
		p := model.PortfolioPosition{AssetClass: "Cash", Amount: 1234.56}
		p.UpdatePrice(999) // must not matter without a ticker

		if got := p.Balance(); got != 1234.56 {
			t.Errorf("Expected balance 1234.56, got %v", got)
		}
	})
}

func TestPortfolioPosition_DisplayName(t *testing.T) {
	t.Run("prefers the name", func(t *testing.T) {
		p := model.PortfolioPosition{Name: "Apple Inc.", Ticker: "AAPL"}
		if got := p.DisplayName(); got != "Apple Inc." {
			t.Errorf("Expected Apple Inc., got %s", got)
		}
	})

	t.Run("falls back to the ticker", func(t *testing.T) {
		p := model.PortfolioPosition{Ticker: "AAPL"}
		if got := p.DisplayName(); got != "AAPL" {
			t.Errorf("Expected AAPL, got %s", got)
		}
	})

	t.Run("falls back to Unknown", func(t *testing.T) {
		p := model.PortfolioPosition{AssetClass: "Cash"}
		if got := p.DisplayName(); got != "Unknown" {
			t.Errorf("Expected Unknown, got %s", got)
		}
	})
}

// TestPortfolioPosition_InterestCalculation tests the simple-interest
// arithmetic.
//
// WHY: Interest amounts feed directly into principal mutation; the 365-day
// simple-interest convention must match the documented reference values.
func TestPortfolioPosition_InterestCalculation(t *testing.T) {
	p := model.PortfolioPosition{
		AssetClass:   "Cash",
		Amount:       1000,
		InterestRate: floatPtr(5.0),
	}

	t.Run("daily interest on 1000 at 5 percent", func(t *testing.T) {
		expected := 1000.0 * 0.05 / 365.0 // ≈ 0.1370
		if got := p.DailyInterestAmount(); math.Abs(got-expected) > 0.0001 {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("30-day span on 1000 at 5 percent", func(t *testing.T) {
		from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 30)

		expected := 1000.0 * 0.05 * 30.0 / 365.0 // ≈ 4.1096
		if got := p.CalculateInterest(from, to); math.Abs(got-expected) > 0.0001 {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("no rate means zero interest", func(t *testing.T) {
		plain := model.PortfolioPosition{AssetClass: "Cash", Amount: 1000}
		if got := plain.DailyInterestAmount(); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
		if got := plain.CalculateInterest(time.Now().AddDate(0, 0, -30), time.Now()); got != 0 {
			t.Errorf("Expected 0, got %v", got)
		}
	})
}

// TestPortfolioPosition_IsCashWithInterest tests the eligibility predicate
// with each required field missing independently.
func TestPortfolioPosition_IsCashWithInterest(t *testing.T) {
	complete := func() model.PortfolioPosition {
		return model.PortfolioPosition{
			AssetClass:           "Cash",
			Amount:               1000,
			InterestRate:         floatPtr(5.0),
			PaymentFrequencyDays: intPtr(30),
			NextInterestPayment:  datePtr(model.NewDate(2025, time.June, 1)),
		}
	}

	t.Run("complete terms qualify", func(t *testing.T) {
		p := complete()
		if !p.IsCashWithInterest() {
			t.Error("Expected cash-with-interest to be true")
		}
	})

	t.Run("asset class comparison is case-insensitive", func(t *testing.T) {
		p := complete()
		p.AssetClass = "CASH"
		if !p.IsCashWithInterest() {
			t.Error("Expected CASH to qualify")
		}
	})

	t.Run("missing last payment still qualifies", func(t *testing.T) {
		p := complete()
		p.LastInterestPayment = nil
		if !p.IsCashWithInterest() {
			t.Error("Expected missing last payment to still qualify")
		}
	})

	t.Run("non-cash asset class disqualifies", func(t *testing.T) {
		p := complete()
		p.AssetClass = "Stock"
		if p.IsCashWithInterest() {
			t.Error("Expected Stock to be disqualified")
		}
	})

	t.Run("missing interest rate disqualifies", func(t *testing.T) {
		p := complete()
		p.InterestRate = nil
		if p.IsCashWithInterest() {
			t.Error("Expected missing rate to disqualify")
		}
	})

	t.Run("missing payment frequency disqualifies", func(t *testing.T) {
		p := complete()
		p.PaymentFrequencyDays = nil
		if p.IsCashWithInterest() {
			t.Error("Expected missing frequency to disqualify")
		}
	})

	t.Run("missing next payment date disqualifies", func(t *testing.T) {
		p := complete()
		p.NextInterestPayment = nil
		if p.IsCashWithInterest() {
			t.Error("Expected missing next payment to disqualify")
		}
	})
}

// TestPortfolioPosition_ApplyInterestIfDue tests the accrual state machine.
//
// WHY: Accrual mutates principal and advances the payment schedule; a wrong
// transition silently corrupts balances on every scheduler run.
func TestPortfolioPosition_ApplyInterestIfDue(t *testing.T) {
	now := time.Now().UTC()

	t.Run("due payment accrues one period and reschedules", func(t *testing.T) {
		p := model.PortfolioPosition{
			AssetClass:           "Cash",
			Amount:               1000,
			InterestRate:         floatPtr(5.0),
			PaymentFrequencyDays: intPtr(30),
			LastInterestPayment:  datePtr(model.DateOf(now.AddDate(0, 0, -30))),
			NextInterestPayment:  datePtr(model.DateOf(now.AddDate(0, 0, -1))),
		}

		interest, ok := p.ApplyInterestIfDue(now)
		if !ok {
			t.Fatal("Expected accrual to be applied")
		}

		expected := 1000.0 * 0.05 * 30.0 / 365.0
		if math.Abs(interest-expected) > 0.0001 {
			t.Errorf("Expected interest %v, got %v", expected, interest)
		}
		if math.Abs(p.Amount-(1000+expected)) > 0.0001 {
			t.Errorf("Expected principal %v, got %v", 1000+expected, p.Amount)
		}

		today := model.DateOf(now)
		if p.LastInterestPayment == nil || !p.LastInterestPayment.Equal(today.Time) {
			t.Errorf("Expected last payment %v, got %v", today, p.LastInterestPayment)
		}
		expectedNext := today.AddDays(30)
		if p.NextInterestPayment == nil || !p.NextInterestPayment.Equal(expectedNext.Time) {
			t.Errorf("Expected next payment %v, got %v", expectedNext, p.NextInterestPayment)
		}

		// A second immediate call must be a no-op: the due date has moved
		// into the future.
		amountBefore := p.Amount
		if _, ok := p.ApplyInterestIfDue(now); ok {
			t.Error("Expected second immediate call to be a no-op")
		}
		if p.Amount != amountBefore {
			t.Errorf("Expected amount unchanged at %v, got %v", amountBefore, p.Amount)
		}
	})

	t.Run("first accrual uses the next payment date as baseline", func(t *testing.T) {
		p := model.PortfolioPosition{
			AssetClass:           "Cash",
			Amount:               1000,
			InterestRate:         floatPtr(5.0),
			PaymentFrequencyDays: intPtr(30),
			NextInterestPayment:  datePtr(model.DateOf(now.AddDate(0, 0, -10))),
		}

		interest, ok := p.ApplyInterestIfDue(now)
		if !ok {
			t.Fatal("Expected accrual to be applied")
		}

		expected := 1000.0 * 0.05 * 10.0 / 365.0
		if math.Abs(interest-expected) > 0.0001 {
			t.Errorf("Expected interest %v, got %v", expected, interest)
		}
	})

	t.Run("not yet due is a no-op", func(t *testing.T) {
		p := model.PortfolioPosition{
			AssetClass:           "Cash",
			Amount:               1000,
			InterestRate:         floatPtr(5.0),
			PaymentFrequencyDays: intPtr(30),
			NextInterestPayment:  datePtr(model.DateOf(now.AddDate(0, 0, 1))),
		}

		if _, ok := p.ApplyInterestIfDue(now); ok {
			t.Error("Expected no accrual before the due date")
		}
		if p.Amount != 1000 {
			t.Errorf("Expected amount unchanged, got %v", p.Amount)
		}
	})

	t.Run("ineligible position is a no-op", func(t *testing.T) {
		p := model.PortfolioPosition{AssetClass: "Stock", Ticker: "AAPL", Amount: 10}
		if _, ok := p.ApplyInterestIfDue(now); ok {
			t.Error("Expected no accrual for a stock position")
		}
	})
}

// TestPortfolioPosition_JSON tests the external record schema.
//
// WHY: Positions are constructed from structured input; the schema rules
// (optional fields, empty-string dates, derived LastSpot) are the contract
// with the reporting caller.
func TestPortfolioPosition_JSON(t *testing.T) {
	t.Run("decodes a full record", func(t *testing.T) {
		doc := `{
			"Name": "Savings",
			"AssetClass": "Cash",
			"Amount": 1000,
			"InterestRate": 4.5,
			"PaymentFrequencyDays": 30,
			"LastInterestPayment": "2025-01-01",
			"NextInterestPayment": "2025-01-31"
		}`

		var p model.PortfolioPosition
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			t.Fatalf("Unmarshal() returned unexpected error: %v", err)
		}

		if p.Name != "Savings" || p.AssetClass != "Cash" || p.Amount != 1000 {
			t.Errorf("Unexpected core fields: %+v", p)
		}
		if p.InterestRate == nil || *p.InterestRate != 4.5 {
			t.Errorf("Expected interest rate 4.5, got %v", p.InterestRate)
		}
		if p.NextInterestPayment == nil || p.NextInterestPayment.String() != "2025-01-31" {
			t.Errorf("Expected next payment 2025-01-31, got %v", p.NextInterestPayment)
		}
		if !p.IsCashWithInterest() {
			t.Error("Expected decoded record to be cash-with-interest")
		}
	})

	t.Run("empty-string dates decode to absent", func(t *testing.T) {
		doc := `{"AssetClass": "Cash", "Amount": 500, "LastInterestPayment": "", "NextInterestPayment": ""}`

		var p model.PortfolioPosition
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			t.Fatalf("Unmarshal() returned unexpected error: %v", err)
		}
		if p.LastInterestPayment != nil {
			t.Errorf("Expected absent last payment, got %v", p.LastInterestPayment)
		}
		if p.NextInterestPayment != nil {
			t.Errorf("Expected absent next payment, got %v", p.NextInterestPayment)
		}
	})

	t.Run("last spot cannot be supplied by input", func(t *testing.T) {
		doc := `{"Ticker": "AAPL", "AssetClass": "Stock", "Amount": 2, "LastSpot": 123.45}`

		var p model.PortfolioPosition
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			t.Fatalf("Unmarshal() returned unexpected error: %v", err)
		}
		if p.LastSpot != 0 {
			t.Errorf("Expected decoded position to start with zero last spot, got %v", p.LastSpot)
		}
	})

	t.Run("last spot is not emitted on encode", func(t *testing.T) {
		p := model.PortfolioPosition{Ticker: "AAPL", AssetClass: "Stock", Amount: 2}
		p.UpdatePrice(150)

		encoded, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("Marshal() returned unexpected error: %v", err)
		}

		var fields map[string]any
		if err := json.Unmarshal(encoded, &fields); err != nil {
			t.Fatalf("Unmarshal() returned unexpected error: %v", err)
		}
		if _, present := fields["LastSpot"]; present {
			t.Error("Expected LastSpot to be excluded from the external schema")
		}
		for _, absent := range []string{"Name", "InterestRate", "PaymentFrequencyDays", "LastInterestPayment", "NextInterestPayment"} {
			if _, present := fields[absent]; present {
				t.Errorf("Expected omitted field %s to be absent, got %v", absent, fields[absent])
			}
		}
	})
}
