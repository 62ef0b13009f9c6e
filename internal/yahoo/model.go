package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API:
//   - Chart.Result: Array of result objects (typically one element)
//   - Chart.Result[].Meta: Symbol metadata (name, currency, exchange, live price)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators: Price data arrays (open, close, high, low, volume)
//   - Chart.Error: Optional error message from the Yahoo API
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level payload of a chart response.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result is one chart result: metadata plus the daily price series.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta carries symbol metadata. RegularMarketPrice is the live quote when
// the market is open; it is absent on a closed-market response.
type Meta struct {
	Currency           string   `json:"currency"`
	Symbol             string   `json:"symbol"`
	ExchangeName       string   `json:"exchangeName"`
	FullExchangeName   string   `json:"fullExchangeName"`
	LongName           string   `json:"longName"`
	Shortname          string   `json:"shortName"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
}

// IndicatorsContainer wraps the quote arrays of a chart result.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds the per-day OHLCV arrays. Entries are pointers because Yahoo
// emits explicit nulls for days without trading data.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// SearchResponse represents the raw JSON response from the Yahoo Finance
// symbol search endpoint.
type SearchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

// SearchQuote is one match returned by the search endpoint.
type SearchQuote struct {
	Symbol    string `json:"symbol"`
	Shortname string `json:"shortname"`
	Longname  string `json:"longname"`
	QuoteType string `json:"quoteType"`
	Exchange  string `json:"exchange"`
}

// PriceChart represents a parsed and structured price chart. This is the
// application's internal representation after parsing the raw Response.
//
// RegularMarketPrice is carried over from the chart metadata: non-nil means
// a live quote was available. Indicators hold the daily historical series in
// chronological order; a closed-market response may have none.
type PriceChart struct {
	Currency           string       `json:"currency"`
	Symbol             string       `json:"symbol"`
	ExchangeName       string       `json:"exchangeName"`
	FullExchangeName   string       `json:"fullExchangeName"`
	LongName           string       `json:"longName"`
	Shortname          string       `json:"shortName"`
	RegularMarketPrice *float64     `json:"regularMarketPrice,omitempty"`
	Indicators         []Indicators `json:"indicators"`
}

// Indicators represents a single day's price data for a financial
// instrument: the standard OHLCV values with the date truncated to midnight
// UTC.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}

// LiveQuote returns the live market price when the response carried one.
func (c PriceChart) LiveQuote() (float64, bool) {
	if c.RegularMarketPrice == nil {
		return 0, false
	}
	return *c.RegularMarketPrice, true
}

// FirstIndicator returns the earliest entry of the historical series.
func (c PriceChart) FirstIndicator() (Indicators, bool) {
	if len(c.Indicators) == 0 {
		return Indicators{}, false
	}
	return c.Indicators[0], true
}

// LastIndicator returns the most recent entry of the historical series.
func (c PriceChart) LastIndicator() (Indicators, bool) {
	if len(c.Indicators) == 0 {
		return Indicators{}, false
	}
	return c.Indicators[len(c.Indicators)-1], true
}

// GetIndicatorForDate searches for price data matching a specific date.
// The comparison is date-only: both the target and the indicator dates are
// truncated to midnight UTC.
func (c PriceChart) GetIndicatorForDate(target time.Time) (Indicators, bool) {
	targetDay := target.UTC().Truncate(24 * time.Hour)
	for _, ind := range c.Indicators {
		if ind.Date.UTC().Truncate(24 * time.Hour).Equal(targetDay) {
			return ind, true
		}
	}
	return Indicators{}, false
}
