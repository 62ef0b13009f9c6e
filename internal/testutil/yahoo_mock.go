package testutil

import (
	"time"

	"github.com/bwillems/portfolio-tracker/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	// MockResponse is the response to return from chart query methods
	MockResponse yahoo.Response
	// MockError is the error to return from chart query methods
	MockError error
	// MockSearchResponse is the response to return from SearchSymbol
	MockSearchResponse yahoo.SearchResponse
	// MockSearchError is the error to return from SearchSymbol
	MockSearchError error

	// QueryCount tracks how many times a chart query method was called
	QueryCount int
	// SearchCount tracks how many times SearchSymbol was called
	SearchCount int
	// LastRangeStart and LastRangeEnd record the window of the most recent
	// date-range query
	LastRangeStart time.Time
	LastRangeEnd   time.Time
}

var _ yahoo.Client = (*MockYahooClient)(nil)

// NewMockYahooClient creates a new mock Yahoo client with default test data:
// 5 days of historical prices plus a live market price, and a single search
// match named "Test Fund Inc.".
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse: CreateMockYahooResponse(5),
		MockSearchResponse: yahoo.SearchResponse{
			Quotes: []yahoo.SearchQuote{
				{Symbol: "TEST", Shortname: "Test Fund Inc.", Longname: "Test Fund Incorporated", Exchange: "NMS"},
			},
		},
	}
}

// QueryYahooFiveDaySymbol mocks the 5-day symbol query with predefined test data.
func (m *MockYahooClient) QueryYahooFiveDaySymbol(_ string) (yahoo.Response, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// QueryYahooSymbolByDateRange mocks the date range query with predefined
// test data and records the requested window.
func (m *MockYahooClient) QueryYahooSymbolByDateRange(_ string, startDate, endDate time.Time) (yahoo.Response, error) {
	m.QueryCount++
	m.LastRangeStart = startDate
	m.LastRangeEnd = endDate
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// SearchSymbol mocks the symbol search with predefined test data.
func (m *MockYahooClient) SearchSymbol(_ string) (yahoo.SearchResponse, error) {
	m.SearchCount++
	if m.MockSearchError != nil {
		return yahoo.SearchResponse{}, m.MockSearchError
	}
	return m.MockSearchResponse, nil
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	// Use the real implementation for parsing since it's deterministic
	client := yahoo.NewFinanceClient()
	return client.ParseChart(yahooResult)
}

// WithError configures the mock to return the specified error from chart queries.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified chart response.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	return m
}

// WithSearchError configures the mock to fail symbol searches.
func (m *MockYahooClient) WithSearchError(err error) *MockYahooClient {
	m.MockSearchError = err
	return m
}

// WithSearchQuotes configures the search matches to return.
func (m *MockYahooClient) WithSearchQuotes(quotes ...yahoo.SearchQuote) *MockYahooClient {
	m.MockSearchResponse = yahoo.SearchResponse{Quotes: quotes}
	return m
}

// WithEmptySeries strips the historical series and live price from the mock
// response, simulating a closed market with no usable data.
func (m *MockYahooClient) WithEmptySeries() *MockYahooClient {
	if len(m.MockResponse.Chart.Result) > 0 {
		m.MockResponse.Chart.Result[0].Timestamp = nil
		m.MockResponse.Chart.Result[0].Indicators = yahoo.IndicatorsContainer{}
		m.MockResponse.Chart.Result[0].Meta.RegularMarketPrice = nil
	}
	return m
}

// WithoutLivePrice removes the live market price, keeping the historical
// series, simulating a closed-market response.
func (m *MockYahooClient) WithoutLivePrice() *MockYahooClient {
	if len(m.MockResponse.Chart.Result) > 0 {
		m.MockResponse.Chart.Result[0].Meta.RegularMarketPrice = nil
	}
	return m
}

// WithLivePrice sets the live market price on the mock response.
func (m *MockYahooClient) WithLivePrice(price float64) *MockYahooClient {
	if len(m.MockResponse.Chart.Result) > 0 {
		m.MockResponse.Chart.Result[0].Meta.RegularMarketPrice = &price
	}
	return m
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with
// test data. The response includes `days` number of days of price data,
// ending yesterday, plus a live market price of 105.0. Each day has
// realistic OHLCV data suitable for testing.
func CreateMockYahooResponse(days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	opens := make([]*float64, days)
	highs := make([]*float64, days)
	lows := make([]*float64, days)
	closes := make([]*float64, days)
	volumes := make([]*int64, days)

	// Generate realistic price data for testing
	basePrice := 100.0
	for i := 0; i < days; i++ {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		// Simulate price movement
		dayPrice := basePrice + float64(i)*0.5
		open := dayPrice
		high := dayPrice + 1.0
		low := dayPrice - 0.5
		closePrice := dayPrice + 0.25
		volume := int64(1000000 + i*10000)

		opens[i] = &open
		highs[i] = &high
		lows[i] = &low
		closes[i] = &closePrice
		volumes[i] = &volume
	}

	livePrice := 105.0

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:             "TEST",
						Currency:           "USD",
						ExchangeName:       "NMS",
						FullExchangeName:   "NASDAQ",
						LongName:           "Test Fund Inc.",
						Shortname:          "TEST",
						RegularMarketPrice: &livePrice,
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{
								Open:   opens,
								High:   highs,
								Low:    lows,
								Close:  closes,
								Volume: volumes,
							},
						},
					},
				},
			},
			Error: nil,
		},
	}
}

// CreateMockYahooResponseForDate creates a mock Yahoo response with a single
// day's data and no live price. Useful for testing specific date scenarios.
func CreateMockYahooResponseForDate(date time.Time, price float64) yahoo.Response {
	timestamp := date.Unix()
	volume := int64(1000000)

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:           "TEST",
						Currency:         "USD",
						ExchangeName:     "NMS",
						FullExchangeName: "NASDAQ",
						LongName:         "Test Fund Inc.",
						Shortname:        "TEST",
					},
					Timestamp: []int64{timestamp},
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{
								Open:   []*float64{&price},
								High:   []*float64{&price},
								Low:    []*float64{&price},
								Close:  []*float64{&price},
								Volume: []*int64{&volume},
							},
						},
					},
				},
			},
			Error: nil,
		},
	}
}
