package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
)

// Client is the quote-provider capability consumed by services. It covers
// the three operations the synchronizer needs (latest quote, historical
// range, name search) plus chart parsing, and allows substituting a test
// double without network access.
type Client interface {
	QueryYahooFiveDaySymbol(symbol string) (Response, error)
	QueryYahooSymbolByDateRange(symbol string, startDate, endDate time.Time) (Response, error)
	SearchSymbol(symbol string) (SearchResponse, error)
	ParseChart(yahooResult Response) (PriceChart, error)
}

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance API. It wraps an HTTP client and provides convenient methods for
// querying stock prices, historical ranges, and symbol metadata.
type FinanceClient struct {
	httpClient *http.Client
}

var _ Client = (*FinanceClient)(nil)

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
	}
}

// ParseChart converts a raw chart API response into a structured price
// chart. It extracts the symbol metadata (including the live market price
// when present) and the daily close series.
//
// An empty price series is not an error: closed-market responses carry
// metadata but no data points, and the caller decides how to fall back.
// Mismatched timestamp/close array lengths are treated as a malformed
// response. Days with null closes (holidays, half days) are skipped.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, apperrors.ErrNoQuoteData
	}

	result := yahooResult.Chart.Result[0]
	chart := PriceChart{
		Symbol:             result.Meta.Symbol,
		Currency:           result.Meta.Currency,
		ExchangeName:       result.Meta.ExchangeName,
		FullExchangeName:   result.Meta.FullExchangeName,
		LongName:           result.Meta.LongName,
		Shortname:          result.Meta.Shortname,
		RegularMarketPrice: result.Meta.RegularMarketPrice,
	}

	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return chart, nil
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("%w: mismatched data lengths", apperrors.ErrMalformedQuoteResponse)
	}

	for i, ts := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		chart.Indicators = append(chart.Indicators, Indicators{
			Date:       time.Unix(ts, 0).UTC(),
			PriceOpen:  derefFloat(at(quote.Open, i)),
			PriceClose: *quote.Close[i],
			Volume:     derefInt(at(quote.Volume, i)),
			PriceHigh:  derefFloat(at(quote.High, i)),
			PriceLow:   derefFloat(at(quote.Low, i)),
		})
	}

	return chart, nil
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a
// symbol. The range-based query (range=5d) returns the most recent trading
// days plus the live market price in the metadata, which makes it the right
// call for "bring this position's price current".
func (c *FinanceClient) QueryYahooFiveDaySymbol(symbol string) (Response, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)
	result, err := c.queryYahoo(url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("%w: symbol %s", apperrors.ErrNoQuoteData, symbol)
	}

	return result, nil
}

// QueryYahooSymbolByDateRange fetches daily price data for a symbol within a
// specific date range, using Unix-timestamp period parameters for precise
// control over the window.
func (c *FinanceClient) QueryYahooSymbolByDateRange(symbol string, startDate, endDate time.Time) (Response, error) {
	url := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		symbol,
		startDate.Unix(),
		endDate.Unix(),
	)
	result, err := c.queryYahoo(url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("%w: symbol %s", apperrors.ErrNoQuoteData, symbol)
	}

	return result, nil
}

// SearchSymbol queries the Yahoo Finance search endpoint for a ticker
// symbol. The raw response is returned as-is; callers pick the first match
// and decide whether an empty result set is an error.
func (c *FinanceClient) SearchSymbol(symbol string) (SearchResponse, error) {
	endpoint := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=5&newsCount=0",
		url.QueryEscape(symbol),
	)

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return SearchResponse{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return SearchResponse{}, err
	}

	var response SearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return SearchResponse{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedQuoteResponse, err)
	}

	return response, nil
}

// queryYahoo is an internal helper that executes HTTP requests to the Yahoo
// Finance chart API. It sets the headers Yahoo requires (a browser-like
// User-Agent, JSON accept), parses the response, and surfaces API-level
// errors.
func (c *FinanceClient) queryYahoo(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedQuoteResponse, err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}

// at returns s[i] when the slice is long enough; Yahoo occasionally omits
// whole arrays (e.g. volume) while still populating closes.
func at[T any](s []*T, i int) *T {
	if i >= len(s) {
		return nil
	}
	return s[i]
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
