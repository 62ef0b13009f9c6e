package model

import "time"

// CachedPrice is a closing price fetched from the quote provider and stored
// locally, one row per symbol and trading day.
type CachedPrice struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
}

// SymbolInfo is provider metadata resolved for a ticker symbol, kept so the
// display name survives restarts without another lookup.
type SymbolInfo struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	Exchange    string    `json:"exchange,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// HistoricPrice is a single resolved historical quote: the earliest usable
// close in the requested lookup window.
type HistoricPrice struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
}
