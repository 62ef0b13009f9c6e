package model

// PositionBalance is the reporting view of a single position.
type PositionBalance struct {
	Name       string  `json:"name"`
	Ticker     string  `json:"ticker,omitempty"`
	AssetClass string  `json:"assetClass"`
	Amount     float64 `json:"amount"`
	LastSpot   float64 `json:"lastSpot"`
	Balance    float64 `json:"balance"`
}

// PortfolioReport lists all position balances with their total.
type PortfolioReport struct {
	Positions []PositionBalance `json:"positions"`
	Total     float64           `json:"total"`
}

// AccrualResult records one position's outcome of an accrual run.
type AccrualResult struct {
	Position    string  `json:"position"`
	Interest    float64 `json:"interest"`
	Periods     int     `json:"periods"`
	NewAmount   float64 `json:"newAmount"`
	NextPayment *Date   `json:"nextPayment,omitempty"`
}

// SyncSummary describes a batch price synchronization. It reports both the
// positions that were refreshed and the ones whose provider call failed, so
// a single failing position never masks the rest of the batch.
// Success is true if at least one position was refreshed.
type SyncSummary struct {
	Success      bool           `json:"success"`
	Updated      []SyncedTicker `json:"updated"`
	Errors       []SyncError    `json:"errors"`
	TotalUpdated int            `json:"totalUpdated"`
	TotalErrors  int            `json:"totalErrors"`
}

// SyncedTicker identifies one successfully refreshed position.
type SyncedTicker struct {
	Name     string  `json:"name"`
	Ticker   string  `json:"ticker"`
	LastSpot float64 `json:"lastSpot"`
}

// SyncError identifies one position whose synchronization failed, with the
// provider error message.
type SyncError struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Error  string `json:"error"`
}

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  string `json:"db_version"`
}
