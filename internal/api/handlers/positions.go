package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
	"github.com/bwillems/portfolio-tracker/internal/model"
	"github.com/bwillems/portfolio-tracker/internal/service"
)

// PositionHandler handles HTTP requests for portfolio positions. It serves
// as the HTTP layer adapter, parsing requests and delegating business logic
// to the position and sync services.
type PositionHandler struct {
	positionService *service.PositionService
	syncService     *service.SyncService
}

// NewPositionHandler creates a new PositionHandler with the provided service
// dependencies.
func NewPositionHandler(positionService *service.PositionService, syncService *service.SyncService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
		syncService:     syncService,
	}
}

// Positions handles GET requests to read back all position balances.
//
// Endpoint: GET /api/position
// Response: 200 OK with PortfolioReport
func (h *PositionHandler) Positions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.positionService.Report())
}

// Load handles POST requests to replace the position set with a new
// positions document. One structurally invalid record rejects the whole
// document; no partial list is kept.
//
// Endpoint: POST /api/position
// Request body: JSON array of position records
// Response: 200 OK with the resulting PortfolioReport
// Error: 400 Bad Request on malformed input
func (h *PositionHandler) Load(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body", err)
		return
	}

	positions, err := service.ParsePositions(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid positions document", err)
		return
	}

	h.positionService.SetPositions(positions)
	respondJSON(w, http.StatusOK, h.positionService.Report())
}

// Sync handles POST requests to refresh every position's market data from
// the quote provider. Failures are reported per position in the summary, so
// one unreachable ticker never hides the rest.
//
// Endpoint: POST /api/position/sync
// Response: 200 OK with SyncSummary
func (h *PositionHandler) Sync(w http.ResponseWriter, r *http.Request) {
	positions := h.positionService.Positions()
	updated, summary := h.syncService.SyncAll(r.Context(), positions)
	h.positionService.ApplyMarketData(updated)

	respondJSON(w, http.StatusOK, summary)
}

// Accrue handles POST requests to apply due interest payments.
//
// Endpoint: POST /api/position/accrue
// Query parameters:
//   - date: optional accrual date (YYYY-MM-DD); defaults to now
//   - catchUp: optional; when "true", settle every missed period instead of
//     a single accrual step
//
// Response: 200 OK with the list of AccrualResult
// Error: 400 Bad Request when the date does not parse
func (h *PositionHandler) Accrue(w http.ResponseWriter, r *http.Request) {
	currentDate := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date parameter", err)
			return
		}
		currentDate = parsed.Time
	}

	var results []model.AccrualResult
	if r.URL.Query().Get("catchUp") == "true" {
		results = h.positionService.CatchUpInterest(currentDate)
	} else {
		results = h.positionService.ApplyInterest(currentDate)
	}

	respondJSON(w, http.StatusOK, results)
}

// History handles GET requests for a ticker's price on a given date. The
// lookup window extends a few days past the date so weekends and holidays
// still resolve; the earliest quote in the window wins.
//
// Endpoint: GET /api/position/history?ticker=AAPL&date=2020-01-01
// Response: 200 OK with HistoricPrice
// Error: 400 on missing/invalid parameters, 404 when the window has no
// quotes, 502 on provider failure
func (h *PositionHandler) History(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "missing ticker parameter", apperrors.ErrInvalidSymbol)
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "missing date parameter", apperrors.ErrInvalidDate)
		return
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date parameter", err)
		return
	}

	price, err := h.syncService.HistoricPrice(r.Context(), ticker, date.Time)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoQuoteData) {
			respondError(w, http.StatusNotFound, "no price available", err)
			return
		}
		respondError(w, http.StatusBadGateway, "quote provider error", err)
		return
	}

	respondJSON(w, http.StatusOK, price)
}
