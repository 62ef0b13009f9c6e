package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
	"github.com/bwillems/portfolio-tracker/internal/model"
	"github.com/bwillems/portfolio-tracker/internal/service"
)

// SymbolHandler serves the locally stored provider metadata and cached
// prices for ticker symbols.
type SymbolHandler struct {
	syncService *service.SyncService
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(syncService *service.SyncService) *SymbolHandler {
	return &SymbolHandler{
		syncService: syncService,
	}
}

// Symbol handles GET requests for resolved symbol metadata.
//
// Endpoint: GET /api/symbol/{symbol}
// Response: 200 OK with SymbolInfo
// Error: 404 when the symbol was never resolved
func (h *SymbolHandler) Symbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "missing symbol", apperrors.ErrInvalidSymbol)
		return
	}

	info, err := h.syncService.ResolvedSymbol(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) {
			respondError(w, http.StatusNotFound, "symbol not resolved", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to retrieve symbol", err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// Prices handles GET requests for a symbol's cached price history.
//
// Endpoint: GET /api/symbol/{symbol}/prices?start=2024-01-01&end=2024-12-31
// Both range parameters are optional; the default window is the last 30
// days.
// Response: 200 OK with array of CachedPrice
func (h *SymbolHandler) Prices(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "missing symbol", apperrors.ErrInvalidSymbol)
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)

	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid start parameter", err)
			return
		}
		start = parsed.Time
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid end parameter", err)
			return
		}
		end = parsed.Time
	}

	prices, err := h.syncService.CachedPrices(symbol, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve prices", err)
		return
	}

	respondJSON(w, http.StatusOK, prices)
}
