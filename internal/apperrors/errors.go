package apperrors

import "errors"

// Quote provider errors represent failures at the collaborator boundary.
// They are propagated to the caller as-is; the core performs no retry.
var (
	// ErrNoQuoteData indicates the provider returned no result for a symbol.
	ErrNoQuoteData = errors.New("no quote data returned")

	// ErrMalformedQuoteResponse indicates the provider response could not be
	// interpreted (e.g. price and timestamp arrays of different lengths).
	ErrMalformedQuoteResponse = errors.New("malformed quote response")

	// ErrSymbolNotFound indicates that a symbol name lookup returned no match.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Domain entity errors represent missing entities in the local store.
var (
	// ErrPriceNotFound indicates no cached price for a symbol/date combination.
	ErrPriceNotFound = errors.New("price not found")
)

// Business logic errors represent validation failures on position input.
// Structurally invalid records fail fast and abort the whole load.
var (
	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidAmount indicates that an amount field is present but not a
	// finite number.
	ErrInvalidAmount = errors.New("amount must be a finite number")

	// ErrInvalidInterestTerms indicates inconsistent or out-of-range interest fields.
	ErrInvalidInterestTerms = errors.New("invalid interest terms")

	// ErrInvalidSymbol indicates that a symbol parameter is required but absent.
	ErrInvalidSymbol = errors.New("symbol is required")

	// ErrInvalidDate indicates that a date parameter is required but absent or unparseable.
	ErrInvalidDate = errors.New("date parameter is required")
)
