package validation

import (
	"fmt"
	"math"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
	"github.com/bwillems/portfolio-tracker/internal/model"
)

// ValidatePosition checks a decoded position record for structural validity.
// Loading aborts on the first invalid record; there is no partial list.
func ValidatePosition(p model.PortfolioPosition) error {
	if p.AssetClass == "" {
		return fmt.Errorf("%w: AssetClass", apperrors.ErrMissingRequiredField)
	}
	if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return fmt.Errorf("%w: Amount", apperrors.ErrInvalidAmount)
	}
	if p.Amount < 0 {
		return apperrors.ErrNegativeAmount
	}
	if p.InterestRate != nil && (*p.InterestRate < 0 || math.IsNaN(*p.InterestRate)) {
		return fmt.Errorf("%w: InterestRate must be non-negative", apperrors.ErrInvalidInterestTerms)
	}
	if p.PaymentFrequencyDays != nil && *p.PaymentFrequencyDays <= 0 {
		return fmt.Errorf("%w: PaymentFrequencyDays must be positive", apperrors.ErrInvalidInterestTerms)
	}
	return nil
}

// ValidatePositions validates a whole decoded position list, reporting the
// index of the first failing record.
func ValidatePositions(positions []model.PortfolioPosition) error {
	for i, p := range positions {
		if err := ValidatePosition(p); err != nil {
			return fmt.Errorf("position %d (%s): %w", i, p.DisplayName(), err)
		}
	}
	return nil
}
