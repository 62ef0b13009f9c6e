package validation_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bwillems/portfolio-tracker/internal/apperrors"
	"github.com/bwillems/portfolio-tracker/internal/model"
	"github.com/bwillems/portfolio-tracker/internal/testutil"
	"github.com/bwillems/portfolio-tracker/internal/validation"
)

func TestValidatePosition(t *testing.T) {
	t.Run("accepts a plain stock holding", func(t *testing.T) {
		p := testutil.NewPosition().WithTicker("AAPL").WithAmount(10).Build()
		if err := validation.ValidatePosition(p); err != nil {
			t.Errorf("ValidatePosition() returned unexpected error: %v", err)
		}
	})

	t.Run("requires an asset class", func(t *testing.T) {
		p := model.PortfolioPosition{Amount: 10}
		if err := validation.ValidatePosition(p); !errors.Is(err, apperrors.ErrMissingRequiredField) {
			t.Errorf("Expected ErrMissingRequiredField, got %v", err)
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		p := testutil.NewPosition().AsCash(-100).Build()
		if err := validation.ValidatePosition(p); !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Errorf("Expected ErrNegativeAmount, got %v", err)
		}
	})

	t.Run("rejects non-finite amounts", func(t *testing.T) {
		for name, amount := range map[string]float64{
			"NaN":          math.NaN(),
			"positive Inf": math.Inf(1),
			"negative Inf": math.Inf(-1),
		} {
			p := testutil.NewPosition().WithAmount(amount).Build()
			if err := validation.ValidatePosition(p); !errors.Is(err, apperrors.ErrInvalidAmount) {
				t.Errorf("%s: expected ErrInvalidAmount, got %v", name, err)
			}
		}
	})

	t.Run("rejects a negative interest rate", func(t *testing.T) {
		p := testutil.NewPosition().AsCash(100).WithInterest(-1.0, 30).Build()
		if err := validation.ValidatePosition(p); !errors.Is(err, apperrors.ErrInvalidInterestTerms) {
			t.Errorf("Expected ErrInvalidInterestTerms, got %v", err)
		}
	})

	t.Run("rejects a non-positive payment frequency", func(t *testing.T) {
		p := testutil.NewPosition().AsCash(100).WithInterest(1.0, 0).Build()
		if err := validation.ValidatePosition(p); !errors.Is(err, apperrors.ErrInvalidInterestTerms) {
			t.Errorf("Expected ErrInvalidInterestTerms, got %v", err)
		}
	})
}

func TestValidatePositions(t *testing.T) {
	t.Run("reports the failing record's index", func(t *testing.T) {
		positions := []model.PortfolioPosition{
			testutil.NewPosition().WithName("OK").AsCash(100).Build(),
			testutil.NewPosition().WithName("Bad").AsCash(-5).Build(),
		}

		err := validation.ValidatePositions(positions)
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.Contains(err.Error(), "position 1") || !strings.Contains(err.Error(), "Bad") {
			t.Errorf("Expected index and name in error, got %v", err)
		}
	})

	t.Run("empty list is valid", func(t *testing.T) {
		if err := validation.ValidatePositions(nil); err != nil {
			t.Errorf("ValidatePositions(nil) returned unexpected error: %v", err)
		}
	})
}
