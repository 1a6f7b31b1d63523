package campaign

import (
	"errors"
	"fmt"
	"time"

	"go_shop/internal/model"
)

// DefaultSecondTrancheOffsetDays is the default gap between order creation
// and the second tranche's due date.
const DefaultSecondTrancheOffsetDays = 60

// ErrInvalidScheme indicates a payment scheme whose stored percentages are
// inconsistent. This is an integrity violation in the campaign record, not a
// request error; the calculator refuses to compute rather than miscompute.
var ErrInvalidScheme = errors.New("payment scheme percentages are invalid")

// ValidateScheme checks the integrity of a payment scheme. Disabled schemes
// are always valid (their percentages are never applied).
func ValidateScheme(scheme model.PaymentScheme) error {
	if !scheme.Enabled {
		return nil
	}
	if scheme.FirstPercentage < 0 || scheme.FirstPercentage > 100 ||
		scheme.SecondPercentage < 0 || scheme.SecondPercentage > 100 {
		return fmt.Errorf("%w: percentages must be within [0,100], got %d/%d",
			ErrInvalidScheme, scheme.FirstPercentage, scheme.SecondPercentage)
	}
	if scheme.FirstPercentage+scheme.SecondPercentage != 100 {
		return fmt.Errorf("%w: %d + %d != 100",
			ErrInvalidScheme, scheme.FirstPercentage, scheme.SecondPercentage)
	}
	return nil
}

// ComputeInstallments derives the two-tranche payment plan for an order
// subtotal. Returns nil when the scheme is disabled (full payment up front,
// handled by the caller's order flow).
//
// The first tranche is subtotal*firstPercentage/100 rounded half-up; the
// second is the exact remainder, so firstAmount+secondAmount == subtotal
// even when the percentage does not divide evenly. The second tranche is due
// offsetDays after asOf (pass <= 0 to use the default). Both tranches start
// out pending.
func ComputeInstallments(scheme model.PaymentScheme, subtotal int64, asOf time.Time, offsetDays int) (*model.Installment, error) {
	if !scheme.Enabled {
		return nil, nil
	}
	if err := ValidateScheme(scheme); err != nil {
		return nil, err
	}
	if subtotal < 0 {
		return nil, fmt.Errorf("subtotal must be non-negative, got %d", subtotal)
	}
	if offsetDays <= 0 {
		offsetDays = DefaultSecondTrancheOffsetDays
	}

	// Round half-up in integer arithmetic: (n*p + 50) / 100.
	first := (subtotal*int64(scheme.FirstPercentage) + 50) / 100
	second := subtotal - first

	dueAt := asOf.AddDate(0, 0, offsetDays)

	return &model.Installment{
		FirstAmount:  first,
		SecondAmount: second,
		FirstStatus:  model.TrancheStatusPending,
		SecondStatus: model.TrancheStatusPending,
		SecondDueAt:  &dueAt,
	}, nil
}
