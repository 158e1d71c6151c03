package wallet

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
)

// Limits bounds wallet requests. Amounts are minor units.
type Limits struct {
	MinDeposit         int64
	MaxDeposit         int64
	MinWithdraw        int64
	MaxWithdraw        int64
	PayoutTargetLength int
}

// DefaultLimits returns 10..100000 BDT deposits, 100..1000 BDT withdrawals and 11-digit payout numbers
func DefaultLimits() Limits {
	return Limits{
		MinDeposit:         entity.MajorUnits(10),
		MaxDeposit:         entity.MajorUnits(100000),
		MinWithdraw:        entity.MajorUnits(100),
		MaxWithdraw:        entity.MajorUnits(1000),
		PayoutTargetLength: entity.MinMobileLength,
	}
}

// RequestValidator checks wallet requests before anything is stored
type RequestValidator struct {
	limits Limits
}

// NewRequestValidator creates a validator for limits
func NewRequestValidator(limits Limits) *RequestValidator {
	return &RequestValidator{limits: limits}
}

// ValidateDeposit returns the amount in minor units and the canonical method
func (v *RequestValidator) ValidateDeposit(amount, method, externalRef string) (int64, string, error) {
	minor, err := v.parseAmount(amount)
	if err != nil {
		return 0, "", err
	}
	if minor < v.limits.MinDeposit {
		return 0, "", errs.NewValidationError("amount", amount,
			"minimum deposit is "+entity.NewMoney(v.limits.MinDeposit).String(), errs.ErrBelowMinimum)
	}
	if minor > v.limits.MaxDeposit {
		return 0, "", errs.NewValidationError("amount", amount,
			"maximum deposit is "+entity.NewMoney(v.limits.MaxDeposit).String(), errs.ErrAboveMaximum)
	}

	canonical, err := entity.NormalizeMethod(method)
	if err != nil {
		return 0, "", err
	}

	if strings.TrimSpace(externalRef) == "" {
		return 0, "", errs.NewValidationError("externalRef", externalRef, "", errs.ErrMissingExternalRef)
	}
	return minor, canonical, nil
}

// ValidateWithdraw checks the amount bounds and the payout number; the balance is checked under the account key
func (v *RequestValidator) ValidateWithdraw(amount, method, payoutTarget string) (int64, string, error) {
	minor, err := v.parseAmount(amount)
	if err != nil {
		return 0, "", err
	}
	if minor < v.limits.MinWithdraw {
		return 0, "", errs.NewValidationError("amount", amount,
			"minimum withdraw is "+entity.NewMoney(v.limits.MinWithdraw).String(), errs.ErrBelowMinimum)
	}
	if minor > v.limits.MaxWithdraw {
		return 0, "", errs.NewValidationError("amount", amount,
			"maximum withdraw is "+entity.NewMoney(v.limits.MaxWithdraw).String(), errs.ErrAboveMaximum)
	}

	canonical, err := entity.NormalizeMethod(method)
	if err != nil {
		return 0, "", err
	}

	if err := v.validatePayoutTarget(payoutTarget); err != nil {
		return 0, "", err
	}
	return minor, canonical, nil
}

func (v *RequestValidator) parseAmount(amount string) (int64, error) {
	minor, err := entity.ParseAmount(amount)
	if err != nil {
		return 0, errs.NewValidationError("amount", amount, "", err)
	}
	if minor == 0 {
		return 0, errs.NewValidationError("amount", amount, "must be greater than zero", errs.ErrInvalidAmount)
	}
	return minor, nil
}

// validatePayoutTarget accepts a mobile number of at least PayoutTargetLength digits, with an optional leading "+"
func (v *RequestValidator) validatePayoutTarget(target string) error {
	digits := strings.TrimPrefix(target, "+")
	if len(digits) < v.limits.PayoutTargetLength || !entity.IsDigits(digits) {
		return errs.NewValidationError("payoutTarget", target,
			fmt.Sprintf("at least %d digits", v.limits.PayoutTargetLength), errs.ErrInvalidPayoutTarget)
	}
	return nil
}
