package entity

import (
	"strings"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
)

const freeToken = "free"

// Fee is a match entry fee. The zero value is a free entry.
type Fee struct {
	Free   bool
	Amount Money
}

// FreeFee returns the fee of a match anyone can join
func FreeFee() Fee {
	return Fee{Free: true, Amount: NewMoney(0)}
}

// FeeOf returns a paid fee of minor units in the wallet currency
func FeeOf(minor int64) Fee {
	return Fee{Amount: NewMoney(minor)}
}

// ParseFeeDescriptor turns a display descriptor such as "20 BDT" or "Free" into a Fee.
// The first token is either "free" or the amount; an optional second token is the currency.
func ParseFeeDescriptor(descriptor string) (Fee, error) {
	tokens := strings.Fields(descriptor)
	if len(tokens) == 0 {
		return Fee{}, errs.NewValidationError("entryFee", descriptor, "empty descriptor", errs.ErrInvalidFee)
	}

	if strings.EqualFold(tokens[0], freeToken) {
		return FreeFee(), nil
	}

	minor, err := ParseAmount(tokens[0])
	if err != nil {
		return Fee{}, errs.NewValidationError("entryFee", descriptor, "leading token must be a number or Free", errs.ErrInvalidFee)
	}

	if len(tokens) > 1 && !strings.EqualFold(tokens[1], WalletCurrency) {
		return Fee{}, errs.NewValidationError("entryFee", descriptor, "fees are charged in "+WalletCurrency, errs.ErrUnsupportedCurrency)
	}

	if minor == 0 {
		return FreeFee(), nil
	}
	return FeeOf(minor), nil
}

// Minor returns the amount debited on join
func (f Fee) Minor() int64 {
	if f.Free {
		return 0
	}
	return f.Amount.Minor
}

// IsFree reports whether joining costs nothing
func (f Fee) IsFree() bool {
	return f.Minor() == 0
}

// String renders the fee the way match cards show it
func (f Fee) String() string {
	if f.IsFree() {
		return "Free"
	}
	return f.Amount.String()
}
