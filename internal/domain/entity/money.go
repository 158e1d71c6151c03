package entity

import (
	"fmt"
	"math"
	"strings"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/shopspring/decimal"
)

// WalletCurrency is the currency every account balance is held in
const WalletCurrency = "BDT"

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Money is an amount in minor units (1/100 of the currency unit) with its currency code
type Money struct {
	Minor    int64
	Currency string
}

// NewMoney creates a Money value in the wallet currency
func NewMoney(minor int64) Money {
	return Money{Minor: minor, Currency: WalletCurrency}
}

// MajorUnits converts whole currency units to minor units
func MajorUnits(units int64) int64 {
	return units * 100
}

// AddMinor returns a+b, or ErrAmountOverflow when the sum does not fit in int64
func AddMinor(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, errs.ErrAmountOverflow
	}
	return a + b, nil
}

// ParseAmount converts a non-negative decimal string like "20", "20.5" or "20.50" to minor units
func ParseAmount(amount string) (int64, error) {
	minor, err := parseMinor(amount)
	if err != nil {
		return 0, err
	}
	if minor < 0 {
		return 0, errs.ErrNegativeAmount
	}
	return minor, nil
}

// ParseSignedAmount is ParseAmount that also accepts negative values, used for balance deltas
func ParseSignedAmount(amount string) (int64, error) {
	return parseMinor(amount)
}

func parseMinor(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}

	scaled := value.Shift(MaxDecimalPlaces)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if scaled.Abs().GreaterThan(maxMinor) {
		return 0, errs.ErrAmountOverflow
	}

	return scaled.IntPart(), nil
}

// FormatMinor renders minor units with exactly two decimals, e.g. 2050 -> "20.50"
func FormatMinor(minor int64) string {
	return decimal.New(minor, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}

// String renders the amount for display: "20 BDT" for whole amounts, "20.50 BDT" otherwise
func (m Money) String() string {
	currency := m.Currency
	if currency == "" {
		currency = WalletCurrency
	}
	if m.Minor%100 == 0 {
		return fmt.Sprintf("%d %s", m.Minor/100, currency)
	}
	return FormatMinor(m.Minor) + " " + currency
}
