package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// Role is the access level of an account
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// MinMobileLength is the shortest accepted mobile number (local 11-digit format)
const MinMobileLength = 11

// Account is a registered participant or administrator with a wallet balance
type Account struct {
	Mobile       string // Unique key
	PasswordHash string // bcrypt hash, never the plain password
	Role         Role
	DisplayName  string
	balance      int64 // Minor units, private so every change goes through Debit/Credit/SetBalance
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount creates an account with a zero balance
func NewAccount(mobile, passwordHash, displayName string, role Role, timeProvider coreport.TimeProvider) (*Account, error) {
	if err := ValidateMobile(mobile); err != nil {
		return nil, err
	}
	if role != RoleAdmin {
		role = RolePlayer
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = DefaultDisplayName(mobile)
	}

	now := timeProvider.Now()
	return &Account{
		Mobile:       mobile,
		PasswordHash: passwordHash,
		Role:         role,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// RestoreAccount rebuilds an account from persisted state
func RestoreAccount(mobile, passwordHash, displayName string, role Role, balance int64, createdAt, updatedAt time.Time) *Account {
	return &Account{
		Mobile:       mobile,
		PasswordHash: passwordHash,
		Role:         role,
		DisplayName:  displayName,
		balance:      balance,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ValidateMobile checks the mobile number shape: at least 11 digits, optional leading +
func ValidateMobile(mobile string) error {
	digits := strings.TrimPrefix(mobile, "+")
	if len(digits) < MinMobileLength || !IsDigits(digits) {
		return errs.NewValidationError("mobile", mobile, fmt.Sprintf("at least %d digits", MinMobileLength), errs.ErrInvalidMobile)
	}
	return nil
}

// DefaultDisplayName builds "Gamer_<last 4 digits>"
func DefaultDisplayName(mobile string) string {
	suffix := mobile
	if len(mobile) > 4 {
		suffix = mobile[len(mobile)-4:]
	}
	return "Gamer_" + suffix
}

// IsDigits reports whether s is a non-empty run of ASCII decimal digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Balance returns the current balance in minor units
func (a *Account) Balance() int64 {
	return a.balance
}

// BalanceMoney returns the balance as Money
func (a *Account) BalanceMoney() Money {
	return NewMoney(a.balance)
}

// IsAdmin reports whether the account may moderate
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAfford checks if the balance covers amount
func (a *Account) CanAfford(amount int64) bool {
	return a.balance >= amount
}

// Debit subtracts amount, failing when the balance does not cover it
func (a *Account) Debit(amount int64, timeProvider coreport.TimeProvider) error {
	if !a.CanAfford(amount) {
		return errs.NewInsufficientBalanceError(a.Mobile, NewMoney(amount).String(), a.BalanceMoney().String())
	}
	a.balance -= amount
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// Credit adds amount to the balance. The balance is unchanged when the sum overflows.
func (a *Account) Credit(amount int64, timeProvider coreport.TimeProvider) error {
	balance, err := AddMinor(a.balance, amount)
	if err != nil {
		return errs.NewValidationError("amount", FormatMinor(amount), "balance would overflow", err)
	}
	a.balance = balance
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// SetBalance overrides the balance and returns the previous value
func (a *Account) SetBalance(balance int64, timeProvider coreport.TimeProvider) (int64, error) {
	if balance < 0 {
		return a.balance, errs.NewValidationError("balance", FormatMinor(balance), "", errs.ErrNegativeBalance)
	}
	previous := a.balance
	a.balance = balance
	a.UpdatedAt = timeProvider.Now()
	return previous, nil
}
