package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	tport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// TransactionKind is what a ledger entry records
type TransactionKind string

// Transaction kinds
const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdraw   TransactionKind = "withdraw"
	KindAdjustment TransactionKind = "adjustment"
)

// Direction says whether an entry adds to or takes from the balance
type Direction string

// Directions
const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants. Approved and rejected are terminal.
const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusRejected TransactionStatus = "rejected"
)

// Payment methods accepted for wallet requests
const (
	MethodBkash = "bKash"
	MethodNagad = "Nagad"
	MethodAdmin = "admin"
)

// NormalizeMethod maps a case-insensitive payment method name to its canonical spelling
func NormalizeMethod(method string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "bkash":
		return MethodBkash, nil
	case "nagad":
		return MethodNagad, nil
	default:
		return "", errs.NewValidationError("method", method, "use bKash or Nagad", errs.ErrInvalidMethod)
	}
}

// Transaction is a ledger entry: a deposit or withdraw request, or an audited balance adjustment
type Transaction struct {
	ID          string            // "tx-" prefixed, unique
	AccountKey  string            // Mobile of the owning account
	Amount      int64             // Positive amount in minor units
	Kind        TransactionKind   // deposit, withdraw or adjustment
	Direction   Direction         // Effect on the balance once approved
	Status      TransactionStatus // pending until moderated
	Method      string            // Payment channel descriptor, e.g. "bKash (01700000000)"
	ExternalRef string            // Payment reference for deposits, acting admin for adjustments
	CreatedAt   time.Time
	ResolvedAt  *time.Time // When the entry left pending (nullable)
}

// NewDepositRequest creates a pending deposit; the balance changes only when it is approved
func NewDepositRequest(id, accountKey string, amount int64, method, externalRef string, timeProvider tport.TimeProvider) *Transaction {
	return &Transaction{
		ID:          id,
		AccountKey:  accountKey,
		Amount:      amount,
		Kind:        KindDeposit,
		Direction:   DirectionCredit,
		Status:      StatusPending,
		Method:      method,
		ExternalRef: externalRef,
		CreatedAt:   timeProvider.Now(),
	}
}

// NewWithdrawRequest creates a pending withdraw. The amount is already held from the balance.
func NewWithdrawRequest(id, accountKey string, amount int64, method, payoutTarget string, timeProvider tport.TimeProvider) *Transaction {
	return &Transaction{
		ID:         id,
		AccountKey: accountKey,
		Amount:     amount,
		Kind:       KindWithdraw,
		Direction:  DirectionDebit,
		Status:     StatusPending,
		Method:     method + " (" + payoutTarget + ")",
		CreatedAt:  timeProvider.Now(),
	}
}

// NewAdjustment records a manual balance override as an approved ledger entry
func NewAdjustment(id, accountKey string, previous, current int64, actor string, timeProvider tport.TimeProvider) *Transaction {
	now := timeProvider.Now()
	direction, amount := DirectionCredit, current-previous
	if amount < 0 {
		direction, amount = DirectionDebit, -amount
	}
	return &Transaction{
		ID:          id,
		AccountKey:  accountKey,
		Amount:      amount,
		Kind:        KindAdjustment,
		Direction:   direction,
		Status:      StatusApproved,
		Method:      MethodAdmin,
		ExternalRef: actor,
		CreatedAt:   now,
		ResolvedAt:  &now,
	}
}

// IsPending reports whether the entry still awaits moderation
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// Approve moves a pending entry to approved
func (t *Transaction) Approve(timeProvider tport.TimeProvider) error {
	return t.resolve(StatusApproved, timeProvider)
}

// Reject moves a pending entry to rejected
func (t *Transaction) Reject(timeProvider tport.TimeProvider) error {
	return t.resolve(StatusRejected, timeProvider)
}

func (t *Transaction) resolve(status TransactionStatus, timeProvider tport.TimeProvider) error {
	if !t.IsPending() {
		return errs.NewStaleStateError(t.ID, string(t.Status))
	}
	now := timeProvider.Now()
	t.Status = status
	t.ResolvedAt = &now
	return nil
}

// AmountMoney returns the amount as Money
func (t *Transaction) AmountMoney() Money {
	return NewMoney(t.Amount)
}
