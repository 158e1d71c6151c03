package model

import (
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// Transaction is the stored shape of a ledger entry
type Transaction struct {
	ID         string     `json:"id"`
	UserMobile string     `json:"userMobile"`
	Amount     int64      `json:"amount"` // Minor units
	Type       string     `json:"type"`
	Direction  string     `json:"direction"`
	Status     string     `json:"status"`
	Method     string     `json:"method"`
	TrxID      string     `json:"trxId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// FromTransaction converts a ledger entry to its stored shape
func FromTransaction(t *entity.Transaction) Transaction {
	return Transaction{
		ID:         t.ID,
		UserMobile: t.AccountKey,
		Amount:     t.Amount,
		Type:       string(t.Kind),
		Direction:  string(t.Direction),
		Status:     string(t.Status),
		Method:     t.Method,
		TrxID:      t.ExternalRef,
		CreatedAt:  t.CreatedAt,
		ResolvedAt: t.ResolvedAt,
	}
}

// ToEntity converts a stored ledger entry to an entity
func (m Transaction) ToEntity() *entity.Transaction {
	direction := entity.Direction(m.Direction)
	if direction == "" {
		direction = entity.DirectionCredit
		if entity.TransactionKind(m.Type) == entity.KindWithdraw {
			direction = entity.DirectionDebit
		}
	}
	return &entity.Transaction{
		ID:          m.ID,
		AccountKey:  m.UserMobile,
		Amount:      m.Amount,
		Kind:        entity.TransactionKind(m.Type),
		Direction:   direction,
		Status:      entity.TransactionStatus(m.Status),
		Method:      m.Method,
		ExternalRef: m.TrxID,
		CreatedAt:   m.CreatedAt,
		ResolvedAt:  m.ResolvedAt,
	}
}
