package dto

import (
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// DepositRequest is submitted after paying through a mobile banking channel
type DepositRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Method      string `json:"method" binding:"required"`
	ExternalRef string `json:"trxId" binding:"required"`
}

// WithdrawRequest asks for a payout to a mobile banking number
type WithdrawRequest struct {
	Amount       string `json:"amount" binding:"required"`
	Method       string `json:"method" binding:"required"`
	PayoutTarget string `json:"number" binding:"required,payout_target"`
}

// TransactionResponse is a ledger entry
type TransactionResponse struct {
	ID          string     `json:"id"`
	Mobile      string     `json:"userMobile"`
	Kind        string     `json:"type"`
	Direction   string     `json:"direction"`
	Status      string     `json:"status"`
	Amount      string     `json:"amount"`
	AmountText  string     `json:"amountText"`
	Method      string     `json:"method"`
	ExternalRef string     `json:"trxId,omitempty"`
	CreatedAt   time.Time  `json:"timestamp"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

// NewTransactionResponse converts a ledger entry for output
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Mobile:      tx.AccountKey,
		Kind:        string(tx.Kind),
		Direction:   string(tx.Direction),
		Status:      string(tx.Status),
		Amount:      entity.FormatMinor(tx.Amount),
		AmountText:  tx.AmountMoney().String(),
		Method:      tx.Method,
		ExternalRef: tx.ExternalRef,
		CreatedAt:   tx.CreatedAt,
		ResolvedAt:  tx.ResolvedAt,
	}
}

// NewTransactionList converts ledger entries for output
func NewTransactionList(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
