package usecase

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// DepositInput is a deposit request made after paying through a mobile banking channel
type DepositInput struct {
	AccountKey  string
	Amount      string // Decimal text, e.g. "50" or "50.25"
	Method      string
	ExternalRef string // Payment transaction id from the channel
}

// WithdrawInput is a payout request
type WithdrawInput struct {
	AccountKey   string
	Amount       string
	Method       string
	PayoutTarget string // Mobile banking number receiving the payout
}

// WalletUseCase creates wallet requests and lists the ledger of an account
type WalletUseCase interface {
	RequestDeposit(ctx context.Context, input DepositInput) (*entity.Transaction, error)
	RequestWithdraw(ctx context.Context, input WithdrawInput) (*entity.Transaction, error)
	ListTransactions(ctx context.Context, accountKey string) ([]*entity.Transaction, error)
}
