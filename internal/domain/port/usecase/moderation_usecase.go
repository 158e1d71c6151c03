package usecase

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
)

// ModerationResult reports an approve/reject call. Applied is false when the
// transaction was already resolved and the call was absorbed.
type ModerationResult struct {
	Transaction *entity.Transaction
	Applied     bool
	Balance     int64 // Account balance after the call, minor units
}

// BalanceChange reports an audited balance override
type BalanceChange struct {
	Account    *entity.Account
	Previous   int64
	Adjustment *entity.Transaction // nil when the balance did not change
}

// PendingFilter selects the pending queue: "", "all", "deposit" or "withdraw"
type PendingFilter string

// MatchInput is the admin match form; empty fields take the form defaults
type MatchInput struct {
	Title                   string
	Category                string
	TeamFormat              string
	EntryFee                string
	PrizeDescriptor         string
	ScheduledTimeDescriptor string
	TotalSlots              int
	FilledSlots             int
	Banner                  string
}

// ModerationUseCase is the admin surface
type ModerationUseCase interface {
	Approve(ctx context.Context, transactionID string) (*ModerationResult, error)
	Reject(ctx context.Context, transactionID string) (*ModerationResult, error)

	// SetBalance overrides a balance and records an adjustment entry
	SetBalance(ctx context.Context, actor, accountKey string, balance int64) (*BalanceChange, error)

	// AdjustBalance adds delta (which may be negative) to a balance through SetBalance
	AdjustBalance(ctx context.Context, actor, accountKey string, delta int64) (*BalanceChange, error)

	ListPending(ctx context.Context, filter PendingFilter) ([]*entity.Transaction, error)
	Overview(ctx context.Context) (*entity.Overview, error)

	CreateMatch(ctx context.Context, input MatchInput) (*entity.Match, error)
	UpdateMatch(ctx context.Context, matchID string, patch entity.MatchPatch) (*entity.Match, error)
}
