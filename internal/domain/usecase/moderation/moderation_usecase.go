package moderation

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/serial"
)

// TransactionIDPrefix starts every adjustment entry id
const TransactionIDPrefix = "tx"

// Moderation actions, also used as metric labels
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Pending queue filters
const (
	FilterAll      usecase.PendingFilter = "all"
	FilterDeposit  usecase.PendingFilter = "deposit"
	FilterWithdraw usecase.PendingFilter = "withdraw"
)

// ModerationUseCase is the admin surface over the ledger, balances and matches
type ModerationUseCase struct {
	uow          persistence.UnitOfWork
	seq          *serial.Sequencer
	ids          coreport.IDGenerator
	metrics      coreport.Metrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewModerationUseCase creates a new ModerationUseCase
func NewModerationUseCase(
	uow persistence.UnitOfWork,
	seq *serial.Sequencer,
	ids coreport.IDGenerator,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ModerationUseCase {
	return &ModerationUseCase{
		uow:          uow,
		seq:          seq,
		ids:          ids,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Approve resolves a pending entry. An approved deposit credits the balance;
// a withdraw was already held at request time.
func (u *ModerationUseCase) Approve(ctx context.Context, transactionID string) (*usecase.ModerationResult, error) {
	return u.resolve(ctx, ActionApprove, transactionID)
}

// Reject resolves a pending entry. A rejected withdraw refunds the held amount.
func (u *ModerationUseCase) Reject(ctx context.Context, transactionID string) (*usecase.ModerationResult, error) {
	return u.resolve(ctx, ActionReject, transactionID)
}

func (u *ModerationUseCase) resolve(ctx context.Context, action, transactionID string) (*usecase.ModerationResult, error) {
	// The owning account is only known after a first read; the entry is read again under its key
	tx, err := u.uow.GetTransactionRepository(ctx).GetByID(ctx, transactionID)
	if err != nil {
		u.metrics.ObserveModeration(action, string(errs.KindOf(err)))
		return nil, err
	}

	result := &usecase.ModerationResult{}
	err = u.seq.Do(ctx, serial.AccountKey(tx.AccountKey), func(ctx context.Context) error {
		return persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
			transactions := u.uow.GetTransactionRepository(txCtx)
			tx, err := transactions.GetByID(txCtx, transactionID)
			if err != nil {
				return err
			}
			result.Transaction = tx

			accounts := u.uow.GetAccountRepository(txCtx)
			account, err := accounts.GetByMobile(txCtx, tx.AccountKey)
			if err != nil {
				return err
			}
			result.Balance = account.Balance()

			if action == ActionApprove {
				err = tx.Approve(u.timeProvider)
			} else {
				err = tx.Reject(u.timeProvider)
			}
			if errs.IsStaleStateError(err) {
				u.logger.Warn("Ignoring moderation of a resolved transaction", map[string]any{
					"action":         action,
					"transaction_id": tx.ID,
					"status":         string(tx.Status),
				})
				return nil
			}
			if err != nil {
				return err
			}

			if refund(action, tx) {
				if err := account.Credit(tx.Amount, u.timeProvider); err != nil {
					return err
				}
				if err := accounts.Update(txCtx, account); err != nil {
					return err
				}
			}
			if err := transactions.Update(txCtx, tx); err != nil {
				return err
			}

			result.Applied = true
			result.Balance = account.Balance()
			return nil
		})
	})
	if err != nil {
		u.metrics.ObserveModeration(action, string(errs.KindOf(err)))
		return nil, err
	}

	if !result.Applied {
		u.metrics.ObserveModeration(action, "absorbed")
		return result, nil
	}

	u.metrics.ObserveModeration(action, "applied")
	u.logger.Info("Transaction moderated", map[string]any{
		"action":         action,
		"transaction_id": result.Transaction.ID,
		"kind":           string(result.Transaction.Kind),
		"account":        result.Transaction.AccountKey,
		"balance":        entity.FormatMinor(result.Balance),
	})
	return result, nil
}

// refund reports whether resolving tx with action credits the account
func refund(action string, tx *entity.Transaction) bool {
	switch tx.Kind {
	case entity.KindDeposit:
		return action == ActionApprove
	case entity.KindWithdraw:
		return action == ActionReject
	default:
		return false
	}
}

// SetBalance overrides a balance and records an adjustment entry
func (u *ModerationUseCase) SetBalance(ctx context.Context, actor, accountKey string, balance int64) (*usecase.BalanceChange, error) {
	if balance < 0 {
		return nil, errs.NewValidationError("balance", entity.FormatMinor(balance), "", errs.ErrNegativeBalance)
	}
	return u.override(ctx, actor, accountKey, func(int64) (int64, error) { return balance, nil })
}

// AdjustBalance adds delta to a balance; the result must not be negative
func (u *ModerationUseCase) AdjustBalance(ctx context.Context, actor, accountKey string, delta int64) (*usecase.BalanceChange, error) {
	return u.override(ctx, actor, accountKey, func(current int64) (int64, error) {
		balance, err := entity.AddMinor(current, delta)
		if err != nil {
			return 0, errs.NewValidationError("delta", entity.FormatMinor(delta), "balance would overflow", err)
		}
		return balance, nil
	})
}

func (u *ModerationUseCase) override(
	ctx context.Context,
	actor, accountKey string,
	target func(current int64) (int64, error),
) (*usecase.BalanceChange, error) {
	change := &usecase.BalanceChange{}
	err := u.seq.Do(ctx, serial.AccountKey(accountKey), func(ctx context.Context) error {
		return persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
			accounts := u.uow.GetAccountRepository(txCtx)
			account, err := accounts.GetByMobile(txCtx, accountKey)
			if err != nil {
				return err
			}

			balance, err := target(account.Balance())
			if err != nil {
				return err
			}
			previous, err := account.SetBalance(balance, u.timeProvider)
			if err != nil {
				return err
			}
			change.Account = account
			change.Previous = previous
			if previous == account.Balance() {
				return nil
			}

			change.Adjustment = entity.NewAdjustment(u.ids.NewID(TransactionIDPrefix), accountKey,
				previous, account.Balance(), actor, u.timeProvider)
			if err := accounts.Update(txCtx, account); err != nil {
				return err
			}
			return u.uow.GetTransactionRepository(txCtx).Create(txCtx, change.Adjustment)
		})
	})
	if err != nil {
		return nil, err
	}

	if change.Adjustment != nil {
		u.logger.Info("Balance overridden", map[string]any{
			"account":        accountKey,
			"actor":          actor,
			"previous":       entity.FormatMinor(change.Previous),
			"balance":        entity.FormatMinor(change.Account.Balance()),
			"transaction_id": change.Adjustment.ID,
		})
	}
	return change, nil
}

// ListPending returns the moderation queue, newest first
func (u *ModerationUseCase) ListPending(ctx context.Context, filter usecase.PendingFilter) ([]*entity.Transaction, error) {
	query := persistence.TransactionFilter{Status: entity.StatusPending}
	switch filter {
	case "", FilterAll:
	case FilterDeposit:
		query.Kind = entity.KindDeposit
	case FilterWithdraw:
		query.Kind = entity.KindWithdraw
	default:
		return nil, errs.NewValidationError("filter", string(filter), "all, deposit or withdraw", errs.ErrInvalidRequest)
	}
	return u.uow.GetTransactionRepository(ctx).List(ctx, query)
}

// Overview summarizes accounts, matches and the ledger
func (u *ModerationUseCase) Overview(ctx context.Context) (*entity.Overview, error) {
	overview := &entity.Overview{}
	err := persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
		accounts, err := u.uow.GetAccountRepository(txCtx).List(txCtx)
		if err != nil {
			return err
		}
		overview.TotalAccounts = len(accounts)

		if overview.TotalMatches, err = u.uow.GetMatchRepository(txCtx).Count(txCtx); err != nil {
			return err
		}

		transactions, err := u.uow.GetTransactionRepository(txCtx).List(txCtx, persistence.TransactionFilter{})
		if err != nil {
			return err
		}
		for _, tx := range transactions {
			overview.Tally(tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return overview, nil
}

var _ usecase.ModerationUseCase = (*ModerationUseCase)(nil)
