package wallet

import (
	"context"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/serial"
)

// TransactionIDPrefix starts every ledger entry id
const TransactionIDPrefix = "tx"

// WalletUseCase creates deposit and withdraw requests
type WalletUseCase struct {
	uow          persistence.UnitOfWork
	seq          *serial.Sequencer
	validator    *RequestValidator
	ids          coreport.IDGenerator
	metrics      coreport.Metrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewWalletUseCase creates a new WalletUseCase
func NewWalletUseCase(
	uow persistence.UnitOfWork,
	seq *serial.Sequencer,
	limits Limits,
	ids coreport.IDGenerator,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *WalletUseCase {
	return &WalletUseCase{
		uow:          uow,
		seq:          seq,
		validator:    NewRequestValidator(limits),
		ids:          ids,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// RequestDeposit records a pending deposit. The balance changes only on approval.
func (u *WalletUseCase) RequestDeposit(ctx context.Context, input usecase.DepositInput) (*entity.Transaction, error) {
	tx, err := u.requestDeposit(ctx, input)
	u.metrics.ObserveWalletRequest(string(entity.KindDeposit), outcome(err))
	return tx, err
}

func (u *WalletUseCase) requestDeposit(ctx context.Context, input usecase.DepositInput) (*entity.Transaction, error) {
	amount, method, err := u.validator.ValidateDeposit(input.Amount, input.Method, input.ExternalRef)
	if err != nil {
		return nil, err
	}

	tx := entity.NewDepositRequest(u.ids.NewID(TransactionIDPrefix), input.AccountKey, amount, method, input.ExternalRef, u.timeProvider)
	err = persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
		if _, err := u.uow.GetAccountRepository(txCtx).GetByMobile(txCtx, input.AccountKey); err != nil {
			return err
		}
		return u.uow.GetTransactionRepository(txCtx).Create(txCtx, tx)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("Deposit requested", map[string]any{
		"transaction_id": tx.ID,
		"account":        tx.AccountKey,
		"amount":         entity.FormatMinor(tx.Amount),
		"method":         tx.Method,
	})
	return tx, nil
}

// RequestWithdraw holds the amount from the balance and records a pending withdraw
func (u *WalletUseCase) RequestWithdraw(ctx context.Context, input usecase.WithdrawInput) (*entity.Transaction, error) {
	tx, err := u.requestWithdraw(ctx, input)
	u.metrics.ObserveWalletRequest(string(entity.KindWithdraw), outcome(err))
	return tx, err
}

func (u *WalletUseCase) requestWithdraw(ctx context.Context, input usecase.WithdrawInput) (*entity.Transaction, error) {
	amount, method, err := u.validator.ValidateWithdraw(input.Amount, input.Method, input.PayoutTarget)
	if err != nil {
		return nil, err
	}

	tx := entity.NewWithdrawRequest(u.ids.NewID(TransactionIDPrefix), input.AccountKey, amount, method, input.PayoutTarget, u.timeProvider)

	// Balance read, debit and ledger entry must not interleave with another update of this account
	err = u.seq.Do(ctx, serial.AccountKey(input.AccountKey), func(ctx context.Context) error {
		return persistence.WithinUnit(ctx, u.uow, func(txCtx context.Context) error {
			accounts := u.uow.GetAccountRepository(txCtx)
			account, err := accounts.GetByMobile(txCtx, input.AccountKey)
			if err != nil {
				return err
			}
			if err := account.Debit(amount, u.timeProvider); err != nil {
				return err
			}
			if err := accounts.Update(txCtx, account); err != nil {
				return err
			}
			return u.uow.GetTransactionRepository(txCtx).Create(txCtx, tx)
		})
	})
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			u.logger.Info("Withdraw rejected", errs.LogFields(err))
		}
		return nil, err
	}

	u.logger.Info("Withdraw requested", map[string]any{
		"transaction_id": tx.ID,
		"account":        tx.AccountKey,
		"amount":         entity.FormatMinor(tx.Amount),
		"method":         tx.Method,
	})
	return tx, nil
}

// ListTransactions returns the ledger of an account, newest first
func (u *WalletUseCase) ListTransactions(ctx context.Context, accountKey string) ([]*entity.Transaction, error) {
	return u.uow.GetTransactionRepository(ctx).List(ctx, persistence.TransactionFilter{AccountKey: accountKey})
}

func outcome(err error) string {
	if err == nil {
		return "created"
	}
	return string(errs.KindOf(err))
}

var _ usecase.WalletUseCase = (*WalletUseCase)(nil)
