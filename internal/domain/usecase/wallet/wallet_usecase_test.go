package wallet

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/serial"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/identity"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/store"
	clock "github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const player = "01711111111"

type fixture struct {
	uc  *WalletUseCase
	uow *repository.UnitOfWork
	tp  *clock.FixedTimeProvider
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()
	log := logger.NewNoopLogger()
	tp := clock.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uow := repository.NewUnitOfWork(store.NewMemoryStore(), "ff", log, tp)
	seq := serial.NewSequencer(log, 0)
	t.Cleanup(seq.Shutdown)

	account, err := entity.NewAccount(player, "hash", "", entity.RolePlayer, tp)
	require.NoError(t, err)
	require.NoError(t, account.Credit(balance, tp))
	require.NoError(t, persistence.WithinUnit(context.Background(), uow, func(txCtx context.Context) error {
		return uow.GetAccountRepository(txCtx).Create(txCtx, account)
	}))

	uc := NewWalletUseCase(uow, seq, DefaultLimits(), identity.NewUUIDGenerator(), metrics.NewNoopMetrics(), tp, log)
	return &fixture{uc: uc, uow: uow, tp: tp}
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	account, err := f.uow.GetAccountRepository(context.Background()).GetByMobile(context.Background(), player)
	require.NoError(t, err)
	return account.Balance()
}

func TestWalletUseCase_RequestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pending deposit without touching the balance", func(t *testing.T) {
		f := newFixture(t, 0)

		tx, err := f.uc.RequestDeposit(ctx, usecase.DepositInput{
			AccountKey: player, Amount: "50", Method: "bkash", ExternalRef: "8N7A6D5C",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tx.ID, "tx-"))
		assert.Equal(t, entity.KindDeposit, tx.Kind)
		assert.Equal(t, entity.StatusPending, tx.Status)
		assert.Equal(t, entity.MethodBkash, tx.Method)
		assert.EqualValues(t, 5000, tx.Amount)
		assert.Zero(t, f.balance(t))
	})

	t.Run("Validation", func(t *testing.T) {
		f := newFixture(t, 0)

		tests := []struct {
			name    string
			input   usecase.DepositInput
			wantErr error
		}{
			{"below minimum", usecase.DepositInput{AccountKey: player, Amount: "9.99", Method: "bKash", ExternalRef: "X"}, errs.ErrBelowMinimum},
			{"above maximum", usecase.DepositInput{AccountKey: player, Amount: "100000.01", Method: "bKash", ExternalRef: "X"}, errs.ErrAboveMaximum},
			{"largest parsable amount", usecase.DepositInput{AccountKey: player, Amount: "92233720368547758.07", Method: "bKash", ExternalRef: "X"}, errs.ErrAboveMaximum},
			{"not a number", usecase.DepositInput{AccountKey: player, Amount: "ten", Method: "bKash", ExternalRef: "X"}, errs.ErrInvalidAmount},
			{"negative", usecase.DepositInput{AccountKey: player, Amount: "-20", Method: "bKash", ExternalRef: "X"}, errs.ErrNegativeAmount},
			{"unknown method", usecase.DepositInput{AccountKey: player, Amount: "20", Method: "Rocket", ExternalRef: "X"}, errs.ErrInvalidMethod},
			{"missing reference", usecase.DepositInput{AccountKey: player, Amount: "20", Method: "Nagad", ExternalRef: "  "}, errs.ErrMissingExternalRef},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.uc.RequestDeposit(ctx, tt.input)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errs.IsValidationError(err))
			})
		}

		txs, err := f.uc.ListTransactions(ctx, player)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("Unknown account", func(t *testing.T) {
		f := newFixture(t, 0)

		_, err := f.uc.RequestDeposit(ctx, usecase.DepositInput{
			AccountKey: "01799999999", Amount: "20", Method: "Nagad", ExternalRef: "X",
		})
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})
}

func TestWalletUseCase_RequestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("Holds the amount immediately", func(t *testing.T) {
		f := newFixture(t, entity.MajorUnits(500))

		tx, err := f.uc.RequestWithdraw(ctx, usecase.WithdrawInput{
			AccountKey: player, Amount: "150", Method: "Nagad", PayoutTarget: "01811111111",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.KindWithdraw, tx.Kind)
		assert.Equal(t, entity.StatusPending, tx.Status)
		assert.Equal(t, "Nagad (01811111111)", tx.Method)
		assert.Equal(t, entity.MajorUnits(350), f.balance(t))
	})

	t.Run("International payout number", func(t *testing.T) {
		f := newFixture(t, entity.MajorUnits(500))

		tx, err := f.uc.RequestWithdraw(ctx, usecase.WithdrawInput{
			AccountKey: player, Amount: "100", Method: "bKash", PayoutTarget: "+12345678901",
		})
		require.NoError(t, err)
		assert.Equal(t, "bKash (+12345678901)", tx.Method)
	})

	t.Run("Validation", func(t *testing.T) {
		f := newFixture(t, entity.MajorUnits(5000))

		tests := []struct {
			name    string
			amount  string
			target  string
			wantErr error
		}{
			{"below minimum", "99", "01811111111", errs.ErrBelowMinimum},
			{"above maximum", "1000.01", "01811111111", errs.ErrAboveMaximum},
			{"short payout number", "100", "0181111111", errs.ErrInvalidPayoutTarget},
			{"payout number with letters", "100", "0181111111x", errs.ErrInvalidPayoutTarget},
			{"plus does not count as a digit", "100", "+1234567890", errs.ErrInvalidPayoutTarget},
			{"zero", "0", "01811111111", errs.ErrInvalidAmount},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.uc.RequestWithdraw(ctx, usecase.WithdrawInput{
					AccountKey: player, Amount: tt.amount, Method: "bKash", PayoutTarget: tt.target,
				})
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
		assert.Equal(t, entity.MajorUnits(5000), f.balance(t))
	})

	t.Run("Insufficient balance mutates nothing", func(t *testing.T) {
		f := newFixture(t, entity.MajorUnits(120))

		_, err := f.uc.RequestWithdraw(ctx, usecase.WithdrawInput{
			AccountKey: player, Amount: "150", Method: "bKash", PayoutTarget: "01811111111",
		})
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.True(t, errs.IsBusinessRuleError(err))
		assert.Equal(t, entity.MajorUnits(120), f.balance(t))

		txs, err := f.uc.ListTransactions(ctx, player)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("Concurrent requests never overdraw", func(t *testing.T) {
		f := newFixture(t, entity.MajorUnits(500))

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			success int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.uc.RequestWithdraw(ctx, usecase.WithdrawInput{
					AccountKey: player, Amount: "100", Method: "bKash", PayoutTarget: "01811111111",
				})
				if err == nil {
					mu.Lock()
					success++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 5, success)
		assert.Zero(t, f.balance(t))

		txs, err := f.uc.ListTransactions(ctx, player)
		require.NoError(t, err)
		assert.Len(t, txs, 5)
	})
}

func TestWalletUseCase_ListTransactions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, entity.MajorUnits(500))

	first, err := f.uc.RequestDeposit(ctx, usecase.DepositInput{AccountKey: player, Amount: "20", Method: "bKash", ExternalRef: "A"})
	require.NoError(t, err)
	f.tp.Advance(time.Minute)
	second, err := f.uc.RequestWithdraw(ctx, usecase.WithdrawInput{AccountKey: player, Amount: "100", Method: "bKash", PayoutTarget: "01811111111"})
	require.NoError(t, err)

	txs, err := f.uc.ListTransactions(ctx, player)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, second.ID, txs[0].ID)
	assert.Equal(t, first.ID, txs[1].ID)

	others, err := f.uc.ListTransactions(ctx, "01799999999")
	require.NoError(t, err)
	assert.Empty(t, others)
}
