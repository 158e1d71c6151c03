package registration

import (
	"context"
	"fmt"
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

type fixture struct {
	uc  *RegistrationUseCase
	uow *repository.UnitOfWork
	tp  *clock.FixedTimeProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNoopLogger()
	tp := clock.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	uow := repository.NewUnitOfWork(store.NewMemoryStore(), "ff", log, tp)
	seq := serial.NewSequencer(log, 0)
	t.Cleanup(seq.Shutdown)

	return &fixture{
		uc:  NewRegistrationUseCase(uow, seq, identity.NewUUIDGenerator(), metrics.NewNoopMetrics(), tp, log),
		uow: uow,
		tp:  tp,
	}
}

func (f *fixture) addAccount(t *testing.T, mobile string, balance int64) {
	t.Helper()
	account, err := entity.NewAccount(mobile, "hash", "", entity.RolePlayer, f.tp)
	require.NoError(t, err)
	require.NoError(t, account.Credit(balance, f.tp))
	require.NoError(t, persistence.WithinUnit(context.Background(), f.uow, func(txCtx context.Context) error {
		return f.uow.GetAccountRepository(txCtx).Create(txCtx, account)
	}))
}

func (f *fixture) addMatch(t *testing.T, id string, fee entity.Fee, filled, total int) {
	t.Helper()
	match := &entity.Match{
		ID:                      id,
		Title:                   "BD BR Elite Cup",
		Category:                entity.CategoryBattleRoyale,
		TeamFormat:              entity.FormatSolo,
		EntryFee:                fee,
		PrizeDescriptor:         "500 BDT",
		ScheduledTimeDescriptor: "08:00 PM Today",
		TotalSlots:              total,
		FilledSlots:             filled,
		CreatedAt:               f.tp.Now(),
	}
	require.NoError(t, persistence.WithinUnit(context.Background(), f.uow, func(txCtx context.Context) error {
		return f.uow.GetMatchRepository(txCtx).Create(txCtx, match)
	}))
}

func (f *fixture) balance(t *testing.T, mobile string) int64 {
	t.Helper()
	account, err := f.uow.GetAccountRepository(context.Background()).GetByMobile(context.Background(), mobile)
	require.NoError(t, err)
	return account.Balance()
}

func (f *fixture) filled(t *testing.T, matchID string) int {
	t.Helper()
	match, err := f.uow.GetMatchRepository(context.Background()).GetByID(context.Background(), matchID)
	require.NoError(t, err)
	return match.FilledSlots
}

func join(mobile, matchID string) usecase.JoinInput {
	return usecase.JoinInput{AccountKey: mobile, MatchID: matchID, GameUID: "123456789", GameName: "ShadowKing"}
}

func TestRegistrationUseCase_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("Debits the fee and takes a slot", func(t *testing.T) {
		f := newFixture(t)
		f.addAccount(t, "01711111111", entity.MajorUnits(100))
		f.addMatch(t, "match-1", entity.FeeOf(entity.MajorUnits(20)), 5, 8)

		reg, err := f.uc.Join(ctx, join("01711111111", "match-1"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(reg.ID, "umatch-"))
		assert.Equal(t, entity.RegistrationJoined, reg.Status)
		assert.Equal(t, "BD BR Elite Cup", reg.MatchTitle)
		assert.Equal(t, "08:00 PM Today", reg.ScheduledTimeDescriptor)

		assert.Equal(t, entity.MajorUnits(80), f.balance(t, "01711111111"))
		assert.Equal(t, 6, f.filled(t, "match-1"))

		regs, err := f.uc.ListForAccount(ctx, "01711111111")
		require.NoError(t, err)
		assert.Len(t, regs, 1)
	})

	t.Run("Free match with an empty wallet", func(t *testing.T) {
		f := newFixture(t)
		f.addAccount(t, "01711111111", 0)
		f.addMatch(t, "match-free", entity.FreeFee(), 0, 48)

		_, err := f.uc.Join(ctx, join("01711111111", "match-free"))
		require.NoError(t, err)
		assert.Zero(t, f.balance(t, "01711111111"))
		assert.Equal(t, 1, f.filled(t, "match-free"))
	})

	t.Run("Rejections mutate nothing", func(t *testing.T) {
		f := newFixture(t)
		f.addAccount(t, "01711111111", entity.MajorUnits(100))
		f.addAccount(t, "01722222222", entity.MajorUnits(10))
		f.addMatch(t, "match-full", entity.FeeOf(entity.MajorUnits(20)), 8, 8)
		f.addMatch(t, "match-open", entity.FeeOf(entity.MajorUnits(20)), 0, 8)

		_, err := f.uc.Join(ctx, join("01711111111", "match-open"))
		require.NoError(t, err)

		tests := []struct {
			name    string
			input   usecase.JoinInput
			wantErr error
		}{
			{"slots full", join("01711111111", "match-full"), errs.ErrSlotsFull},
			{"already joined", join("01711111111", "match-open"), errs.ErrAlreadyJoined},
			{"insufficient balance", join("01722222222", "match-open"), errs.ErrInsufficientBalance},
			{"unknown match", join("01711111111", "match-none"), errs.ErrMatchNotFound},
			{"unknown account", join("01799999999", "match-open"), errs.ErrAccountNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.uc.Join(ctx, tt.input)
				assert.ErrorIs(t, err, tt.wantErr)

				var regErr *errs.RegistrationError
				assert.ErrorAs(t, err, &regErr)
				assert.Equal(t, tt.input.MatchID, regErr.MatchID)
			})
		}

		assert.Equal(t, entity.MajorUnits(80), f.balance(t, "01711111111"))
		assert.Equal(t, entity.MajorUnits(10), f.balance(t, "01722222222"))
		assert.Equal(t, 8, f.filled(t, "match-full"))
		assert.Equal(t, 1, f.filled(t, "match-open"))
	})

	t.Run("Full match is reported before a duplicate or an empty wallet", func(t *testing.T) {
		f := newFixture(t)
		f.addAccount(t, "01711111111", entity.MajorUnits(20))
		f.addMatch(t, "match-1", entity.FeeOf(entity.MajorUnits(20)), 0, 1)

		_, err := f.uc.Join(ctx, join("01711111111", "match-1"))
		require.NoError(t, err)

		_, err = f.uc.Join(ctx, join("01711111111", "match-1"))
		assert.ErrorIs(t, err, errs.ErrSlotsFull)
	})

	t.Run("Invalid game identity", func(t *testing.T) {
		f := newFixture(t)
		f.addAccount(t, "01711111111", entity.MajorUnits(100))
		f.addMatch(t, "match-1", entity.FeeOf(entity.MajorUnits(20)), 0, 8)

		for _, input := range []usecase.JoinInput{
			{AccountKey: "01711111111", MatchID: "match-1", GameUID: "12ab", GameName: "Shadow"},
			{AccountKey: "01711111111", MatchID: "match-1", GameUID: "", GameName: "Shadow"},
			{AccountKey: "01711111111", MatchID: "match-1", GameUID: "1234", GameName: " "},
		} {
			_, err := f.uc.Join(ctx, input)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		}
		assert.Zero(t, f.filled(t, "match-1"))
	})

	t.Run("Game identity is trimmed", func(t *testing.T) {
		f := newFixture(t)
		f.addAccount(t, "01711111111", entity.MajorUnits(100))
		f.addMatch(t, "match-1", entity.FeeOf(entity.MajorUnits(20)), 0, 8)

		reg, err := f.uc.Join(ctx, usecase.JoinInput{
			AccountKey: "01711111111", MatchID: "match-1", GameUID: " 123456789 ", GameName: "\tShadowKing ",
		})
		require.NoError(t, err)
		assert.Equal(t, "123456789", reg.GameUID)
		assert.Equal(t, "ShadowKing", reg.GameName)
		assert.Equal(t, 1, f.filled(t, "match-1"))
	})
}

func TestRegistrationUseCase_ConcurrentJoins(t *testing.T) {
	ctx := context.Background()

	t.Run("Never overfills a match", func(t *testing.T) {
		f := newFixture(t)
		f.addMatch(t, "match-cs", entity.FeeOf(entity.MajorUnits(50)), 0, 8)
		for i := 0; i < 20; i++ {
			f.addAccount(t, fmt.Sprintf("017000000%02d", i), entity.MajorUnits(100))
		}

		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			joined int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, err := f.uc.Join(ctx, join(fmt.Sprintf("017000000%02d", i), "match-cs")); err == nil {
					mu.Lock()
					joined++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 8, joined)
		assert.Equal(t, 8, f.filled(t, "match-cs"))

		regs, err := f.uc.ListForMatch(ctx, "match-cs")
		require.NoError(t, err)
		assert.Len(t, regs, 8)
	})

	t.Run("Never spends more than the balance", func(t *testing.T) {
		f := newFixture(t)
		f.addAccount(t, "01711111111", entity.MajorUnits(100))
		for i := 0; i < 10; i++ {
			f.addMatch(t, fmt.Sprintf("match-%d", i), entity.FeeOf(entity.MajorUnits(20)), 0, 48)
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = f.uc.Join(ctx, join("01711111111", fmt.Sprintf("match-%d", i)))
			}(i)
		}
		wg.Wait()

		assert.Zero(t, f.balance(t, "01711111111"))
		regs, err := f.uc.ListForAccount(ctx, "01711111111")
		require.NoError(t, err)
		assert.Len(t, regs, 5)
	})
}

func TestRegistrationUseCase_ListForMatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ListForMatch(context.Background(), "match-none")
	assert.ErrorIs(t, err, errs.ErrMatchNotFound)
}
