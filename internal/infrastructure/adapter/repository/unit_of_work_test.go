package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/store"
	clock "github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC)

func setup(t *testing.T) (*UnitOfWork, *store.MemoryStore, *clock.FixedTimeProvider) {
	t.Helper()
	kv := store.NewMemoryStore()
	tp := clock.NewFixedTimeProvider(fixedNow)
	return NewUnitOfWork(kv, "ff", logger.NewNoopLogger(), tp), kv, tp
}

func newAccount(t *testing.T, mobile string, tp *clock.FixedTimeProvider) *entity.Account {
	t.Helper()
	account, err := entity.NewAccount(mobile, "hash", "", entity.RolePlayer, tp)
	require.NoError(t, err)
	return account
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	t.Run("Commit writes changed collections", func(t *testing.T) {
		uow, kv, tp := setup(t)
		ctx := context.Background()

		err := persistence.WithinUnit(ctx, uow, func(txCtx context.Context) error {
			account := newAccount(t, "01711111111", tp)
			require.NoError(t, account.Credit(5000, tp))
			if err := uow.GetAccountRepository(txCtx).Create(txCtx, account); err != nil {
				return err
			}
			return uow.GetTransactionRepository(txCtx).Create(txCtx,
				entity.NewDepositRequest("tx-1", account.Mobile, 5000, entity.MethodBkash, "TRX1", tp))
		})
		require.NoError(t, err)

		raw, err := kv.Load(ctx, "ff_users")
		require.NoError(t, err)
		var stored []map[string]any
		require.NoError(t, json.Unmarshal(raw, &stored))
		require.Len(t, stored, 1)
		assert.Equal(t, "01711111111", stored[0]["mobile"])
		assert.Equal(t, "Gamer_1111", stored[0]["username"])
		assert.EqualValues(t, 5000, stored[0]["balance"])

		_, err = kv.Load(ctx, "ff_all_matches")
		assert.ErrorIs(t, err, errs.ErrKeyNotFound, "untouched collections are not written")
	})

	t.Run("Rollback discards every change", func(t *testing.T) {
		uow, kv, tp := setup(t)
		ctx := context.Background()

		err := persistence.WithinUnit(ctx, uow, func(txCtx context.Context) error {
			if err := uow.GetAccountRepository(txCtx).Create(txCtx, newAccount(t, "01711111111", tp)); err != nil {
				return err
			}
			return errs.ErrSlotsFull
		})
		assert.ErrorIs(t, err, errs.ErrSlotsFull)

		_, err = kv.Load(ctx, "ff_users")
		assert.ErrorIs(t, err, errs.ErrKeyNotFound)
	})

	t.Run("Commit and Rollback need a unit", func(t *testing.T) {
		uow, _, _ := setup(t)
		assert.ErrorIs(t, uow.Commit(context.Background()), ErrNoUnit)
		assert.ErrorIs(t, uow.Rollback(context.Background()), ErrNoUnit)
	})

	t.Run("Rollback after commit is a no-op", func(t *testing.T) {
		uow, _, _ := setup(t)
		txCtx, err := uow.Begin(context.Background())
		require.NoError(t, err)
		require.NoError(t, uow.Commit(txCtx))
		assert.NoError(t, uow.Rollback(txCtx))
		assert.Error(t, uow.Commit(txCtx))
	})

	t.Run("Nested begin", func(t *testing.T) {
		uow, _, _ := setup(t)
		txCtx, err := uow.Begin(context.Background())
		require.NoError(t, err)
		defer uow.Rollback(txCtx)

		_, err = uow.Begin(txCtx)
		assert.ErrorIs(t, err, errs.ErrInternalServer)
	})
}

func TestUnitOfWork_Serializes(t *testing.T) {
	uow, _, tp := setup(t)
	ctx := context.Background()

	account := newAccount(t, "01711111111", tp)
	require.NoError(t, account.Credit(10000, tp))
	require.NoError(t, uow.GetAccountRepository(ctx).Create(ctx, account))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = persistence.WithinUnit(ctx, uow, func(txCtx context.Context) error {
				repo := uow.GetAccountRepository(txCtx)
				current, err := repo.GetByMobile(txCtx, "01711111111")
				if err != nil {
					return err
				}
				if err := current.Debit(2000, tp); err != nil {
					return err
				}
				return repo.Update(txCtx, current)
			})
		}()
	}
	wg.Wait()

	final, err := uow.GetAccountRepository(ctx).GetByMobile(ctx, "01711111111")
	require.NoError(t, err)
	assert.Equal(t, int64(0), final.Balance())
}

func TestUnitOfWork_BeginHonorsContext(t *testing.T) {
	uow, _, _ := setup(t)
	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	defer uow.Rollback(txCtx)

	waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = uow.Begin(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type failingStore struct {
	*store.MemoryStore
}

func (f failingStore) SaveAll(context.Context, map[string][]byte) error {
	return errs.ErrStoreUnavailable
}

func TestUnitOfWork_FailedCommit(t *testing.T) {
	kv := failingStore{store.NewMemoryStore()}
	tp := clock.NewFixedTimeProvider(fixedNow)
	uow := NewUnitOfWork(kv, "ff", logger.NewNoopLogger(), tp)
	ctx := context.Background()

	err := uow.GetAccountRepository(ctx).Create(ctx, newAccount(t, "01711111111", tp))
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	// The failed unit released the store
	_, err = uow.GetAccountRepository(ctx).GetByMobile(ctx, "01711111111")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

// keyedStore writes one key per Save and fails the Save numbered failOn
type keyedStore struct {
	kv     *store.MemoryStore
	saves  int
	failOn int
}

func (k *keyedStore) Load(ctx context.Context, key string) ([]byte, error) {
	return k.kv.Load(ctx, key)
}

func (k *keyedStore) Save(ctx context.Context, key string, value []byte) error {
	k.saves++
	if k.saves == k.failOn {
		return errs.ErrStoreUnavailable
	}
	return k.kv.Save(ctx, key, value)
}

func (k *keyedStore) Close() error { return nil }

func TestUnitOfWork_FailedCommitWithoutBatch(t *testing.T) {
	ctx := context.Background()
	tp := clock.NewFixedTimeProvider(fixedNow)
	kv := &keyedStore{kv: store.NewMemoryStore()}
	uow := NewUnitOfWork(kv, "ff", logger.NewNoopLogger(), tp)

	account := newAccount(t, "01711111111", tp)
	require.NoError(t, account.Credit(5000, tp))
	require.NoError(t, uow.GetAccountRepository(ctx).Create(ctx, account))
	require.NoError(t, uow.GetMatchRepository(ctx).Create(ctx, newMatch("match-1")))

	join := func(txCtx context.Context) error {
		current, err := uow.GetAccountRepository(txCtx).GetByMobile(txCtx, "01711111111")
		if err != nil {
			return err
		}
		match, err := uow.GetMatchRepository(txCtx).GetByID(txCtx, "match-1")
		if err != nil {
			return err
		}
		if err := current.Debit(2000, tp); err != nil {
			return err
		}
		if err := match.FillSlot(); err != nil {
			return err
		}
		if err := uow.GetAccountRepository(txCtx).Update(txCtx, current); err != nil {
			return err
		}
		if err := uow.GetMatchRepository(txCtx).Update(txCtx, match); err != nil {
			return err
		}
		return uow.GetRegistrationRepository(txCtx).Create(txCtx,
			entity.NewRegistration("umatch-1", current.Mobile, match, "5123", "Sniper", tp))
	}

	for _, failOn := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("Write %d of 3 fails", failOn), func(t *testing.T) {
			kv.saves = 0
			kv.failOn = failOn
			err := persistence.WithinUnit(ctx, uow, join)
			assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
			kv.failOn = 0

			stored, err := uow.GetAccountRepository(ctx).GetByMobile(ctx, "01711111111")
			require.NoError(t, err)
			assert.Equal(t, int64(5000), stored.Balance())

			match, err := uow.GetMatchRepository(ctx).GetByID(ctx, "match-1")
			require.NoError(t, err)
			assert.Equal(t, 0, match.FilledSlots)

			joined, err := uow.GetRegistrationRepository(ctx).ListByAccount(ctx, "01711111111")
			require.NoError(t, err)
			assert.Empty(t, joined)
		})
	}

	t.Run("Succeeds once the store recovers", func(t *testing.T) {
		kv.saves = 0
		require.NoError(t, persistence.WithinUnit(ctx, uow, join))
		assert.Equal(t, 3, kv.saves)

		stored, err := uow.GetAccountRepository(ctx).GetByMobile(ctx, "01711111111")
		require.NoError(t, err)
		assert.Equal(t, int64(3000), stored.Balance())
	})
}

func TestUnitOfWork_CorruptCollection(t *testing.T) {
	uow, kv, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, kv.Save(ctx, "ff_users", []byte(`{not json`)))

	_, err := uow.GetAccountRepository(ctx).List(ctx)
	assert.ErrorIs(t, err, errs.ErrInternalServer)
}

func TestAccountRepository(t *testing.T) {
	uow, _, tp := setup(t)
	ctx := context.Background()
	repo := uow.GetAccountRepository(ctx)

	require.NoError(t, repo.Create(ctx, newAccount(t, "01711111111", tp)))
	require.NoError(t, repo.Create(ctx, newAccount(t, "01722222222", tp)))
	assert.ErrorIs(t, repo.Create(ctx, newAccount(t, "01711111111", tp)), errs.ErrDuplicateAccount)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "01711111111", accounts[0].Mobile)

	_, err = repo.GetByMobile(ctx, "01799999999")
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newAccount(t, "01799999999", tp)), errs.ErrAccountNotFound)

	account, err := repo.GetByMobile(ctx, "01722222222")
	require.NoError(t, err)
	account.DisplayName = "Sniper"
	require.NoError(t, repo.Update(ctx, account))

	account, err = repo.GetByMobile(ctx, "01722222222")
	require.NoError(t, err)
	assert.Equal(t, "Sniper", account.DisplayName)
}

func TestTransactionRepository(t *testing.T) {
	uow, _, tp := setup(t)
	ctx := context.Background()
	repo := uow.GetTransactionRepository(ctx)

	require.NoError(t, repo.Create(ctx, entity.NewDepositRequest("tx-1", "01711111111", 5000, entity.MethodBkash, "A1", tp)))
	require.NoError(t, repo.Create(ctx, entity.NewWithdrawRequest("tx-2", "01711111111", 10000, entity.MethodNagad, "01811111111", tp)))
	require.NoError(t, repo.Create(ctx, entity.NewDepositRequest("tx-3", "01722222222", 2000, entity.MethodNagad, "B1", tp)))

	all, err := repo.List(ctx, persistence.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "tx-3", all[0].ID, "newest first")

	mine, err := repo.List(ctx, persistence.TransactionFilter{AccountKey: "01711111111", Kind: entity.KindWithdraw})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "tx-2", mine[0].ID)
	assert.Equal(t, entity.DirectionDebit, mine[0].Direction)

	tx, err := repo.GetByID(ctx, "tx-1")
	require.NoError(t, err)
	require.NoError(t, tx.Approve(tp))
	require.NoError(t, repo.Update(ctx, tx))

	tx, err = repo.GetByID(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, tx.Status)
	require.NotNil(t, tx.ResolvedAt)

	_, err = repo.GetByID(ctx, "tx-404")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
}

func newMatch(id string) *entity.Match {
	return &entity.Match{
		ID:                      id,
		Title:                   "BD BR Elite Cup",
		Category:                entity.CategoryBattleRoyale,
		TeamFormat:              entity.FormatSolo,
		EntryFee:                entity.FeeOf(2000),
		PrizeDescriptor:         "500 BDT",
		ScheduledTimeDescriptor: "09:30 AM Today",
		TotalSlots:              48,
		CreatedAt:               fixedNow,
	}
}

func TestMatchRepository(t *testing.T) {
	uow, _, _ := setup(t)
	ctx := context.Background()
	repo := uow.GetMatchRepository(ctx)

	require.NoError(t, repo.Create(ctx, newMatch("match-1")))
	require.NoError(t, repo.Create(ctx, newMatch("match-2")))

	matches, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "match-2", matches[0].ID)
	assert.Equal(t, entity.FeeOf(2000), matches[0].EntryFee)

	m, err := repo.GetByID(ctx, "match-1")
	require.NoError(t, err)
	require.NoError(t, m.FillSlot())
	m.RoomCode = "123456"
	require.NoError(t, repo.Update(ctx, m))

	m, err = repo.GetByID(ctx, "match-1")
	require.NoError(t, err)
	assert.Equal(t, 1, m.FilledSlots)
	assert.Equal(t, "123456", m.RoomCode)

	require.NoError(t, repo.ReplaceAll(ctx, []*entity.Match{newMatch("match-9")}))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = repo.GetByID(ctx, "match-1")
	assert.ErrorIs(t, err, errs.ErrMatchNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newMatch("match-1")), errs.ErrMatchNotFound)
}

func TestRegistrationRepository(t *testing.T) {
	uow, _, tp := setup(t)
	ctx := context.Background()
	repo := uow.GetRegistrationRepository(ctx)
	match := newMatch("match-1")

	require.NoError(t, repo.Create(ctx, entity.NewRegistration("umatch-1", "01711111111", match, "5123", "Sniper", tp)))
	require.NoError(t, repo.Create(ctx, entity.NewRegistration("umatch-2", "01722222222", match, "6123", "Rusher", tp)))

	exists, err := repo.ExistsFor(ctx, "01711111111", "match-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsFor(ctx, "01711111111", "match-2")
	require.NoError(t, err)
	assert.False(t, exists)

	byMatch, err := repo.ListByMatch(ctx, "match-1")
	require.NoError(t, err)
	require.Len(t, byMatch, 2)
	assert.Equal(t, "umatch-2", byMatch[0].ID)

	byAccount, err := repo.ListByAccount(ctx, "01711111111")
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, entity.CategoryBattleRoyale, byAccount[0].MatchCategory)

	ids, err := repo.RegisteredMatchIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"match-1": {}}, ids)

	empty, err := repo.ListByAccount(ctx, "01799999999")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
