package match

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/store"
	clock "github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const player = "01711111111"

type fixture struct {
	uc  *MatchUseCase
	uow *repository.UnitOfWork
	tp  *clock.FixedTimeProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNoopLogger()
	tp := clock.NewFixedTimeProvider(at(9, 15))
	uow := repository.NewUnitOfWork(store.NewMemoryStore(), "ff", log, tp)
	return &fixture{
		uc:  NewMatchUseCase(uow, NewGenerator(lastRandom{}), tp, log),
		uow: uow,
		tp:  tp,
	}
}

func (f *fixture) stored(t *testing.T) []*entity.Match {
	t.Helper()
	matches, err := f.uow.GetMatchRepository(context.Background()).List(context.Background())
	require.NoError(t, err)
	return matches
}

// register records a join of player into match without touching balances
func (f *fixture) register(t *testing.T, match *entity.Match) {
	t.Helper()
	require.NoError(t, persistence.WithinUnit(context.Background(), f.uow, func(txCtx context.Context) error {
		return f.uow.GetRegistrationRepository(txCtx).Create(txCtx,
			entity.NewRegistration("umatch-"+match.ID, player, match, "123456", "Shadow", f.tp))
	}))
}

func TestMatchUseCase_EnsureFeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	generated, err := f.uc.EnsureFeed(ctx)
	require.NoError(t, err)
	assert.True(t, generated)
	first := f.stored(t)
	assert.Len(t, first, FeedSize)

	f.tp.Advance(24 * time.Hour)
	generated, err = f.uc.EnsureFeed(ctx)
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, first[0].ID, f.stored(t)[0].ID)
}

func TestMatchUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps joined matches and appends the next day", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.EnsureFeed(ctx)
		require.NoError(t, err)
		joined := f.stored(t)[2]
		f.register(t, joined)

		f.tp.Advance(24 * time.Hour)
		result, err := f.uc.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.RefreshResult{Kept: 1, Added: FeedSize, Dropped: FeedSize - 1}, *result)

		matches := f.stored(t)
		require.Len(t, matches, FeedSize+1)
		assert.Equal(t, joined.ID, matches[0].ID)
		assert.Equal(t, joined.FilledSlots, matches[0].FilledSlots)
		for i, match := range matches {
			assert.Equal(t, i+1, match.SequenceNumber, match.ID)
		}
	})

	t.Run("Skips ids already present", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.EnsureFeed(ctx)
		require.NoError(t, err)
		f.register(t, f.stored(t)[0])

		result, err := f.uc.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.RefreshResult{Kept: 1, Added: FeedSize - 1, Dropped: FeedSize - 1}, *result)
		assert.Len(t, f.stored(t), FeedSize)
	})

	t.Run("Empty registry", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.uc.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, usecase.RefreshResult{Added: FeedSize}, *result)
	})
}

func TestMatchUseCase_RoomSecrets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.uc.EnsureFeed(ctx)
	require.NoError(t, err)

	target := f.stored(t)[0]
	code, password := "ROOM42", "pass"
	require.NoError(t, persistence.WithinUnit(ctx, f.uow, func(txCtx context.Context) error {
		if err := (entity.MatchPatch{RoomCode: &code, RoomPassword: &password}).Apply(target); err != nil {
			return err
		}
		return f.uow.GetMatchRepository(txCtx).Update(txCtx, target)
	}))

	tests := []struct {
		name     string
		viewer   usecase.Viewer
		join     bool
		wantCode string
	}{
		{"anonymous", usecase.Viewer{}, false, ""},
		{"player who did not join", usecase.Viewer{AccountKey: player}, false, ""},
		{"admin", usecase.Viewer{AccountKey: "01700000000", Admin: true}, false, "ROOM42"},
		{"player who joined", usecase.Viewer{AccountKey: player}, true, "ROOM42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.join {
				f.register(t, target)
			}

			view, err := f.uc.Get(ctx, tt.viewer, target.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, view.Match.RoomCode)
			assert.Equal(t, tt.join, view.Joined)

			views, err := f.uc.List(ctx, tt.viewer)
			require.NoError(t, err)
			require.Len(t, views, FeedSize)
			assert.Equal(t, tt.wantCode, views[0].Match.RoomCode)
			assert.Empty(t, views[1].Match.RoomCode)
		})
	}

	_, err = f.uc.Get(ctx, usecase.Viewer{}, "match-none")
	assert.ErrorIs(t, err, errs.ErrMatchNotFound)
}

func TestMatchUseCase_Preview(t *testing.T) {
	f := newFixture(t)

	feed := f.uc.Preview(time.Date(2025, 3, 1, 1, 15, 0, 0, time.UTC))
	require.Len(t, feed, FeedSize)
	assert.Equal(t, "08:30 AM Today", feed[0].ScheduledTimeDescriptor)
	assert.Empty(t, f.stored(t))
}
