package advice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	clock "github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/time"
	mockcore "github.com/amirhossein-jamali/league-wallet/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdviceUseCase_GetAdvice(t *testing.T) {
	ctx := context.Background()
	tp := clock.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	t.Run("Returns the generated text", func(t *testing.T) {
		gen := mockcore.NewMockTextGenerator(t)
		gen.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Battle Royale (Solo)")
		})).Return("  Landing e hot drop korba na! 🔥  ", nil).Once()

		uc := NewAdviceUseCase(gen, tp, logger.NewNoopLogger(), Options{Timeout: time.Second})
		assert.Equal(t, "Landing e hot drop korba na! 🔥", uc.GetAdvice(ctx, "Battle Royale", "Solo"))
	})

	t.Run("Empty reply", func(t *testing.T) {
		gen := mockcore.NewMockTextGenerator(t)
		gen.EXPECT().Generate(mock.Anything, mock.Anything).Return("", nil).Once()

		uc := NewAdviceUseCase(gen, tp, logger.NewNoopLogger(), Options{})
		assert.Equal(t, EmptyReplyFallback, uc.GetAdvice(ctx, "Mixed", "Standard"))
	})

	t.Run("Failure is logged and replaced", func(t *testing.T) {
		gen := mockcore.NewMockTextGenerator(t)
		gen.EXPECT().Generate(mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()

		log := mockcore.NewMockLogger(t)
		log.EXPECT().Warn("Advice service failed", mock.Anything).Return().Once()

		uc := NewAdviceUseCase(gen, tp, log, Options{CacheTTL: time.Minute})
		assert.Equal(t, FailureFallback, uc.GetAdvice(ctx, "Mixed", "Standard"))
	})

	t.Run("Timeout falls back", func(t *testing.T) {
		gen := mockcore.NewMockTextGenerator(t)
		gen.EXPECT().Generate(mock.Anything, mock.Anything).RunAndReturn(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}).Once()

		uc := NewAdviceUseCase(gen, tp, logger.NewNoopLogger(), Options{Timeout: 10 * time.Millisecond})
		assert.Equal(t, FailureFallback, uc.GetAdvice(ctx, "Clash Squad 4v4", "Squad"))
	})

	t.Run("No generator configured", func(t *testing.T) {
		uc := NewAdviceUseCase(nil, tp, logger.NewNoopLogger(), Options{})
		assert.Equal(t, FailureFallback, uc.GetAdvice(ctx, "Mixed", "Standard"))
	})
}

func TestAdviceUseCase_Cache(t *testing.T) {
	ctx := context.Background()
	tp := clock.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	gen := mockcore.NewMockTextGenerator(t)
	gen.EXPECT().Generate(mock.Anything, mock.Anything).Return("first", nil).Once()
	gen.EXPECT().Generate(mock.Anything, mock.Anything).Return("second", nil).Once()

	uc := NewAdviceUseCase(gen, tp, logger.NewNoopLogger(), Options{CacheTTL: 30 * time.Minute})

	assert.Equal(t, "first", uc.GetAdvice(ctx, "Battle Royale", "Solo"))
	assert.Equal(t, "first", uc.GetAdvice(ctx, "battle royale", "solo"))

	tp.Advance(31 * time.Minute)
	assert.Equal(t, "second", uc.GetAdvice(ctx, "Battle Royale", "Solo"))
}
