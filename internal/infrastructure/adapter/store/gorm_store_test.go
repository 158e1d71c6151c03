package store

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	clock "github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGormStore connects to the postgres named by TW_TEST_DATABASE_HOST and
// empties kv_entries. The test is skipped when no database is configured.
func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	host := os.Getenv("TW_TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("TW_TEST_DATABASE_HOST not set")
	}
	port, err := strconv.Atoi(envOr("TW_TEST_DATABASE_PORT", "5432"))
	require.NoError(t, err)

	cfg := &database.Config{
		Host:          host,
		Port:          port,
		Username:      envOr("TW_TEST_DATABASE_USERNAME", "postgres"),
		Password:      os.Getenv("TW_TEST_DATABASE_PASSWORD"),
		Database:      envOr("TW_TEST_DATABASE_NAME", "league_wallet_test"),
		SSLMode:       "disable",
		MaxOpenConns:  4,
		MaxIdleConns:  2,
		QueryTimeout:  5 * time.Second,
		LogLevel:      "error",
		RetryAttempts: 1,
	}

	log := logger.NewNoopLogger()
	tp := clock.NewFixedTimeProvider(time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC))
	manager := database.NewManager(cfg, log, tp)
	_, err = manager.Connect(context.Background())
	require.NoError(t, err)
	require.NoError(t, manager.Migrate(context.Background()))
	require.NoError(t, manager.DB().Exec("DELETE FROM kv_entries").Error)

	kv := NewGormStore(manager, tp, log)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func TestGormStore(t *testing.T) {
	kv := newTestGormStore(t)
	exerciseStore(t, kv)

	t.Run("Failed batch writes nothing", func(t *testing.T) {
		err := kv.SaveAll(context.Background(), map[string][]byte{
			"ff_all_matches":        []byte(`[]`),
			strings.Repeat("k", 300): []byte(`[]`),
		})
		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

		value, err := kv.Load(context.Background(), "ff_all_matches")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"match-1"}]`, string(value))
	})
}
