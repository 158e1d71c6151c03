package store

import (
	"context"
	"fmt"

	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
)

// Store drivers accepted by store.driver
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Open connects the backend named by cfg.Store.Driver. For postgres the schema is
// migrated and, when registerer is set, pool statistics are exported.
func Open(
	ctx context.Context,
	cfg *config.Config,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	registerer prometheus.Registerer,
) (persistence.KVStore, error) {
	logger.Info("Opening key-value store", map[string]any{
		"driver":    cfg.Store.Driver,
		"namespace": cfg.Store.Namespace,
	})

	switch cfg.Store.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil

	case DriverRedis:
		return ConnectRedis(ctx, cfg.Redis.URL, logger)

	case DriverPostgres:
		manager := database.NewManager(DatabaseConfig(cfg), logger, timeProvider)
		if _, err := manager.Connect(ctx); err != nil {
			return nil, err
		}
		if err := manager.Migrate(ctx); err != nil {
			_ = manager.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		if registerer != nil {
			if err := manager.RegisterMetrics(registerer); err != nil {
				logger.Warn("Failed to register database pool metrics", map[string]any{"error": err.Error()})
			}
		}
		return NewGormStore(manager, timeProvider, logger), nil

	case DriverS3:
		return NewS3Store(ctx, S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		}, logger)

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// DatabaseConfig maps the loaded configuration onto the database manager settings
func DatabaseConfig(cfg *config.Config) *database.Config {
	return &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}
}
