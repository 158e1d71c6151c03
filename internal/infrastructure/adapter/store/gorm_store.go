package store

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps each collection as one row of the kv_entries table
type GormStore struct {
	manager      *database.Manager
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	retry        database.RetryConfig
}

var (
	_ persistence.KVStore    = (*GormStore)(nil)
	_ persistence.BatchSaver = (*GormStore)(nil)
)

// NewGormStore creates a store over the connected, migrated database of manager.
// Every query is bounded by the manager's query timeout.
func NewGormStore(manager *database.Manager, timeProvider coreport.TimeProvider, logger coreport.Logger) *GormStore {
	return &GormStore{
		manager:      manager,
		db:           manager.DB(),
		timeProvider: timeProvider,
		logger:       logger,
		retry:        database.DefaultRetryConfig(),
	}
}

// Load reads the row for key
func (s *GormStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.manager.WithTimeout(ctx)
	defer cancel()

	var entry model.KVEntry
	err := database.RetryOnTransientError(ctx, s.retry, s.logger, func() error {
		return s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrKeyNotFound
	}
	if err != nil {
		return nil, s.handleDatabaseError("loading key", err, key)
	}
	return []byte(entry.Value), nil
}

// Save upserts the row for key
func (s *GormStore) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := s.manager.WithTimeout(ctx)
	defer cancel()

	err := database.RetryOnTransientError(ctx, s.retry, s.logger, func() error {
		return s.upsert(s.db.WithContext(ctx), key, value)
	})
	if err != nil {
		return s.handleDatabaseError("saving key", err, key)
	}
	return nil
}

// SaveAll upserts every row in one database transaction
func (s *GormStore) SaveAll(ctx context.Context, values map[string][]byte) error {
	ctx, cancel := s.manager.WithTimeout(ctx)
	defer cancel()

	err := database.RetryOnTransientError(ctx, s.retry, s.logger, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for key, value := range values {
				if err := s.upsert(tx, key, value); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return s.handleDatabaseError("saving batch", err, fmt.Sprintf("%d keys", len(values)))
	}
	return nil
}

func (s *GormStore) upsert(db *gorm.DB, key string, value []byte) error {
	entry := model.KVEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.timeProvider.Now(),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// handleDatabaseError logs err and maps it to the store error
func (s *GormStore) handleDatabaseError(operation string, err error, key string) error {
	s.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"key":   key,
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
}

// Close closes the underlying connection pool
func (s *GormStore) Close() error {
	return s.manager.Close()
}
