package migration

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// step moves the schema from one version to the next
type step struct {
	from    string
	to      string
	details string
	run     func(m *MigrationManager) error
}

var steps = []step{
	{from: "", to: "1.0.0", details: "Key-value collections table", run: (*MigrationManager).createKVTable},
	{from: "1.0.0", to: "1.1.0", details: "Index kv_entries by update time", run: (*MigrationManager).indexUpdatedAt},
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll applies every step after the recorded version
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	for _, s := range steps {
		if s.from != currentVersion {
			continue
		}

		m.logger.Info("Applying migration", map[string]any{
			"from": s.from,
			"to":   s.to,
		})
		if err := s.run(m); err != nil {
			m.logger.Error("Failed to apply migration", map[string]any{
				"error": err.Error(),
				"from":  s.from,
				"to":    s.to,
			})
			return err
		}
		if err := m.setVersion(context.Background(), s.to, s.details); err != nil {
			m.logger.Error("Failed to update schema version", map[string]any{
				"error":   err.Error(),
				"version": s.to,
			})
			return err
		}
		currentVersion = s.to
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": currentVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	return m.db.WithContext(ctx).Create(&model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}).Error
}

func (m *MigrationManager) createKVTable() error {
	return m.db.AutoMigrate(&model.KVEntry{})
}

func (m *MigrationManager) indexUpdatedAt() error {
	return m.db.Exec("CREATE INDEX IF NOT EXISTS idx_kv_entries_updated_at ON kv_entries (updated_at)").Error
}
