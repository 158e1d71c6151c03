package model

import (
	"time"
)

// MigrationVersion records a schema step applied to the postgres backend
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Details   string    `gorm:"type:text"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
